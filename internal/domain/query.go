package domain

// QueryKind различает варианты поискового запроса.
type QueryKind int

const (
	TextQuery QueryKind = iota
	ImageQuery
)

// SearchQuery — размеченный вариант запроса: текст или изображение.
// Разрешается один раз на входе в сервис поиска.
type SearchQuery struct {
	Kind  QueryKind
	Text  string
	Image []byte
}

func NewTextQuery(text string) SearchQuery {
	return SearchQuery{Kind: TextQuery, Text: text}
}

func NewImageQuery(image []byte) SearchQuery {
	return SearchQuery{Kind: ImageQuery, Image: image}
}

// FilterSpec описывает структурные ограничения поиска.
// Незаполненное поле не накладывает ограничения, поля комбинируются по AND.
type FilterSpec struct {
	PriceMin     *int64 // копейки, включительно
	PriceMax     *int64 // копейки, включительно
	Currency     string
	Region       []string
	Sizes        []string
	ColorNames   []string
	GenderName   []string
	CategoryName []string
	BrandName    []string
}

// IsEmpty сообщает, накладывает ли спецификация хоть одно ограничение.
func (f *FilterSpec) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.PriceMin == nil && f.PriceMax == nil && f.Currency == "" &&
		len(f.Region) == 0 && len(f.Sizes) == 0 && len(f.ColorNames) == 0 &&
		len(f.GenderName) == 0 && len(f.CategoryName) == 0 && len(f.BrandName) == 0
}
