package domain

// Hit — сырой результат поиска из векторного хранилища.
type Hit struct {
	Payload Payload
	Score   float32
}

// SearchResult — один результат поиска для внешнего использования.
type SearchResult struct {
	ProductID    int64
	Name         string
	Description  string
	MediaURL     string
	LinkURL      string
	Score        float32
	Price        int64
	Currency     string
	BrandName    string
	CategoryName string
	GenderName   string
	Region       string
	ColorNames   []string
	Sizes        []string
}
