package domain

// Item описывает одну единицу каталога после нормализации:
// пара (товар, изображение) с общими атрибутами товара.
type Item struct {
	PointID     uint64 // детерминированный id точки: SourceID*1000 + AssetIndex
	SourceID    int64  // id исходной записи каталога
	AssetIndex  int    // порядковый номер изображения внутри записи
	Name        string
	Description string
	MediaURL    string
	LinkURL     string

	Price        int64 // Цена хранится в копейках
	Currency     string
	BrandName    string
	CategoryName string
	GenderName   string
	Region       string
	ColorNames   []string
	Sizes        []string
	Rating       float64
	Material     string
}

// SearchText возвращает текст, по которому индексируется точка.
func (i *Item) SearchText() string {
	if i.Description == "" {
		return i.Name
	}
	return i.Name + " " + i.Description
}

// assetsPerItem — максимум изображений на одну запись каталога,
// заложенный в схему детерминированных id точек.
const assetsPerItem = 1000

// PointID вычисляет id точки по id записи и номеру изображения.
// Повторный импорт той же записи всегда даёт тот же id.
func PointID(sourceID int64, assetIndex int) uint64 {
	return uint64(sourceID)*assetsPerItem + uint64(assetIndex)
}
