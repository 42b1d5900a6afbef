package catalog

import (
	"strings"

	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/shopspring/decimal"
)

// Normalize разворачивает сырую запись каталога в записи по одному изображению.
// Запись без изображений не попадает в каталог: поиск опирается на медиа.
// Детерминированная функция входа — повторный вызов даёт тот же результат.
func Normalize(raw *RawRecord) []domain.Item {
	if len(raw.Images) == 0 {
		return nil
	}

	price, err := parsePriceToCents(raw.Price)
	if err != nil {
		price = 0
	}

	colorNames := ColorNames(raw.Colors)

	items := make([]domain.Item, 0, len(raw.Images))
	for idx, imageURL := range raw.Images {
		if strings.TrimSpace(imageURL) == "" {
			continue
		}

		items = append(items, domain.Item{
			PointID:      domain.PointID(raw.ID, idx),
			SourceID:     raw.ID,
			AssetIndex:   idx,
			Name:         raw.Name,
			Description:  raw.Description,
			MediaURL:     imageURL,
			LinkURL:      raw.Link,
			Price:        price,
			Currency:     raw.Currency,
			BrandName:    raw.Brand,
			CategoryName: raw.Category,
			GenderName:   raw.Gender,
			Region:       raw.Region,
			ColorNames:   colorNames,
			Sizes:        raw.Sizes,
			Rating:       raw.Rating,
			Material:     raw.Material,
		})
	}

	return items
}

// NormalizeAll нормализует весь снапшот каталога.
func NormalizeAll(records []RawRecord) []domain.Item {
	var items []domain.Item
	for i := range records {
		items = append(items, Normalize(&records[i])...)
	}
	return items
}

// parsePriceToCents конвертирует десятичную строку вида "599.99" в копейки.
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
