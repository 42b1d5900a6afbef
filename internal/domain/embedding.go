package domain

import "time"

// Payload описывает дополнительную информацию вектора
type Payload map[string]any

// Embedding представляет готовую к сохранению точку:
// детерминированный id, комбинированный вектор и атрибуты товара.
type Embedding struct {
	PointID uint64
	Vector  []float32
	Payload Payload
}

func NewEmbedding(pointID uint64, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		PointID: pointID,
		Vector:  vector,
		Payload: payload,
	}
}

// NewPayload собирает payload точки из нормализованной записи каталога.
// mediaKey — ключ архивной копии изображения в S3, пустая строка если архив не удался.
func NewPayload(item *Item, mediaKey string) Payload {
	return Payload{
		"product_id":    item.SourceID,
		"name":          item.Name,
		"description":   item.Description,
		"link":          item.LinkURL,
		"image_url":     item.MediaURL,
		"media_key":     mediaKey,
		"price":         item.Price,
		"currency":      item.Currency,
		"brand_name":    item.BrandName,
		"category_name": item.CategoryName,
		"gender_name":   item.GenderName,
		"region":        item.Region,
		"color_names":   toAnySlice(item.ColorNames),
		"sizes":         toAnySlice(item.Sizes),
		"rating":        item.Rating,
		"material":      item.Material,
		"created_at":    time.Now().UTC().UnixNano(),
	}
}

func toAnySlice(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
