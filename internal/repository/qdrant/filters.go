package qdrant

import (
	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/qdrant/go-client/qdrant"
)

// Ключи payload, по которым строятся условия фильтрации.
const (
	fieldPrice        = "price"
	fieldCurrency     = "currency"
	fieldRegion       = "region"
	fieldSizes        = "sizes"
	fieldColorNames   = "color_names"
	fieldGenderName   = "gender_name"
	fieldCategoryName = "category_name"
	fieldBrandName    = "brand_name"
)

// BuildFilter транслирует спецификацию фильтров в предикат Qdrant.
// Все заполненные поля комбинируются по AND (Must). Пустая спецификация
// даёт nil — поиск без ограничений, а не всегда-ложный предикат.
func BuildFilter(f *domain.FilterSpec) *qdrant.Filter {
	if f.IsEmpty() {
		return nil
	}

	var must []*qdrant.Condition

	if cond := priceCondition(f.PriceMin, f.PriceMax); cond != nil {
		must = append(must, cond)
	}

	if f.Currency != "" {
		must = append(must, qdrant.NewMatch(fieldCurrency, f.Currency))
	}

	must = appendAnyOf(must, fieldRegion, f.Region)
	must = appendAnyOf(must, fieldSizes, f.Sizes)
	must = appendAnyOf(must, fieldColorNames, f.ColorNames)
	must = appendAnyOf(must, fieldGenderName, f.GenderName)
	must = appendAnyOf(must, fieldCategoryName, f.CategoryName)
	must = appendAnyOf(must, fieldBrandName, f.BrandName)

	return &qdrant.Filter{Must: must}
}

// priceCondition строит диапазон цены с включительными границами;
// каждая граница опциональна независимо.
func priceCondition(min, max *int64) *qdrant.Condition {
	if min == nil && max == nil {
		return nil
	}

	priceRange := &qdrant.Range{}
	if min != nil {
		gte := float64(*min)
		priceRange.Gte = &gte
	}
	if max != nil {
		lte := float64(*max)
		priceRange.Lte = &lte
	}

	return qdrant.NewRange(fieldPrice, priceRange)
}

// appendAnyOf добавляет условие «хотя бы одно из значений» для keyword-поля.
func appendAnyOf(must []*qdrant.Condition, field string, values []string) []*qdrant.Condition {
	if len(values) == 0 {
		return must
	}
	return append(must, qdrant.NewMatchKeywords(field, values...))
}
