package qdrant

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/semantic-search/internal/domain"
)

func TestBuildFilter_NilSpec(t *testing.T) {
	assert.Nil(t, BuildFilter(nil))
}

func TestBuildFilter_EmptySpec(t *testing.T) {
	assert.Nil(t, BuildFilter(&domain.FilterSpec{}))
}

func TestBuildFilter_PriceRangeAndSizes(t *testing.T) {
	min, max := int64(5000), int64(20000)
	spec := &domain.FilterSpec{
		PriceMin: &min,
		PriceMax: &max,
		Sizes:    []string{"M"},
	}

	filter := BuildFilter(spec)
	require.NotNil(t, filter)
	require.Len(t, filter.Must, 2)
	assert.Empty(t, filter.Should)
	assert.Empty(t, filter.MustNot)

	price := findCondition(t, filter.Must, fieldPrice)
	priceRange := price.GetRange()
	require.NotNil(t, priceRange)
	require.NotNil(t, priceRange.Gte)
	require.NotNil(t, priceRange.Lte)
	assert.Equal(t, float64(5000), *priceRange.Gte)
	assert.Equal(t, float64(20000), *priceRange.Lte)
	assert.Nil(t, priceRange.Gt)
	assert.Nil(t, priceRange.Lt)

	sizes := findCondition(t, filter.Must, fieldSizes)
	keywords := sizes.GetMatch().GetKeywords()
	require.NotNil(t, keywords)
	assert.Equal(t, []string{"M"}, keywords.GetStrings())
}

func TestBuildFilter_OnlyLowerPriceBound(t *testing.T) {
	min := int64(990)
	filter := BuildFilter(&domain.FilterSpec{PriceMin: &min})

	require.NotNil(t, filter)
	require.Len(t, filter.Must, 1)

	priceRange := filter.Must[0].GetField().GetRange()
	require.NotNil(t, priceRange)
	require.NotNil(t, priceRange.Gte)
	assert.Equal(t, float64(990), *priceRange.Gte)
	assert.Nil(t, priceRange.Lte)
}

func TestBuildFilter_OnlyUpperPriceBound(t *testing.T) {
	max := int64(15000)
	filter := BuildFilter(&domain.FilterSpec{PriceMax: &max})

	require.NotNil(t, filter)
	require.Len(t, filter.Must, 1)

	priceRange := filter.Must[0].GetField().GetRange()
	require.NotNil(t, priceRange)
	assert.Nil(t, priceRange.Gte)
	require.NotNil(t, priceRange.Lte)
	assert.Equal(t, float64(15000), *priceRange.Lte)
}

func TestBuildFilter_CurrencyExactMatch(t *testing.T) {
	filter := BuildFilter(&domain.FilterSpec{Currency: "EUR"})

	require.NotNil(t, filter)
	require.Len(t, filter.Must, 1)

	cond := filter.Must[0].GetField()
	require.NotNil(t, cond)
	assert.Equal(t, fieldCurrency, cond.GetKey())
	assert.Equal(t, "EUR", cond.GetMatch().GetKeyword())
}

func TestBuildFilter_AnyOfWithinField(t *testing.T) {
	spec := &domain.FilterSpec{
		ColorNames: []string{"blue", "navy"},
		BrandName:  []string{"Acme"},
	}

	filter := BuildFilter(spec)
	require.NotNil(t, filter)
	require.Len(t, filter.Must, 2)

	colors := findCondition(t, filter.Must, fieldColorNames)
	assert.Equal(t, []string{"blue", "navy"}, colors.GetMatch().GetKeywords().GetStrings())

	brand := findCondition(t, filter.Must, fieldBrandName)
	assert.Equal(t, []string{"Acme"}, brand.GetMatch().GetKeywords().GetStrings())
}

func TestBuildFilter_AllFieldsCombineInMust(t *testing.T) {
	min := int64(100)
	spec := &domain.FilterSpec{
		PriceMin:     &min,
		Currency:     "USD",
		Region:       []string{"US"},
		Sizes:        []string{"S", "M"},
		ColorNames:   []string{"red"},
		GenderName:   []string{"Women"},
		CategoryName: []string{"Dresses"},
		BrandName:    []string{"Acme", "Globex"},
	}

	filter := BuildFilter(spec)
	require.NotNil(t, filter)
	assert.Len(t, filter.Must, 8)
	assert.Empty(t, filter.Should)
	assert.Empty(t, filter.MustNot)
}

func findCondition(t *testing.T, conditions []*qdrant.Condition, key string) *qdrant.FieldCondition {
	t.Helper()
	for _, cond := range conditions {
		if field := cond.GetField(); field != nil && field.GetKey() == key {
			return field
		}
	}
	t.Fatalf("condition for %q not found", key)
	return nil
}
