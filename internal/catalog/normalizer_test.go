package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NoImagesYieldsNothing(t *testing.T) {
	raw := &RawRecord{ID: 1, Name: "Ghost Product"}

	items := Normalize(raw)
	assert.Empty(t, items)
}

func TestNormalize_OneItemPerImage(t *testing.T) {
	raw := &RawRecord{
		ID:          7,
		Name:        "Blue Dress",
		Description: "",
		Link:        "http://shop/7",
		Images:      []string{"http://x/a.jpg", "http://x/b.jpg", "http://x/c.jpg"},
		Colors:      []string{"#0000ff"},
		Brand:       "Acme",
		Category:    "Dresses",
		Gender:      "Women",
		Region:      "EU",
		Sizes:       []string{"S", "M"},
		Price:       "120.50",
		Currency:    "EUR",
	}

	items := Normalize(raw)
	require.Len(t, items, 3)

	for i, item := range items {
		assert.Equal(t, uint64(7000+i), item.PointID)
		assert.Equal(t, int64(7), item.SourceID)
		assert.Equal(t, i, item.AssetIndex)
		assert.Equal(t, "Blue Dress", item.Name)
		assert.Equal(t, raw.Images[i], item.MediaURL)
		assert.Equal(t, int64(12050), item.Price)
		assert.Equal(t, []string{"blue"}, item.ColorNames)
		assert.Equal(t, []string{"S", "M"}, item.Sizes)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := &RawRecord{
		ID:     42,
		Name:   "Coat",
		Images: []string{"http://x/a.jpg"},
		Price:  "10",
	}

	first := Normalize(raw)
	second := Normalize(raw)
	assert.Equal(t, first, second)
}

func TestNormalize_MissingOptionalAttributes(t *testing.T) {
	raw := &RawRecord{
		ID:     3,
		Name:   "Plain Shirt",
		Images: []string{"http://x/s.jpg"},
	}

	items := Normalize(raw)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "", item.Description)
	assert.Equal(t, "", item.Material)
	assert.Zero(t, item.Rating)
	assert.Zero(t, item.Price) // нечитаемая цена нормализуется в 0, не валит запись
}

func TestNormalize_SkipsBlankImageURL(t *testing.T) {
	raw := &RawRecord{
		ID:     5,
		Name:   "Hat",
		Images: []string{"http://x/a.jpg", "   ", "http://x/b.jpg"},
		Price:  "5",
	}

	items := Normalize(raw)
	require.Len(t, items, 2)
	// Номер ассета сохраняется за исходной позицией, id не съезжают
	assert.Equal(t, uint64(5000), items[0].PointID)
	assert.Equal(t, uint64(5002), items[1].PointID)
}

func TestColorName_NearestMatch(t *testing.T) {
	assert.Equal(t, "blue", ColorName("#0000fe"))
	assert.Equal(t, "black", ColorName("#010101"))
	assert.Equal(t, "white", ColorName("#fefefe"))
	assert.Equal(t, "red", ColorName("f00")) // короткая форма без решётки
}

func TestColorName_UnmappableIsUnknown(t *testing.T) {
	assert.Equal(t, UnknownColor, ColorName("not-a-color"))
	assert.Equal(t, UnknownColor, ColorName("#12"))
	assert.Equal(t, UnknownColor, ColorName(""))
}

func TestColorNames_PreservesOrderAndLength(t *testing.T) {
	names := ColorNames([]string{"#ff0000", "bogus", "#0000ff"})
	assert.Equal(t, []string{"red", UnknownColor, "blue"}, names)
}

func TestNormalizeAll_Explodes(t *testing.T) {
	records := []RawRecord{
		{ID: 1, Name: "A", Images: []string{"u1", "u2"}, Price: "1"},
		{ID: 2, Name: "B", Price: "1"}, // без изображений
		{ID: 3, Name: "C", Images: []string{"u3"}, Price: "1"},
	}

	items := NormalizeAll(records)
	require.Len(t, items, 3)
	assert.Equal(t, uint64(1000), items[0].PointID)
	assert.Equal(t, uint64(1001), items[1].PointID)
	assert.Equal(t, uint64(3000), items[2].PointID)
}
