package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/internal/usecase"
	"github.com/DRSN-tech/semantic-search/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any) {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeSearchUC struct {
	req *usecase.SearchReq
	res *usecase.SearchRes
	err error
}

func (f *fakeSearchUC) Search(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "599.99", want: 59999},
		{in: "600", want: 60000},
		{in: "0.5", want: 50},
		{in: "0", want: 0},
		{in: "abc", wantErr: e.ErrInvalidPrice},
		{in: "-1", wantErr: e.ErrInvalidPrice},
		{in: "1.999", wantErr: e.ErrPricePrecision},
	}

	for _, tc := range cases {
		got, err := parsePriceToCents(tc.in)
		if tc.wantErr != nil {
			assert.True(t, errors.Is(err, tc.wantErr), "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParsePriceRange_MinAboveMax(t *testing.T) {
	_, _, err := parsePriceRange(&PriceRange{Min: "200", Max: "50"})
	assert.True(t, errors.Is(err, e.ErrInvalidPriceRange))
}

func TestParsePriceRange_IndependentBounds(t *testing.T) {
	min, max, err := parsePriceRange(&PriceRange{Min: "50"})
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.Equal(t, int64(5000), *min)
	assert.Nil(t, max)
}

func TestDecodeSearchRequest_UnknownFieldRejected(t *testing.T) {
	body := strings.NewReader(`{"text":"dress","filers":{}}`)

	_, err := decodeSearchRequest(body)
	assert.True(t, errors.Is(err, e.ErrUnknownFilterField))
}

func TestDecodeSearchRequest_MalformedJSON(t *testing.T) {
	_, err := decodeSearchRequest(strings.NewReader(`{"text":`))
	assert.True(t, errors.Is(err, e.ErrStatusBadRequest))
}

func TestToFilterSpec_FullTranslation(t *testing.T) {
	spec, err := toFilterSpec(&SearchFilters{
		Price:  &PriceRange{Min: "50", Max: "200", Currency: "EUR"},
		Sizes:  []string{"M"},
		Colors: []string{"blue"},
	})
	require.NoError(t, err)

	require.NotNil(t, spec.PriceMin)
	require.NotNil(t, spec.PriceMax)
	assert.Equal(t, int64(5000), *spec.PriceMin)
	assert.Equal(t, int64(20000), *spec.PriceMax)
	assert.Equal(t, "EUR", spec.Currency)
	assert.Equal(t, []string{"M"}, spec.Sizes)
	assert.Equal(t, []string{"blue"}, spec.ColorNames)
}

func TestDecodeSearchRequest_CurrencyInsidePrice(t *testing.T) {
	req, err := decodeSearchRequest(strings.NewReader(
		`{"text":"dress","filters":{"price":{"min":"50","max":"200","currency":"EUR"}}}`))
	require.NoError(t, err)

	spec, err := toFilterSpec(req.Filters)
	require.NoError(t, err)

	require.NotNil(t, spec.PriceMin)
	require.NotNil(t, spec.PriceMax)
	assert.Equal(t, int64(5000), *spec.PriceMin)
	assert.Equal(t, int64(20000), *spec.PriceMax)
	assert.Equal(t, "EUR", spec.Currency)
}

func TestSearchHandler_OK(t *testing.T) {
	uc := &fakeSearchUC{
		res: usecase.NewSearchRes([]domain.SearchResult{
			{ProductID: 7, Name: "Blue Dress", Score: 0.91, Price: 12050, Currency: "EUR"},
		}),
	}
	handler := NewSearchHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
		strings.NewReader(`{"text":"blue dress","limit":5}`))
	rec := httptest.NewRecorder()

	handler.search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_id":7`)
	assert.Contains(t, rec.Body.String(), `"price":"120.50"`)

	require.NotNil(t, uc.req)
	assert.Equal(t, "blue dress", uc.req.Text)
	assert.Equal(t, 5, uc.req.Limit)
}

func TestSearchHandler_ValidationError(t *testing.T) {
	uc := &fakeSearchUC{err: e.ErrQueryRequired}
	handler := NewSearchHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), e.ErrQueryRequired.Error())
}

func TestSearchHandler_InternalErrorHidden(t *testing.T) {
	uc := &fakeSearchUC{err: errors.New("qdrant exploded")}
	handler := NewSearchHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
		strings.NewReader(`{"text":"q"}`))
	rec := httptest.NewRecorder()

	handler.search(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "qdrant")
}

func TestSearchHandler_BadFilterField(t *testing.T) {
	handler := NewSearchHandler(&fakeSearchUC{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
		strings.NewReader(`{"text":"q","filters":{"colour":["blue"]}}`))
	rec := httptest.NewRecorder()

	handler.search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), e.ErrUnknownFilterField.Error())
}
