package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/internal/usecase"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// SearchRequest — тело POST /api/v1/search.
type SearchRequest struct {
	Text           string         `json:"text,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	Filters        *SearchFilters `json:"filters,omitempty"`
	Limit          int            `json:"limit,omitempty"`
	ScoreThreshold *float32       `json:"score_threshold,omitempty"`
}

// SearchFilters — структурные ограничения выдачи. Цены передаются
// десятичными строками и хранятся в копейках.
type SearchFilters struct {
	Price    *PriceRange `json:"price,omitempty"`
	Region   []string    `json:"region,omitempty"`
	Sizes    []string    `json:"sizes,omitempty"`
	Colors   []string    `json:"colors,omitempty"`
	Gender   []string    `json:"gender,omitempty"`
	Category []string    `json:"category,omitempty"`
	Brand    []string    `json:"brand,omitempty"`
}

// PriceRange — ценовое ограничение; валюта задаёт, в чём выражены границы,
// и матчится с валютой товара точно.
type PriceRange struct {
	Min      string `json:"min,omitempty"`
	Max      string `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// SearchResponse — ранжированная выдача поиска.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

type SearchResultItem struct {
	ProductID    int64    `json:"product_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Link         string   `json:"link,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Score        float32  `json:"score"`
	Price        string   `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	BrandName    string   `json:"brand_name,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	GenderName   string   `json:"gender_name,omitempty"`
	Region       string   `json:"region,omitempty"`
	ColorNames   []string `json:"color_names,omitempty"`
	Sizes        []string `json:"sizes,omitempty"`
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrQueryRequired):
		return http.StatusBadRequest, e.ErrQueryRequired.Error()
	case errors.Is(err, e.ErrAmbiguousQuery):
		return http.StatusBadRequest, e.ErrAmbiguousQuery.Error()
	case errors.Is(err, e.ErrInvalidLimit):
		return http.StatusBadRequest, e.ErrInvalidLimit.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidPriceRange):
		return http.StatusBadRequest, e.ErrInvalidPriceRange.Error()
	case errors.Is(err, e.ErrUnknownFilterField):
		return http.StatusBadRequest, e.ErrUnknownFilterField.Error()
	case errors.Is(err, e.ErrFetchPermanent):
		return http.StatusBadRequest, e.ErrFetchPermanent.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeSearchRequest разбирает тело запроса. Неизвестные поля
// отклоняются, чтобы опечатка в имени фильтра не превращалась
// в поиск без ограничений.
func decodeSearchRequest(body io.Reader) (*SearchRequest, error) {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req SearchRequest
	if err := dec.Decode(&req); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return nil, e.ErrUnknownFilterField
		}
		return nil, e.ErrStatusBadRequest
	}

	return &req, nil
}

// toUsecaseReq транслирует HTTP-запрос в запрос бизнес-логики.
func toUsecaseReq(req *SearchRequest) (*usecase.SearchReq, error) {
	filters, err := toFilterSpec(req.Filters)
	if err != nil {
		return nil, err
	}

	return usecase.NewSearchReq(req.Text, req.ImageURL, filters, req.Limit, req.ScoreThreshold), nil
}

func toFilterSpec(f *SearchFilters) (*domain.FilterSpec, error) {
	if f == nil {
		return nil, nil
	}

	spec := &domain.FilterSpec{
		Region:       f.Region,
		Sizes:        f.Sizes,
		ColorNames:   f.Colors,
		GenderName:   f.Gender,
		CategoryName: f.Category,
		BrandName:    f.Brand,
	}

	if f.Price != nil {
		min, max, err := parsePriceRange(f.Price)
		if err != nil {
			return nil, err
		}
		spec.PriceMin = min
		spec.PriceMax = max
		spec.Currency = f.Price.Currency
	}

	return spec, nil
}

func parsePriceRange(pr *PriceRange) (*int64, *int64, error) {
	var min, max *int64

	if strings.TrimSpace(pr.Min) != "" {
		cents, err := parsePriceToCents(pr.Min)
		if err != nil {
			return nil, nil, err
		}
		min = &cents
	}

	if strings.TrimSpace(pr.Max) != "" {
		cents, err := parsePriceToCents(pr.Max)
		if err != nil {
			return nil, nil, err
		}
		max = &cents
	}

	if min != nil && max != nil && *min > *max {
		return nil, nil, e.ErrInvalidPriceRange
	}

	return min, max, nil
}

// parsePriceToCents переводит десятичную строку вида "599.99" в копейки.
func parsePriceToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000).Mul(decimal.NewFromInt(100))
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// toSearchResponse транслирует выдачу бизнес-логики в HTTP-ответ.
// Цена форматируется обратно в десятичную строку.
func toSearchResponse(res *usecase.SearchRes) *SearchResponse {
	items := make([]SearchResultItem, 0, len(res.Results))
	for _, r := range res.Results {
		item := SearchResultItem{
			ProductID:    r.ProductID,
			Name:         r.Name,
			Description:  r.Description,
			Link:         r.LinkURL,
			ImageURL:     r.MediaURL,
			Score:        r.Score,
			Currency:     r.Currency,
			BrandName:    r.BrandName,
			CategoryName: r.CategoryName,
			GenderName:   r.GenderName,
			Region:       r.Region,
			ColorNames:   r.ColorNames,
			Sizes:        r.Sizes,
		}
		if r.Price > 0 {
			item.Price = decimal.NewFromInt(r.Price).Div(decimal.NewFromInt(100)).StringFixed(2)
		}
		items = append(items, item)
	}

	return &SearchResponse{Results: items}
}
