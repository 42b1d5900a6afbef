package converter

import "github.com/DRSN-tech/semantic-search/internal/domain"

// SearchResultRedisModel — форма результата поиска, хранимая в Redis.
type SearchResultRedisModel struct {
	ProductID    int64    `json:"product_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MediaURL     string   `json:"media_url"`
	LinkURL      string   `json:"link_url"`
	Score        float32  `json:"score"`
	Price        int64    `json:"price"`
	Currency     string   `json:"currency"`
	BrandName    string   `json:"brand_name"`
	CategoryName string   `json:"category_name"`
	GenderName   string   `json:"gender_name"`
	Region       string   `json:"region"`
	ColorNames   []string `json:"color_names,omitempty"`
	Sizes        []string `json:"sizes,omitempty"`
}

type SearchResultConverter interface {
	ToRedisModels(results []domain.SearchResult) []SearchResultRedisModel
	ToDomain(models []SearchResultRedisModel) []domain.SearchResult
}

type searchResultConverter struct{}

func NewSearchResultConverter() SearchResultConverter {
	return &searchResultConverter{}
}

func (c *searchResultConverter) ToRedisModels(results []domain.SearchResult) []SearchResultRedisModel {
	models := make([]SearchResultRedisModel, len(results))
	for i, res := range results {
		models[i] = SearchResultRedisModel(res)
	}

	return models
}

func (c *searchResultConverter) ToDomain(models []SearchResultRedisModel) []domain.SearchResult {
	results := make([]domain.SearchResult, len(models))
	for i, model := range models {
		results[i] = domain.SearchResult(model)
	}

	return results
}
