package usecase

import "github.com/DRSN-tech/semantic-search/internal/domain"

// SEARCH USECASE

// SearchReq — запрос семантического поиска. Заполняется ровно одно из
// полей Text / ImageURL.
type SearchReq struct {
	Text           string
	ImageURL       string
	Filters        *domain.FilterSpec
	Limit          int      // 0 означает лимит по умолчанию
	ScoreThreshold *float32 // nil означает порог по умолчанию
}

// SearchRes — ранжированная выдача поиска.
type SearchRes struct {
	Results []domain.SearchResult
}

// MAPPERS

func NewSearchReq(text, imageURL string, filters *domain.FilterSpec, limit int, threshold *float32) *SearchReq {
	return &SearchReq{
		Text:           text,
		ImageURL:       imageURL,
		Filters:        filters,
		Limit:          limit,
		ScoreThreshold: threshold,
	}
}

func NewSearchRes(results []domain.SearchResult) *SearchRes {
	return &SearchRes{
		Results: results,
	}
}
