package usecase

import (
	"context"

	"github.com/DRSN-tech/semantic-search/internal/domain"
)

type EmbeddingRepository interface {
	Recreate(ctx context.Context) error
	Upsert(ctx context.Context, vectors []domain.Embedding) error
	Search(ctx context.Context, vector []float32, filter *domain.FilterSpec, limit uint64, scoreThreshold float32) ([]domain.Hit, error)
}

type SearchCacheRepository interface {
	BuildKey(query domain.SearchQuery, filters *domain.FilterSpec, limit int, threshold float32) string
	GetResults(ctx context.Context, key string) ([]domain.SearchResult, bool)
	SetResults(ctx context.Context, key string, results []domain.SearchResult)
}

type MediaRepository interface {
	Archive(ctx context.Context, pointID uint64, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

type IngestRunRepository interface {
	SaveReport(ctx context.Context, report *domain.IngestReport) error
}
