package usecase

import (
	"context"

	"github.com/DRSN-tech/semantic-search/internal/domain"
)

type SearchUC interface {
	Search(ctx context.Context, req *SearchReq) (*SearchRes, error)
}

type IngestUC interface {
	Run(ctx context.Context, items []domain.Item) (*domain.IngestReport, error)
}
