package usecase

import (
	"context"

	"github.com/DRSN-tech/semantic-search/internal/domain"
)

type MediaFetcherInfra interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type EncoderInfra interface {
	EncodeText(ctx context.Context, text string) ([]float32, error)
	EncodeImage(ctx context.Context, image []byte) ([]float32, error)
}

type SnapshotPublisherInfra interface {
	PublishSnapshot(ctx context.Context, report *domain.IngestReport) error
}
