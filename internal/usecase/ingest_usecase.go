package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/DRSN-tech/semantic-search/pkg/retry"
)

// IngestUseCase прогоняет снапшот каталога через пайплайн импорта:
// скачивание медиа, кодирование текста и картинки, комбинирование
// векторов и батчевая запись в хранилище. Сбой отдельной записи или
// отдельного батча не останавливает прогон.
type IngestUseCase struct {
	embeddingRepo EmbeddingRepository
	mediaRepo     MediaRepository
	runRepo       IngestRunRepository
	encoder       EncoderInfra
	fetcher       MediaFetcherInfra
	publisher     SnapshotPublisherInfra
	cfg           *cfg.Config
	logger        logger.Logger
}

func NewIngestUC(
	embeddingRepo EmbeddingRepository,
	mediaRepo MediaRepository,
	runRepo IngestRunRepository,
	encoder EncoderInfra,
	fetcher MediaFetcherInfra,
	publisher SnapshotPublisherInfra,
	cfg *cfg.Config,
	logger logger.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		embeddingRepo: embeddingRepo,
		mediaRepo:     mediaRepo,
		runRepo:       runRepo,
		encoder:       encoder,
		fetcher:       fetcher,
		publisher:     publisher,
		cfg:           cfg,
		logger:        logger,
	}
}

// Run выполняет полный прогон импорта и возвращает его итог.
// Единственная фатальная ошибка — невозможность подготовить коллекцию.
func (u *IngestUseCase) Run(ctx context.Context, items []domain.Item) (*domain.IngestReport, error) {
	const op = "IngestUseCase.Run"

	report := &domain.IngestReport{
		RunID:      uuid.NewString(),
		Collection: u.cfg.Qdrant.CollectionName,
		StartedAt:  time.Now().UTC(),
	}

	// Полная замена коллекции: старый индекс живёт до конца прогона
	// только в памяти Qdrant, снаружи о смене снапшота узнают из Kafka.
	if err := u.embeddingRepo.Recreate(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	inserted, skipped, failed := u.runPipeline(ctx, items)
	report.Inserted = inserted
	report.Skipped = skipped
	report.Failed = failed
	report.FinishedAt = time.Now().UTC()

	if err := u.runRepo.SaveReport(ctx, report); err != nil {
		u.logger.Warnf("Failed to persist ingest report. run_id: %s, error: %v", report.RunID, e.Wrap(op, err))
	}

	if err := u.publisher.PublishSnapshot(ctx, report); err != nil {
		u.logger.Warnf("Failed to publish snapshot event. run_id: %s, error: %v", report.RunID, e.Wrap(op, err))
	}

	return report, nil
}

// runPipeline раскладывает записи по воркерам и собирает готовые точки
// в единственном батчере. Возвращает счётчики inserted/skipped/failed.
func (u *IngestUseCase) runPipeline(ctx context.Context, items []domain.Item) (int, int, int) {
	workers := u.cfg.Importer.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan domain.Item)
	points := make(chan domain.Embedding, u.cfg.Importer.BatchSize)

	var skipped atomic.Int64

	var workerWg sync.WaitGroup
	for range workers {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for item := range jobs {
				point, err := u.buildPoint(ctx, &item)
				if err != nil {
					skipped.Add(1)
					u.logger.Warnf("Skipping catalog item. point_id: %d, error: %v", item.PointID, err)
					continue
				}
				points <- *point
			}
		}()
	}

	// Единственный потребитель points, владеет счётчиками записи
	batchDone := make(chan struct{})
	var inserted, failed int
	go func() {
		defer close(batchDone)
		inserted, failed = u.consumeBatches(ctx, points)
	}()

	for _, item := range items {
		select {
		case jobs <- item:
		case <-ctx.Done():
			skipped.Add(1)
		}
	}
	close(jobs)

	workerWg.Wait()
	close(points)
	<-batchDone

	return inserted, int(skipped.Load()), failed
}

// consumeBatches копит точки до размера батча и пишет их в хранилище.
// Недоступность хранилища повторяется ограниченно; исчерпавший повторы
// батч списывается в failed целиком, прогон продолжается.
func (u *IngestUseCase) consumeBatches(ctx context.Context, points <-chan domain.Embedding) (int, int) {
	batchSize := u.cfg.Importer.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	var inserted, failed int
	batch := make([]domain.Embedding, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		err := retry.Do(ctx, retry.DefaultPolicy(), func(ctx context.Context) error {
			return u.embeddingRepo.Upsert(ctx, batch)
		}, func(err error) bool {
			return errors.Is(err, e.ErrStoreConnection)
		})
		if err != nil {
			failed += len(batch)
			u.logger.Errorf(err, "Batch upsert failed. size: %d", len(batch))
		} else {
			inserted += len(batch)
		}
		batch = batch[:0]
	}

	for point := range points {
		batch = append(batch, point)
		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()

	return inserted, failed
}

// buildPoint готовит одну точку: медиа, две башни CLIP, комбинированный вектор.
func (u *IngestUseCase) buildPoint(ctx context.Context, item *domain.Item) (*domain.Embedding, error) {
	media, err := u.fetcher.Fetch(ctx, item.MediaURL)
	if err != nil {
		return nil, err
	}

	// Архив медиа не обязателен для индексации, при сбое точка живёт
	// с пустым media_key
	mediaKey, err := u.mediaRepo.Archive(ctx, item.PointID, media)
	if err != nil {
		u.logger.Warnf("Media archive failed. point_id: %d, error: %v", item.PointID, err)
		mediaKey = ""
	}

	textVec, err := u.encoder.EncodeText(ctx, item.SearchText())
	if err != nil {
		u.discardMedia(ctx, mediaKey)
		return nil, err
	}

	imageVec, err := u.encoder.EncodeImage(ctx, media)
	if err != nil {
		u.discardMedia(ctx, mediaKey)
		return nil, err
	}

	combined, err := domain.Combine(textVec, imageVec)
	if err != nil {
		u.discardMedia(ctx, mediaKey)
		return nil, err
	}

	return domain.NewEmbedding(item.PointID, combined, domain.NewPayload(item, mediaKey)), nil
}

// discardMedia убирает осиротевшую архивную копию пропущенной точки.
func (u *IngestUseCase) discardMedia(ctx context.Context, mediaKey string) {
	if mediaKey == "" {
		return
	}
	if err := u.mediaRepo.Remove(ctx, mediaKey); err != nil {
		u.logger.Warnf("Orphaned media cleanup failed. key: %s, error: %v", mediaKey, err)
	}
}
