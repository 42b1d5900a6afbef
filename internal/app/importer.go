package app

import (
	"context"
	"time"

	"github.com/DRSN-tech/semantic-search/internal/catalog"
	config "github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/internal/infrastructure/clip"
	"github.com/DRSN-tech/semantic-search/internal/infrastructure/fetcher"
	"github.com/DRSN-tech/semantic-search/internal/infrastructure/kafka"
	s3Repo "github.com/DRSN-tech/semantic-search/internal/repository/minio"
	"github.com/DRSN-tech/semantic-search/internal/repository/pgdb"
	qdrantRepo "github.com/DRSN-tech/semantic-search/internal/repository/qdrant"
	"github.com/DRSN-tech/semantic-search/internal/usecase"
	"github.com/DRSN-tech/semantic-search/pkg/clients"
	"github.com/DRSN-tech/semantic-search/pkg/closer"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/DRSN-tech/semantic-search/pkg/postgres"
)

// RunImport прогоняет один импорт снапшота каталога и завершает процесс.
func RunImport(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	cl := closer.New()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := cl.Close(closeCtx); err != nil {
			log.Warnf("Resource close error: %v", err)
		}
	}()

	records, err := catalog.LoadRecords(cfg.Importer.RecordsPath)
	if err != nil {
		log.Errorf(err, "failed to load catalog snapshot")
		return err
	}
	items := catalog.NormalizeAll(records)
	log.Infof("Catalog snapshot loaded. records: %d, items: %d", len(records), len(items))

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		log.Errorf(err, "failed to initialize qdrant client")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Close()
	})

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return err
	}

	minioCtx, minioCancel := context.WithTimeout(ctx, 10*time.Second)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		log.Errorf(err, "failed to initialize minio bucket")
		return err
	}

	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return err
	}

	producer := kafka.NewProducer(log, cfg.Kafka)
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	embRepo := qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant)
	mediaRepo := s3Repo.NewMediaRepo(minioClient, cfg.Minio)
	runRepo := pgdb.NewIngestRunRepo(db.Pool)

	if prev, err := runRepo.LastReport(ctx, cfg.Qdrant.CollectionName); err == nil {
		log.Infof("Previous import run. run_id: %s, inserted: %d, finished_at: %s",
			prev.RunID, prev.Inserted, prev.FinishedAt.Format(time.RFC3339))
	}

	encoder := clip.NewClient(cfg.Clip, cfg.Qdrant.VectorSize, log)
	mediaFetcher := fetcher.New(cfg.Fetcher, log)

	var ingestUC usecase.IngestUC = usecase.NewIngestUC(embRepo, mediaRepo, runRepo, encoder, mediaFetcher, producer, cfg, log)

	report, err := ingestUC.Run(ctx, items)
	if err != nil {
		log.Errorf(err, "import run failed")
		return err
	}

	log.Infof("Import finished. run_id: %s, inserted: %d, skipped: %d, failed: %d, took: %s",
		report.RunID, report.Inserted, report.Skipped, report.Failed,
		report.FinishedAt.Sub(report.StartedAt))

	return nil
}
