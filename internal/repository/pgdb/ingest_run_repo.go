package pgdb

import (
	"context"

	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// IngestRunRepo хранит итоги прогонов импорта в PostgreSQL.
type IngestRunRepo struct {
	pool *pgxpool.Pool
}

func NewIngestRunRepo(pool *pgxpool.Pool) *IngestRunRepo {
	return &IngestRunRepo{
		pool: pool,
	}
}

// SaveReport записывает итог прогона. Повторная запись того же run_id
// перезаписывает счётчики, прогон идентифицируется uuid-ом.
func (r *IngestRunRepo) SaveReport(ctx context.Context, report *domain.IngestReport) error {
	query := `
		INSERT INTO ingest_runs (run_id, collection, inserted, skipped, failed, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id)
		DO UPDATE SET
			collection = EXCLUDED.collection,
			inserted = EXCLUDED.inserted,
			skipped = EXCLUDED.skipped,
			failed = EXCLUDED.failed,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at;
	`

	_, err := r.pool.Exec(ctx, query,
		report.RunID, report.Collection,
		report.Inserted, report.Skipped, report.Failed,
		report.StartedAt, report.FinishedAt,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LastReport возвращает итог последнего завершённого прогона по коллекции.
func (r *IngestRunRepo) LastReport(ctx context.Context, collection string) (*domain.IngestReport, error) {
	query := `
		SELECT run_id, collection, inserted, skipped, failed, started_at, finished_at
		FROM ingest_runs
		WHERE collection = $1
		ORDER BY finished_at DESC
		LIMIT 1;
	`

	var report domain.IngestReport
	err := r.pool.QueryRow(ctx, query, collection).Scan(
		&report.RunID, &report.Collection,
		&report.Inserted, &report.Skipped, &report.Failed,
		&report.StartedAt, &report.FinishedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &report, nil
}
