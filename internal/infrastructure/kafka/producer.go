package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

// Producer публикует события о завершённых снапшотах каталога.
// Потребители по событию узнают, что новая полная коллекция готова к чтению.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// snapshotEvent — JSON-схема события о снапшоте.
type snapshotEvent struct {
	RunID      string    `json:"run_id"`
	Collection string    `json:"collection"`
	Inserted   int       `json:"inserted"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	FinishedAt time.Time `json:"finished_at"`
}

// PublishSnapshot отправляет событие о завершённом прогоне импорта.
// Ключ — имя коллекции, чтобы события одного каталога шли в одну партицию по порядку.
func (p *Producer) PublishSnapshot(ctx context.Context, report *domain.IngestReport) error {
	value, err := json.Marshal(snapshotEvent{
		RunID:      report.RunID,
		Collection: report.Collection,
		Inserted:   report.Inserted,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
		FinishedAt: report.FinishedAt,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(report.Collection),
		Value: value,
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
