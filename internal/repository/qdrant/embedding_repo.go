package qdrant

import (
	"context"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EmbeddingRepo репозиторий для работы с embedding-векторами в Qdrant
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
	}
}

// Recreate пересоздаёт коллекцию с нуля: импорт каталога — это полная замена
// снапшота, читатели видят либо прежнюю полную коллекцию, либо новую.
func (q *EmbeddingRepo) Recreate(ctx context.Context) error {
	name := q.cfg.CollectionName

	exists, err := q.client.CollectionExists(ctx, name)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrCollectionSetup))
	}

	if exists {
		if err := q.client.DeleteCollection(ctx, name); err != nil {
			return e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrCollectionSetup))
		}
	}

	if err := q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrCollectionSetup))
	}

	return nil
}

// Upsert сохраняет или обновляет embedding-векторы в коллекции.
// Точки с одинаковым id перезаписываются, не дублируются.
func (q *EmbeddingRepo) Upsert(ctx context.Context, vectors []domain.Embedding) error {
	if len(vectors) == 0 {
		return nil
	}

	reqVectors := make([]*qdrant.PointStruct, 0, len(vectors))
	for _, vector := range vectors {
		reqVectors = append(reqVectors, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(vector.PointID),
			Vectors: qdrant.NewVectors(vector.Vector...),
			Payload: qdrant.NewValueMap(vector.Payload),
		})
	}

	wait := true
	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.CollectionName,
		Points:         reqVectors,
		Wait:           &wait,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), classifyStoreErr(err))
	}

	return nil
}

// classifyStoreErr разделяет отказ хранилища принять запрос и его недоступность.
// Повторы имеют смысл только для второго случая.
func classifyStoreErr(err error) error {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition:
		return e.Wrap(err.Error(), e.ErrStoreValidation)
	default:
		return e.Wrap(err.Error(), e.ErrStoreConnection)
	}
}

// Search выполняет поиск ближайших точек. Хранилище само ранжирует результаты,
// порядок ответа не пересортировывается.
func (q *EmbeddingRepo) Search(ctx context.Context, vector []float32, filter *domain.FilterSpec, limit uint64, scoreThreshold float32) ([]domain.Hit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter:         BuildFilter(filter),
		Limit:          &limit,
		ScoreThreshold: &scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), classifyStoreErr(err))
	}

	hits := make([]domain.Hit, 0, len(points))
	for _, point := range points {
		hits = append(hits, domain.Hit{
			Payload: extractPayload(point.Payload),
			Score:   point.Score,
		})
	}

	return hits, nil
}

// extractPayload конвертирует protobuf-payload Qdrant в доменное представление.
func extractPayload(payload map[string]*qdrant.Value) domain.Payload {
	if payload == nil {
		return nil
	}

	result := make(domain.Payload, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}

	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
