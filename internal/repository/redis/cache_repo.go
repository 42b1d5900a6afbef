package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	r "github.com/redis/go-redis/v9"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/internal/repository/redis/converter"
	"github.com/DRSN-tech/semantic-search/pkg/clients"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/jimlawless/whereami"
)

// SearchCacheRepo кэширует готовые выдачи поиска. Кэш строго best-effort:
// любая ошибка Redis трактуется как промах и не ломает запрос.
type SearchCacheRepo struct {
	client *clients.RedisClient
	conv   converter.SearchResultConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewSearchCacheRepo(client *clients.RedisClient, conv converter.SearchResultConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *SearchCacheRepo {
	return &SearchCacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// searchKeyPayload фиксирует все параметры запроса, влияющие на выдачу.
type searchKeyPayload struct {
	Kind      string             `json:"kind"`
	Text      string             `json:"text,omitempty"`
	ImageHash string             `json:"image_hash,omitempty"`
	Filters   *domain.FilterSpec `json:"filters,omitempty"`
	Limit     int                `json:"limit"`
	Threshold float32            `json:"threshold"`
}

// BuildKey строит детерминированный ключ кэша из формы запроса.
func (repo *SearchCacheRepo) BuildKey(query domain.SearchQuery, filters *domain.FilterSpec,
	limit int, threshold float32) string {
	payload := searchKeyPayload{
		Limit:     limit,
		Threshold: threshold,
	}
	if !filters.IsEmpty() {
		payload.Filters = filters
	}

	switch query.Kind {
	case domain.ImageQuery:
		payload.Kind = "image"
		sum := sha256.Sum256(query.Image)
		payload.ImageHash = hex.EncodeToString(sum[:])
	default:
		payload.Kind = "text"
		payload.Text = query.Text
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// Marshal структуры без каналов и функций не падает, но ключ
		// обязан быть детерминированным даже в невозможной ветке.
		return fmt.Sprintf("search:raw:%s:%d:%f", query.Text, limit, threshold)
	}

	sum := sha256.Sum256(data)

	return "search:" + hex.EncodeToString(sum[:])
}

// GetResults возвращает закэшированную выдачу по ключу.
// Промах и любая ошибка Redis дают (nil, false).
func (repo *SearchCacheRepo) GetResults(ctx context.Context, key string) ([]domain.SearchResult, bool) {
	data, err := repo.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, r.Nil) {
			repo.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	var models []converter.SearchResultRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		repo.logger.Warnf("Search cache unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := repo.client.Client.Del(context.Background(), key).Err(); err != nil {
			repo.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	return repo.conv.ToDomain(models), true
}

// SetResults кэширует выдачу с TTL из конфигурации, логируя ошибки записи.
func (repo *SearchCacheRepo) SetResults(ctx context.Context, key string, results []domain.SearchResult) {
	data, err := json.Marshal(repo.conv.ToRedisModels(results))
	if err != nil {
		repo.logger.Warnf("Search cache marshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return
	}

	if err := repo.client.Client.Set(ctx, key, data, repo.cfg.SearchTTL).Err(); err != nil {
		repo.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}
