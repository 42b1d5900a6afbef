package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/internal/domain"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100

	cacheWriteTimeout = 500 * time.Millisecond
)

// SearchUseCase реализует семантический поиск по каталогу:
// текстовый или картиночный запрос кодируется в вектор и
// матчится с коллекцией с учётом структурных фильтров.
type SearchUseCase struct {
	embeddingRepo EmbeddingRepository
	cacheRepo     SearchCacheRepository
	encoder       EncoderInfra
	fetcher       MediaFetcherInfra
	cfg           *cfg.QdrantCfg
	logger        logger.Logger
}

func NewSearchUC(
	embeddingRepo EmbeddingRepository,
	cacheRepo SearchCacheRepository,
	encoder EncoderInfra,
	fetcher MediaFetcherInfra,
	cfg *cfg.QdrantCfg,
	logger logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		embeddingRepo: embeddingRepo,
		cacheRepo:     cacheRepo,
		encoder:       encoder,
		fetcher:       fetcher,
		cfg:           cfg,
		logger:        logger,
	}
}

// Search выполняет один поисковый запрос. Порядок выдачи задаётся
// хранилищем векторов и не пересортировывается.
func (s *SearchUseCase) Search(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "SearchUseCase.Search"

	limit, threshold, err := s.validate(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	query, err := s.resolveQuery(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Кэшируются только текстовые запросы: у картиночных ключ зависит
	// от содержимого по внешней ссылке, которое может меняться.
	var cacheKey string
	if query.Kind == domain.TextQuery {
		cacheKey = s.cacheRepo.BuildKey(query, req.Filters, limit, threshold)
		if cached, ok := s.cacheRepo.GetResults(ctx, cacheKey); ok {
			return NewSearchRes(cached), nil
		}
	}

	vector, err := s.encodeQuery(ctx, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Вектор запроса нормируется так же, как векторы точек при импорте
	if err := domain.Normalize(vector); err != nil {
		return nil, e.Wrap(op, err)
	}

	hits, err := s.embeddingRepo.Search(ctx, vector, req.Filters, uint64(limit), threshold)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, toSearchResult(hit))
	}

	if cacheKey != "" {
		// Фоновая запись в кэш, запрос её не ждёт
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
			defer cancel()

			s.cacheRepo.SetResults(bgCtx, cacheKey, results)
		}()
	}

	return NewSearchRes(results), nil
}

// validate проверяет форму запроса и подставляет значения по умолчанию.
func (s *SearchUseCase) validate(req *SearchReq) (int, float32, error) {
	text := strings.TrimSpace(req.Text)
	image := strings.TrimSpace(req.ImageURL)

	if text == "" && image == "" {
		return 0, 0, e.ErrQueryRequired
	}
	if text != "" && image != "" {
		return 0, 0, e.ErrAmbiguousQuery
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 1 || limit > maxSearchLimit {
		return 0, 0, e.ErrInvalidLimit
	}

	threshold := s.cfg.ScoreThreshold
	if req.ScoreThreshold != nil {
		threshold = *req.ScoreThreshold
	}

	return limit, threshold, nil
}

// resolveQuery превращает запрос в помеченный вариант. Для картиночного
// запроса байты скачиваются по ссылке до кодирования.
func (s *SearchUseCase) resolveQuery(ctx context.Context, req *SearchReq) (domain.SearchQuery, error) {
	if text := strings.TrimSpace(req.Text); text != "" {
		return domain.NewTextQuery(text), nil
	}

	data, err := s.fetcher.Fetch(ctx, strings.TrimSpace(req.ImageURL))
	if err != nil {
		return domain.SearchQuery{}, err
	}

	return domain.NewImageQuery(data), nil
}

// encodeQuery кодирует запрос соответствующей башней CLIP.
func (s *SearchUseCase) encodeQuery(ctx context.Context, query domain.SearchQuery) ([]float32, error) {
	switch query.Kind {
	case domain.ImageQuery:
		return s.encoder.EncodeImage(ctx, query.Image)
	default:
		return s.encoder.EncodeText(ctx, query.Text)
	}
}

// toSearchResult раскладывает payload точки в результат поиска.
// Отсутствующие или неожиданно типизированные поля дают нулевые значения.
func toSearchResult(hit domain.Hit) domain.SearchResult {
	return domain.SearchResult{
		ProductID:    payloadInt64(hit.Payload, "product_id"),
		Name:         payloadString(hit.Payload, "name"),
		Description:  payloadString(hit.Payload, "description"),
		MediaURL:     payloadString(hit.Payload, "image_url"),
		LinkURL:      payloadString(hit.Payload, "link"),
		Score:        hit.Score,
		Price:        payloadInt64(hit.Payload, "price"),
		Currency:     payloadString(hit.Payload, "currency"),
		BrandName:    payloadString(hit.Payload, "brand_name"),
		CategoryName: payloadString(hit.Payload, "category_name"),
		GenderName:   payloadString(hit.Payload, "gender_name"),
		Region:       payloadString(hit.Payload, "region"),
		ColorNames:   payloadStrings(hit.Payload, "color_names"),
		Sizes:        payloadStrings(hit.Payload, "sizes"),
	}
}

func payloadString(p domain.Payload, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func payloadInt64(p domain.Payload, key string) int64 {
	switch v := p[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func payloadStrings(p domain.Payload, key string) []string {
	items, ok := p[key].([]any)
	if !ok || len(items) == 0 {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
