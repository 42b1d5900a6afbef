package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/DRSN-tech/semantic-search/pkg/retry"
)

// Fetcher загружает медиа по URL с ограниченными повторами.
// Каждая загрузка независима и идемпотентна (только GET).
type Fetcher struct {
	client *http.Client
	cfg    *cfg.FetcherCfg
	policy retry.Policy
	logger logger.Logger
}

func New(cfg *cfg.FetcherCfg, logger logger.Logger) *Fetcher {
	const (
		baseBackoff = 1 * time.Second
		maxBackoff  = 30 * time.Second
	)

	return &Fetcher{
		client: &http.Client{Timeout: cfg.AttemptTimeout},
		cfg:    cfg,
		policy: retry.Policy{
			MaxAttempts:  cfg.MaxRetries,
			BaseBackoff:  baseBackoff,
			MaxBackoff:   maxBackoff,
			JitterFactor: retry.DefaultJitter,
		},
		logger: logger,
	}
}

// Fetch возвращает тело по URL. Повторяет только временные сбои
// (сетевые ошибки, таймауты, 5xx, 429); остальные 4xx и битый контент
// считаются постоянными и возвращаются сразу.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	const op = "Fetcher.Fetch"

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, e.Wrap(op, fmt.Errorf("bad url %q: %w", rawURL, e.ErrFetchPermanent))
	}

	var body []byte
	err = retry.Do(ctx, f.policy, func(ctx context.Context) error {
		var attemptErr error
		body, attemptErr = f.fetchOnce(ctx, rawURL)
		return attemptErr
	}, func(err error) bool {
		return errors.Is(err, e.ErrFetchTransient)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return body, nil
}

// fetchOnce выполняет одну попытку загрузки с таймаутом попытки.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, e.ErrFetchPermanent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Сетевые ошибки, таймауты и сбои TLS-рукопожатия считаем временными
		return nil, fmt.Errorf("%v: %w", err, e.ErrFetchTransient)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, classifyStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %v: %w", err, e.ErrFetchTransient)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("empty body: %w", e.ErrFetchPermanent)
	}

	return body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// classifyStatus относит HTTP-статус к временной или постоянной ошибке.
func classifyStatus(status int) error {
	switch {
	case status >= 500, status == http.StatusTooManyRequests:
		return fmt.Errorf("status %d: %w", status, e.ErrFetchTransient)
	default:
		return fmt.Errorf("status %d: %w", status, e.ErrFetchPermanent)
	}
}
