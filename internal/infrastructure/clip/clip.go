// Package clip — клиент внешнего CLIP inference-сервиса.
// Модель для нас непрозрачна: текст или изображение на входе, вектор на выходе.
package clip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
	"github.com/DRSN-tech/semantic-search/pkg/retry"
)

// Client обращается к CLIP-сервису по HTTP и возвращает векторы
// фиксированной размерности.
type Client struct {
	baseURL    string
	httpClient *http.Client
	dimension  uint64
	policy     retry.Policy
	logger     logger.Logger
}

func NewClient(cfg *cfg.ClipCfg, dimension uint64, logger logger.Logger) *Client {
	const (
		baseBackoff = 1 * time.Second
		maxBackoff  = 30 * time.Second
	)

	return &Client{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		dimension:  dimension,
		policy: retry.Policy{
			MaxAttempts:  cfg.MaxRetries,
			BaseBackoff:  baseBackoff,
			MaxBackoff:   maxBackoff,
			JitterFactor: retry.DefaultJitter,
		},
		logger: logger,
	}
}

type encodeTextReq struct {
	Text string `json:"text"`
}

type encodeRes struct {
	Vector []float32 `json:"vector"`
}

// EncodeText векторизует текст запроса или описание товара.
func (c *Client) EncodeText(ctx context.Context, text string) ([]float32, error) {
	const op = "clip.EncodeText"

	if strings.TrimSpace(text) == "" {
		return nil, e.Wrap(op, fmt.Errorf("empty text: %w", e.ErrEncoding))
	}

	body, err := json.Marshal(encodeTextReq{Text: text})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	vec, err := c.post(ctx, "/encode/text", "application/json", body)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return vec, nil
}

// EncodeImage векторизует байты изображения.
func (c *Client) EncodeImage(ctx context.Context, image []byte) ([]float32, error) {
	const op = "clip.EncodeImage"

	if len(image) == 0 {
		return nil, e.Wrap(op, fmt.Errorf("empty image: %w", e.ErrEncoding))
	}

	vec, err := c.post(ctx, "/encode/image", "application/octet-stream", image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return vec, nil
}

// post выполняет запрос к сервису с повторами на временных сбоях.
// 4xx от сервиса означает неразбираемый вход и не повторяется.
func (c *Client) post(ctx context.Context, path, contentType string, body []byte) ([]float32, error) {
	var vec []float32

	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		var attemptErr error
		vec, attemptErr = c.postOnce(ctx, path, contentType, body)
		return attemptErr
	}, func(err error) bool {
		return !errors.Is(err, e.ErrEncoding)
	})
	if err != nil {
		return nil, err
	}

	if uint64(len(vec)) != c.dimension {
		return nil, fmt.Errorf("got %d dims, want %d: %w", len(vec), c.dimension, e.ErrVectorDimension)
	}

	return vec, nil
}

func (c *Client) postOnce(ctx context.Context, path, contentType string, body []byte) ([]float32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("inference status %d: %w", resp.StatusCode, e.ErrEncoding)
	default:
		return nil, fmt.Errorf("inference status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed encodeRes
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("bad inference response: %v: %w", err, e.ErrEncoding)
	}

	if len(parsed.Vector) == 0 {
		return nil, fmt.Errorf("empty vector in response: %w", e.ErrEncoding)
	}

	return parsed.Vector, nil
}
