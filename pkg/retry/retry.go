// Package retry предоставляет ограниченный повтор операций с экспоненциальным
// отступлением (backoff) и джиттером, чтобы предотвратить эффект «буйного стада»
// (thundering herd) при недоступности внешних зависимостей.
package retry

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Policy описывает параметры повторов.
type Policy struct {
	MaxAttempts  int           // всего попыток, включая первую
	BaseBackoff  time.Duration // отступление перед второй попыткой
	MaxBackoff   time.Duration // потолок отступления
	JitterFactor float64       // коэффициент джиттера, например 0.5
}

// DefaultPolicy возвращает политику повторов по умолчанию: 3 попытки, 1s..30s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		BaseBackoff:  1 * time.Second,
		MaxBackoff:   30 * time.Second,
		JitterFactor: DefaultJitter,
	}
}

// Do выполняет fn до первого успеха, но не более p.MaxAttempts раз.
// Между попытками выдерживается экспоненциальное отступление с джиттером.
// Повтор выполняется только если retryable(err) вернул true; иначе ошибка
// возвращается немедленно. Отмена контекста прерывает ожидание.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error, retryable func(error) bool) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		if retryable != nil && !retryable(err) {
			return err
		}

		if attempt == p.MaxAttempts-1 {
			break
		}

		select {
		case <-time.After(Backoff(p, attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}

// Backoff вычисляет отступление для попытки attempt (нумерация с нуля)
// по политике p, с применённым джиттером.
func Backoff(p Policy, attempt int) time.Duration {
	backoff := p.BaseBackoff
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
			break
		}
	}
	return withJitter(backoff, p.JitterFactor)
}

// withJitter возвращает продолжительность в диапазоне [d, d*(1+jitterFactor)].
func withJitter(d time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return d
	}
	randMutex.Lock()
	jitter := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(jitter)
}
