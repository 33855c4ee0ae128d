package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/leofalp/aistream/core/client"
	"github.com/leofalp/aistream/providers/ai"
)

const (
	defaultBreakerMaxFailures uint32        = 5
	defaultBreakerTimeout     time.Duration = 30 * time.Second
	defaultBreakerInterval    time.Duration = 60 * time.Second
)

// BreakerConfig configures NewCircuitBreaker. Zero fields take defaults.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens a circuit.
	MaxFailures uint32 `yaml:"max_failures" mapstructure:"max_failures"`
	// Timeout is how long a circuit stays open before one probe call is let through.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Interval clears the failure count of a closed circuit periodically.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// Logger receives state changes. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-" mapstructure:"-"`
}

// NewCircuitBreaker returns a middleware keeping one circuit per provider.
// Configuration errors and cancellations do not count as failures: neither
// says anything about the provider's health.
func NewCircuitBreaker(cfg BreakerConfig) client.StreamMiddleware {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = defaultBreakerMaxFailures
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultBreakerTimeout
	}
	if cfg.Interval == 0 {
		cfg.Interval = defaultBreakerInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	breakers := &breakerSet{cfg: cfg, circuits: make(map[ai.ProviderID]*gobreaker.CircuitBreaker[struct{}])}

	return func(next client.StreamFunc) client.StreamFunc {
		return func(ctx context.Context, call client.StreamCall, sink ai.Sink) error {
			_, err := breakers.get(call.Provider).Execute(func() (struct{}, error) {
				return struct{}{}, next(ctx, call, sink)
			})
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return fmt.Errorf("%w: provider %q: %w", ai.ErrCircuitOpen, call.Provider, err)
			}
			return err
		}
	}
}

type breakerSet struct {
	cfg BreakerConfig

	mu       sync.Mutex
	circuits map[ai.ProviderID]*gobreaker.CircuitBreaker[struct{}]
}

func (b *breakerSet) get(id ai.ProviderID) *gobreaker.CircuitBreaker[struct{}] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if circuit, ok := b.circuits[id]; ok {
		return circuit
	}

	maxFailures := b.cfg.MaxFailures
	logger := b.cfg.Logger
	circuit := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "llm:" + id.String(),
		MaxRequests: 1,
		Interval:    b.cfg.Interval,
		Timeout:     b.cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: countsAsSuccess,
	})
	b.circuits[id] = circuit
	return circuit
}

func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var configErr *ai.ConfigurationError
	return errors.As(err, &configErr) || errors.Is(err, context.Canceled) || errors.Is(err, ai.ErrRateLimited)
}
