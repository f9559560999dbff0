package phone

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"phonereg/internal/phone/metrics"
)

// CountCache shares the enumerated count between processes.
type CountCache interface {
	// Get returns the cached count; found is false on a miss.
	Get(ctx context.Context) (count int, found bool, err error)
	Set(ctx context.Context, count int) error
}

// Service exposes the validator and a memoized enumeration to transports.
// The count is computed at most once per process.
type Service struct {
	cache   CountCache
	logger  *slog.Logger
	metrics *metrics.Metrics
	workers int

	mu       sync.Mutex
	computed bool
	count    int
}

// Option configures a Service.
type Option func(*Service)

// WithCountCache shares the count through cache.
func WithCountCache(cache CountCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the service metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithWorkers sets the enumeration parallelism. Non-positive values keep the default.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewService builds a Service. Enumeration defaults to one worker per CPU.
func NewService(opts ...Option) *Service {
	s := &Service{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Evaluate runs the validator and records the outcome.
func (s *Service) Evaluate(_ context.Context, number string) Verdict {
	v := Evaluate(number)
	switch {
	case v.Malformed():
		s.metrics.IncrementVerdict("malformed")
	case v.IsValid:
		s.metrics.IncrementVerdict("valid")
	default:
		s.metrics.IncrementVerdict("invalid")
		for _, o := range v.Rules {
			if !o.Passed {
				s.metrics.IncrementRuleFailure(o.Name)
			}
		}
	}
	return v
}

// ValidCount returns the number of valid candidates in the domain. The first
// successful call computes it (or loads it from the shared cache); later calls
// return the memoized value.
func (s *Service) ValidCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.computed {
		return s.count, nil
	}

	if n, ok := s.loadCached(ctx); ok {
		s.count, s.computed = n, true
		return n, nil
	}

	start := time.Now()
	n, err := CountValidParallel(ctx, s.workers)
	if err != nil {
		return 0, err
	}
	s.metrics.ObserveCount(time.Since(start))
	s.logger.InfoContext(ctx, "enumerated candidate domain",
		"valid_count", n,
		"workers", s.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	s.storeCached(ctx, n)
	s.count, s.computed = n, true
	return n, nil
}

// Warm computes the count ahead of the first request.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.ValidCount(ctx)
	return err
}

// loadCached treats cache failures as misses. A cached value other than
// KnownValidCount is stale or corrupt; it is reported as a miss so the caller
// enumerates and overwrites the key.
func (s *Service) loadCached(ctx context.Context) (int, bool) {
	if s.cache == nil {
		return 0, false
	}
	n, found, err := s.cache.Get(ctx)
	if err != nil {
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "valid count cache lookup failed", "error", err)
		return 0, false
	}
	if !found {
		s.metrics.IncrementCacheLookup("miss")
		return 0, false
	}
	if n != KnownValidCount {
		s.metrics.IncrementCacheLookup("miss")
		s.logger.WarnContext(ctx, "discarding stale valid count from cache",
			"cached", n,
			"expected", KnownValidCount,
		)
		return 0, false
	}
	s.metrics.IncrementCacheLookup("hit")
	return n, true
}

func (s *Service) storeCached(ctx context.Context, n int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "valid count cache write failed", "error", err)
	}
}
