package segmentation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Recorder receives one observation per strategy computation.
type Recorder interface {
	ObserveStrategy(mode, outcome string, elapsed time.Duration, coverage float64, groups int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStrategy(string, string, time.Duration, float64, int) {}

type Service struct {
	source  ClientSource
	repo    Repository // Redis
	store   Store      // Postgres
	metrics Recorder
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the clock used for currentMonth filters and month
// values.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(source ClientSource, repo Repository, store Store, metrics Recorder, opts ...Option) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	s := &Service{
		source:  source,
		repo:    repo,
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks a request without reading any client data and returns its
// normalized wire form.
func (s *Service) Validate(body RequestBody) (RequestBody, error) {
	req, err := ParseRequest(body)
	if err != nil {
		return RequestBody{}, err
	}
	return Normalize(body, req), nil
}

// Compute validates the request, takes one snapshot of the client pool and
// runs the strategy engine over it.
func (s *Service) Compute(ctx context.Context, body RequestBody) (*Outcome, error) {
	start := time.Now()

	// 1. Validate everything before touching the client store
	req, err := ParseRequest(body)
	if err != nil {
		s.metrics.ObserveStrategy(modeOf(body), "invalid", time.Since(start), 0, 0)
		return nil, err
	}

	// 2. Single bulk read
	records, err := s.source.LoadClients(ctx)
	if err != nil {
		s.metrics.ObserveStrategy(modeOf(body), "unavailable", time.Since(start), 0, 0)
		if errors.Is(err, ErrDataUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	snap, err := NewSnapshot(records)
	if err != nil {
		s.metrics.ObserveStrategy(modeOf(body), "unavailable", time.Since(start), 0, 0)
		return nil, err
	}

	// 3. Everything below runs on the in-memory snapshot
	out := Run(snap, req, s.now())
	out.Request = Normalize(body, req)

	outcome := "segmented"
	if out.Applied == 0 {
		outcome = "empty"
	}
	s.metrics.ObserveStrategy(out.Mode, outcome, time.Since(start), out.Result.Coverage, out.Applied)
	log.Printf("[INFO] strategy computed: mode=%s clients=%d groups=%d coverage=%.3f",
		out.Mode, out.Result.TotalClients, out.Applied, out.Result.Coverage)

	return &out, nil
}

// CreateStrategy computes a strategy and hands it to the persistence sink,
// which assigns its id.
func (s *Service) CreateStrategy(ctx context.Context, body RequestBody) (*SavedStrategy, error) {
	out, err := s.Compute(ctx, body)
	if err != nil {
		return nil, err
	}
	saved := &SavedStrategy{
		Message:         out.Message,
		Request:         out.Request,
		Strategy:        out.Result,
		PoolFingerprint: out.Fingerprint,
	}

	// 1. Save to DB (Single Source of Truth)
	if err := s.store.Create(ctx, saved); err != nil {
		return nil, err
	}
	// 2. Sync to Redis (Cache / Hot Path)
	if err := s.repo.SaveStrategy(ctx, saved); err != nil {
		log.Printf("[ERROR] cache strategy %s: %v", saved.ID, err)
	}
	return saved, nil
}

// GetStrategy reads the hot copy first and falls back to the database.
func (s *Service) GetStrategy(ctx context.Context, id string) (*SavedStrategy, error) {
	cached, err := s.repo.GetStrategy(ctx, id)
	if err != nil {
		log.Printf("[ERROR] read cached strategy %s: %v", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	saved, err := s.store.GetByID(ctx, id)
	if err != nil || saved == nil {
		return saved, err
	}
	if err := s.repo.SaveStrategy(ctx, saved); err != nil {
		log.Printf("[ERROR] re-cache strategy %s: %v", id, err)
	}
	return saved, nil
}

func (s *Service) ListStrategies(ctx context.Context) ([]*SavedStrategy, error) {
	return s.store.List(ctx) // DB Only
}

// RecentStrategies returns the most recently cached strategies, newest first.
func (s *Service) RecentStrategies(ctx context.Context, limit int64) ([]*SavedStrategy, error) {
	ids, err := s.repo.RecentStrategyIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*SavedStrategy, 0, len(ids))
	for _, id := range ids {
		st, err := s.GetStrategy(ctx, id)
		if err != nil {
			return nil, err
		}
		if st != nil {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Service) DeleteStrategy(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	return s.repo.RemoveStrategy(ctx, id)
}

// SyncStrategies pushes every saved strategy from the database to Redis.
func (s *Service) SyncStrategies(ctx context.Context) (int, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, st := range list {
		if err := s.repo.SaveStrategy(ctx, st); err != nil {
			return 0, err
		}
	}
	return len(list), nil
}

func modeOf(body RequestBody) string {
	if len(body.Filters) == 0 {
		return ModeAuto
	}
	return ModeExplicit
}
