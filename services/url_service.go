// Package services implements the shortener: idempotent shortening, resolution,
// capacity enforcement and validity checks on top of a Storage and an identifier Strategy.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"rev-shortener/storage"
	"rev-shortener/types"
	"rev-shortener/urlgen"
)

const (
	DefaultDomain = "https://rev.me"
	DefaultLimit  = 100
)

type URLService interface {
	Shorten(ctx context.Context, longURL string) (types.URLData, error)
	Resolve(ctx context.Context, shortURL string) (types.URLData, error)
	ResolveID(ctx context.Context, identifier string) (types.URLData, error)
	Stats(ctx context.Context) (types.Stats, error)
}

// Options configures a Shortener. Zero values fall back to the defaults.
type Options struct {
	Domain    string
	Limit     int
	Validator Validator
	Logger    *zap.Logger
	Metrics   *Metrics
}

// Shortener is the URLService backed by a Storage. It is the only writer of its store.
type Shortener struct {
	store    storage.Storage
	strategy urlgen.Strategy
	domain   string
	limit    int
	isValid  Validator
	logger   *zap.Logger
	metrics  *Metrics

	// mu serializes the check-generate-insert sequence of Shorten.
	mu sync.Mutex
}

func NewShortener(store storage.Storage, strategy urlgen.Strategy, opts Options) (*Shortener, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if strategy == nil {
		return nil, errors.New("strategy cannot be nil")
	}

	s := &Shortener{
		store:    store,
		strategy: strategy,
		domain:   strings.TrimRight(opts.Domain, "/"),
		limit:    opts.Limit,
		isValid:  opts.Validator,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if s.domain == "" {
		s.domain = DefaultDomain
	}
	if s.limit <= 0 {
		s.limit = DefaultLimit
	}
	if s.isValid == nil {
		s.isValid = NewURLValidator()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics, _ = NewMetrics(nil)
	}

	if b, ok := strategy.(urlgen.Bounded); ok && b.Remaining() < s.limit {
		return nil, fmt.Errorf("%w: %d tokens for a limit of %d", ErrPoolTooSmall, b.Remaining(), s.limit)
	}
	return s, nil
}

// Shorten returns the short URL for longURL, creating it if needed.
// A URL that was already shortened is returned as is and consumes no identifier,
// even when the store is full.
func (s *Shortener) Shorten(ctx context.Context, longURL string) (types.URLData, error) {
	if data, ok, err := s.lookup(ctx, longURL); err != nil {
		s.metrics.ShortenTotal.WithLabelValues(outcomeError).Inc()
		return types.URLData{}, err
	} else if ok {
		s.metrics.ShortenTotal.WithLabelValues(outcomeExisting).Inc()
		return data, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have stored the same URL while we waited for the lock.
	if data, ok, err := s.lookup(ctx, longURL); err != nil {
		s.metrics.ShortenTotal.WithLabelValues(outcomeError).Inc()
		return types.URLData{}, err
	} else if ok {
		s.metrics.ShortenTotal.WithLabelValues(outcomeExisting).Inc()
		return data, nil
	}

	stored, err := s.store.Len(ctx)
	if err != nil {
		s.metrics.ShortenTotal.WithLabelValues(outcomeError).Inc()
		return types.URLData{}, handleStorageError(err)
	}
	if stored >= s.limit {
		s.logger.Warn("Storage limit reached", zap.Int("limit", s.limit), zap.String("originalURL", longURL))
		s.metrics.ShortenTotal.WithLabelValues(outcomeLimit).Inc()
		return types.URLData{}, ErrLimitReached
	}

	if !s.isValid(longURL) {
		s.logger.Info("Rejected invalid link", zap.String("originalURL", longURL))
		s.metrics.ShortenTotal.WithLabelValues(outcomeInvalid).Inc()
		return types.URLData{}, ErrInvalidLink
	}

	id, err := s.strategy.Generate()
	if err != nil {
		err = handleStrategyError(err)
		if errors.Is(err, ErrPoolExhausted) {
			s.metrics.ShortenTotal.WithLabelValues(outcomeExhausted).Inc()
		} else {
			s.metrics.ShortenTotal.WithLabelValues(outcomeError).Inc()
		}
		s.logger.Error("Failed to generate identifier", zap.Error(err))
		return types.URLData{}, err
	}

	data := types.URLData{
		ShortURL:    s.domain + "/" + id,
		OriginalURL: longURL,
		Identifier:  id,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, data); err != nil {
		s.metrics.ShortenTotal.WithLabelValues(outcomeError).Inc()
		return types.URLData{}, handleStorageError(err)
	}

	s.metrics.ShortenTotal.WithLabelValues(outcomeCreated).Inc()
	s.metrics.Stored.Set(float64(stored + 1))
	return data, nil
}

// Resolve returns the record issued for shortURL.
func (s *Shortener) Resolve(ctx context.Context, shortURL string) (types.URLData, error) {
	data, err := s.store.GetURLData(ctx, shortURL)
	if err != nil {
		err = handleStorageError(err)
		if errors.Is(err, ErrUnknownURL) {
			s.metrics.ResolveTotal.WithLabelValues(outcomeMiss).Inc()
		} else {
			s.metrics.ResolveTotal.WithLabelValues(outcomeError).Inc()
		}
		return types.URLData{}, err
	}
	s.metrics.ResolveTotal.WithLabelValues(outcomeHit).Inc()
	return data, nil
}

// ResolveID resolves the short URL made of this shortener's domain and identifier.
func (s *Shortener) ResolveID(ctx context.Context, identifier string) (types.URLData, error) {
	return s.Resolve(ctx, s.domain+"/"+identifier)
}

func (s *Shortener) Stats(ctx context.Context) (types.Stats, error) {
	stored, err := s.store.Len(ctx)
	if err != nil {
		return types.Stats{}, handleStorageError(err)
	}
	return types.Stats{
		Stored:    stored,
		Limit:     s.limit,
		Remaining: s.limit - stored,
		Domain:    s.domain,
		Strategy:  string(s.strategy.Kind()),
	}, nil
}

func (s *Shortener) lookup(ctx context.Context, longURL string) (types.URLData, bool, error) {
	shortURL, err := s.store.GetShortURL(ctx, longURL)
	if errors.Is(err, storage.ErrShortURLNotFound) {
		return types.URLData{}, false, nil
	}
	if err != nil {
		return types.URLData{}, false, handleStorageError(err)
	}

	data, err := s.store.GetURLData(ctx, shortURL)
	if err != nil {
		return types.URLData{}, false, handleStorageError(err)
	}
	return data, true, nil
}
