package storage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"rev-shortener/types"
)

const defaultCapacity = 100

// InMemoryStorage implements the Storage interface with a forward and a reverse map.
type InMemoryStorage struct {
	urls     map[string]types.URLData // short URL -> record
	rev      map[string]string        // original URL -> short URL
	mu       sync.RWMutex             // guards both maps; they are only written together
	capacity int
	logger   *zap.Logger
}

// NewInMemoryStorage creates and returns a new InMemoryStorage instance
func NewInMemoryStorage(capacity int, logger *zap.Logger) *InMemoryStorage {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		urls:     make(map[string]types.URLData, capacity),
		rev:      make(map[string]string, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Create records urlData in both maps at once. Nothing is written on failure.
func (s *InMemoryStorage) Create(ctx context.Context, urlData types.URLData) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Create operation cancelled", zap.String("shortURL", urlData.ShortURL))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if len(s.urls) >= s.capacity {
			s.logger.Error("Storage capacity reached. Cannot create shortURL", zap.String("shortURL", urlData.ShortURL))
			return ErrStorageCapacityReached
		}
		if _, exists := s.urls[urlData.ShortURL]; exists {
			s.logger.Warn("Attempt to create duplicate shortURL", zap.String("shortURL", urlData.ShortURL))
			return ErrShortURLExists
		}
		if _, exists := s.rev[urlData.OriginalURL]; exists {
			s.logger.Warn("Attempt to shorten an already stored URL", zap.String("originalURL", urlData.OriginalURL))
			return ErrOriginalURLExists
		}

		if urlData.CreatedAt.IsZero() {
			urlData.CreatedAt = time.Now().UTC()
		}
		s.urls[urlData.ShortURL] = urlData
		s.rev[urlData.OriginalURL] = urlData.ShortURL
		s.logger.Info("Short URL created successfully",
			zap.String("shortURL", urlData.ShortURL),
			zap.String("originalURL", urlData.OriginalURL),
			zap.Time("createdAt", urlData.CreatedAt))
		return nil
	}
}

// GetURLData retrieves the URLData for a given short URL.
func (s *InMemoryStorage) GetURLData(ctx context.Context, shortURL string) (types.URLData, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("Read operation cancelled", zap.String("shortURL", shortURL))
		return types.URLData{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if urlData, exists := s.urls[shortURL]; exists {
			s.logger.Debug("URL data retrieved successfully",
				zap.String("shortURL", shortURL),
				zap.String("originalURL", urlData.OriginalURL))
			return urlData, nil
		}
		return types.URLData{}, ErrShortURLNotFound
	}
}

// GetShortURL retrieves the short URL for a given original URL.
func (s *InMemoryStorage) GetShortURL(ctx context.Context, originalURL string) (string, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("GetShortURL operation cancelled", zap.String("originalURL", originalURL))
		return "", ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if shortURL, exists := s.rev[originalURL]; exists {
			return shortURL, nil
		}
		return "", ErrShortURLNotFound
	}
}

// Len reports the number of stored mappings.
func (s *InMemoryStorage) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.urls), nil
}
