// Package storage provides interfaces and common errors for URL storage operations.
package storage

import (
	"context"
	"errors"

	"rev-shortener/types"
)

// Common errors returned by storage operations.
var (
	ErrShortURLExists         = errors.New("short URL already exists")
	ErrOriginalURLExists      = errors.New("original URL already exists")
	ErrShortURLNotFound       = errors.New("short URL not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// Storage keeps the short URL <-> original URL bijection.
// Records are never updated or removed once created.
type Storage interface {
	// Create inserts urlData in both directions at once, or not at all.
	Create(ctx context.Context, urlData types.URLData) error
	// GetURLData looks a record up by its short URL.
	GetURLData(ctx context.Context, shortURL string) (types.URLData, error)
	// GetShortURL returns the short URL issued for originalURL, or ErrShortURLNotFound.
	GetShortURL(ctx context.Context, originalURL string) (string, error)
	// Len reports the number of stored records.
	Len(ctx context.Context) (int, error)
}
