// Package urlgen provides the identifier strategies used to build short URLs.
//
// A Strategy owns its state (a counter or the remaining pool) and mutates it on
// every call. Strategies are not safe for concurrent use; callers serialize access.
package urlgen

import (
	"errors"
	"fmt"
)

// Kind names a strategy variant.
type Kind string

const (
	KindSequential Kind = "sequential"
	KindPool       Kind = "pool"
	KindSqids      Kind = "sqids"
)

var (
	ErrPoolExhausted   = errors.New("identifier pool exhausted")
	ErrUnknownStrategy = errors.New("unknown identifier strategy")
)

// Strategy produces identifiers appended to the short URL domain.
type Strategy interface {
	Generate() (string, error)
	Kind() Kind
}

// Bounded is implemented by strategies that can only issue a finite number of identifiers.
type Bounded interface {
	Remaining() int
}

// Options selects and configures a strategy for New.
type Options struct {
	Kind Kind
	// Pool holds the candidate tokens for KindPool.
	Pool []string
	// SqidsMinLength and SqidsAlphabet tune KindSqids; zero values use the sqids defaults.
	SqidsMinLength int
	SqidsAlphabet  string
}

// New builds the strategy described by opts.
func New(opts Options) (Strategy, error) {
	switch opts.Kind {
	case KindSequential:
		return NewSequential(), nil
	case KindPool:
		return NewPool(opts.Pool), nil
	case KindSqids:
		return NewSqids(opts.SqidsMinLength, opts.SqidsAlphabet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Kind)
	}
}
