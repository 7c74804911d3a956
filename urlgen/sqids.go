package urlgen

import (
	"fmt"

	"github.com/sqids/sqids-go"
)

// Sqids encodes a private counter with sqids, producing short non-sequential-looking
// identifiers that are still guaranteed unique.
type Sqids struct {
	encoder *sqids.Sqids
	next    uint64
}

func NewSqids(minLength int, alphabet string) (*Sqids, error) {
	if minLength < 0 || minLength > 255 {
		return nil, fmt.Errorf("sqids min length out of range: %d", minLength)
	}

	opts := sqids.Options{MinLength: uint8(minLength)}
	if alphabet != "" {
		opts.Alphabet = alphabet
	}
	encoder, err := sqids.New(opts)
	if err != nil {
		return nil, fmt.Errorf("sqids init: %w", err)
	}
	return &Sqids{encoder: encoder, next: 1}, nil
}

func (s *Sqids) Generate() (string, error) {
	id, err := s.encoder.Encode([]uint64{s.next})
	if err != nil {
		return "", err
	}
	s.next++
	return id, nil
}

func (s *Sqids) Kind() Kind { return KindSqids }
