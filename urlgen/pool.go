package urlgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Pool draws identifiers uniformly at random from a finite set, without replacement.
type Pool struct {
	tokens []string
}

// NewPool copies tokens into a new pool. Duplicate and empty tokens are dropped so
// that every draw yields a distinct identifier.
func NewPool(tokens []string) *Pool {
	seen := make(map[string]struct{}, len(tokens))
	pool := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		pool = append(pool, t)
	}
	return &Pool{tokens: pool}
}

// DefaultPool returns the placeholder tokens pool0 .. pool{n-1}.
func DefaultPool(n int) []string {
	tokens := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tokens = append(tokens, fmt.Sprintf("pool%d", i))
	}
	return tokens
}

// Generate removes a random token from the pool and returns it.
// It returns ErrPoolExhausted once every token has been drawn.
func (p *Pool) Generate() (string, error) {
	if len(p.tokens) == 0 {
		return "", ErrPoolExhausted
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(p.tokens))))
	if err != nil {
		return "", err
	}

	i := int(idx.Int64())
	last := len(p.tokens) - 1
	token := p.tokens[i]
	p.tokens[i] = p.tokens[last]
	p.tokens = p.tokens[:last]
	return token, nil
}

// Remaining reports how many tokens are left.
func (p *Pool) Remaining() int {
	return len(p.tokens)
}

func (p *Pool) Kind() Kind { return KindPool }
