package urlgen

import "strconv"

// Sequential issues "1", "2", "3", ... and never repeats a value.
type Sequential struct {
	next uint64
}

func NewSequential() *Sequential {
	return &Sequential{next: 1}
}

// Generate returns the current counter value and advances it. It never fails.
func (s *Sequential) Generate() (string, error) {
	id := s.next
	s.next++
	return strconv.FormatUint(id, 10), nil
}

func (s *Sequential) Kind() Kind { return KindSequential }
