package ledger

import "sync/atomic"

// Sequence generates monotonic identifiers
type Sequence interface {
	Next() int64
}

type counter struct {
	last int64
}

func (c *counter) Next() int64 {
	return atomic.AddInt64(&c.last, 1)
}

// NewSequence returns a sequence that starts with a given value
func NewSequence(start int64) Sequence {
	return &counter{last: start - 1}
}
