package ledger

import (
	"fmt"
	"sync"
	"time"
)

// Entry number category prefixes, one per business event.
const (
	PrefixInventory       = "AST"
	PrefixSale            = "VTA"
	PrefixPurchase        = "CMP"
	PrefixPurchasePayment = "PGC"
	PrefixInvoicePayment  = "PAG"
	PrefixCancellation    = "ANV"
)

// Sequence issues strictly increasing values derived from the wall clock.
// Entry numbers cross-reference audit documents, so two rapid successive
// calls must never collide; when the clock has not advanced past the last
// issued value the sequence bumps past it.
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequence builds a Sequence reading time.Now.
func NewSequence() *Sequence {
	return &Sequence{now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Sequence) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Next returns the next unique sequence value.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.now().UnixMilli()
	if v <= s.last {
		v = s.last + 1
	}
	s.last = v
	return v
}

// Number issues the next entry number under the given category prefix.
func (s *Sequence) Number(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.Next())
}
