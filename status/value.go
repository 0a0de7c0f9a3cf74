package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 stored as its bit pattern
// The zero value holds 0.0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add applies delta with a CAS loop and returns the result
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Text is an atomic short string, truncated to MaxTextLen bytes
type Text struct {
	ptr atomic.Pointer[string]
}

// MaxTextLen bounds stored labels, enough for a UUID
const MaxTextLen = 36

func (t *Text) Store(s string) {
	if len(s) > MaxTextLen {
		s = s[:MaxTextLen]
	}
	t.ptr.Store(&s)
}

func (t *Text) Load() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// StoreMax raises v to n if n is larger
func StoreMax(v *atomic.Int64, n int64) {
	for {
		cur := v.Load()
		if n <= cur || v.CompareAndSwap(cur, n) {
			return
		}
	}
}
