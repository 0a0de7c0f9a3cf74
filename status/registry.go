package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Metrics is a named set of atomic values of one kind
// Lookup locks; the returned pointer is then read and written lock-free
type Metrics[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newMetrics[T any]() *Metrics[T] {
	return &Metrics[T]{items: make(map[string]*T)}
}

// Lookup returns the value for name, creating it on first use
func (m *Metrics[T]) Lookup(name string) *T {
	m.mu.RLock()
	v, ok := m.items[name]
	m.mu.RUnlock()
	if ok {
		return v
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.items[name]; ok {
		return v
	}
	v = new(T)
	m.items[name] = v
	return v
}

// Each visits values in name order
func (m *Metrics[T]) Each(fn func(name string, v *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.items))
	for k := range m.items {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fn(k, m.items[k])
	}
}

// Len returns the number of registered names
func (m *Metrics[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Registry groups metrics by kind
// Written on the game timeline, read from the CLI or render side
type Registry struct {
	Bools  *Metrics[atomic.Bool]
	Ints   *Metrics[atomic.Int64]
	Floats *Metrics[Float]
	Texts  *Metrics[Text]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  newMetrics[atomic.Bool](),
		Ints:   newMetrics[atomic.Int64](),
		Floats: newMetrics[Float](),
		Texts:  newMetrics[Text](),
	}
}

// Len returns the number of metrics across all kinds
func (r *Registry) Len() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Texts.Len()
}

// Int is shorthand for the current value of an int metric
func (r *Registry) Int(name string) int64 {
	return r.Ints.Lookup(name).Load()
}
