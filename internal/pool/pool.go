// Package pool recycles the transient state built up while parsing a
// command line. Interactive completion reparses the whole line on every
// keystroke, so token queues and occurrence maps are reused instead of
// reallocated per pass.
package pool

import "sync"

// Pool is a generic, type-safe wrapper around sync.Pool with an optional
// reset hook applied before an object is handed out again.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// New creates a pool backed by the given factory function.
func New[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewWithReset creates a pool whose reset function runs before reuse.
func NewWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := New(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// Scratch is the working set of a single parse pass: the mutable token
// queue the parser consumes from the front and the leftover arguments
// that fell through.
//
// A Scratch must not be put back while any of its slices are still
// referenced; callers copy out what survives the pass.
type Scratch struct {
	Queue    []string
	Leftover []string
}

// ScratchPool recycles Scratch objects across parse passes.
type ScratchPool struct {
	*Pool[Scratch]
}

// NewScratchPool creates a pool of pre-sized Scratch objects.
func NewScratchPool() *ScratchPool {
	return &ScratchPool{
		Pool: NewWithReset(
			func() *Scratch {
				return &Scratch{
					Queue:    make([]string, 0, 16),
					Leftover: make([]string, 0, 8),
				}
			},
			func(s *Scratch) {
				s.Queue = s.Queue[:0]
				s.Leftover = s.Leftover[:0]
			},
		),
	}
}

// StringSlicePool recycles string slices used for candidate and token
// accumulation.
type StringSlicePool struct {
	*Pool[[]string]
}

// NewStringSlicePool creates a string slice pool with the given default
// capacity.
func NewStringSlicePool(defaultCap int) *StringSlicePool {
	return &StringSlicePool{
		Pool: NewWithReset(
			func() *[]string {
				slice := make([]string, 0, defaultCap)
				return &slice
			},
			func(slice *[]string) {
				*slice = (*slice)[:0] // keep capacity
			},
		),
	}
}

// Global pool instances shared by the parser and the completion walker.
var (
	GlobalScratchPool     = NewScratchPool()
	GlobalStringSlicePool = NewStringSlicePool(32)
)

// init pre-warms the global pools so the first parse pays no setup cost.
func init() {
	for i := 0; i < 3; i++ {
		scratch := GlobalScratchPool.Get()
		GlobalScratchPool.Put(scratch)

		slice := GlobalStringSlicePool.Get()
		GlobalStringSlicePool.Put(slice)
	}
}

// GetScratch retrieves a Scratch for one parse pass.
func GetScratch() *Scratch {
	return GlobalScratchPool.Get()
}

// PutScratch returns a Scratch once the pass and its consumers are done.
func PutScratch(s *Scratch) {
	GlobalScratchPool.Put(s)
}

// GetStringSlice retrieves a string slice for transient accumulation.
func GetStringSlice() *[]string {
	return GlobalStringSlicePool.Get()
}

// PutStringSlice returns a string slice to the global pool.
func PutStringSlice(slice *[]string) {
	GlobalStringSlicePool.Put(slice)
}
