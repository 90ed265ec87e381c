// Package clock supplies the current instant to code that derives dates from it.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Frozen reports its base clock's time unless one or more instants have been
// frozen, in which case the most recently frozen instant wins.
type Frozen struct {
	mu     sync.Mutex
	base   Clock
	stack  []frame
	nextID uint64
}

type frame struct {
	id uint64
	at time.Time
}

func NewFrozen(base Clock) *Frozen {
	if base == nil {
		base = System{}
	}
	return &Frozen{base: base}
}

func (f *Frozen) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := len(f.stack); n > 0 {
		return f.stack[n-1].at
	}
	return f.base.Now()
}

// FreezeAt pins Now to at until the returned thaw is called. Calling thaw more
// than once is a no-op.
func (f *Frozen) FreezeAt(at time.Time) (thaw func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.stack = append(f.stack, frame{id: id, at: at})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { f.release(id) })
	}
}

func (f *Frozen) release(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.stack) - 1; i >= 0; i-- {
		if f.stack[i].id == id {
			f.stack = append(f.stack[:i], f.stack[i+1:]...)
			return
		}
	}
}
