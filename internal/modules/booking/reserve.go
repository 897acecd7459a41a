package booking

import (
	"sort"
	"sync"
)

// resourceLocks serialises order creation per resource so the
// pending-inclusive availability re-check and the booking insert act as
// one atomic reservation step within this process. Locks are taken in
// sorted ID order to rule out deadlock between requests touching
// overlapping resource sets. Mutexes are kept for the life of the
// process; the map holds at most one entry per resource in the venue
// catalog, which is a few dozen rows.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{locks: make(map[int64]*sync.Mutex)}
}

func (rl *resourceLocks) lockFor(id int64) *sync.Mutex {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.locks[id]
	if !ok {
		l = &sync.Mutex{}
		rl.locks[id] = l
	}
	return l
}

// Acquire locks every resource ID and returns the release function.
func (rl *resourceLocks) Acquire(ids []int64) func() {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	held := make([]*sync.Mutex, 0, len(sorted))
	var prev int64 = -1
	for _, id := range sorted {
		if id == prev {
			continue
		}
		prev = id
		l := rl.lockFor(id)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
