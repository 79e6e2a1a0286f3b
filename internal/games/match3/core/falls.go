package core

import "sync"

// FallRequest asks the renderer to animate a tile moving into To. Spawned
// tiles enter from above the board; otherwise the tile comes from From.
// The grid already reflects the move when the request is issued.
type FallRequest struct {
	ID      uint64
	From    Position
	To      Position
	Spawned bool
	Type    TileType
}

// FallTracker counts falls the renderer has not yet finished. Scheduling a
// fall mutates the grid and bumps the counter inside one critical section so
// a concurrent Complete never observes a half-applied move.
type FallTracker struct {
	mu      sync.Mutex
	pending int
	nextID  uint64
}

// Schedule runs apply under the tracker lock and registers the returned fall.
func (f *FallTracker) Schedule(apply func() FallRequest) FallRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	req := apply()
	f.nextID++
	req.ID = f.nextID
	f.pending++
	return req
}

// Complete records one finished fall. It returns false if nothing was pending.
func (f *FallTracker) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending == 0 {
		return false
	}
	f.pending--
	return true
}

// Pending returns the number of outstanding falls.
func (f *FallTracker) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}
