package portfolio

import "sync"

// laneLocks serializes purchase attempts per user so the affordability check
// runs against the same snapshot the insert follows. Without this, two
// concurrent purchases could both pass the check against stale cash.
// Cross-user requests never contend.
type laneLocks struct {
	mu    sync.Mutex
	lanes map[string]*sync.Mutex
}

func newLaneLocks() *laneLocks {
	return &laneLocks{lanes: make(map[string]*sync.Mutex)}
}

func (l *laneLocks) acquire(userID string) func() {
	l.mu.Lock()
	lane, ok := l.lanes[userID]
	if !ok {
		lane = &sync.Mutex{}
		l.lanes[userID] = lane
	}
	l.mu.Unlock()

	lane.Lock()
	return lane.Unlock
}
