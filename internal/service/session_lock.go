package service

import "sync"

// sessionLocks serializes operations per session ID. Submit and finish do a
// read-modify-write of the accumulated word set, which would silently drop
// discovered words if two requests for the same session interleaved.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// Acquire blocks until the caller holds the lock for sessionID and returns
// the release function.
func (sl *sessionLocks) Acquire(sessionID string) func() {
	sl.mu.Lock()
	lock, ok := sl.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		sl.locks[sessionID] = lock
	}
	lock.refs++
	sl.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		sl.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(sl.locks, sessionID)
		}
		sl.mu.Unlock()
	}
}
