package exchange

import "sync"

// lockTable holds a lock per account. Locks are created on first use
// and never removed since accounts are never deleted.
type lockTable struct {
	mu    sync.Mutex
	locks map[int64]*sync.RWMutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: map[int64]*sync.RWMutex{}}
}

func (t *lockTable) get(id int64) *sync.RWMutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[id]
	if !ok {
		lock = &sync.RWMutex{}
		t.locks[id] = lock
	}
	return lock
}

// lockPair takes exclusive locks of both accounts in ascending id order
func (t *lockTable) lockPair(a, b int64) (unlock func()) {
	if a == b {
		lock := t.get(a)
		lock.Lock()
		return lock.Unlock
	}
	if b < a {
		a, b = b, a
	}
	first, second := t.get(a), t.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

func (t *lockTable) rlock(id int64) (unlock func()) {
	lock := t.get(id)
	lock.RLock()
	return lock.RUnlock
}
