package usecase

import "sync"

// keyedLock serializes work per string key. Keys here are "<user_id>:<date>",
// so the map stays small (one live entry per active user per day) and is
// reset with the process.
type keyedLock struct {
	locks sync.Map // key -> *sync.Mutex
}

// Lock acquires the mutex for the key and returns its unlock func.
func (k *keyedLock) Lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
