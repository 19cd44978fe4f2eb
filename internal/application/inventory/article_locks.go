package inventory

import "sync"

// articleLocks mutex por artículo. Las entradas se liberan cuando nadie las usa.
type articleLocks struct {
	mu    sync.Mutex
	locks map[string]*articleLock
}

type articleLock struct {
	mu   sync.Mutex
	refs int
}

func newArticleLocks() *articleLocks {
	return &articleLocks{locks: make(map[string]*articleLock)}
}

// lock bloquea el artículo y devuelve la función de desbloqueo.
func (l *articleLocks) lock(code string) func() {
	l.mu.Lock()
	al, ok := l.locks[code]
	if !ok {
		al = &articleLock{}
		l.locks[code] = al
	}
	al.refs++
	l.mu.Unlock()

	al.mu.Lock()
	return func() {
		al.mu.Unlock()
		l.mu.Lock()
		al.refs--
		if al.refs == 0 {
			delete(l.locks, code)
		}
		l.mu.Unlock()
	}
}

func (l *articleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
