package ambient

import (
	"sort"
	"sync"
)

// ResizeListeners is a ready-made OnResize registry for Container
// implementations. The zero value is ready to use.
type ResizeListeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(width, height int)
}

func (l *ResizeListeners) Add(fn func(width, height int)) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(width, height int))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// Notify calls every listener in registration order. Listeners may remove
// themselves while being notified.
func (l *ResizeListeners) Notify(width, height int) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	fns := make([]func(int, int), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

func (l *ResizeListeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
