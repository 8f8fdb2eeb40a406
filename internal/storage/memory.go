package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Writes are visible to Watch subscribers.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[string][]chan struct{}
	closed   bool
	failWith error
}

func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string][]byte),
		watchers: make(map[string][]chan struct{}),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.writable(); err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	m.notify(key)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.writable(); err != nil {
		return err
	}
	delete(m.data, key)
	m.notify(key)
	return nil
}

func (m *Memory) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	ch := make(chan struct{}, 1)
	m.watchers[key] = append(m.watchers[key], ch)

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		m.removeWatcher(key, ch)
	}()
	return ch, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	for key := range m.watchers {
		for _, ch := range m.watchers[key] {
			close(ch)
		}
		delete(m.watchers, key)
	}
	return nil
}

// FailWrites makes every later Set and Delete return err, simulating a full
// or broken disk. A nil err restores normal behaviour.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *Memory) writable() error {
	if m.closed {
		return ErrClosed
	}
	return m.failWith
}

// notify must be called with mu held. Notifications coalesce: a watcher that
// has not drained its channel still sees exactly one pending signal.
func (m *Memory) notify(key string) {
	for _, ch := range m.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (m *Memory) removeWatcher(key string, ch chan struct{}) {
	list := m.watchers[key]
	for i, c := range list {
		if c == ch {
			m.watchers[key] = append(list[:i], list[i+1:]...)
			close(ch)
			return
		}
	}
}
