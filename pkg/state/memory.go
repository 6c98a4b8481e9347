package state

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryStateManager struct {
	lock        sync.RWMutex
	snapshot    *Snapshot
	subscribers map[int]chan *Snapshot
	nextID      int
}

var _ StateManager = &InMemoryStateManager{}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		subscribers: make(map[int]chan *Snapshot),
	}
}

// Get returns ErrNoSnapshot until the first Set.
func (m *InMemoryStateManager) Get(ctx context.Context) (*Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return m.snapshot.Copy(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.snapshot = snapshot.Copy()
	for _, ch := range m.subscribers {
		// slow subscribers only ever see the most recent snapshot
		select {
		case <-ch:
		default:
		}
		ch <- m.snapshot.Copy()
	}
	return nil
}

func (m *InMemoryStateManager) Subscribe() (<-chan *Snapshot, func()) {
	m.lock.Lock()
	defer m.lock.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan *Snapshot, 1)
	if m.snapshot != nil {
		ch <- m.snapshot.Copy()
	}
	m.subscribers[id] = ch

	once := sync.Once{}
	return ch, func() {
		once.Do(func() {
			m.lock.Lock()
			defer m.lock.Unlock()
			delete(m.subscribers, id)
			close(ch)
		})
	}
}
