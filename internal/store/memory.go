package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/junyangz/newsbrief/internal/types"
)

// MemoryStore keeps documents in process memory. It backs tests and runs
// without a configured database.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string][]Document // container -> documents in insertion order
	closed bool
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]Document),
		now:  time.Now,
	}
}

func (m *MemoryStore) Name() string { return "memory" }

// Put stores a copy of content under container/name, suffixing the name with
// underscores until it is unique within the container.
func (m *MemoryStore) Put(ctx context.Context, container, name string, content []byte, kind string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, types.ErrStoreClosed
	}

	for m.nameExists(container, name) {
		name += "_"
	}

	doc := Document{
		ID:        uuid.NewString(),
		Container: container,
		Name:      name,
		Kind:      kind,
		Size:      int64(len(content)),
		Content:   append([]byte(nil), content...),
		CreatedAt: m.now(),
	}
	m.docs[container] = append(m.docs[container], doc)
	return &doc, nil
}

// List returns the container's documents in insertion order.
func (m *MemoryStore) List(ctx context.Context, container string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, types.ErrStoreClosed
	}
	return append([]Document(nil), m.docs[container]...), nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) nameExists(container, name string) bool {
	for _, doc := range m.docs[container] {
		if doc.Name == name {
			return true
		}
	}
	return false
}
