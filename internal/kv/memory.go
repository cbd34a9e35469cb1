package kv

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store. It keeps copies of every value.
type Memory struct {
	mu      sync.Mutex
	values  map[string][]byte
	updated map[string]time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string][]byte{}, updated: map[string]time.Time{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	return m.PutMany(ctx, map[string][]byte{key: value})
}

func (m *Memory) PutMany(_ context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for k, v := range values {
		m.values[k] = append([]byte(nil), v...)
		m.updated[k] = now
	}
	return nil
}

func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]Record, 0, len(m.values))
	for k, v := range m.values {
		records = append(records, Record{Key: k, Size: len(v), UpdatedAt: m.updated[k]})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

func (m *Memory) Close() error { return nil }
