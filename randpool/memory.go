package randpool

import (
	"sort"
	"sync"
)

// MemoryStore keeps pools in memory. It is safe for concurrent use.
type MemoryStore struct {
	sync.Mutex
	pools map[string]map[string]Record
	next  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pools: make(map[string]map[string]Record)}
}

// Records returns the pool's records sorted by item.
func (m *MemoryStore) Records(pool string) ([]Record, error) {
	m.Lock()
	defer m.Unlock()
	records := make([]Record, 0, len(m.pools[pool]))
	for _, r := range m.pools[pool] {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Item < records[j].Item })
	return records, nil
}

func (m *MemoryStore) Upsert(pool string, r Record) error {
	m.Lock()
	defer m.Unlock()
	if m.pools[pool] == nil {
		m.pools[pool] = make(map[string]Record)
	}
	m.pools[pool][r.Item] = r
	return nil
}

func (m *MemoryStore) Delete(pool string, item string) error {
	m.Lock()
	defer m.Unlock()
	delete(m.pools[pool], item)
	return nil
}

func (m *MemoryStore) NextOrdinal() (int64, error) {
	m.Lock()
	defer m.Unlock()
	n := m.next
	m.next++
	return n, nil
}
