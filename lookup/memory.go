package lookup

import (
	"sync"

	"github.com/plexcore/exprgraph"
)

// MemInterface is an in-memory reference Interface: values are set
// directly by test/example code via Set, which also notifies any
// subscribed StateCache through Post. It ignores thresholds (every Set
// is delivered) since it has no real sensor jitter to filter.
type MemInterface struct {
	mu          sync.Mutex
	values      map[string]exprgraph.Value
	subscribed  map[string]bool
	cache       *StateCache
	currentTime float64
}

// NewMemInterface builds an empty in-memory Interface. AttachCache must
// be called once the owning StateCache exists, since the two are
// mutually referential.
func NewMemInterface() *MemInterface {
	return &MemInterface{
		values:     make(map[string]exprgraph.Value),
		subscribed: make(map[string]bool),
	}
}

// AttachCache wires this Interface to the StateCache that fronts it, so
// Set can forward asynchronous updates into the cache's inbound queue.
func (m *MemInterface) AttachCache(c *StateCache) { m.cache = c }

// Set stores v as the current value of s and, if s is subscribed,
// forwards the change into the attached StateCache.
func (m *MemInterface) Set(s State, v exprgraph.Value) {
	m.mu.Lock()
	key := s.Key()
	m.values[key] = v
	subscribed := m.subscribed[key]
	cache := m.cache
	m.mu.Unlock()

	if subscribed && cache != nil {
		cache.Post(s, v)
	}
}

func (m *MemInterface) LookupNow(s State) (exprgraph.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[s.Key()]; ok {
		return v, nil
	}
	return exprgraph.UnknownValue(exprgraph.Unknown), nil
}

func (m *MemInterface) Subscribe(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribed[s.Key()] = true
	return nil
}

func (m *MemInterface) Unsubscribe(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscribed, s.Key())
	return nil
}

// Thresholds are accepted but neither recorded nor enforced: MemInterface
// delivers every Set unconditionally, since it simulates a noiseless data
// source.
func (m *MemInterface) SetThresholds(State, exprgraph.Value, exprgraph.Value) error { return nil }
func (m *MemInterface) SetIntThresholds(State, int64, int64) error                  { return nil }
func (m *MemInterface) ClearThresholds(State) error                                 { return nil }

func (m *MemInterface) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// AdvanceTime sets the simulated current time, e.g. to drive Date/Duration
// scenarios in tests.
func (m *MemInterface) AdvanceTime(t float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}
