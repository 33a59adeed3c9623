package lookup

import "github.com/plexcore/exprgraph"

// update is one inbound sample crossing from the external Interface's own
// thread into the single exec thread that owns the expression graph.
type update struct {
	state State
	value exprgraph.Value
}

type cacheEntry struct {
	lastValue   exprgraph.Value
	lastCycle   int64
	subscribers map[*LookupOnChange]struct{}
}

// StateCache mediates between an external Interface and the graph's
// LookupNow/LookupOnChange expressions, per spec.md §4.8. All graph-side
// methods (Subscribe, Unsubscribe, LookupNow, Drain) are meant to run on
// the single exec thread; Post is the one method an Interface
// implementation may call from its own thread, handing a sample across
// the buffered inbound channel described in spec.md §5.
type StateCache struct {
	iface   Interface
	sched   Scheduler
	entries map[string]*cacheEntry
	inbound chan update
}

// NewStateCache builds a StateCache fronting iface, timestamping entries
// from sched, with an inbound queue of the given capacity.
func NewStateCache(iface Interface, sched Scheduler, queueCapacity int) *StateCache {
	if queueCapacity <= 0 {
		queueCapacity = 64
	}
	return &StateCache{
		iface:   iface,
		sched:   sched,
		entries: make(map[string]*cacheEntry),
		inbound: make(chan update, queueCapacity),
	}
}

// Post is called by the Interface (possibly from another goroutine) to
// deliver an asynchronous sample for state s. It never blocks the exec
// thread; if the inbound queue is full the sample is dropped, matching
// the "best-effort freshness, not a transactional log" nature of state
// updates in spec.md §4.8.
func (c *StateCache) Post(s State, v exprgraph.Value) {
	select {
	case c.inbound <- update{state: s, value: v}:
	default:
	}
}

// Drain applies every inbound sample currently queued, notifying the
// subscribed LookupOnChange expressions of each state that actually
// changed. Call this once per exec cycle from the single exec thread.
func (c *StateCache) Drain() {
	for {
		select {
		case u := <-c.inbound:
			c.apply(u.state, u.value)
		default:
			return
		}
	}
}

func (c *StateCache) apply(s State, v exprgraph.Value) {
	key := s.Key()
	e := c.entries[key]
	if e == nil {
		e = &cacheEntry{subscribers: make(map[*LookupOnChange]struct{})}
		c.entries[key] = e
	}
	changed := !e.lastValue.Same(v)
	e.lastValue = v
	e.lastCycle = c.sched.Cycle()
	if !changed {
		return
	}
	// The threshold band is centered on the latest known value, so it must
	// be recomputed as that center moves, not just on Subscribe/Unsubscribe.
	_ = c.recomputeThresholds(s, e)
	for sub := range e.subscribers {
		sub.deliver(v)
	}
}

// LookupNow performs an immediate query bypassing subscription, per
// spec.md §6. It also records the sample in the cache entry: subscribers
// already registered for s receive it through the usual delivery path, and
// the threshold band is centered on it. A LookupOnChange that subscribes
// later does not take its value from the entry; it stays unknown until a
// sample is delivered to it.
func (c *StateCache) LookupNow(s State) (exprgraph.Value, error) {
	v, err := c.iface.LookupNow(s)
	if err != nil {
		return exprgraph.Value{}, err
	}
	c.apply(s, v)
	return v, nil
}

// Subscribe registers loc as a subscriber of its State, asking the
// Interface to start delivering changes on first subscriber and
// recomputing the tightest-tolerance-wins threshold for the state.
func (c *StateCache) Subscribe(loc *LookupOnChange) error {
	key := loc.state.Key()
	e := c.entries[key]
	if e == nil {
		e = &cacheEntry{subscribers: make(map[*LookupOnChange]struct{})}
		c.entries[key] = e
	}
	first := len(e.subscribers) == 0
	e.subscribers[loc] = struct{}{}
	if first {
		if err := c.iface.Subscribe(loc.state); err != nil {
			delete(e.subscribers, loc)
			return err
		}
	}
	return c.recomputeThresholds(loc.state, e)
}

// Unsubscribe removes loc from its State's subscriber set, asking the
// Interface to stop delivery once no subscribers remain, otherwise
// recomputing the tightest-tolerance-wins threshold for the remaining
// subscribers.
func (c *StateCache) Unsubscribe(loc *LookupOnChange) error {
	key := loc.state.Key()
	e := c.entries[key]
	if e == nil {
		return nil
	}
	delete(e.subscribers, loc)
	if len(e.subscribers) == 0 {
		return c.iface.Unsubscribe(loc.state)
	}
	return c.recomputeThresholds(loc.state, e)
}

// RefreshTolerance recomputes the Interface-facing threshold band for
// loc's state after loc's own tolerance has changed, per spec.md §9
// ("add/remove/change of one subscriber's tolerance yields ...
// recomputation"). It is a no-op if loc is not (yet) subscribed.
func (c *StateCache) RefreshTolerance(loc *LookupOnChange) error {
	e := c.entries[loc.state.Key()]
	if e == nil {
		return nil
	}
	if _, subscribed := e.subscribers[loc]; !subscribed {
		return nil
	}
	return c.recomputeThresholds(loc.state, e)
}

// recomputeThresholds applies the tightest-tolerance-wins rule: among all
// current subscribers of a state, the smallest tolerance determines the
// [low, high] band passed to the Interface, per spec.md §4.8.
func (c *StateCache) recomputeThresholds(s State, e *cacheEntry) error {
	if len(e.subscribers) == 0 {
		return c.iface.ClearThresholds(s)
	}
	var tightest float64
	haveTolerance := false
	for sub := range e.subscribers {
		tol, known := sub.tolerance()
		if !known {
			continue
		}
		if !haveTolerance || tol < tightest {
			tightest = tol
			haveTolerance = true
		}
	}
	if !haveTolerance {
		return c.iface.ClearThresholds(s)
	}
	center, known := e.lastValue.RealVal()
	if !known {
		return c.iface.ClearThresholds(s)
	}
	if e.lastValue.Type() == exprgraph.Integer {
		lo := int64(center - tightest)
		hi := int64(center + tightest)
		return c.iface.SetIntThresholds(s, lo, hi)
	}
	return c.iface.SetThresholds(s, exprgraph.RealValue(center-tightest), exprgraph.RealValue(center+tightest))
}
