package lookup

import (
	"testing"

	"github.com/plexcore/exprgraph"
)

func newTestCache() (*StateCache, *MemInterface) {
	sched := &SimpleScheduler{}
	iface := NewMemInterface()
	cache := NewStateCache(iface, sched, 8)
	iface.AttachCache(cache)
	return cache, iface
}

// countingListener is a minimal exprgraph.Listener for counting
// NotifyChanged calls in tests.
type countingListener struct{ n *int }

func (c countingListener) NotifyChanged(exprgraph.Expression) { *c.n++ }

// spyInterface is a lookup.Interface that records the threshold band most
// recently set, so tests can observe StateCache's tightest-tolerance-wins
// recomputation without a real external data source.
type spyInterface struct {
	values          map[string]exprgraph.Value
	subscribed      map[string]bool
	lastLow         exprgraph.Value
	lastHigh        exprgraph.Value
	thresholdCalls  int
	clearCalls      int
}

func newSpyInterface() *spyInterface {
	return &spyInterface{values: make(map[string]exprgraph.Value), subscribed: make(map[string]bool)}
}

func (s *spyInterface) LookupNow(st State) (exprgraph.Value, error) {
	if v, ok := s.values[st.Key()]; ok {
		return v, nil
	}
	return exprgraph.UnknownValue(exprgraph.Unknown), nil
}

func (s *spyInterface) Subscribe(st State) error {
	s.subscribed[st.Key()] = true
	return nil
}

func (s *spyInterface) Unsubscribe(st State) error {
	delete(s.subscribed, st.Key())
	return nil
}

func (s *spyInterface) SetThresholds(st State, low, high exprgraph.Value) error {
	s.lastLow, s.lastHigh = low, high
	s.thresholdCalls++
	return nil
}

func (s *spyInterface) SetIntThresholds(State, int64, int64) error { return nil }

func (s *spyInterface) ClearThresholds(State) error {
	s.clearCalls++
	return nil
}

func (s *spyInterface) CurrentTime() float64 { return 0 }

func TestLookupNow_QueriesInterfaceOnActivate(t *testing.T) {
	cache, iface := newTestCache()
	s := NewState("battery")
	iface.Set(s, exprgraph.RealValue(0.75))

	ln := NewLookupNow("lk", "node", exprgraph.Real, s, cache)
	ln.Activate()
	defer ln.Deactivate()

	got, known := ln.Value().RealVal()
	if !known || got != 0.75 {
		t.Errorf("expected 0.75, got %v known=%v", got, known)
	}
}

func TestLookupOnChange_DeliversAsyncUpdate(t *testing.T) {
	cache, iface := newTestCache()
	s := NewState("battery")

	loc := NewLookupOnChange("loc", "node", exprgraph.Real, s, nil, cache)
	loc.Activate()
	defer loc.Deactivate()

	if loc.Value().IsKnown() {
		t.Error("expected unknown before any sample arrives")
	}

	iface.Set(s, exprgraph.RealValue(0.5))
	cache.Drain()

	got, known := loc.Value().RealVal()
	if !known || got != 0.5 {
		t.Errorf("expected 0.5 after Drain, got %v known=%v", got, known)
	}
}

func TestLookupOnChange_UnsubscribeStopsDelivery(t *testing.T) {
	cache, iface := newTestCache()
	s := NewState("battery")

	loc := NewLookupOnChange("loc", "node", exprgraph.Real, s, nil, cache)
	loc.Activate()
	loc.Deactivate()

	iface.Set(s, exprgraph.RealValue(0.9))
	cache.Drain()

	if loc.Value().IsKnown() {
		t.Error("expected an unsubscribed LookupOnChange to stay unknown after further updates")
	}
}

func TestLookupNow_UnknownStateIsUnknownNotError(t *testing.T) {
	cache, _ := newTestCache()
	s := NewState("never_set")

	ln := NewLookupNow("lk", "node", exprgraph.Real, s, cache)
	ln.Activate()
	defer ln.Deactivate()

	if ln.LastError() != nil {
		t.Errorf("expected no error for an unset state, got %v", ln.LastError())
	}
	if ln.Value().IsKnown() {
		t.Error("expected unknown for a state that was never Set")
	}
}

// TestLookupOnChange_PerSubscriberDeadband exercises spec.md §4.8's S3
// scenario: a sample within the latched tolerance band must not publish,
// and one beyond it must both publish and move the latched baseline.
func TestLookupOnChange_PerSubscriberDeadband(t *testing.T) {
	cache, iface := newTestCache()
	s := NewState("battery")
	tol := exprgraph.NewConstant("tol", exprgraph.RealValue(0.5))

	loc := NewLookupOnChange("loc", "node", exprgraph.Real, s, tol, cache)
	loc.Activate()
	defer loc.Deactivate()

	notified := 0
	loc.AddListener(countingListener{&notified})

	iface.Set(s, exprgraph.RealValue(1.0))
	cache.Drain()
	if notified != 1 {
		t.Fatalf("expected the first sample to publish, got %d notifications", notified)
	}

	iface.Set(s, exprgraph.RealValue(1.4))
	cache.Drain()
	if notified != 1 {
		t.Errorf("expected 1.4 (0.4 from latched 1.0, within 0.5 tolerance) to stay silent, got %d notifications", notified)
	}
	if v, _ := loc.Value().RealVal(); v != 1.0 {
		t.Errorf("expected latched value to remain 1.0, got %v", v)
	}

	iface.Set(s, exprgraph.RealValue(1.6))
	cache.Drain()
	if notified != 2 {
		t.Errorf("expected 1.6 (0.6 from latched 1.0, beyond 0.5 tolerance) to publish, got %d notifications", notified)
	}
	if v, _ := loc.Value().RealVal(); v != 1.6 {
		t.Errorf("expected latched value to move to 1.6, got %v", v)
	}
}

// TestLookupOnChange_ToleranceChangeTriggersRecompute exercises spec.md
// §4.8/§9's S4 scenario: changing a subscriber's own tolerance while
// subscribed must immediately recompute the Interface-facing threshold
// band, not just take effect on the next activation.
func TestLookupOnChange_ToleranceChangeTriggersRecompute(t *testing.T) {
	sched := &SimpleScheduler{}
	spy := newSpyInterface()
	cache := NewStateCache(spy, sched, 8)
	s := NewState("battery")

	tolVar := exprgraph.NewVariable("tol", "node", exprgraph.Real, exprgraph.NewConstant("init", exprgraph.RealValue(0.5)), true)
	loc := NewLookupOnChange("loc", "node", exprgraph.Real, s, tolVar, cache)
	loc.Activate()
	defer loc.Deactivate()

	cache.Post(s, exprgraph.RealValue(1.0))
	cache.Drain()

	lo, _ := spy.lastLow.RealVal()
	hi, _ := spy.lastHigh.RealVal()
	if lo != 0.5 || hi != 1.5 {
		t.Fatalf("expected initial band [0.5,1.5], got [%v,%v]", lo, hi)
	}

	callsBefore := spy.thresholdCalls
	if err := tolVar.SetValue(exprgraph.RealValue(0.1)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if spy.thresholdCalls <= callsBefore {
		t.Fatal("expected changing the tolerance while subscribed to trigger threshold recomputation")
	}
	lo, _ = spy.lastLow.RealVal()
	hi, _ = spy.lastHigh.RealVal()
	if lo != 0.9 || hi != 1.1 {
		t.Errorf("expected recomputed band [0.9,1.1] after tolerance change, got [%v,%v]", lo, hi)
	}
}

// TestLookupOnChange_TightestToleranceWins exercises the rest of spec.md
// §4.8: among several subscribers of the same state, the Interface-facing
// band follows the smallest tolerance, independent of each subscriber's own
// (looser) deadband.
func TestLookupOnChange_TightestToleranceWins(t *testing.T) {
	sched := &SimpleScheduler{}
	spy := newSpyInterface()
	cache := NewStateCache(spy, sched, 8)
	s := NewState("battery")

	loose := NewLookupOnChange("loose", "node", exprgraph.Real, s, exprgraph.NewConstant("t1", exprgraph.RealValue(1.0)), cache)
	tight := NewLookupOnChange("tight", "node", exprgraph.Real, s, exprgraph.NewConstant("t2", exprgraph.RealValue(0.2)), cache)

	loose.Activate()
	defer loose.Deactivate()
	tight.Activate()

	cache.Post(s, exprgraph.RealValue(2.0))
	cache.Drain()

	lo, _ := spy.lastLow.RealVal()
	hi, _ := spy.lastHigh.RealVal()
	if lo != 1.8 || hi != 2.2 {
		t.Errorf("expected tightest-tolerance-wins band [1.8,2.2], got [%v,%v]", lo, hi)
	}

	tight.Deactivate()
	cache.Post(s, exprgraph.RealValue(2.0))
	cache.Drain()
	lo, _ = spy.lastLow.RealVal()
	hi, _ = spy.lastHigh.RealVal()
	if lo != 1.0 || hi != 3.0 {
		t.Errorf("expected band to widen to [1.0,3.0] once the tight subscriber unsubscribes, got [%v,%v]", lo, hi)
	}
}
