package lookup

import "github.com/plexcore/exprgraph"

// Interface is the contract a plan executive's external-world adapter
// implements, per spec.md §6. LookupNow performs an immediate, one-shot
// query; Subscribe/Unsubscribe register a State for change-driven
// updates delivered asynchronously into the StateCache's inbound queue;
// SetThresholds/SetIntThresholds/ClearThresholds narrow or widen the
// tolerance band the adapter uses to decide whether a new sample is
// worth delivering.
type Interface interface {
	LookupNow(s State) (exprgraph.Value, error)
	Subscribe(s State) error
	Unsubscribe(s State) error
	SetThresholds(s State, low, high exprgraph.Value) error
	SetIntThresholds(s State, low, high int64) error
	ClearThresholds(s State) error
	CurrentTime() float64
}

// Scheduler advances the plan's notion of execution cycle, used to
// timestamp cache entries so staleness can be detected.
type Scheduler interface {
	IncrementCycle() int64
	Cycle() int64
}

// SimpleScheduler is a minimal Scheduler backed by a counter.
type SimpleScheduler struct {
	cycle int64
}

func (s *SimpleScheduler) IncrementCycle() int64 {
	s.cycle++
	return s.cycle
}

func (s *SimpleScheduler) Cycle() int64 { return s.cycle }
