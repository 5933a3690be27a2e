package rewriting

import (
	"sync"
	"time"
)

// DefaultFailureDisplayWindow is how long a failure message stays visible.
const DefaultFailureDisplayWindow = 5 * time.Second

// State is the position of one rewrite target in its state machine:
// idle -> requesting -> idle (success) or failed -> idle (after the window).
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateFailed     State = "failed"
)

// Status is what the UI shows for one rewrite button.
type Status struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

type trackedTarget struct {
	state    State
	message  string
	failedAt time.Time
}

// Tracker holds the rewrite status of every target of one session.
type Tracker struct {
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	targets  map[string]*trackedTarget
	inFlight int
}

// NewTracker creates a tracker whose failure messages clear after window.
func NewTracker(window time.Duration) *Tracker {
	return &Tracker{
		window:  window,
		now:     time.Now,
		targets: make(map[string]*trackedTarget),
	}
}

// WithClock replaces the time source. Intended for tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Begin moves key to requesting. It fails with ErrBusy when key already has
// a request outstanding. finish must be called once with the outcome.
func (t *Tracker) Begin(key string) (finish func(error), err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.targets[key]; ok && cur.state == StateRequesting {
		return nil, ErrBusy
	}
	t.targets[key] = &trackedTarget{state: StateRequesting}
	t.inFlight++

	var once sync.Once
	return func(outcome error) {
		once.Do(func() { t.finish(key, outcome) })
	}, nil
}

func (t *Tracker) finish(key string, outcome error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.inFlight--
	if outcome == nil {
		delete(t.targets, key)
		return
	}
	t.targets[key] = &trackedTarget{
		state:    StateFailed,
		message:  UserMessage(outcome),
		failedAt: t.now(),
	}
}

// Status returns the current status of key. A failure older than the
// display window reads as idle.
func (t *Tracker) Status(key string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked(key)
}

func (t *Tracker) statusLocked(key string) Status {
	cur, ok := t.targets[key]
	if !ok {
		return Status{State: StateIdle}
	}
	if cur.state == StateFailed && t.now().Sub(cur.failedAt) >= t.window {
		delete(t.targets, key)
		return Status{State: StateIdle}
	}
	return Status{State: cur.state, Error: cur.message}
}

// Active returns the status of every target that is not idle.
func (t *Tracker) Active() map[string]Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Status, len(t.targets))
	for key := range t.targets {
		if st := t.statusLocked(key); st.State != StateIdle {
			out[key] = st
		}
	}
	return out
}

// InFlight reports whether any request of this session is outstanding.
func (t *Tracker) InFlight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight > 0
}
