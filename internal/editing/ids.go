package editing

import "sync/atomic"

// IDSource hands out entry identifiers that never repeat within a session.
type IDSource interface {
	Next() int64
}

// Counter is a monotonically increasing IDSource. The zero value starts at 1.
type Counter struct {
	last atomic.Int64
}

// NewCounter returns a Counter whose first identifier is above floor.
func NewCounter(floor int64) *Counter {
	c := &Counter{}
	c.last.Store(floor)
	return c
}

// Next returns the next identifier.
func (c *Counter) Next() int64 {
	return c.last.Add(1)
}

// Observe raises the counter so later identifiers stay above id.
// Used when a whole résumé is imported with identifiers of its own.
func (c *Counter) Observe(id int64) {
	for {
		cur := c.last.Load()
		if id <= cur || c.last.CompareAndSwap(cur, id) {
			return
		}
	}
}
