package mock

import (
	"sync"
	"time"
)

// Clock is a controllable adapter.Clock. Time keeps flowing from the
// instant set by the last SetCurrentTime call.
type Clock struct {
	mu        sync.RWMutex
	startedAt time.Time
	setAt     time.Time
	loc       *time.Location
}

func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now()
	return &Clock{
		startedAt: now,
		setAt:     now,
		loc:       loc,
	}
}

func (c *Clock) SetCurrentTime(currentTime time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startedAt = currentTime
	c.setAt = time.Now()
}

func (c *Clock) Reset() {
	c.SetCurrentTime(time.Now())
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startedAt.Add(time.Since(c.setAt)).In(c.loc)
}
