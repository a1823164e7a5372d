package browsertest

import (
	"sync"
	"time"
)

// Clock is an await.Clock whose Sleep advances time instantly.
type Clock struct {
	lock   sync.Mutex
	now    time.Time
	sleeps int
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *Clock) Sleep(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
	c.sleeps++
}

// Sleeps returns the number of times Sleep was called.
func (c *Clock) Sleeps() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.sleeps
}
