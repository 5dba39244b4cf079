package sim

import (
	"sort"
	"time"
)

// Clock is a manual clock. Timers fire in due order, ties in scheduling
// order, and only from Advance.
type Clock struct {
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	due  time.Duration
	seq  int
	fn   func()
	dead bool
}

func (t *timer) cancel() { t.dead = true }

func NewClock() *Clock { return &Clock{} }

// Now is the time elapsed since the clock was created.
func (c *Clock) Now() time.Duration { return c.now }

func (c *Clock) after(d time.Duration, fn func()) *timer {
	c.seq++
	t := &timer{due: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Pending counts live timers.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, running every timer that falls due on the
// way, including timers scheduled by those timers.
func (c *Clock) Advance(d time.Duration) {
	end := c.now + d
	for {
		t := c.next(end)
		if t == nil {
			break
		}
		c.now = t.due
		t.dead = true
		t.fn()
	}
	c.now = end
	c.compact()
}

func (c *Clock) next(end time.Duration) *timer {
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due != c.timers[j].due {
			return c.timers[i].due < c.timers[j].due
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	for _, t := range c.timers {
		if t.dead {
			continue
		}
		if t.due > end {
			return nil
		}
		return t
	}
	return nil
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	c.timers = live
}
