package services

import (
	"math/rand"
	"sort"
)

// EventDayCount is how many market-wide event days a run draws.
const EventDayCount = 5

const (
	eventImpactLo = 1.1
	eventImpactHi = 1.5
)

// EventCalendar is the set of event days shared by every product in one run.
type EventCalendar struct {
	horizon int
	days    map[int]struct{}
}

// NewEventCalendar draws up to EventDayCount distinct day indices from [0, horizon)
// without replacement.
func NewEventCalendar(rng *rand.Rand, horizon int) *EventCalendar {
	cal := &EventCalendar{horizon: horizon, days: make(map[int]struct{})}
	if horizon <= 0 {
		return cal
	}

	n := min(EventDayCount, horizon)
	for _, d := range rng.Perm(horizon)[:n] {
		cal.days[d] = struct{}{}
	}
	return cal
}

// NewEventCalendarFromDays builds a calendar from explicit day indices.
func NewEventCalendarFromDays(horizon int, days ...int) *EventCalendar {
	cal := &EventCalendar{horizon: horizon, days: make(map[int]struct{}, len(days))}
	for _, d := range days {
		if d >= 0 && d < horizon {
			cal.days[d] = struct{}{}
		}
	}
	return cal
}

// IsEventDay reports whether day is one of the drawn event days.
func (c *EventCalendar) IsEventDay(day int) bool {
	_, ok := c.days[day]
	return ok
}

// Days returns the event day indices in ascending order.
func (c *EventCalendar) Days() []int {
	out := make([]int, 0, len(c.days))
	for d := range c.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Simulate returns the event flag and demand impact for a day. Event days
// draw an impact in [1.1, 1.5); every other day is (0, 1.0).
func (c *EventCalendar) Simulate(rng *rand.Rand, day int) (int, float64) {
	if !c.IsEventDay(day) {
		return 0, 1.0
	}
	return 1, round2(uniform(rng, eventImpactLo, eventImpactHi))
}
