package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventCalendarDrawsDistinctDays(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cal := NewEventCalendar(rng, 60)

	days := cal.Days()
	require.Len(t, days, EventDayCount)
	for i, d := range days {
		assert.GreaterOrEqual(t, d, 0)
		assert.Less(t, d, 60)
		if i > 0 {
			assert.Greater(t, d, days[i-1], "days must be distinct and sorted")
		}
	}
}

func TestNewEventCalendarShortHorizon(t *testing.T) {
	cal := NewEventCalendar(rand.New(rand.NewSource(1)), 3)
	assert.Equal(t, []int{0, 1, 2}, cal.Days())

	empty := NewEventCalendar(rand.New(rand.NewSource(1)), 0)
	assert.Empty(t, empty.Days())
}

func TestEventCalendarSimulate(t *testing.T) {
	cal := NewEventCalendarFromDays(30, 4, 9, 30, -1)
	assert.Equal(t, []int{4, 9}, cal.Days(), "out of range days are ignored")

	rng := rand.New(rand.NewSource(3))
	for day := 0; day < 30; day++ {
		event, impact := cal.Simulate(rng, day)
		if day == 4 || day == 9 {
			assert.Equal(t, 1, event)
			assert.GreaterOrEqual(t, impact, 1.1)
			assert.LessOrEqual(t, impact, 1.5)
			continue
		}
		assert.Equal(t, 0, event)
		assert.Equal(t, 1.0, impact)
	}
}
