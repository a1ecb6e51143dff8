package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var start = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func TestFakeAdvance(t *testing.T) {
	t.Run("Should fire due timers in deadline order", func(t *testing.T) {
		c := NewFake(start)
		var order []string
		c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
		c.AfterFunc(time.Second, func() { order = append(order, "a") })
		c.AfterFunc(5*time.Second, func() { order = append(order, "c") })

		c.Advance(2 * time.Second)
		assert.Equal(t, []string{"a", "b"}, order)
		assert.Equal(t, 1, c.Pending())
		assert.Equal(t, start.Add(2*time.Second), c.Now())
	})

	t.Run("Should report the deadline as now inside callbacks", func(t *testing.T) {
		c := NewFake(start)
		var seen time.Time
		c.AfterFunc(500*time.Millisecond, func() { seen = c.Now() })

		c.Advance(time.Minute)
		assert.Equal(t, start.Add(500*time.Millisecond), seen)
		assert.Equal(t, start.Add(time.Minute), c.Now())
	})

	t.Run("Should fire timers armed by callbacks within the window", func(t *testing.T) {
		c := NewFake(start)
		fired := 0
		var tick func()
		tick = func() {
			fired++
			c.AfterFunc(30*time.Second, tick)
		}
		c.AfterFunc(30*time.Second, tick)

		c.Advance(95 * time.Second)
		assert.Equal(t, 3, fired)
		assert.Equal(t, 1, c.Pending())
	})

	t.Run("Should skip stopped timers", func(t *testing.T) {
		c := NewFake(start)
		fired := false
		timer := c.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		c.Advance(time.Hour)
		assert.False(t, fired)
		assert.Zero(t, c.Pending())
	})

	t.Run("Should not fire on Set", func(t *testing.T) {
		c := NewFake(start)
		fired := false
		c.AfterFunc(time.Second, func() { fired = true })

		c.Set(start.Add(time.Hour))
		assert.False(t, fired)
		c.Advance(0)
		assert.True(t, fired)
	})
}

func TestRealClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	assert.Equal(t, loc, New(loc).Now().Location())
	assert.Equal(t, time.Local, New(nil).Now().Location())
}
