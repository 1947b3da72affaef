package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBreaker(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("insurance",
		WithFailureThreshold(3),
		WithSuccessThreshold(2),
		WithCooldown(10*time.Second),
		WithClock(clock.now),
	)

	t.Run("opens after consecutive failures", func(t *testing.T) {
		assert.Equal(t, StateChange{}, b.RecordFailure())
		b.RecordSuccess()
		b.RecordFailure()
		b.RecordFailure()
		assert.False(t, b.IsOpen())
		assert.Equal(t, StateChange{Opened: true}, b.RecordFailure())
		assert.Equal(t, "open", b.State().String())
		assert.False(t, b.Allow())
	})

	t.Run("allows probes after cooldown", func(t *testing.T) {
		clock.advance(9 * time.Second)
		assert.False(t, b.Allow())
		clock.advance(time.Second)
		assert.True(t, b.Allow())
	})

	t.Run("failed probe restarts cooldown", func(t *testing.T) {
		b.RecordFailure()
		assert.False(t, b.Allow())
		clock.advance(10 * time.Second)
		assert.True(t, b.Allow())
	})

	t.Run("closes after enough successful probes", func(t *testing.T) {
		assert.Equal(t, StateChange{}, b.RecordSuccess())
		assert.Equal(t, StateChange{Closed: true}, b.RecordSuccess())
		assert.True(t, b.Allow())
		assert.Equal(t, "closed", b.State().String())
	})

	t.Run("reset", func(t *testing.T) {
		for range 3 {
			b.RecordFailure()
		}
		b.Reset()
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, "insurance", b.Name())
	})
}
