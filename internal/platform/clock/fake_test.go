package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceFiresTimersInOrder(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.March, 7, 22, 0, 0, 0, time.UTC)
	clk := NewFake(start)

	var fired []string
	var firedAt []time.Time
	clk.AfterFunc(2*time.Minute, func() {
		fired = append(fired, "second")
		firedAt = append(firedAt, clk.Now())
	})
	clk.AfterFunc(time.Minute, func() {
		fired = append(fired, "first")
		firedAt = append(firedAt, clk.Now())
	})
	clk.AfterFunc(10*time.Minute, func() { fired = append(fired, "late") })

	clk.Advance(5 * time.Minute)

	require.Equal(t, []string{"first", "second"}, fired)
	assert.Equal(t, start.Add(time.Minute), firedAt[0])
	assert.Equal(t, start.Add(2*time.Minute), firedAt[1])
	assert.Equal(t, start.Add(5*time.Minute), clk.Now())
	assert.Equal(t, 1, clk.Pending())
}

func TestFake_StopPreventsCallback(t *testing.T) {
	t.Parallel()

	clk := NewFake(time.Unix(0, 0))
	called := false
	timer := clk.AfterFunc(time.Second, func() { called = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop(), "second stop must be a no-op")

	clk.Advance(time.Minute)
	assert.False(t, called)
}

func TestFake_StopAfterFireIsNoop(t *testing.T) {
	t.Parallel()

	clk := NewFake(time.Unix(0, 0))
	timer := clk.AfterFunc(time.Second, func() {})
	clk.Advance(time.Second)

	assert.False(t, timer.Stop())
}

func TestFake_CallbackCanArmTimerInsideWindow(t *testing.T) {
	t.Parallel()

	clk := NewFake(time.Unix(0, 0))
	count := 0
	clk.AfterFunc(time.Second, func() {
		count++
		clk.AfterFunc(time.Second, func() { count++ })
	})

	clk.Advance(3 * time.Second)
	assert.Equal(t, 2, count)
}

func TestFake_TickerDeliversTick(t *testing.T) {
	t.Parallel()

	clk := NewFake(time.Unix(0, 0))
	ticker := clk.NewTicker(time.Minute)
	defer ticker.Stop()

	clk.Advance(30 * time.Second)
	select {
	case <-ticker.C():
		t.Fatalf("unexpected tick before period elapsed")
	default:
	}

	clk.Advance(30 * time.Second)
	select {
	case tick := <-ticker.C():
		assert.True(t, tick.Equal(time.Unix(60, 0)), "unexpected tick time %s", tick)
	default:
		t.Fatalf("expected tick after one period")
	}
}
