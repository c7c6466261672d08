package countdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/everefficient/booking/internal/countdown"
)

var eventStart = time.Date(2025, time.August, 30, 19, 0, 0, 0, time.UTC)

func TestUntil(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want countdown.Remaining
	}{
		{
			name: "weeks out",
			now:  eventStart.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second)),
			want: countdown.Remaining{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
		},
		{
			name: "under a minute",
			now:  eventStart.Add(-42 * time.Second),
			want: countdown.Remaining{Seconds: 42},
		},
		{
			name: "at the start",
			now:  eventStart,
			want: countdown.Remaining{},
		},
		{
			name: "already started",
			now:  eventStart.Add(time.Hour),
			want: countdown.Remaining{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countdown.Until(eventStart, tt.now))
		})
	}
}

func TestRemaining_Zero(t *testing.T) {
	assert.True(t, countdown.Remaining{}.Zero())
	assert.False(t, countdown.Remaining{Seconds: 1}.Zero())
}

func TestTimer_DeliversTicksAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	timer := countdown.New(
		eventStart,
		countdown.WithInterval(time.Millisecond),
		countdown.WithNow(func() time.Time { return eventStart.Add(-90 * time.Second) }),
	)

	ticks := make(chan countdown.Remaining, 16)
	done := make(chan struct{})

	go func() {
		timer.Run(ctx, func(remaining countdown.Remaining) {
			select {
			case ticks <- remaining:
			default:
			}
		})
		close(done)
	}()

	select {
	case remaining := <-ticks:
		assert.Equal(t, countdown.Remaining{Minutes: 1, Seconds: 30}, remaining)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a tick")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer kept running after cancellation")
	}
}
