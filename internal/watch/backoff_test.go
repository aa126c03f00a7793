package watch

import (
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	t.Run("schedule for ten idle polls", func(t *testing.T) {
		var b Backoff

		want := []time.Duration{1, 1, 1, 1, 2, 2, 2, 2, 5, 5}
		for i, seconds := range want {
			got := b.Next()
			if got != seconds*time.Second {
				t.Errorf("step %d: expected %ds, got %v", i, seconds, got)
			}
		}

		if got := b.Next(); got != 10*time.Second {
			t.Errorf("eleventh step: expected 10s, got %v", got)
		}
	})

	t.Run("plateaus at sixty seconds", func(t *testing.T) {
		var b Backoff
		for i := 0; i < len(backoffSteps); i++ {
			b.Next()
		}

		for i := 0; i < 3; i++ {
			if got := b.Next(); got != 60*time.Second {
				t.Errorf("expected 60s plateau, got %v", got)
			}
		}
	})

	t.Run("reset restarts the schedule", func(t *testing.T) {
		var b Backoff
		for i := 0; i < 6; i++ {
			b.Next()
		}

		b.Reset()
		if got := b.Next(); got != 1*time.Second {
			t.Errorf("expected 1s after reset, got %v", got)
		}
	})
}
