package watch

import "time"

// backoffSteps is the escalating idle-wait schedule. After the table is
// exhausted every further step is the final plateau.
var backoffSteps = []time.Duration{
	1 * time.Second, 1 * time.Second, 1 * time.Second, 1 * time.Second,
	2 * time.Second, 2 * time.Second, 2 * time.Second, 2 * time.Second,
	5 * time.Second, 5 * time.Second,
	10 * time.Second, 15 * time.Second, 30 * time.Second, 45 * time.Second,
}

const backoffPlateau = 60 * time.Second

// Backoff tracks the wait duration applied while nothing is playing. It is
// scoped to one idle streak: Reset restarts the schedule the next time a
// track is found.
type Backoff struct {
	step int
}

// Next returns the next wait duration and advances the schedule.
func (b *Backoff) Next() time.Duration {
	if b.step < len(backoffSteps) {
		d := backoffSteps[b.step]
		b.step++
		return d
	}
	return backoffPlateau
}

// Reset restarts the schedule from its initial state.
func (b *Backoff) Reset() {
	b.step = 0
}
