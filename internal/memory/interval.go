package memory

import "time"

const (
	// MaxStep is the last step of the interval table.
	MaxStep = 4

	// UnlockBias is taken off every long interval so a word unlocks earlier on the due day.
	UnlockBias = 8 * time.Hour
	// RelearnDelay is how long a word answered correctly after a miss stays locked.
	RelearnDelay = 16 * time.Hour

	day = 24 * time.Hour
)

var intervals = [...]time.Duration{
	0: 1 * day,
	1: 7 * day,
	2: 28 * day,
	3: 84 * day,
	4: 365 * day,
}

// Interval returns the delay before a word at step is tested again.
// Steps past the table use the last entry.
func Interval(step int) time.Duration {
	if step < 0 {
		step = 0
	}
	if step > MaxStep {
		step = MaxStep
	}
	return intervals[step]
}
