package memory

import (
	"fmt"
	"log/slog"
	"time"
)

// Outcome describes an applied verdict for the statistics of the exam day.
type Outcome struct {
	Verdict Verdict
	// PreviousStep is the step held before the verdict.
	PreviousStep int
	// FirstAttempt is true when the record had not been missed in the current round.
	FirstAttempt bool
}

// Apply returns the record after the learner answered v at now.
//
// A first-attempt Aware schedules the next test from the interval of the step held
// before the answer and promotes the step. Aware after a miss puts the word back to
// step 1 and unlocks it RelearnDelay later. Forgot keeps unlockAt so the word stays
// eligible and counts the miss only once per round.
func Apply(m Memory, v Verdict, now time.Time) (Memory, Outcome, error) {
	outcome := Outcome{
		Verdict:      v,
		PreviousStep: m.Step,
		FirstAttempt: m.GroupLevel == 0,
	}

	next := m
	switch v {
	case VerdictAware:
		if m.GroupLevel == 0 {
			next.AwareCount++
			next.UnlockAt = now.Add(Interval(m.Step) - UnlockBias)
			if m.Step < MaxStep {
				next.Step = m.Step + 1
			} else if next.ForgotCount > 0 {
				next.ForgotCount--
			}
			next.Status = StatusAware
		} else {
			next.UnlockAt = now.Add(RelearnDelay)
			next.Step = 1
			next.GroupLevel = 0
		}
	case VerdictForgot:
		if m.GroupLevel == 0 {
			next.ForgotCount++
		}
		next.GroupLevel++
		next.Status = StatusForgot
	default:
		return m, Outcome{}, fmt.Errorf("%w: %q", ErrInvalidVerdict, v)
	}
	next.UpdatedAt = now

	slog.Default().Debug("memory transition",
		"memory_id", m.ID,
		"verdict", v,
		"step", fmt.Sprintf("%d->%d", m.Step, next.Step),
		"group_level", fmt.Sprintf("%d->%d", m.GroupLevel, next.GroupLevel),
		"unlock_at", next.UnlockAt,
	)
	return next, outcome, nil
}

// Reset puts the record back to its admission state. Lifetime counters are kept.
func Reset(m Memory, now time.Time) Memory {
	m.Step = 0
	m.UnlockAt = now
	m.Status = StatusUnknown
	m.GroupLevel = 0
	m.UpdatedAt = now
	return m
}
