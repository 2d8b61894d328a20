// Package memory holds the per-learner ledger of vocabulary records and its state machine.
package memory

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMode    = errors.New("invalid mode")
	ErrInvalidVerdict = errors.New("invalid verdict")
)

// Mode is the direction a word is tested in.
type Mode string

const (
	// ModePromptToAnswer shows the word and asks for its meaning.
	ModePromptToAnswer Mode = "word"
	// ModeAnswerToPrompt shows the meaning and asks for the word.
	ModeAnswerToPrompt Mode = "meaning"
)

var modeByName = map[string]Mode{
	"word":    ModePromptToAnswer,
	"w":       ModePromptToAnswer,
	"meaning": ModeAnswerToPrompt,
	"m":       ModeAnswerToPrompt,
}

// ParseMode accepts the stored names and their one-letter forms.
func ParseMode(s string) (Mode, error) {
	mode, ok := modeByName[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return mode, nil
}

func (m Mode) String() string { return string(m) }

// Valid reports whether m is one of the two exam directions.
func (m Mode) Valid() bool {
	return m == ModePromptToAnswer || m == ModeAnswerToPrompt
}

// Status is the outcome of the latest first attempt of a record.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusAware   Status = "aware"
	StatusForgot  Status = "forgot"
)

// Verdict is the learner's answer to one question.
type Verdict string

const (
	VerdictAware  Verdict = "aware"
	VerdictForgot Verdict = "forgot"
)

func ParseVerdict(s string) (Verdict, error) {
	switch Verdict(s) {
	case VerdictAware, VerdictForgot:
		return Verdict(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVerdict, s)
}

// Status is the record status a verdict leads to.
func (v Verdict) Status() Status {
	if v == VerdictAware {
		return StatusAware
	}
	return StatusForgot
}
