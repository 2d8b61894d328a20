package memory

import "time"

// Memory is the learning record of one learner for one word in one mode.
type Memory struct {
	ID          int64     `db:"id" yaml:"id"`
	UserID      int64     `db:"user_id" yaml:"user_id"`
	BookID      int64     `db:"book_id" yaml:"book_id"`
	WordID      int64     `db:"word_id" yaml:"word_id"`
	Mode        Mode      `db:"mode" yaml:"mode"`
	Step        int       `db:"step" yaml:"step"`
	UnlockAt    time.Time `db:"unlock_at" yaml:"unlock_at"`
	Status      Status    `db:"status" yaml:"status"`
	GroupLevel  int       `db:"group_level" yaml:"group_level"`
	AwareCount  int       `db:"aware_cnt" yaml:"aware_count"`
	ForgotCount int       `db:"forgot_cnt" yaml:"forgot_count"`
	CreatedAt   time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" yaml:"updated_at"`
}

// IsEligible reports whether the record may be tested at now.
func (m Memory) IsEligible(now time.Time) bool {
	return !m.UnlockAt.After(now)
}

// New returns the record a word starts with when it is admitted.
func New(userID, bookID, wordID int64, mode Mode, now time.Time) Memory {
	return Memory{
		UserID:    userID,
		BookID:    bookID,
		WordID:    wordID,
		Mode:      mode,
		Step:      0,
		UnlockAt:  now,
		Status:    StatusUnknown,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
