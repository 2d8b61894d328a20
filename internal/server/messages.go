package server

import "time"

// Requests and responses of the exam service.
// They travel as JSON; field names follow the json tags.

type Scope struct {
	UserID int64  `json:"userId" validate:"gt=0"`
	BookID int64  `json:"bookId" validate:"gt=0"`
	Mode   string `json:"mode" validate:"oneof=word meaning"`
}

type GetNextQuestionRequest struct {
	Scope Scope `json:"scope"`
}

type Question struct {
	EntryID       int64  `json:"entryId"`
	MemoryID      int64  `json:"memoryId"`
	WordID        int64  `json:"wordId"`
	Mode          string `json:"mode"`
	Prompt        string `json:"prompt"`
	PromptExample string `json:"promptExample,omitempty"`
	Answer        string `json:"answer"`
	AnswerExample string `json:"answerExample,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Link          string `json:"link,omitempty"`
	Note          string `json:"note,omitempty"`
	Step          int    `json:"step"`
	GroupLevel    int    `json:"groupLevel"`
	Remaining     int    `json:"remaining"`
}

// GetNextQuestionResponse has a nil Question when nothing is eligible.
type GetNextQuestionResponse struct {
	Question *Question `json:"question,omitempty"`
}

type RecordVerdictRequest struct {
	EntryID int64  `json:"entryId" validate:"gt=0"`
	Verdict string `json:"verdict" validate:"oneof=aware forgot"`
}

type Memory struct {
	ID          int64     `json:"id"`
	WordID      int64     `json:"wordId"`
	Mode        string    `json:"mode"`
	Step        int       `json:"step"`
	UnlockAt    time.Time `json:"unlockAt"`
	Status      string    `json:"status"`
	GroupLevel  int       `json:"groupLevel"`
	AwareCount  int       `json:"awareCount"`
	ForgotCount int       `json:"forgotCount"`
}

type RecordVerdictResponse struct {
	Memory Memory `json:"memory"`
}

type AdmitNewItemsRequest struct {
	Scope Scope `json:"scope"`
	Count int   `json:"count"`
}

type AdmitNewItemsResponse struct {
	Admitted int64 `json:"admitted"`
}

type StartSessionRequest struct {
	Scope Scope `json:"scope"`
	// Count falls back to the configured default when omitted.
	Count *int `json:"count,omitempty"`
}

type Counts struct {
	Eligible int  `json:"eligible"`
	New      int  `json:"new"`
	Pending  int  `json:"pending"`
	Finished bool `json:"finished"`
}

type StartSessionResponse struct {
	Admitted int64  `json:"admitted"`
	Queued   int64  `json:"queued"`
	Counts   Counts `json:"counts"`
}

type GetCountsRequest struct {
	Scope Scope `json:"scope"`
}

type GetCountsResponse struct {
	Counts Counts `json:"counts"`
}

type GetDailyStatsRequest struct {
	Scope Scope `json:"scope"`
	// Date is YYYY-MM-DD; the current exam day when empty.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type StepCounts struct {
	Step   int `json:"step"`
	Aware  int `json:"aware"`
	Forgot int `json:"forgot"`
}

type GetDailyStatsResponse struct {
	Date  string       `json:"date"`
	Steps []StepCounts `json:"steps"`
}

type ResetMemoryRequest struct {
	UserID int64  `json:"userId" validate:"gt=0"`
	WordID int64  `json:"wordId" validate:"gt=0"`
	Mode   string `json:"mode" validate:"oneof=word meaning"`
}

type ResetMemoryResponse struct {
	Memory Memory `json:"memory"`
}
