// Package server provides Connect RPC handlers for the exam service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/memory"
	"github.com/at-ishikawa/wordexam/internal/statistics"
)

//go:generate mockgen -source=exam_handler.go -destination=../mocks/exam/mock_service.go -package=mock_exam ExamService

// ExamService is the part of the scheduler the handlers expose.
type ExamService interface {
	GetNextQuestion(ctx context.Context, scope memory.Scope) (*exam.QuestionView, error)
	RecordVerdict(ctx context.Context, entryID int64, verdict memory.Verdict) (*memory.Memory, error)
	AdmitNewItems(ctx context.Context, scope memory.Scope, n int) (int64, error)
	StartSession(ctx context.Context, scope memory.Scope, n *int) (*exam.SessionStatus, error)
	CountEligible(ctx context.Context, scope memory.Scope) (int, error)
	CountPending(ctx context.Context, scope memory.Scope) (int, error)
	CountNew(ctx context.Context, scope memory.Scope) (int, error)
	GetDailyStats(ctx context.Context, scope memory.Scope, day time.Time) (map[int]statistics.Counts, error)
	Today() time.Time
	ResetMemory(ctx context.Context, userID, wordID int64, mode memory.Mode) (*memory.Memory, error)
}

const ServiceName = "wordexam.v1.ExamService"

const (
	GetNextQuestionProcedure = "/" + ServiceName + "/GetNextQuestion"
	RecordVerdictProcedure   = "/" + ServiceName + "/RecordVerdict"
	AdmitNewItemsProcedure   = "/" + ServiceName + "/AdmitNewItems"
	StartSessionProcedure    = "/" + ServiceName + "/StartSession"
	GetCountsProcedure       = "/" + ServiceName + "/GetCounts"
	GetDailyStatsProcedure   = "/" + ServiceName + "/GetDailyStats"
	ResetMemoryProcedure     = "/" + ServiceName + "/ResetMemory"
)

// ExamHandler serves ExamService over Connect.
type ExamHandler struct {
	service ExamService
}

func NewExamHandler(service ExamService) *ExamHandler {
	return &ExamHandler{service: service}
}

// Handler returns the path prefix and the http.Handler routing every procedure.
func (h *ExamHandler) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(GetNextQuestionProcedure, connect.NewUnaryHandler(GetNextQuestionProcedure, h.GetNextQuestion, opts...))
	mux.Handle(RecordVerdictProcedure, connect.NewUnaryHandler(RecordVerdictProcedure, h.RecordVerdict, opts...))
	mux.Handle(AdmitNewItemsProcedure, connect.NewUnaryHandler(AdmitNewItemsProcedure, h.AdmitNewItems, opts...))
	mux.Handle(StartSessionProcedure, connect.NewUnaryHandler(StartSessionProcedure, h.StartSession, opts...))
	mux.Handle(GetCountsProcedure, connect.NewUnaryHandler(GetCountsProcedure, h.GetCounts, opts...))
	mux.Handle(GetDailyStatsProcedure, connect.NewUnaryHandler(GetDailyStatsProcedure, h.GetDailyStats, opts...))
	mux.Handle(ResetMemoryProcedure, connect.NewUnaryHandler(ResetMemoryProcedure, h.ResetMemory, opts...))
	return "/" + ServiceName + "/", mux
}

// GetNextQuestion draws the next queued question of the scope.
func (h *ExamHandler) GetNextQuestion(
	ctx context.Context,
	req *connect.Request[GetNextQuestionRequest],
) (*connect.Response[GetNextQuestionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	view, err := h.service.GetNextQuestion(ctx, toScope(req.Msg.Scope))
	if err != nil {
		return nil, toConnectError(fmt.Errorf("get next question: %w", err))
	}
	if view == nil {
		return connect.NewResponse(&GetNextQuestionResponse{}), nil
	}
	return connect.NewResponse(&GetNextQuestionResponse{
		Question: &Question{
			EntryID:       view.EntryID,
			MemoryID:      view.MemoryID,
			WordID:        view.WordID,
			Mode:          string(view.Mode),
			Prompt:        view.Prompt,
			PromptExample: view.PromptExample,
			Answer:        view.Answer,
			AnswerExample: view.AnswerExample,
			Pronunciation: view.Pronunciation,
			Link:          view.Link,
			Note:          view.Note,
			Step:          view.Step,
			GroupLevel:    view.GroupLevel,
			Remaining:     view.Remaining,
		},
	}), nil
}

// RecordVerdict applies the learner's answer to a drawn question.
func (h *ExamHandler) RecordVerdict(
	ctx context.Context,
	req *connect.Request[RecordVerdictRequest],
) (*connect.Response[RecordVerdictResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	m, err := h.service.RecordVerdict(ctx, req.Msg.EntryID, memory.Verdict(req.Msg.Verdict))
	if err != nil {
		return nil, toConnectError(fmt.Errorf("record verdict of entry %d: %w", req.Msg.EntryID, err))
	}
	slog.Default().Debug("verdict recorded", "entry_id", req.Msg.EntryID, "verdict", req.Msg.Verdict, "memory_id", m.ID)
	return connect.NewResponse(&RecordVerdictResponse{Memory: toMemory(m)}), nil
}

func (h *ExamHandler) AdmitNewItems(
	ctx context.Context,
	req *connect.Request[AdmitNewItemsRequest],
) (*connect.Response[AdmitNewItemsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	admitted, err := h.service.AdmitNewItems(ctx, toScope(req.Msg.Scope), req.Msg.Count)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("admit new items: %w", err))
	}
	return connect.NewResponse(&AdmitNewItemsResponse{Admitted: admitted}), nil
}

func (h *ExamHandler) StartSession(
	ctx context.Context,
	req *connect.Request[StartSessionRequest],
) (*connect.Response[StartSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	status, err := h.service.StartSession(ctx, toScope(req.Msg.Scope), req.Msg.Count)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("start session: %w", err))
	}
	return connect.NewResponse(&StartSessionResponse{
		Admitted: status.Admitted,
		Queued:   status.Queued,
		Counts:   toCounts(status),
	}), nil
}

// GetCounts reports what is left in a scope. It never builds the queue.
func (h *ExamHandler) GetCounts(
	ctx context.Context,
	req *connect.Request[GetCountsRequest],
) (*connect.Response[GetCountsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	scope := toScope(req.Msg.Scope)
	var status exam.SessionStatus
	var err error
	if status.Eligible, err = h.service.CountEligible(ctx, scope); err != nil {
		return nil, toConnectError(fmt.Errorf("count eligible: %w", err))
	}
	if status.Pending, err = h.service.CountPending(ctx, scope); err != nil {
		return nil, toConnectError(fmt.Errorf("count pending: %w", err))
	}
	if status.New, err = h.service.CountNew(ctx, scope); err != nil {
		return nil, toConnectError(fmt.Errorf("count new: %w", err))
	}
	return connect.NewResponse(&GetCountsResponse{Counts: toCounts(&status)}), nil
}

func (h *ExamHandler) GetDailyStats(
	ctx context.Context,
	req *connect.Request[GetDailyStatsRequest],
) (*connect.Response[GetDailyStatsResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	day := h.service.Today()
	if req.Msg.Date != "" {
		// Already validated as a date.
		day, _ = time.Parse(time.DateOnly, req.Msg.Date)
	}

	byStep, err := h.service.GetDailyStats(ctx, toScope(req.Msg.Scope), day)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("get daily stats: %w", err))
	}

	steps := make([]StepCounts, 0, len(byStep))
	for step, counts := range byStep {
		steps = append(steps, StepCounts{Step: step, Aware: counts.Aware, Forgot: counts.Forgot})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Step < steps[j].Step })

	return connect.NewResponse(&GetDailyStatsResponse{
		Date:  day.Format(time.DateOnly),
		Steps: steps,
	}), nil
}

func (h *ExamHandler) ResetMemory(
	ctx context.Context,
	req *connect.Request[ResetMemoryRequest],
) (*connect.Response[ResetMemoryResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	m, err := h.service.ResetMemory(ctx, req.Msg.UserID, req.Msg.WordID, memory.Mode(req.Msg.Mode))
	if err != nil {
		return nil, toConnectError(fmt.Errorf("reset memory: %w", err))
	}
	return connect.NewResponse(&ResetMemoryResponse{Memory: toMemory(m)}), nil
}

func toScope(s Scope) memory.Scope {
	return memory.Scope{UserID: s.UserID, BookID: s.BookID, Mode: memory.Mode(s.Mode)}
}

func toCounts(status *exam.SessionStatus) Counts {
	return Counts{
		Eligible: status.Eligible,
		New:      status.New,
		Pending:  status.Pending,
		Finished: status.Finished(),
	}
}

func toMemory(m *memory.Memory) Memory {
	return Memory{
		ID:          m.ID,
		WordID:      m.WordID,
		Mode:        string(m.Mode),
		Step:        m.Step,
		UnlockAt:    m.UnlockAt.UTC(),
		Status:      string(m.Status),
		GroupLevel:  m.GroupLevel,
		AwareCount:  m.AwareCount,
		ForgotCount: m.ForgotCount,
	}
}
