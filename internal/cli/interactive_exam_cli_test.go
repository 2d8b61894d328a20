package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/memory"
	mock_cli "github.com/at-ishikawa/wordexam/internal/mocks/cli"
	mock_exam "github.com/at-ishikawa/wordexam/internal/mocks/exam"
	"github.com/at-ishikawa/wordexam/internal/statistics"
)

var testScope = memory.Scope{UserID: 1, BookID: 2, Mode: memory.ModePromptToAnswer}

func init() {
	color.NoColor = true
}

func newTestCLI(t *testing.T, input string) (*InteractiveExamCLI, *mock_exam.MockExamService, *bytes.Buffer) {
	t.Helper()
	scheduler := mock_exam.NewMockExamService(gomock.NewController(t))
	var out bytes.Buffer
	return NewInteractiveExamCLI(scheduler, testScope, strings.NewReader(input), &out), scheduler, &out
}

func TestInteractiveExamCLI_Session(t *testing.T) {
	unlockAt := time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC)
	question := &exam.QuestionView{EntryID: 5, Prompt: "apple", PromptExample: "an apple a day", Answer: "a fruit", Remaining: 2}

	tests := []struct {
		name       string
		input      string
		setupMock  func(m *mock_exam.MockExamService)
		wantErr    error
		wantOutput []string
	}{
		{
			name:  "knows the word",
			input: "\ny\n",
			setupMock: func(m *mock_exam.MockExamService) {
				m.EXPECT().GetNextQuestion(gomock.Any(), testScope).Return(question, nil)
				m.EXPECT().RecordVerdict(gomock.Any(), int64(5), memory.VerdictAware).
					Return(&memory.Memory{Step: 1, UnlockAt: unlockAt}, nil)
			},
			wantOutput: []string{"[2 left, step 0] apple", "an apple a day", "Answer: a fruit", "Next review after"},
		},
		{
			name:  "asks again until the verdict is valid",
			input: "\nmaybe\nn\n",
			setupMock: func(m *mock_exam.MockExamService) {
				m.EXPECT().GetNextQuestion(gomock.Any(), testScope).Return(question, nil)
				m.EXPECT().RecordVerdict(gomock.Any(), int64(5), memory.VerdictForgot).
					Return(&memory.Memory{GroupLevel: 1}, nil)
			},
			wantOutput: []string{"asked again in this session"},
		},
		{
			name:  "quit before the answer",
			input: "q\n",
			setupMock: func(m *mock_exam.MockExamService) {
				m.EXPECT().GetNextQuestion(gomock.Any(), testScope).Return(question, nil)
			},
			wantErr: errEnd,
		},
		{
			name:  "end of input",
			input: "\n",
			setupMock: func(m *mock_exam.MockExamService) {
				m.EXPECT().GetNextQuestion(gomock.Any(), testScope).Return(question, nil)
			},
			wantErr: errEnd,
		},
		{
			name: "no more questions",
			setupMock: func(m *mock_exam.MockExamService) {
				m.EXPECT().GetNextQuestion(gomock.Any(), testScope).Return(nil, nil)
			},
			wantErr:    errEnd,
			wantOutput: []string{"No more questions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, scheduler, out := newTestCLI(t, tt.input)
			tt.setupMock(scheduler)

			err := cli.Session(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestInteractiveExamCLI_Start(t *testing.T) {
	tests := []struct {
		name   string
		status *exam.SessionStatus
		want   bool
		output string
	}{
		{
			name:   "due questions",
			status: &exam.SessionStatus{Admitted: 3, Eligible: 5, New: 7, Pending: 5},
			want:   true,
			output: "Admitted 3 new words. 5 questions are due, 7 words are not admitted yet.",
		},
		{
			name:   "finished",
			status: &exam.SessionStatus{},
			output: "All words are learned.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, scheduler, out := newTestCLI(t, "")
			scheduler.EXPECT().StartSession(gomock.Any(), testScope, nil).Return(tt.status, nil)

			got, err := cli.Start(context.Background(), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), tt.output)
		})
	}
}

func TestInteractiveExamCLI_Run(t *testing.T) {
	t.Run("stops at the end of the session", func(t *testing.T) {
		cli, _, out := newTestCLI(t, "")
		session := mock_cli.NewMockSession(gomock.NewController(t))
		gomock.InOrder(
			session.EXPECT().Session(gomock.Any()).Return(nil).Times(2),
			session.EXPECT().Session(gomock.Any()).Return(errEnd),
		)

		require.NoError(t, cli.Run(context.Background(), session))
		assert.Contains(t, out.String(), "Answered 0 questions.")
	})

	t.Run("returns session errors", func(t *testing.T) {
		cli, _, _ := newTestCLI(t, "")
		session := mock_cli.NewMockSession(gomock.NewController(t))
		want := errors.New("database is locked")
		session.EXPECT().Session(gomock.Any()).Return(want)

		assert.ErrorIs(t, cli.Run(context.Background(), session), want)
	})
}

func TestWriteDailyStats(t *testing.T) {
	var out bytes.Buffer
	WriteDailyStats(&out, map[int]statistics.Counts{3: {Aware: 1}, 0: {Aware: 2, Forgot: 4}})
	assert.Equal(t, "step 0: aware 2, forgot 4\nstep 3: aware 1, forgot 0\n", out.String())

	out.Reset()
	WriteDailyStats(&out, nil)
	assert.Equal(t, "No answers today.\n", out.String())
}
