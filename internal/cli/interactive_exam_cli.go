package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/wordexam/internal/exam"
	"github.com/at-ishikawa/wordexam/internal/memory"
	"github.com/at-ishikawa/wordexam/internal/statistics"
)

var errEnd = errors.New("end")

// Scheduler is what an exam session needs from the exam service.
type Scheduler interface {
	StartSession(ctx context.Context, scope memory.Scope, n *int) (*exam.SessionStatus, error)
	GetNextQuestion(ctx context.Context, scope memory.Scope) (*exam.QuestionView, error)
	RecordVerdict(ctx context.Context, entryID int64, verdict memory.Verdict) (*memory.Memory, error)
	GetDailyStats(ctx context.Context, scope memory.Scope, day time.Time) (map[int]statistics.Counts, error)
	Today() time.Time
}

//go:generate mockgen -source=interactive_exam_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(ctx context.Context) error
}

// InteractiveExamCLI reads answers from a terminal and reports them to the scheduler.
type InteractiveExamCLI struct {
	scheduler Scheduler
	scope     memory.Scope
	stdin     *bufio.Reader
	stdout    io.Writer
	bold      *color.Color
	italic    *color.Color
	green     *color.Color
	red       *color.Color

	answered int
}

func NewInteractiveExamCLI(scheduler Scheduler, scope memory.Scope, stdin io.Reader, stdout io.Writer) *InteractiveExamCLI {
	return &InteractiveExamCLI{
		scheduler: scheduler,
		scope:     scope,
		stdin:     bufio.NewReader(stdin),
		stdout:    stdout,
		bold:      color.New(color.Bold),
		italic:    color.New(color.Italic),
		green:     color.New(color.FgGreen),
		red:       color.New(color.FgRed),
	}
}

// Start admits n new words (nil means the configured default) and prints what is due.
// It returns false when there is nothing to study.
func (cli *InteractiveExamCLI) Start(ctx context.Context, n *int) (bool, error) {
	status, err := cli.scheduler.StartSession(ctx, cli.scope, n)
	if err != nil {
		return false, fmt.Errorf("scheduler.StartSession() > %w", err)
	}
	if status.Finished() {
		_, _ = fmt.Fprintln(cli.stdout, "All words are learned. Nothing to study.")
		return false, nil
	}
	_, _ = fmt.Fprintf(cli.stdout, "Admitted %d new words. %d questions are due, %d words are not admitted yet.\n\n",
		status.Admitted, status.Pending, status.New)
	return status.Pending > 0, nil
}

// Session asks one question.
func (cli *InteractiveExamCLI) Session(ctx context.Context) error {
	question, err := cli.scheduler.GetNextQuestion(ctx, cli.scope)
	if err != nil {
		return fmt.Errorf("scheduler.GetNextQuestion() > %w", err)
	}
	if question == nil {
		_, _ = fmt.Fprintln(cli.stdout, "No more questions for now!")
		return errEnd
	}

	_, _ = fmt.Fprintf(cli.stdout, "[%d left, step %d] ", question.Remaining, question.Step)
	_, _ = cli.bold.Fprintln(cli.stdout, question.Prompt)
	if question.PromptExample != "" {
		_, _ = cli.italic.Fprintf(cli.stdout, "  %s\n", question.PromptExample)
	}
	_, _ = fmt.Fprint(cli.stdout, "Press Enter to see the answer (q to quit): ")
	line, err := cli.readLine()
	if err != nil {
		return err
	}
	if line == "q" {
		return errEnd
	}

	_, _ = fmt.Fprint(cli.stdout, "Answer: ")
	_, _ = cli.bold.Fprintln(cli.stdout, question.Answer)
	if question.AnswerExample != "" {
		_, _ = cli.italic.Fprintf(cli.stdout, "  %s\n", question.AnswerExample)
	}
	if question.Pronunciation != "" {
		_, _ = fmt.Fprintf(cli.stdout, "  /%s/\n", question.Pronunciation)
	}
	if question.Note != "" {
		_, _ = fmt.Fprintf(cli.stdout, "  Note: %s\n", question.Note)
	}

	verdict, err := cli.askVerdict()
	if err != nil {
		return err
	}
	m, err := cli.scheduler.RecordVerdict(ctx, question.EntryID, verdict)
	if err != nil {
		return fmt.Errorf("scheduler.RecordVerdict(%d) > %w", question.EntryID, err)
	}
	cli.answered++

	if verdict == memory.VerdictAware {
		_, _ = cli.green.Fprintf(cli.stdout, "✅ Next review after %s\n\n", m.UnlockAt.Local().Format("2006-01-02 15:04"))
	} else {
		_, _ = cli.red.Fprintln(cli.stdout, "❌ It will be asked again in this session")
		_, _ = fmt.Fprintln(cli.stdout)
	}
	return nil
}

func (cli *InteractiveExamCLI) askVerdict() (memory.Verdict, error) {
	for {
		_, _ = fmt.Fprint(cli.stdout, "Did you know it? [y/n/q]: ")
		line, err := cli.readLine()
		if err != nil {
			return "", err
		}
		switch line {
		case "y", "yes":
			return memory.VerdictAware, nil
		case "n", "no":
			return memory.VerdictForgot, nil
		case "q":
			return "", errEnd
		}
	}
}

// readLine treats the end of input as the end of the session.
func (cli *InteractiveExamCLI) readLine() (string, error) {
	line, err := cli.stdin.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errEnd
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// PrintDailyStats writes today's answers by step.
func (cli *InteractiveExamCLI) PrintDailyStats(ctx context.Context) error {
	byStep, err := cli.scheduler.GetDailyStats(ctx, cli.scope, cli.scheduler.Today())
	if err != nil {
		return fmt.Errorf("scheduler.GetDailyStats() > %w", err)
	}
	WriteDailyStats(cli.stdout, byStep)
	return nil
}

// WriteDailyStats prints one line per step in ascending order.
func WriteDailyStats(w io.Writer, byStep map[int]statistics.Counts) {
	if len(byStep) == 0 {
		_, _ = fmt.Fprintln(w, "No answers today.")
		return
	}
	steps := make([]int, 0, len(byStep))
	for step := range byStep {
		steps = append(steps, step)
	}
	sort.Ints(steps)
	for _, step := range steps {
		counts := byStep[step]
		_, _ = fmt.Fprintf(w, "step %d: aware %d, forgot %d\n", step, counts.Aware, counts.Forgot)
	}
}

// Run repeats session until it ends, fails or the process is interrupted.
func (cli *InteractiveExamCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdout, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	_, _ = fmt.Fprintf(cli.stdout, "Answered %d questions.\n", cli.answered)
	return nil
}
