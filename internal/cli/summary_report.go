package cli

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/wordexam/internal/statistics"
)

// WriteSummaryReport prints one row per period and the totals.
func WriteSummaryReport(w io.Writer, result statistics.SummaryResult) {
	if len(result.Periods) == 0 {
		_, _ = fmt.Fprintln(w, "No answers found for the specified period.")
		return
	}

	_, _ = fmt.Fprintln(w, "Exam Statistics Report")
	_, _ = fmt.Fprintln(w, "======================")
	_, _ = fmt.Fprintln(w)
	row := "%-10s  %8s  %8s  %8s  %8s  %8s\n"
	_, _ = fmt.Fprintf(w, row, "Period", "Learned", "Reviewed", "Forgot", "Answers", "Accuracy")
	_, _ = fmt.Fprintf(w, row, "------", "-------", "--------", "------", "-------", "--------")
	for _, s := range result.Periods {
		writeSummaryRow(w, row, s.Period, s)
	}

	_, _ = fmt.Fprintln(w)
	writeSummaryRow(w, row, "Totals:", result.Aggregate)
}

func writeSummaryRow(w io.Writer, format, label string, s statistics.PeriodStatistics) {
	_, _ = fmt.Fprintf(w, format,
		label,
		fmt.Sprint(s.LearnedCount),
		fmt.Sprint(s.ReviewCount),
		fmt.Sprint(s.ForgotCount),
		fmt.Sprint(s.AnswerCount),
		fmt.Sprintf("%.1f%%", s.Accuracy()*100),
	)
}
