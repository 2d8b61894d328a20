package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/wordexam/internal/statistics"
)

func TestWriteSummaryReport(t *testing.T) {
	tests := []struct {
		name         string
		result       statistics.SummaryResult
		wantContains []string
	}{
		{
			name:         "no periods",
			wantContains: []string{"No answers found for the specified period."},
		},
		{
			name: "periods and totals",
			result: statistics.SummaryResult{
				Periods: []statistics.PeriodStatistics{
					{Period: "2025-02", LearnedCount: 1, ForgotCount: 1, AnswerCount: 2},
					{Period: "2025-03", LearnedCount: 2, ReviewCount: 1, ForgotCount: 1, AnswerCount: 4},
				},
				Aggregate: statistics.PeriodStatistics{LearnedCount: 3, ReviewCount: 1, ForgotCount: 2, AnswerCount: 6},
			},
			wantContains: []string{
				"Exam Statistics Report",
				"2025-02",
				"50.0%",
				"75.0%",
				"Totals:",
				"66.7%",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			WriteSummaryReport(&out, tt.result)
			for _, want := range tt.wantContains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
