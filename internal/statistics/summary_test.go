package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSummarize(t *testing.T) {
	buckets := []Bucket{
		{ExamDate: day("2024-12-30"), Step: 0, AwareCount: 2, ForgotCount: 0},
		{ExamDate: day("2025-01-15"), Step: 0, AwareCount: 3, ForgotCount: 0},
		{ExamDate: day("2025-01-15"), Step: 0, AwareCount: 0, ForgotCount: 1},
		{ExamDate: day("2025-01-20"), Step: 2, AwareCount: 4, ForgotCount: 0},
		{ExamDate: day("2025-02-01"), Step: 1, AwareCount: 0, ForgotCount: 2},
	}

	tests := []struct {
		name              string
		granularity       Granularity
		year              int
		month             int
		expectedPeriods   []PeriodStatistics
		expectedAggregate PeriodStatistics
	}{
		{
			name:        "monthly without filter",
			granularity: Monthly,
			expectedPeriods: []PeriodStatistics{
				{Period: "2025-02", ForgotCount: 2, AnswerCount: 2},
				{Period: "2025-01", LearnedCount: 3, ReviewCount: 4, ForgotCount: 1, AnswerCount: 8},
				{Period: "2024-12", LearnedCount: 2, AnswerCount: 2},
			},
			expectedAggregate: PeriodStatistics{Period: "total", LearnedCount: 5, ReviewCount: 4, ForgotCount: 3, AnswerCount: 12},
		},
		{
			name:        "yearly",
			granularity: Yearly,
			expectedPeriods: []PeriodStatistics{
				{Period: "2025", LearnedCount: 3, ReviewCount: 4, ForgotCount: 3, AnswerCount: 10},
				{Period: "2024", LearnedCount: 2, AnswerCount: 2},
			},
			expectedAggregate: PeriodStatistics{Period: "total", LearnedCount: 5, ReviewCount: 4, ForgotCount: 3, AnswerCount: 12},
		},
		{
			name:        "filter by year and month",
			granularity: Monthly,
			year:        2025,
			month:       1,
			expectedPeriods: []PeriodStatistics{
				{Period: "2025-01", LearnedCount: 3, ReviewCount: 4, ForgotCount: 1, AnswerCount: 8},
			},
			expectedAggregate: PeriodStatistics{Period: "total", LearnedCount: 3, ReviewCount: 4, ForgotCount: 1, AnswerCount: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(buckets, tt.granularity, tt.year, tt.month)
			assert.Equal(t, tt.expectedPeriods, got.Periods)
			assert.Equal(t, tt.expectedAggregate, got.Aggregate)
		})
	}
}

func TestPeriodStatistics_Accuracy(t *testing.T) {
	assert.Equal(t, 0.0, PeriodStatistics{}.Accuracy())
	assert.InDelta(t, 0.75, PeriodStatistics{LearnedCount: 1, ReviewCount: 2, ForgotCount: 1, AnswerCount: 4}.Accuracy(), 1e-9)
}
