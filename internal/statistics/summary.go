package statistics

import (
	"fmt"
	"sort"
)

// Granularity decides how exam days are grouped into periods.
type Granularity string

const (
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// PeriodStatistics holds the answers of a time period
type PeriodStatistics struct {
	Period       string // "2025-01" for monthly, "2025" for yearly
	LearnedCount int    // First-attempt aware answers at step 0
	ReviewCount  int    // First-attempt aware answers at a later step
	ForgotCount  int    // First-attempt forgot answers
	AnswerCount  int    // Every first-attempt answer
}

// Accuracy is the share of aware answers, or 0 without answers.
func (s PeriodStatistics) Accuracy() float64 {
	if s.AnswerCount == 0 {
		return 0
	}
	return float64(s.LearnedCount+s.ReviewCount) / float64(s.AnswerCount)
}

// SummaryResult holds both per-period and aggregate statistics
type SummaryResult struct {
	Periods   []PeriodStatistics
	Aggregate PeriodStatistics
}

// Summarize groups buckets by period.
// It accepts optional year and month filters (0 means no filter).
func Summarize(buckets []Bucket, granularity Granularity, year, month int) SummaryResult {
	stats := make(map[string]*PeriodStatistics)
	var aggregate PeriodStatistics

	for _, b := range buckets {
		if b.ExamDate.IsZero() {
			continue
		}
		if !matchesFilter(b.ExamDate.Year(), int(b.ExamDate.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", b.ExamDate.Year(), int(b.ExamDate.Month()))
		if granularity == Yearly {
			period = fmt.Sprintf("%d", b.ExamDate.Year())
		}
		if stats[period] == nil {
			stats[period] = &PeriodStatistics{Period: period}
		}

		for _, s := range []*PeriodStatistics{stats[period], &aggregate} {
			if b.Step == 0 {
				s.LearnedCount += b.AwareCount
			} else {
				s.ReviewCount += b.AwareCount
			}
			s.ForgotCount += b.ForgotCount
			s.AnswerCount += b.AwareCount + b.ForgotCount
		}
	}

	periods := make([]PeriodStatistics, 0, len(stats))
	for _, s := range stats {
		periods = append(periods, *s)
	}
	// Newest first
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	aggregate.Period = "total"
	return SummaryResult{Periods: periods, Aggregate: aggregate}
}

func matchesFilter(bucketYear, bucketMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if bucketYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return bucketMonth == filterMonth
}
