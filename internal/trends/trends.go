// Package trends keeps the append-only ledger of scored reviews and
// derives time-windowed aggregates from it. The ledger is the single
// source of truth: every report is computed fresh from a snapshot, no
// aggregate is cached.
package trends

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/hasinimarella/miniproject/internal/sentiment"
)

// ScoredReview is one analyzed review as recorded in the ledger.
// Immutable once appended.
type ScoredReview struct {
	ReviewID         string             `json:"review_id"`
	OverallScore     float64            `json:"sentiment_score"`
	Label            sentiment.Label    `json:"sentiment_label"`
	Category         string             `json:"category"`
	Emotions         map[string]float64 `json:"emotions"`
	Keywords         []string           `json:"keywords"`
	DetectedLanguage string             `json:"original_language"`
	Timestamp        time.Time          `json:"timestamp"`

	// Optional submission metadata.
	PatientID   string `json:"patient_id,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	Rating      int    `json:"rating,omitempty"`
	InputMethod string `json:"input_method,omitempty"`
}

// Ledger is the in-memory, insertion-ordered sequence of scored
// reviews. Appends are serialized; readers get copied snapshots.
type Ledger struct {
	mu      sync.RWMutex
	reviews []ScoredReview
}

// NewLedger creates an empty review ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends a review to the ledger. A zero timestamp is stamped
// with the current time.
func (l *Ledger) Record(review ScoredReview) {
	if review.Timestamp.IsZero() {
		review.Timestamp = time.Now()
	}
	l.mu.Lock()
	l.reviews = append(l.reviews, review)
	l.mu.Unlock()
}

// Snapshot returns a copy of the ledger in insertion order.
func (l *Ledger) Snapshot() []ScoredReview {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ScoredReview, len(l.reviews))
	copy(out, l.reviews)
	return out
}

// Len returns the number of recorded reviews.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reviews)
}

// DayTrend is one calendar day's label counts and mean score.
type DayTrend struct {
	Date         string  `json:"date"`
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	Neutral      int     `json:"neutral"`
	AverageScore float64 `json:"average_score"`
	TotalReviews int     `json:"total_reviews"`
}

// Distribution is the label percentage split over a filtered set.
type Distribution struct {
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
}

// TrendReport aggregates a trailing window of reviews by calendar day.
type TrendReport struct {
	PeriodDays          int          `json:"period_days"`
	Category            string       `json:"category,omitempty"`
	TotalReviews        int          `json:"total_reviews"`
	TrendData           []DayTrend   `json:"trend_data"`
	OverallAverageScore float64      `json:"overall_average_score"`
	Distribution        Distribution `json:"sentiment_distribution"`
}

// Trends aggregates reviews from the trailing window, optionally
// filtered by category. An empty filtered set yields a well-formed
// zero report, never an error.
func (l *Ledger) Trends(windowDays int, category string) TrendReport {
	report := TrendReport{PeriodDays: windowDays, Category: category}

	relevant := l.filter(windowDays, category)
	if len(relevant) == 0 {
		return report
	}
	report.TotalReviews = len(relevant)

	type dayAccum struct {
		positive, negative, neutral int
		scoreSum                    float64
		count                       int
	}
	days := make(map[string]*dayAccum)
	var overallSum float64
	positive, negative, neutral := 0, 0, 0

	for _, r := range relevant {
		date := r.Timestamp.Format("2006-01-02")
		acc := days[date]
		if acc == nil {
			acc = &dayAccum{}
			days[date] = acc
		}
		switch r.Label {
		case sentiment.LabelPositive:
			acc.positive++
			positive++
		case sentiment.LabelNegative:
			acc.negative++
			negative++
		default:
			acc.neutral++
			neutral++
		}
		acc.scoreSum += r.OverallScore
		acc.count++
		overallSum += r.OverallScore
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		acc := days[date]
		report.TrendData = append(report.TrendData, DayTrend{
			Date:         date,
			Positive:     acc.positive,
			Negative:     acc.negative,
			Neutral:      acc.neutral,
			AverageScore: round3(acc.scoreSum / float64(acc.count)),
			TotalReviews: acc.count,
		})
	}

	total := float64(len(relevant))
	report.OverallAverageScore = round3(overallSum / total)
	report.Distribution = Distribution{
		PositivePercentage: round2(float64(positive) / total * 100),
		NegativePercentage: round2(float64(negative) / total * 100),
		NeutralPercentage:  round2(float64(neutral) / total * 100),
	}
	return report
}

// EmotionReport is the mean emotion profile over a filtered window.
type EmotionReport struct {
	PeriodDays      int                `json:"period_days"`
	Category        string             `json:"category,omitempty"`
	TotalReviews    int                `json:"total_reviews"`
	Distribution    map[string]float64 `json:"emotion_distribution"`
	DominantEmotion string             `json:"dominant_emotion,omitempty"`
}

// EmotionProfile averages each emotion across the filtered set. The
// dominant emotion follows the fixed vocabulary order on ties.
func (l *Ledger) EmotionProfile(windowDays int, category string) EmotionReport {
	report := EmotionReport{
		PeriodDays:   windowDays,
		Category:     category,
		Distribution: map[string]float64{},
	}

	relevant := l.filter(windowDays, category)
	if len(relevant) == 0 {
		return report
	}
	report.TotalReviews = len(relevant)

	totals := make(map[string]float64)
	for _, r := range relevant {
		for emotion, score := range r.Emotions {
			totals[emotion] += score
		}
	}

	best := -1.0
	for _, emotion := range sentiment.Emotions() {
		avg := round3(totals[emotion] / float64(len(relevant)))
		report.Distribution[emotion] = avg
		if avg > best {
			best = avg
			report.DominantEmotion = emotion
		}
	}
	return report
}

func (l *Ledger) filter(windowDays int, category string) []ScoredReview {
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []ScoredReview
	for _, r := range l.reviews {
		if !r.Timestamp.After(cutoff) {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
