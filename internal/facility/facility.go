// Package facility tracks food and room quality reviews and derives
// windowed aggregates: mean scores, per-aspect means, score
// histograms, problem rooms, and a maintenance priority ranking.
package facility

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWindowDays is the trailing window for quality analysis.
const DefaultWindowDays = 30

// problemThreshold flags a room as a problem room when its mean
// cleanliness falls below it.
const problemThreshold = 3.0

// QualityStatus bands an average quality score.
type QualityStatus string

const (
	QualityExcellent QualityStatus = "EXCELLENT"
	QualityVeryGood  QualityStatus = "VERY_GOOD"
	QualityGood      QualityStatus = "GOOD"
	QualityFair      QualityStatus = "FAIR"
	QualityPoor      QualityStatus = "POOR"
)

// Priority ranks maintenance urgency for a room.
type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

var priorityRank = map[Priority]int{
	PriorityUrgent: 0,
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

// FoodReview is one food quality submission. Scores are on a 1-5 scale.
type FoodReview struct {
	ReviewID     string             `json:"review_id"`
	QualityScore float64            `json:"quality_score"`
	Aspects      map[string]float64 `json:"aspects"`
	Comments     string             `json:"comments,omitempty"`
	SubmittedAt  time.Time          `json:"submitted_date"`
}

// RoomReview is one room quality submission for a specific room.
type RoomReview struct {
	ReviewID         string             `json:"review_id"`
	RoomID           string             `json:"room_id"`
	CleanlinessScore float64            `json:"cleanliness_score"`
	Aspects          map[string]float64 `json:"aspects"`
	Comments         string             `json:"comments,omitempty"`
	SubmittedAt      time.Time          `json:"submitted_date"`
}

// Monitor owns the food and room review ledgers.
type Monitor struct {
	mu    sync.RWMutex
	food  []FoodReview
	rooms []RoomReview
}

// NewMonitor creates an empty facility monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// SubmitFoodReview appends a food quality review. Missing IDs and
// timestamps are filled in.
func (m *Monitor) SubmitFoodReview(review FoodReview) FoodReview {
	if review.ReviewID == "" {
		review.ReviewID = "FOOD-" + uuid.NewString()
	}
	if review.SubmittedAt.IsZero() {
		review.SubmittedAt = time.Now()
	}
	m.mu.Lock()
	m.food = append(m.food, review)
	m.mu.Unlock()
	return review
}

// SubmitRoomReview appends a room quality review.
func (m *Monitor) SubmitRoomReview(review RoomReview) RoomReview {
	if review.ReviewID == "" {
		review.ReviewID = "ROOM-" + uuid.NewString()
	}
	if review.SubmittedAt.IsZero() {
		review.SubmittedAt = time.Now()
	}
	m.mu.Lock()
	m.rooms = append(m.rooms, review)
	m.mu.Unlock()
	return review
}

// FoodReport aggregates food quality over a trailing window.
type FoodReport struct {
	PeriodDays          int                `json:"period_days"`
	TotalReviews        int                `json:"total_reviews"`
	AverageQualityScore float64            `json:"average_quality_score"`
	Distribution        map[int]int        `json:"quality_distribution"`
	AspectAverages      map[string]float64 `json:"aspect_analysis"`
	Status              QualityStatus      `json:"quality_status,omitempty"`
	ImprovementNeeded   []string           `json:"improvement_needed,omitempty"`
}

// FoodTrends aggregates food reviews from the trailing window. An
// empty window yields a well-formed zero report.
func (m *Monitor) FoodTrends(windowDays int) FoodReport {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	report := FoodReport{
		PeriodDays:     windowDays,
		Distribution:   map[int]int{},
		AspectAverages: map[string]float64{},
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	m.mu.RLock()
	var recent []FoodReview
	for _, r := range m.food {
		if r.SubmittedAt.After(cutoff) {
			recent = append(recent, r)
		}
	}
	m.mu.RUnlock()

	if len(recent) == 0 {
		return report
	}

	var sum float64
	aspects := map[string][]float64{}
	for _, r := range recent {
		sum += r.QualityScore
		report.Distribution[scoreBucket(r.QualityScore)]++
		for aspect, score := range r.Aspects {
			aspects[aspect] = append(aspects[aspect], score)
		}
	}

	report.TotalReviews = len(recent)
	report.AverageQualityScore = round2(sum / float64(len(recent)))
	report.AspectAverages = averageByKey(aspects)
	report.Status = qualityStatus(report.AverageQualityScore)

	for _, aspect := range sortedKeys(report.AspectAverages) {
		if report.AspectAverages[aspect] < 3 {
			report.ImprovementNeeded = append(report.ImprovementNeeded, aspect)
		}
	}
	return report
}

// RoomScore is a room's mean cleanliness over the window.
type RoomScore struct {
	RoomID string  `json:"room_id"`
	Score  float64 `json:"score"`
}

// MaintenanceItem ranks one room for maintenance attention.
type MaintenanceItem struct {
	RoomID   string   `json:"room_id"`
	Score    float64  `json:"score"`
	Priority Priority `json:"priority"`
}

// RoomReport aggregates room quality over a trailing window.
type RoomReport struct {
	PeriodDays              int                `json:"period_days"`
	TotalReviews            int                `json:"total_reviews"`
	AverageCleanlinessScore float64            `json:"average_cleanliness_score"`
	RoomAverages            map[string]float64 `json:"room_wise_scores"`
	AspectAverages          map[string]float64 `json:"aspect_analysis"`
	ProblemRooms            []RoomScore        `json:"problem_rooms"`
	Status                  QualityStatus      `json:"quality_status,omitempty"`
	MaintenancePriority     []MaintenanceItem  `json:"maintenance_priority,omitempty"`
}

// RoomTrends aggregates room reviews from the trailing window,
// flagging problem rooms (mean below 3) and ranking maintenance
// priority for every reviewed room.
func (m *Monitor) RoomTrends(windowDays int) RoomReport {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	report := RoomReport{
		PeriodDays:     windowDays,
		RoomAverages:   map[string]float64{},
		AspectAverages: map[string]float64{},
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	m.mu.RLock()
	var recent []RoomReview
	for _, r := range m.rooms {
		if r.SubmittedAt.After(cutoff) {
			recent = append(recent, r)
		}
	}
	m.mu.RUnlock()

	if len(recent) == 0 {
		return report
	}

	var sum float64
	roomScores := map[string][]float64{}
	aspects := map[string][]float64{}
	for _, r := range recent {
		sum += r.CleanlinessScore
		roomScores[r.RoomID] = append(roomScores[r.RoomID], r.CleanlinessScore)
		for aspect, score := range r.Aspects {
			aspects[aspect] = append(aspects[aspect], score)
		}
	}

	report.TotalReviews = len(recent)
	report.AverageCleanlinessScore = round2(sum / float64(len(recent)))
	report.RoomAverages = averageByKey(roomScores)
	report.AspectAverages = averageByKey(aspects)
	report.Status = qualityStatus(report.AverageCleanlinessScore)

	for _, roomID := range sortedKeys(report.RoomAverages) {
		score := report.RoomAverages[roomID]
		if score < problemThreshold {
			report.ProblemRooms = append(report.ProblemRooms, RoomScore{RoomID: roomID, Score: score})
		}
		report.MaintenancePriority = append(report.MaintenancePriority, MaintenanceItem{
			RoomID:   roomID,
			Score:    score,
			Priority: maintenancePriority(score),
		})
	}

	sort.SliceStable(report.ProblemRooms, func(i, j int) bool {
		return report.ProblemRooms[i].Score < report.ProblemRooms[j].Score
	})
	sort.SliceStable(report.MaintenancePriority, func(i, j int) bool {
		return priorityRank[report.MaintenancePriority[i].Priority] <
			priorityRank[report.MaintenancePriority[j].Priority]
	})
	return report
}

// FoodRecommendations builds the food improvement list from threshold
// crossings in the windowed analysis.
func (m *Monitor) FoodRecommendations(windowDays int) []string {
	analysis := m.FoodTrends(windowDays)
	var recs []string

	if analysis.TotalReviews > 0 && analysis.AverageQualityScore < 3 {
		recs = append(recs,
			"URGENT: Food quality is below acceptable standards",
			"Review food preparation procedures",
			"Conduct food safety audit",
		)
	}
	for _, aspect := range analysis.ImprovementNeeded {
		recs = append(recs, fmt.Sprintf("Improve %s quality", aspect))
	}
	return recs
}

// RoomRecommendations builds the room improvement list, including
// deep-clean items for the five worst problem rooms.
func (m *Monitor) RoomRecommendations(windowDays int) []string {
	analysis := m.RoomTrends(windowDays)
	var recs []string

	if analysis.TotalReviews > 0 && analysis.AverageCleanlinessScore < 3 {
		recs = append(recs,
			"URGENT: Room cleanliness is below acceptable standards",
			"Increase housekeeping staff",
			"Conduct training for housekeeping team",
		)
	}
	problems := analysis.ProblemRooms
	if len(problems) > 5 {
		problems = problems[:5]
	}
	for _, room := range problems {
		recs = append(recs, fmt.Sprintf("Priority: Deep clean room %s", room.RoomID))
	}
	return recs
}

// scoreBucket floors a score into an integer bucket; 5 is its own top
// bucket rather than overflowing into 4.
func scoreBucket(score float64) int {
	if score >= 5 {
		return 5
	}
	return int(score)
}

func maintenancePriority(score float64) Priority {
	switch {
	case score < 3:
		return PriorityUrgent
	case score < 3.5:
		return PriorityHigh
	case score < 4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func qualityStatus(avg float64) QualityStatus {
	switch {
	case avg >= 4.5:
		return QualityExcellent
	case avg >= 4.0:
		return QualityVeryGood
	case avg >= 3.5:
		return QualityGood
	case avg >= 2.5:
		return QualityFair
	default:
		return QualityPoor
	}
}

func averageByKey(values map[string][]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for key, scores := range values {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		out[key] = round2(sum / float64(len(scores)))
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
