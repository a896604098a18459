// Package dashboard composes the per-subsystem reports into a single
// administrator overview snapshot.
package dashboard

import (
	"time"

	"github.com/hasinimarella/miniproject/internal/alerts"
	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/facility"
	"github.com/hasinimarella/miniproject/internal/trends"
)

const (
	sentimentWindowDays = 7
	burnoutWindowDays   = 30
	facilityWindowDays  = 30
)

// SentimentSummary is the one-week sentiment picture.
type SentimentSummary struct {
	TotalReviewsWeek int                 `json:"total_reviews_week"`
	AverageScore     float64             `json:"average_score"`
	Distribution     trends.Distribution `json:"distribution"`
}

// DoctorSummary aggregates complaint and burnout state across doctors.
type DoctorSummary struct {
	TotalComplaints  int `json:"total_complaints"`
	OpenComplaints   int `json:"open_complaints"`
	DoctorsAtRisk    int `json:"doctors_at_risk"`
	DoctorsMonitored int `json:"doctors_monitored"`
}

// FacilitySummary is the one-month facility quality picture.
type FacilitySummary struct {
	FoodQualityScore     float64 `json:"food_quality_score"`
	RoomCleanlinessScore float64 `json:"room_cleanliness_score"`
	ProblemRoomCount     int     `json:"problem_room_count"`
}

// KeyMetrics are the headline system indicators.
type KeyMetrics struct {
	SystemHealth  string    `json:"system_health"`
	DataFreshness string    `json:"data_freshness"`
	AlertCount    int       `json:"alert_count"`
	LastUpdate    time.Time `json:"last_update"`
}

// Overview is the full dashboard snapshot.
type Overview struct {
	Timestamp      time.Time        `json:"timestamp"`
	Sentiment      SentimentSummary `json:"sentiment_summary"`
	Doctors        DoctorSummary    `json:"doctor_summary"`
	Facility       FacilitySummary  `json:"facility_summary"`
	CriticalAlerts []alerts.Alert   `json:"critical_alerts"`
	KeyMetrics     KeyMetrics       `json:"key_metrics"`
}

// Composer builds dashboard overviews from the live subsystems.
type Composer struct {
	ledger  *trends.Ledger
	tracker *doctors.Tracker
	monitor *facility.Monitor
	alerts  *alerts.Manager
}

// NewComposer wires a composer to the subsystems it reads from.
func NewComposer(ledger *trends.Ledger, tracker *doctors.Tracker, monitor *facility.Monitor, mgr *alerts.Manager) *Composer {
	return &Composer{
		ledger:  ledger,
		tracker: tracker,
		monitor: monitor,
		alerts:  mgr,
	}
}

// Overview assembles the current dashboard snapshot. Subsystems with
// no data contribute well-formed zero sections.
func (c *Composer) Overview() Overview {
	now := time.Now()

	sentiment := c.ledger.Trends(sentimentWindowDays, "")
	food := c.monitor.FoodTrends(facilityWindowDays)
	rooms := c.monitor.RoomTrends(facilityWindowDays)

	totalComplaints, openComplaints := c.tracker.ComplaintCounts()
	doctorIDs := c.tracker.DoctorIDs()
	atRisk := 0
	for _, id := range doctorIDs {
		risk := c.tracker.BurnoutRisk(id, burnoutWindowDays)
		if risk.RiskLevel == doctors.RiskHigh || risk.RiskLevel == doctors.RiskCritical {
			atRisk++
		}
	}

	active := c.alerts.Active("")
	var critical []alerts.Alert
	for _, a := range active {
		if a.Severity.Rank() <= alerts.SeverityHigh.Rank() {
			critical = append(critical, a)
		}
	}

	return Overview{
		Timestamp: now,
		Sentiment: SentimentSummary{
			TotalReviewsWeek: sentiment.TotalReviews,
			AverageScore:     sentiment.OverallAverageScore,
			Distribution:     sentiment.Distribution,
		},
		Doctors: DoctorSummary{
			TotalComplaints:  totalComplaints,
			OpenComplaints:   openComplaints,
			DoctorsAtRisk:    atRisk,
			DoctorsMonitored: len(doctorIDs),
		},
		Facility: FacilitySummary{
			FoodQualityScore:     food.AverageQualityScore,
			RoomCleanlinessScore: rooms.AverageCleanlinessScore,
			ProblemRoomCount:     len(rooms.ProblemRooms),
		},
		CriticalAlerts: critical,
		KeyMetrics: KeyMetrics{
			SystemHealth:  "OPERATIONAL",
			DataFreshness: "CURRENT",
			AlertCount:    len(active),
			LastUpdate:    now,
		},
	}
}
