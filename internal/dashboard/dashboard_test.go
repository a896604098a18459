package dashboard

import (
	"testing"
	"time"

	"github.com/hasinimarella/miniproject/internal/alerts"
	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/facility"
	"github.com/hasinimarella/miniproject/internal/sentiment"
	"github.com/hasinimarella/miniproject/internal/trends"
)

func newTestComposer() (*Composer, *trends.Ledger, *doctors.Tracker, *facility.Monitor, *alerts.Manager) {
	ledger := trends.NewLedger()
	tracker := doctors.NewTracker()
	monitor := facility.NewMonitor()
	mgr := alerts.NewManager(alerts.DefaultThresholds())
	return NewComposer(ledger, tracker, monitor, mgr), ledger, tracker, monitor, mgr
}

func TestOverviewEmptySystem(t *testing.T) {
	c, _, _, _, _ := newTestComposer()
	overview := c.Overview()

	if overview.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}
	if overview.Sentiment.TotalReviewsWeek != 0 {
		t.Errorf("expected 0 reviews, got %d", overview.Sentiment.TotalReviewsWeek)
	}
	if overview.Doctors.DoctorsMonitored != 0 {
		t.Errorf("expected 0 doctors, got %d", overview.Doctors.DoctorsMonitored)
	}
	if overview.KeyMetrics.SystemHealth != "OPERATIONAL" {
		t.Errorf("unexpected system health: %q", overview.KeyMetrics.SystemHealth)
	}
	if overview.KeyMetrics.AlertCount != 0 {
		t.Errorf("expected 0 alerts, got %d", overview.KeyMetrics.AlertCount)
	}
}

func TestOverviewSentimentSummary(t *testing.T) {
	c, ledger, _, _, _ := newTestComposer()
	ledger.Record(trends.ScoredReview{
		ReviewID:     "REV-1",
		OverallScore: 0.8,
		Label:        sentiment.LabelPositive,
		Timestamp:    time.Now(),
	})
	ledger.Record(trends.ScoredReview{
		ReviewID:     "REV-2",
		OverallScore: -0.4,
		Label:        sentiment.LabelNegative,
		Timestamp:    time.Now(),
	})

	overview := c.Overview()
	if overview.Sentiment.TotalReviewsWeek != 2 {
		t.Errorf("expected 2 reviews, got %d", overview.Sentiment.TotalReviewsWeek)
	}
	if overview.Sentiment.AverageScore != 0.2 {
		t.Errorf("expected average 0.2, got %g", overview.Sentiment.AverageScore)
	}
	if overview.Sentiment.Distribution.PositivePercentage != 50 {
		t.Errorf("expected 50%% positive, got %g", overview.Sentiment.Distribution.PositivePercentage)
	}
}

func TestOverviewDoctorSummary(t *testing.T) {
	c, _, tracker, _, _ := newTestComposer()
	tracker.RecordShift(doctors.DutyShift{DoctorID: "DOC-1", Hours: 12, PatientCount: 30, EmergencyCases: 5})
	filed := tracker.FileComplaint(doctors.Complaint{DoctorID: "DOC-2", Type: "misc"})
	tracker.FileComplaint(doctors.Complaint{DoctorID: "DOC-2", Type: "misc"})
	tracker.ResolveComplaint(filed.ComplaintID)

	overview := c.Overview()
	if overview.Doctors.DoctorsMonitored != 2 {
		t.Errorf("expected 2 doctors, got %d", overview.Doctors.DoctorsMonitored)
	}
	if overview.Doctors.TotalComplaints != 2 || overview.Doctors.OpenComplaints != 1 {
		t.Errorf("unexpected complaint counts: %+v", overview.Doctors)
	}
	// DOC-1's maxed-out shift puts them at CRITICAL burnout risk.
	if overview.Doctors.DoctorsAtRisk != 1 {
		t.Errorf("expected 1 doctor at risk, got %d", overview.Doctors.DoctorsAtRisk)
	}
}

func TestOverviewFacilitySummary(t *testing.T) {
	c, _, _, monitor, _ := newTestComposer()
	monitor.SubmitFoodReview(facility.FoodReview{QualityScore: 4})
	monitor.SubmitRoomReview(facility.RoomReview{RoomID: "101", CleanlinessScore: 2})

	overview := c.Overview()
	if overview.Facility.FoodQualityScore != 4.0 {
		t.Errorf("expected food score 4.0, got %g", overview.Facility.FoodQualityScore)
	}
	if overview.Facility.RoomCleanlinessScore != 2.0 {
		t.Errorf("expected room score 2.0, got %g", overview.Facility.RoomCleanlinessScore)
	}
	if overview.Facility.ProblemRoomCount != 1 {
		t.Errorf("expected 1 problem room, got %d", overview.Facility.ProblemRoomCount)
	}
}

func TestOverviewCriticalAlerts(t *testing.T) {
	c, _, _, _, mgr := newTestComposer()
	mgr.Create(alerts.TypeSystemError, alerts.SeverityCritical, "critical", nil)
	mgr.Create(alerts.TypeSystemError, alerts.SeverityHigh, "high", nil)
	mgr.Create(alerts.TypeSystemError, alerts.SeverityMedium, "medium", nil)
	ack := mgr.Create(alerts.TypeSystemError, alerts.SeverityCritical, "handled", nil)
	mgr.Acknowledge(ack.AlertID, "admin")

	overview := c.Overview()
	// Only unacknowledged CRITICAL and HIGH alerts surface here.
	if len(overview.CriticalAlerts) != 2 {
		t.Fatalf("expected 2 critical alerts, got %d", len(overview.CriticalAlerts))
	}
	if overview.CriticalAlerts[0].Severity != alerts.SeverityCritical {
		t.Errorf("expected CRITICAL first, got %s", overview.CriticalAlerts[0].Severity)
	}
	if overview.KeyMetrics.AlertCount != 3 {
		t.Errorf("expected 3 active alerts overall, got %d", overview.KeyMetrics.AlertCount)
	}
}
