package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hasinimarella/miniproject/internal/alerts"
	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/facility"
	"github.com/hasinimarella/miniproject/internal/sentiment"
	"github.com/hasinimarella/miniproject/internal/store"
	"github.com/hasinimarella/miniproject/internal/trends"
)

type fixedLexicon struct{ compound float64 }

func (f fixedLexicon) Score(string) sentiment.LexiconScores {
	return sentiment.LexiconScores{Compound: f.compound}
}
func (f fixedLexicon) Available() bool { return true }

type fixedPattern struct{ polarity float64 }

func (f fixedPattern) Score(string) (float64, float64) { return f.polarity, 0.5 }
func (f fixedPattern) Available() bool                 { return true }

type fixedClassifier struct{ score float64 }

func (f fixedClassifier) Score(string) float64 { return f.score }
func (f fixedClassifier) Available() bool      { return true }

// fixedAnalyzer scores every text the same so pipeline behavior is
// deterministic.
func fixedAnalyzer(score float64) *sentiment.Analyzer {
	return sentiment.New(
		sentiment.WithLexicon(fixedLexicon{compound: score}),
		sentiment.WithPattern(fixedPattern{polarity: score}),
		sentiment.WithClassifier(fixedClassifier{score: score}),
	)
}

func newTestPipeline(t *testing.T, score float64) *Pipeline {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "care.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(db, fixedAnalyzer(score), trends.NewLedger(),
		doctors.NewTracker(), facility.NewMonitor(),
		alerts.NewManager(alerts.DefaultThresholds()))
}

func TestSubmitReviewRecordsAndPersists(t *testing.T) {
	p := newTestPipeline(t, 0.8)

	outcome, err := p.SubmitReview(context.Background(), ReviewSubmission{
		Text:     "wonderful care from start to finish",
		Category: "nursing",
		DoctorID: "DOC-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Review.ReviewID == "" {
		t.Error("expected generated review ID")
	}
	if outcome.Review.Label != sentiment.LabelPositive {
		t.Errorf("expected POSITIVE, got %s", outcome.Review.Label)
	}
	if len(outcome.Alerts) != 0 {
		t.Errorf("expected no alerts for positive review, got %v", outcome.Alerts)
	}

	if p.Ledger().Len() != 1 {
		t.Errorf("expected 1 ledger entry, got %d", p.Ledger().Len())
	}
	if rating := p.Tracker().Rating("DOC-1"); rating.TotalReviews != 1 {
		t.Errorf("expected tracked sentiment for doctor, got %+v", rating)
	}

	recs, err := p.store.ListReviews()
	if err != nil {
		t.Fatalf("listing store: %v", err)
	}
	if len(recs) != 1 || recs[0].DoctorID != "DOC-1" {
		t.Errorf("unexpected persisted reviews: %+v", recs)
	}
}

func TestSubmitReviewCriticalSentimentAlert(t *testing.T) {
	p := newTestPipeline(t, -0.9)

	outcome, err := p.SubmitReview(context.Background(), ReviewSubmission{
		Text: "absolutely unacceptable treatment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(outcome.Alerts))
	}
	if outcome.Alerts[0].Type != alerts.TypeSentimentCritical {
		t.Errorf("expected sentiment alert, got %s", outcome.Alerts[0].Type)
	}
}

func TestSubmitReviewEmptyText(t *testing.T) {
	p := newTestPipeline(t, 0)
	if _, err := p.SubmitReview(context.Background(), ReviewSubmission{Text: "  "}); err == nil {
		t.Error("expected error for empty review")
	}
}

func TestSubmitShiftBurnoutAlert(t *testing.T) {
	p := newTestPipeline(t, 0)

	recorded, raised, err := p.SubmitShift(doctors.DutyShift{
		DoctorID:       "DOC-1",
		Date:           "2026-08-20",
		Hours:          14,
		PatientCount:   40,
		EmergencyCases: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.WorkloadIndex == 0 {
		t.Error("expected computed workload index")
	}
	if len(raised) != 1 || raised[0].Type != alerts.TypeDoctorBurnout {
		t.Errorf("expected burnout alert, got %v", raised)
	}
	if raised[0].Severity != alerts.SeverityCritical {
		t.Errorf("expected CRITICAL for saturated workload, got %s", raised[0].Severity)
	}
}

func TestSubmitComplaintAlertAndResolution(t *testing.T) {
	p := newTestPipeline(t, 0)

	filed, raised, err := p.SubmitComplaint(doctors.Complaint{
		DoctorID:    "DOC-1",
		Type:        "safety",
		Description: "wrong dosage prescribed",
		Severity:    doctors.SeverityCritical,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raised) != 1 || raised[0].Severity != alerts.SeverityCritical {
		t.Errorf("expected critical complaint alert, got %v", raised)
	}

	ok, err := p.ResolveComplaint(filed.ComplaintID)
	if err != nil {
		t.Fatalf("resolving: %v", err)
	}
	if !ok {
		t.Error("expected resolution to succeed")
	}

	stored, err := p.store.ListComplaints()
	if err != nil {
		t.Fatalf("listing complaints: %v", err)
	}
	if stored[0].Status != doctors.StatusResolved {
		t.Errorf("expected persisted resolution, got %s", stored[0].Status)
	}
}

func TestSubmitFacilityReviewsWithAlerts(t *testing.T) {
	p := newTestPipeline(t, 0)

	_, foodAlerts, err := p.SubmitFoodReview(facility.FoodReview{QualityScore: 1.5})
	if err != nil {
		t.Fatalf("food: %v", err)
	}
	if len(foodAlerts) != 1 || foodAlerts[0].Type != alerts.TypeFoodQuality {
		t.Errorf("expected food quality alert, got %v", foodAlerts)
	}

	_, roomAlerts, err := p.SubmitRoomReview(facility.RoomReview{RoomID: "101", CleanlinessScore: 4})
	if err != nil {
		t.Fatalf("room: %v", err)
	}
	if len(roomAlerts) != 0 {
		t.Errorf("expected no alert for clean room, got %v", roomAlerts)
	}
}

func TestScanIssuesRaisesClusterAlert(t *testing.T) {
	p := newTestPipeline(t, -0.9)

	for i := 0; i < 5; i++ {
		if _, err := p.SubmitReview(context.Background(), ReviewSubmission{
			Text: "endless wait again",
		}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	report, raised := p.ScanIssues(5)
	if len(report.Clusters) == 0 {
		t.Fatal("expected at least one cluster")
	}
	if len(raised) == 0 {
		t.Error("expected cluster alert at frequency 5")
	}
}

func TestReplayRebuildsState(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "care.db")
	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	first := New(db, fixedAnalyzer(-0.9), trends.NewLedger(),
		doctors.NewTracker(), facility.NewMonitor(),
		alerts.NewManager(alerts.DefaultThresholds()))

	if _, err := first.SubmitReview(context.Background(), ReviewSubmission{
		Text:     "terrible wait",
		DoctorID: "DOC-1",
	}); err != nil {
		t.Fatalf("submit review: %v", err)
	}
	if _, _, err := first.SubmitShift(doctors.DutyShift{DoctorID: "DOC-1", Date: "2026-08-20", Hours: 8, PatientCount: 10}); err != nil {
		t.Fatalf("submit shift: %v", err)
	}
	filed, _, err := first.SubmitComplaint(doctors.Complaint{DoctorID: "DOC-1", Type: "misc"})
	if err != nil {
		t.Fatalf("submit complaint: %v", err)
	}
	if _, err := first.ResolveComplaint(filed.ComplaintID); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, _, err := first.SubmitFoodReview(facility.FoodReview{QualityScore: 4}); err != nil {
		t.Fatalf("submit food: %v", err)
	}
	db.Close()

	// A fresh pipeline over the same log rebuilds identical state.
	db, err = store.Open(dbPath)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer db.Close()

	mgr := alerts.NewManager(alerts.DefaultThresholds())
	second := New(db, fixedAnalyzer(-0.9), trends.NewLedger(),
		doctors.NewTracker(), facility.NewMonitor(), mgr)
	if err := second.Replay(context.Background()); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if second.Ledger().Len() != 1 {
		t.Errorf("expected 1 review after replay, got %d", second.Ledger().Len())
	}
	if rating := second.Tracker().Rating("DOC-1"); rating.TotalReviews != 1 {
		t.Errorf("expected tracked sentiment restored, got %+v", rating)
	}
	if risk := second.Tracker().BurnoutRisk("DOC-1", 30); risk.Metrics.TotalShiftsAnalyzed != 1 {
		t.Errorf("expected 1 shift restored, got %+v", risk.Metrics)
	}
	history := second.Tracker().ComplaintHistory("DOC-1")
	if history.TotalComplaints != 1 || history.ResolutionRate != 100 {
		t.Errorf("expected resolved complaint restored, got %+v", history)
	}
	if food := second.Monitor().FoodTrends(30); food.TotalReviews != 1 {
		t.Errorf("expected food review restored, got %+v", food)
	}
	// Replay never re-runs alert checks.
	if active := mgr.Active(""); len(active) != 0 {
		t.Errorf("expected no alerts from replay, got %v", active)
	}
}
