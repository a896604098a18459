package doctors

import (
	"math"
	"testing"
	"time"
)

func shift(doctorID string, hours float64, patients, emergencies int) DutyShift {
	return DutyShift{
		DoctorID:       doctorID,
		Date:           time.Now().Format("2006-01-02"),
		Hours:          hours,
		PatientCount:   patients,
		EmergencyCases: emergencies,
	}
}

func TestRecordShiftComputesWorkloadIndex(t *testing.T) {
	tracker := NewTracker()
	recorded := tracker.RecordShift(shift("DOC-1", 8, 16, 0))

	if recorded.WorkloadIndex != 2.0 {
		t.Errorf("expected workload index 2.0, got %g", recorded.WorkloadIndex)
	}
	if recorded.RecordedAt.IsZero() {
		t.Error("expected recorded timestamp")
	}
}

func TestBurnoutNoData(t *testing.T) {
	tracker := NewTracker()
	report := tracker.BurnoutRisk("DOC-unknown", 30)

	if report.RiskLevel != RiskNoData {
		t.Errorf("expected NO_DATA for unseen doctor, got %s", report.RiskLevel)
	}
	if report.RiskScore != 0 {
		t.Errorf("expected zero score, got %g", report.RiskScore)
	}
}

func TestBurnoutOldShiftsAreLowNotNoData(t *testing.T) {
	tracker := NewTracker()
	old := shift("DOC-1", 12, 30, 5)
	old.RecordedAt = time.Now().AddDate(0, 0, -90)
	tracker.RecordShift(old)

	report := tracker.BurnoutRisk("DOC-1", 30)
	if report.RiskLevel != RiskLow {
		t.Errorf("expected LOW for out-of-window shifts, got %s", report.RiskLevel)
	}
	if report.RiskScore != 0 {
		t.Errorf("expected zero score, got %g", report.RiskScore)
	}
}

func TestBurnoutFactorFormula(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordShift(shift("DOC-1", 6, 15, 1))

	report := tracker.BurnoutRisk("DOC-1", 30)
	// (6/12)*0.4 + (15/30)*0.35 + (1/5)*0.25 = 0.2 + 0.175 + 0.05
	want := 0.425
	if math.Abs(report.RiskScore-want) > 0.0005 {
		t.Errorf("expected score %.3f, got %g", want, report.RiskScore)
	}
	if report.RiskLevel != RiskModerate {
		t.Errorf("expected MODERATE, got %s", report.RiskLevel)
	}
	if report.Metrics.TotalShiftsAnalyzed != 1 {
		t.Errorf("expected 1 shift analyzed, got %d", report.Metrics.TotalShiftsAnalyzed)
	}
}

func TestBurnoutFactorsSaturate(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordShift(shift("DOC-1", 24, 90, 20))

	report := tracker.BurnoutRisk("DOC-1", 30)
	if report.RiskScore != 1.0 {
		t.Errorf("expected saturated score 1.0, got %g", report.RiskScore)
	}
	if report.RiskLevel != RiskCritical {
		t.Errorf("expected CRITICAL, got %s", report.RiskLevel)
	}
	if len(report.Recommendations) != 4 {
		t.Errorf("expected 4 urgent recommendations, got %d", len(report.Recommendations))
	}
}

func TestBurnoutMonotonicInEachFactor(t *testing.T) {
	for _, tc := range []struct {
		name         string
		light, heavy DutyShift
	}{
		{"hours", shift("DOC-1", 4, 10, 0), shift("DOC-1", 10, 10, 0)},
		{"patients", shift("DOC-1", 8, 10, 0), shift("DOC-1", 8, 25, 0)},
		{"emergencies", shift("DOC-1", 8, 10, 0), shift("DOC-1", 8, 10, 3)},
	} {
		light := NewTracker()
		light.RecordShift(tc.light)
		heavy := NewTracker()
		heavy.RecordShift(tc.heavy)

		a := light.BurnoutRisk("DOC-1", 30).RiskScore
		b := heavy.BurnoutRisk("DOC-1", 30).RiskScore
		if b <= a {
			t.Errorf("expected more %s to raise risk: %g vs %g", tc.name, a, b)
		}
	}
}

func TestRiskLevelBoundaries(t *testing.T) {
	for _, tc := range []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskLow},
		{0.3, RiskLow},
		{0.31, RiskModerate},
		{0.5, RiskModerate},
		{0.51, RiskHigh},
		{0.7, RiskHigh},
		{0.71, RiskCritical},
	} {
		if got := riskLevel(tc.score); got != tc.want {
			t.Errorf("riskLevel(%g) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestRatingNoData(t *testing.T) {
	tracker := NewTracker()
	report := tracker.Rating("DOC-1")

	if report.Status != RatingNoData {
		t.Errorf("expected NO_DATA, got %s", report.Status)
	}
	if report.Rating != 0 {
		t.Errorf("expected zero rating, got %g", report.Rating)
	}
}

func TestRatingAffineMap(t *testing.T) {
	for _, tc := range []struct {
		score float64
		want  float64
	}{
		{-1, 1},
		{0, 3},
		{1, 5},
		{0.5, 4},
	} {
		if got := scoreToRating(tc.score); got != tc.want {
			t.Errorf("scoreToRating(%g) = %g, want %g", tc.score, got, tc.want)
		}
	}
}

func TestRatingFromSamples(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackSentiment("DOC-1", 0.8, "REV-1", time.Now())
	tracker.TrackSentiment("DOC-1", 0.6, "REV-2", time.Now())

	report := tracker.Rating("DOC-1")
	if report.TotalReviews != 2 {
		t.Fatalf("expected 2 reviews, got %d", report.TotalReviews)
	}
	// Mean 0.7 maps to (0.7+1)/2*4+1 = 4.4
	if report.Rating != 4.4 {
		t.Errorf("expected rating 4.4, got %g", report.Rating)
	}
	if report.Status != RatingVeryGood {
		t.Errorf("expected VERY_GOOD, got %s", report.Status)
	}
	if report.Distribution[4] != 2 {
		t.Errorf("expected both samples in bin 4, got %v", report.Distribution)
	}
}

func TestComplaintHistoryEmpty(t *testing.T) {
	tracker := NewTracker()
	report := tracker.ComplaintHistory("DOC-1")

	if report.Status != ComplaintGood {
		t.Errorf("expected GOOD for no complaints, got %s", report.Status)
	}
	if report.TotalComplaints != 0 {
		t.Errorf("expected 0 complaints, got %d", report.TotalComplaints)
	}
}

func TestComplaintHistoryPatterns(t *testing.T) {
	tracker := NewTracker()
	first := tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "behavior", Severity: SeverityMedium})
	tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "behavior", Severity: SeverityLow})
	tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "treatment", Severity: SeverityMedium})
	tracker.ResolveComplaint(first.ComplaintID)

	report := tracker.ComplaintHistory("DOC-1")
	if report.TotalComplaints != 3 {
		t.Fatalf("expected 3 complaints, got %d", report.TotalComplaints)
	}
	if report.Patterns["behavior"] != 2 || report.Patterns["treatment"] != 1 {
		t.Errorf("unexpected patterns: %v", report.Patterns)
	}
	if report.SeverityDistribution[SeverityMedium] != 2 {
		t.Errorf("unexpected severity distribution: %v", report.SeverityDistribution)
	}
	if report.ResolutionRate != 33.33 {
		t.Errorf("expected resolution rate 33.33, got %g", report.ResolutionRate)
	}
	if report.Status != ComplaintConcerning {
		t.Errorf("expected CONCERNING with 2 open, got %s", report.Status)
	}
}

func TestComplaintHistoryCriticalSeverity(t *testing.T) {
	tracker := NewTracker()
	tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "safety", Severity: SeverityCritical})

	report := tracker.ComplaintHistory("DOC-1")
	if report.Status != ComplaintCritical {
		t.Errorf("expected CRITICAL with a critical complaint, got %s", report.Status)
	}
}

func TestComplaintRecentKeepsLastFive(t *testing.T) {
	tracker := NewTracker()
	for i := 0; i < 7; i++ {
		tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "misc", Severity: SeverityLow})
	}

	report := tracker.ComplaintHistory("DOC-1")
	if len(report.Recent) != 5 {
		t.Errorf("expected 5 recent complaints, got %d", len(report.Recent))
	}
}

func TestResolveComplaint(t *testing.T) {
	tracker := NewTracker()
	filed := tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "misc"})

	if !tracker.ResolveComplaint(filed.ComplaintID) {
		t.Fatal("expected resolution to succeed")
	}
	// Resolving twice is a no-op success.
	if !tracker.ResolveComplaint(filed.ComplaintID) {
		t.Error("expected repeat resolution to succeed")
	}
	if tracker.ResolveComplaint("CMPL-missing") {
		t.Error("expected false for unknown complaint")
	}
}

func TestPerformanceComposite(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackSentiment("DOC-1", 1.0, "REV-1", time.Now())
	tracker.RecordShift(shift("DOC-1", 6, 15, 1))
	tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "misc", Severity: SeverityLow})

	report := tracker.Performance("DOC-1")
	// rating 5 -> 0.5*100; risk 0.425 -> 0.3*57.5; 1 complaint -> 0.2*95
	want := 0.5*100 + 0.3*(1-0.425)*100 + 0.2*95
	if math.Abs(report.OverallScore-want) > 0.01 {
		t.Errorf("expected composite %.2f, got %g", want, report.OverallScore)
	}
	if report.Rating.Rating != 5 {
		t.Errorf("expected rating 5, got %g", report.Rating.Rating)
	}
}

func TestPerformanceComplaintPenaltyCaps(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackSentiment("DOC-1", 0, "REV-1", time.Now())
	for i := 0; i < 25; i++ {
		tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "misc", Severity: SeverityLow})
	}

	report := tracker.Performance("DOC-1")
	// 25 complaints would be a 125 penalty; it caps at 100 so the
	// complaint share bottoms out at zero.
	want := 0.5*(3.0/5*100) + 0.3*100 + 0.2*0
	if math.Abs(report.OverallScore-want) > 0.01 {
		t.Errorf("expected composite %.2f, got %g", want, report.OverallScore)
	}
}

func TestDoctorIDsUnion(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordShift(shift("DOC-b", 8, 10, 0))
	tracker.FileComplaint(Complaint{DoctorID: "DOC-a", Type: "misc"})
	tracker.TrackSentiment("DOC-c", 0.5, "REV-1", time.Now())

	ids := tracker.DoctorIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 doctors, got %d", len(ids))
	}
	if ids[0] != "DOC-a" || ids[1] != "DOC-b" || ids[2] != "DOC-c" {
		t.Errorf("expected sorted IDs, got %v", ids)
	}
}

func TestComplaintCounts(t *testing.T) {
	tracker := NewTracker()
	first := tracker.FileComplaint(Complaint{DoctorID: "DOC-1", Type: "misc"})
	tracker.FileComplaint(Complaint{DoctorID: "DOC-2", Type: "misc"})
	tracker.ResolveComplaint(first.ComplaintID)

	total, open := tracker.ComplaintCounts()
	if total != 2 {
		t.Errorf("expected 2 total, got %d", total)
	}
	if open != 1 {
		t.Errorf("expected 1 open, got %d", open)
	}
}
