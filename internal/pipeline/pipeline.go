// Package pipeline orchestrates a submission end to end: analysis,
// ledger recording, alert checks, and the durable submission log.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hasinimarella/miniproject/internal/alerts"
	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/facility"
	"github.com/hasinimarella/miniproject/internal/issues"
	"github.com/hasinimarella/miniproject/internal/sentiment"
	"github.com/hasinimarella/miniproject/internal/store"
	"github.com/hasinimarella/miniproject/internal/trends"
)

const burnoutWindowDays = 30

// Pipeline wires the analyzer, the in-memory ledgers, the alert
// manager and the submission log together. The store is optional;
// without it submissions are processed in memory only.
type Pipeline struct {
	store    *store.DB
	analyzer *sentiment.Analyzer
	ledger   *trends.Ledger
	tracker  *doctors.Tracker
	monitor  *facility.Monitor
	alerts   *alerts.Manager
}

// New assembles a pipeline from its collaborators.
func New(db *store.DB, analyzer *sentiment.Analyzer, ledger *trends.Ledger, tracker *doctors.Tracker, monitor *facility.Monitor, mgr *alerts.Manager) *Pipeline {
	return &Pipeline{
		store:    db,
		analyzer: analyzer,
		ledger:   ledger,
		tracker:  tracker,
		monitor:  monitor,
		alerts:   mgr,
	}
}

// Ledger exposes the review ledger for report commands.
func (p *Pipeline) Ledger() *trends.Ledger { return p.ledger }

// Tracker exposes the doctor tracker for report commands.
func (p *Pipeline) Tracker() *doctors.Tracker { return p.tracker }

// Monitor exposes the facility monitor for report commands.
func (p *Pipeline) Monitor() *facility.Monitor { return p.monitor }

// Alerts exposes the alert manager for report commands.
func (p *Pipeline) Alerts() *alerts.Manager { return p.alerts }

// ReviewSubmission is one incoming patient review.
type ReviewSubmission struct {
	Text        string
	Category    string
	DoctorID    string
	PatientID   string
	PatientName string
	InputMethod string
	Rating      int
}

// ReviewOutcome is everything a review submission produced.
type ReviewOutcome struct {
	Review   trends.ScoredReview
	Analysis *sentiment.Result
	Alerts   []alerts.Alert
}

// SubmitReview analyzes a review, records it in the ledger, runs the
// alert checks, and persists it to the submission log.
func (p *Pipeline) SubmitReview(ctx context.Context, sub ReviewSubmission) (*ReviewOutcome, error) {
	result, err := p.analyzer.Analyze(ctx, sub.Text)
	if err != nil {
		return nil, fmt.Errorf("analyzing review: %w", err)
	}

	review := trends.ScoredReview{
		ReviewID:         "REV-" + uuid.NewString(),
		OverallScore:     result.OverallScore,
		Label:            result.Label,
		Category:         sub.Category,
		Emotions:         result.Emotions,
		Keywords:         result.Keywords,
		DetectedLanguage: result.DetectedLanguage,
		Timestamp:        time.Now(),
		PatientID:        sub.PatientID,
		PatientName:      sub.PatientName,
		Rating:           sub.Rating,
		InputMethod:      sub.InputMethod,
	}
	p.ledger.Record(review)

	outcome := &ReviewOutcome{Review: review, Analysis: result}

	if sub.DoctorID != "" {
		p.tracker.TrackSentiment(sub.DoctorID, result.OverallScore, review.ReviewID, review.Timestamp)
	}

	if a := p.alerts.CheckSentiment(result.OverallScore, review.ReviewID); a != nil {
		outcome.Alerts = append(outcome.Alerts, *a)
	}
	if sub.DoctorID != "" {
		risk := p.tracker.BurnoutRisk(sub.DoctorID, burnoutWindowDays)
		if a := p.alerts.CheckBurnout(sub.DoctorID, risk.RiskScore, risk.RiskLevel); a != nil {
			outcome.Alerts = append(outcome.Alerts, *a)
		}
	}

	if p.store != nil {
		rec := store.ReviewRecord{
			ScoredReview: review,
			DoctorID:     sub.DoctorID,
			Text:         sub.Text,
		}
		if err := p.store.AppendReview(rec); err != nil {
			log.Error().Err(err).Str("review_id", review.ReviewID).
				Msg("persisting review failed")
		}
	}
	return outcome, nil
}

// SubmitShift records a duty shift, checks burnout risk, and persists
// the shift.
func (p *Pipeline) SubmitShift(shift doctors.DutyShift) (doctors.DutyShift, []alerts.Alert, error) {
	recorded := p.tracker.RecordShift(shift)

	var raised []alerts.Alert
	risk := p.tracker.BurnoutRisk(recorded.DoctorID, burnoutWindowDays)
	if a := p.alerts.CheckBurnout(recorded.DoctorID, risk.RiskScore, risk.RiskLevel); a != nil {
		raised = append(raised, *a)
	}

	if p.store != nil {
		if err := p.store.AppendShift(recorded); err != nil {
			return recorded, raised, fmt.Errorf("persisting shift: %w", err)
		}
	}
	return recorded, raised, nil
}

// SubmitComplaint files a complaint, raises severity alerts, and
// persists it.
func (p *Pipeline) SubmitComplaint(c doctors.Complaint) (doctors.Complaint, []alerts.Alert, error) {
	filed := p.tracker.FileComplaint(c)

	var raised []alerts.Alert
	if a := p.alerts.CheckComplaint(filed); a != nil {
		raised = append(raised, *a)
	}

	if p.store != nil {
		if err := p.store.AppendComplaint(filed); err != nil {
			return filed, raised, fmt.Errorf("persisting complaint: %w", err)
		}
	}
	return filed, raised, nil
}

// ResolveComplaint marks a complaint resolved in memory and in the
// submission log. It reports false for an unknown complaint ID.
func (p *Pipeline) ResolveComplaint(complaintID string) (bool, error) {
	if !p.tracker.ResolveComplaint(complaintID) {
		return false, nil
	}
	if p.store != nil {
		now := time.Now()
		if err := p.store.UpdateComplaintStatus(complaintID, doctors.StatusResolved, &now); err != nil {
			return true, fmt.Errorf("persisting resolution: %w", err)
		}
	}
	return true, nil
}

// SubmitFoodReview records a food quality review, checks the quality
// threshold, and persists it.
func (p *Pipeline) SubmitFoodReview(review facility.FoodReview) (facility.FoodReview, []alerts.Alert, error) {
	recorded := p.monitor.SubmitFoodReview(review)

	var raised []alerts.Alert
	if a := p.alerts.CheckFoodQuality(recorded.QualityScore); a != nil {
		raised = append(raised, *a)
	}

	if p.store != nil {
		if err := p.store.AppendFoodReview(recorded); err != nil {
			return recorded, raised, fmt.Errorf("persisting food review: %w", err)
		}
	}
	return recorded, raised, nil
}

// SubmitRoomReview records a room quality review, checks the
// cleanliness threshold, and persists it.
func (p *Pipeline) SubmitRoomReview(review facility.RoomReview) (facility.RoomReview, []alerts.Alert, error) {
	recorded := p.monitor.SubmitRoomReview(review)

	var raised []alerts.Alert
	if a := p.alerts.CheckRoomQuality(recorded.RoomID, recorded.CleanlinessScore); a != nil {
		raised = append(raised, *a)
	}

	if p.store != nil {
		if err := p.store.AppendRoomReview(recorded); err != nil {
			return recorded, raised, fmt.Errorf("persisting room review: %w", err)
		}
	}
	return recorded, raised, nil
}

// ScanIssues runs the issue clusterer over the ledger and raises an
// alert for every cluster at or above the configured frequency.
func (p *Pipeline) ScanIssues(maxClusters int) (issues.ClusterReport, []alerts.Alert) {
	clusterer := issues.NewClusterer(p.ledger)
	report := clusterer.Cluster(maxClusters)

	var raised []alerts.Alert
	for _, c := range report.Clusters {
		if a := p.alerts.CheckIssueCluster(c); a != nil {
			raised = append(raised, *a)
		}
	}
	return report, raised
}

// Replay rebuilds the in-memory ledgers from the submission log. The
// stored analysis is trusted as-is: no re-scoring, no translation, and
// no alert checks run during replay.
func (p *Pipeline) Replay(ctx context.Context) error {
	if p.store == nil {
		return nil
	}

	reviews, err := p.store.ListReviews()
	if err != nil {
		return fmt.Errorf("loading reviews: %w", err)
	}
	for _, rec := range reviews {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.ledger.Record(rec.ScoredReview)
		if rec.DoctorID != "" {
			p.tracker.TrackSentiment(rec.DoctorID, rec.OverallScore, rec.ReviewID, rec.Timestamp)
		}
	}

	shifts, err := p.store.ListShifts()
	if err != nil {
		return fmt.Errorf("loading shifts: %w", err)
	}
	for _, shift := range shifts {
		p.tracker.RecordShift(shift)
	}

	complaints, err := p.store.ListComplaints()
	if err != nil {
		return fmt.Errorf("loading complaints: %w", err)
	}
	for _, c := range complaints {
		filed := p.tracker.FileComplaint(c)
		if c.Status == doctors.StatusResolved {
			p.tracker.ResolveComplaint(filed.ComplaintID)
		}
	}

	food, err := p.store.ListFoodReviews()
	if err != nil {
		return fmt.Errorf("loading food reviews: %w", err)
	}
	for _, review := range food {
		p.monitor.SubmitFoodReview(review)
	}

	rooms, err := p.store.ListRoomReviews()
	if err != nil {
		return fmt.Errorf("loading room reviews: %w", err)
	}
	for _, review := range rooms {
		p.monitor.SubmitRoomReview(review)
	}

	log.Info().
		Int("reviews", len(reviews)).
		Int("shifts", len(shifts)).
		Int("complaints", len(complaints)).
		Int("food_reviews", len(food)).
		Int("room_reviews", len(rooms)).
		Msg("replayed submission log")
	return nil
}
