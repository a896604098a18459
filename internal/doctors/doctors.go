// Package doctors tracks duty shifts, complaints, and patient
// sentiment per doctor, and derives burnout risk, patient rating, and
// a composite performance score from them.
package doctors

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWindowDays is the trailing window for burnout analysis.
const DefaultWindowDays = 30

// Severity of a complaint.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Status of a complaint. Open complaints may transition to resolved
// exactly once; that is the only mutation on a complaint.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// DutyShift is one logged shift. WorkloadIndex is patients per hour,
// fixed at record time.
type DutyShift struct {
	DoctorID       string    `json:"doctor_id"`
	Date           string    `json:"date"`
	Hours          float64   `json:"hours"`
	PatientCount   int       `json:"patient_count"`
	EmergencyCases int       `json:"emergency_cases"`
	WorkloadIndex  float64   `json:"workload_index"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// Complaint filed against a doctor.
type Complaint struct {
	ComplaintID  string     `json:"complaint_id"`
	DoctorID     string     `json:"doctor_id"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Severity     Severity   `json:"severity"`
	Status       Status     `json:"status"`
	FiledDate    time.Time  `json:"filed_date"`
	ResolvedDate *time.Time `json:"resolved_date,omitempty"`
}

// SentimentSample is one tracked patient sentiment score for a doctor.
type SentimentSample struct {
	Score     float64   `json:"score"`
	ReviewID  string    `json:"review_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker owns the per-doctor ledgers. Appends are serialized;
// reports are computed fresh from the ledgers at query time.
type Tracker struct {
	mu         sync.RWMutex
	shifts     map[string][]DutyShift
	complaints map[string][]Complaint
	samples    map[string][]SentimentSample
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		shifts:     make(map[string][]DutyShift),
		complaints: make(map[string][]Complaint),
		samples:    make(map[string][]SentimentSample),
	}
}

// RecordShift appends a duty shift. WorkloadIndex is computed here; a
// zero RecordedAt is stamped with the current time.
func (t *Tracker) RecordShift(shift DutyShift) DutyShift {
	if shift.Hours > 0 {
		shift.WorkloadIndex = round2(float64(shift.PatientCount) / shift.Hours)
	}
	if shift.RecordedAt.IsZero() {
		shift.RecordedAt = time.Now()
	}
	t.mu.Lock()
	t.shifts[shift.DoctorID] = append(t.shifts[shift.DoctorID], shift)
	t.mu.Unlock()
	return shift
}

// FileComplaint creates an OPEN complaint and appends it. A supplied
// ComplaintID is kept (replay); otherwise one is generated.
func (t *Tracker) FileComplaint(c Complaint) Complaint {
	if c.ComplaintID == "" {
		c.ComplaintID = "CMPL-" + uuid.NewString()
	}
	if c.Severity == "" {
		c.Severity = SeverityMedium
	}
	c.Status = StatusOpen
	if c.FiledDate.IsZero() {
		c.FiledDate = time.Now()
	}
	c.ResolvedDate = nil
	t.mu.Lock()
	t.complaints[c.DoctorID] = append(t.complaints[c.DoctorID], c)
	t.mu.Unlock()
	return c
}

// ResolveComplaint marks a complaint resolved. Returns false when the
// ID is unknown; resolving twice is a no-op success.
func (t *Tracker) ResolveComplaint(complaintID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for doctorID, list := range t.complaints {
		for i := range list {
			if list[i].ComplaintID != complaintID {
				continue
			}
			if list[i].Status != StatusResolved {
				now := time.Now()
				list[i].Status = StatusResolved
				list[i].ResolvedDate = &now
				t.complaints[doctorID] = list
			}
			return true
		}
	}
	return false
}

// TrackSentiment appends a sentiment sample for a doctor.
func (t *Tracker) TrackSentiment(doctorID string, score float64, reviewID string, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	t.mu.Lock()
	t.samples[doctorID] = append(t.samples[doctorID], SentimentSample{
		Score:     score,
		ReviewID:  reviewID,
		Timestamp: at,
	})
	t.mu.Unlock()
}

// DoctorIDs returns every doctor seen in any ledger, sorted.
func (t *Tracker) DoctorIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	seen := make(map[string]bool)
	for id := range t.shifts {
		seen[id] = true
	}
	for id := range t.complaints {
		seen[id] = true
	}
	for id := range t.samples {
		seen[id] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ComplaintCounts returns the total and still-open complaint counts
// across all doctors.
func (t *Tracker) ComplaintCounts() (total, open int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, list := range t.complaints {
		total += len(list)
		for _, c := range list {
			if c.Status == StatusOpen {
				open++
			}
		}
	}
	return total, open
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
