package doctors

import "time"

// RatingStatus is the qualitative banding of a 1-5 rating.
type RatingStatus string

const (
	RatingNoData    RatingStatus = "NO_DATA"
	RatingExcellent RatingStatus = "EXCELLENT"
	RatingVeryGood  RatingStatus = "VERY_GOOD"
	RatingGood      RatingStatus = "GOOD"
	RatingFair      RatingStatus = "FAIR"
	RatingPoor      RatingStatus = "POOR"
)

// RatingReport maps tracked sentiment onto a 1-5 patient rating.
type RatingReport struct {
	DoctorID              string       `json:"doctor_id"`
	Rating                float64      `json:"rating"`
	TotalReviews          int          `json:"total_reviews"`
	AverageSentimentScore float64      `json:"average_sentiment_score"`
	Distribution          map[int]int  `json:"rating_distribution"`
	Status                RatingStatus `json:"status"`
}

// Rating computes a doctor's rating from tracked sentiment. The mean
// score in [-1,1] maps affinely onto [1,5]; each sample is also binned
// into a clamped integer 1-5 bucket for the distribution.
func (t *Tracker) Rating(doctorID string) RatingReport {
	t.mu.RLock()
	samples := t.samples[doctorID]
	t.mu.RUnlock()

	report := RatingReport{DoctorID: doctorID, Distribution: map[int]int{}}
	if len(samples) == 0 {
		report.Status = RatingNoData
		return report
	}

	var sum float64
	for _, s := range samples {
		sum += s.Score
		report.Distribution[ratingBin(s.Score)]++
	}
	avg := sum / float64(len(samples))

	report.TotalReviews = len(samples)
	report.AverageSentimentScore = round3(avg)
	report.Rating = round2(scoreToRating(avg))
	report.Status = ratingStatus(report.Rating)
	return report
}

// scoreToRating maps a sentiment score in [-1,1] onto [1,5].
func scoreToRating(score float64) float64 {
	return (score+1)/2*4 + 1
}

func ratingBin(score float64) int {
	bin := int(scoreToRating(score))
	if bin < 1 {
		return 1
	}
	if bin > 5 {
		return 5
	}
	return bin
}

func ratingStatus(rating float64) RatingStatus {
	switch {
	case rating >= 4.5:
		return RatingExcellent
	case rating >= 4.0:
		return RatingVeryGood
	case rating >= 3.5:
		return RatingGood
	case rating >= 3.0:
		return RatingFair
	default:
		return RatingPoor
	}
}

// ComplaintStatus summarizes a doctor's complaint record.
type ComplaintStatus string

const (
	ComplaintGood       ComplaintStatus = "GOOD"
	ComplaintAcceptable ComplaintStatus = "ACCEPTABLE"
	ComplaintConcerning ComplaintStatus = "CONCERNING"
	ComplaintCritical   ComplaintStatus = "CRITICAL"
)

// ComplaintReport is the complaint history and patterns for a doctor.
type ComplaintReport struct {
	DoctorID             string           `json:"doctor_id"`
	TotalComplaints      int              `json:"total_complaints"`
	Patterns             map[string]int   `json:"complaint_patterns"`
	SeverityDistribution map[Severity]int `json:"severity_distribution"`
	ResolutionRate       float64          `json:"resolution_rate"`
	Recent               []Complaint      `json:"recent_complaints,omitempty"`
	Status               ComplaintStatus  `json:"complaint_status"`
}

// ComplaintHistory aggregates a doctor's complaints: per-type counts,
// severity distribution, resolution rate, and the last five filed.
func (t *Tracker) ComplaintHistory(doctorID string) ComplaintReport {
	t.mu.RLock()
	list := t.complaints[doctorID]
	complaints := make([]Complaint, len(list))
	copy(complaints, list)
	t.mu.RUnlock()

	report := ComplaintReport{
		DoctorID:             doctorID,
		Patterns:             map[string]int{},
		SeverityDistribution: map[Severity]int{},
		Status:               ComplaintGood,
	}
	if len(complaints) == 0 {
		return report
	}

	resolved := 0
	for _, c := range complaints {
		report.Patterns[c.Type]++
		report.SeverityDistribution[c.Severity]++
		if c.Status == StatusResolved {
			resolved++
		}
	}

	report.TotalComplaints = len(complaints)
	report.ResolutionRate = round2(float64(resolved) / float64(len(complaints)) * 100)
	if len(complaints) > 5 {
		report.Recent = complaints[len(complaints)-5:]
	} else {
		report.Recent = complaints
	}
	report.Status = complaintStatus(complaints)
	return report
}

func complaintStatus(complaints []Complaint) ComplaintStatus {
	open, critical := 0, 0
	for _, c := range complaints {
		if c.Status == StatusOpen {
			open++
		}
		if c.Severity == SeverityCritical {
			critical++
		}
	}
	switch {
	case critical > 0 || open > 3:
		return ComplaintCritical
	case open > 1:
		return ComplaintConcerning
	default:
		return ComplaintAcceptable
	}
}

// Performance composite weights: patient rating half, burnout third,
// complaints the rest. The complaint penalty caps at 100 so one
// complaint cannot dominate the composite.
const (
	ratingShare          = 0.5
	burnoutShare         = 0.3
	complaintShare       = 0.2
	complaintPenaltyUnit = 5.0
)

// PerformanceReport is the composite performance view for a doctor.
type PerformanceReport struct {
	DoctorID     string          `json:"doctor_id"`
	OverallScore float64         `json:"overall_performance_score"`
	Burnout      RiskReport      `json:"burnout_analysis"`
	Complaints   ComplaintReport `json:"complaint_analysis"`
	Rating       RatingReport    `json:"patient_rating"`
	GeneratedAt  time.Time       `json:"dashboard_generated"`
}

// Performance combines rating, burnout risk, and complaint count into
// one 0-100 composite score.
func (t *Tracker) Performance(doctorID string) PerformanceReport {
	burnout := t.BurnoutRisk(doctorID, DefaultWindowDays)
	complaints := t.ComplaintHistory(doctorID)
	rating := t.Rating(doctorID)

	penalty := float64(complaints.TotalComplaints) * complaintPenaltyUnit
	if penalty > 100 {
		penalty = 100
	}

	score := ratingShare*(rating.Rating/5*100) +
		burnoutShare*((1-burnout.RiskScore)*100) +
		complaintShare*(100-penalty)

	return PerformanceReport{
		DoctorID:     doctorID,
		OverallScore: round2(score),
		Burnout:      burnout,
		Complaints:   complaints,
		Rating:       rating,
		GeneratedAt:  time.Now(),
	}
}
