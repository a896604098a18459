package doctors

import "time"

// Burnout factor weights and caps. A factor saturates at its cap so
// one extreme shift cannot push the score past its weight.
const (
	hoursCap        = 12.0
	hoursWeight     = 0.4
	patientsCap     = 30.0
	patientsWeight  = 0.35
	emergencyCap    = 5.0
	emergencyWeight = 0.25
)

// RiskLevel classifies a burnout risk score. NO_DATA means the doctor
// has no logged shifts at all, distinct from a zero-risk LOW.
type RiskLevel string

const (
	RiskNoData   RiskLevel = "NO_DATA"
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskMetrics are the workload inputs behind a risk score.
type RiskMetrics struct {
	AverageHoursPerShift    float64 `json:"average_hours_per_shift"`
	AveragePatientsPerShift float64 `json:"average_patients_per_shift"`
	TotalEmergencyCases     int     `json:"total_emergency_cases"`
	TotalShiftsAnalyzed     int     `json:"total_shifts_analyzed"`
	HoursFactor             float64 `json:"hours_factor"`
	PatientFactor           float64 `json:"patient_factor"`
	EmergencyFactor         float64 `json:"emergency_factor"`
}

// RiskReport is the burnout analysis for one doctor.
type RiskReport struct {
	DoctorID        string      `json:"doctor_id"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	RiskScore       float64     `json:"risk_score"`
	Metrics         RiskMetrics `json:"metrics"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// BurnoutRisk computes a doctor's burnout risk over the trailing
// window. No shifts at all yields NO_DATA; shifts that all fall
// outside the window yield LOW with zero score.
func (t *Tracker) BurnoutRisk(doctorID string, windowDays int) RiskReport {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	t.mu.RLock()
	all := t.shifts[doctorID]
	t.mu.RUnlock()

	if len(all) == 0 {
		return RiskReport{DoctorID: doctorID, RiskLevel: RiskNoData}
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	var recent []DutyShift
	for _, s := range all {
		if s.RecordedAt.After(cutoff) {
			recent = append(recent, s)
		}
	}
	if len(recent) == 0 {
		return RiskReport{DoctorID: doctorID, RiskLevel: RiskLow}
	}

	var totalHours float64
	totalPatients, totalEmergencies := 0, 0
	for _, s := range recent {
		totalHours += s.Hours
		totalPatients += s.PatientCount
		totalEmergencies += s.EmergencyCases
	}
	numShifts := float64(len(recent))

	avgHours := totalHours / numShifts
	avgPatients := float64(totalPatients) / numShifts

	hoursFactor := capRatio(avgHours, hoursCap) * hoursWeight
	patientFactor := capRatio(avgPatients, patientsCap) * patientsWeight
	emergencyFactor := capRatio(float64(totalEmergencies)/numShifts, emergencyCap) * emergencyWeight

	score := hoursFactor + patientFactor + emergencyFactor

	return RiskReport{
		DoctorID:  doctorID,
		RiskLevel: riskLevel(score),
		RiskScore: round3(score),
		Metrics: RiskMetrics{
			AverageHoursPerShift:    round2(avgHours),
			AveragePatientsPerShift: round2(avgPatients),
			TotalEmergencyCases:     totalEmergencies,
			TotalShiftsAnalyzed:     len(recent),
			HoursFactor:             round3(hoursFactor),
			PatientFactor:           round3(patientFactor),
			EmergencyFactor:         round3(emergencyFactor),
		},
		Recommendations: burnoutRecommendations(score),
	}
}

func capRatio(value, limit float64) float64 {
	ratio := value / limit
	if ratio > 1 {
		return 1
	}
	return ratio
}

func riskLevel(score float64) RiskLevel {
	switch {
	case score > 0.7:
		return RiskCritical
	case score > 0.5:
		return RiskHigh
	case score > 0.3:
		return RiskModerate
	default:
		return RiskLow
	}
}

func burnoutRecommendations(score float64) []string {
	switch {
	case score > 0.7:
		return []string{
			"URGENT: Reduce work schedule immediately",
			"Schedule wellness check-up",
			"Consider temporary leave",
			"Assign additional support staff",
		}
	case score > 0.5:
		return []string{
			"Monitor workload closely",
			"Reduce patient load by 20-30%",
			"Encourage breaks and time off",
			"Provide mental health support",
		}
	case score > 0.3:
		return []string{
			"Continue current schedule with monitoring",
			"Encourage regular breaks",
			"Schedule monthly wellness check-ins",
		}
	default:
		return []string{"Current workload is sustainable"}
	}
}
