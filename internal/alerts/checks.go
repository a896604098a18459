package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/issues"
)

// CheckSentiment raises a HIGH alert when a review's fused sentiment
// score falls below the critical threshold. Returns nil when the score
// is within range.
func (m *Manager) CheckSentiment(score float64, reviewID string) *Alert {
	if score >= m.cfg.SentimentCritical {
		return nil
	}
	alert := m.Create(TypeSentimentCritical, SeverityHigh,
		fmt.Sprintf("Critical negative sentiment detected in review %s", reviewID),
		map[string]any{
			"review_id":       reviewID,
			"sentiment_score": score,
			"threshold":       m.cfg.SentimentCritical,
		})
	return &alert
}

// CheckBurnout raises an alert when a doctor's burnout risk is HIGH or
// CRITICAL.
func (m *Manager) CheckBurnout(doctorID string, riskScore float64, level doctors.RiskLevel) *Alert {
	var severity Severity
	switch level {
	case doctors.RiskCritical:
		severity = SeverityCritical
	case doctors.RiskHigh:
		severity = SeverityHigh
	default:
		return nil
	}
	alert := m.Create(TypeDoctorBurnout, severity,
		fmt.Sprintf("Doctor %s burnout risk is %s", doctorID, level),
		map[string]any{
			"doctor_id":  doctorID,
			"risk_score": riskScore,
			"risk_level": string(level),
		})
	return &alert
}

// CheckComplaint raises an alert for high-severity complaints.
func (m *Manager) CheckComplaint(c doctors.Complaint) *Alert {
	var severity Severity
	switch c.Severity {
	case doctors.SeverityCritical:
		severity = SeverityCritical
	case doctors.SeverityHigh:
		severity = SeverityHigh
	default:
		return nil
	}
	alert := m.Create(TypeComplaintFiled, severity,
		fmt.Sprintf("%s severity complaint filed against doctor %s", c.Severity, c.DoctorID),
		map[string]any{
			"complaint_id": c.ComplaintID,
			"doctor_id":    c.DoctorID,
			"type":         c.Type,
			"severity":     string(c.Severity),
		})
	return &alert
}

// CheckFoodQuality raises a HIGH alert when a food score is at or below
// the critical threshold.
func (m *Manager) CheckFoodQuality(score float64) *Alert {
	if score > m.cfg.FoodQualityCritical {
		return nil
	}
	alert := m.Create(TypeFoodQuality, SeverityHigh,
		fmt.Sprintf("Food quality score %.1f is critically low", score),
		map[string]any{
			"score":     score,
			"threshold": m.cfg.FoodQualityCritical,
		})
	return &alert
}

// CheckRoomQuality raises a HIGH alert when a room cleanliness score is
// at or below the critical threshold.
func (m *Manager) CheckRoomQuality(roomID string, score float64) *Alert {
	if score > m.cfg.RoomQualityCritical {
		return nil
	}
	alert := m.Create(TypeRoomQuality, SeverityHigh,
		fmt.Sprintf("Room %s cleanliness score %.1f is critically low", roomID, score),
		map[string]any{
			"room_id":   roomID,
			"score":     score,
			"threshold": m.cfg.RoomQualityCritical,
		})
	return &alert
}

// CheckIssueCluster raises a MEDIUM alert for clusters whose frequency
// reaches the configured minimum.
func (m *Manager) CheckIssueCluster(c issues.Cluster) *Alert {
	if c.Frequency < m.cfg.IssueClusterMinFrequency {
		return nil
	}
	alert := m.Create(TypeIssueCluster, SeverityMedium,
		fmt.Sprintf("Recurring issue %q reported %d times", c.PrimaryIssue, c.Frequency),
		map[string]any{
			"primary_issue": c.PrimaryIssue,
			"frequency":     c.Frequency,
			"severity":      string(c.Severity),
		})
	return &alert
}

// ExportJSON writes the alerts from the trailing window to path as a
// timestamped JSON report.
func (m *Manager) ExportJSON(path string, windowHours int) error {
	if windowHours <= 0 {
		windowHours = 24
	}
	cutoff := time.Now().Add(-time.Duration(windowHours) * time.Hour)

	m.mu.Lock()
	var window []Alert
	for _, a := range m.alerts {
		if a.CreatedAt.After(cutoff) {
			window = append(window, a)
		}
	}
	m.mu.Unlock()

	report := map[string]any{
		"export_time":  time.Now().Format(time.RFC3339),
		"period_hours": windowHours,
		"total_alerts": len(window),
		"alerts":       window,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding alert export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing alert export: %w", err)
	}
	return nil
}
