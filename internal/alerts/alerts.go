// Package alerts is the stateful registry of threshold-triggered
// alerts: creation, handler dispatch, severity-ranked listing, the
// acknowledgment lifecycle, and windowed statistics.
package alerts

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Severity of an alert. Rank orders CRITICAL first.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Rank returns the sort rank of a severity: CRITICAL 0 through LOW 3.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// Type is the closed set of alert sources.
type Type string

const (
	TypeSentimentCritical Type = "SENTIMENT_CRITICAL"
	TypeDoctorBurnout     Type = "DOCTOR_BURNOUT"
	TypeComplaintFiled    Type = "COMPLAINT_FILED"
	TypeFoodQuality       Type = "FOOD_QUALITY"
	TypeRoomQuality       Type = "ROOM_QUALITY"
	TypeIssueCluster      Type = "ISSUE_CLUSTER"
	TypeSystemError       Type = "SYSTEM_ERROR"
)

// Alert is one triggered alert. Acknowledgment is its only mutation.
type Alert struct {
	AlertID        string         `json:"alert_id"`
	Type           Type           `json:"alert_type"`
	Severity       Severity       `json:"severity"`
	Message        string         `json:"message"`
	Details        map[string]any `json:"details,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	Acknowledged   bool           `json:"acknowledged"`
	AcknowledgedAt *time.Time     `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string         `json:"acknowledged_by,omitempty"`
}

// Handler reacts to a newly created alert. A panicking handler is
// recovered and logged; it never aborts alert creation.
type Handler func(Alert)

// ThresholdConfig holds the tunable alert thresholds. Zero values are
// replaced by the defaults at Manager construction.
type ThresholdConfig struct {
	SentimentCritical        float64
	FoodQualityCritical      float64
	RoomQualityCritical      float64
	IssueClusterMinFrequency int
}

// DefaultThresholds returns the standard threshold configuration.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		SentimentCritical:        -0.7,
		FoodQualityCritical:      2.0,
		RoomQualityCritical:      2.0,
		IssueClusterMinFrequency: 5,
	}
}

// Manager owns the alert ledger and registered handlers.
type Manager struct {
	mu       sync.Mutex
	alerts   []Alert
	handlers map[Type][]Handler
	cfg      ThresholdConfig
}

// NewManager creates a manager with the given thresholds; zero-valued
// thresholds fall back to the defaults.
func NewManager(cfg ThresholdConfig) *Manager {
	defaults := DefaultThresholds()
	if cfg.SentimentCritical == 0 {
		cfg.SentimentCritical = defaults.SentimentCritical
	}
	if cfg.FoodQualityCritical == 0 {
		cfg.FoodQualityCritical = defaults.FoodQualityCritical
	}
	if cfg.RoomQualityCritical == 0 {
		cfg.RoomQualityCritical = defaults.RoomQualityCritical
	}
	if cfg.IssueClusterMinFrequency == 0 {
		cfg.IssueClusterMinFrequency = defaults.IssueClusterMinFrequency
	}
	return &Manager{
		handlers: make(map[Type][]Handler),
		cfg:      cfg,
	}
}

// RegisterHandler registers a handler for an alert type. Handlers run
// synchronously on creation, in registration order.
func (m *Manager) RegisterHandler(t Type, h Handler) {
	m.mu.Lock()
	m.handlers[t] = append(m.handlers[t], h)
	m.mu.Unlock()
}

// Create appends an alert and dispatches its handlers.
func (m *Manager) Create(t Type, severity Severity, message string, details map[string]any) Alert {
	alert := Alert{
		AlertID:   "ALT-" + uuid.NewString(),
		Type:      t,
		Severity:  severity,
		Message:   message,
		Details:   details,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.alerts = append(m.alerts, alert)
	handlers := make([]Handler, len(m.handlers[t]))
	copy(handlers, m.handlers[t])
	m.mu.Unlock()

	for _, h := range handlers {
		dispatch(h, alert)
	}
	return alert
}

func dispatch(h Handler, alert Alert) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("alert_id", alert.AlertID).
				Msg("alert handler failed")
		}
	}()
	h(alert)
}

// Active returns unacknowledged alerts, most severe first. An empty
// severity means no filter.
func (m *Manager) Active(severity Severity) []Alert {
	m.mu.Lock()
	var active []Alert
	for _, a := range m.alerts {
		if a.Acknowledged {
			continue
		}
		if severity != "" && a.Severity != severity {
			continue
		}
		active = append(active, a)
	}
	m.mu.Unlock()

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Severity.Rank() < active[j].Severity.Rank()
	})
	return active
}

// Acknowledge marks an alert acknowledged, recording actor and time.
// Re-acknowledging is a no-op success that preserves the first actor;
// an unknown ID returns false.
func (m *Manager) Acknowledge(alertID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.alerts {
		if m.alerts[i].AlertID != alertID {
			continue
		}
		if !m.alerts[i].Acknowledged {
			now := time.Now()
			m.alerts[i].Acknowledged = true
			m.alerts[i].AcknowledgedAt = &now
			m.alerts[i].AcknowledgedBy = userID
		}
		return true
	}
	return false
}

// Statistics counts alerts within a trailing window by severity and type.
type Statistics struct {
	PeriodHours    int              `json:"period_hours"`
	TotalAlerts    int              `json:"total_alerts"`
	Unacknowledged int              `json:"unacknowledged_alerts"`
	BySeverity     map[Severity]int `json:"severity_distribution"`
	ByType         map[Type]int     `json:"type_distribution"`
}

// GetStatistics computes alert statistics for the last windowHours.
func (m *Manager) GetStatistics(windowHours int) Statistics {
	if windowHours <= 0 {
		windowHours = 24
	}
	cutoff := time.Now().Add(-time.Duration(windowHours) * time.Hour)

	stats := Statistics{
		PeriodHours: windowHours,
		BySeverity: map[Severity]int{
			SeverityCritical: 0, SeverityHigh: 0, SeverityMedium: 0, SeverityLow: 0,
		},
		ByType: map[Type]int{},
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if !a.CreatedAt.After(cutoff) {
			continue
		}
		stats.TotalAlerts++
		if !a.Acknowledged {
			stats.Unacknowledged++
		}
		stats.BySeverity[a.Severity]++
		stats.ByType[a.Type]++
	}
	return stats
}
