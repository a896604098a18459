package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasinimarella/miniproject/internal/alerts"
	"github.com/hasinimarella/miniproject/internal/config"
	"github.com/hasinimarella/miniproject/internal/dashboard"
	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/facility"
	"github.com/hasinimarella/miniproject/internal/language"
	"github.com/hasinimarella/miniproject/internal/logging"
	"github.com/hasinimarella/miniproject/internal/pipeline"
	"github.com/hasinimarella/miniproject/internal/sentiment"
	"github.com/hasinimarella/miniproject/internal/store"
	"github.com/hasinimarella/miniproject/internal/trends"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "carepulse",
	Short:   "Hospital patient feedback analytics",
	Long:    "CarePulse scores patient feedback, tracks doctor workload and complaints, monitors facility quality, and raises threshold alerts.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logging.Init(level, cfg.Logging.Pretty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(facilityCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(dashboardCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("carepulse", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/carepulse/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure the translator endpoint and alert thresholds.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show submission log and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Submission log: %s\n\n", db.Path())
		fmt.Println("Submissions:")
		fmt.Printf("  Patient reviews: %d\n", stats.Reviews)
		fmt.Printf("  Duty shifts: %d\n", stats.Shifts)
		fmt.Printf("  Complaints: %d\n", stats.Complaints)
		fmt.Printf("  Food reviews: %d\n", stats.FoodReviews)
		fmt.Printf("  Room reviews: %d\n", stats.RoomReviews)
		return nil
	},
}

// --- analyze command ---

var analyzeBatch bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]...",
	Short: "Analyze feedback without recording it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer := newAnalyzer()

		if analyzeBatch {
			results := analyzer.AnalyzeBatch(context.Background(), args)
			return printJSON(map[string]any{
				"results":      results,
				"distribution": sentiment.Distribution(results),
			})
		}

		result, err := analyzer.Analyze(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if err := printJSON(result); err != nil {
			return err
		}
		if sentiment.IsCritical(result) {
			fmt.Println("Warning: score is below the critical sentiment threshold")
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeBatch, "batch", false, "Treat each argument as a separate text and summarize the batch")
}

// --- submit commands ---

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Record a submission",
}

var (
	reviewCategory string
	reviewDoctor   string
	reviewPatient  string
	reviewName     string
	reviewMethod   string
	reviewRating   int
)

var submitReviewCmd = &cobra.Command{
	Use:   "review [text]",
	Short: "Submit a patient review",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewRating != 0 && (reviewRating < 1 || reviewRating > 5) {
			return fmt.Errorf("rating must be between 1 and 5, got %d", reviewRating)
		}

		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		outcome, err := pipe.SubmitReview(context.Background(), pipeline.ReviewSubmission{
			Text:        strings.Join(args, " "),
			Category:    reviewCategory,
			DoctorID:    reviewDoctor,
			PatientID:   reviewPatient,
			PatientName: reviewName,
			InputMethod: reviewMethod,
			Rating:      reviewRating,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %s: %s (score %.3f)\n",
			outcome.Review.ReviewID, outcome.Review.Label, outcome.Review.OverallScore)
		for _, a := range outcome.Alerts {
			fmt.Printf("  Alert [%s] %s\n", a.Severity, a.Message)
		}
		return nil
	},
}

var (
	shiftDoctor      string
	shiftDate        string
	shiftHours       float64
	shiftPatients    int
	shiftEmergencies int
)

var submitShiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Record a doctor duty shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		if shiftDoctor == "" {
			return fmt.Errorf("--doctor is required")
		}
		if shiftHours <= 0 || shiftHours > 24 {
			return fmt.Errorf("hours must be between 0 and 24, got %g", shiftHours)
		}
		if shiftPatients < 0 || shiftEmergencies < 0 {
			return fmt.Errorf("patient and emergency counts must not be negative")
		}
		if shiftDate == "" {
			shiftDate = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", shiftDate); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD, got %q", shiftDate)
		}

		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		recorded, raised, err := pipe.SubmitShift(doctors.DutyShift{
			DoctorID:       shiftDoctor,
			Date:           shiftDate,
			Hours:          shiftHours,
			PatientCount:   shiftPatients,
			EmergencyCases: shiftEmergencies,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Recorded shift for %s on %s (workload index %.2f)\n",
			recorded.DoctorID, recorded.Date, recorded.WorkloadIndex)
		for _, a := range raised {
			fmt.Printf("  Alert [%s] %s\n", a.Severity, a.Message)
		}
		return nil
	},
}

var (
	complaintDoctor   string
	complaintType     string
	complaintSeverity string
)

var submitComplaintCmd = &cobra.Command{
	Use:   "complaint [description]",
	Short: "File a complaint against a doctor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if complaintDoctor == "" {
			return fmt.Errorf("--doctor is required")
		}
		severity := doctors.Severity(strings.ToUpper(complaintSeverity))
		switch severity {
		case doctors.SeverityLow, doctors.SeverityMedium, doctors.SeverityHigh, doctors.SeverityCritical:
		default:
			return fmt.Errorf("severity must be LOW, MEDIUM, HIGH, or CRITICAL, got %q", complaintSeverity)
		}

		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		filed, raised, err := pipe.SubmitComplaint(doctors.Complaint{
			DoctorID:    complaintDoctor,
			Type:        complaintType,
			Description: strings.Join(args, " "),
			Severity:    severity,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Filed %s against %s (%s)\n", filed.ComplaintID, filed.DoctorID, filed.Severity)
		for _, a := range raised {
			fmt.Printf("  Alert [%s] %s\n", a.Severity, a.Message)
		}
		return nil
	},
}

var (
	foodScore    float64
	foodAspects  []string
	foodComments string
)

var submitFoodCmd = &cobra.Command{
	Use:   "food",
	Short: "Submit a food quality review",
	RunE: func(cmd *cobra.Command, args []string) error {
		if foodScore < 1 || foodScore > 5 {
			return fmt.Errorf("score must be between 1 and 5, got %g", foodScore)
		}
		aspects, err := parseAspects(foodAspects)
		if err != nil {
			return err
		}

		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		recorded, raised, err := pipe.SubmitFoodReview(facility.FoodReview{
			QualityScore: foodScore,
			Aspects:      aspects,
			Comments:     foodComments,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %s (score %.1f)\n", recorded.ReviewID, recorded.QualityScore)
		for _, a := range raised {
			fmt.Printf("  Alert [%s] %s\n", a.Severity, a.Message)
		}
		return nil
	},
}

var (
	roomID       string
	roomScore    float64
	roomAspects  []string
	roomComments string
)

var submitRoomCmd = &cobra.Command{
	Use:   "room",
	Short: "Submit a room cleanliness review",
	RunE: func(cmd *cobra.Command, args []string) error {
		if roomID == "" {
			return fmt.Errorf("--room is required")
		}
		if roomScore < 1 || roomScore > 5 {
			return fmt.Errorf("score must be between 1 and 5, got %g", roomScore)
		}
		aspects, err := parseAspects(roomAspects)
		if err != nil {
			return err
		}

		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		recorded, raised, err := pipe.SubmitRoomReview(facility.RoomReview{
			RoomID:           roomID,
			CleanlinessScore: roomScore,
			Aspects:          aspects,
			Comments:         roomComments,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %s for room %s (score %.1f)\n",
			recorded.ReviewID, recorded.RoomID, recorded.CleanlinessScore)
		for _, a := range raised {
			fmt.Printf("  Alert [%s] %s\n", a.Severity, a.Message)
		}
		return nil
	},
}

var (
	resolveID string
)

var resolveComplaintCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Mark a complaint as resolved",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resolveID == "" {
			return fmt.Errorf("--id is required")
		}

		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		ok, err := pipe.ResolveComplaint(resolveID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown complaint: %s", resolveID)
		}
		fmt.Printf("Resolved %s\n", resolveID)
		return nil
	},
}

func init() {
	submitReviewCmd.Flags().StringVar(&reviewCategory, "category", "general", "Feedback category")
	submitReviewCmd.Flags().StringVar(&reviewDoctor, "doctor", "", "Doctor the review concerns")
	submitReviewCmd.Flags().StringVar(&reviewPatient, "patient", "", "Patient ID")
	submitReviewCmd.Flags().StringVar(&reviewName, "name", "", "Patient name")
	submitReviewCmd.Flags().StringVar(&reviewMethod, "method", "text", "Input method (text, voice)")
	submitReviewCmd.Flags().IntVar(&reviewRating, "rating", 0, "Star rating 1-5")

	submitShiftCmd.Flags().StringVar(&shiftDoctor, "doctor", "", "Doctor ID")
	submitShiftCmd.Flags().StringVar(&shiftDate, "date", "", "Shift date (YYYY-MM-DD, default today)")
	submitShiftCmd.Flags().Float64Var(&shiftHours, "hours", 0, "Hours worked")
	submitShiftCmd.Flags().IntVar(&shiftPatients, "patients", 0, "Patients seen")
	submitShiftCmd.Flags().IntVar(&shiftEmergencies, "emergencies", 0, "Emergency cases handled")

	submitComplaintCmd.Flags().StringVar(&complaintDoctor, "doctor", "", "Doctor ID")
	submitComplaintCmd.Flags().StringVar(&complaintType, "type", "general", "Complaint type")
	submitComplaintCmd.Flags().StringVar(&complaintSeverity, "severity", "MEDIUM", "Severity (LOW, MEDIUM, HIGH, CRITICAL)")

	submitFoodCmd.Flags().Float64Var(&foodScore, "score", 0, "Quality score 1-5")
	submitFoodCmd.Flags().StringSliceVar(&foodAspects, "aspect", nil, "Aspect score as name=value (repeatable)")
	submitFoodCmd.Flags().StringVar(&foodComments, "comments", "", "Free-text comments")

	submitRoomCmd.Flags().StringVar(&roomID, "room", "", "Room ID")
	submitRoomCmd.Flags().Float64Var(&roomScore, "score", 0, "Cleanliness score 1-5")
	submitRoomCmd.Flags().StringSliceVar(&roomAspects, "aspect", nil, "Aspect score as name=value (repeatable)")
	submitRoomCmd.Flags().StringVar(&roomComments, "comments", "", "Free-text comments")

	resolveComplaintCmd.Flags().StringVar(&resolveID, "id", "", "Complaint ID")

	submitCmd.AddCommand(submitReviewCmd)
	submitCmd.AddCommand(submitShiftCmd)
	submitCmd.AddCommand(submitComplaintCmd)
	submitCmd.AddCommand(submitFoodCmd)
	submitCmd.AddCommand(submitRoomCmd)
	submitCmd.AddCommand(resolveComplaintCmd)
}

// --- report commands ---

var (
	windowDays     int
	trendsCategory string
	trendsEmotions bool
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show sentiment trends over a trailing window",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if trendsEmotions {
			return printJSON(pipe.Ledger().EmotionProfile(windowDays, trendsCategory))
		}
		return printJSON(pipe.Ledger().Trends(windowDays, trendsCategory))
	},
}

var maxClusters int

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Cluster recurring issues from negative reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		report, raised := pipe.ScanIssues(maxClusters)
		if err := printJSON(report); err != nil {
			return err
		}
		for _, a := range raised {
			fmt.Printf("Alert [%s] %s\n", a.Severity, a.Message)
		}
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [doctor-id]",
	Short: "Show a doctor's rating, burnout risk, complaints, and performance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		tracker := pipe.Tracker()
		doctorID := args[0]
		report := map[string]any{
			"rating":      tracker.Rating(doctorID),
			"burnout":     tracker.BurnoutRisk(doctorID, windowDays),
			"complaints":  tracker.ComplaintHistory(doctorID),
			"performance": tracker.Performance(doctorID),
		}
		return printJSON(report)
	},
}

var facilityCmd = &cobra.Command{
	Use:   "facility",
	Short: "Show food and room quality reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		monitor := pipe.Monitor()
		report := map[string]any{
			"food":                 monitor.FoodTrends(windowDays),
			"rooms":                monitor.RoomTrends(windowDays),
			"food_recommendations": monitor.FoodRecommendations(windowDays),
			"room_recommendations": monitor.RoomRecommendations(windowDays),
		}
		return printJSON(report)
	},
}

func init() {
	trendsCmd.Flags().IntVar(&windowDays, "days", 30, "Trailing window in days")
	trendsCmd.Flags().StringVar(&trendsCategory, "category", "", "Filter by category")
	trendsCmd.Flags().BoolVar(&trendsEmotions, "emotions", false, "Show the aggregated emotion profile instead of trends")
	issuesCmd.Flags().IntVar(&maxClusters, "max", 5, "Maximum clusters to report")
	doctorCmd.Flags().IntVar(&windowDays, "days", 30, "Trailing window in days")
	facilityCmd.Flags().IntVar(&windowDays, "days", 30, "Trailing window in days")
}

// --- alerts commands ---

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Inspect and manage alerts",
}

var alertSeverity string

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active alerts, most severe first",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		active := pipe.Alerts().Active(alerts.Severity(strings.ToUpper(alertSeverity)))
		if len(active) == 0 {
			fmt.Println("No active alerts.")
			return nil
		}
		return printJSON(active)
	},
}

var (
	ackUser string
)

var alertsAckCmd = &cobra.Command{
	Use:   "ack [alert-id]",
	Short: "Acknowledge an alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if !pipe.Alerts().Acknowledge(args[0], ackUser) {
			return fmt.Errorf("unknown alert: %s", args[0])
		}
		fmt.Printf("Acknowledged %s\n", args[0])
		return nil
	},
}

var statsHours int

var alertsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show alert statistics for a trailing window",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		return printJSON(pipe.Alerts().GetStatistics(statsHours))
	},
}

var exportPath string

var alertsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export alerts from a trailing window to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pipe.Alerts().ExportJSON(exportPath, statsHours); err != nil {
			return err
		}
		fmt.Printf("Exported alerts to %s\n", exportPath)
		return nil
	},
}

func init() {
	alertsListCmd.Flags().StringVar(&alertSeverity, "severity", "", "Filter by severity")
	alertsAckCmd.Flags().StringVar(&ackUser, "user", "admin", "Acknowledging user")
	alertsStatsCmd.Flags().IntVar(&statsHours, "hours", 24, "Trailing window in hours")
	alertsExportCmd.Flags().IntVar(&statsHours, "hours", 24, "Trailing window in hours")
	alertsExportCmd.Flags().StringVar(&exportPath, "out", "alerts.json", "Output file path")

	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsAckCmd)
	alertsCmd.AddCommand(alertsStatsCmd)
	alertsCmd.AddCommand(alertsExportCmd)
}

// --- dashboard command ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the administrator overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, db, err := openPipeline()
		if err != nil {
			return err
		}
		defer db.Close()

		composer := dashboard.NewComposer(pipe.Ledger(), pipe.Tracker(), pipe.Monitor(), pipe.Alerts())
		return printJSON(composer.Overview())
	},
}

// --- helpers ---

func openDB() (*store.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "carepulse.db")
	return store.Open(dbPath)
}

// openPipeline opens the submission log and replays it into a fresh
// pipeline so report commands see all recorded history.
func openPipeline() (*pipeline.Pipeline, *store.DB, error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	mgr := alerts.NewManager(alerts.ThresholdConfig{
		SentimentCritical:        cfg.Alerts.SentimentCritical,
		FoodQualityCritical:      cfg.Alerts.FoodQualityCritical,
		RoomQualityCritical:      cfg.Alerts.RoomQualityCritical,
		IssueClusterMinFrequency: cfg.Alerts.IssueClusterMinFrequency,
	})

	pipe := pipeline.New(db, newAnalyzer(), trends.NewLedger(),
		doctors.NewTracker(), facility.NewMonitor(), mgr)

	if err := pipe.Replay(context.Background()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("replaying submission log: %w", err)
	}
	return pipe, db, nil
}

func newAnalyzer() *sentiment.Analyzer {
	var opts []sentiment.Option
	if cfg.Language.Translator.Enabled {
		timeout := time.Duration(cfg.Language.Translator.TimeoutSeconds) * time.Second
		client := language.NewLibreClient(cfg.Language.Translator.URL, cfg.Language.Translator.APIKeyEnv, timeout)
		opts = append(opts, sentiment.WithNormalizer(
			language.NewNormalizer(cfg.Language.Pivot, client, timeout)))
	}
	return sentiment.New(opts...)
}

func parseAspects(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	aspects := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("aspect must be name=value, got %q", pair)
		}
		var score float64
		if _, err := fmt.Sscanf(value, "%g", &score); err != nil {
			return nil, fmt.Errorf("invalid aspect score %q: %w", value, err)
		}
		if score < 1 || score > 5 {
			return nil, fmt.Errorf("aspect score must be between 1 and 5, got %g", score)
		}
		aspects[name] = score
	}
	return aspects, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
