package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hasinimarella/miniproject/internal/doctors"
	"github.com/hasinimarella/miniproject/internal/facility"
	"github.com/hasinimarella/miniproject/internal/sentiment"
	"github.com/hasinimarella/miniproject/internal/trends"
)

// ReviewRecord is a scored review as persisted, with the submission
// fields the ledger does not carry.
type ReviewRecord struct {
	trends.ScoredReview
	DoctorID string
	Text     string
}

// AppendReview persists one analyzed review submission.
func (db *DB) AppendReview(rec ReviewRecord) error {
	emotions, err := json.Marshal(rec.Emotions)
	if err != nil {
		return fmt.Errorf("encoding emotions: %w", err)
	}
	keywords, err := json.Marshal(rec.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO review_submissions
		(review_id, patient_id, patient_name, doctor_id, category, rating,
		 input_method, review_text, overall_score, label, detected_language,
		 emotions, keywords, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ReviewID, rec.PatientID, rec.PatientName, rec.DoctorID,
		rec.Category, rec.Rating, rec.InputMethod, rec.Text,
		rec.OverallScore, string(rec.Label), rec.DetectedLanguage,
		string(emotions), string(keywords), rec.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

// ListReviews returns all persisted reviews in submission order.
func (db *DB) ListReviews() ([]ReviewRecord, error) {
	rows, err := db.conn.Query(
		`SELECT review_id, patient_id, patient_name, doctor_id, category,
		 rating, input_method, review_text, overall_score, label,
		 detected_language, emotions, keywords, submitted_at
		FROM review_submissions ORDER BY submitted_at, review_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReviewRecord
	for rows.Next() {
		var rec ReviewRecord
		var label, emotions, keywords, submittedAt string
		if err := rows.Scan(
			&rec.ReviewID, &rec.PatientID, &rec.PatientName, &rec.DoctorID,
			&rec.Category, &rec.Rating, &rec.InputMethod, &rec.Text,
			&rec.OverallScore, &label, &rec.DetectedLanguage,
			&emotions, &keywords, &submittedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		rec.Label = sentiment.Label(label)
		if err := json.Unmarshal([]byte(emotions), &rec.Emotions); err != nil {
			return nil, fmt.Errorf("decoding emotions for %s: %w", rec.ReviewID, err)
		}
		if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords for %s: %w", rec.ReviewID, err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339, submittedAt); err != nil {
			return nil, fmt.Errorf("parsing timestamp for %s: %w", rec.ReviewID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AppendShift persists one duty shift.
func (db *DB) AppendShift(shift doctors.DutyShift) error {
	_, err := db.conn.Exec(
		`INSERT INTO duty_shifts
		(doctor_id, shift_date, hours, patient_count, emergency_cases, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		shift.DoctorID, shift.Date, shift.Hours, shift.PatientCount,
		shift.EmergencyCases, shift.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting shift: %w", err)
	}
	return nil
}

// ListShifts returns all persisted shifts in recording order.
func (db *DB) ListShifts() ([]doctors.DutyShift, error) {
	rows, err := db.conn.Query(
		`SELECT doctor_id, shift_date, hours, patient_count, emergency_cases, recorded_at
		FROM duty_shifts ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []doctors.DutyShift
	for rows.Next() {
		var shift doctors.DutyShift
		var recordedAt string
		if err := rows.Scan(
			&shift.DoctorID, &shift.Date, &shift.Hours,
			&shift.PatientCount, &shift.EmergencyCases, &recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning shift: %w", err)
		}
		if shift.RecordedAt, err = time.Parse(time.RFC3339, recordedAt); err != nil {
			return nil, fmt.Errorf("parsing shift timestamp: %w", err)
		}
		out = append(out, shift)
	}
	return out, rows.Err()
}

// AppendComplaint persists one complaint.
func (db *DB) AppendComplaint(c doctors.Complaint) error {
	var resolved *string
	if c.ResolvedDate != nil {
		s := c.ResolvedDate.Format(time.RFC3339)
		resolved = &s
	}
	_, err := db.conn.Exec(
		`INSERT INTO complaints
		(complaint_id, doctor_id, complaint_type, description, severity, status, filed_date, resolved_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ComplaintID, c.DoctorID, c.Type, c.Description,
		string(c.Severity), string(c.Status),
		c.FiledDate.Format(time.RFC3339), resolved,
	)
	if err != nil {
		return fmt.Errorf("inserting complaint: %w", err)
	}
	return nil
}

// UpdateComplaintStatus records a complaint's resolution in the log.
func (db *DB) UpdateComplaintStatus(complaintID string, status doctors.Status, resolvedAt *time.Time) error {
	var resolved *string
	if resolvedAt != nil {
		s := resolvedAt.Format(time.RFC3339)
		resolved = &s
	}
	_, err := db.conn.Exec(
		"UPDATE complaints SET status = ?, resolved_date = ? WHERE complaint_id = ?",
		string(status), resolved, complaintID,
	)
	if err != nil {
		return fmt.Errorf("updating complaint %s: %w", complaintID, err)
	}
	return nil
}

// ListComplaints returns all persisted complaints in filing order.
func (db *DB) ListComplaints() ([]doctors.Complaint, error) {
	rows, err := db.conn.Query(
		`SELECT complaint_id, doctor_id, complaint_type, description, severity, status, filed_date, resolved_date
		FROM complaints ORDER BY filed_date, complaint_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []doctors.Complaint
	for rows.Next() {
		var c doctors.Complaint
		var severity, status, filed string
		var resolved sql.NullString
		if err := rows.Scan(
			&c.ComplaintID, &c.DoctorID, &c.Type, &c.Description,
			&severity, &status, &filed, &resolved,
		); err != nil {
			return nil, fmt.Errorf("scanning complaint: %w", err)
		}
		c.Severity = doctors.Severity(severity)
		c.Status = doctors.Status(status)
		if c.FiledDate, err = time.Parse(time.RFC3339, filed); err != nil {
			return nil, fmt.Errorf("parsing complaint timestamp: %w", err)
		}
		if resolved.Valid {
			t, err := time.Parse(time.RFC3339, resolved.String)
			if err != nil {
				return nil, fmt.Errorf("parsing resolution timestamp: %w", err)
			}
			c.ResolvedDate = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AppendFoodReview persists one food quality review.
func (db *DB) AppendFoodReview(review facility.FoodReview) error {
	aspects, err := json.Marshal(review.Aspects)
	if err != nil {
		return fmt.Errorf("encoding aspects: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO food_reviews (review_id, quality_score, aspects, comments, submitted_at)
		VALUES (?, ?, ?, ?, ?)`,
		review.ReviewID, review.QualityScore, string(aspects),
		review.Comments, review.SubmittedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting food review: %w", err)
	}
	return nil
}

// ListFoodReviews returns all persisted food reviews in submission order.
func (db *DB) ListFoodReviews() ([]facility.FoodReview, error) {
	rows, err := db.conn.Query(
		`SELECT review_id, quality_score, aspects, comments, submitted_at
		FROM food_reviews ORDER BY submitted_at, review_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []facility.FoodReview
	for rows.Next() {
		var review facility.FoodReview
		var aspects, submittedAt string
		if err := rows.Scan(
			&review.ReviewID, &review.QualityScore, &aspects,
			&review.Comments, &submittedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning food review: %w", err)
		}
		if err := json.Unmarshal([]byte(aspects), &review.Aspects); err != nil {
			return nil, fmt.Errorf("decoding aspects for %s: %w", review.ReviewID, err)
		}
		if review.SubmittedAt, err = time.Parse(time.RFC3339, submittedAt); err != nil {
			return nil, fmt.Errorf("parsing food review timestamp: %w", err)
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

// AppendRoomReview persists one room quality review.
func (db *DB) AppendRoomReview(review facility.RoomReview) error {
	aspects, err := json.Marshal(review.Aspects)
	if err != nil {
		return fmt.Errorf("encoding aspects: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO room_reviews (review_id, room_id, cleanliness_score, aspects, comments, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.ReviewID, review.RoomID, review.CleanlinessScore,
		string(aspects), review.Comments, review.SubmittedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting room review: %w", err)
	}
	return nil
}

// ListRoomReviews returns all persisted room reviews in submission order.
func (db *DB) ListRoomReviews() ([]facility.RoomReview, error) {
	rows, err := db.conn.Query(
		`SELECT review_id, room_id, cleanliness_score, aspects, comments, submitted_at
		FROM room_reviews ORDER BY submitted_at, review_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []facility.RoomReview
	for rows.Next() {
		var review facility.RoomReview
		var aspects, submittedAt string
		if err := rows.Scan(
			&review.ReviewID, &review.RoomID, &review.CleanlinessScore,
			&aspects, &review.Comments, &submittedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning room review: %w", err)
		}
		if err := json.Unmarshal([]byte(aspects), &review.Aspects); err != nil {
			return nil, fmt.Errorf("decoding aspects for %s: %w", review.ReviewID, err)
		}
		if review.SubmittedAt, err = time.Parse(time.RFC3339, submittedAt); err != nil {
			return nil, fmt.Errorf("parsing room review timestamp: %w", err)
		}
		out = append(out, review)
	}
	return out, rows.Err()
}
