package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// ApplicationAttempt is one row per pipeline run. The automation core hands
// back a completion report; the controller persists it here.
type ApplicationAttempt struct {
	ID                   int       `json:"id"`
	AttemptID            string    `json:"attempt_id"`
	UserID               int       `json:"user_id"`
	JobURL               string    `json:"job_url"`
	ATSVariant           string    `json:"ats_variant"`
	State                string    `json:"state"`
	ResumeUploaded       bool      `json:"resume_uploaded"`
	IdentityFieldsFilled bool      `json:"identity_fields_filled"`
	TotalQuestions       int       `json:"total_questions"`
	QuestionsFilled      int       `json:"questions_filled"`
	FailedLabels         []string  `json:"failed_labels"`
	Submitted            bool      `json:"submitted"`
	ScreenshotKey        string    `json:"screenshot_key"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
}

type ApplicationAttemptModel struct {
	DB *sql.DB
}

func NewApplicationAttemptModel(db *sql.DB) *ApplicationAttemptModel {
	return &ApplicationAttemptModel{DB: db}
}

func (m *ApplicationAttemptModel) Insert(attempt *ApplicationAttempt) error {
	query := `
		INSERT INTO application_attempts
			(attempt_id, user_id, job_url, ats_variant, state, resume_uploaded,
			 identity_fields_filled, total_questions, questions_filled,
			 failed_labels, submitted, screenshot_key, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return m.DB.QueryRow(query,
		attempt.AttemptID, attempt.UserID, attempt.JobURL, attempt.ATSVariant,
		attempt.State, attempt.ResumeUploaded, attempt.IdentityFieldsFilled,
		attempt.TotalQuestions, attempt.QuestionsFilled,
		pq.Array(attempt.FailedLabels), attempt.Submitted,
		attempt.ScreenshotKey, attempt.StartedAt, attempt.FinishedAt,
	).Scan(&attempt.ID)
}

func (m *ApplicationAttemptModel) ListByUserID(userID int, limit int) ([]ApplicationAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, attempt_id, user_id, job_url, ats_variant, state,
		       resume_uploaded, identity_fields_filled, total_questions,
		       questions_filled, failed_labels, submitted,
		       COALESCE(screenshot_key, '') as screenshot_key,
		       started_at, finished_at
		FROM application_attempts
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`
	rows, err := m.DB.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []ApplicationAttempt
	for rows.Next() {
		var a ApplicationAttempt
		if err := rows.Scan(
			&a.ID, &a.AttemptID, &a.UserID, &a.JobURL, &a.ATSVariant, &a.State,
			&a.ResumeUploaded, &a.IdentityFieldsFilled, &a.TotalQuestions,
			&a.QuestionsFilled, pq.Array(&a.FailedLabels), &a.Submitted,
			&a.ScreenshotKey, &a.StartedAt, &a.FinishedAt,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
