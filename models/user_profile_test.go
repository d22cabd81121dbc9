package models

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func profileColumns() []string {
	return []string{
		"id", "user_id", "full_name", "email", "phone", "professional_summary",
		"experience", "career_goals", "biggest_achievement", "work_style",
		"skills", "certifications", "languages", "portfolio_links",
		"needs_sponsorship", "willing_to_relocate", "available_start_date",
		"resume_file_path", "created_at", "updated_at",
	}
}

func TestGetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(profileColumns()).AddRow(
		1, 42, "Jordan Fields", "jordan@example.com", "555-0100",
		"Backend engineer.", "Six years in payments.", "Grow into platform lead.",
		"Zero-downtime billing migration.", "Collaborative.",
		`["Go","PostgreSQL"]`, `[]`, `["English"]`, `["https://github.com/jordan"]`,
		false, true, "2026-10-01", "/data/resumes/42.pdf", now, now,
	)
	mock.ExpectQuery("SELECT id, user_id").WithArgs(42).WillReturnRows(rows)

	model := NewUserProfileModel(db)
	profile, err := model.GetByUserID(42)

	assert.NoError(t, err)
	assert.Equal(t, "Jordan Fields", profile.FullName)
	assert.False(t, profile.NeedsSponsorship)
	assert.True(t, profile.WillingToRelocate)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, StringList(profile.Skills))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").WithArgs(99).WillReturnError(sql.ErrNoRows)

	model := NewUserProfileModel(db)
	profile, err := model.GetByUserID(99)

	assert.Nil(t, profile)
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, StringList(`["Go","SQL"]`))
	assert.Nil(t, StringList(""))
	assert.Nil(t, StringList("not json"))
	assert.Empty(t, StringList("[]"))
}
