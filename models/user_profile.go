package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// UserProfile is the persisted profile row. List-valued columns are stored
// as JSON arrays, matching what the profile extraction side writes.
type UserProfile struct {
	ID                  int       `json:"id"`
	UserID              int       `json:"user_id"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	ProfessionalSummary string    `json:"professional_summary"`
	Experience          string    `json:"experience"`
	CareerGoals         string    `json:"career_goals"`
	BiggestAchievement  string    `json:"biggest_achievement"`
	WorkStyle           string    `json:"work_style"`
	Skills              string    `json:"skills"`          // JSON array
	Certifications      string    `json:"certifications"`  // JSON array
	Languages           string    `json:"languages"`       // JSON array
	PortfolioLinks      string    `json:"portfolio_links"` // JSON array
	NeedsSponsorship    bool      `json:"needs_sponsorship"`
	WillingToRelocate   bool      `json:"willing_to_relocate"`
	AvailableStartDate  string    `json:"available_start_date"` // YYYY-MM-DD
	ResumeFilePath      string    `json:"resume_file_path"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// StringList decodes one of the JSON-array columns. Bad or empty JSON is
// treated as no values rather than an error.
func StringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

type UserProfileModel struct {
	DB *sql.DB
}

func NewUserProfileModel(db *sql.DB) *UserProfileModel {
	return &UserProfileModel{DB: db}
}

func (m *UserProfileModel) GetByUserID(userID int) (*UserProfile, error) {
	profile := &UserProfile{}
	query := `
		SELECT id, user_id, COALESCE(full_name, '') as full_name,
		       COALESCE(email, '') as email,
		       COALESCE(phone, '') as phone,
		       COALESCE(professional_summary, '') as professional_summary,
		       COALESCE(experience, '') as experience,
		       COALESCE(career_goals, '') as career_goals,
		       COALESCE(biggest_achievement, '') as biggest_achievement,
		       COALESCE(work_style, '') as work_style,
		       COALESCE(skills, '') as skills,
		       COALESCE(certifications, '') as certifications,
		       COALESCE(languages, '') as languages,
		       COALESCE(portfolio_links, '') as portfolio_links,
		       COALESCE(needs_sponsorship, false) as needs_sponsorship,
		       COALESCE(willing_to_relocate, false) as willing_to_relocate,
		       COALESCE(available_start_date, '') as available_start_date,
		       COALESCE(resume_file_path, '') as resume_file_path,
		       created_at, updated_at
		FROM user_profiles WHERE user_id = $1
	`
	err := m.DB.QueryRow(query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.Email,
		&profile.Phone, &profile.ProfessionalSummary, &profile.Experience,
		&profile.CareerGoals, &profile.BiggestAchievement, &profile.WorkStyle,
		&profile.Skills, &profile.Certifications, &profile.Languages,
		&profile.PortfolioLinks, &profile.NeedsSponsorship,
		&profile.WillingToRelocate, &profile.AvailableStartDate,
		&profile.ResumeFilePath, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
