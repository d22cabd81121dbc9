package services

import (
	"fmt"
	"strings"
)

// Canonical profile field names that application questions are mapped onto.
const (
	FieldSkills              = "skills"
	FieldBiggestAchievement  = "biggest_achievement"
	FieldExperience          = "experience"
	FieldAuthorizationStatus = "authorization_status"
	FieldWillingToRelocate   = "willing_to_relocate"
	FieldAvailableStartDate  = "available_start_date"
	FieldPortfolioLinks      = "portfolio_links"
	FieldCertifications      = "certifications"
	FieldLanguages           = "languages"
	FieldCareerGoals         = "career_goals"
	FieldWorkStyle           = "work_style"
	FieldSummary             = "summary"
)

// ApplicantProfile is the pipeline's view of one user. It is immutable for
// the duration of an attempt; the caller owns it across attempts.
type ApplicantProfile struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Summary            string   `json:"summary"`
	Experience         string   `json:"experience"`
	CareerGoals        string   `json:"career_goals"`
	BiggestAchievement string   `json:"biggest_achievement"`
	WorkStyle          string   `json:"work_style"`
	Skills             []string `json:"skills"`
	Certifications     []string `json:"certifications"`
	Languages          []string `json:"languages"`
	PortfolioLinks     []string `json:"portfolio_links"`
	NeedsSponsorship   bool     `json:"needs_sponsorship"`
	WillingToRelocate  bool     `json:"willing_to_relocate"`
	AvailableStartDate string   `json:"available_start_date"` // YYYY-MM-DD
	ResumeFilePath     string   `json:"resume_file_path"`
	LinkedIn           string   `json:"linkedin"`
}

// FieldValue renders a canonical field as the string that goes into a form
// control. Lists join with commas. Booleans render Yes/No; note the
// authorization polarity: the question bank asks about sponsorship, so a
// profile that does NOT need sponsorship answers "Yes" (authorized to work).
// The second return reports whether the profile actually had a value, which
// is what decides between profile data and the generative fallback.
func (p *ApplicantProfile) FieldValue(field string) (string, bool) {
	switch field {
	case FieldSkills:
		return joinList(p.Skills)
	case FieldBiggestAchievement:
		return p.BiggestAchievement, p.BiggestAchievement != ""
	case FieldExperience:
		return p.Experience, p.Experience != ""
	case FieldAuthorizationStatus:
		return yesNo(!p.NeedsSponsorship), true
	case FieldWillingToRelocate:
		return yesNo(p.WillingToRelocate), true
	case FieldAvailableStartDate:
		return p.AvailableStartDate, p.AvailableStartDate != ""
	case FieldPortfolioLinks:
		return joinList(p.PortfolioLinks)
	case FieldCertifications:
		return joinList(p.Certifications)
	case FieldLanguages:
		return joinList(p.Languages)
	case FieldCareerGoals:
		return p.CareerGoals, p.CareerGoals != ""
	case FieldWorkStyle:
		return p.WorkStyle, p.WorkStyle != ""
	case FieldSummary:
		return p.Summary, p.Summary != ""
	}
	return "", false
}

// SummaryText is the compact profile context handed to the generative
// fallback when a question has no profile-backed answer.
func (p *ApplicantProfile) SummaryText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Summary != "" {
		fmt.Fprintf(&b, "Professional Summary: %s\n", p.Summary)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if p.BiggestAchievement != "" {
		fmt.Fprintf(&b, "Biggest Achievement: %s\n", p.BiggestAchievement)
	}
	if p.CareerGoals != "" {
		fmt.Fprintf(&b, "Career Goals: %s\n", p.CareerGoals)
	}
	if p.WorkStyle != "" {
		fmt.Fprintf(&b, "Work Style: %s\n", p.WorkStyle)
	}
	return b.String()
}

func joinList(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ", "), true
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
