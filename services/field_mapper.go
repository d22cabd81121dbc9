package services

import "strings"

// MappingRule ties a set of case-insensitive trigger phrases to one
// canonical profile field. Rules are evaluated in order; first match wins.
type MappingRule struct {
	Field    string
	Triggers []string
}

// FieldMapper maps question labels onto canonical profile fields. The rule
// table is fixed at construction and read-only afterwards, so one mapper is
// safe to share across concurrent attempts.
type FieldMapper struct {
	rules    []MappingRule
	fallback string
}

// DefaultMappingRules returns the standard rule table. The sponsorship and
// relocation polarity these rules feed into is a product decision, not a
// DOM fact; keep it configurable rather than assuming every form words the
// question the same way.
func DefaultMappingRules() []MappingRule {
	return []MappingRule{
		{Field: FieldBiggestAchievement, Triggers: []string{
			"greatest strength", "biggest strength", "key strength", "your strength", "top strength",
			"achievement", "accomplishment", "proudest",
		}},
		{Field: FieldCareerGoals, Triggers: []string{
			"career goal", "career ambition", "long-term goal", "short-term goal", "where do you see yourself",
		}},
		{Field: FieldExperience, Triggers: []string{
			"experience", "work history", "previous roles", "professional background", "your background",
		}},
		{Field: FieldSkills, Triggers: []string{
			"skills", "core competencies", "technical skills", "expertise", "areas of expertise",
		}},
		{Field: FieldAuthorizationStatus, Triggers: []string{
			"visa sponsorship", "authorization", "sponsorship", "work authorization", "require sponsorship",
			"authorized to work", "eligible to work", "legally able to work",
		}},
		{Field: FieldWillingToRelocate, Triggers: []string{
			"relocate", "willing to move", "open to relocation", "consider relocation", "change location",
		}},
		{Field: FieldAvailableStartDate, Triggers: []string{
			"start date", "availability date", "when can you start", "available to start", "available start date",
		}},
		{Field: FieldPortfolioLinks, Triggers: []string{
			"github", "portfolio", "personal site", "personal website", "online portfolio", "linkedin",
		}},
		{Field: FieldCertifications, Triggers: []string{
			"certifications", "licenses", "certification", "credentials", "accreditations",
		}},
		{Field: FieldLanguages, Triggers: []string{
			"languages", "language proficiency", "what languages", "spoken languages", "which languages",
		}},
	}
}

func NewFieldMapper(rules []MappingRule) *FieldMapper {
	return &FieldMapper{rules: rules, fallback: FieldCareerGoals}
}

// Map resolves a question label to a canonical field. The table is total:
// labels that match nothing land in the career-goals bucket, because even
// unrecognized questions still need a best-effort answer.
func (m *FieldMapper) Map(label string) string {
	q := strings.ToLower(label)
	for _, rule := range m.rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(q, trigger) {
				return rule.Field
			}
		}
	}
	return m.fallback
}
