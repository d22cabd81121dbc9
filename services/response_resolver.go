package services

import (
	"log"
	"strings"
)

// CannedAnswer is a deterministic fallback keyed by keyword category. These
// exist so the pipeline never stalls for lack of an answer when the
// generative service is down or unconfigured.
type CannedAnswer struct {
	Triggers []string
	Answer   string
}

// DefaultCannedAnswers covers the interview-style questions that show up on
// most applications plus a generic closer for everything else.
func DefaultCannedAnswers() []CannedAnswer {
	return []CannedAnswer{
		{Triggers: []string{"strength"}, Answer: "I am a quick learner who takes ownership of problems end to end."},
		{Triggers: []string{"weakness"}, Answer: "I can be overly detail-oriented, so I timebox review work to stay on schedule."},
		{Triggers: []string{"experience", "background"}, Answer: "I have relevant hands-on experience in my field and have delivered comparable work in previous roles."},
		{Triggers: []string{"why", "company", "interested", "join"}, Answer: "I am excited about this opportunity and believe my skills align well with the position requirements."},
	}
}

const genericCannedAnswer = "I am excited about this opportunity and believe my skills align well with the position requirements."

// ResponseResolver turns a mapped question into a concrete answer string.
// Order: profile value verbatim, then the generative collaborator, then a
// canned answer. It never returns an empty string.
type ResponseResolver struct {
	generator GenerativeClient
	canned    []CannedAnswer
}

// NewResponseResolver builds a resolver. generator may be nil (offline
// mode); canned answers are fixed at construction and never mutated.
func NewResponseResolver(generator GenerativeClient, canned []CannedAnswer) *ResponseResolver {
	if canned == nil {
		canned = DefaultCannedAnswers()
	}
	return &ResponseResolver{generator: generator, canned: canned}
}

// Resolve answers one question. field is the canonical field the mapper
// chose; profile values win over everything else.
func (r *ResponseResolver) Resolve(questionLabel, field string, profile *ApplicantProfile) string {
	if value, ok := profile.FieldValue(field); ok && value != "" {
		return value
	}

	if r.generator != nil {
		answer, err := r.generator.Generate(BuildAnswerPrompt(profile, questionLabel))
		if err == nil && strings.TrimSpace(answer) != "" {
			return strings.TrimSpace(answer)
		}
		if err != nil {
			log.Printf("Generative answer unavailable for %q, using canned answer: %v", questionLabel, err)
		}
	}

	return r.cannedAnswer(questionLabel)
}

func (r *ResponseResolver) cannedAnswer(questionLabel string) string {
	q := strings.ToLower(questionLabel)
	for _, c := range r.canned {
		for _, trigger := range c.Triggers {
			if strings.Contains(q, trigger) {
				return c.Answer
			}
		}
	}
	return genericCannedAnswer
}
