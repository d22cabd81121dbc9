package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"instantapply/config"
)

// AttemptState tracks the pipeline's progress through one application.
type AttemptState string

const (
	StateInit                AttemptState = "init"
	StateSessionAcquired     AttemptState = "session_acquired"
	StateNavigated           AttemptState = "navigated"
	StateClassified          AttemptState = "classified"
	StateResumeHandled       AttemptState = "resume_handled"
	StateIdentityFilled      AttemptState = "identity_filled"
	StateQuestionsFilled     AttemptState = "questions_filled"
	StateCompletionEvaluated AttemptState = "completion_evaluated"
	StateSubmitted           AttemptState = "submitted"
	StateNotSubmitted        AttemptState = "not_submitted"
	StateReleased            AttemptState = "released"
)

// Outcome is the terminal classification of an attempt.
type Outcome string

const (
	OutcomeCompleted          Outcome = "completed"
	OutcomePartiallyCompleted Outcome = "partially_completed"
	OutcomeFailed             Outcome = "failed"
)

// CompletionReport is the one thing an attempt hands back. Partial failures
// live here as data; they are never raised as errors.
type CompletionReport struct {
	AttemptID            string       `json:"attempt_id"`
	JobURL               string       `json:"job_url"`
	Engine               string       `json:"engine,omitempty"`
	Variant              ATSVariant   `json:"ats_variant"`
	State                AttemptState `json:"state"`
	Outcome              Outcome      `json:"outcome"`
	ResumeUploaded       bool         `json:"resume_uploaded"`
	IdentityFieldsFilled bool         `json:"identity_fields_filled"`
	TotalQuestions       int          `json:"total_questions"`
	QuestionsFilled      int          `json:"questions_filled"`
	FailedLabels         []string     `json:"failed_labels,omitempty"`
	Submitted            bool         `json:"submitted"`
	ScreenshotKey        string       `json:"screenshot_key,omitempty"`
	StartedAt            time.Time    `json:"started_at"`
	FinishedAt           time.Time    `json:"finished_at"`
}

// Orchestrator sequences one application attempt end to end. Each attempt
// owns exactly one session and page; the only shared state across attempts
// is the read-only rule tables inside the mapper and resolver.
type Orchestrator struct {
	cfg         config.AutomationConfig
	sessions    *SessionManager
	navigator   *Navigator
	mapper      *FieldMapper
	resolver    *ResponseResolver
	extractor   *QuestionExtractor
	identity    *IdentityFiller
	submitter   *SubmissionService
	screenshots *ScreenshotService
}

func NewOrchestrator(cfg config.AutomationConfig, generator GenerativeClient) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		sessions:    NewSessionManager(cfg),
		navigator:   NewNavigator(cfg.NavigationRetries, cfg.NavigationTimeout, cfg.NetworkIdleWait, cfg.SettleDelay),
		mapper:      NewFieldMapper(DefaultMappingRules()),
		resolver:    NewResponseResolver(generator, DefaultCannedAnswers()),
		extractor:   NewQuestionExtractor(),
		identity:    NewIdentityFiller(),
		submitter:   NewSubmissionService(cfg.SettleDelay),
		screenshots: NewScreenshotService(),
	}
}

// RunAttempt drives the state machine for one profile/URL pair. Only two
// failures are fatal: no engine and navigation exhaustion. Everything else
// is recorded on the report and the machine advances anyway.
func (o *Orchestrator) RunAttempt(ctx context.Context, profile *ApplicantProfile, jobURL string) *CompletionReport {
	report := &CompletionReport{
		AttemptID: uuid.NewString(),
		JobURL:    jobURL,
		Variant:   ATSGeneric,
		State:     StateInit,
		Outcome:   OutcomeFailed,
		StartedAt: time.Now(),
	}
	defer func() { report.FinishedAt = time.Now() }()

	log.Printf("[%s] Starting application attempt for %s", report.AttemptID, jobURL)

	session, err := o.sessions.Acquire()
	if err != nil {
		log.Printf("[%s] Fatal: %v", report.AttemptID, err)
		return report
	}
	// Release on every exit path, including panics and cancellation.
	defer func() {
		o.sessions.Release(session)
		report.State = StateReleased
	}()
	report.State = StateSessionAcquired
	report.Engine = session.Engine

	page := session.Page

	if !o.navigator.Navigate(page, jobURL) {
		log.Printf("[%s] Fatal: navigation exhausted", report.AttemptID)
		return report
	}
	report.State = StateNavigated

	if o.cfg.TestMode {
		EnableTestMode(page)
	}

	if ctx.Err() != nil {
		return report
	}

	classifier := NewATSClassifier(profile, o.cfg.SettleDelay)
	variant, formDetected := classifier.Classify(page)
	report.Variant = variant
	report.State = StateClassified

	// Pre-steps may have navigated; re-arm the guard on the new document.
	if o.cfg.TestMode {
		EnableTestMode(page)
	}

	if !formDetected {
		log.Printf("[%s] No application form detected, skipping filling phase", report.AttemptID)
		report.ScreenshotKey, _ = o.screenshots.Capture(page, report.AttemptID, "no_form")
		return report
	}

	uploader := NewResumeUploader(profile.ResumeFilePath, o.cfg.SettleDelay)
	report.ResumeUploaded = uploader.Upload(page)
	report.State = StateResumeHandled

	report.IdentityFieldsFilled = o.identity.FillIdentityFields(page, profile) > 0
	report.State = StateIdentityFilled

	questions := o.extractor.Extract(page)
	report.TotalQuestions = len(questions)

	filler := NewFieldFiller(o.cfg.FillRetries, o.cfg.FillBackoff, uploader)
	for _, question := range questions {
		if ctx.Err() != nil {
			log.Printf("[%s] Attempt cancelled mid-fill", report.AttemptID)
			return report
		}
		field := o.mapper.Map(question.Label)
		answer := o.resolver.Resolve(question.Label, field, profile)
		outcome := filler.Fill(page, question, answer)
		if outcome.Success {
			report.QuestionsFilled++
		} else {
			report.FailedLabels = append(report.FailedLabels, question.Label)
		}
	}
	report.State = StateQuestionsFilled

	o.submitter.ReviewFormEntries(page)

	report.ScreenshotKey, _ = o.screenshots.Capture(page, report.AttemptID, "evaluated")
	report.State = StateCompletionEvaluated

	sufficient := sufficientlyFilled(report.ResumeUploaded, report.IdentityFieldsFilled,
		report.QuestionsFilled, report.TotalQuestions)

	if sufficient {
		o.submitter.AdvanceOrSubmit(page)
		if !o.cfg.TestMode && o.submitter.CheckForSuccess(page) {
			report.Submitted = true
		}
	}
	if report.Submitted {
		report.State = StateSubmitted
	} else {
		report.State = StateNotSubmitted
	}

	report.Outcome = classifyOutcome(report, sufficient)
	log.Printf("[%s] Attempt finished: outcome=%s filled=%d/%d resume=%t submitted=%t",
		report.AttemptID, report.Outcome, report.QuestionsFilled, report.TotalQuestions,
		report.ResumeUploaded, report.Submitted)
	return report
}

// sufficientlyFilled is the completion threshold: an attempt counts only if
// the résumé or identity path succeeded AND at least half the questions (or
// five of them) got answers.
func sufficientlyFilled(resumeUploaded, identityFilled bool, filled, total int) bool {
	if !resumeUploaded && !identityFilled {
		return false
	}
	denominator := total
	if denominator < 1 {
		denominator = 1
	}
	rate := float64(filled) / float64(denominator)
	return rate >= 0.5 || filled >= 5
}

func classifyOutcome(report *CompletionReport, sufficient bool) Outcome {
	switch {
	case sufficient && len(report.FailedLabels) == 0:
		return OutcomeCompleted
	case report.ResumeUploaded || report.IdentityFieldsFilled || report.QuestionsFilled > 0:
		return OutcomePartiallyCompleted
	default:
		return OutcomeFailed
	}
}
