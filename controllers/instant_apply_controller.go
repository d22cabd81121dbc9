package controllers

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"instantapply/models"
	"instantapply/services"
	"instantapply/utils"
)

// InstantApplyController exposes the automation pipeline over HTTP. One
// request may carry several job URLs; attempts run sequentially so a single
// user never holds more than one browser at a time.
type InstantApplyController struct {
	profileModel *models.UserProfileModel
	attemptModel *models.ApplicationAttemptModel
	orchestrator *services.Orchestrator
	logger       *utils.Logger
}

func NewInstantApplyController(profileModel *models.UserProfileModel, attemptModel *models.ApplicationAttemptModel, orchestrator *services.Orchestrator) *InstantApplyController {
	return &InstantApplyController{
		profileModel: profileModel,
		attemptModel: attemptModel,
		orchestrator: orchestrator,
		logger:       utils.NewLogger("instant_apply"),
	}
}

type instantApplyRequest struct {
	UserID  int      `json:"user_id" binding:"required"`
	JobURLs []string `json:"job_urls" binding:"required,min=1"`
}

// InstantApply runs the full pipeline for each job URL and returns the
// completion reports. A job that cannot be filled still produces a report;
// the only request-level failures are bad input and a missing profile.
func (c *InstantApplyController) InstantApply(ctx *gin.Context) {
	var req instantApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "user_id and at least one job URL are required", err)
		return
	}
	if len(req.JobURLs) > 20 {
		utils.BadRequestError(ctx, "At most 20 job URLs per request", nil)
		return
	}

	row, err := c.profileModel.GetByUserID(req.UserID)
	if err == sql.ErrNoRows {
		utils.NotFoundError(ctx, "No profile found for user")
		return
	}
	if err != nil {
		c.logger.Error("Failed to load user profile", err, gin.H{"user_id": req.UserID})
		utils.InternalServerError(ctx, "Failed to load user profile", err)
		return
	}

	profile := applicantProfileFromRow(row)
	c.logger.Info("Starting instant apply batch", gin.H{
		"user_id": req.UserID,
		"jobs":    len(req.JobURLs),
	})

	reports := make([]*services.CompletionReport, 0, len(req.JobURLs))
	for _, jobURL := range req.JobURLs {
		report := c.orchestrator.RunAttempt(context.Background(), profile, jobURL)
		reports = append(reports, report)

		if err := c.attemptModel.Insert(attemptFromReport(req.UserID, report)); err != nil {
			// Persistence problems must not lose the caller's reports.
			c.logger.Error("Failed to persist attempt", err, gin.H{"attempt_id": report.AttemptID})
		}
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Instant apply batch finished", gin.H{
		"reports": reports,
	})
}

// ListAttempts returns a user's recent attempts, newest first.
func (c *InstantApplyController) ListAttempts(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		utils.BadRequestError(ctx, "Invalid user ID", err)
		return
	}

	limit := 50
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	attempts, err := c.attemptModel.ListByUserID(userID, limit)
	if err != nil {
		c.logger.Error("Failed to list attempts", err, gin.H{"user_id": userID})
		utils.InternalServerError(ctx, "Failed to list attempts", err)
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Attempts fetched", gin.H{
		"attempts": attempts,
	})
}

// applicantProfileFromRow converts the persisted row into the pipeline's
// immutable profile view, decoding the JSON-array columns.
func applicantProfileFromRow(row *models.UserProfile) *services.ApplicantProfile {
	links := models.StringList(row.PortfolioLinks)
	linkedIn := ""
	for _, link := range links {
		if strings.Contains(strings.ToLower(link), "linkedin.com") {
			linkedIn = link
			break
		}
	}
	return &services.ApplicantProfile{
		Name:               row.FullName,
		Email:              row.Email,
		Phone:              row.Phone,
		Summary:            row.ProfessionalSummary,
		Experience:         row.Experience,
		CareerGoals:        row.CareerGoals,
		BiggestAchievement: row.BiggestAchievement,
		WorkStyle:          row.WorkStyle,
		Skills:             models.StringList(row.Skills),
		Certifications:     models.StringList(row.Certifications),
		Languages:          models.StringList(row.Languages),
		PortfolioLinks:     links,
		NeedsSponsorship:   row.NeedsSponsorship,
		WillingToRelocate:  row.WillingToRelocate,
		AvailableStartDate: row.AvailableStartDate,
		ResumeFilePath:     row.ResumeFilePath,
		LinkedIn:           linkedIn,
	}
}

func attemptFromReport(userID int, report *services.CompletionReport) *models.ApplicationAttempt {
	return &models.ApplicationAttempt{
		AttemptID:            report.AttemptID,
		UserID:               userID,
		JobURL:               report.JobURL,
		ATSVariant:           string(report.Variant),
		State:                string(report.State),
		ResumeUploaded:       report.ResumeUploaded,
		IdentityFieldsFilled: report.IdentityFieldsFilled,
		TotalQuestions:       report.TotalQuestions,
		QuestionsFilled:      report.QuestionsFilled,
		FailedLabels:         report.FailedLabels,
		Submitted:            report.Submitted,
		ScreenshotKey:        report.ScreenshotKey,
		StartedAt:            report.StartedAt,
		FinishedAt:           report.FinishedAt,
	}
}
