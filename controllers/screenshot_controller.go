package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"instantapply/services"
	"instantapply/utils"
)

// ScreenshotController serves attempt screenshots. S3-backed keys get a
// presigned link; locally stored ones already resolve under /static.
type ScreenshotController struct {
	s3Service *services.S3Service
}

func NewScreenshotController() *ScreenshotController {
	s3Service, err := services.NewS3Service()
	if err != nil {
		// Without S3 every screenshot key is a /static path the router
		// already serves.
		return &ScreenshotController{}
	}
	return &ScreenshotController{s3Service: s3Service}
}

// GetScreenshot redirects to a one-hour presigned URL for the given key.
func (c *ScreenshotController) GetScreenshot(ctx *gin.Context) {
	key := strings.TrimPrefix(ctx.Param("key"), "/")
	if key == "" {
		utils.BadRequestError(ctx, "Screenshot key is required", nil)
		return
	}
	if !strings.HasPrefix(key, "screenshots/") {
		key = "screenshots/" + key
	}

	if c.s3Service == nil {
		ctx.Redirect(http.StatusFound, "/static/"+strings.TrimPrefix(key, "screenshots/"))
		return
	}

	presignedURL, err := c.s3Service.GeneratePresignedURL(key)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to generate screenshot URL", err)
		return
	}
	ctx.Redirect(http.StatusFound, presignedURL)
}
