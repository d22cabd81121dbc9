package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotService captures full-page evidence of how far an attempt got.
// Uploads go to S3 when AWS is configured; otherwise files land under
// ./static so the report key still points at something retrievable.
type ScreenshotService struct {
	S3Service *S3Service
	LocalDir  string
}

func NewScreenshotService() *ScreenshotService {
	s3Service, err := NewS3Service()
	if err != nil {
		log.Printf("Warning: S3 service not initialized, screenshots stay local: %v", err)
		s3Service = nil
	}
	return &ScreenshotService{
		S3Service: s3Service,
		LocalDir:  "./static",
	}
}

// Capture takes a full-page screenshot named after the attempt and stage.
// Entirely best-effort: an empty key and an error just mean no artifact.
func (s *ScreenshotService) Capture(page playwright.Page, attemptID, stage string) (string, error) {
	content, err := page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to take screenshot: %v", err)
	}

	filename := fmt.Sprintf("%s_%s.png", attemptID, stage)

	if s.S3Service != nil {
		key := fmt.Sprintf("screenshots/%s", filename)
		if _, err := s.S3Service.UploadBytes(content, key, "image/png"); err == nil {
			return key, nil
		} else {
			log.Printf("Screenshot upload failed, falling back to local storage: %v", err)
		}
	}

	if err := os.MkdirAll(s.LocalDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create screenshot dir: %v", err)
	}
	localPath := filepath.Join(s.LocalDir, filename)
	if err := os.WriteFile(localPath, content, 0o644); err != nil {
		return "", fmt.Errorf("could not save screenshot locally: %v", err)
	}
	log.Printf("Screenshot saved locally: %s", localPath)
	return fmt.Sprintf("/static/%s", filename), nil
}
