package services

import (
	"log"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ResumeUploader attaches the résumé before general question filling: some
// trackers parse it and auto-populate other fields, so it has to go first.
type ResumeUploader struct {
	path   string
	settle time.Duration
}

func NewResumeUploader(path string, settle time.Duration) *ResumeUploader {
	return &ResumeUploader{path: path, settle: settle}
}

// fileInputSelectors are tried in order; the first hit gets the file.
var fileInputSelectors = []string{
	"input[type='file'][name*='resume']",
	"input[type='file'][name*='cv']",
	"input[type='file'][accept*='pdf']",
	"input[accept='.pdf,.doc,.docx']",
	"input[type='file']",
}

// autofillTriggerSelectors cover the "parse my resume" buttons trackers show
// after an upload.
var autofillTriggerSelectors = []string{
	"button:has-text('Autofill')",
	"button:has-text('Parse')",
	"button:has-text('Extract')",
	"button:has-text('Fill from resume')",
}

// Upload sets the résumé on the first matching file input and waits out any
// tracker-side autofill. Returns false when no path was configured, the
// file is missing on disk, or no input matched; all non-fatal.
func (u *ResumeUploader) Upload(page playwright.Page) bool {
	if u.path == "" {
		log.Printf("No resume path configured, skipping upload")
		return false
	}
	if _, err := os.Stat(u.path); err != nil {
		log.Printf("Resume file not found at %s: %v", u.path, err)
		return false
	}

	for _, selector := range fileInputSelectors {
		input := page.Locator(selector).First()
		count, err := input.Count()
		if err != nil || count == 0 {
			continue
		}

		if err := input.SetInputFiles(u.path); err != nil {
			log.Printf("File input %s found but could not set file: %v", selector, err)
			continue
		}
		log.Printf("Uploaded resume via %s", selector)

		// Give the tracker time to parse and autofill.
		page.WaitForTimeout(float64(u.settle.Milliseconds()))

		for _, trigger := range autofillTriggerSelectors {
			button := page.Locator(trigger).First()
			if visible, _ := button.IsVisible(); visible {
				if err := button.Click(); err == nil {
					log.Printf("Clicked autofill trigger: %s", trigger)
					page.WaitForTimeout(float64(u.settle.Milliseconds()))
				}
				break
			}
		}
		return true
	}

	log.Printf("No file input element found for resume upload")
	return false
}
