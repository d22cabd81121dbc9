package services

import (
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// SubmissionService advances multi-step forms and detects completed
// submissions. Under the test-mode guard submit controls are disabled, so
// clicking them there is a harmless no-op.
type SubmissionService struct {
	settle time.Duration
}

func NewSubmissionService(settle time.Duration) *SubmissionService {
	return &SubmissionService{settle: settle}
}

var advanceSelectors = []string{
	"button:has-text('Save and continue')",
	"button:has-text('Continue')",
	"button:has-text('Next')",
	"button:has-text('Review')",
	"button:has-text('Proceed')",
}

var submitSelectors = []string{
	"button:has-text('Submit application')",
	"button:has-text('Send application')",
	"button[type='submit']",
	"input[type='submit']",
	"button:has-text('Submit')",
	"button:has-text('Finish')",
	"button:has-text('Complete')",
}

// AdvanceOrSubmit clicks the next reachable advance control, then a
// terminal submit control. Only called once the attempt is sufficiently
// filled. Returns true if any control was clicked.
func (s *SubmissionService) AdvanceOrSubmit(page playwright.Page) bool {
	clicked := false
	for _, selector := range advanceSelectors {
		element := page.Locator(selector).First()
		if visible, _ := element.IsVisible(); visible {
			if enabled, _ := element.IsEnabled(); !enabled {
				continue
			}
			if err := element.Click(); err == nil {
				log.Printf("Clicked advance control: %s", selector)
				page.WaitForTimeout(float64(s.settle.Milliseconds()))
				clicked = true
				break
			}
		}
	}

	for _, selector := range submitSelectors {
		element := page.Locator(selector).First()
		if visible, _ := element.IsVisible(); visible {
			if enabled, _ := element.IsEnabled(); !enabled {
				log.Printf("Submit control %s is disabled, skipping", selector)
				continue
			}
			if err := element.Click(); err == nil {
				log.Printf("Clicked submit control: %s", selector)
				page.WaitForTimeout(float64(s.settle.Milliseconds()))
				return true
			}
		}
	}
	return clicked
}

var successSelectors = []string{
	"text=Thank you for your application",
	"text=Application submitted successfully",
	"text=Your application has been submitted",
	"text=Application received",
	"text=Thank you for applying",
	"text=We have received your application",
	"h1:has-text('Thank you')",
	"h2:has-text('Thank you')",
	"[class*='confirmation']",
	"[data-testid*='success']",
}

// CheckForSuccess looks for submission confirmation in the URL, title and
// page body.
func (s *SubmissionService) CheckForSuccess(page playwright.Page) bool {
	pageURL := page.URL()
	pageTitle, _ := page.Title()

	if containsSuccessKeyword(pageURL) {
		log.Printf("Found success keyword in URL: %s", pageURL)
		return true
	}
	if containsSuccessKeyword(pageTitle) {
		log.Printf("Found success keyword in title: %s", pageTitle)
		return true
	}

	for _, selector := range successSelectors {
		element := page.Locator(selector).First()
		if visible, _ := element.IsVisible(); visible {
			log.Printf("Found success indicator: %s", selector)
			return true
		}
	}
	return false
}

func containsSuccessKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, keyword := range []string{"thank", "success", "submitted", "confirmation", "received", "complete"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ReviewFormEntries logs what each filled control now contains. Debug aid,
// purely best-effort.
func (s *SubmissionService) ReviewFormEntries(page playwright.Page) {
	inputs, err := page.Locator("input:not([type='file']):not([type='hidden']), textarea").All()
	if err != nil {
		return
	}
	for _, input := range inputs {
		value, err := input.InputValue()
		if err != nil || value == "" {
			continue
		}
		name, _ := input.GetAttribute("name")
		if name == "" {
			name, _ = input.GetAttribute("id")
		}
		log.Printf("Field %q contains: %q", name, truncateForLog(value, 40))
	}
}

// truncateForLog shortens a value on rune boundaries so multi-byte text
// never gets split mid-character.
func truncateForLog(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
