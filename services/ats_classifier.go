package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ATSVariant identifies the applicant tracking system hosting a page.
type ATSVariant string

const (
	ATSGreenhouse ATSVariant = "greenhouse"
	ATSLever      ATSVariant = "lever"
	ATSWorkday    ATSVariant = "workday"
	ATSAshby      ATSVariant = "ashby"
	ATSIndeed     ATSVariant = "indeed"
	ATSLinkedIn   ATSVariant = "linkedin"
	ATSGeneric    ATSVariant = "generic"
)

// atsDetector pairs a variant's signatures with its pre-steps. Detectors run
// in a fixed priority order; Generic is always last.
type atsDetector struct {
	variant        ATSVariant
	hostSignatures []string
	markupSelector string
	preSteps       func(c *ATSClassifier, page playwright.Page) error
}

// ATSClassifier recognizes the hosting form system and runs variant-specific
// pre-steps (open the form, dismiss consent walls, fill the identity stub on
// multi-step trackers). Pre-steps are best-effort: any error or panic inside
// one moves classification on to the next variant.
type ATSClassifier struct {
	profile   *ApplicantProfile
	settle    time.Duration
	detectors []atsDetector
}

func NewATSClassifier(profile *ApplicantProfile, settle time.Duration) *ATSClassifier {
	return &ATSClassifier{
		profile: profile,
		settle:  settle,
		detectors: []atsDetector{
			{
				variant:        ATSGreenhouse,
				hostSignatures: []string{"greenhouse.io", "boards.greenhouse"},
				markupSelector: "iframe#grnhse_iframe, div#grnhse_app",
				preSteps:       (*ATSClassifier).greenhousePreSteps,
			},
			{
				variant:        ATSLever,
				hostSignatures: []string{"lever.co", "jobs.lever"},
				markupSelector: "div.posting-page, a.postings-btn",
				preSteps:       (*ATSClassifier).leverPreSteps,
			},
			{
				variant:        ATSWorkday,
				hostSignatures: []string{"myworkdayjobs.com", "workday.com"},
				markupSelector: "[data-automation-id]",
				preSteps:       (*ATSClassifier).workdayPreSteps,
			},
			{
				variant:        ATSAshby,
				hostSignatures: []string{"ashbyhq.com", "jobs.ashby"},
				markupSelector: "[class*='ashby']",
				preSteps:       (*ATSClassifier).ashbyPreSteps,
			},
			{
				variant:        ATSIndeed,
				hostSignatures: []string{"indeed.com"},
				markupSelector: "#indeedApplyButton, .ia-IndeedApplyButton",
				preSteps:       (*ATSClassifier).indeedPreSteps,
			},
			{
				variant:        ATSLinkedIn,
				hostSignatures: []string{"linkedin.com"},
				markupSelector: "button[aria-label*='Easy Apply']",
				preSteps:       (*ATSClassifier).linkedInPreSteps,
			},
			{
				variant:        ATSGeneric,
				markupSelector: "form",
				preSteps:       (*ATSClassifier).genericPreSteps,
			},
		},
	}
}

// Classify returns the detected variant after running its pre-steps. The
// second return is false when no variant matched at all, including the
// Generic form check; the caller then skips the filling phase entirely.
func (c *ATSClassifier) Classify(page playwright.Page) (ATSVariant, bool) {
	// Cookie walls and "Apply" interstitials hide the form from every
	// variant's markup check, so sweep them first.
	c.clickConsentAndApplyButtons(page)

	host := hostOf(page.URL())

	for _, detector := range c.detectors {
		if !c.matches(page, detector, host) {
			continue
		}
		log.Printf("ATS signature matched: %s", detector.variant)
		if err := c.runPreSteps(detector, page); err != nil {
			log.Printf("Pre-steps for %s failed, trying next variant: %v", detector.variant, err)
			continue
		}
		return detector.variant, true
	}

	log.Printf("No ATS variant matched for host %s; no form detected", host)
	return ATSGeneric, false
}

func (c *ATSClassifier) matches(page playwright.Page, detector atsDetector, host string) bool {
	for _, sig := range detector.hostSignatures {
		if strings.Contains(host, sig) {
			return true
		}
	}
	if detector.markupSelector != "" {
		if count, err := page.Locator(detector.markupSelector).Count(); err == nil && count > 0 {
			return true
		}
	}
	return false
}

func (c *ATSClassifier) runPreSteps(detector atsDetector, page playwright.Page) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pre-step panic: %v", r)
		}
	}()
	if detector.preSteps == nil {
		return nil
	}
	return detector.preSteps(c, page)
}

// variantForHost is the pure host-signature half of classification.
func variantForHost(host string) (ATSVariant, bool) {
	switch {
	case strings.Contains(host, "greenhouse.io") || strings.Contains(host, "boards.greenhouse"):
		return ATSGreenhouse, true
	case strings.Contains(host, "lever.co"):
		return ATSLever, true
	case strings.Contains(host, "myworkdayjobs.com") || strings.Contains(host, "workday.com"):
		return ATSWorkday, true
	case strings.Contains(host, "ashbyhq.com"):
		return ATSAshby, true
	case strings.Contains(host, "indeed.com"):
		return ATSIndeed, true
	case strings.Contains(host, "linkedin.com"):
		return ATSLinkedIn, true
	}
	return ATSGeneric, false
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

func (c *ATSClassifier) greenhousePreSteps(page playwright.Page) error {
	// Greenhouse boards keep the form below the posting; an Apply button
	// scrolls it into existence on some themes.
	c.clickFirstVisible(page, []string{
		"a#apply_button",
		"button:has-text('Apply for this job')",
		"a:has-text('Apply Now')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))
	return nil
}

func (c *ATSClassifier) leverPreSteps(page playwright.Page) error {
	c.clickFirstVisible(page, []string{
		"a.postings-btn",
		"a:has-text('Apply for this job')",
		"button:has-text('Apply for this job')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))
	return nil
}

// workdayPreSteps opens the application and walks past the identity stub:
// Workday gates its question pages behind name/email before showing anything
// else.
func (c *ATSClassifier) workdayPreSteps(page playwright.Page) error {
	c.clickFirstVisible(page, []string{
		"a[data-automation-id='adventureButton']",
		"button:has-text('Apply')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))

	c.clickFirstVisible(page, []string{
		"a[data-automation-id='applyManually']",
		"button:has-text('Apply Manually')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))

	c.fillIdentityStub(page)

	c.clickFirstVisible(page, []string{
		"button[data-automation-id='bottom-navigation-next-button']",
		"button:has-text('Next')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))
	return nil
}

func (c *ATSClassifier) ashbyPreSteps(page playwright.Page) error {
	c.clickFirstVisible(page, []string{
		"button:has-text('Apply for this Job')",
		"a:has-text('Apply for this Job')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))
	return nil
}

func (c *ATSClassifier) indeedPreSteps(page playwright.Page) error {
	c.clickFirstVisible(page, []string{
		"#indeedApplyButton",
		".ia-IndeedApplyButton",
		"button:has-text('Apply now')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))
	return nil
}

func (c *ATSClassifier) linkedInPreSteps(page playwright.Page) error {
	c.clickFirstVisible(page, []string{
		"button[aria-label*='Easy Apply']",
		"button:has-text('Easy Apply')",
	})
	page.WaitForTimeout(float64(c.settle.Milliseconds()))
	return nil
}

func (c *ATSClassifier) genericPreSteps(page playwright.Page) error {
	count, err := page.Locator("form").Count()
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no form element present")
	}
	return nil
}

// fillIdentityStub types name/email/phone into whatever identity inputs the
// current step shows. Best-effort; missing fields are simply skipped.
func (c *ATSClassifier) fillIdentityStub(page playwright.Page) {
	first, last := splitName(c.profile.Name)
	stub := []struct {
		selectors []string
		value     string
	}{
		{[]string{"input[name*='firstName']", "input[data-automation-id='legalNameSection_firstName']", "input[name*='first_name']"}, first},
		{[]string{"input[name*='lastName']", "input[data-automation-id='legalNameSection_lastName']", "input[name*='last_name']"}, last},
		{[]string{"input[type='email']", "input[name*='email']"}, c.profile.Email},
		{[]string{"input[type='tel']", "input[name*='phone']"}, c.profile.Phone},
	}
	for _, field := range stub {
		if field.value == "" {
			continue
		}
		for _, selector := range field.selectors {
			element := page.Locator(selector).First()
			if visible, _ := element.IsVisible(); visible {
				if err := element.Fill(field.value); err == nil {
					break
				}
			}
		}
	}
}

// clickConsentAndApplyButtons sweeps cookie banners, consent walls and
// pre-form Apply buttons, including ones living inside iframes.
func (c *ATSClassifier) clickConsentAndApplyButtons(page playwright.Page) {
	selectors := []string{
		"button:has-text('Accept all')",
		"button:has-text('Accept cookies')",
		"button:has-text('Accept and continue')",
		"button:has-text('I accept')",
		"button:has-text('I Agree')",
		"button:has-text('Accept')",
		"a:has-text('Accept')",
	}
	for _, selector := range selectors {
		element := page.Locator(selector).First()
		if visible, _ := element.IsVisible(); visible {
			if err := element.Click(); err == nil {
				log.Printf("Clicked consent button: %s", selector)
				page.WaitForTimeout(500)
				break
			}
		}
	}

	for _, frame := range page.Frames() {
		if frame == page.MainFrame() {
			continue
		}
		for _, selector := range selectors {
			element := frame.Locator(selector).First()
			if visible, _ := element.IsVisible(); visible {
				if err := element.Click(); err == nil {
					log.Printf("Clicked consent button inside iframe: %s", selector)
					break
				}
			}
		}
	}
}

func (c *ATSClassifier) clickFirstVisible(page playwright.Page, selectors []string) bool {
	for _, selector := range selectors {
		element := page.Locator(selector).First()
		if visible, _ := element.IsVisible(); visible {
			if err := element.ScrollIntoViewIfNeeded(); err == nil {
				if err := element.Click(); err == nil {
					log.Printf("Clicked: %s", selector)
					return true
				}
			}
		}
	}
	return false
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
