package services

import (
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// IdentityFiller writes the applicant's contact block. These controls are
// excluded from question extraction, so this is the only place they get
// touched.
type IdentityFiller struct{}

func NewIdentityFiller() *IdentityFiller {
	return &IdentityFiller{}
}

// FillIdentityFields fills name, email, phone and link fields from the
// profile and reports how many controls it filled.
func (s *IdentityFiller) FillIdentityFields(page playwright.Page, profile *ApplicantProfile) int {
	first, last := splitName(profile.Name)
	filledCount := 0

	groups := []struct {
		selectors []string
		value     string
	}{
		{[]string{
			"input[name='first_name']",
			"input[name='firstName']",
			"input[id='first_name']",
			"input[placeholder*='First']",
			"input[aria-label*='First Name']",
		}, first},
		{[]string{
			"input[name='last_name']",
			"input[name='lastName']",
			"input[id='last_name']",
			"input[placeholder*='Last']",
			"input[aria-label*='Last Name']",
		}, last},
		{[]string{
			"input[name='full_name']",
			"input[name='fullName']",
			"input[name='name']",
			"input[placeholder*='Full Name']",
			"input[placeholder*='Your Name']",
		}, profile.Name},
		{[]string{
			"input[type='email']",
			"input[name='email']",
			"input[name='email_address']",
			"input[id='email']",
			"input[placeholder*='Email']",
			"input[aria-label*='Email']",
		}, profile.Email},
		{[]string{
			"input[type='tel']",
			"input[name='phone']",
			"input[name='phone_number']",
			"input[id='phone']",
			"input[placeholder*='Phone']",
			"input[aria-label*='Phone']",
		}, profile.Phone},
		{[]string{
			"input[name='linkedin']",
			"input[name*='linkedin']",
			"input[placeholder*='LinkedIn']",
			"input[aria-label*='LinkedIn']",
		}, profile.LinkedIn},
		{[]string{
			"input[name*='portfolio']",
			"input[name*='website']",
			"input[placeholder*='Portfolio']",
			"input[placeholder*='Website']",
		}, firstOrEmpty(profile.PortfolioLinks)},
	}

	for _, group := range groups {
		for _, selector := range group.selectors {
			if s.tryFillField(page, selector, group.value) {
				filledCount++
				break
			}
		}
	}

	log.Printf("Filled %d identity fields", filledCount)
	return filledCount
}

func (s *IdentityFiller) tryFillField(page playwright.Page, selector, value string) bool {
	if value == "" {
		return false
	}

	element := page.Locator(selector).First()
	if visible, _ := element.IsVisible(); !visible {
		return false
	}

	// Leave prefilled values alone; the resume autofill may have been here.
	if current, err := element.InputValue(); err == nil && strings.TrimSpace(current) != "" {
		return false
	}

	if err := element.Fill(value); err != nil {
		return false
	}
	log.Printf("Filled identity field with selector '%s'", selector)
	return true
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
