package services

import "github.com/playwright-community/playwright-go"

// ControlKind is the input type a question's control dispatches on.
type ControlKind string

const (
	ControlText       ControlKind = "text"
	ControlTextarea   ControlKind = "textarea"
	ControlSelect     ControlKind = "select"
	ControlRadioGroup ControlKind = "radio-group"
	ControlCheckbox   ControlKind = "checkbox"
	ControlDate       ControlKind = "date"
	ControlFile       ControlKind = "file"
)

// Question is one fillable control found on a page scan. Questions are built
// fresh per scan and discarded with the attempt; the Control locator is only
// valid while the page that produced it is open.
type Question struct {
	Label   string
	Kind    ControlKind
	Control playwright.Locator
	Options []string
}

// FillOutcome records how filling one question went.
type FillOutcome struct {
	Success bool
	Retries int
}
