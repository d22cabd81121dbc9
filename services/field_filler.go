package services

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// FieldFiller writes answers into controls, dispatching on control kind.
// Every strategy runs under a bounded retry with growing backoff; a control
// that still fails is reported in the outcome, never surfaced as an error.
type FieldFiller struct {
	maxAttempts int
	backoff     time.Duration
	uploader    *ResumeUploader
}

func NewFieldFiller(maxAttempts int, backoff time.Duration, uploader *ResumeUploader) *FieldFiller {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &FieldFiller{maxAttempts: maxAttempts, backoff: backoff, uploader: uploader}
}

// Fill writes answer into the question's control. Retries is how many extra
// attempts were needed; Success=false means the bound was exhausted.
func (f *FieldFiller) Fill(page playwright.Page, question Question, answer string) FillOutcome {
	attempts := 0
	err := withRetry(f.maxAttempts, f.backoff, func() error {
		attempts++
		return f.fillOnce(page, question, answer)
	})
	if err != nil {
		log.Printf("Failed to fill %q after %d attempts: %v", question.Label, attempts, err)
	} else {
		f.highlight(question.Control)
	}
	return FillOutcome{Success: err == nil, Retries: attempts - 1}
}

// highlight marks a freshly filled control so screenshots show what the
// pipeline touched. Best effort.
func (f *FieldFiller) highlight(control playwright.Locator) {
	if _, err := control.Evaluate("el => { el.style.outline = '2px solid #4caf50'; }", nil); err != nil {
		log.Printf("Could not highlight filled control: %v", err)
	}
}

func (f *FieldFiller) fillOnce(page playwright.Page, question Question, answer string) error {
	switch question.Kind {
	case ControlText, ControlTextarea:
		return f.fillText(question.Control, answer)
	case ControlSelect:
		return f.fillSelect(question.Control, answer)
	case ControlRadioGroup:
		return f.fillRadioGroup(question.Control, answer)
	case ControlCheckbox:
		return f.fillCheckbox(question.Control, answer)
	case ControlDate:
		return f.fillDate(page, question.Control, answer)
	case ControlFile:
		if f.uploader != nil && f.uploader.Upload(page) {
			return nil
		}
		return fmt.Errorf("file control could not be satisfied")
	}
	return fmt.Errorf("unsupported control kind %q", question.Kind)
}

// fillText scrolls, focuses, clears any existing value, types the answer
// and tabs away so the page's validation fires.
func (f *FieldFiller) fillText(control playwright.Locator, answer string) error {
	if err := control.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	if err := control.Focus(); err != nil {
		return fmt.Errorf("focus failed: %w", err)
	}
	if current, err := control.InputValue(); err == nil && current != "" {
		if err := control.Clear(); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
	}
	if err := control.Fill(answer); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	if err := control.Press("Tab"); err != nil {
		log.Printf("Could not tab away from field: %v", err)
	}
	return nil
}

// fillSelect tries option label, then value, then the first real option.
func (f *FieldFiller) fillSelect(control playwright.Locator, answer string) error {
	if _, err := control.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{answer},
	}); err == nil {
		return nil
	}
	if _, err := control.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{answer},
	}); err == nil {
		return nil
	}
	if _, err := control.SelectOption(playwright.SelectOptionValues{
		Indexes: &[]int{0},
	}); err != nil {
		return fmt.Errorf("no selectable option: %w", err)
	}
	log.Printf("Selected first option as fallback")
	return nil
}

// fillRadioGroup checks the option whose value or bound label matches the
// answer case-insensitively, defaulting to the first option in the group.
func (f *FieldFiller) fillRadioGroup(group playwright.Locator, answer string) error {
	radios, err := group.All()
	if err != nil {
		return fmt.Errorf("could not enumerate radio group: %w", err)
	}
	if len(radios) == 0 {
		return fmt.Errorf("radio group is empty")
	}

	want := strings.ToLower(strings.TrimSpace(answer))
	for _, radio := range radios {
		value, _ := radio.GetAttribute("value")
		labelText, _ := radio.Evaluate(`el => {
			if (el.id) {
				const label = document.querySelector('label[for="' + el.id + '"]');
				if (label) return label.textContent.trim();
			}
			const parent = el.closest('label');
			return parent ? parent.textContent.trim() : '';
		}`, nil)
		label := ""
		if s, ok := labelText.(string); ok {
			label = s
		}
		if strings.EqualFold(strings.TrimSpace(value), want) || strings.EqualFold(strings.TrimSpace(label), want) ||
			(want != "" && strings.Contains(strings.ToLower(label), want)) {
			return radio.Check()
		}
	}

	// No option matched the answer; the first one is the safe default.
	return radios[0].Check()
}

func (f *FieldFiller) fillCheckbox(control playwright.Locator, answer string) error {
	if isAffirmative(answer) {
		return control.Check()
	}
	return control.Uncheck()
}

// fillDate tries the ISO string directly, then any date-capable inputs
// nested in the nearest container, then a calendar widget.
func (f *FieldFiller) fillDate(page playwright.Page, control playwright.Locator, answer string) error {
	iso := extractISODate(answer)
	if iso == "" {
		iso = answer
	}

	if err := control.Fill(iso); err == nil {
		return nil
	}

	// Custom widgets usually wrap real inputs a level or two up.
	filled, err := control.Evaluate(`(el, value) => {
		let parent = el.parentElement;
		for (let i = 0; i < 3 && parent; i++) {
			const inputs = parent.querySelectorAll('input:not([type="hidden"]), [contenteditable="true"]');
			for (const input of inputs) {
				try {
					input.value = value;
					input.dispatchEvent(new Event('input', { bubbles: true }));
					input.dispatchEvent(new Event('change', { bubbles: true }));
					return true;
				} catch (e) { /* try the next one */ }
			}
			parent = parent.parentElement;
		}
		return false;
	}`, iso)
	if err == nil {
		if ok, isBool := filled.(bool); isBool && ok {
			return nil
		}
	}

	return f.fillCalendarWidget(page, control, iso)
}

// fillCalendarWidget opens the picker and navigates to the target day,
// falling back to any clickable, non-disabled cell.
func (f *FieldFiller) fillCalendarWidget(page playwright.Page, control playwright.Locator, iso string) error {
	if err := control.Click(); err != nil {
		return fmt.Errorf("could not open date widget: %w", err)
	}
	page.WaitForTimeout(500)

	year, monthName, day := splitISODate(iso)
	if day != "" {
		monthOption := page.Locator(fmt.Sprintf("option:has-text('%s'), div:has-text('%s %s')", monthName, monthName, year)).First()
		if visible, _ := monthOption.IsVisible(); visible {
			if err := monthOption.Click(); err == nil {
				page.WaitForTimeout(300)
			}
		}
		dayCell := page.Locator(fmt.Sprintf("td:text-is('%s'), [role='gridcell']:text-is('%s')", day, day)).First()
		if visible, _ := dayCell.IsVisible(); visible {
			if err := dayCell.Click(); err == nil {
				return nil
			}
		}
	}

	cells, err := page.Locator(".calendar-day, .day, [role='gridcell']").All()
	if err != nil {
		return fmt.Errorf("no calendar cells found: %w", err)
	}
	for _, cell := range cells {
		visible, _ := cell.IsVisible()
		disabled, _ := cell.GetAttribute("disabled")
		ariaDisabled, _ := cell.GetAttribute("aria-disabled")
		if visible && disabled == "" && ariaDisabled != "true" {
			if err := cell.Click(); err == nil {
				log.Printf("Selected a fallback day cell in date widget")
				return nil
			}
		}
	}
	return fmt.Errorf("date widget had no selectable day")
}

var affirmativeTokens = map[string]bool{
	"yes": true, "true": true, "1": true, "on": true,
}

func isAffirmative(answer string) bool {
	return affirmativeTokens[strings.ToLower(strings.TrimSpace(answer))]
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

func extractISODate(s string) string {
	return isoDatePattern.FindString(s)
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// splitISODate breaks YYYY-MM-DD into year, month name and a day without
// leading zero. Non-ISO input yields empty strings.
func splitISODate(iso string) (year, monthName, day string) {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return "", "", ""
	}
	month := 0
	fmt.Sscanf(parts[1], "%d", &month)
	if month < 1 || month > 12 {
		return "", "", ""
	}
	day = strings.TrimPrefix(parts[2], "0")
	return parts[0], monthNames[month-1], day
}
