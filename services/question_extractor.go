package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// controlCandidate is the raw per-control data the page scan returns. Label
// derivation happens on the Go side so it stays unit-testable.
type controlCandidate struct {
	Index        int      `json:"index"`
	Tag          string   `json:"tag"`
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	ID           string   `json:"id"`
	Placeholder  string   `json:"placeholder"`
	LabelText    string   `json:"labelText"`
	AncestorText string   `json:"ancestorText"`
	Options      []string `json:"options"`
	RadioValue   string   `json:"radioValue"`
	RadioLabel   string   `json:"radioLabel"`
}

// scanScript stamps every visible fillable control with a data-iq-field
// index and reports its labeling candidates. The stamp is what lets the Go
// side address each control again without re-running heuristics.
const scanScript = `() => {
	const controls = Array.from(document.querySelectorAll('input, textarea, select'));
	const visible = el => {
		const style = window.getComputedStyle(el);
		const rect = el.getBoundingClientRect();
		return style.display !== 'none' && style.visibility !== 'hidden' && rect.width > 0 && rect.height > 0;
	};
	const results = [];
	let index = 0;
	for (const el of controls) {
		const type = (el.getAttribute('type') || '').toLowerCase();
		if (el.tagName === 'INPUT' && ['hidden', 'submit', 'button', 'image', 'reset'].includes(type)) continue;
		if (!visible(el)) continue;

		el.setAttribute('data-iq-field', String(index));

		let labelText = '';
		if (el.id) {
			const label = document.querySelector('label[for="' + el.id + '"]');
			if (label) labelText = label.textContent.trim();
		}
		if (!labelText) {
			const parentLabel = el.closest('label');
			if (parentLabel) labelText = parentLabel.textContent.trim();
		}

		let ancestorText = '';
		let parent = el.parentElement;
		for (let i = 0; i < 3 && parent; i++) {
			const clone = parent.cloneNode(true);
			clone.querySelectorAll('input, textarea, select, option, button').forEach(n => n.remove());
			const text = clone.textContent.trim().replace(/\s+/g, ' ');
			if (text && text.length < 160) { ancestorText = text; break; }
			parent = parent.parentElement;
		}

		const options = el.tagName === 'SELECT'
			? Array.from(el.options).map(o => o.textContent.trim()).filter(t => t)
			: [];

		let radioValue = '', radioLabel = '';
		if (type === 'radio' || type === 'checkbox') {
			radioValue = el.getAttribute('value') || '';
			radioLabel = labelText;
		}

		results.push({
			index, tag: el.tagName.toLowerCase(), type,
			name: el.getAttribute('name') || '',
			id: el.id || '',
			placeholder: el.getAttribute('placeholder') || '',
			labelText, ancestorText, options, radioValue, radioLabel,
		});
		index++;
	}
	return results;
}`

// QuestionExtractor scans a rendered page for fillable controls and derives
// a label for each one.
type QuestionExtractor struct{}

func NewQuestionExtractor() *QuestionExtractor {
	return &QuestionExtractor{}
}

// Extract enumerates visible controls and turns them into labeled questions.
// Identity and résumé controls are excluded here because the résumé-priority
// and identity paths fill those separately. Radios sharing a name collapse
// into one radio-group question. Zero labeled questions means an empty
// slice; questions are never fabricated against a real page.
func (e *QuestionExtractor) Extract(page playwright.Page) []Question {
	raw, err := page.Evaluate(scanScript)
	if err != nil {
		log.Printf("Page scan failed: %v", err)
		return nil
	}

	candidates, err := decodeCandidates(raw)
	if err != nil {
		log.Printf("Could not decode page scan results: %v", err)
		return nil
	}
	log.Printf("Page scan found %d visible controls", len(candidates))

	var questions []Question
	radioGroups := make(map[string]int)

	for _, cand := range candidates {
		if isIdentityControl(cand.Name, cand.ID, cand.Placeholder, cand.Type) {
			continue
		}

		label := deriveLabel(cand)
		if label == "" {
			continue
		}

		locator := page.Locator(fmt.Sprintf("[data-iq-field='%d']", cand.Index))

		if cand.Type == "radio" && cand.Name != "" {
			if i, ok := radioGroups[cand.Name]; ok {
				questions[i].Options = append(questions[i].Options, radioOption(cand))
				continue
			}
			questions = append(questions, Question{
				Label:   groupLabel(cand),
				Kind:    ControlRadioGroup,
				Control: page.Locator(fmt.Sprintf("input[type='radio'][name='%s']", escapeAttrValue(cand.Name))),
				Options: []string{radioOption(cand)},
			})
			radioGroups[cand.Name] = len(questions) - 1
			continue
		}

		questions = append(questions, Question{
			Label:   label,
			Kind:    classifyControl(cand.Tag, cand.Type, cand.Name),
			Control: locator,
			Options: cand.Options,
		})
	}

	log.Printf("Extracted %d labeled questions", len(questions))
	return questions
}

func decodeCandidates(raw interface{}) ([]controlCandidate, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var candidates []controlCandidate
	if err := json.Unmarshal(buf, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// identitySignals are the name/id/placeholder fragments that mark a control
// as belonging to the identity or résumé path rather than the question list.
var identitySignals = []string{
	"first_name", "firstname", "first name",
	"last_name", "lastname", "last name",
	"full_name", "fullname", "full name",
	"email", "e-mail", "phone", "mobile", "telephone",
	"resume", "cv", "cover_letter", "cover letter",
	"password", "linkedin",
}

func isIdentityControl(name, id, placeholder, inputType string) bool {
	switch inputType {
	case "email", "tel", "file", "password":
		return true
	}
	haystack := strings.ToLower(name + " " + id + " " + placeholder)
	if strings.TrimSpace(haystack) == "" {
		return false
	}
	for _, signal := range identitySignals {
		if strings.Contains(haystack, signal) {
			return true
		}
	}
	// A bare "name" field is the applicant's name, not a question.
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "name"
}

// deriveLabel applies the label precedence: bound label element, then
// ancestor text related to the field's name, then placeholder, then the
// humanized field name.
func deriveLabel(cand controlCandidate) string {
	if label := cleanLabel(cand.LabelText); label != "" {
		return label
	}
	if ancestor := cleanLabel(cand.AncestorText); ancestor != "" && ancestorRelated(ancestor, cand.Name) {
		return ancestor
	}
	if placeholder := cleanLabel(cand.Placeholder); placeholder != "" {
		return placeholder
	}
	return cleanLabel(humanizeFieldName(cand.Name))
}

// ancestorRelated decides whether nearby container text actually labels this
// control. With no field name to compare against, any short text block
// counts; otherwise a token of the humanized name must appear in it.
func ancestorRelated(ancestor, fieldName string) bool {
	if fieldName == "" {
		return true
	}
	tokens := strings.Fields(strings.ToLower(humanizeFieldName(fieldName)))
	lower := strings.ToLower(ancestor)
	for _, token := range tokens {
		if len(token) >= 3 && strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// humanizeFieldName turns machine names like "career_goals[0]" or
// "whyThisCompany" into readable text.
func humanizeFieldName(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '[' || r == ']' || r == '.':
			b.WriteRune(' ')
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteRune(' ')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z'
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// escapeAttrValue makes a raw attribute value safe inside a single-quoted
// CSS attribute selector.
func escapeAttrValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "'", `\'`)
}

// cleanLabel strips surrounding whitespace, trailing colons and the
// required-field asterisk.
func cleanLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.TrimRight(label, ":* \t\n")
	return strings.TrimSpace(label)
}

func classifyControl(tag, inputType, name string) ControlKind {
	switch tag {
	case "select":
		return ControlSelect
	case "textarea":
		return ControlTextarea
	}
	switch inputType {
	case "checkbox":
		return ControlCheckbox
	case "date":
		return ControlDate
	case "file":
		return ControlFile
	}
	if strings.Contains(strings.ToLower(name), "date") {
		return ControlDate
	}
	return ControlText
}

// groupLabel prefers the surrounding question text for a radio group over
// the first option's own label.
func groupLabel(cand controlCandidate) string {
	if ancestor := cleanLabel(cand.AncestorText); ancestor != "" {
		return ancestor
	}
	return deriveLabel(cand)
}

func radioOption(cand controlCandidate) string {
	if label := cleanLabel(cand.RadioLabel); label != "" {
		return label
	}
	return cand.RadioValue
}
