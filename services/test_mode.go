package services

import (
	"log"

	"github.com/playwright-community/playwright-go"
)

// Test mode lets the whole pipeline run against real third-party pages
// without ever completing a submission: every submit control is disabled and
// overlaid, and a capture-phase listener stops any form submit that slips
// through. Toggled independently of the rest of the pipeline.

const enableTestModeScript = `() => {
	const buttons = document.querySelectorAll('button[type="submit"], input[type="submit"]');
	buttons.forEach(btn => {
		if (btn.dataset.iqTestMode) return;
		btn.dataset.iqTestMode = '1';
		btn.disabled = true;
		btn.style.border = '3px solid red';

		const overlay = document.createElement('div');
		overlay.className = 'iq-test-mode-overlay';
		overlay.innerText = 'TEST MODE - NO SUBMIT';
		overlay.style.position = 'absolute';
		overlay.style.inset = '0';
		overlay.style.backgroundColor = 'rgba(255, 0, 0, 0.7)';
		overlay.style.color = 'white';
		overlay.style.display = 'flex';
		overlay.style.alignItems = 'center';
		overlay.style.justifyContent = 'center';
		overlay.style.fontWeight = 'bold';
		overlay.style.zIndex = '9999';
		overlay.style.pointerEvents = 'none';

		if (btn.parentElement) {
			btn.parentElement.style.position = 'relative';
			btn.parentElement.appendChild(overlay);
		}
	});

	if (!window.__iqSubmitGuard) {
		window.__iqSubmitGuard = e => {
			console.log('Form submission prevented by test mode');
			e.preventDefault();
			e.stopPropagation();
			return false;
		};
		document.addEventListener('submit', window.__iqSubmitGuard, true);
	}
	return buttons.length;
}`

const disableTestModeScript = `() => {
	document.querySelectorAll('[data-iq-test-mode]').forEach(btn => {
		btn.disabled = false;
		btn.style.border = '';
		delete btn.dataset.iqTestMode;
	});
	document.querySelectorAll('.iq-test-mode-overlay').forEach(o => o.remove());
	if (window.__iqSubmitGuard) {
		document.removeEventListener('submit', window.__iqSubmitGuard, true);
		delete window.__iqSubmitGuard;
	}
}`

// EnableTestMode neuters every submit control on the current page.
func EnableTestMode(page playwright.Page) bool {
	result, err := page.Evaluate(enableTestModeScript)
	if err != nil {
		log.Printf("Error enabling test mode: %v", err)
		return false
	}
	if count, ok := result.(int); ok {
		log.Printf("Test mode enabled, %d submit controls disabled", count)
	} else {
		log.Printf("Test mode enabled")
	}
	return true
}

// DisableTestMode restores submit controls and removes the interceptor.
func DisableTestMode(page playwright.Page) bool {
	if _, err := page.Evaluate(disableTestModeScript); err != nil {
		log.Printf("Error disabling test mode: %v", err)
		return false
	}
	log.Printf("Test mode disabled, form submission re-enabled")
	return true
}
