package services

import (
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Navigator performs retryable page loads. HTTP status >= 400 is treated as
// retryable because trackers routinely serve transient errors; a navigation
// only counts as settled after a bounded network-idle wait plus a short
// fixed delay.
type Navigator struct {
	MaxRetries        int
	NavigationTimeout time.Duration
	NetworkIdleWait   time.Duration
	SettleDelay       time.Duration
}

func NewNavigator(maxRetries int, navTimeout, idleWait, settleDelay time.Duration) *Navigator {
	return &Navigator{
		MaxRetries:        maxRetries,
		NavigationTimeout: navTimeout,
		NetworkIdleWait:   idleWait,
		SettleDelay:       settleDelay,
	}
}

// Navigate loads url, retrying up to MaxRetries. Returns false only after
// the bound is exhausted; the caller treats false as attempt-fatal.
func (n *Navigator) Navigate(page playwright.Page, url string) bool {
	err := withRetry(n.MaxRetries, time.Second, func() error {
		resp, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(n.NavigationTimeout.Milliseconds())),
		})
		if err != nil {
			return fmt.Errorf("navigation failed: %w", err)
		}
		if resp != nil && isRetryableStatus(resp.Status()) {
			return fmt.Errorf("page responded with status %d", resp.Status())
		}

		// Best effort: slow trackers must not block the pipeline forever.
		if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateNetworkidle,
			Timeout: playwright.Float(float64(n.NetworkIdleWait.Milliseconds())),
		}); err != nil {
			log.Printf("Network idle wait timed out, continuing: %v", err)
		}

		page.WaitForTimeout(float64(n.SettleDelay.Milliseconds()))
		return nil
	})
	if err != nil {
		log.Printf("Navigation to %s exhausted %d retries: %v", url, n.MaxRetries, err)
		return false
	}
	return true
}

func isRetryableStatus(status int) bool {
	return status >= 400
}
