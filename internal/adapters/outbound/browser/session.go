// Package browser drives a headless Chromium instance through Playwright.
// One Session is shared by the whole audit batch; every audit task opens
// its own isolated browsing context so no cookies or storage leak between
// targets.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/anditpl/a11y-audit/internal/domain"
)

// Session implements domain.BrowserSession over one launched browser.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	log     *zap.SugaredLogger
}

// Launch starts the Playwright driver and one Chromium instance. The
// caller owns the session and must Close it when the batch settles.
func Launch(headless bool, log *zap.SugaredLogger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching chromium: %w", err)
	}

	log.Debugw("browser launched", "headless", headless)
	return &Session{pw: pw, browser: b, log: log}, nil
}

// NewPage opens a fresh browsing context and page for one target.
func (s *Session) NewPage(ctx context.Context) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bctx, err := s.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("opening browser context: %w", err)
	}
	pg, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return &page{bctx: bctx, page: pg}, nil
}

// Close tears down the browser and stops the driver.
func (s *Session) Close() error {
	err := s.browser.Close()
	if stopErr := s.pw.Stop(); err == nil {
		err = stopErr
	}
	return err
}

// page implements domain.Page over one isolated context+page pair.
type page struct {
	bctx playwright.BrowserContext
	page playwright.Page
}

// Navigate loads url and waits for network quiescence. The timeout bounds
// the whole navigation; there are no retries.
func (p *page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// AddScript injects a script into the current document.
func (p *page) AddScript(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.AddScriptTag(playwright.PageAddScriptTagOptions{
		Content: playwright.String(source),
	})
	if err != nil {
		return fmt.Errorf("injecting script: %w", err)
	}
	return nil
}

// Evaluate runs a JavaScript expression in the page. Promises are awaited
// by the driver, so the result is always the settled value.
func (p *page) Evaluate(ctx context.Context, expression string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Evaluate(expression)
}

// Screenshot captures the full document.
func (p *page) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// Close releases the page and its browsing context.
func (p *page) Close() error {
	err := p.page.Close()
	if cerr := p.bctx.Close(); err == nil {
		err = cerr
	}
	return err
}
