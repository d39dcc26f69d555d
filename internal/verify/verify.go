// Package verify checks a running catalog page for the markup the print
// pipeline depends on.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/utsavgifts/catalogd/internal/render"
)

const verifyTimeout = 60 * time.Second

// Check is one verification outcome.
type Check struct {
	Name   string
	Detail string
	Passed bool
}

// Result is the full verification report for a page.
type Result struct {
	Checks []Check
}

// Passed reports whether every check passed.
func (r Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return len(r.Checks) > 0
}

// Verifier drives a headless browser against the catalog page.
type Verifier struct {
	browser *rod.Browser
	cleanup func()
	logger  *slog.Logger
}

// NewVerifier launches a browser for verification.
func NewVerifier(logger *slog.Logger) (*Verifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	browser, cleanup, err := render.Launch()
	if err != nil {
		return nil, err
	}
	return &Verifier{browser: browser, cleanup: cleanup, logger: logger}, nil
}

// Close releases the browser.
func (v *Verifier) Close() error {
	if v.cleanup != nil {
		v.cleanup()
		v.cleanup = nil
	}
	return nil
}

// checks are evaluated in page context; each returns a boolean.
var pageChecks = []struct {
	name string
	js   string
}{
	{
		name: "occasion filter present",
		js:   `() => document.querySelector('#occasion-filter') !== null`,
	},
	{
		name: "prices rendered in rupees",
		js: `() => Array.from(document.querySelectorAll('.product-price'))
			.some((el) => el.textContent.includes('₹'))`,
	},
	{
		name: "title blocks uniform height",
		js: `() => {
			const el = document.querySelector('.product-title');
			if (!el) return false;
			return getComputedStyle(el).minHeight === '72px';
		}`,
	},
}

// Verify loads the page and runs every check.
func (v *Verifier) Verify(ctx context.Context, pageURL string) (Result, error) {
	page, err := v.browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return Result{}, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("page load: %w", err)
	}
	page.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()

	var result Result
	for _, check := range pageChecks {
		obj, err := page.Eval(check.js)
		c := Check{Name: check.name}
		switch {
		case err != nil:
			c.Detail = err.Error()
		case obj.Value.Bool():
			c.Passed = true
		default:
			c.Detail = "condition not met"
		}
		v.logger.Debug("page check", "name", c.Name, "passed", c.Passed)
		result.Checks = append(result.Checks, c)
	}
	return result, nil
}
