// Package pdf exports rendered planner HTML to a paginated PDF through a
// headless Chromium instance. The browser honors CSS @page size rules and
// page-break containers, so the page count of the output equals the number
// of page-break-terminated sections in the HTML.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds one export. Rasterizing a full-year planner is slow
// but bounded; anything beyond this is treated as a hung renderer.
const DefaultTimeout = 2 * time.Minute

// ExportError reports a failed export. The operation is not retried
// automatically; re-running the whole pipeline with the same inputs is safe.
type ExportError struct {
	Stage string // "prepare", "render" or "optimize"
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("pdf export (%s): %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Options configures one Exporter. Margins are in inches; the zero value
// leaves pagination entirely to the template's @page rules.
type Options struct {
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	Timeout      time.Duration // 0 means DefaultTimeout
	Optimizer    Optimizer     // optional post-processing
}

// Exporter drives one headless browser session per export. Sessions are not
// shared: concurrent exports need independent Exporter values.
type Exporter struct {
	opts Options
}

// NewExporter builds an Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export renders html in a fresh headless Chromium and returns the PDF
// bytes. The browser process is torn down on every exit path; the whole
// operation is bounded by the configured timeout.
//
// Relative asset references inside html resolve through its <base> element,
// which the planner anchors at the project root. An asset that is missing on
// disk yields a visually incomplete page, not an error.
func (e *Exporter) Export(ctx context.Context, html string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "planer-*.html")
	if err != nil {
		return nil, &ExportError{Stage: "prepare", Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, &ExportError{Stage: "prepare", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ExportError{Stage: "prepare", Err: err}
	}

	timeout := e.opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// File access flags match what the original renderer needs: the page is
	// a local file and must be able to load sibling file:// assets.
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.Flag("disable-web-security", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := printParams(e.opts).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("renderer timed out after %s: %w", timeout, err)
		}
		return nil, &ExportError{Stage: "render", Err: err}
	}

	if e.opts.Optimizer != nil {
		optimized, err := e.opts.Optimizer.Optimize(pdf)
		if err != nil {
			return nil, &ExportError{Stage: "optimize", Err: err}
		}
		pdf = optimized
	}
	return pdf, nil
}

// printParams maps export options onto the DevTools print call. Backgrounds
// are always printed and the template's @page size wins over the default
// paper size, so the CSS page contract rules the output dimensions.
func printParams(opts Options) *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithMarginTop(opts.MarginTop).
		WithMarginRight(opts.MarginRight).
		WithMarginBottom(opts.MarginBottom).
		WithMarginLeft(opts.MarginLeft)
}
