// Package commands wires the command-line surface to the planner pipeline:
// calendar computation, template rendering, and PDF export.
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/planer/internal/calendar"
	"github.com/klabast/wb-services/planer/internal/dayinfo"
	"github.com/klabast/wb-services/planer/internal/pdf"
	"github.com/klabast/wb-services/planer/internal/planner"
)

const filePermissions = 0644

// Output format selection.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatBoth = "both"
)

type generateOptions struct {
	format       string
	year         int
	lang         string
	firstWeekday string
	country      string
	provider     string
	quiet        bool
	strictLocale bool
	optimize     bool
	marginTop    float64
	marginRight  float64
	marginBottom float64
	marginLeft   float64
	timeout      time.Duration
}

// NewRootCmd builds the planer command.
func NewRootCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "planer TEMPLATE",
		Short: "Generate a printable planner from an HTML template",
		Long: `Planer expands an HTML planner template against a computed calendar year
and exports the result as HTML, as a print-ready PDF, or both.

The template lives in the project's "pages" directory; images, stylesheets
and fonts live in the sibling "assets" directory and are referenced by paths
relative to the project root. Output files are written to the current
working directory, named after the template's base name.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", FormatPDF, "output format: html, pdf or both")
	flags.IntVarP(&opts.year, "year", "y", time.Now().Year(), "target year (validated before rendering)")
	flags.StringVarP(&opts.lang, "lang", "l", calendar.DefaultLang, "display language code (en, de, ru, kr)")
	flags.StringVarP(&opts.firstWeekday, "first-weekday", "w", "", "first weekday: name (monday..sunday) or number 0-6 (default: from country, else monday)")
	flags.StringVarP(&opts.country, "country", "c", "", "ISO 3166-1 alpha-2 country code for the off-day policy")
	flags.StringVarP(&opts.provider, "provider", "p", "", "day-info provider: nagerdate, isdayoff, german or none (default: nagerdate when a country is given)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	flags.BoolVar(&opts.strictLocale, "strict-locale", false, "fail on an unsupported language instead of falling back to English")
	flags.BoolVar(&opts.optimize, "optimize", false, "deduplicate and repack the exported PDF")
	flags.Float64Var(&opts.marginTop, "margin-top", 0, "PDF top margin in inches")
	flags.Float64Var(&opts.marginRight, "margin-right", 0, "PDF right margin in inches")
	flags.Float64Var(&opts.marginBottom, "margin-bottom", 0, "PDF bottom margin in inches")
	flags.Float64Var(&opts.marginLeft, "margin-left", 0, "PDF left margin in inches")
	flags.DurationVar(&opts.timeout, "timeout", pdf.DefaultTimeout, "PDF export timeout")

	return cmd
}

// runGenerate executes the pipeline: compute -> render -> export. Failures
// are labelled with the stage they happened in.
func runGenerate(ctx context.Context, templatePath string, opts *generateOptions) error {
	writeHTML, writePDF, err := parseFormat(opts.format)
	if err != nil {
		return err
	}

	progress := newProgress(opts.quiet)

	// Compute stage: resolve every calendar input before any rendering so
	// template errors are never caused by upstream data problems.
	computeStart := time.Now()

	firstWeekday := calendar.FirstWeekdayForCountry(opts.country)
	if opts.firstWeekday != "" {
		firstWeekday, err = calendar.ParseWeekday(opts.firstWeekday)
		if err != nil {
			return fmt.Errorf("compute: %w", err)
		}
	}

	providerName := opts.provider
	if providerName == "" && opts.country != "" {
		providerName = dayinfo.ProviderNagerDate
	}
	provider, err := dayinfo.New(providerName, opts.country)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	if err := calendar.ValidateYear(opts.year); err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	cal, err := calendar.New(calendar.Config{
		FirstWeekday: firstWeekday,
		Lang:         opts.lang,
		Provider:     provider,
		Strict:       opts.strictLocale,
	})
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	progress.stage("compute", computeStart)

	// Render stage.
	renderStart := time.Now()
	p, err := planner.New(templatePath, cal)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(templatePath), filepath.Ext(templatePath))

	if writeHTML {
		html, err := p.Render(planner.TargetHTML)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		out := base + ".html"
		if err := os.WriteFile(out, []byte(html), filePermissions); err != nil {
			return fmt.Errorf("render: writing %s: %w", out, err)
		}
		log.Printf("Wrote %s", out)
	}

	var pdfHTML string
	if writePDF {
		pdfHTML, err = p.Render(planner.TargetPDF)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	progress.stage("render", renderStart)

	if !writePDF {
		return nil
	}

	// Export stage.
	exportStart := time.Now()
	exportOpts := pdf.Options{
		MarginTop:    opts.marginTop,
		MarginRight:  opts.marginRight,
		MarginBottom: opts.marginBottom,
		MarginLeft:   opts.marginLeft,
		Timeout:      opts.timeout,
	}
	if opts.optimize {
		exportOpts.Optimizer = pdf.PDFCPUOptimizer{}
	}

	data, err := pdf.NewExporter(exportOpts).Export(ctx, pdfHTML)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	out := base + ".pdf"
	if err := os.WriteFile(out, data, filePermissions); err != nil {
		return fmt.Errorf("export: writing %s: %w", out, err)
	}
	log.Printf("Wrote %s", out)
	progress.stage("export", exportStart)

	return nil
}

// parseFormat maps the --format value to the outputs to produce.
func parseFormat(format string) (writeHTML, writePDF bool, err error) {
	switch strings.ToLower(format) {
	case FormatHTML:
		return true, false, nil
	case FormatPDF:
		return false, true, nil
	case FormatBoth:
		return true, true, nil
	}
	return false, false, fmt.Errorf("invalid format %q: use html, pdf or both", format)
}

// progressPrinter prints per-stage timings when stderr is a terminal and
// progress output is not suppressed.
type progressPrinter struct {
	enabled bool
}

func newProgress(quiet bool) *progressPrinter {
	return &progressPrinter{
		enabled: !quiet && term.IsTerminal(int(os.Stderr.Fd())),
	}
}

func (p *progressPrinter) stage(name string, start time.Time) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "%-10s %.3fs\n", name, time.Since(start).Seconds())
}
