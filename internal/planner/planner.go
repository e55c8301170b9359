// Package planner renders a planner template against the calendar model and
// enforces the asset-path contract of the rendered output.
//
// A planner project is a fixed two-directory layout: a "pages" directory
// holding the templates and a sibling "assets" directory holding images,
// stylesheets and fonts. The parent of both is the project root, which is
// also the anchor every relative asset path resolves against at export time.
package planner

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/klabast/wb-services/planer/internal/calendar"
)

// Fixed project layout.
const (
	PagesDir  = "pages"
	AssetsDir = "assets"
)

// Target selects what the rendered HTML is produced for.
type Target string

const (
	TargetHTML Target = "html"
	TargetPDF  Target = "pdf"
)

// Planner binds one template file to one configured calendar.
type Planner struct {
	name string // template file name
	root string // project root, absolute
	cal  *calendar.Calendar
	tmpl *template.Template
}

// New loads and parses the template at templatePath. When the template lives
// in a "pages" directory the project root is its parent, otherwise the
// template's own directory.
func New(templatePath string, cal *calendar.Calendar) (*Planner, error) {
	abs, err := filepath.Abs(templatePath)
	if err != nil {
		return nil, fmt.Errorf("resolving template path: %w", err)
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	root := filepath.Dir(abs)
	if filepath.Base(root) == PagesDir {
		root = filepath.Dir(root)
	}

	p := &Planner{
		name: filepath.Base(abs),
		root: root,
		cal:  cal,
	}

	tmpl, err := template.New(p.name).
		Option("missingkey=error").
		Funcs(p.funcs()).
		Parse(string(src))
	if err != nil {
		return nil, &TemplateError{Template: p.name, Err: err}
	}
	p.tmpl = tmpl
	return p, nil
}

// Root returns the project root the export resolves asset paths against.
func (p *Planner) Root() string {
	return p.root
}

// BaseHref returns the file URL of the project root, with a trailing slash.
func (p *Planner) BaseHref() string {
	return "file://" + filepath.ToSlash(p.root) + "/"
}

// Render expands the template for the given target and returns a single
// self-contained HTML document.
//
// Exactly three bindings are exposed to the template: "calendar" (the
// configured calendar), "planner_head" (empty for the HTML target, a <base>
// directive anchored at the project root for the PDF target) and "lang" (the
// resolved language code). The output is buffered, so a failing render
// produces no partial output, and every asset reference in the result is
// validated against the relative-path contract before it is returned.
func (p *Planner) Render(target Target) (string, error) {
	head := template.HTML("")
	if target == TargetPDF {
		head = template.HTML(fmt.Sprintf("<base href=%q>", p.BaseHref()))
	}

	data := map[string]any{
		"calendar":     p.cal,
		"planner_head": head,
		"lang":         p.cal.Lang,
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", &TemplateError{Template: p.name, Err: err}
	}

	html := buf.String()
	if err := ValidateAssetRefs(html); err != nil {
		return "", err
	}
	return html, nil
}
