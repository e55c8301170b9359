package planner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klabast/wb-services/planer/internal/calendar"
)

// writeProject lays out a minimal pages/ + assets/ project in a temp
// directory and returns the template path.
func writeProject(t *testing.T, tmpl string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{PagesDir, AssetsDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, AssetsDir, "planner.css"), []byte("body{}"), 0644); err != nil {
		t.Fatalf("writing stylesheet: %v", err)
	}
	path := filepath.Join(root, PagesDir, "planner.html")
	if err := os.WriteFile(path, []byte(tmpl), 0644); err != nil {
		t.Fatalf("writing template: %v", err)
	}
	return path
}

func newTestCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New(calendar.Config{Lang: "en"})
	if err != nil {
		t.Fatalf("calendar.New failed: %v", err)
	}
	return cal
}

func newTestPlanner(t *testing.T, tmpl string) *Planner {
	t.Helper()
	p, err := New(writeProject(t, tmpl), newTestCalendar(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestRenderBindings(t *testing.T) {
	p := newTestPlanner(t, `<html><head>{{.planner_head}}</head>`+
		`<body lang="{{.lang}}">{{(.calendar.Year 2026).ID}}/{{.calendar.FirstWeekday}}</body></html>`)

	html, err := p.Render(TargetHTML)
	if err != nil {
		t.Fatalf("Render(html) failed: %v", err)
	}
	if strings.Contains(html, "<base") {
		t.Error("HTML target must not contain a base directive")
	}
	if !strings.Contains(html, `lang="en"`) {
		t.Error("lang binding missing from output")
	}
	if !strings.Contains(html, "2026/0") {
		t.Errorf("calendar binding missing from output:\n%s", html)
	}
}

func TestRenderPDFBaseHref(t *testing.T) {
	p := newTestPlanner(t, `<html><head>{{.planner_head}}</head><body></body></html>`)

	html, err := p.Render(TargetPDF)
	if err != nil {
		t.Fatalf("Render(pdf) failed: %v", err)
	}
	want := `<base href="` + p.BaseHref() + `">`
	if !strings.Contains(html, want) {
		t.Errorf("output missing %q:\n%s", want, html)
	}
	if !strings.HasPrefix(p.BaseHref(), "file://") || !strings.HasSuffix(p.BaseHref(), "/") {
		t.Errorf("BaseHref() = %q", p.BaseHref())
	}
}

func TestProjectRoot(t *testing.T) {
	path := writeProject(t, `ok`)
	p, err := New(path, newTestCalendar(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// Template is in <root>/pages, so the root is its parent.
	if got, want := p.Root(), filepath.Dir(filepath.Dir(path)); got != want {
		t.Errorf("Root() = %q, want %q", got, want)
	}

	// A template outside a pages directory anchors at its own directory.
	dir := t.TempDir()
	loose := filepath.Join(dir, "loose.html")
	if err := os.WriteFile(loose, []byte(`ok`), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = New(loose, newTestCalendar(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Root() != dir {
		t.Errorf("Root() = %q, want %q", p.Root(), dir)
	}
}

func TestUndefinedVariableFails(t *testing.T) {
	p := newTestPlanner(t, `before {{.nope}} after`)

	html, err := p.Render(TargetHTML)
	var terr *TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}
	if html != "" {
		t.Errorf("failed render produced partial output: %q", html)
	}
	if !strings.Contains(terr.Error(), "planner.html") {
		t.Errorf("error does not name the template: %v", terr)
	}
}

func TestParseErrorIsTemplateError(t *testing.T) {
	path := writeProject(t, `{{if .x}}unterminated`)
	_, err := New(path, newTestCalendar(t))
	var terr *TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TemplateError", err)
	}
}

func TestEmptyMarkerTest(t *testing.T) {
	// January 2026 starts on Thursday: the first Monday-start week row is
	// three empty slots followed by days 1..4.
	p := newTestPlanner(t, `{{$y := .calendar.Year 2026}}`+
		`{{$m := index $y.Months 0}}`+
		`{{range index $m.Table 0}}{{if isEmpty .}}_{{else}}{{.}}{{end}}{{end}}`)

	html, err := p.Render(TargetHTML)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := strings.TrimSpace(html); got != "___1234" {
		t.Errorf("rendered row = %q, want ___1234", got)
	}
}

func TestLoopHelper(t *testing.T) {
	p := newTestPlanner(t, `{{$y := .calendar.Year 2026}}{{$ms := $y.Months}}`+
		`{{range $i, $m := $ms}}{{$l := loop $i (len $ms)}}`+
		`{{if $l.First}}[{{end}}{{$l.Index}}{{if $l.Last}}]{{else}},{{end}}{{end}}`)

	html, err := p.Render(TargetHTML)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := strings.TrimSpace(html); got != "[1,2,3,4,5,6,7,8,9,10,11,12]" {
		t.Errorf("loop output = %q", got)
	}
}

func TestLoopMetadata(t *testing.T) {
	p := newTestPlanner(t, `{{$l := loop 1 4}}{{$l.Index}} {{$l.Index0}} {{$l.Length}} {{$l.Rev}} {{$l.Rev0}} {{$l.First}} {{$l.Last}}`)

	html, err := p.Render(TargetHTML)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := strings.TrimSpace(html); got != "2 1 4 3 2 false false" {
		t.Errorf("loop metadata = %q", got)
	}
}

func TestLoopOutOfRange(t *testing.T) {
	p := newTestPlanner(t, `{{loop 5 3}}`)
	if _, err := p.Render(TargetHTML); err == nil {
		t.Error("out-of-range loop call succeeded")
	}
}

func TestContentFragment(t *testing.T) {
	p := newTestPlanner(t, `{{partial "cell" "v" 7}}`+
		`{{define "cell"}}<b>{{.v}}</b>{{end}}`)

	html, err := p.Render(TargetHTML)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := strings.TrimSpace(html); got != "<b>7</b>" {
		t.Errorf("fragment output = %q", got)
	}
}

func TestAttributeFragmentTrimsWhitespace(t *testing.T) {
	p := newTestPlanner(t, `<i {{attrs "a" "k" 1}}>ok</i>`+
		`{{define "a"}} class="x{{.k}}" {{end}}`)

	html, err := p.Render(TargetHTML)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(html, `<i class="x1">ok</i>`) {
		t.Errorf("attribute fragment output = %q", html)
	}
}

func TestFragmentErrors(t *testing.T) {
	t.Run("unknown fragment", func(t *testing.T) {
		p := newTestPlanner(t, `{{partial "nope"}}`)
		if _, err := p.Render(TargetHTML); err == nil {
			t.Error("call to undefined fragment succeeded")
		}
	})

	t.Run("dangling key", func(t *testing.T) {
		p := newTestPlanner(t, `{{partial "cell" "a" 1 "b"}}{{define "cell"}}x{{end}}`)
		if _, err := p.Render(TargetHTML); err == nil {
			t.Error("fragment call with dangling key succeeded")
		}
	})

	t.Run("non-string key", func(t *testing.T) {
		p := newTestPlanner(t, `{{partial "cell" 1 2 3 4}}{{define "cell"}}x{{end}}`)
		if _, err := p.Render(TargetHTML); err == nil {
			t.Error("fragment call with a non-string key succeeded")
		}
	})
}

func TestRenderRejectsBadAssetPath(t *testing.T) {
	p := newTestPlanner(t, `<img src="/assets/x.png">`)

	html, err := p.Render(TargetHTML)
	var aerr *AssetError
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %v, want *AssetError", err)
	}
	if html != "" {
		t.Errorf("failed render produced output: %q", html)
	}
	if aerr.Ref != "/assets/x.png" {
		t.Errorf("AssetError.Ref = %q", aerr.Ref)
	}
}
