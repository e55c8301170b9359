package planner

import "fmt"

// TemplateError reports a template parse or execution failure. The wrapped
// engine error carries the offending source location (template name, line).
type TemplateError struct {
	Template string // template file name
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// AssetError reports a rendered asset reference that violates the
// relative-path contract. Raised at render time so a bad path fails loudly
// instead of silently dropping the asset from the exported PDF.
type AssetError struct {
	Ref    string // the offending reference as written in the output
	Reason string
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset reference %q: %s", e.Ref, e.Reason)
}
