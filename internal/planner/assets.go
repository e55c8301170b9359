package planner

import (
	"regexp"
	"strings"
)

// Asset references are collected from src/href attributes and CSS url()
// values in the rendered output.
var (
	attrRefPattern = regexp.MustCompile(`(?i)\b(?:src|href)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	cssURLPattern  = regexp.MustCompile(`(?i)url\(\s*(?:"([^")]*)"|'([^')]*)'|([^"')][^)]*))\s*\)`)
	schemePattern  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// ValidateAssetRefs checks every asset reference in rendered HTML against
// the relative-path contract: a reference must be relative to the project
// root, with no leading path separator and no parent-directory traversal.
//
// The PDF export resolves resource loads relative to the root, so a
// violating path would not error there - it would silently produce a page
// with the asset missing. Validation turns that into a loud render-time
// failure instead.
func ValidateAssetRefs(html string) error {
	for _, m := range attrRefPattern.FindAllStringSubmatch(html, -1) {
		if err := checkRef(firstGroup(m[1:])); err != nil {
			return err
		}
	}
	for _, m := range cssURLPattern.FindAllStringSubmatch(html, -1) {
		if err := checkRef(firstGroup(m[1:])); err != nil {
			return err
		}
	}
	return nil
}

func firstGroup(groups []string) string {
	for _, g := range groups {
		if g != "" {
			return g
		}
	}
	return ""
}

// checkRef validates a single reference. Non-path references (fragments,
// http/https/data/mailto URLs) are outside the contract and pass through;
// file: URLs and absolute or traversing paths are rejected.
func checkRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return nil
	}

	if loc := schemePattern.FindString(ref); loc != "" {
		scheme := strings.ToLower(strings.TrimSuffix(loc, ":"))
		if scheme == "file" {
			return &AssetError{Ref: ref, Reason: "file: URLs are not allowed, use a path relative to the project root"}
		}
		return nil
	}

	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`) {
		return &AssetError{Ref: ref, Reason: "absolute paths are not allowed, use a path relative to the project root"}
	}

	path := ref
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return &AssetError{Ref: ref, Reason: "parent-directory traversal is not allowed"}
		}
	}
	return nil
}
