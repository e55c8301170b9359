package planner

import (
	"bytes"
	"fmt"
	"html/template"
	"reflect"
	"strings"
)

// Loop carries loop-position metadata for template iteration: 1-based and
// 0-based indices, first/last flags, the total length, and the
// countdown-remaining variants.
type Loop struct {
	Index  int // 1-based
	Index0 int // 0-based
	Length int
	Rev    int // remaining including the current item
	Rev0   int // remaining excluding the current item
	First  bool
	Last   bool
}

// funcs builds the template function map. The fragment helpers close over
// the planner so that "partial" and "attrs" can execute named template
// blocks after parsing has finished.
func (p *Planner) funcs() template.FuncMap {
	return template.FuncMap{
		"dict": func(pairs ...any) (map[string]any, error) {
			return buildDict(pairs)
		},
		"isEmpty": isEmpty,
		"loop": func(index, length int) (Loop, error) {
			if length < 0 || index < 0 || index >= length {
				return Loop{}, fmt.Errorf("loop index %d out of range for length %d", index, length)
			}
			return Loop{
				Index:  index + 1,
				Index0: index,
				Length: length,
				Rev:    length - index,
				Rev0:   length - index - 1,
				First:  index == 0,
				Last:   index == length-1,
			}, nil
		},
		// partial executes a named fragment and returns its output as child
		// content. Arguments: none, a single data value, or key/value pairs.
		"partial": func(name string, args ...any) (template.HTML, error) {
			out, err := p.executeFragment(name, args)
			if err != nil {
				return "", err
			}
			return template.HTML(out), nil
		},
		// attrs executes a named fragment and returns its output as
		// attribute text for an opening tag, with surrounding whitespace
		// suppressed.
		"attrs": func(name string, args ...any) (template.HTMLAttr, error) {
			out, err := p.executeFragment(name, args)
			if err != nil {
				return "", err
			}
			return template.HTMLAttr(strings.TrimSpace(out)), nil
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}
}

// executeFragment runs the named {{define}} block with data built from args.
func (p *Planner) executeFragment(name string, args []any) (string, error) {
	t := p.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("fragment %q is not defined", name)
	}

	var data any
	switch len(args) {
	case 0:
	case 1:
		data = args[0]
	default:
		m, err := buildDict(args)
		if err != nil {
			return "", fmt.Errorf("fragment %q: %w", name, err)
		}
		data = m
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("fragment %q: %w", name, err)
	}
	return buf.String(), nil
}

// buildDict turns alternating key/value arguments into a map.
func buildDict(pairs []any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("want key/value pairs, got %d arguments", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// isEmpty reports whether a value is the empty table-slot marker. This is an
// explicit nil test, deliberately distinct from template truthiness: a day
// with value 0 would be falsy but is not empty.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return rv.IsNil()
	}
	return false
}
