package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingBinding is returned when a placeholder names an absent path
	// and carries no default.
	ErrMissingBinding = errors.New("missing binding")

	// ErrBadTemplate is returned for unterminated or empty placeholders.
	ErrBadTemplate = errors.New("malformed template")
)

// Template is an attribute value that may reference store paths through
// {{path}} or {{path|default}} placeholders.
type Template struct {
	raw   string
	parts []part
}

type part struct {
	literal string
	path    string // empty for literal parts
	def     string
	hasDef  bool
}

// HasPlaceholder reports whether s contains a placeholder opening.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, "{{")
}

// ParseTemplate parses s. A string without placeholders is a static template.
func ParseTemplate(s string) (*Template, error) {
	t := &Template{raw: s}
	rest := s
	for rest != "" {
		open := strings.Index(rest, "{{")
		if open < 0 {
			t.parts = append(t.parts, part{literal: rest})
			break
		}
		if open > 0 {
			t.parts = append(t.parts, part{literal: rest[:open]})
		}
		end := strings.Index(rest[open+2:], "}}")
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated placeholder in %q", ErrBadTemplate, s)
		}
		body := rest[open+2 : open+2+end]
		rest = rest[open+2+end+2:]

		p := part{path: body}
		if i := strings.IndexByte(body, '|'); i >= 0 {
			p.path, p.def, p.hasDef = body[:i], body[i+1:], true
		}
		p.path = strings.TrimSpace(p.path)
		if _, err := splitPath(p.path); err != nil {
			return nil, fmt.Errorf("%w: placeholder %q in %q", ErrBadTemplate, body, s)
		}
		t.parts = append(t.parts, p)
	}
	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(s string) *Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the source text.
func (t *Template) String() string {
	return t.raw
}

// IsStatic reports whether t references no paths.
func (t *Template) IsStatic() bool {
	for _, p := range t.parts {
		if p.path != "" {
			return false
		}
	}
	return true
}

// Paths returns the referenced paths in order of first appearance.
func (t *Template) Paths() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range t.parts {
		if p.path != "" && !seen[p.path] {
			seen[p.path] = true
			out = append(out, p.path)
		}
	}
	return out
}

// Single returns the path of a template made of exactly one placeholder.
func (t *Template) Single() (string, bool) {
	if len(t.parts) != 1 || t.parts[0].path == "" {
		return "", false
	}
	return t.parts[0].path, true
}

// Eval resolves t against lookup. A single-placeholder template yields the
// typed value; anything else yields a string. A missing path without a
// default yields ErrMissingBinding alongside the value built from the rest.
func (t *Template) Eval(lookup func(string) (Value, bool)) (Value, error) {
	var missing []string
	resolve := func(p part) (Value, bool) {
		v, ok := lookup(p.path)
		switch {
		case ok:
			return v, true
		case p.hasDef:
			return String(p.def), true
		default:
			missing = append(missing, p.path)
			return String(""), false
		}
	}

	var out Value
	if len(t.parts) == 1 && t.parts[0].path != "" {
		out, _ = resolve(t.parts[0])
	} else {
		var sb strings.Builder
		for _, p := range t.parts {
			if p.path == "" {
				sb.WriteString(p.literal)
				continue
			}
			v, _ := resolve(p)
			sb.WriteString(v.String())
		}
		out = String(sb.String())
	}

	if len(missing) > 0 {
		return out, fmt.Errorf("%w: %s", ErrMissingBinding, strings.Join(missing, ", "))
	}
	return out, nil
}
