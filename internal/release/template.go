package release

import (
	"fmt"
	"slices"
	"strings"
)

// Placeholder names understood by release URL templates.
const (
	Arch    = "arch"
	Version = "version"
	Name    = "name"
)

var knownPlaceholders = []string{Arch, Version, Name}

// Values maps placeholder names to their substitutions.
type Values map[string]string

type segment struct {
	literal     string
	placeholder string
}

// Template is a parsed string with {placeholder} slots, such as a release
// download URL or an artifact file name.
type Template struct {
	raw      string
	segments []segment
	names    []string
}

// ParseTemplate validates s and records its placeholders. Unknown names,
// empty braces and unbalanced braces are rejected.
func ParseTemplate(s string) (Template, error) {
	t := Template{raw: s}
	rest := s
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		closing := strings.IndexByte(rest, '}')
		if open < 0 {
			if closing >= 0 {
				return Template{}, fmt.Errorf("template %q: unmatched '}'", s)
			}
			t.segments = append(t.segments, segment{literal: rest})
			break
		}
		if closing >= 0 && closing < open {
			return Template{}, fmt.Errorf("template %q: unmatched '}'", s)
		}
		if open > 0 {
			t.segments = append(t.segments, segment{literal: rest[:open]})
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return Template{}, fmt.Errorf("template %q: unterminated placeholder", s)
		}
		name := rest[open+1 : open+end]
		if name == "" {
			return Template{}, fmt.Errorf("template %q: empty placeholder", s)
		}
		if strings.ContainsRune(name, '{') {
			return Template{}, fmt.Errorf("template %q: nested '{'", s)
		}
		if !slices.Contains(knownPlaceholders, name) {
			return Template{}, fmt.Errorf("template %q: unknown placeholder {%s}", s, name)
		}
		t.segments = append(t.segments, segment{placeholder: name})
		if !slices.Contains(t.names, name) {
			t.names = append(t.names, name)
		}
		rest = rest[open+end+1:]
	}
	return t, nil
}

// MustTemplate is ParseTemplate for package-level constants.
func MustTemplate(s string) Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Placeholders lists the distinct placeholder names in order of appearance.
func (t Template) Placeholders() []string {
	return slices.Clone(t.names)
}

func (t Template) String() string {
	return t.raw
}

// Render substitutes every placeholder. A placeholder without a value, or a
// value for a name the template does not use, is an error.
func (t Template) Render(values Values) (string, error) {
	for name := range values {
		if !slices.Contains(t.names, name) {
			return "", fmt.Errorf("template %q: no placeholder {%s}", t.raw, name)
		}
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.placeholder == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := values[seg.placeholder]
		if !ok || v == "" {
			return "", fmt.Errorf("template %q: missing value for {%s}", t.raw, seg.placeholder)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Pick returns the subset of values whose names appear in t. Artifact names
// from the manifest use only some of the placeholders a caller knows about.
func (t Template) Pick(values Values) Values {
	out := Values{}
	for _, name := range t.names {
		if v, ok := values[name]; ok {
			out[name] = v
		}
	}
	return out
}
