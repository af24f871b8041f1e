package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Ordering is the result of comparing two versions.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// maxParts is major.minor.build.revision.
const maxParts = 4

// Version is a dotted numeric version with up to four components.
// Components that were not written are zero and are not printed by String.
type Version struct {
	parts [maxParts]int
	n     int
}

// New builds a version from explicit components.
func New(parts ...int) Version {
	var v Version
	for i, p := range parts {
		if i >= maxParts {
			break
		}
		v.parts[i] = p
		v.n = i + 1
	}
	return v
}

// Parse reads versions such as "1.0.1", "v5.4.23.2" or "2".
// A leading "v" is ignored. Every component must be a non-negative integer.
func Parse(s string) (Version, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	if s == "" {
		return Version{}, fmt.Errorf("invalid version %q: empty", raw)
	}

	fields := strings.Split(s, ".")
	if len(fields) > maxParts {
		return Version{}, fmt.Errorf("invalid version %q: more than %d components", raw, maxParts)
	}

	var v Version
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: component %q is not a number", raw, f)
		}
		v.parts[i] = n
	}
	v.n = len(fields)
	return v, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never set.
func (v Version) IsZero() bool {
	return v.n == 0
}

// Major, Minor, Build and Revision return individual components.
func (v Version) Major() int    { return v.parts[0] }
func (v Version) Minor() int    { return v.parts[1] }
func (v Version) Build() int    { return v.parts[2] }
func (v Version) Revision() int { return v.parts[3] }

func (v Version) String() string {
	if v.n == 0 {
		return "0"
	}
	s := make([]string, v.n)
	for i := 0; i < v.n; i++ {
		s[i] = strconv.Itoa(v.parts[i])
	}
	return strings.Join(s, ".")
}

// Compare orders a against b. Missing components count as zero, so
// "1.2" and "1.2.0.0" are Equal.
func Compare(a, b Version) Ordering {
	for i := range maxParts {
		av, bv := a.parts[i], b.parts[i]
		if av != bv {
			if av < bv {
				return Less
			}
			return Greater
		}
	}
	return Equal
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) == Less
}

// CompareStrings parses and compares two version strings.
func CompareStrings(a, b string) (Ordering, error) {
	av, err := Parse(a)
	if err != nil {
		return Equal, err
	}
	bv, err := Parse(b)
	if err != nil {
		return Equal, err
	}
	return Compare(av, bv), nil
}

// MarshalText encodes the version as its dotted string form.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText lets manifests carry versions as JSON strings.
func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
