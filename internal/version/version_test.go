package version

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "three parts", in: "1.0.1", want: "1.0.1"},
		{name: "four parts", in: "5.4.23.2", want: "5.4.23.2"},
		{name: "v prefix", in: "v1.2.3", want: "1.2.3"},
		{name: "single part", in: "2", want: "2"},
		{name: "surrounding space", in: " 1.1 ", want: "1.1"},
		{name: "empty", in: "", wantErr: true},
		{name: "non numeric", in: "1.2.a", wantErr: true},
		{name: "pre release suffix", in: "1.2.3-beta", wantErr: true},
		{name: "too many parts", in: "1.2.3.4.5", wantErr: true},
		{name: "negative", in: "1.-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want Ordering
	}{
		{name: "numeric less than", a: "1.2.3", b: "1.2.4", want: Less},
		{name: "numeric greater than", a: "1.10.0", b: "1.2.99", want: Greater},
		{name: "missing parts equal zero", a: "1.2.3", b: "1.2.3.0", want: Equal},
		{name: "revision decides", a: "5.4.23.2", b: "5.4.23.1", want: Greater},
		{name: "major dominates", a: "2", b: "1.99.99.99", want: Greater},
		{name: "installer one ahead", a: "1.0.1", b: "1.0.2", want: Less},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareStrings(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CompareStrings(%q,%q) returned error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Fatalf("CompareStrings(%q,%q)=%s want=%s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareOrderingLaws(t *testing.T) {
	samples := []Version{
		New(),
		New(0, 0, 0, 1),
		New(1),
		New(1, 0, 0, 0),
		New(1, 0, 1),
		New(1, 2),
		New(1, 10),
		New(2, 0, 0, 1),
		MustParse("5.4.23.2"),
	}

	for _, a := range samples {
		if got := Compare(a, a); got != Equal {
			t.Fatalf("Compare(%s,%s)=%s want equal", a, a, got)
		}
		for _, b := range samples {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab != -ba {
				t.Fatalf("antisymmetry broken: Compare(%s,%s)=%s Compare(%s,%s)=%s", a, b, ab, b, a, ba)
			}
			for _, c := range samples {
				if Compare(a, b) != Greater && Compare(b, c) != Greater && Compare(a, c) == Greater {
					t.Fatalf("transitivity broken for %s <= %s <= %s", a, b, c)
				}
			}
		}
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var doc struct {
		Latest *Version `json:"LatestInstallVersion"`
	}
	if err := json.Unmarshal([]byte(`{"LatestInstallVersion":"1.0.2"}`), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if doc.Latest == nil || Compare(*doc.Latest, New(1, 0, 2)) != Equal {
		t.Fatalf("Latest = %v, want 1.0.2", doc.Latest)
	}

	if err := json.Unmarshal([]byte(`{"LatestInstallVersion":"next"}`), &doc); err == nil {
		t.Fatalf("expected error for non numeric version")
	}
}
