package phone

import "testing"

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer("")
	if n.Region() != "MX" {
		t.Fatalf("expected MX default, got %s", n.Region())
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: ""},
		{name: "local mexico city number", in: "55 1234 5678", want: "+525512345678"},
		{name: "already international", in: "+52 55 1234 5678", want: "+525512345678"},
		{name: "unparseable kept trimmed", in: "  ext. 12 ", want: "ext. 12"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
