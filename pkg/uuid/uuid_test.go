package uuid

import "testing"

func TestNew_VersionAndVariant(t *testing.T) {
	u := New()
	if u[6]>>4 != 4 {
		t.Fatalf("expected version 4, got %d", u[6]>>4)
	}
	if u[8]>>6 != 2 {
		t.Fatalf("expected RFC 4122 variant, got %d", u[8]>>6)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	u := New()
	parsed, err := Parse(u.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != u {
		t.Fatalf("round trip mismatch: %s vs %s", parsed, u)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{"", "not-a-uuid", "12345678-1234-1234-1234", "zzzzzzzz-zzzz-4zzz-8zzz-zzzzzzzzzzzz"}
	for _, in := range cases {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
