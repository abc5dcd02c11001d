package passhash

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	enc, err := HashPasswordWithIters("s3cret", 1000)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(enc, "pbkdf2_sha256$") {
		t.Fatalf("unexpected encoding prefix: %s", enc)
	}

	ok, err := VerifyPassword("s3cret", enc)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("correct password must verify")
	}

	ok, err = VerifyPassword("wrong", enc)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	a, _ := HashPasswordWithIters("same", 1000)
	b, _ := HashPasswordWithIters("same", 1000)
	if a == b {
		t.Fatal("two hashes of the same password must differ by salt")
	}
}

func TestVerify_MalformedEncodings(t *testing.T) {
	cases := []string{"", "plain", "pbkdf2_sha256$abc$def", "pbkdf2_sha256$0$c2FsdA$a2V5"}
	for _, in := range cases {
		if ok, err := VerifyPassword("x", in); err == nil && ok {
			t.Fatalf("expected failure for %q", in)
		}
	}
}
