package security

import (
	"strings"
	"testing"
)

func TestOpaqueTokens_UniqueAndURLSafe(t *testing.T) {
	t.Parallel()

	g := NewOpaqueTokens()
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		tok, err := g.New()
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if len(tok) < 40 {
			t.Fatalf("token too short: %q", tok)
		}
		if strings.ContainsAny(tok, "+/=") {
			t.Fatalf("token not URL-safe: %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}
