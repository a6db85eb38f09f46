package validate

import (
	"strings"
	"testing"
	"unicode"
)

// Run with: go test ./internal/validate -fuzz=FuzzSanitizeTitle -fuzztime=30s
func FuzzSanitizeTitle(f *testing.F) {
	seeds := []string{
		"Ship v1",
		"hello\x00world",
		"test\x1b[31mred",
		"café résumé",
		"日本語テスト",
		" \x00 padded ",
		"\t\n\r",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := SanitizeTitle(input)
		if strings.IndexFunc(out, unicode.IsControl) >= 0 {
			t.Fatalf("control character survived: %q", out)
		}
		if out != strings.TrimSpace(out) {
			t.Fatalf("untrimmed output: %q", out)
		}
		if again := SanitizeTitle(out); again != out {
			t.Fatalf("not idempotent: %q -> %q", out, again)
		}
	})
}

func FuzzSanitizeNote(f *testing.F) {
	for _, seed := range []string{"line1\r\nline2", "a\x00b", "\r\r", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := SanitizeNote(input)
		if strings.ContainsAny(out, "\x00\r") {
			t.Fatalf("null byte or carriage return survived: %q", out)
		}
	})
}
