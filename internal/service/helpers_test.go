package service

import (
	"testing"
	"unicode/utf8"
)

func TestStringPreviewKeepsRunesIntact(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"cut inside multibyte rune", "héllo", 2, "h"},
		{"multibyte kept when it fits", "héllo", 3, "hé"},
		{"emoji boundary", "a\U0001F600b", 3, "a"},
	}
	for _, tc := range cases {
		got := stringPreview(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("%s: stringPreview(%q, %d) = %q, want %q", tc.name, tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("%s: preview %q is not valid UTF-8", tc.name, got)
		}
	}
}
