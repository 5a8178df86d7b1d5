package httpserver

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fast Food", "fast-food"},
		{"  Fast   Food  ", "fast-food"},
		{"Electronics", "electronics"},
		{"Deals & Steals", "deals-steals"},
		{"100% Off!!!", "100-off"},
		{"Already-Slugged", "already-slugged"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Ünïcode Çafé", "ncode-af"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func FuzzSlugify(f *testing.F) {
	f.Add("Fast Food")
	f.Add("  spaces  everywhere  ")
	f.Add("ünïcode")
	f.Add("123-abc")
	f.Fuzz(func(t *testing.T, in string) {
		out := slugify(in)
		for _, r := range out {
			if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
				t.Fatalf("slugify(%q) = %q contains %q", in, out, r)
			}
		}
		if strings.Contains(out, " ") {
			t.Fatalf("slugify(%q) = %q contains a space", in, out)
		}
		// Idempotence: slugging a slug is a no-op.
		if again := slugify(out); again != out {
			t.Fatalf("slugify not idempotent: %q -> %q -> %q", in, out, again)
		}
	})
}
