package service

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Breaking: Cyclone Hits Coast!  ", "breaking-cyclone-hits-coast"},
		{"Dhaka -- Chattogram  Highway", "dhaka-chattogram-highway"},
		{"বাংলাদেশ জিতেছে", "বাংলাদেশ-জিতেছে"},
		{"নির্বাচন 2026", "নির্বাচন-2026"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MakeSlug(tc.input); got != tc.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSlugWithSuffix(t *testing.T) {
	got := slugWithSuffix("cyclone-update")
	if !strings.HasPrefix(got, "cyclone-update-") {
		t.Fatalf("suffixed slug %q does not keep the base", got)
	}
	if len(got) != len("cyclone-update-")+8 {
		t.Fatalf("suffix length wrong: %q", got)
	}

	if got := slugWithSuffix(""); len(got) != 8 {
		t.Fatalf("empty base should yield bare suffix, got %q", got)
	}
}

func TestMakeExcerptStripsMarkupAndTruncates(t *testing.T) {
	content := "<p>The <strong>committee</strong> met on Monday.</p>"
	if got := MakeExcerpt(content, 200); got != "The committee met on Monday." {
		t.Fatalf("excerpt = %q", got)
	}

	long := strings.Repeat("word ", 100)
	got := MakeExcerpt(long, 20)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated excerpt should end with ellipsis: %q", got)
	}
	if len([]rune(got)) > 21 {
		t.Fatalf("excerpt too long: %d runes", len([]rune(got)))
	}
}

func TestMakeExcerptCountsRunesNotBytes(t *testing.T) {
	bengali := strings.Repeat("খবর ", 100)
	got := MakeExcerpt(bengali, 10)
	if len([]rune(strings.TrimSuffix(got, "…"))) > 10 {
		t.Fatalf("rune budget exceeded: %q", got)
	}
}

func TestMakeExcerptDefaultBudget(t *testing.T) {
	short := "plain text"
	if got := MakeExcerpt(short, 0); got != short {
		t.Fatalf("zero max should fall back to default, got %q", got)
	}
}
