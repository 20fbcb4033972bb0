package utils

import (
	"strings"
	"testing"
)

func TestStringToUint(t *testing.T) {
	cases := map[string]uint{
		"1":    1,
		"42":   42,
		"0":    0,
		"":     0,
		"abc":  0,
		"-5":   0,
		"1.5":  0,
		" 7 ":  0,
		"king": 0,
	}
	for in, want := range cases {
		if got := StringToUint(in); got != want {
			t.Errorf("StringToUint(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
	if CheckPasswordHash("hunter22", "") {
		t.Fatal("empty hash accepted")
	}
}

func TestRenderMarkdownBasics(t *testing.T) {
	out := RenderMarkdown("**bold** and [a link](https://example.com)")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %s", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Errorf("link not rendered: %s", out)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := RenderMarkdown(`hello <script>alert("x")</script> world`)
	if strings.Contains(out, "<script") {
		t.Fatalf("script survived sanitization: %s", out)
	}

	out = RenderMarkdown(`[click](javascript:alert(1))`)
	if strings.Contains(out, "javascript:") {
		t.Fatalf("javascript href survived sanitization: %s", out)
	}
}
