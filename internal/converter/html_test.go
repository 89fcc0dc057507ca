package converter

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	body := []byte("# Getting Started\n\nHello **world**.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~\n")

	res, err := ToHTML(body, HTMLConfig{})
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}

	for _, want := range []string{
		`<h1 id="getting-started">Getting Started</h1>`,
		"<strong>world</strong>",
		"<table>",
		"<del>old</del>",
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("ToHTML() = %q, want it to contain %q", res.HTML, want)
		}
	}
}

func TestToHTML_RawHTML(t *testing.T) {
	body := []byte("<div class=\"note\">raw</div>\n")

	safe, err := ToHTML(body, HTMLConfig{})
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if strings.Contains(safe.HTML, `<div class="note">`) {
		t.Errorf("raw HTML should be omitted by default, got %q", safe.HTML)
	}

	unsafe, err := ToHTML(body, HTMLConfig{Unsafe: true})
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(unsafe.HTML, `<div class="note">raw</div>`) {
		t.Errorf("Unsafe should keep raw HTML, got %q", unsafe.HTML)
	}
}

func TestToHTML_Headings(t *testing.T) {
	body := []byte("# Install\n\ntext\n\n## On *Linux*\n\n## On Linux\n")

	res, err := ToHTML(body, HTMLConfig{})
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}

	want := []Heading{
		{Level: 1, ID: "install", Text: "Install"},
		{Level: 2, ID: "on-linux", Text: "On Linux"},
		{Level: 2, ID: "on-linux-1", Text: "On Linux"},
	}
	if len(res.Headings) != len(want) {
		t.Fatalf("Headings = %+v, want %+v", res.Headings, want)
	}
	for i := range want {
		if res.Headings[i] != want[i] {
			t.Errorf("Headings[%d] = %+v, want %+v", i, res.Headings[i], want[i])
		}
	}
}

func TestToHTML_Empty(t *testing.T) {
	res, err := ToHTML(nil, HTMLConfig{})
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if res.HTML != "" || len(res.Headings) != 0 {
		t.Errorf("ToHTML(nil) = %+v, want empty result", res)
	}
}
