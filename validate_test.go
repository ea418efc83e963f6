package main

import (
	"strings"
	"testing"
)

func TestValidateCleanDocuments(t *testing.T) {
	docs := []renderedDoc{
		{name: "a.md", content: "# <kbd>package</kbd> `example.com/a`\n\n" +
			"## <kbd>struct</kbd> `Widget`\n\n" +
			"- [`Widget`](./a.md#struct-widget)\n" +
			"- [`b`](./b.md#package-examplecomb)\n" +
			"- [external](https://example.com/docs#anchor)\n"},
		{name: "b.md", content: "# <kbd>package</kbd> `example.com/b`\n"},
	}
	if problems := validateDocuments(docs); len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestValidateMissingAnchor(t *testing.T) {
	docs := []renderedDoc{
		{name: "a.md", content: "# Title\n\n[bad](#no-such-heading)\n"},
	}
	problems := validateDocuments(docs)
	if len(problems) != 1 {
		t.Fatalf("expected one problem, got %v", problems)
	}
	assertContains(t, problems[0], "matches no heading")
}

func TestValidateUnknownDocument(t *testing.T) {
	docs := []renderedDoc{
		{name: "a.md", content: "# Title\n\n[gone](./missing.md#title)\n"},
	}
	problems := validateDocuments(docs)
	if len(problems) != 1 {
		t.Fatalf("expected one problem, got %v", problems)
	}
	assertContains(t, problems[0], "unknown document")
}

func TestValidateUnbalancedFences(t *testing.T) {
	docs := []renderedDoc{
		{name: "a.md", content: "# Title\n\n```go\nx := 1\n"},
	}
	problems := validateDocuments(docs)
	if len(problems) != 1 {
		t.Fatalf("expected one problem, got %v", problems)
	}
	assertContains(t, problems[0], "unbalanced code fences")
}

func TestValidateSetextHeadingAnchor(t *testing.T) {
	docs := []renderedDoc{
		{name: "a.md", content: "**Global Variables**\n---------------\n\n[g](#global-variables)\n"},
	}
	if problems := validateDocuments(docs); len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestSplitLinkDest(t *testing.T) {
	cases := []struct {
		dest   string
		target string
		anchor string
		ok     bool
	}{
		{"#struct-widget", "self.md", "struct-widget", true},
		{"./other.md#anchor", "other.md", "anchor", true},
		{"other.md#anchor", "other.md", "anchor", true},
		{"https://example.com#x", "", "", false},
		{"./other.md", "", "", false},
	}
	for _, tc := range cases {
		target, anchor, ok := splitLinkDest("self.md", tc.dest)
		if ok != tc.ok || target != tc.target || anchor != tc.anchor {
			t.Fatalf("splitLinkDest(%q) = %q, %q, %v; want %q, %q, %v",
				tc.dest, target, anchor, ok, tc.target, tc.anchor, tc.ok)
		}
	}
}

func TestCountFenceDelimiters(t *testing.T) {
	content := strings.Join([]string{
		"```go",
		"x := 1",
		"```",
		"> ```",
		"> quoted",
		"> ```",
		"    ```python",
		"    pass",
		"    ```",
		"not ``` a fence",
	}, "\n")
	if n := countFenceDelimiters(content); n != 6 {
		t.Fatalf("got %d delimiters, want 6", n)
	}
}
