package main

import (
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

const fixtureSrc = `// Package fixture exercises the renderer.
package fixture

// Answer is a sample constant.
const Answer = 42

// Base provides embedded behavior.
type Base struct{}

// Serve handles a request.
func (b Base) Serve() {}

// Widget is a sample struct.
type Widget struct {
	Base

	// Name identifies the widget.
	Name string
}

// NewWidget builds a Widget.
func NewWidget() *Widget { return &Widget{} }

// Zed comes first in the source.
func (w *Widget) Zed() {}

// Alpha comes second in the source.
func (w *Widget) Alpha() {}

// hiddenHelper is unexported.
func hiddenHelper() {}

// IgnoredFunc is excluded from generation.
//
// docgen:ignore
func IgnoredFunc() {}

func Bare() {}

// Configure applies settings.
func Configure(firstParameter string, secondParameter string, thirdParameter map[string]string) (string, error) {
	return "", nil
}
`

func parseFixture(t *testing.T, mode doc.Mode) (*token.FileSet, *doc.Package) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", fixtureSrc, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	docPkg, err := doc.NewFromFiles(fset, []*ast.File{file}, "example.com/fixture", mode)
	if err != nil {
		t.Fatalf("build doc package: %v", err)
	}
	return fset, docPkg
}

func TestRenderPackageFixture(t *testing.T) {
	fset, docPkg := parseFixture(t, doc.AllMethods)
	gen := &markdownGenerator{includeTOC: true}
	out := gen.renderPackage(docPkg, fset)

	assertContains(t, out, "# <kbd>package</kbd> `example.com/fixture`")
	assertContains(t, out, "Package fixture exercises the renderer.")
	assertContains(t, out, "## Table of Contents")
	assertContains(t, out, "**Global Variables**")
	assertContains(t, out, "- **Answer**: Answer is a sample constant.")
	assertContains(t, out, "<kbd>constructor</kbd> `NewWidget`")
	assertContains(t, out, "<kbd>struct</kbd> `Widget`")
	assertContains(t, out, "<kbd>handler</kbd> `Widget.Serve`")
	assertContains(t, out, "<kbd>method</kbd> `Widget.Zed`")
	assertContains(t, out, "- **Name** (string): Name identifies the widget.")
	assertContains(t, out, "- **Base** (embedded)")
	assertContains(t, out, "img.shields.io/badge/-source")
	assertContains(t, out, noDocPlaceholder)

	if strings.Contains(out, "IgnoredFunc") {
		t.Fatalf("ignored function rendered:\n%s", out)
	}
	if strings.Contains(out, "hiddenHelper") {
		t.Fatalf("unexported function rendered without --private:\n%s", out)
	}

	// Widget members come out in a fixed order: constructors, attributes,
	// handlers, then direct methods by source line.
	assertOrder(t, out, "<kbd>constructor</kbd> `NewWidget`", "<kbd>attributes</kbd>")
	assertOrder(t, out, "<kbd>attributes</kbd>", "<kbd>handler</kbd> `Widget.Serve`")
	assertOrder(t, out, "<kbd>handler</kbd> `Widget.Serve`", "<kbd>method</kbd> `Widget.Zed`")
	assertOrder(t, out, "<kbd>method</kbd> `Widget.Zed`", "<kbd>method</kbd> `Widget.Alpha`")
}

func TestRenderPackagePrivate(t *testing.T) {
	fset, docPkg := parseFixture(t, doc.AllMethods|doc.AllDecls)
	gen := &markdownGenerator{private: true}
	out := gen.renderPackage(docPkg, fset)
	assertContains(t, out, "`hiddenHelper`")
}

func TestSignatureWrapsLongParameterLists(t *testing.T) {
	fset, docPkg := parseFixture(t, doc.AllMethods)
	gen := &markdownGenerator{}
	out := gen.renderPackage(docPkg, fset)
	assertContains(t, out, "func Configure(\n"+
		"    firstParameter string,\n"+
		"    secondParameter string,\n"+
		"    thirdParameter map[string]string,\n"+
		") (string, error)")
}

func TestShortSignatureStaysOnOneLine(t *testing.T) {
	fset, docPkg := parseFixture(t, doc.AllMethods)
	gen := &markdownGenerator{}
	out := gen.renderPackage(docPkg, fset)
	assertContains(t, out, "func NewWidget() *Widget")
	assertContains(t, out, "func (w *Widget) Zed()")
}

func TestTOCNestsQualifiedNames(t *testing.T) {
	fset, docPkg := parseFixture(t, doc.AllMethods)
	gen := &markdownGenerator{includeTOC: true}
	out := gen.renderPackage(docPkg, fset)
	assertContains(t, out, "- [`Bare`](./example.com.fixture.md#function-bare)")
	assertContains(t, out, "\t- [`Widget.Zed`](./example.com.fixture.md#method-widgetzed)")
}

func TestOverviewMarkdown(t *testing.T) {
	gen := &markdownGenerator{}
	gen.record(generatedObject{kind: "package", name: "fixture", fullName: "example.com/fixture",
		pkg: "example.com/fixture", anchor: "package-examplecomfixture", description: "Sample package."})
	gen.record(generatedObject{kind: "struct", name: "Widget", fullName: "Widget",
		pkg: "example.com/fixture", anchor: "struct-widget", description: "A widget."})
	gen.record(generatedObject{kind: "function", name: "Bare", fullName: "Bare",
		pkg: "example.com/fixture", anchor: "function-bare"})

	out := gen.overviewMarkdown()
	assertContains(t, out, "# API Overview")
	assertContains(t, out, "- [`example.com/fixture`](./example.com.fixture.md#package-examplecomfixture): Sample package.")
	assertContains(t, out, "- [`fixture.Widget`](./example.com.fixture.md#struct-widget): A widget.")
	assertContains(t, out, "- [`fixture.Bare`](./example.com.fixture.md#function-bare)")
}

func TestOverviewMarkdownEmpty(t *testing.T) {
	gen := &markdownGenerator{}
	out := gen.overviewMarkdown()
	assertContains(t, out, "- No packages")
	assertContains(t, out, "- No types")
	assertContains(t, out, "- No functions")
}

func TestMdxOutput(t *testing.T) {
	fset, docPkg := parseFixture(t, doc.AllMethods)
	gen := &markdownGenerator{mdx: true}
	out := gen.renderPackage(docPkg, fset)
	if gen.fileExt() != ".mdx" {
		t.Fatalf("fileExt = %q", gen.fileExt())
	}
	assertContains(t, out, `style={{"float":"right"}}`)
}

func TestAnchorTag(t *testing.T) {
	cases := []struct{ in, want string }{
		{"method-Widget.Zed", "method-widgetzed"},
		{"package-example.com/fixture", "package-examplecomfixture"},
		{"Some  Header Text", "some-header-text"},
		{"already-fine_tag", "already-fine_tag"},
	}
	for _, tc := range cases {
		if got := anchorTag(tc.in); got != tc.want {
			t.Fatalf("anchorTag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDocSummary(t *testing.T) {
	if got := docSummary("First line.\nSecond line."); got != "First line." {
		t.Fatalf("got %q", got)
	}
	if got := docSummary("  \n"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestIsIgnored(t *testing.T) {
	if !isIgnored("Something.\n\ndocgen:ignore\n") {
		t.Fatal("marker not detected")
	}
	if !isIgnored("DOCGEN: IGNORE") {
		t.Fatal("spaced marker not detected")
	}
	if isIgnored("perfectly normal docs") {
		t.Fatal("false positive")
	}
}

func TestModuleFileName(t *testing.T) {
	if got := moduleFileName("github.com/acme/widget/internal/store"); got != "github.com.acme.widget.internal.store" {
		t.Fatalf("got %q", got)
	}
}

func TestLastPathElement(t *testing.T) {
	if got := lastPathElement("github.com/acme/widget"); got != "widget" {
		t.Fatalf("got %q", got)
	}
	if got := lastPathElement("widget"); got != "widget" {
		t.Fatalf("got %q", got)
	}
}

func assertOrder(t *testing.T, text, first, second string) {
	t.Helper()
	i := strings.Index(text, first)
	j := strings.Index(text, second)
	if i == -1 || j == -1 {
		t.Fatalf("missing %q or %q in output", first, second)
	}
	if j <= i {
		t.Fatalf("expected %q before %q", first, second)
	}
}
