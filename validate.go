package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var htmlTagRE = regexp.MustCompile(`<[^>]+>`)

// validateDocuments parses every generated document with goldmark and
// reports structural problems: links whose anchors match no heading, links to
// documents that were never generated, and unbalanced code fences. Problems
// are reported, never fixed.
func validateDocuments(docs []renderedDoc) []string {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	type linkRef struct {
		doc  string
		dest string
	}
	anchors := make(map[string]map[string]bool, len(docs))
	var links []linkRef
	var problems []string

	for _, d := range docs {
		source := []byte(d.content)
		root := md.Parser().Parse(text.NewReader(source))
		anchors[d.name] = map[string]bool{}
		_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch node := n.(type) {
			case *ast.Heading:
				anchors[d.name][headingAnchor(node, source)] = true
			case *ast.Link:
				links = append(links, linkRef{doc: d.name, dest: string(node.Destination)})
			}
			return ast.WalkContinue, nil
		})
		if n := countFenceDelimiters(d.content); n%2 != 0 {
			problems = append(problems, fmt.Sprintf("%s: unbalanced code fences (%d delimiters)", d.name, n))
		}
	}

	for _, ref := range links {
		target, anchor, ok := splitLinkDest(ref.doc, ref.dest)
		if !ok {
			continue
		}
		targetAnchors, known := anchors[target]
		if !known {
			problems = append(problems, fmt.Sprintf("%s: link %q points at an unknown document", ref.doc, ref.dest))
			continue
		}
		if anchor != "" && !targetAnchors[anchor] {
			problems = append(problems, fmt.Sprintf("%s: link %q matches no heading in %s", ref.doc, ref.dest, target))
		}
	}
	return problems
}

// headingAnchor reduces a heading's raw text to the slug scheme used when
// links were generated: HTML tags and code spans stripped, whitespace to
// dashes, everything else dropped.
func headingAnchor(node *ast.Heading, source []byte) string {
	var raw strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		raw.Write(seg.Value(source))
	}
	cleaned := htmlTagRE.ReplaceAllString(raw.String(), "")
	cleaned = strings.ReplaceAll(cleaned, "`", "")
	cleaned = strings.TrimLeft(cleaned, "# ")
	return anchorTag(cleaned)
}

// splitLinkDest resolves a link destination to (document, anchor). External
// URLs and fragment-less relative links are out of scope.
func splitLinkDest(fromDoc, dest string) (string, string, bool) {
	if strings.Contains(dest, "://") {
		return "", "", false
	}
	target, anchor, found := strings.Cut(dest, "#")
	if !found {
		return "", "", false
	}
	target = strings.TrimPrefix(target, "./")
	if target == "" {
		target = fromDoc
	}
	return target, anchor, true
}

// countFenceDelimiters counts fence delimiter lines, including ones nested
// inside blockquotes.
func countFenceDelimiters(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimLeft(line, " \t")
		for strings.HasPrefix(line, ">") {
			line = strings.TrimLeft(strings.TrimPrefix(line, ">"), " \t")
		}
		if codeFenceRE.MatchString(line) {
			n++
		}
	}
	return n
}
