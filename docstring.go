package main

import (
	"regexp"
	"strings"
)

// Pattern tables for Google-style doc comments. Compiled once at startup,
// never mutated.
var (
	// List sections introduce argument-style entries (name: description).
	listSectionRE = regexp.MustCompile(`(?i)^(Args:|Arg:|Arguments:|Parameters:|Kwargs:|Attributes:|Returns:|Yields:|Raises:).{0,2}$`)

	// Text sections hold free-form prose, examples, and transcripts.
	textSectionRE = regexp.MustCompile(`(?i)^(Examples?:|Todo:|References?:).{0,2}$`)

	// GitHub alert vocabulary, accepted bare ("NOTE:") or bracketed
	// ("[!WARNING]"), case-insensitive, optional plural.
	// https://docs.github.com/en/get-started/writing-on-github/getting-started-with-writing-and-formatting-on-github/basic-writing-and-formatting-syntax#alerts
	admonitionRE = regexp.MustCompile(`(?i)^(?:\[!?)?(NOTE|TIP|IMPORTANT|WARNING|CAUTION)S?[\]:][^:]?[ ]*(.*)$`)

	typedArgRE = regexp.MustCompile(`^([\w\[\]]+?)[ ]*?\((.*?)\):[ ]+(.{2,})`)
	plainArgRE = regexp.MustCompile(`^(.+):[ ]+(.{2,})$`)

	codeFenceRE = regexp.MustCompile("^```" + `[\w\-.]*[ ]*$`)
)

// sectionBlock records an open block: the line it opened on, its reference
// indent, and the padding offset that normalizes its body to a common left
// margin.
type sectionBlock struct {
	lineIndex int
	indent    int
	offset    int
}

// matchAdmonition reports whether a stripped line opens a callout, returning
// the canonical tag and the remainder text.
func matchAdmonition(line string) (tag, rest string, ok bool) {
	m := admonitionRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.ToUpper(m[1]), m[2], true
}

// indentWidth counts leading space and tab characters.
func indentWidth(line string) int {
	count := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		count++
	}
	return count
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// sectionOffset scans forward from start and returns the negated minimum
// indent delta of the block body relative to blockIndent. The scan stops at
// the first non-blank line at or below blockIndent. A body that never indents
// deeper yields 0.
func sectionOffset(lines []string, start, blockIndent int) int {
	minDelta := 0
	seen := false
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		indent := indentWidth(lines[i])
		if indent <= blockIndent {
			break
		}
		if delta := indent - blockIndent; !seen || delta < minDelta {
			minDelta = delta
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return -minDelta
}

// linesValid is the block-continuation oracle: it walks forward from start and
// reports whether the upcoming lines still belong to a block whose reference
// indent is blockIndent.
//
// allowSameLevel accepts a continuation at exactly blockIndent (deeper is
// always accepted). requireNextBlank rejects the block when the very first
// scanned line is non-blank. maxBlank bounds the run of consecutive blank
// lines; pass a negative value for no bound. Running off the end of the input
// means the block does not continue.
func linesValid(lines []string, start, blockIndent int, allowSameLevel, requireNextBlank bool, maxBlank int) bool {
	blankRun := 0
	for i := start; i < len(lines); i++ {
		indent := indentWidth(lines[i])
		line := strings.TrimSpace(lines[i])
		if requireNextBlank && i == start && line != "" {
			return false
		}
		if line != "" {
			if indent <= blockIndent {
				return allowSameLevel && indent == blockIndent
			}
			return true
		}
		if maxBlank >= 0 {
			blankRun++
			if blankRun > maxBlank {
				return false
			}
		}
	}
	return false
}

// renderDocComment converts one Google-style doc comment, given as raw lines
// already dedented of their enclosing comment syntax, into Markdown.
//
// The conversion is a single forward pass. Section headers become bold lines,
// argument entries become list items, `::` literal blocks and `>>>`
// transcripts become fenced code blocks, and NOTE/WARNING-style callouts
// become blockquoted GitHub alerts. Anything that fails to parse falls
// through to plain text with normalized padding; there is no error path.
func renderDocComment(lines []string) string {
	var (
		out         strings.Builder
		blockIndent int
		argIndent   int
		argList     bool
		sectionText bool
		blockExit   bool
		inFence     bool
		admonition  *sectionBlock
		literal     *sectionBlock
		doctest     *sectionBlock
		prevBlank   int
	)

	for i, raw := range lines {
		indent := indentWidth(raw)
		line := strings.TrimLeft(raw, " \t")
		offset := 0

		// List and text sections close only on a non-blank line at or below
		// the reference indent that follows a blank line. Fenced, literal,
		// and doctest blocks close on the first under-indented line
		// regardless of blank lines. The asymmetry is deliberate.
		if (argList || sectionText) && indent <= blockIndent && prevBlank > 0 && line != "" {
			argList = false
			sectionText = false
			blockIndent = 0
		}

		// Header detection is suppressed inside a fence: fenced content is
		// opaque passthrough.
		listHeader := !inFence && listSectionRE.MatchString(line)
		textHeader := !inFence && textSectionRE.MatchString(line)

		if tag, rest, ok := matchAdmonition(line); ok && !inFence && admonition == nil {
			admonition = &sectionBlock{i, indent, sectionOffset(lines, i+1, indent)}
			line = "[!" + tag + "] " + rest
		}

		switch {
		case codeFenceRE.MatchString(line):
			inFence = !inFence
		case strings.HasPrefix(line, ">>>") && doctest == nil:
			line = "```python\n" + line
			if linesValid(lines, i+1, indent, true, false, 1) {
				doctest = &sectionBlock{i, indent, 0}
				inFence = true
			} else {
				// Single-line transcript: close the fence immediately.
				line += "\n```"
			}
		case doctest != nil && !linesValid(lines, i+1, doctest.indent, true, false, 1):
			offset = doctest.indent - indent
			line = pad(indent-doctest.indent+doctest.offset) + line + "\n```"
			blockExit = true
		case strings.HasSuffix(line, "::") && literal == nil && linesValid(lines, i+1, indent, false, true, -1):
			literal = &sectionBlock{i, indent, sectionOffset(lines, i+1, indent)}
			if strings.HasPrefix(line, "::") {
				line = strings.ReplaceAll(line, "::", "")
			} else {
				line = strings.ReplaceAll(line, "::", ":")
			}
			inFence = true
		case literal != nil:
			switch {
			case i == literal.lineIndex+1 && line == "":
				// The blank line after the introducer carries the opening
				// fence.
				line = "```"
				indent = literal.indent
			case !linesValid(lines, i+1, literal.indent, false, false, -1):
				offset += literal.indent - indent
				line = pad(indent-literal.indent+literal.offset) + line + "\n```"
				blockExit = true
			case line != "":
				offset += literal.offset
			}
		}

		if admonition != nil {
			if inFence {
				// Re-indent relative to the innermost open block before the
				// blockquote marker is applied.
				var padding int
				switch {
				case literal != nil:
					padding = max(indent-literal.indent, 0)
				case doctest != nil:
					padding = max(indent-doctest.indent, 0)
				default:
					padding = max(indent-admonition.indent+admonition.offset, 0)
				}
				line = pad(padding+offset) + line
			}
			offset = admonition.indent - indent
			line = "> " + strings.ReplaceAll(line, "\n", "\n> ")
			if !linesValid(lines, i+1, admonition.indent, false, false, -1) {
				admonition = nil
			}
		}

		switch {
		case listHeader || textHeader:
			blockIndent = indent
			argList = listHeader
			sectionText = textHeader
			if prevBlank <= 1 {
				out.WriteString("\n")
			}
			out.WriteString("**" + strings.TrimSpace(line) + "**\n")
		case indent > blockIndent && (argList || sectionText):
			switch {
			case argList && literal == nil && typedArgRE.MatchString(line):
				out.WriteString("- " + typedArgRE.ReplaceAllString(line, "**${1}** (${2}): ${3}"))
				argIndent = indent
			case argList && literal == nil && plainArgRE.MatchString(line):
				out.WriteString("- " + plainArgRE.ReplaceAllString(line, "**${1}**: ${2}"))
				argIndent = indent
			case indent > argIndent:
				// Continuation of the previous entry's description.
				padding := pad(max(indent-argIndent+offset, 0))
				out.WriteString(padding + strings.ReplaceAll(line, "\n", "\n"+padding))
			default:
				padding := pad(max(indent-blockIndent+offset, 0))
				out.WriteString(strings.ReplaceAll(line, "\n", "\n"+padding))
			}
		case line != "":
			padding := pad(max(indent-blockIndent+offset, 0))
			out.WriteString(padding + strings.ReplaceAll(line, "\n", "\n"+padding))
		default:
			out.WriteString(line)
		}
		out.WriteString("\n")

		if blockExit {
			blockExit = false
			inFence = false
			if literal != nil {
				literal = nil
			} else {
				doctest = nil
			}
		}

		if strings.TrimSpace(line) != "" {
			prevBlank = 0
		} else {
			prevBlank++
		}
	}

	// An input may end with a fence still open, either its own unbalanced
	// delimiter or a transcript cut short. Close it so every opening fence in
	// the output has a partner.
	if inFence {
		out.WriteString("```\n")
	}

	return trimTrailingSpace(out.String())
}

// docToMarkdown is the string-level entry point used by the renderers.
func docToMarkdown(doc string) string {
	if strings.TrimSpace(doc) == "" {
		return ""
	}
	return renderDocComment(strings.Split(doc, "\n"))
}

// trimTrailingSpace removes trailing spaces and tabs from every line. Emitted
// lines never end in whitespace, for any input.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
