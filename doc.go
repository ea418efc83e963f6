// # go-docgen
//
// `go-docgen` generates a Markdown API reference from Go packages whose doc
// comments follow the Google docstring conventions (`Args:`, `Returns:`,
// `Raises:`, `Examples:`, literal blocks, interactive transcripts, and
// NOTE/WARNING callouts). It loads packages with `golang.org/x/tools`, parses
// their documentation with `go/doc`, and writes one GitHub-ready Markdown file
// per package.
//
// Key capabilities:
//
//   - convert Google-style sections into Markdown: bold section headers,
//     argument lists, fenced code blocks for `::` literal bodies and `>>>`
//     transcripts, and GitHub alert blockquotes for NOTE/TIP/WARNING callouts.
//   - emit one file per package, named after its import path, plus an optional
//     API overview page and an mkdocs `.pages` navigation file.
//   - attach source badges that link every function, method, and type to its
//     file and line in the repository (`--src-base-url`, `--url-line-prefix`).
//   - order type documentation the way readers expect: constructors first,
//     declared struct fields, promoted methods from embedded types, then
//     direct methods in source order.
//   - validate the generated documents (`--validate`): cross-file links,
//     heading anchors, and code fence balance.
//   - read defaults from a `.go-docgen.yaml` config file; explicit flags
//     always win.
//   - ship a Cobra-powered CLI with rich `--help`, `--version`, shell
//     completion, and a `gen-docs` helper for publishing the CLI reference
//     itself.
//
// ## Usage
//
//	go-docgen [flags] [packages]
//
// Examples:
//
//   - Document the current module tree into ./docs:
//
//     go-docgen .
//
//   - Print a single package's documentation to stdout:
//
//     go-docgen -o - ./internal/storage
//
//   - Full reference with overview page, TOCs, and source links:
//
//     go-docgen --toc --overview-file README --src-base-url https://github.com/acme/widget/blob/main/ -o ./docs ./...
//
// ## Skipping Elements
//
// A package, type, or function whose doc comment contains `docgen:ignore` is
// left out of the generated documents. Whole package subtrees can be skipped
// with `--ignored-packages`.
//
// ## Validation
//
// With `--validate` the written documents are parsed back and checked: every
// intra-reference link must point at a generated document, every anchor must
// match a heading in its target, and code fences must balance. Problems fail
// the run; nothing is rewritten.
//
// ## CLI Docs
//
// `go-docgen` can generate Markdown for each CLI command via `gen-docs`:
//
//	go-docgen gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
