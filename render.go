package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/doc"
	"go/format"
	"go/token"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// String templates for rendered elements.

const sourceBadgeTemplate = "\n<a href=\"%s\"><img align=\"right\" style=\"float:right;\" src=\"https://img.shields.io/badge/-source-cccccc?style=flat-square\" /></a>\n"

const mdxSourceBadgeTemplate = "\n<a href=\"%s\"><img align=\"right\" style={{\"float\":\"right\"}} src=\"https://img.shields.io/badge/-source-cccccc?style=flat-square\" /></a>\n"

const separatorTemplate = "\n---\n"

// section, kind, header, signature, doc
const funcTemplate = "\n%s <kbd>%s</kbd> `%s`\n\n```go\n%s\n```\n\n%s\n"

// section, kind, header, doc, constructors, attributes, handlers, methods
const typeTemplate = "\n%s <kbd>%s</kbd> `%s`\n%s%s%s%s%s\n"

// section, header, doc, toc, globals, functions, types
const packageTemplate = "\n%s <kbd>package</kbd> `%s`\n%s\n%s%s%s%s\n"

const tocTemplate = "\n## Table of Contents\n%s\n"

// packages, types, functions
const overviewTemplate = "\n# API Overview\n\n## Packages\n%s\n\n## Types\n%s\n\n## Functions\n%s\n"

const noDocPlaceholder = "*No documentation found.*"

// Signatures longer than this wrap one parameter per line.
const signatureWrapLimit = 80

// ignoreMarker suppresses generation for an element whose doc comment
// contains it.
const ignoreMarker = "docgen:ignore"

var (
	anchorSpaceRE = regexp.MustCompile(`\s+`)
	anchorDropRE  = regexp.MustCompile(`[^a-zA-Z0-9-_]`)
)

// generatedObject is one entry in the run-wide log of rendered elements.
type generatedObject struct {
	kind        string
	name        string
	fullName    string
	pkg         string
	anchor      string
	description string
}

// markdownGenerator renders packages and accumulates the append-only log of
// generated objects used to build per-package tables of contents and the
// overview page. The log preserves insertion order.
type markdownGenerator struct {
	srcRootPath   string
	srcBaseURL    string
	urlLinePrefix string
	includeTOC    bool
	private       bool
	mdx           bool

	objects []generatedObject
}

// packageRenderer carries the per-package state: the parsed documentation
// tree and the fileset that resolves source positions.
type packageRenderer struct {
	gen  *markdownGenerator
	pkg  *doc.Package
	fset *token.FileSet
}

func (g *markdownGenerator) record(obj generatedObject) {
	g.objects = append(g.objects, obj)
}

func (g *markdownGenerator) fileExt() string {
	if g.mdx {
		return ".mdx"
	}
	return ".md"
}

// renderPackage produces the full Markdown document for one package, or ""
// when the package opts out via the ignore marker.
func (g *markdownGenerator) renderPackage(docPkg *doc.Package, fset *token.FileSet) string {
	if isIgnored(docPkg.Doc) {
		return ""
	}
	r := &packageRenderer{gen: g, pkg: docPkg, fset: fset}
	return r.renderPackage(1)
}

func (r *packageRenderer) renderPackage(depth int) string {
	header := r.packageKey()
	r.gen.record(generatedObject{
		kind:        "package",
		name:        r.pkg.Name,
		fullName:    header,
		pkg:         header,
		anchor:      anchorTag("package-" + header),
		description: docSummary(r.pkg.Doc),
	})

	body := docToMarkdown(r.pkg.Doc)

	var funcs []string
	for _, f := range orderFuncsByLine(r.fset, r.pkg.Funcs) {
		if md := r.renderFunc(f, "", "function", depth+1); md != "" {
			funcs = append(funcs, separatorTemplate+md)
		}
	}

	var types []string
	for _, t := range orderTypesByLine(r.fset, r.pkg.Types) {
		if md := r.renderType(t, depth+1); md != "" {
			types = append(types, separatorTemplate+md)
		}
	}

	toc := ""
	if r.gen.includeTOC {
		toc = r.gen.tocMarkdown(header)
	}

	markdown := fmt.Sprintf(packageTemplate,
		strings.Repeat("#", depth),
		header,
		body,
		toc,
		r.globalsSection(),
		strings.Join(funcs, "\n"),
		strings.Join(types, ""),
	)
	if badge := r.packageSourceBadge(); badge != "" {
		markdown = badge + markdown
	}
	return markdown
}

// globalsSection lists package-level constants and variables as bullets,
// ordered by source line.
func (r *packageRenderer) globalsSection() string {
	type global struct {
		line   int
		bullet string
	}
	var globals []global
	collect := func(values []*doc.Value) {
		for _, v := range values {
			for _, name := range v.Names {
				if !r.gen.private && !ast.IsExported(name) {
					continue
				}
				bullet := "- **" + name + "**"
				if summary := docSummary(v.Doc); summary != "" {
					bullet += ": " + summary
				}
				globals = append(globals, global{declLine(r.fset, v.Decl), bullet})
			}
		}
	}
	collect(r.pkg.Consts)
	collect(r.pkg.Vars)
	if len(globals) == 0 {
		return ""
	}
	sort.SliceStable(globals, func(i, j int) bool { return globals[i].line < globals[j].line })
	lines := []string{"\n**Global Variables**", "---------------"}
	for _, g := range globals {
		lines = append(lines, g.bullet)
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderFunc documents a single function or method. kind selects the <kbd>
// badge: function, method, handler, or constructor.
func (r *packageRenderer) renderFunc(f *doc.Func, receiver, kind string, depth int) string {
	if f == nil || f.Decl == nil || isIgnored(f.Doc) {
		return ""
	}
	if !r.gen.private && !ast.IsExported(f.Name) {
		return ""
	}
	header := f.Name
	if receiver != "" {
		header = receiver + "." + f.Name
	}
	body := docToMarkdown(f.Doc)
	if body == "" {
		body = noDocPlaceholder
	}
	r.gen.record(generatedObject{
		kind:        kind,
		name:        header,
		fullName:    header,
		pkg:         r.packageKey(),
		anchor:      anchorTag(kind + "-" + header),
		description: docSummary(f.Doc),
	})
	markdown := fmt.Sprintf(funcTemplate,
		strings.Repeat("#", depth), kind, header, r.renderSignature(f.Decl), body)
	if badge := r.sourceBadge(f.Decl.Pos()); badge != "" {
		markdown = badge + markdown
	}
	return markdown
}

// renderType documents a type: constructor functions first, then declared
// struct fields, then methods promoted from embedded types (handlers, ordered
// by embedding depth), then direct methods ordered by source line.
func (r *packageRenderer) renderType(t *doc.Type, depth int) string {
	if isIgnored(t.Doc) {
		return ""
	}
	if !r.gen.private && !ast.IsExported(t.Name) {
		return ""
	}
	kind := typeKind(t)
	r.gen.record(generatedObject{
		kind:        kind,
		name:        t.Name,
		fullName:    t.Name,
		pkg:         r.packageKey(),
		anchor:      anchorTag(kind + "-" + t.Name),
		description: docSummary(t.Doc),
	})

	var constructors strings.Builder
	for _, f := range t.Funcs {
		if md := r.renderFunc(f, "", "constructor", depth+1); md != "" {
			constructors.WriteString(md)
		}
	}

	var promoted, direct []*doc.Func
	for _, m := range t.Methods {
		if m.Level > 0 {
			promoted = append(promoted, m)
		} else {
			direct = append(direct, m)
		}
	}
	sort.SliceStable(promoted, func(i, j int) bool { return promoted[i].Level < promoted[j].Level })
	direct = orderFuncsByLine(r.fset, direct)

	var handlers strings.Builder
	for _, m := range promoted {
		if md := r.renderFunc(m, t.Name, "handler", depth+2); md != "" {
			handlers.WriteString(separatorTemplate + md)
		}
	}
	var methods strings.Builder
	for _, m := range direct {
		if md := r.renderFunc(m, t.Name, "method", depth+1); md != "" {
			methods.WriteString(separatorTemplate + md)
		}
	}

	markdown := fmt.Sprintf(typeTemplate,
		strings.Repeat("#", depth),
		kind,
		t.Name,
		docToMarkdown(t.Doc),
		constructors.String(),
		r.renderFields(t, depth+1),
		handlers.String(),
		methods.String(),
	)
	if badge := r.sourceBadge(t.Decl.Pos()); badge != "" {
		markdown = badge + markdown
	}
	return markdown
}

// renderFields lists struct fields in declaration order under an attributes
// heading.
func (r *packageRenderer) renderFields(t *doc.Type, depth int) string {
	spec := findTypeSpec(t.Decl, t.Name)
	if spec == nil {
		return ""
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return ""
	}
	var bullets []string
	for _, field := range st.Fields.List {
		docText := ""
		if field.Doc != nil {
			docText = field.Doc.Text()
		} else if field.Comment != nil {
			docText = field.Comment.Text()
		}
		typeText := r.formatNode(field.Type)
		for _, name := range field.Names {
			if !r.gen.private && !ast.IsExported(name.Name) {
				continue
			}
			bullet := fmt.Sprintf("- **%s** (%s)", name.Name, typeText)
			if summary := docSummary(docText); summary != "" {
				bullet += ": " + summary
			}
			bullets = append(bullets, bullet)
		}
		if len(field.Names) == 0 {
			// Embedded field.
			bullets = append(bullets, fmt.Sprintf("- **%s** (embedded)", typeText))
		}
	}
	if len(bullets) == 0 {
		return ""
	}
	return fmt.Sprintf("\n%s <kbd>attributes</kbd>\n\n%s\n",
		strings.Repeat("#", depth), strings.Join(bullets, "\n"))
}

// tocMarkdown builds a table of contents from objects recorded for pkg.
func (g *markdownGenerator) tocMarkdown(pkg string) string {
	var entries []string
	file := moduleFileName(pkg) + g.fileExt()
	for _, obj := range g.objects {
		if obj.pkg != pkg || obj.kind == "package" {
			continue
		}
		line := fmt.Sprintf("- [`%s`](./%s#%s)", obj.name, file, obj.anchor)
		if depth := strings.Count(obj.fullName, "."); depth > 0 {
			line = strings.Repeat("\t", depth) + line
		}
		entries = append(entries, line)
	}
	return fmt.Sprintf(tocTemplate, strings.Join(entries, "\n"))
}

// overviewMarkdown builds the API overview page from the object log, in
// insertion order.
func (g *markdownGenerator) overviewMarkdown() string {
	section := func(match func(kind string) bool, qualify bool, empty string) string {
		var entries strings.Builder
		for _, obj := range g.objects {
			if !match(obj.kind) {
				continue
			}
			name := obj.fullName
			if qualify {
				name = lastPathElement(obj.pkg) + "." + obj.fullName
			}
			link := "./" + moduleFileName(obj.pkg) + g.fileExt() + "#" + obj.anchor
			entries.WriteString(fmt.Sprintf("\n- [`%s`](%s)", name, link))
			if obj.description != "" {
				entries.WriteString(": " + obj.description)
			}
		}
		if entries.Len() == 0 {
			return "\n- " + empty
		}
		return entries.String()
	}
	packages := section(func(k string) bool { return k == "package" }, false, "No packages")
	types := section(func(k string) bool {
		return k == "struct" || k == "interface" || k == "type"
	}, true, "No types")
	functions := section(func(k string) bool { return k == "function" }, true, "No functions")
	return fmt.Sprintf(overviewTemplate, packages, types, functions)
}

func (r *packageRenderer) packageKey() string {
	if r.pkg.ImportPath != "" {
		return r.pkg.ImportPath
	}
	return r.pkg.Name
}

// packageSourceBadge links the package heading to its first source file.
func (r *packageRenderer) packageSourceBadge() string {
	names := append([]string(nil), r.pkg.Filenames...)
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	link := r.relativeSourcePath(names[0])
	if link == "" {
		return ""
	}
	if r.gen.srcBaseURL != "" {
		link = strings.TrimSuffix(r.gen.srcBaseURL, "/") + "/" + link
	}
	if r.gen.mdx {
		return fmt.Sprintf(mdxSourceBadgeTemplate, link)
	}
	return fmt.Sprintf(sourceBadgeTemplate, link)
}

// sourceBadge renders the floating source link, or "" when the location
// cannot be resolved.
func (r *packageRenderer) sourceBadge(pos token.Pos) string {
	link := r.sourceLink(pos)
	if link == "" {
		return ""
	}
	if r.gen.mdx {
		return fmt.Sprintf(mdxSourceBadgeTemplate, link)
	}
	return fmt.Sprintf(sourceBadgeTemplate, link)
}

// sourceLink resolves pos to a repository-relative path with a line anchor.
// Failures degrade to "" rather than an error: the element is simply rendered
// without a link.
func (r *packageRenderer) sourceLink(pos token.Pos) string {
	if r.fset == nil || !pos.IsValid() {
		return ""
	}
	position := r.fset.Position(pos)
	path := r.relativeSourcePath(position.Filename)
	if path == "" {
		return ""
	}
	prefix := r.gen.urlLinePrefix
	if prefix == "" {
		prefix = "L"
	}
	link := path + "#" + prefix + strconv.Itoa(position.Line)
	if r.gen.srcBaseURL != "" {
		link = strings.TrimSuffix(r.gen.srcBaseURL, "/") + "/" + link
	}
	return link
}

func (r *packageRenderer) relativeSourcePath(filename string) string {
	if filename == "" {
		return ""
	}
	if r.gen.srcRootPath != "" {
		rel, err := filepath.Rel(r.gen.srcRootPath, filename)
		if err != nil || strings.HasPrefix(rel, "..") {
			return ""
		}
		filename = rel
	}
	return filepath.ToSlash(filename)
}

// orderFuncsByLine sorts by source line, stable, unknown lines first.
func orderFuncsByLine(fset *token.FileSet, funcs []*doc.Func) []*doc.Func {
	ordered := append([]*doc.Func(nil), funcs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return funcDeclLine(fset, ordered[i]) < funcDeclLine(fset, ordered[j])
	})
	return ordered
}

func funcDeclLine(fset *token.FileSet, f *doc.Func) int {
	if f == nil {
		return 0
	}
	return declLine(fset, f.Decl)
}

func orderTypesByLine(fset *token.FileSet, types []*doc.Type) []*doc.Type {
	ordered := append([]*doc.Type(nil), types...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return declLine(fset, ordered[i].Decl) < declLine(fset, ordered[j].Decl)
	})
	return ordered
}

func declLine(fset *token.FileSet, node ast.Node) int {
	if node == nil || fset == nil {
		return 0
	}
	pos := node.Pos()
	if !pos.IsValid() {
		return 0
	}
	return fset.Position(pos).Line
}

func typeKind(t *doc.Type) string {
	spec := findTypeSpec(t.Decl, t.Name)
	if spec == nil {
		return "type"
	}
	switch spec.Type.(type) {
	case *ast.StructType:
		return "struct"
	case *ast.InterfaceType:
		return "interface"
	default:
		return "type"
	}
}

func findTypeSpec(decl *ast.GenDecl, name string) *ast.TypeSpec {
	if decl == nil {
		return nil
	}
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		if ts.Name != nil && ts.Name.Name == name {
			return ts
		}
	}
	return nil
}

// renderSignature formats a declaration's signature, wrapping one parameter
// per line once it outgrows signatureWrapLimit.
func (r *packageRenderer) renderSignature(decl *ast.FuncDecl) string {
	sig := r.signature(decl)
	if len(sig) <= signatureWrapLimit {
		return sig
	}
	return r.wrappedSignature(decl)
}

func (r *packageRenderer) signature(decl *ast.FuncDecl) string {
	if decl == nil || decl.Type == nil {
		return ""
	}
	var buf bytes.Buffer
	buf.WriteString("func ")
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		buf.WriteString("(")
		buf.WriteString(r.fieldText(decl.Recv.List[0]))
		buf.WriteString(") ")
	}
	buf.WriteString(decl.Name.Name)
	sig := r.formatNode(decl.Type)
	sig = strings.TrimPrefix(sig, "func")
	buf.WriteString(strings.TrimSpace(sig))
	return strings.TrimSpace(buf.String())
}

func (r *packageRenderer) wrappedSignature(decl *ast.FuncDecl) string {
	var buf bytes.Buffer
	buf.WriteString("func ")
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		buf.WriteString("(")
		buf.WriteString(r.fieldText(decl.Recv.List[0]))
		buf.WriteString(") ")
	}
	buf.WriteString(decl.Name.Name)
	buf.WriteString("(")
	if decl.Type.Params != nil {
		for _, field := range decl.Type.Params.List {
			buf.WriteString("\n    " + r.fieldText(field) + ",")
		}
	}
	buf.WriteString("\n)")
	if results := decl.Type.Results; results != nil && len(results.List) > 0 {
		parts := make([]string, 0, len(results.List))
		for _, field := range results.List {
			parts = append(parts, r.fieldText(field))
		}
		joined := strings.Join(parts, ", ")
		if len(results.List) > 1 || len(results.List[0].Names) > 0 {
			joined = "(" + joined + ")"
		}
		buf.WriteString(" " + joined)
	}
	return buf.String()
}

// fieldText renders a parameter, result, or receiver field. format.Node does
// not take *ast.Field, so names and type are printed separately.
func (r *packageRenderer) fieldText(field *ast.Field) string {
	typ := r.formatNode(field.Type)
	if len(field.Names) == 0 {
		return typ
	}
	names := make([]string, 0, len(field.Names))
	for _, name := range field.Names {
		names = append(names, name.Name)
	}
	return strings.Join(names, ", ") + " " + typ
}

func (r *packageRenderer) formatNode(node ast.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, r.fset, node); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// isIgnored reports whether a doc comment opts its element out of generation.
func isIgnored(docText string) bool {
	collapsed := strings.ToLower(strings.ReplaceAll(docText, " ", ""))
	return strings.Contains(collapsed, ignoreMarker)
}

// docSummary returns the first line of a doc comment.
func docSummary(docText string) string {
	docText = strings.TrimSpace(docText)
	if idx := strings.IndexByte(docText, '\n'); idx >= 0 {
		docText = docText[:idx]
	}
	return strings.TrimSpace(docText)
}

// anchorTag slugs a header for use in intra-document links.
func anchorTag(header string) string {
	tag := strings.ToLower(strings.TrimSpace(header))
	tag = anchorSpaceRE.ReplaceAllString(tag, "-")
	return anchorDropRE.ReplaceAllString(tag, "")
}

// moduleFileName maps an import path to its documentation file name (without
// extension).
func moduleFileName(pkgPath string) string {
	return strings.ReplaceAll(pkgPath, "/", ".")
}

func lastPathElement(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		return pkgPath[idx+1:]
	}
	return pkgPath
}
