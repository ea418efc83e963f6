package main

import (
	"context"
	"fmt"
	"go/doc"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"
)

const watermarkTemplate = "\n\n---\n\n_This file was automatically generated via [go-docgen](https://github.com/agentflare-ai/go-docgen) on %s._\n"

const mkdocsPagesTemplate = "title: API Reference\nnav:\n    - Overview: %s\n    - ...\n"

type options struct {
	outputPath      string
	srcRootPath     string
	srcBaseURL      string
	urlLinePrefix   string
	overviewFile    string
	format          string
	configPath      string
	ignoredPackages []string
	watermark       bool
	includeTOC      bool
	private         bool
	validate        bool
}

type cliApp struct {
	stdout io.Writer
	opts   options
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

// renderedDoc pairs a written (or printed) document with its file name, for
// cross-document link validation.
type renderedDoc struct {
	name    string
	content string
}

func (app *cliApp) execute(ctx context.Context, patterns []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := app.opts
	if opts.format != "md" && opts.format != "mdx" {
		return fmt.Errorf("unsupported output format %q: choose either %q or %q", opts.format, "md", "mdx")
	}
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	stdoutMode := opts.outputPath == "-" || strings.EqualFold(opts.outputPath, "stdout")

	gen := &markdownGenerator{
		srcRootPath:   opts.srcRootPath,
		srcBaseURL:    opts.srcBaseURL,
		urlLinePrefix: opts.urlLinePrefix,
		includeTOC:    opts.includeTOC,
		private:       opts.private,
		mdx:           opts.format == "mdx",
	}
	if gen.srcRootPath == "" {
		gen.srcRootPath = resolveBaseDir(patterns[0])
	}

	var docs []renderedDoc
	for _, pattern := range patterns {
		pkgs, err := loadPackageTree(ctx, pattern)
		if err != nil {
			return err
		}
		if len(pkgs) == 0 {
			return fmt.Errorf("no Go packages matched %q", pattern)
		}
		for _, pkgInfo := range pkgs {
			if isPackageIgnored(pkgInfo.PkgPath, opts.ignoredPackages) {
				continue
			}
			if len(pkgInfo.Errors) > 0 {
				fmt.Fprintf(app.stdout, "Failed to generate docs for package %s: %v\n", pkgInfo.PkgPath, pkgInfo.Errors[0])
				continue
			}
			docPkg, err := buildDocPackage(pkgInfo, opts)
			if err != nil {
				fmt.Fprintf(app.stdout, "Failed to generate docs for package %s: %v\n", pkgInfo.PkgPath, err)
				continue
			}
			markdown := gen.renderPackage(docPkg, pkgInfo.Fset)
			if markdown == "" {
				continue
			}
			if stdoutMode {
				fmt.Fprintln(app.stdout, markdown)
				continue
			}
			name := moduleFileName(packageKeyFor(pkgInfo)) + gen.fileExt()
			content := finalizeMarkdown(markdown, opts.watermark)
			if err := writeMarkdownFile(app.stdout, opts.outputPath, name, content); err != nil {
				return err
			}
			docs = append(docs, renderedDoc{name: name, content: content})
		}
	}

	if opts.overviewFile != "" && !stdoutMode {
		name := opts.overviewFile
		if !strings.HasSuffix(name, gen.fileExt()) {
			name += gen.fileExt()
		}
		content := finalizeMarkdown(gen.overviewMarkdown(), opts.watermark)
		if err := writeMarkdownFile(app.stdout, opts.outputPath, name, content); err != nil {
			return err
		}
		docs = append(docs, renderedDoc{name: name, content: content})
		fmt.Fprintln(app.stdout, "Writing mkdocs .pages file.")
		pages := fmt.Sprintf(mkdocsPagesTemplate, name)
		if err := os.WriteFile(filepath.Join(opts.outputPath, ".pages"), []byte(pages), 0o644); err != nil {
			return err
		}
	}

	if opts.validate {
		if problems := validateDocuments(docs); len(problems) > 0 {
			return fmt.Errorf("validation failed:\n  %s", strings.Join(problems, "\n  "))
		}
	}
	return nil
}

// finalizeMarkdown adds the markdownlint prologue and the optional watermark
// footer to a document about to be written.
func finalizeMarkdown(markdown string, watermark bool) string {
	if markdown == "" {
		return ""
	}
	out := "<!-- markdownlint-disable -->\n" + markdown
	if watermark {
		out += fmt.Sprintf(watermarkTemplate, time.Now().Format("02 Jan 2006"))
	}
	return out
}

func writeMarkdownFile(stdout io.Writer, outDir, name, content string) error {
	if content == "" {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Writing %s.\n", name)
	return os.WriteFile(filepath.Join(outDir, name), []byte(content), 0o644)
}

// isPackageIgnored matches a package against ignore entries; an entry ignores
// the package itself and everything below it.
func isPackageIgnored(pkgPath string, ignored []string) bool {
	for _, entry := range ignored {
		if entry == "" {
			continue
		}
		if pkgPath == entry || strings.HasPrefix(pkgPath, entry+"/") {
			return true
		}
	}
	return false
}

func packageKeyFor(pkg *packages.Package) string {
	if pkg.PkgPath != "" {
		return pkg.PkgPath
	}
	return pkg.Name
}

func buildDocPackage(pkgInfo *packages.Package, opts options) (*doc.Package, error) {
	// AllMethods keeps promoted methods visible so embedded handlers can be
	// rendered.
	mode := doc.AllMethods
	if opts.private {
		mode |= doc.AllDecls
	}
	return doc.NewFromFiles(pkgInfo.Fset, pkgInfo.Syntax, pkgInfo.PkgPath, mode)
}

func loadPackageTree(ctx context.Context, root string) ([]*packages.Package, error) {
	patterns := buildPatterns(root)
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, err
	}
	unique := make(map[string]*packages.Package)
	for _, pkg := range pkgs {
		key := pkg.PkgPath
		if key == "" {
			key = packageDir(pkg)
		}
		unique[key] = pkg
	}
	result := make([]*packages.Package, 0, len(unique))
	for _, pkg := range unique {
		result = append(result, pkg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PkgPath < result[j].PkgPath
	})
	return result, nil
}

func buildPatterns(root string) []string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = filepath.ToSlash(root)
	patterns := []string{root}
	if !strings.Contains(root, "...") {
		recursive := root
		if recursive == "." {
			recursive = "./..."
		} else if strings.HasSuffix(recursive, "/") {
			recursive = recursive + "..."
		} else {
			recursive = recursive + "/..."
		}
		patterns = append(patterns, recursive)
	}
	return patterns
}

func resolveBaseDir(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	root = strings.TrimSuffix(root, "/...")
	root = strings.TrimSuffix(root, "\\...")
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return ""
	}
	base, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	return base
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return ""
}
