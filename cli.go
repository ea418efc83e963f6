package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
go-docgen generates Markdown API reference docs from Google-style doc comments.
It loads Go packages, parses the Args:/Returns:/Raises:/Examples: sections,
literal blocks, interactive transcripts, and NOTE/WARNING callouts embedded in
their doc comments, and writes one GitHub-ready Markdown file per package:

  • One file per discovered package, plus an optional API overview page
  • Source badges linking every element to its file and line
  • Shell completion generation for bash, zsh, fish, and PowerShell
  • A gen-docs helper that can emit Markdown reference docs for the CLI itself

Point it at one or more package patterns (defaults to ./...) and collect the
output from --output-path, or pass "-" to print everything to stdout.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout}
	cmd := &cobra.Command{
		Use:           "go-docgen [flags] [packages]",
		Short:         "Generate Markdown API docs from Google-style doc comments",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.outputPath, "output-path", "o", "./docs", "output directory for the markdown files; pass - or stdout to print")
	flags.StringVar(&app.opts.srcRootPath, "src-root-path", "", "root folder containing the sources; source links are made relative to it")
	flags.StringVar(&app.opts.srcBaseURL, "src-base-url", "", "base repo URL prefixed to all source links; should include the branch")
	flags.StringVar(&app.opts.urlLinePrefix, "url-line-prefix", "L", "line prefix for source link anchors")
	flags.StringVar(&app.opts.overviewFile, "overview-file", "", "filename of the API overview page; omitted when empty")
	flags.StringVar(&app.opts.format, "format", "md", "output format, either md or mdx")
	flags.StringSliceVar(&app.opts.ignoredPackages, "ignored-packages", nil, "package paths to skip, including their subpackages")
	flags.BoolVar(&app.opts.watermark, "watermark", true, "append a generation watermark to every written file")
	flags.BoolVar(&app.opts.includeTOC, "toc", false, "include a table of contents in each package file")
	flags.BoolVarP(&app.opts.private, "private", "u", false, "include unexported declarations")
	flags.BoolVar(&app.opts.validate, "validate", false, "validate generated markdown: anchors, links, and fence balance")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default .go-docgen.yaml when present)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := app.applyConfig(cmd.Flags()); err != nil {
			return err
		}
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const longDesc = `Generate shell completion scripts for go-docgen.

The output should be evaluated by your shell. For example:

  # bash
  go-docgen completion bash > /usr/local/etc/bash_completion.d/go-docgen

  # zsh
  go-docgen completion zsh > "${fpath[1]}/_go-docgen"

  # fish
  go-docgen completion fish | source

  # PowerShell
  go-docgen completion powershell | Out-String | Invoke-Expression
`
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-docgen gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
