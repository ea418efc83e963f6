package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docgen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
outputPath: ./out
srcBaseUrl: https://github.com/acme/widget/blob/main/
format: mdx
ignoredPackages:
  - example.com/skip
watermark: false
toc: true
`)
	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputPath != "./out" {
		t.Fatalf("outputPath = %q", cfg.OutputPath)
	}
	if cfg.SrcBaseURL != "https://github.com/acme/widget/blob/main/" {
		t.Fatalf("srcBaseUrl = %q", cfg.SrcBaseURL)
	}
	if cfg.Format != "mdx" {
		t.Fatalf("format = %q", cfg.Format)
	}
	if len(cfg.IgnoredPackages) != 1 || cfg.IgnoredPackages[0] != "example.com/skip" {
		t.Fatalf("ignoredPackages = %v", cfg.IgnoredPackages)
	}
	if cfg.Watermark == nil || *cfg.Watermark {
		t.Fatalf("watermark = %v", cfg.Watermark)
	}
	if cfg.TOC == nil || !*cfg.TOC {
		t.Fatalf("toc = %v", cfg.TOC)
	}
	if cfg.Private != nil {
		t.Fatalf("private should stay unset, got %v", *cfg.Private)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, errConfigNotFound) {
		t.Fatalf("expected errConfigNotFound, got %v", err)
	}
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "outputPath: ./out\nnotAnOption: true\n")
	_, err := loadConfigFile(path)
	if !errors.Is(err, errConfigParse) {
		t.Fatalf("expected errConfigParse, got %v", err)
	}
}

func TestApplyConfigMergesUnsetFlags(t *testing.T) {
	path := writeConfig(t, "outputPath: ./from-config\nwatermark: false\nprivate: true\n")
	app := &cliApp{stdout: os.Stdout}
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Flags().Parse([]string{"--watermark=true"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	app.opts.outputPath = "./docs"
	app.opts.watermark = true
	app.opts.configPath = path
	if err := app.applyConfig(cmd.Flags()); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if app.opts.outputPath != "./from-config" {
		t.Fatalf("outputPath = %q, want config value", app.opts.outputPath)
	}
	if !app.opts.watermark {
		t.Fatal("explicit --watermark=true should beat the config file")
	}
	if !app.opts.private {
		t.Fatal("private should come from the config file")
	}
}
