package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given.
const defaultConfigFile = ".go-docgen.yaml"

// Sentinel errors for config operations.
var (
	errConfigNotFound = errors.New("config file not found")
	errConfigParse    = errors.New("failed to parse config")
)

// fileConfig mirrors the command-line flags. Explicit flags always win over
// config file values.
type fileConfig struct {
	OutputPath      string   `yaml:"outputPath"`
	SrcRootPath     string   `yaml:"srcRootPath"`
	SrcBaseURL      string   `yaml:"srcBaseUrl"`
	URLLinePrefix   string   `yaml:"urlLinePrefix"`
	OverviewFile    string   `yaml:"overviewFile"`
	Format          string   `yaml:"format"`
	IgnoredPackages []string `yaml:"ignoredPackages"`
	Watermark       *bool    `yaml:"watermark"`
	TOC             *bool    `yaml:"toc"`
	Private         *bool    `yaml:"private"`
	Validate        *bool    `yaml:"validate"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errConfigNotFound, path)
		}
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", errConfigParse, err)
	}
	return &cfg, nil
}

// applyConfig merges config file values under any flags the user did not set
// on the command line. A missing default config file is not an error; a
// missing explicit --config file is.
func (app *cliApp) applyConfig(flags *pflag.FlagSet) error {
	path := app.opts.configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		if !explicit && errors.Is(err, errConfigNotFound) {
			return nil
		}
		return err
	}
	setString := func(flag string, dst *string, val string) {
		if val != "" && !flags.Changed(flag) {
			*dst = val
		}
	}
	setBool := func(flag string, dst *bool, val *bool) {
		if val != nil && !flags.Changed(flag) {
			*dst = *val
		}
	}
	setString("output-path", &app.opts.outputPath, cfg.OutputPath)
	setString("src-root-path", &app.opts.srcRootPath, cfg.SrcRootPath)
	setString("src-base-url", &app.opts.srcBaseURL, cfg.SrcBaseURL)
	setString("url-line-prefix", &app.opts.urlLinePrefix, cfg.URLLinePrefix)
	setString("overview-file", &app.opts.overviewFile, cfg.OverviewFile)
	setString("format", &app.opts.format, cfg.Format)
	if len(cfg.IgnoredPackages) > 0 && !flags.Changed("ignored-packages") {
		app.opts.ignoredPackages = cfg.IgnoredPackages
	}
	setBool("watermark", &app.opts.watermark, cfg.Watermark)
	setBool("toc", &app.opts.includeTOC, cfg.TOC)
	setBool("private", &app.opts.private, cfg.Private)
	setBool("validate", &app.opts.validate, cfg.Validate)
	return nil
}
