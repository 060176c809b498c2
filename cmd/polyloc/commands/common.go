// Package commands implements polyloc's CLI command handlers: one file per
// subcommand, each building a cobra.Command the way codefang's
// cmd/codefang/commands package does.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/pflag"

	"github.com/polyloc/polyloc/internal/config"
	"github.com/polyloc/polyloc/internal/detect"
	"github.com/polyloc/polyloc/internal/embed"
	"github.com/polyloc/polyloc/internal/kernel"
	"github.com/polyloc/polyloc/internal/langdef"
	"github.com/polyloc/polyloc/internal/observability"
	"github.com/polyloc/polyloc/internal/scan"
	"github.com/polyloc/polyloc/internal/sibling"
	"github.com/polyloc/polyloc/internal/walk"
)

// commonFlags holds the flag set shared by every subcommand that walks a
// tree and classifies files, mirroring how every codefang subcommand binds
// the same --config/--verbose pair.
type commonFlags struct {
	configPath string
	excludes   []string
	workers    int
	noProbe    bool
}

func (f *commonFlags) bindTo(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to a .polyloc.yaml config file")
	fs.StringSliceVar(&f.excludes, "exclude", nil, "regexp pattern of paths to skip (repeatable)")
	fs.IntVar(&f.workers, "workers", 0, "concurrent directory visits (0 uses the config default)")
	fs.BoolVar(&f.noProbe, "no-probe", false, "skip the external file(1) probe fallback")
}

// loadConfig merges commonFlags over the on-disk/env config, the same
// precedence codefang's LoadConfig documents.
func (f *commonFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.noProbe {
		cfg.DisableProbe = true
	}
	cfg.Excludes = append(cfg.Excludes, f.excludes...)
	return cfg, nil
}

// buildPipeline constructs a detect.Pipeline honoring cfg.DisableProbe.
func buildPipeline(cfg *config.Config) *detect.Pipeline {
	if cfg.DisableProbe {
		return detect.New(nil)
	}
	return detect.New(detect.ExecProber{})
}

// compileExcludes joins cfg.Excludes into the single regexp
// internal/walk.Options expects, matching any one of them.
func compileExcludes(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	joined := "(" + strings.Join(patterns, ")|(") + ")"
	return regexp.Compile(joined)
}

// walkOpts builds internal/walk.Options from cfg.
func walkOpts(cfg *config.Config) (walk.Options, error) {
	excl, err := compileExcludes(cfg.Excludes)
	if err != nil {
		return walk.Options{}, fmt.Errorf("compile excludes: %w", err)
	}
	return walk.Options{Excludes: excl, Workers: cfg.Workers}, nil
}

// classifiedFile is the per-file outcome shared by every subcommand's
// walk.Visit callback: a detected language, the file's content, and any
// override applied from config.
type classifiedFile struct {
	Path string
	Lang string
	Buf  []byte
}

// classifyFile reads path and runs it through pipeline, honoring any
// config-level extension override first.
func classifyFile(ctx context.Context, pipeline *detect.Pipeline, cfg *config.Config, path string, sib *sibling.Snapshot) (classifiedFile, bool, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return classifiedFile{}, false, err
	}

	if override, ok := cfg.LanguageOverrides[extOf(path)]; ok {
		return classifiedFile{Path: path, Lang: override, Buf: buf}, true, nil
	}

	res, ok := pipeline.Detect(ctx, path, buf, sib)
	if !ok {
		return classifiedFile{}, false, nil
	}
	return classifiedFile{Path: path, Lang: res.Lang, Buf: buf}, true, nil
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

// scanInto drives either internal/scan directly or, for a markup host
// language, internal/embed's Supervisor, so callers never have to branch
// on Category themselves.
func scanInto(lang string, buf []byte, mode kernel.Mode, sink kernel.Sink) {
	l, ok := langdef.ByName(lang)
	if !ok {
		return
	}
	if l.Category == langdef.CategoryMarkup {
		embed.New(buf, mode, sink).Run(lang)
		return
	}
	scan.Scan(l, buf, mode, sink)
}

// NewLogger builds the process-wide slog.Logger from the root command's
// --verbose/--quiet flags, for main.go to install as the default logger
// before any subcommand runs.
func NewLogger(verbose, quiet bool) *slog.Logger {
	cfg := observability.DefaultConfig()
	switch {
	case quiet:
		cfg.LogLevel = slog.LevelError
	case verbose:
		cfg.LogLevel = slog.LevelDebug
	}
	return observability.NewLogger(cfg)
}
