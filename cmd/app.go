package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/gohb/core/aggregator"
	"github.com/tristendillon/gohb/core/config"
	"github.com/tristendillon/gohb/core/invoker"
	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/parser"
	"github.com/tristendillon/gohb/core/state"
	"github.com/tristendillon/gohb/core/walker"
	"github.com/tristendillon/gohb/core/workspace"
)

// app bundles everything a command needs. It is built once per command
// run and handed down explicitly.
type app struct {
	dir       string
	cfg       *config.Config
	store     state.Store
	parser    parser.Parser
	workspace *workspace.Workspace
	invoker   *invoker.Invoker
}

// workspaceArg returns the optional directory argument, defaulting to the
// current directory.
func workspaceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func newApp(dir string) (*app, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("workspace %s: %w", dir, err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if apiHost != "" {
		cfg.APIHost = apiHost
	}
	if parserBin != "" {
		cfg.Parser.Path = parserBin
	}
	if stateFile != "" {
		cfg.State.Path = stateFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := state.NewFileStore(cfg.State.Path)
	if err != nil {
		return nil, err
	}

	binary := parser.Locate(cfg.Parser.Path)
	logger.Debug("Using route parser %s", binary)
	p := parser.NewExecParser(binary, cfg.Parser.Timeout)

	w := walker.NewSourceWalker(cfg.ExcludeDirs())
	agg := aggregator.New(p, w, cfg.Parser.Concurrency)

	return &app{
		dir:       dir,
		cfg:       cfg,
		store:     store,
		parser:    p,
		workspace: workspace.New(dir, cfg.EntryFile, w, agg),
		invoker:   invoker.New(cfg.APIHost, nil, cfg.Invoke.PreviewLimit),
	}, nil
}
