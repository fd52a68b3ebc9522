package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/nodeshop/internal/cache"
	"github.com/vk/nodeshop/internal/ctxlog"
	"github.com/vk/nodeshop/internal/document"
	"github.com/vk/nodeshop/internal/executor"
	"github.com/vk/nodeshop/internal/fsutil"
	"github.com/vk/nodeshop/internal/graph"
	"github.com/vk/nodeshop/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
}

// New builds a fully initialized App with its own isolated logger and
// registry. When no modules are given the built-in set is registered.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	// The logger reaches the engine through ctxlog; the executor adds the
	// per-run correlation id to its records.
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(outW, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler).With("engine", "nodeshop")
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			return nil, fmt.Errorf("failed to register module: %w", err)
		}
	}
	logger.Debug("All modules registered.", "functions", len(reg.FuncNames()))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run loads the graph document and evaluates it the configured number of
// times against one cache, so repeat runs exercise incremental reuse.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	g, err := a.loadGraph(ctx)
	if err != nil {
		return err
	}

	requested := make([]graph.NodeIndex, len(a.config.Requested))
	for i, idx := range a.config.Requested {
		requested[i] = graph.NodeIndex(idx)
	}

	c := cache.New()
	ectx := executor.NewContext(a.registry)
	for i := 0; i < a.config.Runs; i++ {
		c, err = executor.Run(ctx, g, requested, ectx, c)
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
	}
	return nil
}

// loadGraph locates and parses the configured graph document.
func (a *App) loadGraph(ctx context.Context) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	docs, err := fsutil.FindGraphDocuments(a.config.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("failed to locate graph document: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .hcl graph document found at %s", a.config.GraphPath)
	}
	if len(docs) > 1 {
		return nil, fmt.Errorf("expected one graph document at %s, found %d", a.config.GraphPath, len(docs))
	}

	src, err := os.ReadFile(docs[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("Graph document located.", "file", docs[0])

	return document.Load(ctx, src, docs[0], a.registry)
}
