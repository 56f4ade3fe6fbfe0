// Package app implements the application layer for sassline.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/sassline/internal/adapters/backend"
	"go.trai.ch/sassline/internal/adapters/metrics"
	"go.trai.ch/sassline/internal/adapters/sasscompiler"
	"go.trai.ch/sassline/internal/adapters/telemetry"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/engine/importer"
	"go.trai.ch/sassline/internal/engine/orchestrator"
	"go.trai.ch/sassline/internal/engine/remotecache"
	"go.trai.ch/sassline/internal/retry"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const metricsReadHeaderTimeout = 5 * time.Second

// BackendOpener opens the workspace collaborators for a configuration.
type BackendOpener interface {
	Open(cfg *domain.Config, watch bool) (*backend.Backend, error)
}

// LogSwitches is implemented by loggers whose output mode can change.
type LogSwitches interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	backends     BackendOpener
	compilerFor  func(domain.CompilerConfig) ports.Compiler
	tracing      bool
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, backends BackendOpener) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		backends:     backends,
		compilerFor: func(cfg domain.CompilerConfig) ports.Compiler {
			return sasscompiler.New(cfg, log)
		},
		tracing: true,
	}
}

// WithCompiler replaces the compiler built from the configuration.
// This is primarily used for testing.
func (a *App) WithCompiler(c ports.Compiler) *App {
	a.compilerFor = func(domain.CompilerConfig) ports.Compiler { return c }
	return a
}

// WithoutTracing leaves the global tracer provider untouched.
func (a *App) WithoutTracing() *App {
	a.tracing = false
	return a
}

// ConfigureLogging switches the logger to JSON or verbose output.
func (a *App) ConfigureLogging(json, verbose bool) {
	sw, ok := a.logger.(LogSwitches)
	if !ok {
		return
	}
	if json {
		sw.SetJSON(true)
	}
	if verbose {
		sw.SetVerbose(true)
	}
}

// CompileOptions configures a one-shot compile.
type CompileOptions struct {
	// ConfigPath is an explicit config file; empty means discovery from the working directory.
	ConfigPath string
	// Workspace overrides the configured workspace identifier.
	Workspace string
	// Path is the workspace path of the document to compile.
	Path string
}

// Compile fetches a document and runs one compile chain from it.
func (a *App) Compile(ctx context.Context, opts CompileOptions) (domain.Outcome, error) {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return domain.Outcome{}, err
	}

	eng, err := a.assemble(cfg, false)
	if err != nil {
		return domain.Outcome{}, err
	}
	defer a.release(ctx, eng)

	ws := opts.Workspace
	if ws == "" {
		ws = cfg.Workspace.ID
	}
	path := opts.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	content, err := eng.cache.GetOrFetch(ctx, ws, path)
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeFailed, Chain: []string{path}}, err
	}

	return eng.orchestrator.Compile(ctx, ws, path, content)
}

// ServeOptions configures the save loop.
type ServeOptions struct {
	ConfigPath string
}

// Serve compiles every save event until ctx is done. Failed compiles are
// logged and do not stop the loop.
//
//nolint:cyclop // orchestration function
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	eng, err := a.assemble(cfg, true)
	if err != nil {
		return err
	}
	defer a.release(ctx, eng)

	if err := eng.cache.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if eng.registry != nil {
		server := &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           metrics.HTTPHandler(eng.registry),
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}
		g.Go(func() error {
			a.logger.Info("serving metrics", "addr", cfg.Metrics.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return zerr.With(zerr.Wrap(err, "metrics server failed"), "addr", cfg.Metrics.Listen)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.WithoutCancel(gctx), time.Second)
			defer done()
			return server.Shutdown(shutdownCtx)
		})
	}

	source := eng.backend.Source
	if err := source.Start(gctx); err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	g.Go(func() error {
		<-gctx.Done()
		return source.Stop()
	})

	g.Go(func() error {
		defer cancel()

		work := errgroup.Group{}
		work.SetLimit(cfg.Serve.Concurrency)
		for ev := range source.Events() {
			work.Go(func() error {
				a.handleSave(gctx, eng.orchestrator, ev)
				return nil
			})
		}
		return work.Wait()
	})

	a.logger.Info("watching for saves", "workspace", cfg.Workspace.ID, "driver", cfg.Store.Driver)

	return g.Wait()
}

func (a *App) handleSave(ctx context.Context, orch *orchestrator.Orchestrator, ev domain.SaveEvent) {
	outcome, err := orch.HandleSave(ctx, ev)
	if err != nil {
		a.logger.Error(zerr.With(err, "path", ev.Path))
		return
	}
	switch outcome.Kind {
	case domain.OutcomeRendered:
		a.logger.Info("compiled", "chain", strings.Join(outcome.Chain, " → "))
	case domain.OutcomeIgnored:
	default:
		a.logger.Debug("nothing to compile", "path", ev.Path, "outcome", string(outcome.Kind))
	}
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	var (
		cfg *domain.Config
		err error
	)
	if path != "" {
		cfg, err = a.configLoader.LoadFile(path)
	} else {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, zerr.Wrap(cwdErr, "failed to get working directory")
		}
		cfg, err = a.configLoader.Load(cwd)
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	a.ConfigureLogging(cfg.Log.JSON, cfg.Log.Verbose)
	return cfg, nil
}

// engine is the per-run object graph built from a configuration.
type engine struct {
	backend      *backend.Backend
	cache        *remotecache.Cache
	orchestrator *orchestrator.Orchestrator
	registry     *prom.Registry
	shutdown     func(context.Context) error
}

func (a *App) assemble(cfg *domain.Config, watch bool) (*engine, error) {
	b, err := a.backends.Open(cfg, watch)
	if err != nil {
		return nil, err
	}

	eng := &engine{backend: b, shutdown: func(context.Context) error { return nil }}

	var recorder ports.Metrics = metrics.NoopRecorder{}
	if cfg.Metrics.Listen != "" {
		eng.registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(eng.registry)
	}

	if a.tracing {
		eng.shutdown = telemetry.Setup(a.logger)
	}

	policy := retry.FromConfig(cfg.Store)
	eng.cache = remotecache.New(b.Store, recorder, a.logger,
		remotecache.WithEvictionWindow(cfg.Cache.EvictionWindow),
		remotecache.WithSweepInterval(cfg.Cache.SweepInterval),
		remotecache.WithStoreTimeout(cfg.Store.Timeout),
		remotecache.WithRetryPolicy(policy),
	)

	eng.orchestrator = orchestrator.New(orchestrator.Deps{
		Cache:    eng.cache,
		Imports:  importer.New(eng.cache, a.logger),
		Compiler: a.compilerFor(cfg.Compiler),
		Store:    b.Store,
		Notifier: b.Notifier,
		Metrics:  recorder,
		Logger:   a.logger,
	},
		orchestrator.WithRetryPolicy(policy),
		orchestrator.WithStoreTimeout(cfg.Store.Timeout),
		orchestrator.WithCompileTimeout(cfg.Compiler.Timeout),
	)

	return eng, nil
}

func (a *App) release(ctx context.Context, eng *engine) {
	if err := eng.cache.Stop(); err != nil {
		a.logger.Warn("failed to stop cache sweep", "error", err.Error())
	}
	if err := eng.backend.Close(); err != nil {
		a.logger.Warn("failed to close backend", "error", err.Error())
	}
	if err := eng.shutdown(context.WithoutCancel(ctx)); err != nil {
		a.logger.Warn("failed to flush spans", "error", err.Error())
	}
}
