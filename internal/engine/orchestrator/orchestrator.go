// Package orchestrator drives a compile chain from a saved source document
// to a rendered style sheet in the workspace store.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/engine/directive"
	"go.trai.ch/sassline/internal/engine/pathresolve"
	"go.trai.ch/sassline/internal/retry"
	"go.trai.ch/zerr"
)

// TracerName is the instrumentation scope of orchestrator spans.
const TracerName = "go.trai.ch/sassline/orchestrator"

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Cache    ports.ContentCache
	Imports  ports.ImportResolver
	Compiler ports.Compiler
	Store    ports.Store
	Notifier ports.Notifier
	Metrics  ports.Metrics
	Logger   ports.Logger
}

// Orchestrator runs compile chains.
type Orchestrator struct {
	Deps

	policy         retry.Policy
	storeTimeout   time.Duration
	compileTimeout time.Duration
	tracer         trace.Tracer
	newID          func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetryPolicy sets the retry policy for store writes.
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithStoreTimeout bounds each store write.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.storeTimeout = d }
}

// WithCompileTimeout bounds each compiler invocation.
func WithCompileTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.compileTimeout = d }
}

// WithTracer sets the tracer used for compile spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// WithIDGenerator replaces the job ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) { o.newID = fn }
}

// New creates an Orchestrator.
func New(deps Deps, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		Deps:           deps,
		policy:         retry.Policy{Attempts: 1},
		storeTimeout:   domain.DefaultStoreTimeout,
		compileTimeout: domain.DefaultCompilerTimeout,
		tracer:         otel.Tracer(TracerName),
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HandleSave compiles a saved document. Saves of non-source documents are
// ignored. A cached copy of the document is updated in place first so that
// chains passing through it see the saved text.
func (o *Orchestrator) HandleSave(ctx context.Context, ev domain.SaveEvent) (domain.Outcome, error) {
	if !domain.IsSourceExtension(ev.Extension) {
		return domain.Outcome{Kind: domain.OutcomeIgnored}, nil
	}

	text := []byte(ev.Text)
	if _, ok := o.Cache.Peek(ev.WorkspaceID, ev.Path); ok {
		o.Cache.Replace(ev.WorkspaceID, ev.Path, text)
	}

	return o.Compile(ctx, ev.WorkspaceID, ev.Path, text)
}

// Compile runs one compile chain starting at sourcePath.
//
// A document without an out directive and a destination equal to the
// source are silent outcomes with a nil error. Every other failure is
// shown through the notifier and returned.
func (o *Orchestrator) Compile(ctx context.Context, workspaceID, sourcePath string, content []byte) (domain.Outcome, error) {
	outcome := domain.Outcome{JobID: o.newID()}

	ctx, span := o.tracer.Start(ctx, "compile", trace.WithAttributes(
		attribute.String("sassline.job", outcome.JobID),
		attribute.String("sassline.workspace", workspaceID),
		attribute.String("sassline.path", sourcePath),
	))
	defer span.End()

	kind, dest, chain, err := o.walk(ctx, outcome.JobID, workspaceID, sourcePath, content)
	outcome.Kind = kind
	outcome.Destination = dest
	outcome.Chain = chain

	span.SetAttributes(attribute.String("sassline.outcome", string(kind)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		err = zerr.With(err, "job", outcome.JobID)
	}

	o.Metrics.CompileOutcome(string(kind))
	o.Logger.Debug("compile finished", "job", outcome.JobID, "outcome", string(kind), "chain", strings.Join(chain, " → "))

	return outcome, err
}

// walk follows out directives until a terminal destination is reached.
//
//nolint:cyclop // one branch per directive outcome
func (o *Orchestrator) walk(
	ctx context.Context,
	jobID, workspaceID, sourcePath string,
	content []byte,
) (domain.OutcomeKind, string, []string, error) {
	visited := map[domain.CacheKey]struct{}{
		{WorkspaceID: workspaceID, Path: sourcePath}: {},
	}
	chain := []string{sourcePath}

	for {
		opts := directive.Parse(content)
		out, ok := opts.Out()
		if !ok {
			return domain.OutcomeNoDirective, "", chain, nil
		}

		dest, err := pathresolve.Resolve(sourcePath, out, true)
		switch {
		case errors.Is(err, domain.ErrPathDegenerate):
			return domain.OutcomeSamePath, "", chain, nil
		case err != nil:
			o.notify(ctx, domain.TitleChainFailed, err.Error())
			return domain.OutcomeFailed, "", chain, err
		}

		chain = append(chain, dest)

		if !domain.IsSourcePath(dest) {
			job := domain.CompileJob{
				ID:              jobID,
				WorkspaceID:     workspaceID,
				SourcePath:      sourcePath,
				SourceContent:   content,
				Options:         opts,
				DestinationPath: dest,
			}
			if err := o.render(ctx, job); err != nil {
				return domain.OutcomeFailed, dest, chain, err
			}
			return domain.OutcomeRendered, dest, chain, nil
		}

		key := domain.CacheKey{WorkspaceID: workspaceID, Path: dest}
		if _, seen := visited[key]; seen {
			err := zerr.With(zerr.Wrap(domain.ErrCycleDetected, strings.Join(chain, " → ")), "path", dest)
			o.notify(ctx, domain.TitleChainFailed, "Cycle detected: "+strings.Join(chain, " → "))
			return domain.OutcomeFailed, "", chain, err
		}
		visited[key] = struct{}{}

		next, err := o.Cache.GetOrFetch(ctx, workspaceID, dest)
		if err != nil {
			o.notify(ctx, domain.TitleStoreFailed, err.Error())
			return domain.OutcomeFailed, "", chain, err
		}

		o.Logger.Debug("following chain", "job", jobID, "from", sourcePath, "to", dest)
		sourcePath, content = dest, next
	}
}

// render compiles job.SourceContent and writes the result to the store.
func (o *Orchestrator) render(ctx context.Context, job domain.CompileJob) error {
	ctx, span := o.tracer.Start(ctx, "render", trace.WithAttributes(
		attribute.String("sassline.path", job.SourcePath),
		attribute.String("sassline.destination", job.DestinationPath),
	))
	defer span.End()

	ictx := domain.ImportContext{
		WorkspaceID:       job.WorkspaceID,
		CurrentSourcePath: job.SourcePath,
		TopLevelExtension: domain.Extension(job.SourcePath),
	}

	compileCtx, cancel := context.WithTimeout(ctx, o.compileTimeout)
	start := time.Now()
	res, err := o.Compiler.Compile(compileCtx, ports.CompileRequest{
		Path:     job.SourcePath,
		Source:   job.SourceContent,
		Importer: o.Imports.For(ictx),
	})
	cancel()
	o.Metrics.ObserveRender(time.Since(start), err == nil && res != nil && res.Status == 0)

	if err != nil {
		o.notify(ctx, domain.TitleCompileFailed, err.Error())
		span.SetStatus(codes.Error, "compiler unavailable")
		return zerr.With(zerr.Wrap(err, domain.ErrCompilerUnavailable.Error()), "path", job.SourcePath)
	}
	if res.Status != 0 {
		o.notify(ctx, domain.TitleCompileFailed, res.Formatted)
		span.SetStatus(codes.Error, "compile failed")
		err := zerr.Wrap(domain.ErrCompileFailed, res.Formatted)
		err = zerr.With(err, "status", res.Status)
		return zerr.With(err, "path", job.SourcePath)
	}

	err = o.policy.Do(ctx, func() error {
		saveCtx, cancel := context.WithTimeout(ctx, o.storeTimeout)
		defer cancel()
		return o.Store.Save(saveCtx, job.WorkspaceID, job.DestinationPath, res.Text, ports.SaveOptions{Revisioned: false})
	})
	if err != nil {
		o.notify(ctx, domain.TitleStoreFailed, err.Error())
		span.SetStatus(codes.Error, "save failed")
		return zerr.With(zerr.Wrap(err, domain.ErrStoreSaveFailed.Error()), "path", job.DestinationPath)
	}

	o.Logger.Info("rendered", "path", job.SourcePath, "destination", job.DestinationPath, "bytes", len(res.Text))
	return nil
}

// notify shows an error notification. Delivery failures are logged only.
func (o *Orchestrator) notify(ctx context.Context, title, description string) {
	n := domain.Notification{Type: domain.NotifyError, Title: title, Description: description}
	if err := o.Notifier.Show(ctx, n); err != nil {
		o.Logger.Warn("failed to deliver notification", "title", title, "error", err.Error())
	}
}
