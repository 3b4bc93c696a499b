package orchestrator

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/goliatone/go-payloadgen/internal/loader"
	"github.com/goliatone/go-payloadgen/internal/output"
	"github.com/goliatone/go-payloadgen/pkg/annotate"
	"github.com/goliatone/go-payloadgen/pkg/fields"
	"github.com/goliatone/go-payloadgen/pkg/jsonschema"
	"github.com/goliatone/go-payloadgen/pkg/passes"
	"github.com/goliatone/go-payloadgen/pkg/source"
)

// ErrNoInput is returned when a request carries neither a field forest nor a
// base document.
var ErrNoInput = errors.New("orchestrator: config, source or document is required")

// Loader fetches raw bytes for a source.
type Loader interface {
	Load(ctx context.Context, src source.Source) ([]byte, error)
}

// DocumentBuilder lowers an annotated field forest into the base document.
type DocumentBuilder interface {
	Build(cfg *fields.Config) map[string]any
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithOptions sets the annotation options shared by the walker and the pass
// pipeline.
func WithOptions(opts annotate.Options) Option {
	return func(o *Orchestrator) {
		o.options = opts
	}
}

// WithLogger routes stage logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithBuilder injects a custom document builder.
func WithBuilder(builder DocumentBuilder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithLoader injects a custom source loader.
func WithLoader(l Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithFS sets the filesystem used by the default loader and by Write.
func WithFS(fs afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fs
	}
}

// WithFileSystem backs source.FromFS sources on the default loader.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.fileSystem = fsys
	}
}

// WithHTTP enables URL sources on the default loader.
func WithHTTP(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.allowHTTP = true
		o.httpTimeout = timeout
	}
}

// WithPipeline replaces the standard pass pipeline.
func WithPipeline(p *passes.Pipeline) Option {
	return func(o *Orchestrator) {
		o.pipeline = p
	}
}

// WithTransformers registers transformers that run, in order, after the
// pass pipeline.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		if len(transformers) == 0 {
			return
		}
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator runs the field tree walker over a project's field forest,
// lowers it into the base document and threads the result through the pass
// pipeline.
type Orchestrator struct {
	options      annotate.Options
	logger       *slog.Logger
	builder      DocumentBuilder
	loader       Loader
	fs           afero.Fs
	fileSystem   fs.FS
	allowHTTP    bool
	httpTimeout  time.Duration
	pipeline     *passes.Pipeline
	transformers []Transformer
	writer       *output.Writer
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of a generation run.
type Request struct {
	// Config is an in-memory field forest. It takes precedence over Source.
	Config *fields.Config

	// Source locates a JSON or YAML field forest.
	Source source.Source

	// Document is a base document produced elsewhere. When set, the builder
	// is skipped and only the pass pipeline runs; a Config or Source, when
	// also present, is still annotated.
	Document map[string]any

	// DocumentSource locates a base document to post-process.
	DocumentSource source.Source
}

// Generate executes the load, annotate, build and pass stages and returns the
// final document.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := o.resolveConfig(ctx, req)
	if err != nil {
		return nil, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	if cfg == nil && doc == nil {
		return nil, ErrNoInput
	}

	if cfg != nil {
		annotate.NewWalker(o.options).MapConfig(cfg)
		o.logger.Debug("annotated field forest",
			slog.Int("collections", len(cfg.Collections)),
			slog.Int("globals", len(cfg.Globals)),
		)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if doc == nil {
		doc = o.builder.Build(cfg)
		o.logger.Debug("built base document", slog.Int("definitions", len(jsonschema.Object(doc, "definitions"))))
	}

	doc = o.pipeline.RunWith(doc, func(name string, _ map[string]any) {
		o.logger.Debug("applied pass", slog.String("pass", name))
	})

	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, doc); err != nil {
			return nil, errors.Wrap(err, "orchestrator: transform document")
		}
	}

	o.logger.Info("generated document", slog.Int("definitions", len(jsonschema.Object(doc, "definitions"))))
	return doc, nil
}

// Write serializes doc to path on the orchestrator's filesystem.
func (o *Orchestrator) Write(ctx context.Context, doc map[string]any, path string) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.writer.Write(path, doc); err != nil {
		return err
	}
	o.logger.Info("wrote document", slog.String("path", path))
	return nil
}

// Exists reports whether path is present on the orchestrator's filesystem.
func (o *Orchestrator) Exists(path string) (bool, error) {
	return o.writer.Exists(path)
}

func (o *Orchestrator) resolveConfig(ctx context.Context, req Request) (*fields.Config, error) {
	if req.Config != nil {
		if err := req.Config.Validate(); err != nil {
			return nil, errors.Wrap(err, "orchestrator: validate config")
		}
		return req.Config, nil
	}
	if req.Source == nil {
		return nil, nil
	}
	data, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: load config")
	}
	cfg, err := fields.Decode(data, req.Source.Location())
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: decode config")
	}
	o.logger.Debug("loaded field forest", slog.String("source", req.Source.Location()))
	return cfg, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (map[string]any, error) {
	if req.Document != nil {
		return req.Document, nil
	}
	if req.DocumentSource == nil {
		return nil, nil
	}
	data, err := o.loader.Load(ctx, req.DocumentSource)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: load document")
	}
	doc, err := jsonschema.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrator: parse document")
	}
	o.logger.Debug("loaded base document", slog.String("source", req.DocumentSource.Location()))
	return doc, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.loader == nil {
		o.loader = loader.New(loader.Options{
			Files:          o.fs,
			FileSystem:     o.fileSystem,
			AllowHTTP:      o.allowHTTP,
			RequestTimeout: o.httpTimeout,
		})
	}
	if o.builder == nil {
		o.builder = jsonschema.NewBuilder()
	}
	if o.pipeline == nil {
		o.pipeline = passes.New(o.options)
	}
	o.writer = output.NewWriter(o.fs)
}
