package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-view/pkg/config"
	"github.com/goliatone/go-view/pkg/resolve"
	"github.com/goliatone/go-view/pkg/vars"
)

// Option configures the engine before construction.
type Option func(*options)

type options struct {
	defaults  *config.Config
	baseDir   string
	files     fs.FS
	loader    Loader
	resolver  resolve.Resolver
	logger    *slog.Logger
	registry  *Registry
	factories map[string]Factory
}

// WithConfig sets the defaults every new context snapshots.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		clone := cfg.Clone()
		o.defaults = &clone
	}
}

// WithBaseDir loads templates from a directory on disk. Resolved paths that
// are relative are read relative to dir.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithLoader installs a custom template loader. It takes precedence over
// WithBaseDir and WithFS.
func WithLoader(loader Loader) Option {
	return func(o *options) {
		o.loader = loader
	}
}

// WithResolver replaces the path resolver.
func WithResolver(resolver resolve.Resolver) Option {
	return func(o *options) {
		if resolver != nil {
			o.resolver = resolver
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegistry shares an existing factory registry with the engine.
func WithRegistry(registry *Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithFactory registers a context factory under kind when the engine is
// built.
func WithFactory(kind string, factory Factory) Option {
	return func(o *options) {
		if o.factories == nil {
			o.factories = make(map[string]Factory)
		}
		o.factories[kind] = factory
	}
}

// Engine is the process-wide half of the renderer. It is created once at
// start-up and holds the configuration defaults, the loader, the factory
// registry and the logger. Contexts created from it snapshot the defaults,
// so the defaults must not be changed while renders are running.
type Engine struct {
	defaults config.Config
	loader   Loader
	resolver resolve.Resolver
	registry *Registry
	logger   *slog.Logger
}

// NewEngine constructs an Engine using the provided configuration options.
func NewEngine(opts ...Option) (*Engine, error) {
	o := &options{
		resolver: resolve.Default,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}

	loader := o.loader
	switch {
	case loader != nil:
	case o.baseDir != "":
		loader = DirLoader{Root: o.baseDir}
	case o.files != nil:
		loader = FSLoader{FS: o.files}
	default:
		return nil, errors.New("view: need to provide a loader, base dir or fs.FS")
	}

	defaults := config.Default()
	if o.defaults != nil {
		defaults = *o.defaults
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := o.registry
	if registry == nil {
		registry = NewRegistry()
	}
	for kind, factory := range o.factories {
		if err := registry.Register(kind, factory); err != nil {
			return nil, err
		}
	}

	return &Engine{
		defaults: defaults,
		loader:   loader,
		resolver: o.resolver,
		registry: registry,
		logger:   logger,
	}, nil
}

// Defaults returns a copy of the configuration new contexts start from.
func (e *Engine) Defaults() config.Config {
	return e.defaults.Clone()
}

// Registry exposes the factory registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// New creates a template context for ref with an empty variable store and a
// snapshot of the engine defaults.
func (e *Engine) New(ref string) *View {
	return &View{
		engine: e,
		ref:    ref,
		vars:   vars.New(),
		config: e.defaults.Clone(),
	}
}

// Render creates a context for ref, assigns data and executes it.
func (e *Engine) Render(ctx context.Context, ref string, data map[string]any) (string, error) {
	return e.New(ref).Execute(ctx, data)
}

// Construct builds a context through the factory registered under kind.
func (e *Engine) Construct(kind string, args ...any) (*View, error) {
	factory, err := e.registry.Get(kind)
	if err != nil {
		return nil, err
	}
	built, err := factory(e, args...)
	if err != nil {
		return nil, fmt.Errorf("view: construct %q: %w", kind, err)
	}
	if built == nil {
		return nil, fmt.Errorf("view: factory %q returned nothing", kind)
	}
	v := built.TemplateContext()
	if v == nil {
		return nil, fmt.Errorf("view: factory %q returned no template context", kind)
	}
	return v, nil
}

// execute runs one resolved template for v. The output is buffered and only
// returned once the body has completed; on failure it is dropped.
func (e *Engine) execute(ctx context.Context, v *View) (out string, err error) {
	path := v.Path()
	logger := e.logger.With("ref", v.ref, "path", path, "depth", v.depth)
	logger.DebugContext(ctx, "render start", "vars", v.vars.Len())
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "render failed", "error", err)
			return
		}
		logger.DebugContext(ctx, "render done", "bytes", len(out))
	}()

	source, err := e.loader.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateNotFoundError{Ref: v.ref, Path: path, Err: err}
		}
		return "", &TemplateExecutionError{Ref: v.ref, Path: path, Err: fmt.Errorf("load: %w", err)}
	}

	// Each execution compiles into its own set: pongo2 sets are not safe for
	// concurrent use, and include tags must resolve with v's configuration.
	set := pongo2.NewSet(v.ref, &pongoLoader{
		loader:  e.loader,
		resolve: func(ref string) string { return e.resolver.Resolve(ref, v.config.Path, v.config.Suffix) },
		root:    path,
		source:  source,
	})
	tpl, err := set.FromFile(path)
	if err != nil {
		return "", &TemplateExecutionError{Ref: v.ref, Path: path, Err: err}
	}

	scope := newScope(ctx, v)
	data := pongo2.Context(v.vars.Map())
	data[vars.SelfName] = scope

	var buf bytes.Buffer
	if err := guard(func() error { return tpl.ExecuteWriter(data, &buf) }); err != nil {
		return "", &TemplateExecutionError{Ref: v.ref, Path: path, Err: scope.cause(err)}
	}
	return buf.String(), nil
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}
