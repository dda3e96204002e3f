package view

import (
	"context"

	"github.com/goliatone/go-view/pkg/config"
	"github.com/goliatone/go-view/pkg/escape"
	"github.com/goliatone/go-view/pkg/vars"
)

// View is one renderable unit: a template reference, the variable store it
// exclusively owns and a configuration snapshot taken when it was created.
// A View is meant for a single render and is not safe for concurrent use.
type View struct {
	engine *Engine
	ref    string
	vars   *vars.Store
	config config.Config
	depth  int
}

var _ Contexter = (*View)(nil)

// TemplateContext returns v itself.
func (v *View) TemplateContext() *View { return v }

// Engine returns the engine v renders through.
func (v *View) Engine() *Engine { return v.engine }

// Ref returns the template reference.
func (v *View) Ref() string { return v.ref }

// Path returns the resolved template path for the current configuration.
func (v *View) Path() string {
	return v.engine.resolver.Resolve(v.ref, v.config.Path, v.config.Suffix)
}

// Config returns a copy of the configuration snapshot.
func (v *View) Config() config.Config { return v.config.Clone() }

// SetPath overrides the base path for this context only.
func (v *View) SetPath(path string) *View {
	v.config.Path = path
	return v
}

// SetSuffix overrides the template suffix for this context only.
func (v *View) SetSuffix(suffix string) *View {
	v.config.Suffix = suffix
	return v
}

// AddEscaper appends strategies to this context's escaping pipeline.
func (v *View) AddEscaper(escapers ...escape.Escaper) *View {
	v.config.Escapers = append(v.config.Escapers, escapers...)
	return v
}

// SetEscapers replaces this context's escaping pipeline.
func (v *View) SetEscapers(escapers ...escape.Escaper) *View {
	v.config.Escapers = append([]escape.Escaper(nil), escapers...)
	return v
}

// Escape pipes value through every configured strategy in order.
func (v *View) Escape(value any) any {
	return v.config.Chain().Escape(value)
}

// Set binds one variable.
func (v *View) Set(name string, value any) error {
	return v.vars.Set(name, value)
}

// SetMany binds every entry of data; nothing is bound if any name is
// rejected.
func (v *View) SetMany(data map[string]any) error {
	return v.vars.SetMany(data)
}

// Get returns a bound value and whether it is bound.
func (v *View) Get(name string) (any, bool) {
	return v.vars.Get(name)
}

// Exists reports whether name is bound, even to nil.
func (v *View) Exists(name string) bool {
	return v.vars.Exists(name)
}

// Remove unbinds name.
func (v *View) Remove(name string) {
	v.vars.Remove(name)
}

// Variables returns a copy of the variable store.
func (v *View) Variables() *vars.Store {
	return v.vars.Clone()
}

// Execute assigns extra, then resolves, loads and executes the template and
// returns everything it emitted. Assignment errors abort before anything
// runs. A missing template yields *TemplateNotFoundError; any failure inside
// the body yields *TemplateExecutionError and no output.
func (v *View) Execute(ctx context.Context, extra map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := v.vars.SetMany(extra); err != nil {
		return "", err
	}
	return v.engine.execute(ctx, v)
}

// Fetch renders ref with data only; nothing of v is inherited.
func (v *View) Fetch(ctx context.Context, ref string, data map[string]any) (string, error) {
	child := v.child(ref)
	return child.Execute(ctx, data)
}

// FetchInherited renders ref with v's variable store as it is now, overlaid
// with data. Only store contents are forwarded; names a template body bound
// for itself while running are not part of the store.
func (v *View) FetchInherited(ctx context.Context, ref string, data map[string]any) (string, error) {
	overlay, err := vars.FromMap(data)
	if err != nil {
		return "", err
	}
	child := v.child(ref)
	child.vars = vars.Merge(v.vars, overlay)
	return child.Execute(ctx, nil)
}

// FetchAs builds a context through the factory registered under kind and
// renders it. The new context inherits nothing.
func (v *View) FetchAs(ctx context.Context, kind string, args ...any) (string, error) {
	child, err := v.engine.Construct(kind, args...)
	if err != nil {
		return "", err
	}
	child.depth = v.depth + 1
	return child.Execute(ctx, nil)
}

func (v *View) child(ref string) *View {
	child := v.engine.New(ref)
	child.depth = v.depth + 1
	return child
}
