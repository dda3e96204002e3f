package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Scope is what a running template body reaches under the name "self". It
// exposes read access to the executing View's store, never the View itself,
// so a body cannot change its own variables or configuration. It carries the
// context of the enclosing Execute call into sub-renders:
//
//	{{ self.Render("partials/row", "item", item) }}
//	{{ self.Inherit("partials/footer") }}
//	{{ self.RenderAs("card", "Ada") }}
//	{{ self.Escape(comment) }}
//
// Sub-render output and escaped values come back marked safe so pongo2 does
// not escape them a second time.
type Scope struct {
	ctx     context.Context
	view    *View
	failure error
}

func newScope(ctx context.Context, v *View) *Scope {
	return &Scope{ctx: ctx, view: v}
}

// Ref returns the reference of the executing template.
func (s *Scope) Ref() string { return s.view.ref }

// Exists reports whether name is bound in the variable store.
func (s *Scope) Exists(name string) bool {
	return s.view.Exists(name)
}

// Get returns the stored value for name, or nil when it is unbound.
func (s *Scope) Get(name string) any {
	value, _ := s.view.Get(name)
	return value
}

// Escape runs value through the context's escaping pipeline.
func (s *Scope) Escape(value any) *pongo2.Value {
	return pongo2.AsSafeValue(s.view.Escape(value))
}

// Render renders ref with only the variables given as key/value pairs.
func (s *Scope) Render(ref string, pairs ...any) (*pongo2.Value, error) {
	s.failure = nil
	data, err := pairsToMap(pairs)
	if err != nil {
		return nil, s.fail(err)
	}
	out, err := s.view.Fetch(s.ctx, ref, data)
	if err != nil {
		return nil, s.fail(err)
	}
	return pongo2.AsSafeValue(out), nil
}

// Inherit renders ref with the current variable store overlaid with the
// given key/value pairs.
func (s *Scope) Inherit(ref string, pairs ...any) (*pongo2.Value, error) {
	s.failure = nil
	data, err := pairsToMap(pairs)
	if err != nil {
		return nil, s.fail(err)
	}
	out, err := s.view.FetchInherited(s.ctx, ref, data)
	if err != nil {
		return nil, s.fail(err)
	}
	return pongo2.AsSafeValue(out), nil
}

// RenderAs renders a context built by the factory registered under kind.
func (s *Scope) RenderAs(kind string, args ...any) (*pongo2.Value, error) {
	s.failure = nil
	out, err := s.view.FetchAs(s.ctx, kind, args...)
	if err != nil {
		return nil, s.fail(err)
	}
	return pongo2.AsSafeValue(out), nil
}

// fail remembers err so it survives pongo2, which only keeps the message of
// errors returned from called functions.
func (s *Scope) fail(err error) error {
	s.failure = err
	return err
}

// cause picks the error to report for a failed execution: the failure of
// the most recent sub-render when pongo2 stopped on it, annotated with where
// it stopped. The failure is consumed.
func (s *Scope) cause(err error) error {
	failure := s.failure
	s.failure = nil
	if failure == nil || err == nil {
		return err
	}
	if !errors.Is(err, failure) && !strings.Contains(err.Error(), failure.Error()) {
		return err
	}
	var perr *pongo2.Error
	if errors.As(err, &perr) && perr.Line > 0 {
		return fmt.Errorf("line %d col %d: %w", perr.Line, perr.Column, failure)
	}
	return failure
}

func pairsToMap(pairs []any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("view: odd number of key/value arguments (%d)", len(pairs))
	}
	data := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("view: argument %d must be a variable name, got %T", i, pairs[i])
		}
		data[key] = pairs[i+1]
	}
	return data, nil
}
