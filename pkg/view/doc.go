// Package view renders template files with a set of named variables bound as
// plain top-level names.
//
// An Engine is created once at start-up. Each render works on its own View,
// a template context that owns a variable store and a snapshot of the
// engine defaults:
//
//	engine, err := view.NewEngine(view.WithBaseDir("templates"))
//	out, err := engine.Render(ctx, "hello", map[string]any{
//		"greeting": "Hello",
//		"who":      "world",
//	})
//
// Template bodies are pongo2 (Django syntax) files; pongo2 supplies every
// expression and control-flow construct. The executing context is reachable
// as "self", which is how a body renders other templates:
//
//	{{ greeting }}, {{ who }}!
//	{{ self.Inherit("footer", "year", 2024) }}
//
// Output is captured per render and returned only when the body completes.
package view
