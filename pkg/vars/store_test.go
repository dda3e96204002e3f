package vars_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-view/pkg/vars"
)

func TestStore_SetGetExists(t *testing.T) {
	cases := map[string]any{
		"greeting":  "Hello",
		"_private":  42,
		"camelCase": []string{"a"},
		"x1":        map[string]any{"k": "v"},
	}

	s := vars.New()
	for name, value := range cases {
		if err := s.Set(name, value); err != nil {
			t.Fatalf("set %q: %v", name, err)
		}
		got, ok := s.Get(name)
		if !ok {
			t.Fatalf("expected %q to be bound", name)
		}
		if diff := cmp.Diff(value, got); diff != "" {
			t.Fatalf("value mismatch for %q (-want +got):\n%s", name, diff)
		}
		if !s.Exists(name) {
			t.Fatalf("expected Exists(%q) to be true", name)
		}
	}
}

func TestStore_NilIsDistinctFromUnset(t *testing.T) {
	s := vars.New()
	if err := s.Set("empty", nil); err != nil {
		t.Fatalf("set: %v", err)
	}

	if !s.Exists("empty") {
		t.Fatalf("expected nil binding to exist")
	}
	value, ok := s.Get("empty")
	if !ok || value != nil {
		t.Fatalf("expected (nil, true), got (%v, %v)", value, ok)
	}

	if s.Exists("missing") {
		t.Fatalf("expected unset name to be absent")
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("expected Get on unset name to report absent")
	}

	if err := s.Set("empty", "now set"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if value, _ := s.Get("empty"); value != "now set" {
		t.Fatalf("expected overwritten value, got %v", value)
	}
}

func TestStore_ReservedNamesRejected(t *testing.T) {
	s := vars.New()
	if err := s.Set("keep", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	before := s.Map()

	for _, name := range append(vars.Reserved(), "True", "NONE") {
		err := s.Set(name, "anything")
		var reserved *vars.ReservedNameError
		if !errors.As(err, &reserved) {
			t.Fatalf("expected ReservedNameError for %q, got %v", name, err)
		}
		if reserved.Name != name {
			t.Fatalf("expected error to carry %q, got %q", name, reserved.Name)
		}
		if !errors.Is(err, vars.ErrReservedName) {
			t.Fatalf("expected errors.Is(ErrReservedName) for %q", name)
		}
	}

	if diff := cmp.Diff(before, s.Map()); diff != "" {
		t.Fatalf("store changed after rejected sets (-want +got):\n%s", diff)
	}
}

func TestStore_InvalidNamesRejected(t *testing.T) {
	s := vars.New()
	for _, name := range []string{"", "1abc", "has-dash", "white space", "dot.name", "é", "0"} {
		err := s.Set(name, true)
		var invalid *vars.InvalidNameError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidNameError for %q, got %v", name, err)
		}
		if !errors.Is(err, vars.ErrInvalidName) {
			t.Fatalf("expected errors.Is(ErrInvalidName) for %q", name)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}
}

func TestStore_SetManyIsAllOrNothing(t *testing.T) {
	s := vars.New()
	if err := s.Set("existing", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}

	err := s.SetMany(map[string]any{
		"good":    1,
		"bad-one": 2,
		"self":    3,
	})
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	var invalid *vars.InvalidNameError
	if !errors.As(err, &invalid) || invalid.Name != "bad-one" {
		t.Fatalf("expected InvalidNameError for bad-one, got %v", err)
	}
	var reserved *vars.ReservedNameError
	if !errors.As(err, &reserved) || reserved.Name != "self" {
		t.Fatalf("expected ReservedNameError for self, got %v", err)
	}

	if s.Exists("good") {
		t.Fatalf("expected no partial application")
	}
	if diff := cmp.Diff([]string{"existing"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if err := s.SetMany(map[string]any{"b": 2, "a": 1}); err != nil {
		t.Fatalf("set many: %v", err)
	}
	if diff := cmp.Diff([]string{"existing", "a", "b"}, s.Keys()); diff != "" {
		t.Fatalf("expected sorted application order (-want +got):\n%s", diff)
	}
}

func TestStore_SetFromKeepsSourceOrder(t *testing.T) {
	src := vars.New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := src.Set(name, name); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	dst := vars.New()
	if err := dst.SetFrom(src); err != nil {
		t.Fatalf("set from: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, dst.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Remove(t *testing.T) {
	s := vars.New()
	for _, name := range []string{"a", "b", "c"} {
		if err := s.Set(name, name); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	s.Remove("b")
	s.Remove("missing")

	if s.Exists("b") {
		t.Fatalf("expected b to be removed")
	}
	if diff := cmp.Diff([]string{"a", "c"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	t.Run("right biased", func(t *testing.T) {
		base := mustStore(t, map[string]any{"x": 1})
		overlay := mustStore(t, map[string]any{"x": 2})

		got := vars.Merge(base, overlay)
		if diff := cmp.Diff(map[string]any{"x": 2}, got.Map()); diff != "" {
			t.Fatalf("merge mismatch (-want +got):\n%s", diff)
		}
		if value, _ := base.Get("x"); value != 1 {
			t.Fatalf("expected base to be untouched, got %v", value)
		}
	})

	t.Run("disjoint keys", func(t *testing.T) {
		got := vars.Merge(
			mustStore(t, map[string]any{"x": 1}),
			mustStore(t, map[string]any{"y": 2}),
		)
		if diff := cmp.Diff(map[string]any{"x": 1, "y": 2}, got.Map()); diff != "" {
			t.Fatalf("merge mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("base order retained", func(t *testing.T) {
		base := vars.New()
		for _, name := range []string{"c", "a", "b"} {
			if err := base.Set(name, name); err != nil {
				t.Fatalf("set: %v", err)
			}
		}
		overlay := vars.New()
		for _, name := range []string{"d", "a"} {
			if err := overlay.Set(name, "over"); err != nil {
				t.Fatalf("set: %v", err)
			}
		}

		got := vars.Merge(base, overlay)
		if diff := cmp.Diff([]string{"c", "a", "b", "d"}, got.Keys()); diff != "" {
			t.Fatalf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil inputs", func(t *testing.T) {
		if got := vars.Merge(nil, nil); got.Len() != 0 {
			t.Fatalf("expected empty merge, got %d entries", got.Len())
		}
	})
}

func TestStore_ZeroValueAndClone(t *testing.T) {
	var s vars.Store
	if err := s.Set("name", "v"); err != nil {
		t.Fatalf("set on zero value: %v", err)
	}

	clone := s.Clone()
	if err := clone.Set("name", "changed"); err != nil {
		t.Fatalf("set on clone: %v", err)
	}
	if value, _ := s.Get("name"); value != "v" {
		t.Fatalf("expected clone to be independent, got %v", value)
	}
}

func mustStore(t *testing.T, m map[string]any) *vars.Store {
	t.Helper()
	s, err := vars.FromMap(m)
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	return s
}
