package vars

import (
	"errors"
	"sort"
)

// Store is an ordered name to value mapping. A nil value is a real binding:
// Exists reports true for it while Get returns (nil, true).
//
// The zero value is ready to use. A Store is not safe for concurrent use.
type Store struct {
	keys   []string
	values map[string]any
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// FromMap builds a store from m, validating every name first.
func FromMap(m map[string]any) (*Store, error) {
	s := New()
	if err := s.SetMany(m); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of bound names.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Get returns the bound value and whether the name is bound at all.
func (s *Store) Get(name string) (any, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	value, ok := s.values[name]
	return value, ok
}

// Exists reports whether name is bound, independent of its value.
func (s *Store) Exists(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Set validates name and binds value to it, replacing any previous binding.
// A replaced binding keeps its position.
func (s *Store) Set(name string, value any) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.put(name, value)
	return nil
}

// SetMany applies every entry of m in sorted key order. All names are
// validated before anything is stored: when any of them fails, the store is
// left untouched and the returned error joins one error per offending name.
func (s *Store) SetMany(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if err := validateAll(keys); err != nil {
		return err
	}
	for _, key := range keys {
		s.put(key, m[key])
	}
	return nil
}

// SetFrom applies every binding of other in other's order, with the same
// all-or-nothing policy as SetMany.
func (s *Store) SetFrom(other *Store) error {
	if other.Len() == 0 {
		return nil
	}
	if err := validateAll(other.keys); err != nil {
		return err
	}
	for _, key := range other.keys {
		s.put(key, other.values[key])
	}
	return nil
}

// Remove unbinds name. Removing an unbound name is a no-op.
func (s *Store) Remove(name string) {
	if !s.Exists(name) {
		return
	}
	delete(s.values, name)
	for i, key := range s.keys {
		if key == name {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the bound names in insertion order.
func (s *Store) Keys() []string {
	if s.Len() == 0 {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Each calls fn for every binding in insertion order until fn returns false.
func (s *Store) Each(fn func(name string, value any) bool) {
	if s == nil {
		return
	}
	for _, key := range s.keys {
		if !fn(key, s.values[key]) {
			return
		}
	}
}

// Map returns a copy of the bindings as a plain map.
func (s *Store) Map() map[string]any {
	out := make(map[string]any, s.Len())
	s.Each(func(name string, value any) bool {
		out[name] = value
		return true
	})
	return out
}

// Clone returns an independent copy. Values themselves are not deep copied.
func (s *Store) Clone() *Store {
	out := New()
	s.Each(func(name string, value any) bool {
		out.put(name, value)
		return true
	})
	return out
}

// Merge returns a new store holding base overlaid with overlay. Entries of
// base keep their order; on collision the overlay value replaces the base
// value in place, and overlay-only names follow in overlay order. Neither
// input is modified.
func Merge(base, overlay *Store) *Store {
	out := base.Clone()
	overlay.Each(func(name string, value any) bool {
		out.put(name, value)
		return true
	})
	return out
}

func (s *Store) put(name string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.values[name] = value
}

func validateAll(names []string) error {
	var errs []error
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
