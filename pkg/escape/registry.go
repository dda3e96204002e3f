package escape

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in strategy names understood by Lookup.
const (
	NameHTML   = "html"
	NameStrict = "strict"
	NameUGC    = "ugc"
	NameTrim   = "trim"
	NameUpper  = "upper"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Escaper{
		NameHTML:   HTML,
		NameStrict: Strict,
		NameUGC:    UGC,
		NameTrim:   Trim,
		NameUpper:  Upper,
	}
)

// Register makes a strategy available to Lookup under name. Registration is
// meant to happen during start-up; duplicate names return an error.
func Register(name string, build func() Escaper) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("escape: strategy name is required")
	}
	if build == nil {
		return fmt.Errorf("escape: strategy %q needs a constructor", key)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[key]; exists {
		return fmt.Errorf("escape: strategy %q already registered", key)
	}
	registry[key] = build
	return nil
}

// Lookup builds the strategy registered under name.
func Lookup(name string) (Escaper, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	registryMu.RLock()
	build, ok := registry[key]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("escape: unknown strategy %q", name)
	}
	return build(), nil
}

// LookupAll resolves names in order into a Chain.
func LookupAll(names ...string) (Chain, error) {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		esc, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, esc)
	}
	return chain, nil
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
