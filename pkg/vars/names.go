package vars

import (
	"regexp"
	"sort"
	"strings"
)

// SelfName is the name under which a template body reaches its own context.
const SelfName = "self"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ambientNames are claimed by pongo2 itself: keywords of its expression
// grammar and the private "pongo2" metadata namespace.
var ambientNames = map[string]struct{}{
	"pongo2": {},
	"in":     {},
	"and":    {},
	"or":     {},
	"not":    {},
	"as":     {},
	"export": {},
}

// literalNames are parsed as literals regardless of case.
var literalNames = map[string]struct{}{
	"true":  {},
	"false": {},
	"nil":   {},
	"none":  {},
}

// IsReserved reports whether name can never be assigned.
func IsReserved(name string) bool {
	if name == SelfName {
		return true
	}
	if _, ok := ambientNames[name]; ok {
		return true
	}
	_, ok := literalNames[strings.ToLower(name)]
	return ok
}

// Reserved returns the reserved names in sorted order.
func Reserved() []string {
	names := make([]string, 0, len(ambientNames)+len(literalNames)+1)
	names = append(names, SelfName)
	for name := range ambientNames {
		names = append(names, name)
	}
	for name := range literalNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateName checks name against the identifier grammar and the reserved
// set. The grammar is checked first, so "1self" is invalid rather than
// reserved.
func ValidateName(name string) error {
	if !identifierPattern.MatchString(name) {
		return &InvalidNameError{Name: name}
	}
	if IsReserved(name) {
		return &ReservedNameError{Name: name}
	}
	return nil
}
