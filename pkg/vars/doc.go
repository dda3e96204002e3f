// Package vars implements the variable store a template context owns: an
// ordered name to value mapping whose names are checked against an
// identifier grammar and a reserved set before they are bound.
package vars
