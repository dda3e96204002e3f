// Package escape provides the pluggable escaping strategies a template
// context pipes values through before they reach markup. Strategies compose
// in registration order; the HTML sanitizers are backed by bluemonday.
package escape
