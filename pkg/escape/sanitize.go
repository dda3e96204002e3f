package escape

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Sanitize returns an escaper that filters textual values through policy.
// Policies are safe for concurrent use once configured, so a single policy
// may back any number of contexts.
func Sanitize(policy *bluemonday.Policy) Escaper {
	return Func(func(value any) any {
		if policy == nil {
			return value
		}
		s, ok := textOf(value)
		if !ok {
			return value
		}
		return strings.TrimSpace(policy.Sanitize(s))
	})
}

// Strict strips every HTML element, keeping only text content.
func Strict() Escaper {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return Sanitize(strictPolicy)
}

// UGC keeps the markup bluemonday deems safe for user generated content.
func UGC() Escaper {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return Sanitize(ugcPolicy)
}
