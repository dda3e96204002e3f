package escape

import (
	"fmt"
	"html"
	"strings"
)

// Escaper transforms a value before it is written into markup.
type Escaper interface {
	Escape(value any) any
}

// Func adapts a plain function to the Escaper interface.
type Func func(value any) any

// Escape calls f(value).
func (f Func) Escape(value any) any {
	return f(value)
}

// Chain applies its escapers in order, feeding each one the result of the
// previous one. An empty chain returns the value unchanged.
type Chain []Escaper

// Escape runs value through every escaper of the chain.
func (c Chain) Escape(value any) any {
	for _, esc := range c {
		if esc == nil {
			continue
		}
		value = esc.Escape(value)
	}
	return value
}

// HTML escapes the five HTML special characters. Strings, byte slices and
// fmt.Stringer values are escaped; nil, booleans and numbers pass through
// untouched; anything else is formatted with fmt.Sprint first.
func HTML() Escaper {
	return Func(func(value any) any {
		s, ok := textOf(value)
		if !ok {
			return value
		}
		return html.EscapeString(s)
	})
}

// Trim removes leading and trailing white space from textual values.
func Trim() Escaper {
	return Func(func(value any) any {
		s, ok := textOf(value)
		if !ok {
			return value
		}
		return strings.TrimSpace(s)
	})
}

// Upper upper-cases textual values.
func Upper() Escaper {
	return Func(func(value any) any {
		s, ok := textOf(value)
		if !ok {
			return value
		}
		return strings.ToUpper(s)
	})
}

func textOf(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
