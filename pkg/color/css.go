package color

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCSS interprets the colour notations a browser reports for a computed
// background: "rgb(3, 100, 60)", "rgba(3,100,60,1)" and hex ("#03643C").
// Colours that are not fully opaque are rejected, since they do not
// correspond to any RGB triple the application can produce.
func ParseCSS(s string) (RGB, error) {
	v := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if strings.HasPrefix(v, "#") {
		c, err := ParseHex(v)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidCSS, s)
		}
		return c, nil
	}

	var args string
	var wantArgs int
	switch {
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		args, wantArgs = v[len("rgba("):len(v)-1], 4
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		args, wantArgs = v[len("rgb("):len(v)-1], 3
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidCSS, s)
	}

	parts := strings.Split(args, ",")
	if len(parts) != wantArgs {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidCSS, s)
	}
	if wantArgs == 4 {
		alpha, err := strconv.ParseFloat(parts[3], 64)
		if err != nil || alpha != 1 {
			return RGB{}, fmt.Errorf("%w: %q is not opaque", ErrInvalidCSS, s)
		}
	}

	c, err := ParseRGB(parts[0], parts[1], parts[2])
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidCSS, s, err)
	}
	return c, nil
}

// EqualCSS reports whether two CSS colour strings denote the same opaque
// colour, ignoring whitespace and notation differences.
func EqualCSS(a, b string) bool {
	ca, err := ParseCSS(a)
	if err != nil {
		return false
	}
	cb, err := ParseCSS(b)
	if err != nil {
		return false
	}
	return ca == cb
}
