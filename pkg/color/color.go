// Package color models the hex and RGB colour values exchanged with the
// colour-conversion application: parsing, normalisation, conversion and
// format-insensitive comparison of CSS colour strings.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHex is returned when a string is not a 3- or 6-digit hex colour.
	ErrInvalidHex = errors.New("invalid hex color code")

	// ErrInvalidRGB is returned when a channel is not an integer in [0, 255].
	ErrInvalidRGB = errors.New("invalid RGB values")

	// ErrInvalidCSS is returned when a CSS colour string cannot be interpreted.
	ErrInvalidCSS = errors.New("invalid CSS color")
)

// MaxChannel is the largest value a single RGB channel can hold.
const MaxChannel = 255

// RGB is a colour expressed as three 8-bit channels.
// The JSON shape matches the application's {"r":..,"g":..,"b":..} payload.
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// NewRGB validates the channels and returns the colour.
func NewRGB(r, g, b int) (RGB, error) {
	c := RGB{R: r, G: g, B: b}
	if !c.Valid() {
		return RGB{}, fmt.Errorf("%w: (%d, %d, %d)", ErrInvalidRGB, r, g, b)
	}
	return c, nil
}

// Valid reports whether every channel is within [0, 255].
func (c RGB) Valid() bool {
	return validChannel(c.R) && validChannel(c.G) && validChannel(c.B)
}

// Hex returns the canonical form: '#' followed by six uppercase digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// CSS returns the colour in the rgb() notation the application emits.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.CSS()
}

func validChannel(n int) bool {
	return n >= 0 && n <= MaxChannel
}

// ParseChannel parses a decimal channel value such as "60" or " 255 ".
// Anything that is not an integer in [0, 255] yields ErrInvalidRGB.
func ParseChannel(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		// Integral floats ("60.0") are accepted, matching numeric form inputs.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidRGB, s)
		}
		n = int(f)
	}
	if !validChannel(n) {
		return 0, fmt.Errorf("%w: %d out of range [0, %d]", ErrInvalidRGB, n, MaxChannel)
	}
	return n, nil
}

// ParseRGB parses three decimal channel strings.
func ParseRGB(r, g, b string) (RGB, error) {
	var out [3]int
	for i, s := range [3]string{r, g, b} {
		n, err := ParseChannel(s)
		if err != nil {
			return RGB{}, err
		}
		out[i] = n
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// ParseHex decodes a 3- or 6-digit hex colour, with or without a leading '#'.
// Shorthand digits are doubled: "F0F" is (255, 0, 255).
func ParseHex(s string) (RGB, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(digits) {
	case 3:
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{
		R: int(v >> 16 & 0xFF),
		G: int(v >> 8 & 0xFF),
		B: int(v & 0xFF),
	}, nil
}

// NormalizeHex returns the user-visible form of a valid hex input: uppercase
// with a single leading '#'. Shorthand input keeps its three digits.
func NormalizeHex(s string) (string, error) {
	if _, err := ParseHex(s); err != nil {
		return "", err
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#")), nil
}
