package color

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex_SixDigits(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FFFFFF", RGB{255, 255, 255}},
		{"FFFFFF", RGB{255, 255, 255}},
		{"#03643C", RGB{3, 100, 60}},
		{"03643c", RGB{3, 100, 60}},
		{"FF5733", RGB{255, 87, 51}},
		{"00FF00", RGB{0, 255, 0}},
		{"#000000", RGB{0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, "ParseHex(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseHex(%q)", tt.in)
	}
}

func TestParseHex_Shorthand(t *testing.T) {
	got, err := ParseHex("F0F")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 0, 255}, got)

	got, err = ParseHex("#abc")
	require.NoError(t, err)
	assert.Equal(t, RGB{0xAA, 0xBB, 0xCC}, got)
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"ZZZZZZ", "INVALID", "", "#", "#FFFF", "#FFFFFFF", "12345G", "+FFFFF", "##FFFFFF"} {
		_, err := ParseHex(in)
		assert.ErrorIs(t, err, ErrInvalidHex, "ParseHex(%q)", in)
	}
}

func TestNormalizeHex(t *testing.T) {
	tests := map[string]string{
		"#FFFFFF": "#FFFFFF",
		"ffffff":  "#FFFFFF",
		"#03643c": "#03643C",
		"f0f":     "#F0F",
	}
	for in, want := range tests {
		got, err := NormalizeHex(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "NormalizeHex(%q)", in)
	}

	_, err := NormalizeHex("ZZZZZZ")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "#03643C", RGB{3, 100, 60}.Hex())
	assert.Equal(t, "#FFFFFF", RGB{255, 255, 255}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
	assert.Equal(t, "rgb(3, 100, 60)", RGB{3, 100, 60}.CSS())
}

func TestNewRGB_OutOfRange(t *testing.T) {
	_, err := NewRGB(300, -1, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRGB))
	assert.Contains(t, err.Error(), "invalid RGB")

	c, err := NewRGB(3, 100, 60)
	require.NoError(t, err)
	assert.Equal(t, RGB{3, 100, 60}, c)
}

func TestParseChannel(t *testing.T) {
	valid := map[string]int{"0": 0, "255": 255, " 60 ": 60, "100.0": 100}
	for in, want := range valid {
		got, err := ParseChannel(in)
		require.NoError(t, err, "ParseChannel(%q)", in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "-1", "256", "300", "1.5", "abc", "NaN"} {
		_, err := ParseChannel(in)
		assert.ErrorIs(t, err, ErrInvalidRGB, "ParseChannel(%q)", in)
	}
}

// Converting RGB -> hex -> RGB must reproduce the triple. The grid steps
// through every channel boundary without walking all 16M colours.
func TestRoundTrip_RGBHexRGB(t *testing.T) {
	channels := []int{0, 1, 2, 3, 15, 16, 17, 60, 100, 127, 128, 200, 254, 255}
	for _, r := range channels {
		for _, g := range channels {
			for _, b := range channels {
				c := RGB{r, g, b}
				back, err := ParseHex(c.Hex())
				require.NoError(t, err)
				if back != c {
					t.Fatalf("round trip %v -> %s -> %v", c, c.Hex(), back)
				}
			}
		}
	}
}

func TestRoundTrip_HexRGBHex(t *testing.T) {
	for v := 0; v <= 0xFFFFFF; v += 0x010307 {
		c := RGB{v >> 16 & 0xFF, v >> 8 & 0xFF, v & 0xFF}
		hex := c.Hex()
		parsed, err := ParseHex(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, parsed.Hex())
	}
}
