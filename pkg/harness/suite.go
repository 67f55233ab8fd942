package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thesyncim/colorcheck/pkg/color"
)

// Candidate sets for the converter page. Older revisions of the page used
// *Swatch ids for the previews and buttons without ids, so each set carries
// the aliases and structural fallbacks needed to find either revision.
var (
	HexInput   = ID("hex")
	HexTrigger = Candidates{IDs: []string{"hexGo"}, XPaths: []string{"/html/body/section[1]/button"}}
	HexOutput  = ID("hexOut")
	HexPreview = Candidates{
		IDs:    []string{"hexSwatch", "hexPreview"},
		XPaths: []string{`//*[@id="hexPreview"]`, `//div//*[@id="hexPreview"]`},
	}

	RedInput   = ID("r")
	GreenInput = ID("g")
	BlueInput  = ID("b")
	RGBTrigger = Candidates{IDs: []string{"rgbGo"}, XPaths: []string{"/html/body/section[2]/button"}}
	RGBOutput  = ID("rgbOut")
	RGBPreview = Candidates{
		IDs:    []string{"rgbSwatch", "rgbPreview"},
		XPaths: []string{`//*[@id="rgbPreview"]`, `//div//*[@id="rgbPreview"]`},
	}
)

// HexToRGB builds a scenario submitting hex through the hex form.
func HexToRGB(name, hex string, expect Expectation) Scenario {
	return Scenario{
		Name:    name,
		Inputs:  []Input{{Name: "hex", Target: HexInput, Value: hex}},
		Trigger: HexTrigger,
		Output:  HexOutput,
		Preview: HexPreview,
		Expect:  expect,
	}
}

// RGBToHex builds a scenario submitting the three channels through the
// RGB form. Channels are strings so out-of-range and malformed values can
// be typed verbatim.
func RGBToHex(name, r, g, b string, expect Expectation) Scenario {
	return Scenario{
		Name: name,
		Inputs: []Input{
			{Name: "r", Target: RedInput, Value: r},
			{Name: "g", Target: GreenInput, Value: g},
			{Name: "b", Target: BlueInput, Value: b},
		},
		Trigger: RGBTrigger,
		Output:  RGBOutput,
		Preview: RGBPreview,
		Expect:  expect,
	}
}

// ExpectConversion is the expectation for a valid colour: the normalised
// hex, its exact channels, and a preview painted in that colour.
func ExpectConversion(c color.RGB) Expectation {
	return Expectation{
		Success: true,
		Hex:     c.Hex(),
		RGB:     &c,
		Preview: c.CSS(),
	}
}

// ExpectFailure is the expectation for a rejected input.
func ExpectFailure(contains string) Expectation {
	return Expectation{Success: false, ErrorContains: contains}
}

// CanonicalSuite returns the four reference scenarios for the converter.
func CanonicalSuite() []Scenario {
	white := HexToRGB("hex to rgb: valid", "#FFFFFF", ExpectConversion(color.RGB{R: 255, G: 255, B: 255}))
	white.Screenshot = "app.png"

	return []Scenario{
		white,
		RGBToHex("rgb to hex: valid", "3", "100", "60", ExpectConversion(color.RGB{R: 3, G: 100, B: 60})),
		HexToRGB("hex to rgb: invalid hex shows error", "ZZZZZZ", ExpectFailure("")),
		RGBToHex("rgb to hex: out of range", "300", "-1", "60", ExpectFailure("Invalid RGB")),
	}
}

// suiteFile is the YAML shape of a scenario suite:
//
//	scenarios:
//	  - name: white
//	    hex: "#FFFFFF"
//	    expect: {success: true, hex: "#FFFFFF", rgb: {r: 255, g: 255, b: 255}, preview: "rgb(255,255,255)"}
//	    screenshot: white.png
//	  - name: out of range
//	    rgb: ["300", "-1", "60"]
//	    expect: {success: false, error_contains: Invalid RGB}
type suiteFile struct {
	Scenarios []suiteEntry `yaml:"scenarios"`
}

type suiteEntry struct {
	Name       string     `yaml:"name"`
	Hex        *string    `yaml:"hex"`
	RGB        []string   `yaml:"rgb"`
	Expect     suiteCheck `yaml:"expect"`
	Screenshot string     `yaml:"screenshot"`
}

type suiteCheck struct {
	Success       bool       `yaml:"success"`
	Hex           string     `yaml:"hex"`
	RGB           *color.RGB `yaml:"rgb"`
	ErrorContains string     `yaml:"error_contains"`
	Preview       string     `yaml:"preview"`
}

// LoadSuite decodes a YAML scenario suite. Each entry drives exactly one
// of the two forms: "hex" for the hex form or a three-element "rgb" list
// for the RGB form.
func LoadSuite(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f suiteFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("suite is empty")
		}
		return nil, fmt.Errorf("failed to decode suite: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.New("suite defines no scenarios")
	}

	out := make([]Scenario, 0, len(f.Scenarios))
	for i, e := range f.Scenarios {
		sc, err := e.scenario()
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%q): %w", i, e.Name, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// LoadSuiteFile reads a YAML scenario suite from path.
func LoadSuiteFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite: %w", err)
	}
	return LoadSuite(bytes.NewReader(data))
}

func (e suiteEntry) scenario() (Scenario, error) {
	if e.Name == "" {
		return Scenario{}, errors.New("name is required")
	}
	expect := Expectation{
		Success:       e.Expect.Success,
		Hex:           e.Expect.Hex,
		RGB:           e.Expect.RGB,
		ErrorContains: e.Expect.ErrorContains,
		Preview:       e.Expect.Preview,
	}

	var sc Scenario
	switch {
	case e.Hex != nil && e.RGB != nil:
		return Scenario{}, errors.New("set either hex or rgb, not both")
	case e.Hex != nil:
		sc = HexToRGB(e.Name, *e.Hex, expect)
	case e.RGB != nil:
		if len(e.RGB) != 3 {
			return Scenario{}, fmt.Errorf("rgb needs 3 channels, got %d", len(e.RGB))
		}
		sc = RGBToHex(e.Name, e.RGB[0], e.RGB[1], e.RGB[2], expect)
	default:
		return Scenario{}, errors.New("one of hex or rgb is required")
	}
	sc.Screenshot = e.Screenshot
	return sc, nil
}
