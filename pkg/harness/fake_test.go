package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thesyncim/colorcheck/pkg/color"
)

const transparent = "rgba(0, 0, 0, 0)"

// fakeConverter is an in-memory stand-in for the converter page. Clicking a
// trigger computes the outcome the way the application does and reveals it
// in the output panel after renderDelay reads.
type fakeConverter struct {
	legacy      bool
	renderDelay int
	// bug, when set, rewrites every outcome before it is rendered.
	bug func(*Outcome)
	// rawOverride, when set, is rendered verbatim instead of the outcome.
	rawOverride string

	navErr        error
	screenshotErr error
	missing       map[string]bool

	byID        map[string]*fakeElement
	byXPath     map[string]*fakeElement
	lookups     []Locator
	navigations int
	screenshots []string
}

type fakeElement struct {
	value   string
	text    string
	pending string
	// reads left before pending text becomes visible
	countdown int
	bg        string
	onClick   func()
}

func newFakeConverter() *fakeConverter {
	return &fakeConverter{missing: map[string]bool{}}
}

func (p *fakeConverter) reset() {
	p.byID = map[string]*fakeElement{}
	p.byXPath = map[string]*fakeElement{}
	el := func() *fakeElement { return &fakeElement{bg: transparent} }

	hex, hexGo, hexOut, hexPrev := el(), el(), el(), el()
	r, g, b, rgbGo, rgbOut, rgbPrev := el(), el(), el(), el(), el(), el()

	hexGo.onClick = func() {
		p.render(hexOut, hexPrev, p.convertHex(hex.value))
	}
	rgbGo.onClick = func() {
		p.render(rgbOut, rgbPrev, p.convertRGB(r.value, g.value, b.value))
	}

	hexPrevID, rgbPrevID := "hexPreview", "rgbPreview"
	if p.legacy {
		hexPrevID, rgbPrevID = "hexSwatch", "rgbSwatch"
	} else {
		p.add("hexGo", hexGo)
		p.add("rgbGo", rgbGo)
	}
	p.add("hex", hex)
	p.add("hexOut", hexOut)
	p.add(hexPrevID, hexPrev)
	p.add("r", r)
	p.add("g", g)
	p.add("b", b)
	p.add("rgbOut", rgbOut)
	p.add(rgbPrevID, rgbPrev)
	p.byXPath["/html/body/section[1]/button"] = hexGo
	p.byXPath["/html/body/section[2]/button"] = rgbGo
}

func (p *fakeConverter) add(id string, el *fakeElement) {
	if p.missing[id] {
		return
	}
	p.byID[id] = el
	p.byXPath[fmt.Sprintf(`//*[@id=%q]`, id)] = el
	p.byXPath[fmt.Sprintf(`//div//*[@id=%q]`, id)] = el
}

func (p *fakeConverter) convertHex(in string) Outcome {
	c, err := color.ParseHex(in)
	if err != nil {
		return Outcome{Error: "Invalid hex color code", Message: "Please provide a valid hex color code (e.g., FFFFFF or #FFFFFF)"}
	}
	norm, _ := color.NormalizeHex(in)
	return Outcome{Success: true, Data: &Conversion{Hex: norm, RGB: c, CSS: c.CSS()}}
}

func (p *fakeConverter) convertRGB(r, g, b string) Outcome {
	c, err := color.ParseRGB(r, g, b)
	if err != nil {
		return Outcome{Error: "Invalid RGB values", Message: "Provide r,g,b integers between 0 and 255"}
	}
	return Outcome{Success: true, Data: &Conversion{Hex: c.Hex(), RGB: c, CSS: c.CSS()}}
}

func (p *fakeConverter) render(out, preview *fakeElement, o Outcome) {
	if p.bug != nil {
		p.bug(&o)
	}
	raw := p.rawOverride
	if raw == "" {
		b, _ := json.MarshalIndent(o, "", "  ")
		raw = string(b)
	}
	out.text = "Working..."
	out.pending = raw
	out.countdown = p.renderDelay
	if o.Success && o.Data != nil {
		preview.bg = o.Data.RGB.CSS()
	}
}

func (p *fakeConverter) Navigate(ctx context.Context, url string) error {
	if p.navErr != nil {
		return p.navErr
	}
	p.navigations++
	p.reset()
	return nil
}

func (p *fakeConverter) ElementByID(id string) (Element, error) {
	p.lookups = append(p.lookups, Locator{Strategy: ByID, Value: id})
	if el, ok := p.byID[id]; ok {
		return el, nil
	}
	return nil, errNoSuchElement
}

func (p *fakeConverter) ElementByXPath(xpath string) (Element, error) {
	p.lookups = append(p.lookups, Locator{Strategy: ByXPath, Value: xpath})
	if el, ok := p.byXPath[xpath]; ok {
		return el, nil
	}
	return nil, errNoSuchElement
}

func (p *fakeConverter) Screenshot(path string) error {
	if p.screenshotErr != nil {
		return p.screenshotErr
	}
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (e *fakeElement) Text() (string, error) {
	if e.pending != "" {
		if e.countdown <= 0 {
			e.text, e.pending = e.pending, ""
		} else {
			e.countdown--
		}
	}
	return e.text, nil
}

func (e *fakeElement) Clear() error {
	e.value = ""
	return nil
}

func (e *fakeElement) Input(text string) error {
	e.value += text
	return nil
}

func (e *fakeElement) Click() error {
	if e.onClick == nil {
		return errors.New("element is not clickable")
	}
	e.onClick()
	return nil
}

func (e *fakeElement) BackgroundColor() (string, error) {
	return e.bg, nil
}
