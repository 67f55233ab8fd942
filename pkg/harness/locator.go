// Package harness drives the colour-conversion page through a browser:
// it resolves elements despite naming drift, waits for asynchronously
// rendered results, decodes the JSON status panel and asserts on it.
package harness

import (
	"fmt"
	"strings"
)

// Strategy is the kind of lookup a Locator performs.
type Strategy int

const (
	// ByID looks an element up by its exact id attribute.
	ByID Strategy = iota
	// ByXPath looks an element up by a structural XPath expression.
	ByXPath
)

// String returns a string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case ByID:
		return "id"
	case ByXPath:
		return "xpath"
	default:
		return "Unknown"
	}
}

// Locator is a single way of finding an element on the page.
type Locator struct {
	Strategy Strategy
	Value    string
}

// String renders the locator as "id=hexOut" or "xpath=//*[@id=\"hexOut\"]".
func (l Locator) String() string {
	return l.Strategy.String() + "=" + l.Value
}

// find performs the lookup on page.
func (l Locator) find(page Page) (Element, error) {
	switch l.Strategy {
	case ByID:
		return page.ElementByID(l.Value)
	case ByXPath:
		return page.ElementByXPath(l.Value)
	default:
		return nil, fmt.Errorf("unknown locator strategy %d", l.Strategy)
	}
}

// Candidates is a prioritized set of ways to find one element. IDs are
// tried before XPaths, each in order, and the first match wins.
type Candidates struct {
	IDs    []string
	XPaths []string
}

// ID is shorthand for a candidate set with a single id and an XPath
// fallback addressing the same id.
func ID(id string) Candidates {
	return Candidates{
		IDs:    []string{id},
		XPaths: []string{fmt.Sprintf(`//*[@id=%q]`, id)},
	}
}

// Empty reports whether the set holds no candidates at all.
func (c Candidates) Empty() bool {
	return len(c.IDs) == 0 && len(c.XPaths) == 0
}

// Locators flattens the set into the ordered list of lookups to try.
func (c Candidates) Locators() []Locator {
	locs := make([]Locator, 0, len(c.IDs)+len(c.XPaths))
	for _, id := range c.IDs {
		locs = append(locs, Locator{Strategy: ByID, Value: id})
	}
	for _, xp := range c.XPaths {
		locs = append(locs, Locator{Strategy: ByXPath, Value: xp})
	}
	return locs
}

// String lists every candidate in priority order.
func (c Candidates) String() string {
	locs := c.Locators()
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
