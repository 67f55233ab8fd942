package harness

import "context"

// Page is the part of a live browser tab the harness drives.
// Lookups must not wait: a missing element is reported immediately.
type Page interface {
	// Navigate loads url and waits for the load event.
	// All previously resolved elements become invalid.
	Navigate(ctx context.Context, url string) error
	ElementByID(id string) (Element, error)
	ElementByXPath(xpath string) (Element, error)
	// Screenshot writes a PNG of the full page to path.
	Screenshot(path string) error
}

// Element is an opaque handle to an element of the current page load.
type Element interface {
	Text() (string, error)
	// Clear empties the value of an input element.
	Clear() error
	// Input types text into the element.
	Input(text string) error
	Click() error
	// BackgroundColor returns the computed CSS background colour.
	BackgroundColor() (string, error)
}
