package harness

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ElementNotFoundError is returned when every candidate of a set missed.
type ElementNotFoundError struct {
	Tried []Locator
}

func (e *ElementNotFoundError) Error() string {
	if len(e.Tried) == 0 {
		return "element not found: no candidates given"
	}
	parts := make([]string, len(e.Tried))
	for i, l := range e.Tried {
		parts[i] = l.String()
	}
	return "element not found, tried: " + strings.Join(parts, ", ")
}

// TimeoutError is returned when the expected text never appeared in the
// target element within the wait budget.
type TimeoutError struct {
	Target   Candidates
	Expected string
	Timeout  time.Duration
	// LastText is the most recent text read from the target, if any.
	LastText string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v waiting for %q in %s (last text %q)",
		e.Timeout, e.Expected, e.Target, e.LastText)
}

// MalformedPayloadError is returned when the output region did not hold a
// decodable outcome document.
type MalformedPayloadError struct {
	Raw string
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload %q: %v", e.Raw, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// AssertionError reports the first mismatch between the application's
// observable result and the scenario's expectation.
type AssertionError struct {
	Field    string
	Expected any
	Actual   any
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed on %s: expected %v, got %v", e.Field, e.Expected, e.Actual)
}

// IsInfrastructure reports whether err means the harness could not exercise
// the application, as opposed to the application misbehaving.
// Assertion failures are the only errors that are not infrastructure errors.
func IsInfrastructure(err error) bool {
	if err == nil {
		return false
	}
	var ae *AssertionError
	return !errors.As(err, &ae)
}
