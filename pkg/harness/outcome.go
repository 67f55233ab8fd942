package harness

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/thesyncim/colorcheck/pkg/color"
)

// Markers the output panel contains once a result has been rendered.
// They match the two-space pretty printing used by the page.
const (
	SuccessMarker = `"success": true`
	FailureMarker = `"success": false`
)

var errMissingSuccess = errors.New(`missing "success" field`)

// Conversion is the body of a successful outcome.
type Conversion struct {
	Hex string    `json:"hex"`
	RGB color.RGB `json:"rgb"`
	CSS string    `json:"css,omitempty"`
}

// Outcome is the structured result the application renders for one
// conversion request. Success false is a business error, not a parse error.
type Outcome struct {
	Success bool        `json:"success"`
	Data    *Conversion `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorText joins the error and message fields, the two places the
// application reports what went wrong.
func (o Outcome) ErrorText() string {
	return strings.TrimSpace(o.Error + " " + o.Message)
}

// ParseOutcome decodes the text of the output panel. Surrounding whitespace
// is ignored. Text that is not a JSON object with a boolean "success" field
// yields a *MalformedPayloadError carrying the raw text.
func ParseOutcome(raw string) (Outcome, error) {
	var doc struct {
		Success *bool       `json:"success"`
		Data    *Conversion `json:"data"`
		Error   string      `json:"error"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return Outcome{}, &MalformedPayloadError{Raw: raw, Err: err}
	}
	if doc.Success == nil {
		return Outcome{}, &MalformedPayloadError{Raw: raw, Err: errMissingSuccess}
	}
	return Outcome{
		Success: *doc.Success,
		Data:    doc.Data,
		Error:   doc.Error,
		Message: doc.Message,
	}, nil
}
