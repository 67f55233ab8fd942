package harness

import (
	"time"

	"github.com/thesyncim/colorcheck/pkg/color"
)

// Input is one field the scenario fills before triggering the conversion.
type Input struct {
	Name   string
	Target Candidates
	Value  string
}

// Expectation describes what the rendered outcome must look like.
// Zero-valued optional fields are not checked.
type Expectation struct {
	// Success selects the branch: which marker is awaited and whether a
	// result body or an error field is required.
	Success bool
	Hex     string
	RGB     *color.RGB
	// ErrorContains must appear in the error or message field.
	ErrorContains string
	// Preview is the CSS colour the preview region must show.
	Preview string
}

// Marker returns the text the output panel holds once this branch rendered.
func (e Expectation) Marker() string {
	if e.Success {
		return SuccessMarker
	}
	return FailureMarker
}

// Scenario is one fixed input -> action -> expectation flow.
// It is built at definition time and never mutated while running.
type Scenario struct {
	Name    string
	Inputs  []Input
	Trigger Candidates
	Output  Candidates
	// Preview is optional; it is only resolved when Expect.Preview is set.
	Preview Candidates
	Expect  Expectation
	// Screenshot names the evidence file captured when the scenario passes.
	// Empty disables capture.
	Screenshot string
}

// State is the position of a scenario run in its lifecycle.
type State int

const (
	NotStarted State = iota
	PageLoaded
	InputsSet
	ActionTriggered
	AwaitingResult
	ResultParsed
	Asserted
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case PageLoaded:
		return "PageLoaded"
	case InputsSet:
		return "InputsSet"
	case ActionTriggered:
		return "ActionTriggered"
	case AwaitingResult:
		return "AwaitingResult"
	case ResultParsed:
		return "ResultParsed"
	case Asserted:
		return "Asserted"
	default:
		return "Unknown"
	}
}

// Verdict is the final classification of a scenario run.
type Verdict int

const (
	// Pass means every expectation held.
	Pass Verdict = iota
	// Fail means the application produced a wrong result.
	Fail
	// Error means the harness could not exercise the application.
	Error
)

// String returns a string representation of the Verdict.
func (v Verdict) String() string {
	switch v {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Error:
		return "ERROR"
	default:
		return "Unknown"
	}
}

// Result is the record of one scenario run.
type Result struct {
	Scenario string
	// State is the last state reached. Asserted for Pass and Fail; the
	// state in which the run aborted for Error.
	State   State
	Verdict Verdict
	// Outcome is set once the output panel has been parsed.
	Outcome  *Outcome
	Err      error
	Duration time.Duration
}

// Report summarises a sequential run of scenarios.
type Report struct {
	RunID   string
	Results []Result
}

// Count returns how many results carry verdict v.
func (r Report) Count(v Verdict) int {
	n := 0
	for _, res := range r.Results {
		if res.Verdict == v {
			n++
		}
	}
	return n
}

// ExitCode maps the report to a process exit status: 0 when everything
// passed, 1 when the application failed an assertion and 2 when the
// harness hit an infrastructure error. Infrastructure errors win.
func (r Report) ExitCode() int {
	switch {
	case r.Count(Error) > 0:
		return 2
	case r.Count(Fail) > 0:
		return 1
	default:
		return 0
	}
}
