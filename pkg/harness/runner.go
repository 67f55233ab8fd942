package harness

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/pkg/color"
	"github.com/thesyncim/colorcheck/pkg/harness/internal"
)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// Runner executes scenarios one at a time against a single page.
type Runner struct {
	page          Page
	baseURL       string
	waitTimeout   time.Duration
	pollInterval  time.Duration
	pacing        time.Duration
	screenshotDir string
	runID         string
	clock         internal.Clock
	logger        *zap.Logger

	resolver *Resolver
	waiter   *Waiter
}

// WithWaitTimeout sets how long to wait for the output panel to render.
// Default: 5 seconds
func WithWaitTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) error {
		if d <= 0 {
			return errors.New("wait timeout must be positive")
		}
		r.waitTimeout = d
		return nil
	}
}

// WithPollInterval sets how often the output panel is re-read.
// Default: DefaultPollInterval
func WithPollInterval(d time.Duration) RunnerOption {
	return func(r *Runner) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		r.pollInterval = d
		return nil
	}
}

// WithPacing inserts a pause after each clear, input and click so a human
// can follow along in a headed browser. It has no effect on correctness.
// Default: 0
func WithPacing(d time.Duration) RunnerOption {
	return func(r *Runner) error {
		if d < 0 {
			return errors.New("pacing must not be negative")
		}
		r.pacing = d
		return nil
	}
}

// WithScreenshotDir sets where evidence screenshots are written.
// Default: "screenshots"
func WithScreenshotDir(dir string) RunnerOption {
	return func(r *Runner) error {
		r.screenshotDir = dir
		return nil
	}
}

// WithRunID overrides the generated run id stamped on logs.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) error {
		if id == "" {
			return errors.New("run id must not be empty")
		}
		r.runID = id
		return nil
	}
}

// WithLogger sets the logger. Default: no logging.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

func withClock(c internal.Clock) RunnerOption {
	return func(r *Runner) error {
		r.clock = c
		return nil
	}
}

// NewRunner creates a Runner that drives page and starts every scenario by
// navigating to baseURL.
func NewRunner(page Page, baseURL string, opts ...RunnerOption) (*Runner, error) {
	if page == nil {
		return nil, errors.New("page is required")
	}
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	r := &Runner{
		page:          page,
		baseURL:       baseURL,
		waitTimeout:   5 * time.Second,
		pollInterval:  DefaultPollInterval,
		screenshotDir: "screenshots",
		runID:         uuid.NewString(),
		clock:         internal.MonotonicClock{},
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.logger = r.logger.With(zap.String("run_id", r.runID))
	r.resolver = NewResolver(r.logger.Named("resolver"))
	r.waiter = NewWaiter(r.resolver, r.clock, r.pollInterval, r.logger.Named("waiter"))
	return r, nil
}

// RunID returns the id stamped on this runner's logs and screenshots.
func (r *Runner) RunID() string {
	return r.runID
}

// RunAll runs the scenarios sequentially and collects their results.
// Every scenario runs even if an earlier one failed, unless ctx is done.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) Report {
	report := Report{RunID: r.runID}
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			report.Results = append(report.Results, Result{
				Scenario: sc.Name,
				Verdict:  Error,
				Err:      ctx.Err(),
			})
			continue
		}
		report.Results = append(report.Results, r.Run(ctx, sc))
	}
	return report
}

// Run executes one scenario end-to-end and classifies the result.
func (r *Runner) Run(ctx context.Context, sc Scenario) Result {
	log := r.logger.With(zap.String("scenario", sc.Name))
	start := r.clock.Now()
	res := Result{Scenario: sc.Name, State: NotStarted}

	err := r.run(ctx, sc, &res, log)
	res.Duration = r.clock.Now().Sub(start)
	res.Err = err

	switch {
	case err == nil:
		res.Verdict = Pass
		log.Info("Scenario passed.", zap.Duration("duration", res.Duration))
		r.capture(sc, log)
	case IsInfrastructure(err):
		res.Verdict = Error
		log.Error("Scenario aborted.", zap.Stringer("state", res.State), zap.Error(err))
	default:
		res.Verdict = Fail
		log.Warn("Scenario failed.", zap.Error(err))
	}
	return res
}

func (r *Runner) run(ctx context.Context, sc Scenario, res *Result, log *zap.Logger) error {
	if err := r.page.Navigate(ctx, r.baseURL); err != nil {
		return fmt.Errorf("failed to load %s: %w", r.baseURL, err)
	}
	res.State = PageLoaded

	for _, in := range sc.Inputs {
		if err := r.fill(ctx, in); err != nil {
			return err
		}
	}
	res.State = InputsSet

	trigger, err := r.resolver.Resolve(r.page, sc.Trigger)
	if err != nil {
		return fmt.Errorf("failed to resolve trigger: %w", err)
	}
	if err := trigger.Click(); err != nil {
		return fmt.Errorf("failed to click trigger: %w", err)
	}
	if err := r.pause(ctx); err != nil {
		return err
	}
	res.State = ActionTriggered

	res.State = AwaitingResult
	marker := sc.Expect.Marker()
	log.Debug("Awaiting result.", zap.String("marker", marker), zap.Duration("timeout", r.waitTimeout))
	if err := r.waiter.WaitForText(ctx, r.page, sc.Output, marker, r.waitTimeout); err != nil {
		return err
	}

	out, err := r.resolver.Resolve(r.page, sc.Output)
	if err != nil {
		return fmt.Errorf("failed to resolve output: %w", err)
	}
	raw, err := out.Text()
	if err != nil {
		return fmt.Errorf("failed to read output: %w", err)
	}
	outcome, err := ParseOutcome(raw)
	if err != nil {
		return err
	}
	res.Outcome = &outcome
	res.State = ResultParsed

	if err := r.assert(sc, outcome); err != nil {
		if !IsInfrastructure(err) {
			res.State = Asserted
		}
		return err
	}
	res.State = Asserted
	return nil
}

func (r *Runner) fill(ctx context.Context, in Input) error {
	el, err := r.resolver.Resolve(r.page, in.Target)
	if err != nil {
		return fmt.Errorf("failed to resolve input %s: %w", in.Name, err)
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear input %s: %w", in.Name, err)
	}
	if err := r.pause(ctx); err != nil {
		return err
	}
	if err := el.Input(in.Value); err != nil {
		return fmt.Errorf("failed to type into input %s: %w", in.Name, err)
	}
	return r.pause(ctx)
}

func (r *Runner) pause(ctx context.Context) error {
	if r.pacing <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.clock.After(r.pacing):
		return nil
	}
}

// assert compares the outcome (and preview colour) against the
// expectation and reports the first mismatch.
func (r *Runner) assert(sc Scenario, o Outcome) error {
	want := sc.Expect
	if o.Success != want.Success {
		return &AssertionError{Field: "success", Expected: want.Success, Actual: o.Success}
	}

	if want.Success {
		if o.Data == nil {
			return &AssertionError{Field: "data", Expected: "conversion result", Actual: nil}
		}
		if want.Hex != "" && o.Data.Hex != want.Hex {
			return &AssertionError{Field: "data.hex", Expected: want.Hex, Actual: o.Data.Hex}
		}
		if want.RGB != nil && o.Data.RGB != *want.RGB {
			return &AssertionError{Field: "data.rgb", Expected: *want.RGB, Actual: o.Data.RGB}
		}
	} else {
		if o.Error == "" {
			return &AssertionError{Field: "error", Expected: "non-empty error", Actual: `""`}
		}
		if want.ErrorContains != "" && !strings.Contains(o.ErrorText(), want.ErrorContains) {
			return &AssertionError{Field: "error/message", Expected: "containing " + want.ErrorContains, Actual: o.ErrorText()}
		}
	}

	if want.Preview != "" {
		return r.assertPreview(sc, want.Preview)
	}
	return nil
}

func (r *Runner) assertPreview(sc Scenario, want string) error {
	el, err := r.resolver.Resolve(r.page, sc.Preview)
	if err != nil {
		return fmt.Errorf("failed to resolve preview: %w", err)
	}
	got, err := el.BackgroundColor()
	if err != nil {
		return fmt.Errorf("failed to read preview colour: %w", err)
	}
	if !color.EqualCSS(want, got) {
		return &AssertionError{Field: "preview background-color", Expected: want, Actual: got}
	}
	return nil
}

// capture writes the scenario's evidence screenshot. Failures are logged
// and never change the verdict.
func (r *Runner) capture(sc Scenario, log *zap.Logger) {
	if sc.Screenshot == "" {
		return
	}
	path := filepath.Join(r.screenshotDir, r.runID, sc.Screenshot)
	if err := r.page.Screenshot(path); err != nil {
		log.Warn("Screenshot capture failed.", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info("Screenshot saved.", zap.String("path", path))
}
