package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"
	"go.uber.org/zap"
)

// SessionConfig configures Chrome launch options.
type SessionConfig struct {
	Headless  bool          `mapstructure:"headless"`   // Run without a visible window (default: true)
	Width     int           `mapstructure:"width"`      // Viewport width in CSS pixels (default: 1280)
	Height    int           `mapstructure:"height"`     // Viewport height in CSS pixels (default: 900)
	Timeout   time.Duration `mapstructure:"timeout"`    // Per-operation timeout (default: 30s)
	NoSandbox bool          `mapstructure:"no_sandbox"` // Disable the sandbox for containers (default: true)
	Bin       string        `mapstructure:"bin"`        // Chrome binary; empty lets Rod find or download one
}

// DefaultSessionConfig returns sensible defaults for automated runs.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Headless:  true,
		Width:     1280,
		Height:    900,
		Timeout:   30 * time.Second,
		NoSandbox: true,
	}
}

// Validate checks the configuration for sane values.
func (c SessionConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Timeout <= 0 {
		return errors.New("browser timeout must be positive")
	}
	return nil
}

// Session owns the browser process for the duration of a run and the one
// tab every scenario drives.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
	logger  *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewSession launches Chrome and opens a blank tab with the configured
// viewport. Always call Close (or use WithSession) to prevent orphaned
// Chrome processes.
func NewSession(cfg SessionConfig, logger *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Set("disable-gpu").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.Width, cfg.Height))
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.Width,
		Height:            cfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	logger.Info("Browser session started.",
		zap.Bool("headless", cfg.Headless),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	return &Session{
		browser: browser,
		page:    page,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// WithSession runs fn with a fresh session and tears the browser down on
// every exit path, including panics in fn.
func WithSession(cfg SessionConfig, logger *zap.Logger, fn func(*Session) error) (err error) {
	s, err := NewSession(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Page returns the session's tab.
func (s *Session) Page() Page {
	return &rodPage{page: s.page, timeout: s.timeout}
}

// Rod returns the underlying Rod page, for inspecting the DOM directly.
func (s *Session) Rod() *rod.Page {
	return s.page
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.browser != nil {
			s.closeErr = s.browser.Close()
		}
		s.logger.Info("Browser session closed.", zap.Error(s.closeErr))
	})
	return s.closeErr
}

// rodPage adapts a Rod page to Page.
type rodPage struct {
	page    *rod.Page
	timeout time.Duration
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx).Timeout(p.timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

// ElementByID looks the id up with getElementById, which needs no CSS
// escaping. The not-found sleeper makes a miss return immediately
// instead of retrying until the timeout.
func (p *rodPage) ElementByID(id string) (Element, error) {
	el, err := p.page.Sleeper(rod.NotFoundSleeper).
		ElementByJS(rod.Eval(`(id) => document.getElementById(id)`, id))
	if err != nil {
		return nil, err
	}
	return p.wrap(el), nil
}

func (p *rodPage) ElementByXPath(xpath string) (Element, error) {
	el, err := p.page.Sleeper(rod.NotFoundSleeper).ElementX(xpath)
	if err != nil {
		return nil, err
	}
	return p.wrap(el), nil
}

// wrap restores the default sleeper so actions on the element (which wait
// for visibility) keep retrying.
func (p *rodPage) wrap(el *rod.Element) *rodElement {
	return &rodElement{el: el.Sleeper(rod.DefaultSleeper), timeout: p.timeout}
}

func (p *rodPage) Screenshot(path string) error {
	page := p.page.Timeout(p.timeout)
	defer page.CancelTimeout()

	data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := utils.OutputFile(path, data); err != nil {
		return fmt.Errorf("failed to write screenshot %s: %w", path, err)
	}
	return nil
}

// rodElement adapts a Rod element to Element.
type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

// timed returns the element bounded by the operation timeout and the
// function releasing that timeout.
func (e *rodElement) timed() (*rod.Element, func()) {
	el := e.el.Timeout(e.timeout)
	return el, func() { el.CancelTimeout() }
}

func (e *rodElement) Text() (string, error) {
	el, done := e.timed()
	defer done()
	return el.Text()
}

// Clear resets the value through the DOM and fires an input event, which
// works for number inputs where text selection is unsupported.
func (e *rodElement) Clear() error {
	el, done := e.timed()
	defer done()
	_, err := el.Eval(`() => {
		this.value = '';
		this.dispatchEvent(new Event('input', { bubbles: true }));
	}`)
	return err
}

func (e *rodElement) Input(text string) error {
	el, done := e.timed()
	defer done()
	return el.Input(text)
}

func (e *rodElement) Click() error {
	el, done := e.timed()
	defer done()
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) BackgroundColor() (string, error) {
	el, done := e.timed()
	defer done()
	res, err := el.Eval(`() => getComputedStyle(this).backgroundColor`)
	if err != nil {
		return "", err
	}
	return res.Value.String(), nil
}
