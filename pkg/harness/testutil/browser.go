// Package testutil provides browser and fixture helpers for E2E testing.
package testutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/ysmood/gson"
	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/pkg/harness"
)

// BrowserClient wraps a harness session with direct DOM access, so tests
// can check the page independently of the harness under test.
type BrowserClient struct {
	session *harness.Session
	timeout time.Duration
}

// NewBrowserClient launches Chrome with cfg.
// Always call Close (via defer) to prevent orphaned Chrome processes.
func NewBrowserClient(cfg harness.SessionConfig, logger *zap.Logger) (*BrowserClient, error) {
	s, err := harness.NewSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &BrowserClient{session: s, timeout: cfg.Timeout}, nil
}

// Page returns the harness view of the browser tab.
func (c *BrowserClient) Page() harness.Page {
	return c.session.Page()
}

// Eval executes a JavaScript function in the current document and returns
// its result.
func (c *BrowserClient) Eval(js string, args ...interface{}) (gson.JSON, error) {
	if c.session == nil {
		return gson.New(nil), errors.New("browser is closed")
	}
	page := c.session.Rod().Timeout(c.timeout)
	defer page.CancelTimeout()

	res, err := page.Eval(js, args...)
	if err != nil {
		return gson.New(nil), fmt.Errorf("eval failed: %w", err)
	}
	return res.Value, nil
}

// WaitStable waits for the page to stop changing.
func (c *BrowserClient) WaitStable() error {
	if c.session == nil {
		return errors.New("browser is closed")
	}
	return c.session.Rod().WaitStable(c.timeout)
}

// Close shuts the browser down.
func (c *BrowserClient) Close() error {
	if c.session == nil {
		return nil
	}
	return c.session.Close()
}
