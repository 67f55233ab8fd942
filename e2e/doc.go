//go:build e2e

// Package e2e provides end-to-end tests for the colorcheck harness.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Against an already running application instead of the built-in fixture:
//
//	APP_URL=http://localhost:3000 go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the colorconv server as the application under test
//   - BrowserClient from pkg/harness/testutil for direct DOM checks
//
// Test isolation:
// One browser is shared by the whole run and driven sequentially. Tests that
// need a differently configured application start their own server on a
// random port.
package e2e
