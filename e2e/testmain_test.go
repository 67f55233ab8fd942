//go:build e2e

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"testing"

	"go.uber.org/zap"

	"github.com/thesyncim/colorcheck/cmd/colorconv/server"
	"github.com/thesyncim/colorcheck/pkg/harness"
	"github.com/thesyncim/colorcheck/pkg/harness/testutil"
)

var (
	// appURL is the application every test drives unless it starts its own.
	appURL string
	// browser is shared by all tests; they must not run in parallel.
	browser *testutil.BrowserClient
	logger  *zap.Logger
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	// Cleanup: Kill any orphaned Chrome processes
	// This is a safety net for panics where Close() didn't run
	defer cleanupOrphanedBrowsers()

	logger = zap.NewNop()
	if testing.Verbose() {
		logger, _ = zap.NewDevelopment()
	}

	cfg, err := harness.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return 2
	}

	appURL = os.Getenv("APP_URL")
	if appURL == "" {
		url, stop, err := testutil.StartConverter(server.Config{Logger: logger.Named("server")})
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to start converter:", err)
			return 2
		}
		defer stop()
		appURL = url
	}

	browser, err = testutil.NewBrowserClient(cfg.Browser, logger.Named("session"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to launch browser:", err)
		return 2
	}
	defer browser.Close()

	return m.Run()
}

// cleanupOrphanedBrowsers attempts to kill Chrome processes that may have
// been left behind by failed tests. This is best-effort cleanup.
func cleanupOrphanedBrowsers() {
	switch runtime.GOOS {
	case "darwin", "linux":
		// pkill returns non-zero if no processes matched, ignore error
		// Target both chromium (Rod downloads) and chrome (system install)
		_ = exec.Command("pkill", "-f", "chromium|chrome").Run()
	case "windows":
		_ = exec.Command("taskkill", "/F", "/IM", "chrome.exe").Run()
		_ = exec.Command("taskkill", "/F", "/IM", "chromium.exe").Run()
	}
}
