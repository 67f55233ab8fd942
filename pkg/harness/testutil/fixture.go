package testutil

import (
	"context"
	"time"

	"github.com/thesyncim/colorcheck/cmd/colorconv/server"
)

// StartConverter starts the converter application on a random port and
// returns its base URL and a function that stops it.
func StartConverter(cfg server.Config) (string, func() error, error) {
	cfg.Addr = ":0"
	srv, err := server.NewServer(cfg)
	if err != nil {
		return "", nil, err
	}
	if _, err := srv.Start(); err != nil {
		return "", nil, err
	}

	stop := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
	return srv.URL(), stop, nil
}

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Cleanup(func())
}

// MustStartConverter is StartConverter for a single test: failures are
// fatal and the server stops when the test ends.
func MustStartConverter(t TB, cfg server.Config) string {
	t.Helper()
	url, stop, err := StartConverter(cfg)
	if err != nil {
		t.Fatalf("failed to start converter: %v", err)
	}
	t.Cleanup(func() {
		if err := stop(); err != nil {
			t.Errorf("converter shutdown error: %v", err)
		}
	})
	return url
}
