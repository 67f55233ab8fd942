//go:build e2e

package e2e

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/colorcheck/cmd/colorconv/server"
	"github.com/thesyncim/colorcheck/pkg/harness"
	"github.com/thesyncim/colorcheck/pkg/harness/testutil"
)

// TestChrome_CanConnect verifies the E2E infrastructure: the browser
// reaches the application and the page exposes what the harness needs.
// This is a smoke test - it validates infrastructure, not conversions.
func TestChrome_CanConnect(t *testing.T) {
	page := browser.Page()
	require.NoError(t, page.Navigate(context.Background(), appURL))
	require.NoError(t, browser.WaitStable())

	info, err := browser.Eval(`() => ({
		title: document.title,
		sections: document.querySelectorAll('body > section').length,
		fetch: typeof fetch === 'function',
	})`)
	require.NoError(t, err)
	assert.True(t, strings.Contains(info.Get("title").Str(), "RGB"), "unexpected title %q", info.Get("title").Str())
	assert.Equal(t, 2, info.Get("sections").Int())
	assert.True(t, info.Get("fetch").Bool())
}

// The resolver works against a live DOM: ids first, then XPath fallbacks,
// and a miss returns immediately.
func TestResolver_LiveMarkup(t *testing.T) {
	legacyURL := testutil.MustStartConverter(t, server.Config{LegacyIDs: true, Logger: logger})
	currentURL := testutil.MustStartConverter(t, server.Config{Logger: logger})

	resolver := harness.NewResolver(logger)
	page := browser.Page()
	ctx := context.Background()

	require.NoError(t, page.Navigate(ctx, currentURL))
	_, err := resolver.Resolve(page, harness.HexPreview)
	require.NoError(t, err)
	id, err := browser.Eval(`() => document.querySelector('section.hex .preview').id`)
	require.NoError(t, err)
	assert.Equal(t, "hexPreview", id.Str())

	require.NoError(t, page.Navigate(ctx, legacyURL))
	_, err = resolver.Resolve(page, harness.HexPreview)
	require.NoError(t, err, "legacy preview id must resolve")
	_, err = resolver.Resolve(page, harness.RGBTrigger)
	require.NoError(t, err, "id-less button must resolve by position")

	_, err = resolver.Resolve(page, harness.Candidates{IDs: []string{"hexGo"}})
	var nf *harness.ElementNotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Len(t, nf.Tried, 1)
}
