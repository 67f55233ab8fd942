package harness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/colorcheck/pkg/color"
)

const exampleSuite = `
scenarios:
  - name: white
    hex: "#FFFFFF"
    expect:
      success: true
      hex: "#FFFFFF"
      rgb: {r: 255, g: 255, b: 255}
      preview: "rgb(255,255,255)"
    screenshot: white.png
  - name: out of range
    rgb: ["300", "-1", "60"]
    expect:
      success: false
      error_contains: Invalid RGB
`

func TestLoadSuite(t *testing.T) {
	scenarios, err := LoadSuite(strings.NewReader(exampleSuite))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	white := scenarios[0]
	assert.Equal(t, "white", white.Name)
	assert.Equal(t, HexTrigger, white.Trigger)
	assert.Equal(t, HexOutput, white.Output)
	assert.Equal(t, []Input{{Name: "hex", Target: HexInput, Value: "#FFFFFF"}}, white.Inputs)
	assert.Equal(t, "white.png", white.Screenshot)
	assert.True(t, white.Expect.Success)
	assert.Equal(t, &color.RGB{R: 255, G: 255, B: 255}, white.Expect.RGB)
	assert.Equal(t, "rgb(255,255,255)", white.Expect.Preview)

	oor := scenarios[1]
	assert.Equal(t, RGBTrigger, oor.Trigger)
	require.Len(t, oor.Inputs, 3)
	assert.Equal(t, "-1", oor.Inputs[1].Value)
	assert.Equal(t, ExpectFailure("Invalid RGB"), oor.Expect)
	assert.Empty(t, oor.Screenshot)
}

// A suite loaded from YAML drives the page the same way the built-in one does.
func TestLoadSuite_RunsAgainstPage(t *testing.T) {
	scenarios, err := LoadSuite(strings.NewReader(exampleSuite))
	require.NoError(t, err)

	r, _ := newTestRunner(t, newFakeConverter())
	report := r.RunAll(context.Background(), scenarios)
	for _, res := range report.Results {
		assert.Equal(t, Pass, res.Verdict, "%s: %v", res.Scenario, res.Err)
	}
}

func TestLoadSuite_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty document", "", "empty"},
		{"no scenarios", "scenarios: []", "no scenarios"},
		{"unknown field", "scenarios:\n  - name: x\n    hex: FFF\n    colour: red\n", "colour"},
		{"both forms", "scenarios:\n  - name: x\n    hex: FFF\n    rgb: [\"1\", \"2\", \"3\"]\n", "not both"},
		{"neither form", "scenarios:\n  - name: x\n", "required"},
		{"short rgb", "scenarios:\n  - name: x\n    rgb: [\"1\", \"2\"]\n", "3 channels"},
		{"missing name", "scenarios:\n  - hex: FFF\n", "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuite(strings.NewReader(tt.yaml))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadSuiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleSuite), 0o644))

	scenarios, err := LoadSuiteFile(path)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)

	_, err = LoadSuiteFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read suite")
}

func TestCanonicalSuite(t *testing.T) {
	suite := CanonicalSuite()
	require.Len(t, suite, 4)
	assert.Equal(t, "app.png", suite[0].Screenshot)
	assert.Equal(t, "rgb(255, 255, 255)", suite[0].Expect.Preview)
	assert.Equal(t, "#03643C", suite[1].Expect.Hex)
	assert.False(t, suite[2].Expect.Success)
	assert.Equal(t, "Invalid RGB", suite[3].Expect.ErrorContains)
}
