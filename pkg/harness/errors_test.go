package harness

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsInfrastructure(t *testing.T) {
	assert.False(t, IsInfrastructure(nil))
	assert.False(t, IsInfrastructure(&AssertionError{Field: "success"}))
	assert.False(t, IsInfrastructure(fmt.Errorf("wrapped: %w", &AssertionError{Field: "data.hex"})))

	assert.True(t, IsInfrastructure(&ElementNotFoundError{}))
	assert.True(t, IsInfrastructure(&TimeoutError{}))
	assert.True(t, IsInfrastructure(&MalformedPayloadError{Err: errors.New("bad")}))
	assert.True(t, IsInfrastructure(fmt.Errorf("failed to preview: %w", &ElementNotFoundError{})))
	assert.True(t, IsInfrastructure(context.Canceled))
}

func TestErrorMessages(t *testing.T) {
	te := &TimeoutError{Target: HexOutput, Expected: SuccessMarker, Timeout: 2 * time.Second, LastText: "Working..."}
	assert.Equal(t,
		`timed out after 2s waiting for "\"success\": true" in [id=hexOut, xpath=//*[@id="hexOut"]] (last text "Working...")`,
		te.Error())

	ae := &AssertionError{Field: "data.hex", Expected: "#FFFFFF", Actual: "#FFFFFE"}
	assert.Equal(t, "assertion failed on data.hex: expected #FFFFFF, got #FFFFFE", ae.Error())

	cause := errors.New("unexpected end of JSON input")
	me := &MalformedPayloadError{Raw: "{", Err: cause}
	assert.ErrorIs(t, me, cause)
	assert.Contains(t, me.Error(), `"{"`)
}
