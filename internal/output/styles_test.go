package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPageLine(t *testing.T) {
	line := FormatPageLine("/blog/first", StatusRendered)

	assert.Contains(t, line, "/blog/first")
	assert.Contains(t, line, StatusRendered)
	assert.True(t, strings.Contains(line, "  "), "status should be padded away from the route")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
}

func TestFormatSummary(t *testing.T) {
	s := FormatSummary(3, 2, "12ms")
	assert.Contains(t, s, "3 pages")
	assert.Contains(t, s, "2 assets")
	assert.Contains(t, s, "12ms")
}

func TestStatusStyleUnknownIsUnstyled(t *testing.T) {
	// Unknown statuses render unchanged (modulo terminal profile).
	assert.NotPanics(t, func() {
		StatusStyle("mystery").Render("mystery")
	})
}
