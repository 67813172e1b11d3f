package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]column{{title: "Title"}, {title: "Files", right: true}},
		[][]string{{"奇异恩典", "12"}, {"Way Maker"}},
	)

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Files")
	assert.NotContains(t, out, "TITLE")
	assert.Contains(t, out, "奇异恩典")
	assert.Contains(t, out, "Way Maker")

	lines := strings.Split(out, "\n")
	// top border, header, separator, two rows, bottom border
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
}

func TestRenderTable_RightAlign(t *testing.T) {
	out := renderTable([]column{{title: "Count", right: true}}, [][]string{{"1"}, {"100"}})
	assert.Contains(t, out, "│     1 │")
	assert.Contains(t, out, "│   100 │")
}

func TestRenderTable_NoColumns(t *testing.T) {
	assert.Empty(t, renderTable(nil, [][]string{{"x"}}))
}
