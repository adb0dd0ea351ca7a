// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content placed at (anchorX, anchorY) in cell coordinates.
// Escape sequences in the original view survive on both sides of the
// overlay. The face uses it to lay the digital caption across the
// lower half of the dial.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// Build: prefix + reset + overlay + reset + suffix.
		var result strings.Builder

		// Prefix: everything before the overlay anchor.
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		// Suffix: everything after the overlay region.
		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			suffix := ansi.TruncateLeft(viewLine, suffixStart, "")
			result.WriteString(suffix)
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// Center places block in the middle of a width x height area,
// padding with spaces. Blocks larger than the area are clipped on the
// right and bottom.
func Center(block string, width, height int) string {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, ansi.StringWidth(line))
	}

	top := max(0, (height-len(lines))/2)
	left := max(0, (width-blockWidth)/2)
	padding := strings.Repeat(" ", left)

	var result strings.Builder
	for row := 0; row < height; row++ {
		index := row - top
		if index >= 0 && index < len(lines) {
			line := lines[index]
			if ansi.StringWidth(line)+left > width {
				line = ansi.Truncate(line, max(0, width-left), "")
			}
			result.WriteString(padding)
			result.WriteString(line)
		}
		if row < height-1 {
			result.WriteByte('\n')
		}
	}
	return result.String()
}

// CenterColumn returns the column at which text of the given content
// starts when centered in width cells.
func CenterColumn(text string, width int) int {
	return max(0, (width-ansi.StringWidth(text))/2)
}
