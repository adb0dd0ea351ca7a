// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faceui

import (
	"math"
	"strings"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// MinimumRadius is the smallest face that still shows all twelve hour
// marks distinctly.
const MinimumRadius = 4

// Layer says what occupies a cell. Later layers draw over earlier ones.
type Layer uint8

const (
	LayerEmpty Layer = iota
	LayerMinuteDot
	LayerRim
	LayerHourMark
	LayerHourHand
	LayerMinuteHand
	LayerSecondHand
	LayerCap
)

// handLayers maps each hand to its layer.
var handLayers = [len(dial.Hands)]Layer{
	dial.Hour:   LayerHourHand,
	dial.Minute: LayerMinuteHand,
	dial.Second: LayerSecondHand,
}

// handReach is each hand's length as a fraction of the radius, in the
// same proportion as the SVG face (52, 67, 93 against a rim of 98).
var handReach = [len(dial.Hands)]float64{
	dial.Hour:   0.53,
	dial.Minute: 0.68,
	dial.Second: 0.95,
}

// Cell is one character position.
type Cell struct {
	Rune  rune
	Layer Layer
}

// Canvas is a grid of cells, row-major.
type Canvas struct {
	Radius int
	Width  int
	Height int
	cells  []Cell
}

// NewCanvas returns an empty canvas for a face of radius (clamped to
// MinimumRadius).
func NewCanvas(radius int) *Canvas {
	radius = max(radius, MinimumRadius)
	width := 4*radius + 1
	height := 2*radius + 1
	cells := make([]Cell, width*height)
	for index := range cells {
		cells[index] = Cell{Rune: ' '}
	}
	return &Canvas{Radius: radius, Width: width, Height: height, cells: cells}
}

// Cell returns the cell at (column, row), or an empty cell outside the
// canvas.
func (canvas *Canvas) Cell(column, row int) Cell {
	if column < 0 || column >= canvas.Width || row < 0 || row >= canvas.Height {
		return Cell{Rune: ' '}
	}
	return canvas.cells[row*canvas.Width+column]
}

// plot writes r at (column, row) unless a higher layer is already
// there.
func (canvas *Canvas) plot(column, row int, r rune, layer Layer) {
	if column < 0 || column >= canvas.Width || row < 0 || row >= canvas.Height {
		return
	}
	cell := &canvas.cells[row*canvas.Width+column]
	if cell.Layer > layer {
		return
	}
	cell.Rune = r
	cell.Layer = layer
}

// point returns the cell at distance (in rows) from the center along
// a dial angle in degrees, 0 at twelve o'clock, clockwise.
func (canvas *Canvas) point(angle, distance float64) (int, int) {
	radians := dial.Normalize(angle) * math.Pi / 180
	column := canvas.Radius*2 + int(math.Round(2*distance*math.Sin(radians)))
	row := canvas.Radius - int(math.Round(distance*math.Cos(radians)))
	return column, row
}

// String returns the canvas as plain text, one line per row, with
// trailing spaces trimmed.
func (canvas *Canvas) String() string {
	lines := make([]string, canvas.Height)
	for row := range canvas.Height {
		var line strings.Builder
		for column := range canvas.Width {
			line.WriteRune(canvas.Cell(column, row).Rune)
		}
		lines[row] = strings.TrimRight(line.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Draw rasterizes a face of the given radius with each hand at its
// angle (cumulative angles are fine). The second hand is omitted when
// showSeconds is false.
func Draw(radius int, angles dial.Angles, showSeconds bool) *Canvas {
	canvas := NewCanvas(radius)
	size := float64(canvas.Radius)

	for minute := range 60 {
		column, row := canvas.point(float64(minute)*dial.DegreesPerMinute, size-1)
		if minute%5 == 0 {
			canvas.plot(column, row, '●', LayerHourMark)
		} else {
			canvas.plot(column, row, '·', LayerMinuteDot)
		}
	}

	// Step in small angular increments so the rim has no gaps at any
	// radius.
	steps := int(math.Ceil(2 * math.Pi * size * 4))
	for step := range steps {
		angle := float64(step) * dial.FullTurn / float64(steps)
		column, row := canvas.point(angle, size)
		canvas.plot(column, row, rimRune(angle), LayerRim)
	}

	for _, hand := range dial.Hands {
		if hand == dial.Second && !showSeconds {
			continue
		}
		drawHand(canvas, angles[hand], handReach[hand]*size, handLayers[hand])
	}

	canvas.plot(canvas.Radius*2, canvas.Radius, '◉', LayerCap)
	return canvas
}

func drawHand(canvas *Canvas, angle, length float64, layer Layer) {
	glyph := handRune(angle)
	for distance := 0.5; distance <= length; distance += 0.25 {
		column, row := canvas.point(angle, distance)
		canvas.plot(column, row, glyph, layer)
	}
}

// handRune picks the line character closest to the hand's direction.
func handRune(angle float64) rune {
	octant := int(math.Round(dial.Normalize(angle)/45)) % 8
	switch octant {
	case 0, 4:
		return '│'
	case 1, 5:
		return '╱'
	case 2, 6:
		return '─'
	default:
		return '╲'
	}
}

// rimRune picks the rim character tangent to the circle at angle.
func rimRune(angle float64) rune {
	return map[rune]rune{'│': '─', '─': '│', '╱': '╲', '╲': '╱'}[handRune(angle)]
}
