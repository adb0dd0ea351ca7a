// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package svgface

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/bureau-foundation/clockface/lib/dial"
)

// Style holds the colors and transition timing of the face. Colors
// are any CSS color literal accepted by [ValidColor].
type Style struct {
	RimFill  string
	DialFill string

	HourStroke   string
	MinuteStroke string
	SecondStroke string

	CapFill   string
	CapStroke string

	// Transition lengths per hand. Zero turns that hand's transition
	// off.
	HourTransition   time.Duration
	MinuteTransition time.Duration
	SecondTransition time.Duration

	// Curve is the CSS timing function of every transition.
	Curve string
}

// DefaultStyle is a station clock: orange second hand, white hour
// and minute hands, and a slight overshoot on each transition.
var DefaultStyle = Style{
	RimFill:          "rgb(179, 179, 179)",
	DialFill:         "black",
	HourStroke:       "white",
	MinuteStroke:     "white",
	SecondStroke:     "rgb(255, 140, 0)",
	CapFill:          "black",
	CapStroke:        "white",
	HourTransition:   500 * time.Millisecond,
	MinuteTransition: 500 * time.Millisecond,
	SecondTransition: 300 * time.Millisecond,
	Curve:            "cubic-bezier(0.2, 0.8, 0.2, 1.2)",
}

// handGeometry is the length and stroke width of each hand in
// viewBox units.
var handGeometry = [len(dial.Hands)]struct {
	length float64
	width  float64
}{
	dial.Hour:   {length: 52, width: 5},
	dial.Minute: {length: 67, width: 3},
	dial.Second: {length: 93, width: 2},
}

const documentTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 200 200" style="background-color: transparent">
  <style>
    {% if animated %}#hourHand { transition: transform {{ hour_transition }} {{ curve }}; }
    #minuteHand { transition: transform {{ minute_transition }} {{ curve }}; }
    #secondHand { transition: transform {{ second_transition }} {{ curve }}; }{% else %}.hand { transition: none; }{% endif %}
  </style>
  <circle cx="100" cy="100" r="98" style="fill: {{ rim_fill }}; stroke: black; stroke-width: 3.0" />
  <circle cx="100" cy="100" r="70" style="fill: {{ dial_fill }}; stroke: black; stroke-width: 3.0" />
{% for hand in hands %}  <g transform="translate(100, 100)">
    <g id="{{ hand.id }}" class="hand" transform="rotate({{ hand.angle }})">
      <line x1="0" y1="0" x2="0" y2="-{{ hand.length }}" style="stroke: {{ hand.stroke }}; stroke-width: {{ hand.width }}" />
    </g>
  </g>
{% endfor %}  <circle cx="100" cy="100" r="4" style="fill: {{ cap_fill }}; stroke: {{ cap_stroke }}; stroke-width: 2.0" />
</svg>
`

// Face renders SVG documents in one Style. Safe for concurrent use.
type Face struct {
	style    Style
	template *pongo2.Template
}

// New validates style and compiles the document template.
func New(style Style) (*Face, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	template, err := pongo2.FromString(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("compiling svg face template: %w", err)
	}
	return &Face{style: style, template: template}, nil
}

// Render returns the document with each hand rotated to its
// cumulative angle.
func (face *Face) Render(angles dial.Angles, animated bool) ([]byte, error) {
	strokes := [len(dial.Hands)]string{
		dial.Hour:   face.style.HourStroke,
		dial.Minute: face.style.MinuteStroke,
		dial.Second: face.style.SecondStroke,
	}

	hands := make([]pongo2.Context, 0, len(dial.Hands))
	for _, hand := range dial.Hands {
		hands = append(hands, pongo2.Context{
			"id":     ElementID(hand),
			"angle":  formatNumber(angles[hand]),
			"length": formatNumber(handGeometry[hand].length),
			"width":  formatNumber(handGeometry[hand].width),
			"stroke": strokes[hand],
		})
	}

	document, err := face.template.ExecuteBytes(pongo2.Context{
		"animated":          animated,
		"hour_transition":   formatSeconds(face.style.HourTransition),
		"minute_transition": formatSeconds(face.style.MinuteTransition),
		"second_transition": formatSeconds(face.style.SecondTransition),
		"curve":             face.style.Curve,
		"rim_fill":          face.style.RimFill,
		"dial_fill":         face.style.DialFill,
		"cap_fill":          face.style.CapFill,
		"cap_stroke":        face.style.CapStroke,
		"hands":             hands,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering svg face: %w", err)
	}
	return document, nil
}

// ElementID returns the id attribute of hand's group, e.g. "hourHand".
func ElementID(hand dial.Hand) string {
	return hand.String() + "Hand"
}

// Transform returns the SVG transform that draws hand at angle.
func Transform(angle float64) string {
	return "rotate(" + formatNumber(angle) + ")"
}

// Validate reports the first malformed field.
func (style Style) Validate() error {
	colors := []struct {
		field string
		value string
	}{
		{"rim_fill", style.RimFill},
		{"dial_fill", style.DialFill},
		{"hour_stroke", style.HourStroke},
		{"minute_stroke", style.MinuteStroke},
		{"second_stroke", style.SecondStroke},
		{"cap_fill", style.CapFill},
		{"cap_stroke", style.CapStroke},
	}
	for _, color := range colors {
		if !ValidColor(color.value) {
			return fmt.Errorf("svg face: %s %q is not a CSS color", color.field, color.value)
		}
	}
	if style.HourTransition < 0 || style.MinuteTransition < 0 || style.SecondTransition < 0 {
		return fmt.Errorf("svg face: transitions must not be negative")
	}
	if !timingFunctionPattern.MatchString(style.Curve) {
		return fmt.Errorf("svg face: curve %q is not a CSS timing function", style.Curve)
	}
	return nil
}

var (
	colorPattern          = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([0-9., %]+\))$`)
	timingFunctionPattern = regexp.MustCompile(`^([a-z-]+|cubic-bezier\([0-9., -]+\)|steps\([0-9a-z, -]+\))$`)
)

// ValidColor reports whether value is a hex, named, rgb(), or rgba()
// CSS color. Anything else is rejected so it cannot escape the style
// attribute it is placed in.
func ValidColor(value string) bool {
	return colorPattern.MatchString(value)
}

// formatNumber prints the shortest decimal that round-trips, so 304.5
// stays "304.5" and 360 stays "360".
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatSeconds(duration time.Duration) string {
	return formatNumber(duration.Seconds()) + "s"
}
