// Package color defines canonical representation of parsed CSS color and
// formats it back into CSS functional notations.
package color

import (
	"fmt"

	"hslc/colorspace"
	"hslc/common"
)

// Color is immutable canonical color value. Space tag is set at construction
// and never changes, conversion happens on demand when formatting.
//
// For HSL family channels are hue (fraction of 360 degrees), saturation and
// lightness, for RGB family - red, green and blue. All channels, alpha
// included, are expected to be in [0,1] range.
type Color struct {
	space    common.Space
	channels [4]float64
}

// New creates color without explicit alpha channel (alpha is 1).
func New(space common.Space, c0, c1, c2 float64) Color {
	return Color{space: space, channels: [4]float64{c0, c1, c2, 1}}
}

// NewWithAlpha creates color with explicit alpha channel.
func NewWithAlpha(space common.Space, c0, c1, c2, a float64) Color {
	return Color{space: space, channels: [4]float64{c0, c1, c2, a}}
}

func (c Color) Space() common.Space {
	return c.space
}

func (c Color) Family() common.Family {
	return c.space.Family()
}

func (c Color) HasAlpha() bool {
	return c.space.HasAlpha()
}

// Channels returns copy of (c0, c1, c2, alpha).
func (c Color) Channels() [4]float64 {
	return c.channels
}

// Triple returns color channels without alpha.
func (c Color) Triple() colorspace.Triple {
	return colorspace.Triple{c.channels[0], c.channels[1], c.channels[2]}
}

func (c Color) Alpha() float64 {
	return c.channels[3]
}

// Valid reports whether channels satisfy range invariants of the color space.
// Parser does not clamp values so this may not hold for unusual input.
func (c Color) Valid() bool {
	if !c.space.IsValid() {
		return false
	}
	for i, v := range c.channels {
		if v < 0 || v > 1 {
			return false
		}
		// hue is a fraction of the full turn
		if i == 0 && c.Family() == common.FamilyHsl && v == 1 {
			return false
		}
	}
	return true
}

// String is for debugging, use Formatter for presentation.
func (c Color) String() string {
	return fmt.Sprintf("%s%v", c.space, c.channels)
}
