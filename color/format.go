package color

import (
	"fmt"
	"strconv"

	"hslc/colorspace"
	"hslc/common"
)

// Formatter renders colors in CSS functional notations converting color
// space when necessary. Output always has one decimal digit per channel.
type Formatter struct {
	conv *colorspace.Converter
}

func NewFormatter(conv *colorspace.Converter) *Formatter {
	if conv == nil {
		conv = colorspace.NewConverter(nil)
	}
	return &Formatter{conv: conv}
}

// Format renders color in requested notation.
func (f *Formatter) Format(c Color, target common.Space) (string, error) {
	switch target {
	case common.SpaceHsl:
		return f.AsHSL(c), nil
	case common.SpaceHsla:
		return f.AsHSLA(c), nil
	case common.SpaceRgb:
		return f.AsRGB(c), nil
	case common.SpaceRgba:
		return f.AsRGBA(c), nil
	default:
		return "", fmt.Errorf("unsupported output notation: %s", target)
	}
}

func (f *Formatter) AsHSL(c Color) string {
	hsl := f.hsl(c)
	return "hsl(" + f.hue(c, hsl[0]) + ", " + percent(hsl[1]) + ", " + percent(hsl[2]) + ")"
}

func (f *Formatter) AsHSLA(c Color) string {
	hsl := f.hsl(c)
	return "hsla(" + f.hue(c, hsl[0]) + ", " + percent(hsl[1]) + ", " + percent(hsl[2]) + ", " + percent(c.Alpha()) + ")"
}

func (f *Formatter) AsRGB(c Color) string {
	rgb := f.rgb(c)
	return "rgb(" + percent(rgb[0]) + ", " + percent(rgb[1]) + ", " + percent(rgb[2]) + ")"
}

func (f *Formatter) AsRGBA(c Color) string {
	rgb := f.rgb(c)
	return "rgba(" + percent(rgb[0]) + ", " + percent(rgb[1]) + ", " + percent(rgb[2]) + ", " + percent(c.Alpha()) + ")"
}

// hsl returns stored channels as is for HSL colors.
func (f *Formatter) hsl(c Color) colorspace.Triple {
	if c.Family() == common.FamilyHsl {
		return c.Triple()
	}
	return f.conv.ToHSL(c.Triple())
}

// hue renders hue in degrees. Converted hue just below the full turn is
// shown as 0.0 rather than 360.0, stored hue is shown as given.
func (f *Formatter) hue(c Color, h float64) string {
	s := decimal(h * 360)
	if s == "360.0" && c.Family() != common.FamilyHsl {
		return "0.0"
	}
	return s
}

// rgb returns stored channels as is for RGB colors.
func (f *Formatter) rgb(c Color) colorspace.Triple {
	if c.Family() == common.FamilyRgb {
		return c.Triple()
	}
	return colorspace.ToRGB(c.Triple())
}

func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

func percent(v float64) string {
	return decimal(v*100) + "%"
}
