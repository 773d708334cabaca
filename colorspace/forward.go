// Package colorspace converts colors between HSL (as specified in CSS) and RGB.
// All channels, hue included, are in the [0, 1] range.
package colorspace

import "math"

// Triple holds three color channels: (h, s, l) or (r, g, b).
type Triple [3]float64

// Hue offsets of red, green and blue channels.
var hueOffsets = Triple{1.0 / 3, 0, -1.0 / 3}

// ToRGB converts HSL color to RGB, see
// https://www.w3.org/TR/css-color-3/#hsl-color.
func ToRGB(hsl Triple) Triple {
	h, s, l := hsl[0], hsl[1], hsl[2]
	m1, m2 := lightnessBounds(s, l)

	var rgb Triple
	for i, off := range hueOffsets {
		rgb[i] = hueToRGB(m1, m2, h+off)
	}
	return rgb
}

func lightnessBounds(s, l float64) (m1, m2 float64) {
	if l <= 0.5 {
		m2 = l * (s + 1)
	} else {
		m2 = l + s - l*s
	}
	return l*2 - m2, m2
}

// wrapHue brings hue into [0, 1).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	// -tiny + 1 rounds up to 1
	if h >= 1 {
		h = 0
	}
	return h
}

// hueBranch selects the piece of hueToRGB, comparisons are strict and order
// matters: boundary values fall through to later branches.
func hueBranch(h float64) int {
	switch {
	case h*6 < 1:
		return 0
	case h*2 < 1:
		return 1
	case h*3 < 2:
		return 2
	default:
		return 3
	}
}

func hueToRGB(m1, m2, h float64) float64 {
	h = wrapHue(h)
	switch hueBranch(h) {
	case 0:
		return m1 + (m2-m1)*h*6
	case 1:
		return m2
	case 2:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

// Jacobian returns partial derivatives of ToRGB at hsl: row i holds
// d(rgb[i])/d(h, s, l). At branch boundaries the one-sided derivative of the
// branch ToRGB picks is returned.
func Jacobian(hsl Triple) [3]Triple {
	h, s, l := hsl[0], hsl[1], hsl[2]
	m1, m2 := lightnessBounds(s, l)

	// d(m2)/ds, d(m2)/dl; m1 = 2l - m2
	var dm2s, dm2l float64
	if l <= 0.5 {
		dm2s, dm2l = l, s+1
	} else {
		dm2s, dm2l = 1-l, 1-s
	}
	dm1s, dm1l := -dm2s, 2-dm2l

	var jac [3]Triple
	for i, off := range hueOffsets {
		hh := wrapHue(h + off)

		// channel = a*m1 + b*m2 (+ hue term)
		var a, b, dh float64
		switch hueBranch(hh) {
		case 0:
			a, b, dh = 1-hh*6, hh*6, (m2-m1)*6
		case 1:
			a, b = 0, 1
		case 2:
			k := (2.0/3 - hh) * 6
			a, b, dh = 1-k, k, -(m2-m1)*6
		default:
			a, b = 1, 0
		}
		jac[i] = Triple{dh, a*dm1s + b*dm2s, a*dm1l + b*dm2l}
	}
	return jac
}
