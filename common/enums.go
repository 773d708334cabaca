// The only reason this package exists is because enums are shared between
// configuration and the color model and I do not want config to depend on
// color packages (or the other way around).
package common

//go:generate go tool go-enum --names --marshal

// Color space tag of a parsed color, also used to request output notation.
// ENUM(rgb, rgba, hsl, hsla)
type Space int

// Color space family, alpha channel is not considered.
// ENUM(rgb, hsl)
type Family int

func (s Space) Family() Family {
	switch s {
	case SpaceHsl, SpaceHsla:
		return FamilyHsl
	case SpaceRgb, SpaceRgba:
		return FamilyRgb
	default:
		// this should never happen
		panic("unsupported color space")
	}
}

func (s Space) HasAlpha() bool {
	return s == SpaceRgba || s == SpaceHsla
}

// WithAlpha returns space of the same family which carries alpha channel.
func (s Space) WithAlpha() Space {
	if s.Family() == FamilyHsl {
		return SpaceHsla
	}
	return SpaceRgba
}
