package css

//go:generate go tool go-enum --names --marshal

// Grammar alternative of color notation.
// ENUM(hex, rgb, rgba, hsl, hsla)
type Rule int
