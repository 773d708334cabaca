package css

import (
	"encoding/hex"
	"strings"
	"sync"

	"github.com/tdewolff/parse/v2/css"

	"hslc/color"
	"hslc/common"
)

type token struct {
	tt     css.TokenType
	data   string
	offset int
}

// result of a single grammar rule, offset is where rule stopped matching
type match struct {
	color  color.Color
	ok     bool
	offset int
}

type alternative struct {
	rule  Rule
	match func(input string, toks []token) (match, error)
}

// grammar is the ordered set of independent alternatives, each of them is
// tried against full token stream.
var grammar = sync.OnceValue(func() []alternative {
	return []alternative{
		{rule: RuleHex, match: matchHex},
		{rule: RuleRgb, match: functionRule("rgb(", common.SpaceRgb, 3)},
		{rule: RuleRgba, match: functionRule("rgba(", common.SpaceRgba, 4)},
		{rule: RuleHsl, match: functionRule("hsl(", common.SpaceHsl, 3)},
		{rule: RuleHsla, match: functionRule("hsla(", common.SpaceHsla, 4)},
	}
})

func offsetAt(input string, toks []token, i int) int {
	if i < len(toks) {
		return toks[i].offset
	}
	return len(input)
}

func skipSpace(toks []token, i int) int {
	for i < len(toks) && toks[i].tt == css.WhitespaceToken {
		i++
	}
	return i
}

func hexPrefix(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return i
		}
	}
	return len(s)
}

// matchHex handles #RGB, #RGBA, #RRGGBB and #RRGGBBAA.
func matchHex(input string, toks []token) (match, error) {
	if len(toks) == 0 || toks[0].tt != css.HashToken {
		return match{offset: offsetAt(input, toks, 0)}, nil
	}
	start := toks[0].offset
	body := toks[0].data[1:]

	n := hexPrefix(body)
	if n == 0 {
		return match{offset: start + 1}, nil
	}
	digits := body[:n]
	switch n {
	case 3, 4:
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte(digits[i])
			sb.WriteByte(digits[i])
		}
		digits = sb.String()
	case 6, 8:
	default:
		return match{}, fatalError(input, start, "invalid number of hex characters")
	}
	if n < len(body) {
		return match{offset: start + 1 + n}, nil
	}
	if len(toks) > 1 {
		return match{offset: toks[1].offset}, nil
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		// this should never happen, prefix contains hex digits only
		panic(err)
	}
	if len(b) == 4 {
		return match{ok: true, color: color.NewWithAlpha(common.SpaceRgba,
			float64(b[0])/255, float64(b[1])/255, float64(b[2])/255, float64(b[3])/255)}, nil
	}
	return match{ok: true, color: color.New(common.SpaceRgb,
		float64(b[0])/255, float64(b[1])/255, float64(b[2])/255)}, nil
}

// functionRule handles comma delimited list of values wrapped into function
// notation. Function token is expected to be case folded already.
func functionRule(name string, space common.Space, arity int) func(string, []token) (match, error) {
	return func(input string, toks []token) (match, error) {
		if len(toks) == 0 || toks[0].tt != css.FunctionToken || toks[0].data != name {
			return match{offset: offsetAt(input, toks, 0)}, nil
		}

		values, i, ok, err := valueList(input, toks, 1)
		if err != nil {
			return match{}, err
		}
		if !ok {
			return match{offset: offsetAt(input, toks, i)}, nil
		}
		if len(values) != arity {
			return match{}, fatalError(input, toks[0].offset, "invalid number of values in list")
		}
		if i+1 != len(toks) {
			return match{offset: toks[i+1].offset}, nil
		}
		return match{ok: true, color: channels(space, values)}, nil
	}
}

// valueList reads "value (, value)* )" starting at toks[i]. When list is
// complete returned index points to closing parenthesis.
func valueList(input string, toks []token, i int) ([]Value, int, bool, error) {
	var values []Value
	for {
		i = skipSpace(toks, i)
		if i >= len(toks) {
			return nil, i, false, nil
		}

		var (
			v   Value
			err error
		)
		t := toks[i]
		switch t.tt {
		case css.NumberToken:
			v, err = NewValue(t.data, false)
		case css.PercentageToken:
			v, err = NewValue(strings.TrimSuffix(t.data, "%"), true)
		default:
			return nil, i, false, nil
		}
		if err != nil {
			return nil, i, false, fatalError(input, t.offset, "invalid number")
		}
		values = append(values, v)

		i = skipSpace(toks, i+1)
		if i >= len(toks) {
			return nil, i, false, nil
		}
		switch toks[i].tt {
		case css.CommaToken:
			i++
		case css.RightParenthesisToken:
			return values, i, true, nil
		default:
			return nil, i, false, nil
		}
	}
}

// channels maps list values onto color channels. Bare red, green and blue
// numbers are on 0-255 scale, hue is always in degrees.
func channels(space common.Space, values []Value) color.Color {
	c := [4]float64{0, 0, 0, 1}
	for i, v := range values {
		c[i] = v.Magnitude
	}
	switch space.Family() {
	case common.FamilyRgb:
		for i := range 3 {
			if !values[i].Percent {
				c[i] /= 255
			}
		}
	case common.FamilyHsl:
		c[0] /= 360
	}
	if space.HasAlpha() {
		return color.NewWithAlpha(space, c[0], c[1], c[2], c[3])
	}
	return color.New(space, c[0], c[1], c[2])
}
