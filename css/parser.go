// Package css parses CSS color notations.
package css

import (
	"errors"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"hslc/color"
)

// Parser parses textual CSS colors. It keeps no state between calls and may
// be used concurrently.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS color parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse converts color notation into canonical color. Returned error is
// always *Error.
func (p *Parser) Parse(text string) (color.Color, error) {
	toks, err := tokenize(text)
	if err != nil {
		return color.Color{}, err
	}

	var (
		found    []Rule
		result   color.Color
		furthest int
	)
	for _, alt := range grammar() {
		m, err := alt.match(text, toks)
		if err != nil {
			p.log.Debug("Color rule failed", zap.Stringer("rule", alt.rule), zap.Error(err))
			return color.Color{}, err
		}
		if !m.ok {
			furthest = max(furthest, m.offset)
			continue
		}
		found = append(found, alt.rule)
		result = m.color
	}

	switch len(found) {
	case 0:
		return color.Color{}, syntaxError(text, furthest, "expected hex, rgb, rgba, hsl or hsla color")
	case 1:
		p.log.Debug("Parsed color", zap.Stringer("rule", found[0]), zap.Stringer("color", result))
		return result, nil
	default:
		return color.Color{}, syntaxError(text, 0, "ambiguous color notation")
	}
}

// tokenize lexes text, folds function names and drops surrounding whitespace.
func tokenize(text string) ([]token, error) {
	fold := cases.Fold()
	lexer := css.NewLexer(parse.NewInputString(text))

	var (
		toks   []token
		offset int
	)
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, syntaxError(text, offset, err.Error())
			}
			break
		}
		s := string(data)
		if tt == css.FunctionToken {
			s = fold.String(s)
		}
		toks = append(toks, token{tt: tt, data: s, offset: offset})
		offset += len(data)
	}

	for len(toks) > 0 && toks[0].tt == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks, nil
}
