package css

import (
	"fmt"

	"hslc/utils/debug"
)

// Explain describes how text is seen by the parser: token stream and outcome
// of every grammar rule. It is meant for troubleshooting and never fails.
func (p *Parser) Explain(text string) string {
	tw := debug.NewTreeWriter()
	tw.Field(0, "input", text)

	toks, err := tokenize(text)
	if err != nil {
		tw.Line(1, "tokenizer: %v", err)
		return tw.String()
	}

	tw.Line(0, "tokens")
	for _, t := range toks {
		tw.Field(1, fmt.Sprintf("%s at %d", t.tt, t.offset), t.data)
	}

	tw.Line(0, "rules")
	for _, alt := range grammar() {
		m, err := alt.match(text, toks)
		switch {
		case err != nil:
			tw.Line(1, "%s: %v", alt.rule, err)
		case m.ok:
			tw.Line(1, "%s: matched %s", alt.rule, m.color)
		default:
			tw.Line(1, "%s: no match at char %d", alt.rule, m.offset)
		}
	}
	return tw.String()
}
