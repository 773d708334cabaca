package css

import (
	"errors"
	"fmt"
)

//go:generate go tool go-enum --names --marshal

// Kind of color parsing failure.
// ENUM(SyntaxError, FatalError)
type ErrorKind int

var (
	// ErrParse matches any parsing error.
	ErrParse = errors.New("color parse error")
	// ErrSyntax matches input which no grammar rule accepts.
	ErrSyntax = errors.New("color syntax error")
	// ErrFatal matches input accepted by a rule whose content is invalid,
	// such errors stop parsing without trying other rules.
	ErrFatal = errors.New("color fatal error")
)

// Error describes parsing failure. Offset is byte position in Input.
type Error struct {
	Kind   ErrorKind
	Input  string
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at char %d) in %q", e.Msg, e.Offset, e.Input)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrParse:
		return true
	case ErrSyntax:
		return e.Kind == ErrorKindSyntaxError
	case ErrFatal:
		return e.Kind == ErrorKindFatalError
	}
	return false
}

func syntaxError(input string, offset int, msg string) *Error {
	return &Error{Kind: ErrorKindSyntaxError, Input: input, Offset: offset, Msg: msg}
}

func fatalError(input string, offset int, msg string) *Error {
	return &Error{Kind: ErrorKindFatalError, Input: input, Offset: offset, Msg: msg}
}
