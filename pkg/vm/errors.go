package vm

import (
	"errors"
	"fmt"

	"github.com/agenthands/bscript/pkg/compiler/lexer"
	"github.com/agenthands/bscript/pkg/core/value"
)

var (
	ErrSyntax            = errors.New("syntax error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrTypeMismatch      = value.ErrTypeMismatch
	ErrNumericParse      = errors.New("numeric parse error")
	ErrUnterminatedBlock = errors.New("unterminated block")
	ErrPointerOutOfRange = errors.New("instruction pointer out of range")
	ErrGasExhausted      = errors.New("gas exhausted")

	ErrUnexpectedEOF        = fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	ErrUnsupportedCondition = fmt.Errorf("%w: parenthesized conditions are not supported", ErrSyntax)
)

// RuntimeError is a fatal error raised while executing the token at IP.
type RuntimeError struct {
	Err   error
	IP    int
	Token lexer.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	msg := "vm: " + e.Err.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	msg += fmt.Sprintf(" [token %d", e.IP)
	if e.Token.Kind != lexer.KindEOF {
		msg += fmt.Sprintf(" %s at %d:%d", e.Token.Kind, e.Token.Line, e.Token.Column)
	}
	return msg + "]"
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func (m *Machine) fail(err error, ip int, format string, args ...any) error {
	rerr := &RuntimeError{Err: err, IP: ip, Msg: fmt.Sprintf(format, args...)}
	if ip >= 0 && ip < len(m.Tokens) {
		rerr.Token = m.Tokens[ip]
	}
	return rerr
}
