package vm

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/agenthands/bscript/pkg/compiler/lexer"
	"github.com/agenthands/bscript/pkg/core/value"
)

// Machine executes a token sequence directly. The token slice is treated as
// read-only; the only mutable state of a run is IP and Env.
type Machine struct {
	Tokens []lexer.Token
	IP     int // Instruction Pointer, an index into Tokens
	Env    *Environment

	// Steps counts dispatched statements since the last Reset.
	Steps int

	Out    io.Writer
	Logger *slog.Logger
}

// NewMachine creates a machine ready to run tokens, writing output to out.
func NewMachine(tokens []lexer.Token, out io.Writer) *Machine {
	return &Machine{
		Tokens: tokens,
		Env:    NewEnvironment(),
		Out:    out,
	}
}

// Load points the machine at a compiled program and rewinds IP.
func (m *Machine) Load(p *Program) {
	m.Tokens = p.Tokens
	m.IP = 0
}

// Reset clears the machine state for reuse (sync.Pool compliant).
func (m *Machine) Reset() {
	m.Tokens = nil
	m.IP = 0
	m.Steps = 0
	m.Out = nil
	m.Logger = nil
	if m.Env == nil {
		m.Env = NewEnvironment()
	} else {
		m.Env.Clear()
	}
}

// Run executes statements until IP reaches the end of the token sequence or
// a statement fails. A gasLimit of 0 or less means no limit.
func (m *Machine) Run(gasLimit int) error {
	if m.Env == nil {
		m.Env = NewEnvironment()
	}
	log := m.log()

	for gas := 0; m.IP != len(m.Tokens); gas++ {
		if gasLimit > 0 && gas >= gasLimit {
			return m.fail(ErrGasExhausted, m.IP, "limit of %d statements reached", gasLimit)
		}
		if err := m.Step(); err != nil {
			log.Debug("run aborted", slog.Int("ip", m.IP), slog.Any("error", err))
			return err
		}
	}

	log.Debug("run finished", slog.Int("steps", m.Steps), slog.Int("bindings", m.Env.Len()))
	return nil
}

// Step executes the single statement at IP.
func (m *Machine) Step() error {
	ip := m.IP
	if ip < 0 || ip >= len(m.Tokens) {
		return m.fail(ErrPointerOutOfRange, ip, "program has %d tokens", len(m.Tokens))
	}

	tok := m.Tokens[ip]
	var h handler
	if int(tok.Kind) < len(dispatch) {
		h = dispatch[tok.Kind]
	}
	if h == nil {
		return m.fail(ErrSyntax, ip, "invalid token %s at statement position", tok)
	}

	m.log().Debug("dispatch", slog.Int("ip", ip), slog.String("kind", tok.Kind.String()), slog.String("literal", tok.Literal))
	m.Steps++
	return h(m, ip)
}

func (m *Machine) execLet(ip int) error {
	name, err := m.operand(ip, 1)
	if err != nil {
		return err
	}
	if name.Kind != lexer.KindIdentifier {
		return m.fail(ErrSyntax, ip+1, "invalid token after let: expected identifier, got %s", name.Kind)
	}

	assign, err := m.operand(ip, 2)
	if err != nil {
		return err
	}
	if assign.Kind != lexer.KindAssign {
		return m.fail(ErrSyntax, ip+2, "invalid token after variable %q: expected '=', got %s", name.Literal, assign.Kind)
	}

	src, err := m.operand(ip, 3)
	if err != nil {
		return err
	}
	if !src.Kind.IsLiteral() && src.Kind != lexer.KindIdentifier {
		return m.fail(ErrSyntax, ip+3, "invalid value for %q: expected literal or identifier, got %s", name.Literal, src.Kind)
	}

	v, err := m.resolve(ip+3, src)
	if err != nil {
		return err
	}

	m.Env.Define(name.Literal, v)
	m.IP = ip + letWidth
	return nil
}

func (m *Machine) execPrint(ip int) error {
	src, err := m.operand(ip, 1)
	if err != nil {
		return err
	}

	var text string
	switch {
	case src.Kind == lexer.KindIdentifier:
		v, err := m.lookup(ip+1, src.Literal)
		if err != nil {
			return err
		}
		text = v.Format()
	case src.Kind.IsLiteral():
		text = src.Literal
	default:
		return m.fail(ErrSyntax, ip+1, "invalid token after print: expected literal or identifier, got %s", src.Kind)
	}

	if _, err := fmt.Fprintf(m.Out, "Print call : %s\n", text); err != nil {
		return err
	}
	m.IP = ip + printWidth
	return nil
}

func (m *Machine) execGoto(ip int) error {
	target, err := m.operand(ip, 1)
	if err != nil {
		return err
	}

	switch target.Kind {
	case lexer.KindIdentifier:
		v, err := m.lookup(ip+1, target.Literal)
		if err != nil {
			return err
		}
		n, err := v.AsNumber()
		if err != nil {
			return m.fail(err, ip+1, "goto target %q must be numeric", target.Literal)
		}
		if !(n >= 0 && n < math.MaxInt) {
			return m.fail(ErrPointerOutOfRange, ip+1, "goto target %q is %s", target.Literal, v.Format())
		}
		m.jump(ip, int(n))

	case lexer.KindNumber:
		n, err := strconv.ParseUint(target.Literal, 10, strconv.IntSize-1)
		if err != nil {
			return m.fail(ErrNumericParse, ip+1, "goto target %q: %v", target.Literal, err)
		}
		m.jump(ip, int(n))
		if _, err := fmt.Fprintf(m.Out, "GOTO - went to line %d\n", m.IP); err != nil {
			return err
		}

	default:
		return m.fail(ErrSyntax, ip+1, "invalid token after goto: expected number or identifier, got %s", target.Kind)
	}
	return nil
}

func (m *Machine) jump(from, to int) {
	m.log().Debug("jump", slog.Int("from", from), slog.Int("to", to))
	m.IP = to
}

func (m *Machine) execIf(ip int) error {
	cond, err := m.operand(ip, 1)
	if err != nil {
		return err
	}

	var ok bool
	switch cond.Kind {
	case lexer.KindLParen:
		return m.fail(ErrUnsupportedCondition, ip+1, "")
	case lexer.KindIdentifier:
		v, err := m.lookup(ip+1, cond.Literal)
		if err != nil {
			return err
		}
		if ok, err = v.AsBool(); err != nil {
			return m.fail(err, ip+1, "condition %q must be boolean", cond.Literal)
		}
	case lexer.KindBoolean:
		if ok, err = m.parseBool(ip+1, cond); err != nil {
			return err
		}
	default:
		return m.fail(ErrSyntax, ip+1, "invalid condition: expected boolean or identifier, got %s", cond.Kind)
	}

	m.log().Debug("branch", slog.Int("ip", ip), slog.Bool("taken", ok))
	if ok {
		m.IP = ip + ifWidth
		return nil
	}

	end, found := m.findNext(ip+1, lexer.KindRBrace)
	if !found {
		return m.fail(ErrUnterminatedBlock, ip, "unclosed conditional")
	}
	m.IP = end + 1
	if m.IP < len(m.Tokens) && m.Tokens[m.IP].Kind == lexer.KindElse {
		m.IP += elseWidth
	}
	return nil
}

// execElse runs when a taken if-branch falls through into its else, so the
// whole else body is skipped.
func (m *Machine) execElse(ip int) error {
	open, err := m.operand(ip, 1)
	if err != nil {
		return err
	}
	if open.Kind != lexer.KindLBrace {
		return m.fail(ErrSyntax, ip+1, "else with no scoping: expected '{', got %s", open.Kind)
	}

	end, found := m.findNext(ip+1, lexer.KindRBrace)
	if !found {
		return m.fail(ErrUnterminatedBlock, ip, "unfinished else block")
	}
	m.IP = end + 1
	return nil
}

func (m *Machine) execBlockClose(ip int) error {
	m.IP = ip + 1
	return nil
}

// operand returns the token offset places after the statement keyword at ip.
func (m *Machine) operand(ip, offset int) (lexer.Token, error) {
	i := ip + offset
	if i >= len(m.Tokens) {
		return lexer.Token{}, m.fail(ErrUnexpectedEOF, ip, "%s statement is incomplete", m.Tokens[ip].Kind)
	}
	return m.Tokens[i], nil
}

// findNext scans forward from start for the first token of kind. Nesting is
// not tracked: the nearest match wins.
func (m *Machine) findNext(start int, kind lexer.Kind) (int, bool) {
	for i := start; i < len(m.Tokens); i++ {
		if m.Tokens[i].Kind == kind {
			return i, true
		}
	}
	return 0, false
}

// resolve turns a literal or identifier token into a value. Identifiers yield
// a copy of the bound value.
func (m *Machine) resolve(ip int, tok lexer.Token) (value.Value, error) {
	switch tok.Kind {
	case lexer.KindString:
		return value.Text(tok.Literal), nil
	case lexer.KindNumber:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return value.Value{}, m.fail(ErrNumericParse, ip, "number literal %q: %v", tok.Literal, err)
		}
		return value.Number(f), nil
	case lexer.KindBoolean:
		b, err := m.parseBool(ip, tok)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case lexer.KindIdentifier:
		return m.lookup(ip, tok.Literal)
	default:
		return value.Value{}, m.fail(ErrSyntax, ip, "%s is not a value", tok.Kind)
	}
}

func (m *Machine) parseBool(ip int, tok lexer.Token) (bool, error) {
	switch tok.Literal {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, m.fail(ErrNumericParse, ip, "boolean literal %q", tok.Literal)
	}
}

func (m *Machine) lookup(ip int, name string) (value.Value, error) {
	if v, ok := m.Env.Get(name); ok {
		return v, nil
	}
	if hint, ok := m.Env.Suggest(name); ok {
		return value.Value{}, m.fail(ErrUndefinedVariable, ip, "%q (did you mean %q?)", name, hint)
	}
	return value.Value{}, m.fail(ErrUndefinedVariable, ip, "%q", name)
}

func (m *Machine) log() *slog.Logger {
	if m.Logger == nil {
		return discard
	}
	return m.Logger
}

var discard = slog.New(slog.DiscardHandler)
