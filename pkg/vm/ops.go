package vm

import "github.com/agenthands/bscript/pkg/compiler/lexer"

// handler executes the statement starting at token index ip and leaves IP at
// the next statement.
type handler func(m *Machine, ip int) error

// dispatch maps the kind of the token at IP to its statement handler. Kinds
// without an entry are invalid at statement position.
var dispatch = [...]handler{
	lexer.KindLet:    (*Machine).execLet,
	lexer.KindPrint:  (*Machine).execPrint,
	lexer.KindGoto:   (*Machine).execGoto,
	lexer.KindIf:     (*Machine).execIf,
	lexer.KindElse:   (*Machine).execElse,
	lexer.KindRBrace: (*Machine).execBlockClose,
}

// Fixed statement lengths, in tokens.
const (
	letWidth   = 4 // let <ident> = <source>
	printWidth = 2 // print <source>
	ifWidth    = 3 // if <cond> {
	elseWidth  = 2 // else {
)
