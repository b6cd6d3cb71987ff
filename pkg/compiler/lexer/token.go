package lexer

import "fmt"

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindLet
	KindIdentifier
	KindAssign  // =
	KindString  // '...' or "..."
	KindNumber  // decimal digits only
	KindBoolean // true / false
	KindPrint
	KindLBrace // {
	KindRBrace // }
	KindLParen // (
	KindRParen // )
	KindIf
	KindElse
	KindGoto
)

var kindNames = [...]string{
	KindEOF:        "EOF",
	KindLet:        "LET",
	KindIdentifier: "IDENT",
	KindAssign:     "ASSIGN",
	KindString:     "STRING",
	KindNumber:     "NUMBER",
	KindBoolean:    "BOOLEAN",
	KindPrint:      "PRINT",
	KindLBrace:     "LBRACE",
	KindRBrace:     "RBRACE",
	KindLParen:     "LPAREN",
	KindRParen:     "RPAREN",
	KindIf:         "IF",
	KindElse:       "ELSE",
	KindGoto:       "GOTO",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsLiteral reports whether the kind carries a printable literal value.
func (k Kind) IsLiteral() bool {
	return k == KindString || k == KindNumber || k == KindBoolean
}

// keywords maps exact alphabetic runs to their kind. Anything else is an identifier.
var keywords = map[string]Kind{
	"let":   KindLet,
	"print": KindPrint,
	"if":    KindIf,
	"else":  KindElse,
	"true":  KindBoolean,
	"false": KindBoolean,
	"goto":  KindGoto,
}

// Token is an immutable lexical unit. Line and Column point back to the
// source for diagnostics; control flow only ever uses the token's index.
type Token struct {
	Kind    Kind
	Literal string
	Line    uint32
	Column  uint32
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}
