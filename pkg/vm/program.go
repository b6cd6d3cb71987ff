package vm

import "github.com/agenthands/bscript/pkg/compiler/lexer"

// Program is the compiled form of a script: the flat token sequence the
// machine executes. Jump targets are indices into Tokens.
type Program struct {
	Tokens []lexer.Token
}

// Compile tokenizes source into a Program.
func Compile(source []byte) (*Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return &Program{Tokens: tokens}, nil
}

// Len returns the number of tokens, which is also the IP value at which a
// run completes.
func (p *Program) Len() int {
	return len(p.Tokens)
}
