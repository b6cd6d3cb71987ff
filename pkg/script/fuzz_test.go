package script_test

import (
	"errors"
	"io"
	"testing"

	"github.com/agenthands/bscript/pkg/compiler/lexer"
	"github.com/agenthands/bscript/pkg/script"
	"github.com/agenthands/bscript/pkg/vm"
)

func FuzzRun(f *testing.F) {
	f.Add([]byte("let x = true\nif x { print \"yes\" } else { print \"no\" }"))
	f.Add([]byte("let n = 5\ngoto n"))
	f.Add([]byte("print 'x' goto 0"))
	f.Add([]byte("if false { } else"))
	f.Add([]byte("if ( x ) { }"))
	f.Add([]byte("let a = 'unterminated"))

	f.Fuzz(func(t *testing.T, src []byte) {
		// Small gas limit so fuzzed backward jumps terminate.
		_, err := script.Run(src, script.Options{Out: io.Discard, Gas: 1000})
		if err == nil {
			return
		}

		var lexErr *lexer.Error
		var runErr *vm.RuntimeError
		if !errors.As(err, &lexErr) && !errors.As(err, &runErr) {
			t.Fatalf("unexpected error type %T: %v", err, err)
		}
	})
}
