package script_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/bscript/pkg/compiler/lexer"
	"github.com/agenthands/bscript/pkg/core/value"
	"github.com/agenthands/bscript/pkg/script"
	"github.com/agenthands/bscript/pkg/vm"
)

func TestRunIfElse(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"true", "Print call : yes\n"},
		{"false", "Print call : no\n"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			var out bytes.Buffer
			src := "let x = " + tt.flag + "\nif x { print \"yes\" } else { print \"no\" }"
			res, err := script.Run([]byte(src), script.Options{Out: &out})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, tt.flag == "true", res.Env["x"] == value.Bool(true))
		})
	}
}

func TestRunReturnsTerminalEnvironment(t *testing.T) {
	res, err := script.Run([]byte("let a = 'x' let b = 2 let c = b"), script.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]value.Value{
		"a": value.Text("x"),
		"b": value.Number(2),
		"c": value.Number(2),
	}, res.Env)
	assert.Equal(t, 3, res.Steps)
}

func TestRunStopsAtFirstError(t *testing.T) {
	var out bytes.Buffer
	res, err := script.Run([]byte("print 'one' print two print 'three'"), script.Options{Out: &out})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, vm.ErrUndefinedVariable)
	assert.Equal(t, "Print call : one\n", out.String())
}

func TestRunLexicalErrorRunsNothing(t *testing.T) {
	var out bytes.Buffer
	_, err := script.Run([]byte("print 'one'\nprint #"), script.Options{Out: &out})
	assert.ErrorIs(t, err, lexer.ErrLexical)
	assert.Empty(t, out.String())
}

func TestRunGas(t *testing.T) {
	_, err := script.Run([]byte("goto 0"), script.Options{Gas: 10})
	assert.ErrorIs(t, err, vm.ErrGasExhausted)
}

func TestRunLogsTrace(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := script.Run([]byte("if false { print 1 } goto 8"), script.Options{Logger: logger})
	require.NoError(t, err)

	text := logs.String()
	assert.Contains(t, text, "msg=\"run start\" tokens=8")
	assert.Contains(t, text, "msg=branch ip=0 taken=false")
	assert.Contains(t, text, "msg=jump from=6 to=8")
	assert.Equal(t, 1, strings.Count(text, "msg=\"run finished\""))
}
