package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/bscript/pkg/core/value"
)

func TestValueCreation(t *testing.T) {
	vText := value.Text("hi")
	assert.Equal(t, value.TypeText, vText.Type)
	s, err := vText.AsText()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	vNum := value.Number(42)
	assert.Equal(t, value.TypeNumber, vNum.Type)
	n, err := vNum.AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 42.0, n)

	vBool := value.Bool(true)
	assert.Equal(t, value.TypeBool, vBool.Type)
	b, err := vBool.AsBool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestAccessorMismatch(t *testing.T) {
	_, err := value.Text("5").AsNumber()
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
	assert.EqualError(t, err, "type mismatch: expected number, got text")

	_, err = value.Number(1).AsBool()
	assert.ErrorIs(t, err, value.ErrTypeMismatch)

	_, err = value.Bool(false).AsText()
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.Text("plain text"), "plain text"},
		{value.Text(""), ""},
		{value.Number(5), "5"},
		{value.Number(0), "0"},
		{value.Number(7.25), "7.25"},
		{value.Number(1e21), "1000000000000000000000"},
		{value.Number(math.Inf(1)), "+Inf"},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Format())
	}
}

func TestCopySemantics(t *testing.T) {
	a := value.Number(1)
	b := a
	b = value.Text("changed")

	n, err := a.AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 1.0, n)
	assert.Equal(t, "changed", b.Format())
}
