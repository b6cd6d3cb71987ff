package value

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTypeMismatch is returned by accessors when a Value holds a different kind.
var ErrTypeMismatch = errors.New("type mismatch")

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeText Type = iota
	TypeNumber
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "boolean"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a tagged union over text, float64 and bool. It is a plain value
// type, so assignment always copies.
type Value struct {
	Type Type
	text string
	num  float64
	b    bool
}

// Text wraps a string.
func Text(s string) Value {
	return Value{Type: TypeText, text: s}
}

// Number wraps a float64.
func Number(f float64) Value {
	return Value{Type: TypeNumber, num: f}
}

// Bool wraps a bool.
func Bool(b bool) Value {
	return Value{Type: TypeBool, b: b}
}

// AsText returns the string payload or ErrTypeMismatch.
func (v Value) AsText() (string, error) {
	if v.Type != TypeText {
		return "", v.mismatch(TypeText)
	}
	return v.text, nil
}

// AsNumber returns the float64 payload or ErrTypeMismatch.
func (v Value) AsNumber() (float64, error) {
	if v.Type != TypeNumber {
		return 0, v.mismatch(TypeNumber)
	}
	return v.num, nil
}

// AsBool returns the bool payload or ErrTypeMismatch.
func (v Value) AsBool() (bool, error) {
	if v.Type != TypeBool {
		return false, v.mismatch(TypeBool)
	}
	return v.b, nil
}

func (v Value) mismatch(want Type) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want, v.Type)
}

// Format renders the value the way print shows it. Numbers use the shortest
// decimal form and never switch to exponent notation.
func (v Value) Format() string {
	switch v.Type {
	case TypeText:
		return v.text
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return fmt.Sprintf("<%s>", v.Type)
	}
}

func (v Value) String() string {
	return v.Format()
}
