package domain

import "strconv"

// ValueKind is the type of a directive value after literal coercion.
type ValueKind uint8

const (
	// KindString is any value that is not one of the recognized literals.
	KindString ValueKind = iota
	// KindBool is the literal true or false.
	KindBool
	// KindNull is the literal null.
	KindNull
	// KindUndefined is the literal undefined.
	KindUndefined
	// KindInt is a run of decimal digits.
	KindInt
)

// Value is a single typed directive value.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
	Int  int64
}

// StringValue returns a string-kind value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue returns a bool-kind value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntValue returns an integer-kind value.
func IntValue(n int64) Value { return Value{Kind: KindInt, Int: n} }

// NullValue returns the null literal.
func NullValue() Value { return Value{Kind: KindNull} }

// UndefinedValue returns the undefined literal.
func UndefinedValue() Value { return Value{Kind: KindUndefined} }

// Truthy reports whether the value would enable a directive.
// false, null, undefined, 0 and the empty string are not truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindString:
		return v.Str != ""
	default:
		return false
	}
}

// String renders the value the way it would be spliced into a path.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	default:
		return v.Str
	}
}

// OutKey is the directive naming the destination of a compile.
const OutKey = "out"

// Options maps directive names to typed values.
type Options map[string]Value

// Lookup returns the value for key.
func (o Options) Lookup(key string) (Value, bool) {
	v, ok := o[key]
	return v, ok
}

// Out returns the out directive when it is present and truthy.
func (o Options) Out() (string, bool) {
	v, ok := o[OutKey]
	if !ok || !v.Truthy() {
		return "", false
	}
	return v.String(), true
}
