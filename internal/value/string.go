package value

import "strconv"

// String is the string value kind.
type String string

func (String) Kind() Kind { return KindString }

// String renders the canonical double-quoted form with escapes
// re-escaped.
func (s String) String() string {
	return strconv.Quote(string(s))
}

// Raw returns the underlying Go string without quoting, for use by
// operations that need the literal content (concatenation, repetition,
// string builtins).
func (s String) Raw() string {
	return string(s)
}
