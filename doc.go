/*
Package lifted is a small parser combinator engine.

A parser is assembled from primitive matchers (Literal, Char, TakeWhile,
Whitespace, Digits, EndOfInput, ...) and combinators (Sequence, AnyOf,
Many, Option, Lift, Whole, ...). Every matcher is a pure function from a
Cursor to an Outcome:

	out, ok := m.Match(lifted.NewCursor("category"))

ok is false when the matcher does not match; no input is consumed and the
caller still holds the original cursor. On success, out.Value carries the
matched value and out.Next the cursor after the consumed text.

# Building parsers

	word := lifted.TakeWhile(unicode.IsLetter, false)
	list := lifted.ManySepBy(lifted.ChompSpace(word), ",")
	value, err := lifted.Parse(list, "red, green, blue")
	// value == []string{"red", "green", "blue"}

Matchers hold no per-parse state. They are built once, usually when the
grammar is defined, and may be reused concurrently.

# Configuration errors

Building a matcher with invalid arguments (a nil predicate, an empty
alternation, ...) panics with a *ConfigError. So does an AnyOf branch or
a repeated matcher that succeeds without consuming input, which would
otherwise make repetition loop forever. Parse and TryMatch recover these
panics and return them as errors matching ErrConfig.
*/
package lifted
