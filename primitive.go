package lifted

import (
	"strings"
	"unicode"
)

// spaceMarker is the value produced by Whitespace, whatever text it consumed.
const spaceMarker = " "

// IsSpace reports whether r is a whitespace character.
func IsSpace(r rune) bool { return unicode.IsSpace(r) }

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool { return '0' <= r && r <= '9' }

// Not negates a rune predicate.
func Not(pred func(rune) bool) func(rune) bool {
	if pred == nil {
		configPanic("Not", "nil predicate")
	}
	return func(r rune) bool { return !pred(r) }
}

// Literal matches s exactly. The empty literal always matches
// without consuming anything.
func Literal(s string) Matcher[string] {
	return MatcherFunc[string](func(c Cursor) (Outcome[string], bool) {
		if !strings.HasPrefix(c.Rest(), s) {
			return fail[string]()
		}
		return succeed(s, c.advance(len(s)))
	})
}

// Strings tries each literal in order and yields the first that matches.
func Strings(ss ...string) Matcher[string] {
	if len(ss) == 0 {
		configPanic("Strings", "no literals given")
	}
	lits := append([]string(nil), ss...)
	return MatcherFunc[string](func(c Cursor) (Outcome[string], bool) {
		rest := c.Rest()
		for _, s := range lits {
			if strings.HasPrefix(rest, s) {
				return succeed(s, c.advance(len(s)))
			}
		}
		return fail[string]()
	})
}

// Char matches the single character ch.
func Char(ch rune) Matcher[string] {
	want := string(ch)
	return MatcherFunc[string](func(c Cursor) (Outcome[string], bool) {
		r, size := c.peek()
		if size == 0 || r != ch {
			return fail[string]()
		}
		return succeed(want, c.advance(size))
	})
}

// NotChar matches any single character other than ch.
func NotChar(ch rune) Matcher[string] {
	return MatcherFunc[string](func(c Cursor) (Outcome[string], bool) {
		r, size := c.peek()
		if size == 0 || r == ch {
			return fail[string]()
		}
		return succeed(c.text[c.pos:c.pos+size], c.advance(size))
	})
}

// TakeWhile consumes the longest run of characters satisfying pred.
// An empty run fails unless allowEmpty is set, in which case it
// succeeds with "" and consumes nothing.
func TakeWhile(pred func(rune) bool, allowEmpty bool) Matcher[string] {
	if pred == nil {
		configPanic("TakeWhile", "nil predicate")
	}
	return MatcherFunc[string](func(c Cursor) (Outcome[string], bool) {
		end := c
		for {
			r, size := end.peek()
			if size == 0 || !pred(r) {
				break
			}
			end = end.advance(size)
		}
		if end.pos == c.pos && !allowEmpty {
			return fail[string]()
		}
		return succeed(c.text[c.pos:end.pos], end)
	})
}

// Until consumes characters up to, not including, the first one
// satisfying pred. It fails if that would consume nothing.
func Until(pred func(rune) bool) Matcher[string] {
	if pred == nil {
		configPanic("Until", "nil predicate")
	}
	return TakeWhile(Not(pred), false)
}

// UntilRune is Until for a single stop character.
func UntilRune(stop rune) Matcher[string] {
	return Until(func(r rune) bool { return r == stop })
}

// UntilColonOrSpace consumes a run ending before a ':' or whitespace,
// as found in "key: value" style headers.
func UntilColonOrSpace() Matcher[string] {
	return Until(func(r rune) bool { return r == ':' || IsSpace(r) })
}

var (
	whitespace = TakeWhile(IsSpace, false)
	digits     = TakeWhile(IsDigit, false)
)

// Whitespace consumes one or more whitespace characters and yields a
// single space regardless of what was consumed.
func Whitespace() Matcher[string] {
	return MatcherFunc[string](func(c Cursor) (Outcome[string], bool) {
		out, ok := whitespace.Match(c)
		if !ok {
			return fail[string]()
		}
		return succeed(spaceMarker, out.Next)
	})
}

// Digits consumes one or more decimal digits.
func Digits() Matcher[string] {
	return digits
}

// EndOfInput matches only at the end of the text and yields the zero T.
func EndOfInput[T any]() Matcher[T] {
	return MatcherFunc[T](func(c Cursor) (Outcome[T], bool) {
		if !c.AtEnd() {
			return fail[T]()
		}
		var zero T
		return succeed(zero, c)
	})
}
