package grammar

import (
	"unicode"
	"unicode/utf8"

	"github.com/gnolang/lifted"
)

// Lexemes of the expression language. They match at the cursor as is;
// token, symbol and positioned skip the whitespace in front of them.

var escapes = map[string]string{
	`"`: `"`,
	`'`: `'`,
	`\`: `\`,
	"n": "\n",
	"t": "\t",
	"r": "\r",
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return isIdentStart(r) || lifted.IsDigit(r) }

func token[T any](m lifted.Matcher[T]) lifted.Matcher[T] {
	return lifted.ChompSpace(m)
}

func symbol(s string) lifted.Matcher[string] {
	return token(lifted.Literal(s))
}

// escape matches a backslash sequence and yields the decoded character.
var escape = lifted.Seq2(
	lifted.Char('\\'),
	lifted.Strings(`"`, `'`, `\`, "n", "t", "r"),
	func(_, e string) string { return escapes[e] },
)

// identLexeme matches an identifier without skipping space.
var identLexeme = lifted.Seq2(
	lifted.TakeWhile(isIdentStart, false),
	lifted.TakeWhile(isIdentPart, true),
	func(head, tail string) string { return head + tail },
)

// stringLexeme matches a double quoted string and yields its decoded content.
var stringLexeme = lifted.Seq3(
	lifted.Char('"'),
	lifted.Lift(lifted.Mconcat, lifted.Many(lifted.AnyOf(
		escape,
		lifted.Until(func(r rune) bool { return r == '"' || r == '\\' || r == '\n' }),
	))),
	lifted.Char('"'),
	func(_, s, _ string) string { return s },
)

// charLexeme matches a single quoted character.
var charLexeme = lifted.Seq3(
	lifted.Char('\''),
	lifted.AnyOf(escape, lifted.NotChar('\'')),
	lifted.Char('\''),
	func(_, s, _ string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	},
)

// positioned skips leading space, records where m starts and builds a
// node from that offset and m's value.
func positioned[T any](m lifted.Matcher[T], build func(pos int, v T) Node) lifted.Matcher[Node] {
	ws := lifted.Whitespace()
	return lifted.MatcherFunc[Node](func(c lifted.Cursor) (lifted.Outcome[Node], bool) {
		if out, ok := ws.Match(c); ok {
			c = out.Next
		}
		out, ok := m.Match(c)
		if !ok {
			return lifted.Outcome[Node]{}, false
		}
		return lifted.Outcome[Node]{Value: build(c.Pos(), out.Value), Next: out.Next}, true
	})
}
