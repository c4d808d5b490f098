package lifted

import (
	"fmt"
	"unicode/utf8"
)

// Cursor marks where parsing currently stands in the input text.
// It is a value type: advancing a cursor returns a new one and the
// text itself is never copied or modified.
type Cursor struct {
	text string
	pos  int
}

// NewCursor returns a cursor at the start of text.
func NewCursor(text string) Cursor {
	return Cursor{text: text}
}

// CursorAt returns a cursor at byte offset pos of text.
func CursorAt(text string, pos int) (Cursor, error) {
	if pos < 0 || pos > len(text) {
		return Cursor{}, fmt.Errorf("%w: position %d outside [0, %d]", ErrOutOfRange, pos, len(text))
	}
	return Cursor{text: text, pos: pos}, nil
}

// Text returns the full input text.
func (c Cursor) Text() string { return c.text }

// Pos returns the byte offset of the cursor.
func (c Cursor) Pos() int { return c.pos }

// Rest returns the unconsumed text.
func (c Cursor) Rest() string { return c.text[c.pos:] }

// AtEnd reports whether the whole text has been consumed.
func (c Cursor) AtEnd() bool { return c.pos == len(c.text) }

// Equal reports whether both cursors stand at the same position.
// Cursors are only meaningfully compared over the same text.
func (c Cursor) Equal(other Cursor) bool { return c.pos == other.pos }

func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d/%d)", c.pos, len(c.text))
}

// peek decodes the rune at the cursor. size is 0 at end of input.
func (c Cursor) peek() (r rune, size int) {
	if c.pos >= len(c.text) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.text[c.pos:])
}

// advance returns a cursor n bytes further. Callers only pass sizes
// obtained from the text itself, so the result stays in range.
func (c Cursor) advance(n int) Cursor {
	return Cursor{text: c.text, pos: c.pos + n}
}

// Outcome is a successful match: the produced value and the cursor
// right after the consumed text. A failed match has no Outcome; the
// accompanying ok flag is false instead.
type Outcome[T any] struct {
	Value T
	Next  Cursor
}

func succeed[T any](v T, next Cursor) (Outcome[T], bool) {
	return Outcome[T]{Value: v, Next: next}, true
}

func fail[T any]() (Outcome[T], bool) {
	return Outcome[T]{}, false
}
