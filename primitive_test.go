package lifted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, text string, pos int) Cursor {
	t.Helper()
	c, err := CursorAt(text, pos)
	require.NoError(t, err)
	return c
}

func TestPrimitives(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		matcher   Matcher[string]
		input     string
		pos       int
		wantOK    bool
		wantValue string
		wantNext  int
	}{
		{"literal prefix", Literal("cat"), "category", 0, true, "cat", 3},
		{"literal mid text", Literal("ego"), "category", 3, true, "ego", 6},
		{"literal mismatch", Literal("dog"), "category", 0, false, "", 0},
		{"literal longer than input", Literal("category!"), "category", 0, false, "", 0},
		{"literal empty", Literal(""), "abc", 1, true, "", 1},
		{"literal empty at end", Literal(""), "abc", 3, true, "", 3},
		{"strings first wins", Strings("ca", "cat"), "cat", 0, true, "ca", 2},
		{"strings second", Strings("dog", "cat"), "cat", 0, true, "cat", 3},
		{"strings none", Strings("dog", "cow"), "cat", 0, false, "", 0},
		{"char", Char('a'), "abc", 0, true, "a", 1},
		{"char mismatch", Char('b'), "abc", 0, false, "", 0},
		{"char at end", Char('a'), "a", 1, false, "", 0},
		{"char multibyte", Char('é'), "été", 0, true, "é", 2},
		{"not char", NotChar('a'), "bc", 0, true, "b", 1},
		{"not char equal", NotChar('a'), "abc", 0, false, "", 0},
		{"not char at end", NotChar('a'), "", 0, false, "", 0},
		{"not char multibyte", NotChar('a'), "ü!", 0, true, "ü", 2},
		{"take while", TakeWhile(IsDigit, false), "123abc", 0, true, "123", 3},
		{"take while empty fails", TakeWhile(IsDigit, false), "abc", 0, false, "", 0},
		{"take while empty allowed", TakeWhile(IsDigit, true), "abc", 0, true, "", 0},
		{"take while empty input", TakeWhile(IsDigit, false), "", 0, false, "", 0},
		{"take while to end", TakeWhile(IsDigit, false), "42", 0, true, "42", 2},
		{"until", Until(IsSpace), "key value", 0, true, "key", 3},
		{"until immediate stop", Until(IsSpace), " value", 0, false, "", 0},
		{"until to end", Until(IsSpace), "key", 0, true, "key", 3},
		{"until rune", UntilRune(','), "a b,c", 0, true, "a b", 3},
		{"until colon or space", UntilColonOrSpace(), "Host: example", 0, true, "Host", 4},
		{"until colon or space stops at space", UntilColonOrSpace(), "Host example", 0, true, "Host", 4},
		{"whitespace", Whitespace(), " \t\n x", 0, true, " ", 4},
		{"whitespace marker for tab", Whitespace(), "\tx", 0, true, " ", 1},
		{"whitespace none", Whitespace(), "x ", 0, false, "", 0},
		{"digits", Digits(), "2024-10", 0, true, "2024", 4},
		{"digits none", Digits(), "-10", 0, false, "", 0},
		{"end of input", EndOfInput[string](), "ab", 2, true, "", 2},
		{"end of input before end", EndOfInput[string](), "ab", 1, false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := at(t, tt.input, tt.pos)
			out, ok := tt.matcher.Match(start)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantValue, out.Value)
			assert.Equal(t, tt.wantNext, out.Next.Pos())
			assert.Equal(t, tt.input, out.Next.Text())
		})
	}
}

// Consuming primitives always move the cursor forward when they match.
func TestPrimitivesProgress(t *testing.T) {
	t.Parallel()
	matchers := map[string]Matcher[string]{
		"literal":    Literal("ab"),
		"char":       Char('a'),
		"take while": TakeWhile(func(r rune) bool { return r != ';' }, false),
		"digits":     Digits(),
		"whitespace": Whitespace(),
	}
	inputs := []string{"ab", "a", "12 ab", "  a", "abc;", ";", ""}
	for name, m := range matchers {
		for _, input := range inputs {
			for pos := 0; pos <= len(input); pos++ {
				start := at(t, input, pos)
				out, ok := m.Match(start)
				if ok {
					assert.Greater(t, out.Next.Pos(), pos, "%s on %q at %d", name, input, pos)
				}
			}
		}
	}
}

func TestTakeWhileEmptyInput(t *testing.T) {
	t.Parallel()
	_, ok := TakeWhile(IsDigit, false).Match(NewCursor(""))
	assert.False(t, ok)
}

func TestPrimitiveConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		build func()
	}{
		{"take while nil predicate", func() { TakeWhile(nil, false) }},
		{"until nil predicate", func() { Until(nil) }},
		{"not nil predicate", func() { Not(nil) }},
		{"strings without literals", func() { Strings() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertConfigPanic(t, tt.build)
		})
	}
}

func assertConfigPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(*ConfigError)
		require.True(t, ok, "panic value %T is not *ConfigError", r)
		assert.ErrorIs(t, err, ErrConfig)
	}()
	f()
}
