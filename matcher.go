package lifted

// Matcher is the parsing unit: a pure function from a cursor to an
// outcome. ok is false when the matcher does not match at c; the
// returned Outcome is meaningless in that case.
type Matcher[T any] interface {
	Match(c Cursor) (out Outcome[T], ok bool)
}

// MatcherFunc adapts an ordinary function to the Matcher interface.
type MatcherFunc[T any] func(c Cursor) (Outcome[T], bool)

// Match calls f(c).
func (f MatcherFunc[T]) Match(c Cursor) (Outcome[T], bool) {
	return f(c)
}

var (
	_ Matcher[string] = MatcherFunc[string](nil)
	_ Matcher[string] = (*lazy[string])(nil)
)
