package lifted

// Parse runs m over the whole of text. It returns ErrNoMatch when m
// fails or leaves input unconsumed, and a *ConfigError when the
// matcher was built incorrectly.
func Parse[T any](m Matcher[T], text string) (value T, err error) {
	if m == nil {
		return value, &ConfigError{Op: "Parse", Msg: "nil matcher"}
	}
	out, ok, err := TryMatch(Whole(m), NewCursor(text))
	if err != nil {
		return value, err
	}
	if !ok {
		return value, ErrNoMatch
	}
	return out.Value, nil
}

// TryMatch applies m at c and converts a configuration panic raised
// while matching into an error. Other panics are propagated.
func TryMatch[T any](m Matcher[T], c Cursor) (out Outcome[T], ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			cerr, isConfig := r.(*ConfigError)
			if !isConfig {
				panic(r)
			}
			out, ok, err = Outcome[T]{}, false, cerr
		}
	}()
	out, ok = m.Match(c)
	return out, ok, nil
}
