package lifted

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned by Parse when the matcher does not
	// consume the whole input.
	ErrNoMatch = errors.New("no match")
	// ErrConfig is the class of every ConfigError.
	ErrConfig = errors.New("matcher configuration error")
	// ErrOutOfRange is returned when a cursor would be placed outside its text.
	ErrOutOfRange = errors.New("cursor position out of range")
)

// ConfigError reports a contract violation by the code that built a
// matcher, as opposed to input that simply does not match. Matcher
// constructors panic with a *ConfigError; Parse recovers it and
// returns it as an error.
type ConfigError struct {
	Op  string // constructor or combinator that detected the problem
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Op, e.Msg)
}

// Is makes errors.Is(err, ErrConfig) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configPanic(op, format string, args ...any) {
	panic(&ConfigError{Op: op, Msg: fmt.Sprintf(format, args...)})
}

func mustMatcher[T any](op string, m Matcher[T]) {
	if m == nil {
		configPanic(op, "nil matcher")
	}
}
