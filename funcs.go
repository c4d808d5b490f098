package lifted

import "strings"

// Helpers for post-processing matcher values, typically through Lift.

// Compose returns x -> f(g(x)).
func Compose[A, B, C any](f func(B) C, g func(A) B) func(A) C {
	return func(x A) C { return f(g(x)) }
}

// Identity returns its argument.
func Identity[T any](v T) T { return v }

// Const returns a function that ignores its argument and yields v.
func Const[T, U any](v U) func(T) U {
	return func(T) U { return v }
}

// Mconcat joins the strings of xs. Empty strings, the no-data value of
// string matchers, contribute nothing.
func Mconcat(xs []string) string {
	return strings.Join(xs, "")
}

// MconcatAny joins the string content of a value produced by erased
// matchers: strings are kept, nil is skipped and slices are flattened.
// Other values are skipped.
func MconcatAny(v any) string {
	var b strings.Builder
	writeText(&b, v)
	return b.String()
}

func writeText(b *strings.Builder, v any) {
	switch x := v.(type) {
	case string:
		b.WriteString(x)
	case []string:
		for _, s := range x {
			b.WriteString(s)
		}
	case []any:
		for _, e := range x {
			writeText(b, e)
		}
	}
}

// First returns xs[0].
func First[T any](xs []T) T { return xs[0] }

// Second returns xs[1].
func Second[T any](xs []T) T { return xs[1] }

// Third returns xs[2].
func Third[T any](xs []T) T { return xs[2] }
