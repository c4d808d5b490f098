package lifted

import "sync"

// Option always succeeds. When m fails it yields otherwise without
// consuming any input.
func Option[T any](m Matcher[T], otherwise T) Matcher[T] {
	mustMatcher("Option", m)
	return MatcherFunc[T](func(c Cursor) (Outcome[T], bool) {
		if out, ok := m.Match(c); ok {
			return out, true
		}
		return succeed(otherwise, c)
	})
}

// Maybe is Option with the zero value of T as the fallback.
func Maybe[T any](m Matcher[T]) Matcher[T] {
	var zero T
	return Option(m, zero)
}

// Many applies m zero or more times and collects the values. It stops
// at the first failure and never fails itself.
func Many[T any](m Matcher[T]) Matcher[[]T] {
	mustMatcher("Many", m)
	return many[T, struct{}](m, nil)
}

// ManySep is Many with sep required between consecutive elements.
// A separator that is not followed by an element is left unconsumed.
// A leading element that consumes nothing is dropped unless a
// separator follows it.
func ManySep[T, S any](m Matcher[T], sep Matcher[S]) Matcher[[]T] {
	mustMatcher("ManySep", m)
	mustMatcher("ManySep", sep)
	return many(m, sep)
}

// ManySepBy is ManySep with a literal separator.
func ManySepBy[T any](m Matcher[T], sep string) Matcher[[]T] {
	return ManySep(m, Literal(sep))
}

// Many1 is Many but fails when m does not match at least once.
func Many1[T any](m Matcher[T]) Matcher[[]T] {
	mustMatcher("Many1", m)
	return atLeastOne(many[T, struct{}](m, nil))
}

// Many1Sep is ManySep but fails when m does not match at least once.
func Many1Sep[T, S any](m Matcher[T], sep Matcher[S]) Matcher[[]T] {
	mustMatcher("Many1Sep", m)
	mustMatcher("Many1Sep", sep)
	return atLeastOne(many(m, sep))
}

// Many1SepBy is Many1Sep with a literal separator.
func Many1SepBy[T any](m Matcher[T], sep string) Matcher[[]T] {
	return Many1Sep(m, Literal(sep))
}

// many is the shared repetition loop. sep may be nil.
func many[T, S any](m Matcher[T], sep Matcher[S]) Matcher[[]T] {
	return MatcherFunc[[]T](func(c Cursor) (Outcome[[]T], bool) {
		values := []T{}
		first, ok := m.Match(c)
		if !ok {
			return succeed(values, c)
		}
		if first.Next.pos == c.pos {
			if sep == nil {
				configPanic("Many", "repeated matcher succeeded without consuming input at %d", c.pos)
			}
			// An empty element counts only when a separator follows it.
			if _, ok := sep.Match(c); !ok {
				return succeed(values, c)
			}
		}
		values = append(values, first.Value)
		last := first.Next
		for {
			at := last
			if sep != nil {
				s, ok := sep.Match(last)
				if !ok {
					break
				}
				at = s.Next
			}
			next, ok := m.Match(at)
			if !ok {
				break
			}
			if next.Next.pos == last.pos {
				configPanic("Many", "repetition made no progress at %d", last.pos)
			}
			values = append(values, next.Value)
			last = next.Next
		}
		return succeed(values, last)
	})
}

func atLeastOne[T any](m Matcher[[]T]) Matcher[[]T] {
	return MatcherFunc[[]T](func(c Cursor) (Outcome[[]T], bool) {
		out, ok := m.Match(c)
		if !ok || len(out.Value) == 0 {
			return fail[[]T]()
		}
		return out, true
	})
}

// AnyOf tries each matcher in order and yields the first success.
// Every successful branch must consume input; a branch that succeeds
// without advancing is reported as a configuration error.
func AnyOf[T any](ms ...Matcher[T]) Matcher[T] {
	if len(ms) == 0 {
		configPanic("AnyOf", "no alternatives given")
	}
	for i, m := range ms {
		if m == nil {
			configPanic("AnyOf", "alternative %d is nil", i)
		}
	}
	branches := append([]Matcher[T](nil), ms...)
	return MatcherFunc[T](func(c Cursor) (Outcome[T], bool) {
		for i, m := range branches {
			out, ok := m.Match(c)
			if !ok {
				continue
			}
			if out.Next.pos <= c.pos {
				configPanic("AnyOf", "alternative %d succeeded without consuming input at %d", i, c.pos)
			}
			return out, true
		}
		return fail[T]()
	})
}

// Sequence applies each matcher in turn, each starting where the
// previous one stopped. It fails as a whole if any of them fails.
func Sequence[T any](ms ...Matcher[T]) Matcher[[]T] {
	for i, m := range ms {
		if m == nil {
			configPanic("Sequence", "element %d is nil", i)
		}
	}
	steps := append([]Matcher[T](nil), ms...)
	return MatcherFunc[[]T](func(c Cursor) (Outcome[[]T], bool) {
		values := make([]T, 0, len(steps))
		at := c
		for _, m := range steps {
			out, ok := m.Match(at)
			if !ok {
				return fail[[]T]()
			}
			values = append(values, out.Value)
			at = out.Next
		}
		return succeed(values, at)
	})
}

// Seq2 matches a then b and combines both values with build.
func Seq2[A, B, R any](a Matcher[A], b Matcher[B], build func(A, B) R) Matcher[R] {
	mustMatcher("Seq2", a)
	mustMatcher("Seq2", b)
	if build == nil {
		configPanic("Seq2", "nil build function")
	}
	return MatcherFunc[R](func(c Cursor) (Outcome[R], bool) {
		oa, ok := a.Match(c)
		if !ok {
			return fail[R]()
		}
		ob, ok := b.Match(oa.Next)
		if !ok {
			return fail[R]()
		}
		return succeed(build(oa.Value, ob.Value), ob.Next)
	})
}

// Seq3 matches a, b then c and combines the three values with build.
func Seq3[A, B, C, R any](a Matcher[A], b Matcher[B], c Matcher[C], build func(A, B, C) R) Matcher[R] {
	mustMatcher("Seq3", c)
	if build == nil {
		configPanic("Seq3", "nil build function")
	}
	type pair struct {
		a A
		b B
	}
	ab := Seq2(a, b, func(x A, y B) pair { return pair{x, y} })
	return Seq2(ab, c, func(p pair, z C) R { return build(p.a, p.b, z) })
}

// Lift maps the value of a successful match through f.
func Lift[T, U any](f func(T) U, m Matcher[T]) Matcher[U] {
	mustMatcher("Lift", m)
	if f == nil {
		configPanic("Lift", "nil transform")
	}
	return MatcherFunc[U](func(c Cursor) (Outcome[U], bool) {
		out, ok := m.Match(c)
		if !ok {
			return fail[U]()
		}
		return succeed(f(out.Value), out.Next)
	})
}

// Erase forgets the value type of m so matchers of different types
// can be combined in one Sequence or AnyOf.
func Erase[T any](m Matcher[T]) Matcher[any] {
	return Lift(func(v T) any { return v }, m)
}

// SkipSpace consumes leading whitespace before applying m. When
// failWithoutWhitespace is set, the absence of whitespace is a failure.
func SkipSpace[T any](m Matcher[T], failWithoutWhitespace bool) Matcher[T] {
	mustMatcher("SkipSpace", m)
	return MatcherFunc[T](func(c Cursor) (Outcome[T], bool) {
		if ws, ok := whitespace.Match(c); ok {
			c = ws.Next
		} else if failWithoutWhitespace {
			return fail[T]()
		}
		return m.Match(c)
	})
}

// ChompSpace consumes optional leading whitespace before applying m.
func ChompSpace[T any](m Matcher[T]) Matcher[T] {
	return SkipSpace(m, false)
}

// Whole succeeds only if m matches and consumes the rest of the input.
func Whole[T any](m Matcher[T]) Matcher[T] {
	mustMatcher("Whole", m)
	return MatcherFunc[T](func(c Cursor) (Outcome[T], bool) {
		out, ok := m.Match(c)
		if !ok || !out.Next.AtEnd() {
			return fail[T]()
		}
		return out, true
	})
}

// Lazy defers building a matcher until it is first used, which lets
// grammar rules refer to themselves or to rules defined later.
func Lazy[T any](build func() Matcher[T]) Matcher[T] {
	if build == nil {
		configPanic("Lazy", "nil builder")
	}
	return &lazy[T]{build: build}
}

type lazy[T any] struct {
	once  sync.Once
	build func() Matcher[T]
	m     Matcher[T]
}

func (l *lazy[T]) Match(c Cursor) (Outcome[T], bool) {
	l.once.Do(func() {
		l.m = l.build()
	})
	if l.m == nil {
		configPanic("Lazy", "builder returned a nil matcher")
	}
	return l.m.Match(c)
}
