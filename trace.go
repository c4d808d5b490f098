package lifted

import "go.uber.org/zap"

// Trace wraps m so that every attempt and its result are logged at
// debug level under name. A nil logger returns m unchanged.
func Trace[T any](logger *zap.Logger, name string, m Matcher[T]) Matcher[T] {
	mustMatcher("Trace", m)
	if logger == nil {
		return m
	}
	log := logger.With(zap.String("matcher", name))
	return MatcherFunc[T](func(c Cursor) (Outcome[T], bool) {
		log.Debug("attempt", zap.Int("pos", c.Pos()))
		out, ok := m.Match(c)
		if !ok {
			log.Debug("no match", zap.Int("pos", c.Pos()))
			return out, false
		}
		log.Debug("match",
			zap.Int("pos", c.Pos()),
			zap.Int("next", out.Next.Pos()),
			zap.Any("value", out.Value),
		)
		return out, true
	})
}
