package grammar

import (
	"fmt"

	"github.com/gnolang/lifted"
)

// SyntaxError reports a rule expression that could not be parsed.
// Pos is the offset at which parsing stopped.
type SyntaxError struct {
	Rule string
	Expr string
	Pos  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rule %q: syntax error at offset %d in %q", e.Rule, e.Pos, e.Expr)
}

// expression is the matcher for a whole rule expression:
//
//	alt     := seq ('|' seq)*
//	seq     := postfix+
//	postfix := primary ('*' | '+' | '?')?
//	primary := STRING | CHAR | '!' CHAR | call | IDENT | '(' alt ')'
//	call    := IDENT '(' alt (',' STRING)? ')'
var expression = newExpressionMatcher()

func newExpressionMatcher() lifted.Matcher[Node] {
	var alt lifted.Matcher[Node]
	group := lifted.Lazy(func() lifted.Matcher[Node] { return alt })

	literal := positioned(stringLexeme, func(pos int, v string) Node {
		return &LiteralNode{Value: v, pos: pos}
	})
	char := positioned(charLexeme, func(pos int, r rune) Node {
		return &CharNode{Value: r, pos: pos}
	})
	notChar := positioned(lifted.Seq2(lifted.Char('!'), token(charLexeme), func(_ string, r rune) rune { return r }),
		func(pos int, r rune) Node {
			return &CharNode{Value: r, Negated: true, pos: pos}
		})

	type separator struct {
		value string
		ok    bool
	}
	sep := lifted.Maybe(lifted.Seq2(symbol(","), token(stringLexeme), func(_, s string) separator {
		return separator{value: s, ok: true}
	}))
	type callParts struct {
		name string
		arg  Node
		sep  separator
	}
	head := lifted.Seq2(identLexeme, lifted.Char('('), func(name, _ string) string { return name })
	body := lifted.Seq3(head, group, sep, func(name string, arg Node, s separator) callParts {
		return callParts{name: name, arg: arg, sep: s}
	})
	call := positioned(lifted.Seq2(body, symbol(")"), func(p callParts, _ string) callParts { return p }),
		func(pos int, p callParts) Node {
			return &CallNode{Name: p.name, Arg: p.arg, Sep: p.sep.value, HasSep: p.sep.ok, pos: pos}
		})

	ref := positioned(identLexeme, func(pos int, name string) Node {
		return &RefNode{Name: name, pos: pos}
	})
	paren := lifted.Seq3(symbol("("), group, symbol(")"), func(_ string, n Node, _ string) Node { return n })

	primary := lifted.AnyOf(literal, char, notChar, call, ref, paren)

	quantifier := lifted.Maybe(token(lifted.Strings("*", "+", "?")))
	postfix := lifted.Seq2(primary, quantifier, func(n Node, q string) Node {
		if q == "" {
			return n
		}
		return &RepeatNode{Node: n, Quantifier: Quantifier(q), pos: n.Position()}
	})

	seq := lifted.Lift(func(nodes []Node) Node {
		if len(nodes) == 1 {
			return nodes[0]
		}
		return &SequenceNode{Children: nodes, pos: nodes[0].Position()}
	}, lifted.Many1(postfix))

	alt = lifted.Lift(func(nodes []Node) Node {
		if len(nodes) == 1 {
			return nodes[0]
		}
		return &AlternationNode{Children: nodes, pos: nodes[0].Position()}
	}, lifted.Many1Sep(seq, symbol("|")))

	return alt
}

// ParseExpr parses the expression of the named rule.
func ParseExpr(rule, expr string) (Node, error) {
	out, ok, err := lifted.TryMatch(expression, lifted.NewCursor(expr))
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule, err)
	}
	if !ok {
		return nil, &SyntaxError{Rule: rule, Expr: expr, Pos: 0}
	}
	end := out.Next
	if ws, ok := lifted.Whitespace().Match(end); ok {
		end = ws.Next
	}
	if !end.AtEnd() {
		return nil, &SyntaxError{Rule: rule, Expr: expr, Pos: end.Pos()}
	}
	return out.Value, nil
}
