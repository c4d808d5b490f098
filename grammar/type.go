package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType defines the different kinds of expression nodes.
type NodeType int

const (
	NodeLiteral     NodeType = iota // "text"
	NodeChar                        // 'c'
	NodeNotChar                     // !'c'
	NodeRef                         // rule reference or builtin
	NodeCall                        // name(expr[, "sep"])
	NodeRepeat                      // expr*, expr+, expr?
	NodeSequence                    // expr expr ...
	NodeAlternation                 // expr | expr ...
)

// Node is an element of a parsed rule expression.
type Node interface {
	Type() NodeType // returns the node type
	String() string // debugging or printing purpose
	Position() int  // byte offset of the node in the expression
}

var (
	_ Node = (*LiteralNode)(nil)
	_ Node = (*CharNode)(nil)
	_ Node = (*RefNode)(nil)
	_ Node = (*CallNode)(nil)
	_ Node = (*RepeatNode)(nil)
	_ Node = (*SequenceNode)(nil)
	_ Node = (*AlternationNode)(nil)
)

// LiteralNode matches a fixed string.
type LiteralNode struct {
	Value string
	pos   int
}

func (l *LiteralNode) Type() NodeType { return NodeLiteral }
func (l *LiteralNode) String() string { return fmt.Sprintf("Literal(%s)", strconv.Quote(l.Value)) }
func (l *LiteralNode) Position() int  { return l.pos }

// CharNode matches one character, or any other character when Negated.
type CharNode struct {
	Value   rune
	Negated bool
	pos     int
}

func (c *CharNode) Type() NodeType {
	if c.Negated {
		return NodeNotChar
	}
	return NodeChar
}

func (c *CharNode) String() string {
	if c.Negated {
		return fmt.Sprintf("NotChar(%q)", c.Value)
	}
	return fmt.Sprintf("Char(%q)", c.Value)
}

func (c *CharNode) Position() int { return c.pos }

// RefNode names another rule or one of the builtins (ws, digits, eof).
type RefNode struct {
	Name string
	pos  int
}

func (r *RefNode) Type() NodeType { return NodeRef }
func (r *RefNode) String() string { return fmt.Sprintf("Ref(%s)", r.Name) }
func (r *RefNode) Position() int  { return r.pos }

// CallNode applies a named combinator to its argument. Sep is only
// meaningful for many and many1.
type CallNode struct {
	Name   string
	Arg    Node
	Sep    string
	HasSep bool
	pos    int
}

func (c *CallNode) Type() NodeType { return NodeCall }
func (c *CallNode) String() string {
	if c.HasSep {
		return fmt.Sprintf("Call(%s, %s, sep=%s)", c.Name, c.Arg, strconv.Quote(c.Sep))
	}
	return fmt.Sprintf("Call(%s, %s)", c.Name, c.Arg)
}
func (c *CallNode) Position() int { return c.pos }

// Quantifier is the postfix operator of a RepeatNode.
type Quantifier string

const (
	QuantZeroOrMore Quantifier = "*"
	QuantOneOrMore  Quantifier = "+"
	QuantZeroOrOne  Quantifier = "?"
)

// RepeatNode is an expression followed by a quantifier.
type RepeatNode struct {
	Node       Node
	Quantifier Quantifier
	pos        int
}

func (r *RepeatNode) Type() NodeType { return NodeRepeat }
func (r *RepeatNode) String() string { return fmt.Sprintf("Repeat(%s)%s", r.Node, r.Quantifier) }
func (r *RepeatNode) Position() int  { return r.pos }

// SequenceNode matches its children one after the other.
type SequenceNode struct {
	Children []Node
	pos      int
}

func (s *SequenceNode) Type() NodeType { return NodeSequence }
func (s *SequenceNode) String() string { return "Sequence(" + joinNodes(s.Children, " ") + ")" }
func (s *SequenceNode) Position() int  { return s.pos }

// AlternationNode matches the first child that succeeds.
type AlternationNode struct {
	Children []Node
	pos      int
}

func (a *AlternationNode) Type() NodeType { return NodeAlternation }
func (a *AlternationNode) String() string { return "AnyOf(" + joinNodes(a.Children, " | ") + ")" }
func (a *AlternationNode) Position() int  { return a.pos }

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}
