package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/lifted"
)

var (
	// ErrNoRules is returned for a grammar without any rule.
	ErrNoRules = errors.New("grammar has no rules")
	// ErrUnknownRule is returned when a reference, the start rule or a
	// requested rule names no rule of the grammar.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrDuplicateRule is returned when a rule name is defined twice or
	// shadows a builtin.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrUnknownCall is returned for a call to an undefined function.
	ErrUnknownCall = errors.New("unknown function")
	// ErrBadArgument is returned when a call or literal has an unusable argument.
	ErrBadArgument = errors.New("invalid argument")
)

// builtins are the identifiers that do not refer to a rule.
var builtins = map[string]func() lifted.Matcher[any]{
	"ws":     func() lifted.Matcher[any] { return lifted.Erase(lifted.Whitespace()) },
	"digits": func() lifted.Matcher[any] { return lifted.Erase(lifted.Digits()) },
	"eof":    lifted.EndOfInput[any],
}

// Options control how a grammar is compiled.
type Options struct {
	// Logger receives compilation messages. It may be nil.
	Logger *zap.Logger
	// Trace wraps every rule so that each attempt is logged at debug level.
	Trace bool
}

// Parser is a compiled grammar.
type Parser struct {
	name  string
	start string
	rules map[string]lifted.Matcher[any]
}

// Compile parses every rule expression of g and builds the matchers.
// Rule references are resolved lazily, so rules may refer to each
// other in any order and recursively.
func Compile(g *Grammar, opts Options) (*Parser, error) {
	if len(g.Rules) == 0 {
		return nil, fmt.Errorf("%s: %w", g.Name, ErrNoRules)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Parser{
		name:  g.Name,
		start: g.Start,
		rules: make(map[string]lifted.Matcher[any], len(g.Rules)),
	}
	if p.start == "" {
		p.start = g.Rules[0].Name
	}

	trees := make(map[string]Node, len(g.Rules))
	for _, rule := range g.Rules {
		if _, exists := trees[rule.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, rule.Name)
		}
		if _, isBuiltin := builtins[rule.Name]; isBuiltin {
			return nil, fmt.Errorf("%w: %q shadows a builtin", ErrDuplicateRule, rule.Name)
		}
		node, err := ParseExpr(rule.Name, rule.Expr)
		if err != nil {
			return nil, err
		}
		trees[rule.Name] = node
	}
	if _, ok := trees[p.start]; !ok {
		return nil, fmt.Errorf("start rule: %w: %q", ErrUnknownRule, p.start)
	}

	c := &compiler{trees: trees, compiled: p.rules}
	for _, rule := range g.Rules {
		m, err := c.compile(rule.Name, trees[rule.Name])
		if err != nil {
			return nil, err
		}
		if opts.Trace {
			m = lifted.Trace(logger, rule.Name, m)
		}
		p.rules[rule.Name] = m
		logger.Debug("compiled rule", zap.String("grammar", g.Name), zap.String("rule", rule.Name), zap.Stringer("expr", trees[rule.Name]))
	}
	return p, nil
}

// Name returns the grammar name.
func (p *Parser) Name() string { return p.name }

// Start returns the name of the start rule.
func (p *Parser) Start() string { return p.start }

// Rules returns the rule names in sorted order.
func (p *Parser) Rules() []string {
	names := make([]string, 0, len(p.rules))
	for name := range p.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rule returns the matcher of the named rule.
func (p *Parser) Rule(name string) (lifted.Matcher[any], bool) {
	m, ok := p.rules[name]
	return m, ok
}

// Parse matches the whole of text against the start rule.
func (p *Parser) Parse(text string) (any, error) {
	return p.ParseRule(p.start, text)
}

// ParseRule matches the whole of text against the named rule.
func (p *Parser) ParseRule(name, text string) (any, error) {
	m, ok := p.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return lifted.Parse(m, text)
}

type compiler struct {
	trees    map[string]Node
	compiled map[string]lifted.Matcher[any]
}

func (c *compiler) compile(rule string, n Node) (lifted.Matcher[any], error) {
	switch n := n.(type) {
	case *LiteralNode:
		if n.Value == "" {
			return nil, fmt.Errorf("rule %q at %d: %w: empty literal", rule, n.Position(), ErrBadArgument)
		}
		return lifted.Erase(lifted.Literal(n.Value)), nil
	case *CharNode:
		if n.Negated {
			return lifted.Erase(lifted.NotChar(n.Value)), nil
		}
		return lifted.Erase(lifted.Char(n.Value)), nil
	case *RefNode:
		return c.ref(rule, n)
	case *CallNode:
		return c.call(rule, n)
	case *RepeatNode:
		m, err := c.compile(rule, n.Node)
		if err != nil {
			return nil, err
		}
		switch n.Quantifier {
		case QuantZeroOrMore:
			return lifted.Erase(lifted.Many(m)), nil
		case QuantOneOrMore:
			return lifted.Erase(lifted.Many1(m)), nil
		default:
			return lifted.Maybe(m), nil
		}
	case *SequenceNode:
		ms, err := c.compileAll(rule, n.Children)
		if err != nil {
			return nil, err
		}
		return lifted.Erase(lifted.Sequence(ms...)), nil
	case *AlternationNode:
		ms, err := c.compileAll(rule, n.Children)
		if err != nil {
			return nil, err
		}
		return lifted.AnyOf(ms...), nil
	default:
		return nil, fmt.Errorf("rule %q: unexpected node %T", rule, n)
	}
}

func (c *compiler) compileAll(rule string, nodes []Node) ([]lifted.Matcher[any], error) {
	ms := make([]lifted.Matcher[any], len(nodes))
	for i, child := range nodes {
		m, err := c.compile(rule, child)
		if err != nil {
			return nil, err
		}
		ms[i] = m
	}
	return ms, nil
}

func (c *compiler) ref(rule string, n *RefNode) (lifted.Matcher[any], error) {
	if builtin, ok := builtins[n.Name]; ok {
		return builtin(), nil
	}
	if _, ok := c.trees[n.Name]; !ok {
		return nil, fmt.Errorf("rule %q at %d: %w: %q", rule, n.Position(), ErrUnknownRule, n.Name)
	}
	name := n.Name
	return lifted.Lazy(func() lifted.Matcher[any] { return c.compiled[name] }), nil
}

func (c *compiler) call(rule string, n *CallNode) (lifted.Matcher[any], error) {
	if n.HasSep && n.Name != "many" && n.Name != "many1" {
		return nil, fmt.Errorf("rule %q at %d: %w: %s takes no separator", rule, n.Position(), ErrBadArgument, n.Name)
	}

	switch n.Name {
	case "until", "while":
		lit, ok := n.Arg.(*LiteralNode)
		if !ok || lit.Value == "" {
			return nil, fmt.Errorf("rule %q at %d: %w: %s expects a non-empty string of characters", rule, n.Position(), ErrBadArgument, n.Name)
		}
		set := lit.Value
		inSet := func(r rune) bool { return strings.ContainsRune(set, r) }
		if n.Name == "until" {
			return lifted.Erase(lifted.Until(inSet)), nil
		}
		return lifted.Erase(lifted.TakeWhile(inSet, false)), nil
	}

	m, err := c.compile(rule, n.Arg)
	if err != nil {
		return nil, err
	}
	switch n.Name {
	case "many":
		if n.HasSep {
			return lifted.Erase(lifted.ManySepBy(m, n.Sep)), nil
		}
		return lifted.Erase(lifted.Many(m)), nil
	case "many1":
		if n.HasSep {
			return lifted.Erase(lifted.Many1SepBy(m, n.Sep)), nil
		}
		return lifted.Erase(lifted.Many1(m)), nil
	case "option":
		return lifted.Maybe(m), nil
	case "chomp":
		return lifted.ChompSpace(m), nil
	case "skip":
		return lifted.SkipSpace(m, true), nil
	case "text":
		return lifted.Lift(func(v any) any { return lifted.MconcatAny(v) }, m), nil
	default:
		return nil, fmt.Errorf("rule %q at %d: %w: %q", rule, n.Position(), ErrUnknownCall, n.Name)
	}
}
