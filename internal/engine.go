package internal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/lifted"
	"github.com/gnolang/lifted/grammar"
)

// Result is the outcome of parsing one input with the engine's grammar.
type Result struct {
	Filename string
	Rule     string
	Value    any
	Matched  bool
	// Err is set when the grammar itself is faulty (see lifted.ErrConfig).
	// A plain non-match is reported through Matched.
	Err error
}

// Engine runs a compiled grammar over sources and files.
type Engine struct {
	parser *grammar.Parser
	rule   string
	logger *zap.Logger

	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	isWatching bool
}

// NewEngine compiles g. The engine parses with the grammar's start rule
// until UseRule selects another one.
func NewEngine(g *grammar.Grammar, opts grammar.Options) (*Engine, error) {
	p, err := grammar.Compile(g, opts)
	if err != nil {
		return nil, fmt.Errorf("compiling grammar %q: %w", g.Name, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		parser: p,
		rule:   p.Start(),
		logger: logger,
	}, nil
}

// NewEngineFromFile loads and compiles the grammar file at path.
func NewEngineFromFile(path string, opts grammar.Options) (*Engine, error) {
	g, err := grammar.Load(path)
	if err != nil {
		return nil, err
	}
	return NewEngine(g, opts)
}

// UseRule selects the rule inputs are parsed with.
func (e *Engine) UseRule(name string) error {
	if _, ok := e.parser.Rule(name); !ok {
		return fmt.Errorf("%w: %q", grammar.ErrUnknownRule, name)
	}
	e.rule = name
	return nil
}

// Rule returns the rule inputs are parsed with.
func (e *Engine) Rule() string { return e.rule }

// RunSource parses source as a whole.
func (e *Engine) RunSource(source []byte) Result {
	res := Result{Rule: e.rule}
	value, err := e.parser.ParseRule(e.rule, string(source))
	switch {
	case err == nil:
		res.Value = value
		res.Matched = true
	case errors.Is(err, lifted.ErrNoMatch):
	default:
		res.Err = err
	}
	return res
}

// Run parses the file at path.
func (e *Engine) Run(path string) (Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	res := e.RunSource(source)
	res.Filename = path
	e.logger.Debug("parsed file",
		zap.String("file", path),
		zap.String("rule", res.Rule),
		zap.Bool("matched", res.Matched),
		zap.Error(res.Err),
	)
	return res, nil
}
