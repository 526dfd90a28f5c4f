package parser

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/logging"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/rs/zerolog"
)

type parserState int

const (
	stateTopLevel parserState = iota
	stateInRecipe
)

// Parser builds a Buildfile from tokens. A Parser is single use.
type Parser struct {
	file       *types.Buildfile
	state      parserState
	current    *types.Target
	group      string
	pendingDoc []string
	logger     zerolog.Logger
}

// Option customizes a Parser.
type Option func(*Parser)

// WithDefaultGroup sets the group used before the first [group: ...] marker.
func WithDefaultGroup(group string) Option {
	return func(p *Parser) {
		if group != "" {
			p.group = group
		}
	}
}

// New creates a parser in the TopLevel state.
func New(opts ...Option) *Parser {
	p := &Parser{
		file:   types.NewBuildfile(),
		state:  stateTopLevel,
		group:  types.DefaultGroup,
		logger: logging.GetLogger("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads an entire build file from r.
func (p *Parser) Parse(r io.Reader) (*types.Buildfile, error) {
	lexer := NewLexer(r)
	for {
		tok, err := lexer.Next()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrParse) {
				return nil, err
			}
			return nil, errors.Wrap(err, errors.ErrBuildfileRead, "failed to read build file")
		}
		if err := p.consume(tok); err != nil {
			return nil, err
		}
	}

	p.logger.Debug().
		Int("targets", len(p.file.Targets)).
		Int("variables", len(p.file.Variables)).
		Msg("Build file parsed")

	return p.file, nil
}

func (p *Parser) consume(tok Token) error {
	switch tok.Kind {
	case TokenBlank:
		if p.state == stateTopLevel {
			p.pendingDoc = nil
		}

	case TokenComment:
		if tok.Indented && p.state == stateInRecipe {
			return nil
		}
		p.endRecipe()
		p.pendingDoc = append(p.pendingDoc, tok.Text)

	case TokenGroup:
		p.endRecipe()
		p.pendingDoc = nil
		p.group = tok.Name

	case TokenAssignment:
		p.endRecipe()
		p.pendingDoc = nil
		p.file.SetVariable(tok.Name, tok.Value, tok.Line)

	case TokenHeader:
		target := &types.Target{
			Name:         tok.Name,
			Dependencies: tok.Deps,
			Doc:          strings.Join(p.pendingDoc, " "),
			Group:        p.group,
			Line:         tok.Line,
		}
		if existing, ok := p.file.Target(tok.Name); ok {
			return errors.ParseError(tok.Line, fmt.Sprintf("target '%s' already declared on line %d", tok.Name, existing.Line)).
				WithDetail(errors.DetailTarget, tok.Name)
		}
		p.file.AddTarget(target)
		p.current = target
		p.state = stateInRecipe
		p.pendingDoc = nil

	case TokenRecipe:
		if p.state != stateInRecipe {
			return errors.ParseError(tok.Line, "recipe line found outside of a target block")
		}
		p.current.Recipe = append(p.current.Recipe, tok.Text)
	}
	return nil
}

func (p *Parser) endRecipe() {
	p.state = stateTopLevel
	p.current = nil
}

// ParseString parses build file text held in memory.
func ParseString(text string, opts ...Option) (*types.Buildfile, error) {
	return New(opts...).Parse(strings.NewReader(text))
}

// ParseFile opens and parses the build file at path.
func ParseFile(path string, opts ...Option) (*types.Buildfile, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Newf(errors.ErrBuildfileNotFound, "Buildfile '%s' not found", path).
				WithDetail(errors.DetailPath, path)
		}
		return nil, errors.Wrapf(err, errors.ErrBuildfileRead, "failed to open build file %s", path)
	}
	defer func() { _ = f.Close() }()

	file, err := New(opts...).Parse(f)
	if err != nil {
		return nil, err
	}
	file.Path = path
	return file, nil
}
