package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/makeover/pkg/errors"
)

// TokenKind classifies a single line of a build file.
type TokenKind int

const (
	TokenBlank TokenKind = iota
	TokenComment
	TokenGroup
	TokenAssignment
	TokenHeader
	TokenRecipe
)

func (k TokenKind) String() string {
	switch k {
	case TokenBlank:
		return "blank"
	case TokenComment:
		return "comment"
	case TokenGroup:
		return "group"
	case TokenAssignment:
		return "assignment"
	case TokenHeader:
		return "header"
	case TokenRecipe:
		return "recipe"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one classified line.
type Token struct {
	Kind     TokenKind
	Line     int
	Indented bool
	// Name is the variable, target or group name.
	Name string
	// Value is the raw assignment value.
	Value string
	// Deps lists the dependency names of a header.
	Deps []string
	// Text is the comment body or the recipe command, trimmed.
	Text string
}

const groupPrefix = "[group:"

// Lexer splits build file text into tokens, one per line.
type Lexer struct {
	scanner *bufio.Scanner
	line    int
}

// NewLexer creates a lexer reading from r.
func NewLexer(r io.Reader) *Lexer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Lexer{scanner: scanner}
}

// Next returns the next token, or io.EOF when the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return Token{}, err
		}
		return Token{}, io.EOF
	}
	l.line++
	return classify(l.line, l.scanner.Text())
}

func classify(line int, raw string) (Token, error) {
	raw = strings.TrimRight(raw, "\r")
	stripped := strings.TrimSpace(raw)
	tok := Token{Line: line, Indented: isIndented(raw)}

	switch {
	case stripped == "":
		tok.Kind = TokenBlank
		return tok, nil

	case strings.HasPrefix(stripped, "#"):
		tok.Kind = TokenComment
		tok.Text = strings.TrimSpace(stripped[1:])
		return tok, nil

	case tok.Indented:
		tok.Kind = TokenRecipe
		tok.Text = stripped
		return tok, nil

	case strings.HasPrefix(strings.ToLower(stripped), groupPrefix):
		if !strings.HasSuffix(stripped, "]") {
			return tok, errors.ParseError(line, "group marker is missing its closing ']'")
		}
		name := strings.TrimSpace(stripped[len(groupPrefix) : len(stripped)-1])
		if name == "" {
			return tok, errors.ParseError(line, "group marker has an empty name")
		}
		tok.Kind = TokenGroup
		tok.Name = name
		return tok, nil

	case strings.HasPrefix(stripped, "["):
		return tok, errors.ParseError(line, fmt.Sprintf("unrecognized marker %q", stripped))
	}

	eq := strings.IndexByte(stripped, '=')
	colon := strings.IndexByte(stripped, ':')

	if eq >= 0 && (colon < 0 || eq < colon) {
		name := strings.TrimSpace(stripped[:eq])
		if err := validateName(name); err != nil {
			return tok, errors.ParseError(line, fmt.Sprintf("invalid variable name %q: %s", name, err))
		}
		tok.Kind = TokenAssignment
		tok.Name = name
		tok.Value = strings.TrimSpace(stripped[eq+1:])
		return tok, nil
	}

	if colon >= 0 {
		name := strings.TrimSpace(stripped[:colon])
		if err := validateName(name); err != nil {
			return tok, errors.ParseError(line, fmt.Sprintf("invalid target name %q: %s", name, err))
		}
		deps := strings.Fields(stripped[colon+1:])
		for _, dep := range deps {
			if err := validateName(dep); err != nil {
				return tok, errors.ParseError(line, fmt.Sprintf("invalid dependency name %q: %s", dep, err))
			}
		}
		tok.Kind = TokenHeader
		tok.Name = name
		tok.Deps = deps
		return tok, nil
	}

	return tok, errors.ParseError(line, fmt.Sprintf("syntax error near %q: expected a target, assignment, group marker or comment", stripped))
}

func isIndented(raw string) bool {
	return len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t')
}

// validateName rejects names that are empty or carry separators.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("name contains whitespace")
	}
	if strings.ContainsAny(name, ":=") {
		return fmt.Errorf("name contains ':' or '='")
	}
	return nil
}
