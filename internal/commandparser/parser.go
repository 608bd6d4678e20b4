package commandparser

import (
	"io"
	"regexp"
	"strings"
)

var (
	argName     = regexp.MustCompile(`^[a-zA-Z]+$`)
	longFlag    = regexp.MustCompile(`^--[a-zA-Z]+$`)
	omittedFlag = regexp.MustCompile(`^-[a-zA-Z]$`)
)

// Argument is a declared argument. Optional arguments carry the flag name in Name and
// the single letter alias, if any, in Short.
type Argument struct {
	Name       string
	Short      string
	Required   bool
	Positional bool
}

// Option configures a Parser created by New or NewWithGrammar.
type Option func(p *Parser)

// AllowOptionalPositionals makes the binder only reject missing positional tokens when
// the first missing declaration is required.
func AllowOptionalPositionals() Option {
	return func(p *Parser) {
		p.optionalPositionals = true
	}
}

// Parser holds the declared arguments of one command. It is built once and may be
// shared by concurrent Parse calls after the last AddArgument.
type Parser struct {
	grammar *grammar

	names       map[string]*Argument
	positionals []*Argument
	optionals   []*Argument

	optionalPositionals bool
}

// New returns a parser using the embedded grammar.
func New(opts ...Option) *Parser {
	g, err := compileDefault()
	if err != nil {
		panic(err)
	}
	return newParser(g, opts)
}

// NewWithGrammar compiles the grammar read from r.
func NewWithGrammar(r io.Reader, opts ...Option) (*Parser, error) {
	g, err := compileGrammar(r)
	if err != nil {
		return nil, err
	}
	return newParser(g, opts), nil
}

func newParser(g *grammar, opts []Option) *Parser {
	p := &Parser{
		grammar: g,
		names:   map[string]*Argument{},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// AddArgument declares a positional argument ("user"), an optional argument ("--reason")
// or an optional argument with a single letter alias ("--reason", "-r").
func (p *Parser) AddArgument(required bool, names ...string) error {
	switch {
	case len(names) == 1 && argName.MatchString(names[0]):
		if _, ok := p.names[names[0]]; ok {
			return &DeclarationError{Names: names, err: ErrDuplicatedArgumentName}
		}
		a := &Argument{Name: names[0], Required: required, Positional: true}
		p.names[a.Name] = a
		p.positionals = append(p.positionals, a)
	case len(names) == 1 && longFlag.MatchString(names[0]):
		flag := strings.ToLower(names[0][2:])
		if _, ok := p.names[flag]; ok {
			return &DeclarationError{Names: names, err: ErrDuplicatedArgumentName}
		}
		a := &Argument{Name: flag, Required: required}
		p.names[flag] = a
		p.optionals = append(p.optionals, a)
	case len(names) == 2 && longFlag.MatchString(names[0]) && omittedFlag.MatchString(names[1]):
		flag, short := strings.ToLower(names[0][2:]), strings.ToLower(names[1][1:])
		_, dupFlag := p.names[flag]
		_, dupShort := p.names[short]
		if dupFlag || dupShort {
			return &DeclarationError{Names: names, err: ErrDuplicatedArgumentName}
		}
		a := &Argument{Name: flag, Short: short, Required: required}
		p.names[flag] = a
		p.names[short] = a
		p.optionals = append(p.optionals, a)
	default:
		return &DeclarationError{Names: names, err: ErrInvalidArgumentName}
	}
	return nil
}

// MustAddArgument is like AddArgument but panics on a declaration error.
func (p *Parser) MustAddArgument(required bool, names ...string) *Parser {
	if err := p.AddArgument(required, names...); err != nil {
		panic(err)
	}
	return p
}

// Positionals returns copies of the positional arguments in declaration order.
func (p *Parser) Positionals() []Argument {
	var res []Argument
	for _, a := range p.positionals {
		res = append(res, *a)
	}
	return res
}

// Optionals returns copies of the optional arguments in declaration order.
func (p *Parser) Optionals() []Argument {
	var res []Argument
	for _, a := range p.optionals {
		res = append(res, *a)
	}
	return res
}

// Tokenize runs the grammar over args without binding.
func (p *Parser) Tokenize(args []string) (Result, error) {
	return p.grammar.tokenize(args)
}

// Parse tokenizes args and binds them against the declared arguments.
func (p *Parser) Parse(args []string) (*Namespace, error) {
	res, err := p.grammar.tokenize(args)
	if err != nil {
		return nil, err
	}
	return p.Bind(res)
}

// Usage renders the declared arguments, e.g. "user [--reason|-r ...]".
func (p *Parser) Usage() string {
	var parts []string
	for i, a := range p.positionals {
		s := a.Name
		if i == len(p.positionals)-1 {
			s += "..."
		}
		if a.Required {
			s = "<" + s + ">"
		} else {
			s = "[" + s + "]"
		}
		parts = append(parts, s)
	}
	for _, a := range p.optionals {
		s := "--" + a.Name
		if a.Short != "" {
			s += "|-" + a.Short
		}
		s += " ..."
		if !a.Required {
			s = "[" + s + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
