package commandparser

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

//go:embed grammar.lex
var defaultGrammar string

var requiredRules = []string{"Whitespace", "LongFlag", "ShortFlag", "Word"}

type statement struct {
	Positionals []string    `parser:"@Word*"`
	Optionals   []*optional `parser:"@@*"`
}

type optional struct {
	Flag   string   `parser:"@(LongFlag | ShortFlag)"`
	Values []string `parser:"@Word*"`
}

// Group is one flag of the input together with the words following it.
type Group struct {
	Flag   string
	Values []string
}

// Result is the tokenized form of a command line.
type Result struct {
	Positionals []string
	Optionals   []Group
}

type grammar struct {
	parser *participle.Parser[statement]
}

var compileDefault = sync.OnceValues(func() (*grammar, error) {
	return compileGrammar(strings.NewReader(defaultGrammar))
})

func readRules(r io.Reader) ([]lexer.SimpleRule, error) {
	var rules []lexer.SimpleRule
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		i := strings.IndexAny(text, " \t")
		if i < 0 {
			return nil, fmt.Errorf("grammar line %d: expected <name> <pattern>", line)
		}
		name, pattern := text[:i], strings.TrimSpace(text[i:])
		if pattern == "" {
			return nil, fmt.Errorf("grammar line %d: expected <name> <pattern>", line)
		}
		rules = append(rules, lexer.SimpleRule{Name: name, Pattern: pattern})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, n := range requiredRules {
		found := false
		for _, r := range rules {
			if r.Name == n {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("grammar: missing rule %s", n)
		}
	}
	return rules, nil
}

func compileGrammar(r io.Reader) (*grammar, error) {
	rules, err := readRules(r)
	if err != nil {
		return nil, err
	}
	def, err := lexer.NewSimple(rules)
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	p, err := participle.Build[statement](
		participle.Lexer(def),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	return &grammar{parser: p}, nil
}

// tokenize joins args with single spaces and splits them into positionals and flag groups.
func (g *grammar) tokenize(args []string) (Result, error) {
	input := strings.Join(args, " ")
	res := Result{}
	if strings.TrimSpace(input) == "" {
		return res, nil
	}
	st, err := g.parser.ParseString("", input)
	if err != nil {
		return Result{}, &SyntaxError{Input: input, err: err}
	}
	for _, w := range st.Positionals {
		res.Positionals = append(res.Positionals, strings.ToLower(w))
	}
	for _, o := range st.Optionals {
		grp := Group{Flag: strings.ToLower(strings.TrimLeft(strings.TrimSpace(o.Flag), "-")), Values: []string{}}
		for _, v := range o.Values {
			grp.Values = append(grp.Values, strings.ToLower(v))
		}
		res.Optionals = append(res.Optionals, grp)
	}
	return res, nil
}
