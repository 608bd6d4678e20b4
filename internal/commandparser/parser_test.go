package commandparser_test

import (
	"errors"
	"strings"

	"github.com/floriansw/discord-command-utils/internal/commandparser"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func inputErrorName(err error) string {
	var ie *commandparser.InputError
	Expect(errors.As(err, &ie)).To(BeTrue())
	return ie.Name
}

func lookup(ns *commandparser.Namespace, name string) []string {
	v, ok := ns.Lookup(name)
	Expect(ok).To(BeTrue(), name)
	return v
}

var _ = Describe("Parser", func() {
	var p *commandparser.Parser

	BeforeEach(func() {
		p = commandparser.New()
	})

	Describe("Tokenize", func() {
		It("splits positionals from flag groups", func() {
			res, err := p.Tokenize([]string{"alice", "--reason", "spam", "bot"})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Positionals).To(Equal([]string{"alice"}))
			Expect(res.Optionals).To(Equal([]commandparser.Group{{Flag: "reason", Values: []string{"spam", "bot"}}}))
		})

		It("lower-cases words and flags", func() {
			res, err := p.Tokenize([]string{"Alice", "-R", "SPAM"})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Positionals).To(Equal([]string{"alice"}))
			Expect(res.Optionals).To(Equal([]commandparser.Group{{Flag: "r", Values: []string{"spam"}}}))
		})

		It("keeps flags without values", func() {
			res, err := p.Tokenize([]string{"--force", "--reason", "x"})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Positionals).To(BeEmpty())
			Expect(res.Optionals).To(HaveLen(2))
			Expect(res.Optionals[0]).To(Equal(commandparser.Group{Flag: "force", Values: []string{}}))
		})

		It("accepts empty input", func() {
			res, err := p.Tokenize(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Positionals).To(BeEmpty())
			Expect(res.Optionals).To(BeEmpty())
		})

		DescribeTable("rejects malformed input",
			func(args ...string) {
				_, err := p.Tokenize(args)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, commandparser.ErrSyntax)).To(BeTrue())
				var se *commandparser.SyntaxError
				Expect(errors.As(err, &se)).To(BeTrue())
			},
			Entry("bare double dash", "--"),
			Entry("bare dash", "a", "-"),
			Entry("triple dash", "---x"),
			Entry("long short flag", "-ab"),
			Entry("flag with digits", "--foo1"),
			Entry("short flag glued to a value", "-f=1"),
			Entry("long flag glued to punctuation", "--foo.bar"),
			Entry("long flag followed by a comma", "--foo,x"),
			Entry("long flag with a non-ascii letter", "--fooé"),
			Entry("short flag with a non-ascii letter", "-fé", "x"),
		)
	})

	Describe("AddArgument", func() {
		It("declares positionals and optionals", func() {
			Expect(p.AddArgument(true, "user")).To(Succeed())
			Expect(p.AddArgument(false, "--reason", "-r")).To(Succeed())
			Expect(p.AddArgument(false, "--silent")).To(Succeed())

			Expect(p.Positionals()).To(Equal([]commandparser.Argument{{Name: "user", Required: true, Positional: true}}))
			Expect(p.Optionals()).To(Equal([]commandparser.Argument{
				{Name: "reason", Short: "r"},
				{Name: "silent"},
			}))
		})

		DescribeTable("rejects invalid names",
			func(names ...string) {
				err := p.AddArgument(false, names...)
				Expect(errors.Is(err, commandparser.ErrInvalidArgumentName)).To(BeTrue())
				var de *commandparser.DeclarationError
				Expect(errors.As(err, &de)).To(BeTrue())
			},
			Entry("no name"),
			Entry("digits", "user1"),
			Entry("short flag alone", "-r"),
			Entry("swapped pair", "-r", "--reason"),
			Entry("long alias", "--reason", "--why"),
			Entry("three names", "--reason", "-r", "-w"),
		)

		DescribeTable("rejects duplicated names",
			func(first []string, second []string) {
				Expect(p.AddArgument(false, first...)).To(Succeed())
				err := p.AddArgument(false, second...)
				Expect(errors.Is(err, commandparser.ErrDuplicatedArgumentName)).To(BeTrue())
			},
			Entry("positional twice", []string{"user"}, []string{"user"}),
			Entry("flag after positional", []string{"user"}, []string{"--user"}),
			Entry("long flag twice", []string{"--foo", "-f"}, []string{"--foo"}),
			Entry("short alias twice", []string{"--foo", "-f"}, []string{"--far", "-f"}),
			Entry("alias shadowing positional", []string{"f"}, []string{"--foo", "-f"}),
		)

		It("panics in MustAddArgument", func() {
			p.MustAddArgument(true, "user")
			Expect(func() { p.MustAddArgument(true, "user") }).To(Panic())
		})
	})

	Describe("Parse", func() {
		It("binds the end-to-end example", func() {
			p.MustAddArgument(true, "user").MustAddArgument(false, "--reason", "-r")
			ns, err := p.Parse([]string{"alice", "--reason", "spam", "bot"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ns.Names()).To(Equal([]string{"reason", "user"}))
			Expect(ns.String("user")).To(Equal("alice"))
			v, ok := ns.Lookup("reason")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]string{"spam", "bot"}))
		})

		It("fails when no positional token is given", func() {
			p.MustAddArgument(true, "user")
			ns, err := p.Parse([]string{})
			Expect(ns).To(BeNil())
			Expect(errors.Is(err, commandparser.ErrInsufficientRequiredArgument)).To(BeTrue())
			Expect(inputErrorName(err)).To(Equal("user"))
		})

		It("names the last positional even when it is optional", func() {
			p.MustAddArgument(true, "user").MustAddArgument(false, "channel")
			_, err := p.Parse([]string{"alice"})
			Expect(errors.Is(err, commandparser.ErrInsufficientRequiredArgument)).To(BeTrue())
			Expect(inputErrorName(err)).To(Equal("channel"))
		})

		It("accepts a missing optional tail when allowed", func() {
			p = commandparser.New(commandparser.AllowOptionalPositionals())
			p.MustAddArgument(true, "user").MustAddArgument(false, "channel")
			ns, err := p.Parse([]string{"alice"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ns.String("user")).To(Equal("alice"))
			Expect(ns.Has("channel")).To(BeFalse())

			_, err = p.Parse(nil)
			Expect(inputErrorName(err)).To(Equal("user"))
		})

		It("captures overflow tokens into the last positional", func() {
			p.MustAddArgument(true, "a").MustAddArgument(true, "b").MustAddArgument(true, "c")
			for m := 3; m <= 6; m++ {
				var tokens []string
				for i := 0; i < m; i++ {
					tokens = append(tokens, strings.Repeat("x", i+1))
				}
				ns, err := p.Parse(tokens)
				Expect(err).ToNot(HaveOccurred())
				Expect(lookup(ns, "a")).To(Equal([]string{tokens[0]}))
				Expect(lookup(ns, "b")).To(Equal([]string{tokens[1]}))
				Expect(lookup(ns, "c")).To(Equal(tokens[2:]))
			}
		})

		It("fails for every shortfall of positional tokens", func() {
			p.MustAddArgument(true, "a").MustAddArgument(true, "b").MustAddArgument(true, "c")
			for m := 0; m < 3; m++ {
				_, err := p.Parse(strings.Fields(strings.Repeat("x ", m)))
				Expect(errors.Is(err, commandparser.ErrInsufficientRequiredArgument)).To(BeTrue())
			}
			_, err := p.Parse([]string{"x", "y"})
			Expect(inputErrorName(err)).To(Equal("c"))
		})

		It("binds long and short spelling to the same key", func() {
			p.MustAddArgument(false, "--foo", "-f")
			long, err := p.Parse([]string{"--foo", "x"})
			Expect(err).ToNot(HaveOccurred())
			short, err := p.Parse([]string{"-f", "x"})
			Expect(err).ToNot(HaveOccurred())
			Expect(lookup(long, "foo")).To(Equal([]string{"x"}))
			Expect(lookup(short, "foo")).To(Equal([]string{"x"}))
			Expect(short.Has("f")).To(BeFalse())
		})

		It("leaves unsupplied optionals absent", func() {
			p.MustAddArgument(false, "--foo", "-f")
			ns, err := p.Parse(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(ns.Len()).To(Equal(0))
			Expect(ns.Has("foo")).To(BeFalse())
		})

		It("binds an empty value list for bare flags", func() {
			p.MustAddArgument(false, "--force")
			ns, err := p.Parse([]string{"--force"})
			Expect(err).ToNot(HaveOccurred())
			v, ok := ns.Lookup("force")
			Expect(ok).To(BeTrue())
			Expect(v).To(BeEmpty())
		})

		It("rejects undeclared flags", func() {
			p.MustAddArgument(false, "--foo")
			_, err := p.Parse([]string{"--bar", "1"})
			Expect(errors.Is(err, commandparser.ErrInvalidArgumentName)).To(BeTrue())
			Expect(inputErrorName(err)).To(Equal("bar"))
		})

		It("rejects positional names used as flags", func() {
			p.MustAddArgument(true, "user")
			_, err := p.Parse([]string{"alice", "--user", "bob"})
			Expect(inputErrorName(err)).To(Equal("user"))
			Expect(errors.Is(err, commandparser.ErrInvalidArgumentName)).To(BeTrue())
		})

		It("rejects duplicated flags", func() {
			p.MustAddArgument(false, "--foo", "-f")
			_, err := p.Parse([]string{"--foo", "1", "--foo", "2"})
			Expect(errors.Is(err, commandparser.ErrDuplicatedArgument)).To(BeTrue())
			Expect(inputErrorName(err)).To(Equal("foo"))

			_, err = p.Parse([]string{"--foo", "1", "-f", "1"})
			Expect(errors.Is(err, commandparser.ErrDuplicatedArgument)).To(BeTrue())
		})

		It("requires required optionals under either spelling", func() {
			p.MustAddArgument(true, "--reason", "-r")
			_, err := p.Parse(nil)
			Expect(errors.Is(err, commandparser.ErrInsufficientRequiredArgument)).To(BeTrue())
			Expect(inputErrorName(err)).To(Equal("reason"))

			ns, err := p.Parse([]string{"-r", "spam"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ns.String("reason")).To(Equal("spam"))
		})

		It("does not bind flags glued to values", func() {
			p.MustAddArgument(false, "--foo", "-f")
			ns, err := p.Parse([]string{"-f=1"})
			Expect(ns).To(BeNil())
			Expect(errors.Is(err, commandparser.ErrSyntax)).To(BeTrue())
		})

		It("accepts a flag at the end of input", func() {
			p.MustAddArgument(false, "--foo", "-f")
			ns, err := p.Parse([]string{"-f"})
			Expect(err).ToNot(HaveOccurred())
			Expect(lookup(ns, "foo")).To(BeEmpty())
		})

		It("propagates syntax errors", func() {
			p.MustAddArgument(true, "user")
			_, err := p.Parse([]string{"alice", "---"})
			Expect(errors.Is(err, commandparser.ErrSyntax)).To(BeTrue())
		})
	})

	Describe("Usage", func() {
		It("renders the declared arguments", func() {
			p.MustAddArgument(true, "user").
				MustAddArgument(false, "--reason", "-r").
				MustAddArgument(true, "--level")
			Expect(p.Usage()).To(Equal("<user...> [--reason|-r ...] --level ..."))
		})
	})

	Describe("NewWithGrammar", func() {
		It("loads an injected grammar", func() {
			g := "Whitespace \\s+\nLongFlag --[a-z]+(?:\\s|$)\nShortFlag -[a-z](?:\\s|$)\nWord [^\\s-]\\S*\n"
			gp, err := commandparser.NewWithGrammar(strings.NewReader(g))
			Expect(err).ToNot(HaveOccurred())
			gp.MustAddArgument(true, "user")
			ns, err := gp.Parse([]string{"alice"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ns.String("user")).To(Equal("alice"))
		})

		It("rejects grammars missing a rule", func() {
			_, err := commandparser.NewWithGrammar(strings.NewReader("Whitespace \\s+\nWord \\S+\n"))
			Expect(err).To(MatchError(ContainSubstring("missing rule LongFlag")))
		})

		It("rejects malformed lines", func() {
			_, err := commandparser.NewWithGrammar(strings.NewReader("Whitespace\n"))
			Expect(err).To(HaveOccurred())
		})
	})
})
