package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/config"
	"github.com/strager/cfront/ctypes"
	"github.com/strager/cfront/lexer"
	"github.com/strager/cfront/parser"
	"github.com/strager/cfront/source"
)

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return cli.Exit(color.RedString("Error: no input files"), 1)
	}

	conf, err := loadConfig(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	sep, err := source.ParseSeparator(conf.Separator)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	verbosef(c, "Reading %s...", strings.Join(c.Args().Slice(), ", "))
	buf, err := source.ReadFiles(c.Args().Slice(), sep)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	tokens, err := lexer.Tokenize(buf.Data)
	if err != nil {
		return failure(buf, err)
	}
	verbosef(c, "Lexed %d tokens from %d bytes", len(tokens), len(buf.Data))

	if c.Bool("tokens") {
		for _, tok := range tokens {
			fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", buf.Locate(tok.Pos.Offset), tok.Type, tok)
		}
		return nil
	}

	reg := ctypes.NewRegistry()
	stmts, err := parseInput(parser.New(tokens, reg), conf.All)
	if err != nil {
		return failure(buf, err)
	}
	verbosef(c, "Parsed %d statements", len(stmts))

	for _, stmt := range stmts {
		if conf.Format == config.FormatText {
			fmt.Fprintln(c.App.Writer, ast.Format(stmt))
		} else {
			fmt.Fprintln(c.App.Writer, ast.ToSExpr(stmt))
		}
	}
	if conf.Types {
		if dump := reg.Dump(); dump != "" {
			fmt.Fprintln(c.App.Writer, dump)
		}
	}
	return nil
}

// parseInput parses the whole program, or only its first statement.
func parseInput(p *parser.Parser, all bool) ([]ast.Stmt, error) {
	if all {
		return p.ParseProgram()
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{stmt}, nil
}

// loadConfig reads the config file and applies explicitly set flags on
// top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("format") {
		conf.Format = c.String("format")
	}
	if c.IsSet("separator") {
		conf.Separator = c.String("separator")
	}
	if c.IsSet("all") {
		conf.All = c.Bool("all")
	}
	if c.IsSet("types") {
		conf.Types = c.Bool("types")
	}
	if err := conf.Validate(); err != nil {
		return config.Config{}, err
	}
	return conf, nil
}

// failure reports a lex or parse error at its file:line:col location.
func failure(buf *source.Buffer, err error) error {
	var parseErr *parser.Error
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &parseErr):
		return cli.Exit(color.RedString("%s: %s: %s", buf.Locate(parseErr.Pos.Offset), parseErr.Kind, parseErr.Msg), 1)
	case errors.As(err, &lexErr):
		return cli.Exit(color.RedString("%s: lex error: %s", buf.Locate(lexErr.Pos.Offset), lexErr.Msg), 1)
	default:
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
}

func verbosef(c *cli.Context, format string, args ...any) {
	if c.Bool("verbose") {
		fmt.Fprintln(c.App.ErrWriter, color.CyanString(format, args...))
	}
}
