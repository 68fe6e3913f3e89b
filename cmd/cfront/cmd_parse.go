package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var entry string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a C file and dump its syntax tree",
		Long: `Parse a C source file (or - for standard input) and write the syntax tree
to standard output. Diagnostics go to standard error; the command fails when
any error was reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := globals.config()
			if err != nil {
				return err
			}
			src, name, err := readSource(args[0])
			if err != nil {
				return err
			}
			toks, err := tokenize(src, name, cfg.Standard, false)
			if err != nil {
				return err
			}

			p, err := parser.New(cfg, parser.WithFile(name))
			if err != nil {
				return err
			}
			ts := parser.NewTokenStream(toks)
			var node *parser.Node
			switch entry {
			case "unit":
				node, _ = p.Parse(ts)
			case "expr":
				node, _ = p.ParseExpression(ts)
			case "stmt":
				node, _ = p.ParseStatement(ts)
			default:
				return fmt.Errorf("unknown entry point: %s (expected unit, expr or stmt)", entry)
			}

			enc, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			doc := &format.Document{File: name, Standard: cfg.Standard, AST: node}
			if outputFormat == "json" {
				doc.Diagnostics = p.Diagnostics()
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if !quiet {
				if err := p.Reporter().Print(os.Stderr, src); err != nil {
					return err
				}
			}
			if p.HasErrors() {
				return fmt.Errorf("%s: %d errors", name, len(p.Errors()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexpr", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().StringVarP(&entry, "entry", "e", "unit", "grammar entry point (unit, expr, stmt)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print diagnostics")

	return cmd
}
