package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/cfront/c/lexer"
	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/c/token"
	"github.com/dhamidi/cfront/project"
	"github.com/spf13/cobra"
)

// globalOptions override the project file for a single invocation.
type globalOptions struct {
	root       string
	std        string
	maxErrors  int
	maxDepth   int
	noRecovery bool
}

var globals globalOptions

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.root, "project", "C", "", "project directory (default: nearest directory with "+project.FileName+")")
	flags.StringVar(&o.std, "std", "", "C standard (c89, c99, c11, c17, c23)")
	flags.IntVar(&o.maxErrors, "max-errors", 0, "stop reporting after this many diagnostics")
	flags.IntVar(&o.maxDepth, "max-depth", 0, "maximum syntactic nesting depth")
	flags.BoolVar(&o.noRecovery, "no-recovery", false, "stop at the first syntax error")
}

func (o *globalOptions) loadProject() (*project.Project, error) {
	root := o.root
	if root == "" {
		dir, err := project.Find(".")
		if err != nil {
			return nil, fmt.Errorf("find project: %w", err)
		}
		root = dir
	}
	proj, err := project.LoadFrom(root)
	if err != nil {
		return nil, err
	}

	if o.std != "" {
		proj.Std = o.std
	}
	if o.maxErrors > 0 {
		proj.Parser.MaxErrors = o.maxErrors
	}
	if o.maxDepth > 0 {
		proj.Parser.MaxDepth = o.maxDepth
	}
	if o.noRecovery {
		proj.Parser.Recovery = false
	}
	if _, err := proj.Config(); err != nil {
		return nil, err
	}
	return proj, nil
}

func (o *globalOptions) config() (parser.Config, error) {
	proj, err := o.loadProject()
	if err != nil {
		return parser.Config{}, err
	}
	return proj.Config()
}

// readSource reads path, or standard input when path is "-".
func readSource(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "<stdin>", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}

func tokenize(src []byte, name string, std token.Standard, trivia bool) ([]token.Token, error) {
	opts := []lexer.Option{lexer.WithFile(name), lexer.WithStandard(std)}
	if trivia {
		opts = append(opts, lexer.WithTrivia())
	}
	toks, err := lexer.Tokenize(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return toks, nil
}
