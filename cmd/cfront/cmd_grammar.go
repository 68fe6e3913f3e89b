package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/dhamidi/cfront/c/lexer"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Show the lexical grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stdout.Write(lexer.GrammarSource())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the built-in C grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := lexer.Verify(); err != nil {
					printErrors(err)
					return err
				}
				fmt.Println("ok")
				return nil
			}

			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			grammar, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(err)
					return err
				}
			}
			fmt.Println("ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", lexer.StartProduction, "start production for verification (empty: only check syntax)")

	return cmd
}

// printErrors prints each element of the error lists ebnf returns.
func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Println(v.Index(i).Interface())
		}
	} else {
		fmt.Println(err)
	}
}
