package main

import (
	"os"

	"github.com/dhamidi/cfront/format"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var asJSON bool
	var trivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a C file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := globals.config()
			if err != nil {
				return err
			}
			src, name, err := readSource(args[0])
			if err != nil {
				return err
			}
			toks, err := tokenize(src, name, cfg.Standard, trivia)
			if err != nil {
				return err
			}

			enc := format.NewTokenEncoder(os.Stdout)
			if asJSON {
				enc = format.NewTokenJSONEncoder(os.Stdout)
			}
			return enc.Encode(toks)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write tokens as a JSON array")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include comments and preprocessor lines")

	return cmd
}
