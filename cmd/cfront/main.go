package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:          "cfront",
		Short:        "An error-tolerant C parser front end",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	globals.register(rootCmd)

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
