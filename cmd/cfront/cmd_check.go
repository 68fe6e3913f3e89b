package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report syntax errors in C files",
		Long: `Parse the given files, or every source file of the project when none are
given, and print their diagnostics. Files are parsed concurrently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := globals.loadProject()
			if err != nil {
				return err
			}
			cfg, err := proj.Config()
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths, err = proj.SourceFiles()
				if err != nil {
					return err
				}
			}

			files, err := workspace.CheckFiles(cmd.Context(), cfg, paths, jobs)
			if err != nil {
				return err
			}
			return report(files, cfg)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files parsed at once")

	return cmd
}

func report(files []*workspace.File, cfg parser.Config) error {
	r := parser.NewErrorReporter(cfg.MaxErrors)
	var errs, warnings, failed int
	for _, f := range files {
		if f.Err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", f.Err)
			failed++
			continue
		}
		for _, d := range f.Diagnostics {
			fmt.Fprint(os.Stderr, r.Format(d, f.Content))
		}
		errs += f.Errors()
		warnings += f.Warnings()
	}

	fmt.Printf("%d files, %d errors, %d warnings\n", len(files), errs, warnings)
	if errs > 0 || failed > 0 {
		return fmt.Errorf("check failed")
	}
	return nil
}
