package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/workspace"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-check project files as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := globals.loadProject()
			if err != nil {
				return err
			}
			ws, err := workspace.New(proj)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if err := ws.ScanAll(ctx); err != nil {
				return err
			}
			r := parser.NewErrorReporter(ws.Config().MaxErrors)
			for _, path := range ws.Paths() {
				printFile(r, ws.GetFile(path))
			}

			w, err := workspace.NewWatcher(ws)
			if err != nil {
				return fmt.Errorf("watch %s: %w", proj.RootDir, err)
			}
			fmt.Printf("watching %s\n", proj.RootDir)

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			for {
				select {
				case change, ok := <-w.Changes():
					if !ok {
						return <-done
					}
					if change.File == nil {
						fmt.Printf("%s: removed\n", change.Path)
						continue
					}
					printFile(r, change.File)
				case err := <-w.Errors():
					fmt.Fprintf(os.Stderr, "watch: %s\n", err)
				}
			}
		},
	}
}

func printFile(r *parser.ErrorReporter, f *workspace.File) {
	if f.Err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", f.Err)
		return
	}
	for _, d := range f.Diagnostics {
		fmt.Fprint(os.Stderr, r.Format(d, f.Content))
	}
	fmt.Printf("%s: %d errors, %d warnings\n", f.Path, f.Errors(), f.Warnings())
}
