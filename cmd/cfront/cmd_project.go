package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show project settings",
		Long:  `Display the project configuration, its source files and the files defining main.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject()
		},
	}

	return cmd
}

func runProject() error {
	proj, err := globals.loadProject()
	if err != nil {
		return err
	}
	cfg, err := proj.Config()
	if err != nil {
		return err
	}

	configFile := proj.ConfigFile
	if configFile == "" {
		configFile = "(defaults)"
	}
	fmt.Printf("Root:       %s\n", proj.RootDir)
	fmt.Printf("Config:     %s\n", configFile)
	fmt.Printf("Standard:   %s\n", cfg.Standard)
	fmt.Printf("Max errors: %d\n", cfg.MaxErrors)
	fmt.Printf("Max depth:  %d\n", cfg.MaxDepth)
	fmt.Printf("Recovery:   %t\n", cfg.Recovery)

	files, err := proj.SourceFiles()
	if err != nil {
		fmt.Printf("Files:      error: %v\n", err)
	} else {
		fmt.Printf("Files:      %d source files\n", len(files))
	}

	entrypoints, err := proj.FindEntrypoints()
	if err != nil {
		return err
	}
	fmt.Printf("\nEntrypoints:\n")
	for _, ep := range entrypoints {
		fmt.Printf("  %s\n", ep.Pos)
	}

	return nil
}
