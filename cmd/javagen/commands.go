package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/javagen/internal/generator"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <file> [file...]",
		Short: "Render YAML or TOML declaration documents",
		Example: `  javagen render -o src/main/java order.yaml roshambo.toml
  javagen render --package com.example --skip-java-lang widget.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, args, generator.Config{
				Mode:   generator.ModeDeclarations,
				Inputs: args,
			})
		},
	}
}

func newStructsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structs",
		Short: "Generate Java beans from the struct types of a Go package",
		Example: `  //go:generate javagen structs --package com.example.model -o ../java
  javagen structs --dir ./models --struct User,Address -p com.example.model`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			structs, err := cmd.Flags().GetStringSlice("struct")
			if err != nil {
				return err
			}
			return generate(cmd, args, generator.Config{
				Mode:    generator.ModeStructs,
				Dir:     dir,
				Structs: structs,
			})
		},
	}
	cmd.Flags().String("dir", ".", "directory of the Go package to convert")
	cmd.Flags().StringSlice("struct", nil, "struct names to convert (default all exported structs)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the javagen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "javagen %s\n", cmd.Root().Version)
		},
	}
}
