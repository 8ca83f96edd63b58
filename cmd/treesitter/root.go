package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treesitter",
	Short: "Generate a portable lex table from the lexical part of a grammar",
	Long: `treesitter provides two features:
- Generates a portable lex table from the lexical part of a grammar and the
  expected inputs of each parse state.
- Prints a generated lex table in a human-readable form.
  This feature is primarily aimed at debugging the grammar.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
