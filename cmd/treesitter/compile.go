package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rhapsodyn/tree-sitter/grammar"
	"github.com/rhapsodyn/tree-sitter/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	compLv *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile the lexical part of a grammar into a lex table",
		Example: `  treesitter compile grammar.json -o lex_table.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.compLv = cmd.Flags().Int("comp-lv", grammar.CompressionLevelMax, "compression level of the advance table")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var gramPath string
	if len(args) > 0 {
		gramPath = args[0]
	}
	gramSpec, err := readGrammarSpec(gramPath)
	if err != nil {
		return err
	}

	b := grammar.Builder{
		Spec: gramSpec,
	}
	gram, ptab, err := b.Build()
	if err != nil {
		return err
	}

	lexTab, err := grammar.Compile(gram, ptab, grammar.CompressionLevel(*compileFlags.compLv))
	if err != nil {
		return err
	}

	err = writeCompiledLexTable(lexTab, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write an output file: %w", err)
	}

	return nil
}

func readGrammarSpec(path string) (*spec.GrammarSpec, error) {
	var src []byte
	if path == "" {
		var err error
		src, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		src, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot read the grammar file %s: %w", path, err)
		}
	}

	gramSpec := &spec.GrammarSpec{}
	err := json.Unmarshal(src, gramSpec)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse the grammar file: %w", err)
	}
	return gramSpec, nil
}

func writeCompiledLexTable(lexTab *spec.CompiledLexTable, path string) error {
	var w io.Writer
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	b, err := json.Marshal(lexTab)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))
	return nil
}
