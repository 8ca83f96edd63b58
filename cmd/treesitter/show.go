package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rhapsodyn/tree-sitter/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a compiled lex table in a human-readable form",
		Example: `  treesitter show lex_table.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read the lex table file %s: %w", args[0], err)
	}
	lexTab := &spec.CompiledLexTable{}
	err = json.Unmarshal(src, lexTab)
	if err != nil {
		return fmt.Errorf("Cannot parse the lex table file: %w", err)
	}

	pterm.DefaultBasicText.Printfln("Grammar: %v", lexTab.Name)
	pterm.DefaultBasicText.Printfln("States: %v (error state: %v)", len(lexTab.States), lexTab.ErrorStateID)
	pterm.DefaultBasicText.Printfln("Compression level: %v", lexTab.CompressionLevel)
	pterm.Println()

	{
		tab := pterm.TableData{{"Parse State", "Lex State"}}
		for i, id := range lexTab.LexStates {
			tab = append(tab, []string{fmt.Sprintf("%v", i), id.String()})
		}
		err := pterm.DefaultTable.WithHasHeader().WithData(tab).Render()
		if err != nil {
			return err
		}
		pterm.Println()
	}

	tab := pterm.TableData{{"State", "Token Start", "Default Action", "Ranges"}}
	for i, s := range lexTab.States {
		tokenStart := ""
		if s.TokenStart {
			tokenStart = "yes"
		}
		tab = append(tab, []string{
			fmt.Sprintf("%v", i),
			tokenStart,
			formatAction(lexTab, s.DefaultAction),
			formatEntries(lexTab, s.Entries),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(tab).Render()
}

func formatAction(lexTab *spec.CompiledLexTable, act *spec.ActionSpec) string {
	if act == nil {
		return "error"
	}
	switch act.Type {
	case spec.ActionTypeAdvance:
		return fmt.Sprintf("advance %v", act.State)
	case spec.ActionTypeAccept:
		name := fmt.Sprintf("#%v", act.Token)
		if t := act.Token.Int(); t >= 0 && t < len(lexTab.TokenNames) {
			name = lexTab.TokenNames[t]
		}
		if act.Precedence != 0 {
			return fmt.Sprintf("accept %v (prec %v)", name, act.Precedence)
		}
		return fmt.Sprintf("accept %v", name)
	}
	return string(act.Type)
}

func formatEntries(lexTab *spec.CompiledLexTable, entries []*spec.RangeEntrySpec) string {
	s := ""
	for i, e := range entries {
		if i > 0 {
			s += ", "
		}
		if e.From == e.To {
			s += fmt.Sprintf("%02X", e.From)
		} else {
			s += fmt.Sprintf("%02X..%02X", e.From, e.To)
		}
		s += fmt.Sprintf(" -> %v", formatAction(lexTab, e.Action))
	}
	return s
}
