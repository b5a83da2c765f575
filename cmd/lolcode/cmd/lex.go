package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lolcode-go/lolcode/internal/diag"
	"github.com/lolcode-go/lolcode/internal/lexer"
)

var (
	showPos bool
	asJSON  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a LOLCODE file or expression",
	Long: `Tokenize (lex) a LOLCODE program and print the resulting tokens.

Examples:
  # Tokenize a script file
  lolcode lex script.lol

  # Tokenize inline source
  lolcode lex -e 'HAI 1.2 KTHXBYE'

  # Show token positions
  lolcode lex --show-pos script.lol

  # Emit a JSON token dump
  lolcode lex --json script.lol`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&asJSON, "json", false, "emit a JSON token dump instead of plain text")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, lexErrs := lexer.Tokenize(input)

	if asJSON {
		out, err := diag.TokensJSON(toks)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		for _, t := range toks {
			if showPos {
				fmt.Printf("[%-12s] %q @%s\n", t.Kind, t.Lexeme, t.Pos)
			} else {
				fmt.Printf("[%-12s] %q\n", t.Kind, t.Lexeme)
			}
		}
	}

	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("lexing reported %d error(s)", len(lexErrs))
	}
	return nil
}
