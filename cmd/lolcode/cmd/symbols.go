package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lolcode-go/lolcode/internal/diag"
	"github.com/lolcode-go/lolcode/internal/interp"
	"github.com/lolcode-go/lolcode/internal/lexer"
	"github.com/lolcode-go/lolcode/internal/value"
)

var query string

var symbolsCmd = &cobra.Command{
	Use:   "symbols [file]",
	Short: "Run a LOLCODE file and dump its final variable bindings",
	Long: `Execute a LOLCODE program and print the top-level environment's
variable bindings once it finishes, as plain text or as JSON.

Examples:
  # Dump final bindings as plain text
  lolcode symbols script.lol

  # Dump as JSON
  lolcode symbols --json script.lol

  # Dump a single binding's value with a gjson query path
  lolcode symbols --json --query COUNTER.value script.lol`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)

	symbolsCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading a file")
	symbolsCmd.Flags().BoolVar(&asJSON, "json", false, "emit a JSON symbol-table dump instead of plain text")
	symbolsCmd.Flags().StringVar(&query, "query", "", "gjson path to extract from the JSON dump (implies --json)")
}

func runSymbols(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, lexErrs := lexer.Tokenize(input)
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}

	host := interp.Host{
		Output: interp.NewWriterOutput(os.Stdout),
		Input:  interp.NewReaderInput(bufio.NewReader(os.Stdin), os.Stdout),
	}
	ip := interp.New(toks, host, input, filename)
	if err := ip.Run(); err != nil {
		return err
	}

	bindings := ip.Symbols()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	if asJSON || query != "" {
		dumps := make([]diag.SymbolDump, 0, len(names))
		for _, name := range names {
			v := bindings[name]
			dumps = append(dumps, diag.SymbolDump{Name: name, Kind: v.Kind(), Value: value.ToString(v)})
		}
		out, err := diag.SymbolsJSON(dumps)
		if err != nil {
			return err
		}
		if query != "" {
			result, err := diag.Query(out, query)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		}
		fmt.Println(string(out))
		return nil
	}

	for _, name := range names {
		v := bindings[name]
		fmt.Printf("%s: %s = %s\n", name, v.Kind(), v.String())
	}
	return nil
}
