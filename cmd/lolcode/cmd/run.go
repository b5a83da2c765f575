package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lolcode-go/lolcode/internal/config"
	"github.com/lolcode-go/lolcode/internal/interp"
	"github.com/lolcode-go/lolcode/internal/lexer"
	"github.com/lolcode-go/lolcode/internal/lolerr"
)

var (
	evalExpr string
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a LOLCODE file or expression",
	Long: `Execute a LOLCODE program from a file or inline source.

Examples:
  # Run a script file
  lolcode run script.lol

  # Evaluate inline source
  lolcode run -e 'HAI 1.2
VISIBLE "HAI WORLD!"
KTHXBYE'

  # Run with a per-statement execution trace
  lolcode run --trace script.lol`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading a file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
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

	var inputPort interp.Input
	if cfg.GimmehSource != "" {
		answers, err := readGimmehAnswers(cfg.GimmehSource)
		if err != nil {
			return err
		}
		inputPort = interp.NewScriptedInput(answers)
	} else {
		inputPort = interp.NewReaderInput(bufio.NewReader(os.Stdin), os.Stdout)
	}

	host := interp.Host{
		Output: interp.NewWriterOutput(os.Stdout),
		Input:  inputPort,
	}
	ip := interp.New(toks, host, input, filename)
	if cfg.VisibleNewline != nil {
		ip.SetDefaultNewline(*cfg.VisibleNewline)
	}
	if trace || cfg.Trace {
		tracer := log.New(os.Stderr, "[trace] ", 0)
		ip.SetTrace(tracer.Printf)
	}

	if err := ip.Run(); err != nil {
		if lerr, ok := err.(*lolerr.Error); ok {
			fmt.Fprintln(os.Stderr, lerr.Format(true))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("execution failed")
	}
	return nil
}

// readGimmehAnswers loads one scripted GIMMEH answer per line from path
// (an empty line is an empty answer; trailing empty lines are dropped),
// for config.GimmehSource-driven non-interactive runs.
func readGimmehAnswers(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gimmeh source %s: %w", path, err)
	}
	var answers []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		answers = append(answers, line)
	}
	for len(answers) > 0 && answers[len(answers)-1] == "" {
		answers = answers[:len(answers)-1]
	}
	return answers, nil
}

// readSource resolves the program text and a display filename from either
// the --eval flag or a single positional file argument.
func readSource(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline source")
}
