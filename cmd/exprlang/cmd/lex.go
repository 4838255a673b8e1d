package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/exprlang/exprlang/internal/constants"
	"github.com/exprlang/exprlang/internal/functions"
	"github.com/exprlang/exprlang/internal/keywords"
	"github.com/exprlang/exprlang/internal/lexer"
	"github.com/exprlang/exprlang/internal/units"
	"github.com/spf13/cobra"
)

var (
	lexExpr    string
	showPos    bool
	showType   bool
	skipPass2  bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an expression and print the resulting tokens",
	Long: `Run the lexer's two passes (scan, then split/classify/implicit-
multiplication) over an expression and print the resulting tokens.

If no file is given, reads from stdin. Use -e to tokenize an inline
expression instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize an inline expression instead of reading from file/stdin")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", true, "show token type names")
	lexCmd.Flags().BoolVar(&skipPass2, "pass1-only", false, "show raw Pass-1 tokens without Pass-2 processing")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only lexer errors")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(lexExpr, args)
	if err != nil {
		return err
	}

	s := lexer.New(input)
	raw, errs := s.Scan()

	if onlyErrors {
		if len(errs) == 0 {
			return nil
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.WithSource(input).Format(false))
		}
		return fmt.Errorf("found %d lexer error(s)", len(errs))
	}

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.WithSource(input).Format(false))
	}
	if len(errs) > 0 {
		return fmt.Errorf("found %d lexer error(s)", len(errs))
	}

	toks := raw
	if !skipPass2 {
		proc := lexer.NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
		toks = proc.Process(raw)
	}

	for _, tok := range toks {
		printToken(tok)
	}

	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Literal == "" {
		out += fmt.Sprintf(" %s", tok.Type)
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	if tok.Synthetic {
		out += " (synthetic)"
	}
	fmt.Println(out)
}

func readInput(inlineExpr string, args []string) (input, filename string, err error) {
	if inlineExpr != "" {
		return inlineExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
