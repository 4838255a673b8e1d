package cmd

import (
	"fmt"
	"os"

	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/evaluator"
	"github.com/exprlang/exprlang/internal/registry"
	"github.com/spf13/cobra"
)

var (
	runExpr       string
	runDumpAST    bool
	runForceFloat bool
	runAngleUnit  string
	runMaxRecur   int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate an expression and print the resulting value",
	Long: `Run the full lex -> parse -> evaluate pipeline over an expression and
print the resulting value in its canonical form.

If no file is given, reads from stdin. Use -e to evaluate an inline
expression instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runExpr, "eval", "e", "", "evaluate an inline expression instead of reading from file/stdin")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed AST before evaluating")
	runCmd.Flags().BoolVar(&runForceFloat, "force-double", false, "bypass rational arithmetic, degrading every result to Double")
	runCmd.Flags().StringVar(&runAngleUnit, "angle-unit", "radians", "angle unit for trig builtins: radians|degrees|gradians")
	runCmd.Flags().IntVar(&runMaxRecur, "max-recursion", 1000, "user-function/lambda recursion depth ceiling")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(runExpr, args)
	if err != nil {
		return err
	}

	prog, errs := parseProgram(input)
	if len(errs) > 0 {
		for _, e := range errs {
			printEngineErr(e, input)
		}
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
	}

	if runDumpAST {
		dumpASTNode(prog, 0)
		fmt.Println()
	}

	angle, err := parseAngleUnit(runAngleUnit)
	if err != nil {
		return err
	}

	ctx := evaluator.New(
		evaluator.WithForceDoubleArithmetic(runForceFloat),
		evaluator.WithAngleUnit(angle),
		evaluator.WithMaxRecursionDepth(runMaxRecur),
	)

	result, err := ctx.Run(prog)
	if err != nil {
		printEngineErr(err, input)
		return fmt.Errorf("evaluation of %s failed", filename)
	}

	fmt.Println(result.String())
	return nil
}

func parseAngleUnit(s string) (registry.AngleUnit, error) {
	switch s {
	case "radians", "":
		return registry.Radians, nil
	case "degrees":
		return registry.Degrees, nil
	case "gradians":
		return registry.Gradians, nil
	default:
		return 0, fmt.Errorf("unknown angle unit %q (want radians|degrees|gradians)", s)
	}
}

// printEngineErr renders either an *errors.EngineError (attaching the
// source excerpt) or any other error verbatim.
func printEngineErr(err error, source string) {
	if ee, ok := err.(*errors.EngineError); ok {
		fmt.Fprintln(os.Stderr, ee.WithSource(source).Format(false))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
