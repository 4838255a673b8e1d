package cmd

import (
	"fmt"
	"os"

	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/constants"
	"github.com/exprlang/exprlang/internal/functions"
	"github.com/exprlang/exprlang/internal/keywords"
	"github.com/exprlang/exprlang/internal/lexer"
	"github.com/exprlang/exprlang/internal/parser"
	"github.com/exprlang/exprlang/internal/units"
	"github.com/spf13/cobra"
)

var (
	parseExpr    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an expression and print its AST",
	Long: `Run the full lexer (both passes) and the parser over an expression,
printing the resulting AST.

If no file is given, reads from stdin. Use -e to parse an inline
expression instead. Use --dump-ast for an indented node-by-node view
instead of the canonical printed form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse an inline expression instead of reading from file/stdin")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(parseExpr, args)
	if err != nil {
		return err
	}

	prog, errs := parseProgram(input)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.WithSource(input).Format(false))
		}
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
	}

	if parseDumpAST {
		dumpASTNode(prog, 0)
	} else {
		fmt.Println(prog.String())
	}
	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.Sequence:
		fmt.Printf("%sSequence (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr (%s postfix=%v)\n", pad, n.Operator, n.Postfix)
		dumpASTNode(n.Operand, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr (%d args)\n", pad, len(n.Args))
		dumpASTNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.NumberLiteral:
		fmt.Printf("%sNumberLiteral: %s\n", pad, n.Text)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", pad, n.Value)
	case *ast.BooleanLiteral:
		fmt.Printf("%sBooleanLiteral: %v\n", pad, n.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Name)
	case *ast.Assignment:
		fmt.Printf("%sAssignment: %s\n", pad, n.Name)
		dumpASTNode(n.Value, indent+1)
	case *ast.FunctionDef:
		fmt.Printf("%sFunctionDef: %s(%v)\n", pad, n.Name, n.Params)
		dumpASTNode(n.Body, indent+1)
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}

// parseProgram runs both lexer passes and the parser, returning the
// program and any accumulated errors across all three stages.
func parseProgram(input string) (*ast.Program, []error) {
	s := lexer.New(input)
	raw, lexErrs := s.Scan()
	var errs []error
	for _, e := range lexErrs {
		errs = append(errs, e)
	}
	if len(lexErrs) > 0 {
		return nil, errs
	}

	proc := lexer.NewProcessor(functions.NewDefault(), keywords.NewDefault(), constants.NewDefault(), units.NewDefault())
	toks := proc.Process(raw)

	p := parser.New(toks)
	prog, parseErrs := p.Parse()
	for _, e := range parseErrs {
		errs = append(errs, e)
	}
	if len(parseErrs) > 0 {
		return nil, errs
	}
	return prog, nil
}
