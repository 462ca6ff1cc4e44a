package cmd

import (
	"fmt"

	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/parser"
	"github.com/spf13/cobra"
)

var parseExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a format string and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse an inline format string instead of reading a file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, _, err := readInput(parseExpr, args)
	if err != nil {
		return err
	}
	tree, err := parser.Parse(input, builtins.Default)
	if err != nil {
		return err
	}
	for _, tok := range tree.Tokens {
		fmt.Println(tok.String())
	}
	return nil
}
