package cmd

import (
	"fmt"
	"os"

	"github.com/jmbannon/ytdl-sub/internal/script/lexer"
	"github.com/spf13/cobra"
)

var (
	lexExpr    string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a format string and print the resulting tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize an inline format string instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
}

func runLex(_ *cobra.Command, args []string) error {
	input, _, err := readInput(lexExpr, args)
	if err != nil {
		return err
	}

	for _, tok := range lexer.Lex(input) {
		if lexShowPos {
			fmt.Printf("[%-10s] %q @%d:%d\n", tok.Type, tok.Literal, tok.Line, tok.Column)
		} else {
			fmt.Printf("[%-10s] %q\n", tok.Type, tok.Literal)
		}
		if tok.Type == lexer.EOF {
			break
		}
	}
	return nil
}

func readInput(expr string, args []string) (input, filename string, err error) {
	if expr != "" {
		return expr, "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for an inline format string")
}
