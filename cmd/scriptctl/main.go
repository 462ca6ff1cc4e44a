// Command scriptctl is a small CLI around the embedded expression
// language: lex/parse a single format string, or resolve a whole YAML
// document of them, for debugging outside of the media-subscription host.
package main

import (
	"fmt"
	"os"

	"github.com/jmbannon/ytdl-sub/cmd/scriptctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
