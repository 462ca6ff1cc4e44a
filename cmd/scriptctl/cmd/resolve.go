package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmbannon/ytdl-sub/internal/hostfuncs"
	"github.com/jmbannon/ytdl-sub/internal/presetcfg"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/script"
	"github.com/spf13/cobra"
)

var resolveUnresolvable string

var resolveCmd = &cobra.Command{
	Use:   "resolve [preset.yaml]",
	Short: "Resolve a YAML format-string document, optionally skipping some variables",
	Long: `Resolve runs the dependency resolver over a preset document exactly as
"run" does, but exposes --unresolvable so the unresolvable skip-set
(spec.md §4.5) can be exercised from the command line: any variable that
transitively depends on a name in --unresolvable is skipped rather than
evaluated.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveUnresolvable, "unresolvable", "", "comma-separated variable names to skip")
}

func runResolve(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	reg := builtins.NewRegistry()
	builtins.RegisterAll(reg)
	hostfuncs.Register(reg)

	s, err := presetcfg.LoadWithRegistry(data, reg)
	if err != nil {
		return err
	}

	var unresolvable map[string]bool
	if resolveUnresolvable != "" {
		unresolvable = make(map[string]bool)
		for _, name := range strings.Split(resolveUnresolvable, ",") {
			unresolvable[strings.TrimSpace(name)] = true
		}
	}

	return printResolved(s, script.ResolveOptions{Unresolvable: unresolvable, Update: true})
}
