package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/jmbannon/ytdl-sub/internal/hostfuncs"
	"github.com/jmbannon/ytdl-sub/internal/presetcfg"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/script"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [preset.yaml]",
	Short: "Load a flat YAML format-string document and print every resolved value",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
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
	return printResolved(s, script.ResolveOptions{Update: true})
}

func printResolved(s *script.Script, opts script.ResolveOptions) error {
	out, err := s.Resolve(opts)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(out))
	for name := range out {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %s\n", name, out[name].Display())
	}
	return nil
}
