package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/makeover/cmd/makeover"
	"github.com/spf13/cobra"
)

// script describes one completion flavor and the file name packagers expect.
type script struct {
	file string
	gen  func(cmd *cobra.Command, w io.Writer) error
}

var scripts = map[string]script{
	"bash": {"makeover.bash", func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenBashCompletionV2(w, true)
	}},
	"zsh": {"_makeover", func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenZshCompletion(w)
	}},
	"fish": {"makeover.fish", func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenFishCompletion(w, true)
	}},
	"powershell": {"makeover.ps1", func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenPowerShellCompletionWithDesc(w)
	}},
}

func shellNames() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeAll generates every flavor into dir.
func writeAll(rootCmd *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range shellNames() {
		s := scripts[name]
		f, err := os.Create(filepath.Join(dir, s.file))
		if err != nil {
			return err
		}
		if err := s.gen(rootCmd, f); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <%v|all> [dir]\n", os.Args[0], shellNames())
		os.Exit(1)
	}

	rootCmd := makeover.NewRootCmd()
	shell := os.Args[1]

	if shell == "all" {
		dir := "completions"
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		if err := writeAll(rootCmd, dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	s, ok := scripts[shell]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported shells: %v\n", shell, shellNames())
		os.Exit(1)
	}
	if err := s.gen(rootCmd, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		os.Exit(1)
	}
}
