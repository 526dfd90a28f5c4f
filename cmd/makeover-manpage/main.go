package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/makeover/cmd/makeover"
	"github.com/arthur-debert/makeover/internal/version"
)

func main() {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "makeover-manpage [dir]",
		Short: "Generate makeover's man page, or markdown docs with --markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootCmd := makeover.NewRootCmd()

			if markdown {
				dir := "docs"
				if len(args) == 1 {
					dir = args[0]
				}
				if err := os.MkdirAll(dir, 0755); err != nil {
					return err
				}
				return doc.GenMarkdownTree(rootCmd, dir)
			}

			header := &doc.GenManHeader{
				Title:   "MAKEOVER",
				Section: "1",
				Source:  "makeover " + version.Version,
				Manual:  "makeover manual",
			}
			if len(args) == 0 {
				return doc.GenMan(rootCmd, header, os.Stdout)
			}
			if err := os.MkdirAll(args[0], 0755); err != nil {
				return err
			}
			return doc.GenManTree(rootCmd, header, args[0])
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Write markdown pages instead of a man page")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating documentation: %v\n", err)
		os.Exit(1)
	}
}
