package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/makeover/cmd/makeover"
	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/ui/output/styles"
)

func main() {
	rootCmd := makeover.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(makeover.MsgErrorFormat, err)))

		os.Exit(errors.ExitCode(err))
	}
}
