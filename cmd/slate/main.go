// Command slate previews and validates slate layout files.
package main

import (
	"os"

	"github.com/go-mclib/slate/pkg/helpers"
	"github.com/spf13/cobra"
)

var flags helpers.Flags

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "Preview and validate inventory GUI layouts",
	Long: `Slate builds inventory screens from YAML layouts.

  preview   - open a layout in the terminal and click through it
  validate  - check layouts for errors`,
	SilenceUsage: true,
}

func init() {
	helpers.RegisterFlags(rootCmd, &flags)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
