package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/go-mclib/slate/pkg/layout"
	"github.com/go-mclib/slate/pkg/slate"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	faint = color.New(color.Faint)
)

var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate <layout.yml>...",
	Short: "Check layouts for errors",
	Long: `Parses and validates every layout. Custom actions are accepted unless
--strict is set, in which case only built-in actions are.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			if err := validate(path); err != nil {
				failed++
				red.Fprintf(out, "✗ %s\n", path)
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Fprintf(out, "    %s\n", line)
				}
				continue
			}
			green.Fprintf(out, "✓ %s\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d layouts invalid", failed, len(args))
		}
		faint.Fprintf(out, "%d layouts ok\n", len(args))
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "reject custom actions")
}

func validate(path string) error {
	l, err := layout.Load(path)
	if err != nil {
		return err
	}
	actions := map[string]slate.ClickCallback{}
	if !strict {
		for _, name := range l.CustomActions() {
			actions[name] = nil
		}
	}
	return l.Validate(actions)
}
