package main

import (
	"fmt"
	"log"

	"github.com/go-mclib/slate/pkg/helpers"
	"github.com/go-mclib/slate/pkg/layout"
	"github.com/go-mclib/slate/pkg/preview"
	"github.com/go-mclib/slate/pkg/slate"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <layout.yml>",
	Short: "Open a layout in the terminal",
	Long: `Builds the layout and opens it for a simulated player. Custom actions
are replaced by stubs that only log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := layout.Load(args[0])
		if err != nil {
			return err
		}

		reg := slate.NewRegistry()
		v := preview.NewViewer(flags.Player, &preview.Recorder{}, nil)
		reg.Connect(v)
		m := preview.New(reg, v, flags.Tick)
		logger := helpers.NewLogger(flags, preview.NewWriter(m))
		m.SetLogger(logger)

		s, err := l.Build(layout.BuildOptions{
			Actions: stubActions(l.CustomActions(), logger),
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		if !reg.Open(v, s) {
			return fmt.Errorf("failed to open %s", args[0])
		}

		_, err = preview.Start(m).Run()
		return err
	},
}

func stubActions(names []string, logger *log.Logger) map[string]slate.ClickCallback {
	actions := make(map[string]slate.ClickCallback, len(names))
	for _, name := range names {
		actions[name] = func(s *slate.Slate, _ slate.Tile, ctx slate.ClickContext) {
			logger.Printf("preview: %s triggered %q on slot %d of %s", ctx.Viewer.Name(), name, ctx.Slot, s)
		}
	}
	return actions
}
