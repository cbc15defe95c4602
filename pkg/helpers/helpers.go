package helpers

import (
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Flags holds common CLI flags for slate tools.
type Flags struct {
	LogFile string
	Verbose bool
	Tick    time.Duration
	Player  string
}

// RegisterFlags registers the standard CLI flags on cmd and its subcommands.
func RegisterFlags(cmd *cobra.Command, f *Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.LogFile, "log-file", "o", "", "also write logs to this file (rotated)")
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "verbose logging")
	pf.DurationVar(&f.Tick, "tick", 50*time.Millisecond, "interval between slate ticks")
	pf.StringVarP(&f.Player, "player", "p", "Steve", "name of the previewing player")
}

// NewLogger creates a logger writing to w and, when a log file is set, to a
// rotated file as well. Verbose logging adds file and line to every entry.
func NewLogger(f Flags, w io.Writer) *log.Logger {
	if f.LogFile != "" {
		w = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   f.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	flags := log.LstdFlags
	if f.Verbose {
		flags |= log.Lshortfile
	}
	return log.New(w, "slate: ", flags)
}
