package helpers

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlags(t *testing.T) {
	var f Flags
	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd, &f)

	assert.Equal(t, 50*time.Millisecond, f.Tick)
	assert.Equal(t, "Steve", f.Player)

	require.NoError(t, cmd.ParseFlags([]string{"--tick", "1s", "-p", "Alex", "-v"}))
	assert.Equal(t, time.Second, f.Tick)
	assert.Equal(t, "Alex", f.Player)
	assert.True(t, f.Verbose)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Flags{}, &buf)
	logger.Println("open: hello")
	assert.Contains(t, buf.String(), "slate: ")
	assert.Contains(t, buf.String(), "open: hello")
	assert.Zero(t, logger.Flags()&log.Lshortfile)

	assert.NotZero(t, NewLogger(Flags{Verbose: true}, &buf).Flags()&log.Lshortfile)
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.log")
	var buf bytes.Buffer
	logger := NewLogger(Flags{LogFile: path}, &buf)
	logger.Println("tick")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick")
	assert.Contains(t, buf.String(), "tick")
}
