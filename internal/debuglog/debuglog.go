// Package debuglog writes opt-in diagnostics to a file in the temp dir so
// they never reach the alt-screen.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileName = "tetris-claude-debug.log"

var (
	enabled bool
	mu      sync.Mutex
	out     io.Writer
)

func Enable(on bool) {
	mu.Lock()
	enabled = on
	mu.Unlock()
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Path is where log lines are appended.
func Path() string {
	return filepath.Join(os.TempDir(), fileName)
}

// SetOutput redirects log lines, mainly for tests. A nil writer restores the
// default file.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	if out == nil {
		file, err := os.OpenFile(Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		out = file
	}
	timestamp := time.Now().Format(time.RFC3339)
	message := fmt.Sprintf(format, args...)
	message = strings.ReplaceAll(message, "\n", " ")
	_, _ = fmt.Fprintf(out, "%s %s\n", timestamp, message)
}
