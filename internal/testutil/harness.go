// Package testutil provides the shared harness for integration tests that
// run the full app pipeline against program files written to a temp dir.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pulsegridgo/internal/app"
	"github.com/vk/pulsegridgo/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunProgramTest writes the given program files into a temp directory, runs
// the full app pipeline over them with the print driver, and captures the
// combined log and listing output. Startup panics are converted into errors.
func RunProgramTest(t *testing.T, files map[string]string, cfg *app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
		require.NoError(t, err)
	}

	if cfg == nil {
		cfg = &app.Config{
			Driver:    app.DriverPrint,
			LogFormat: "text",
			LogLevel:  "debug",
		}
	}
	cfg.ProgramPath = dir

	var buf SafeBuffer
	result := &HarnessResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup panic: %v", r)
			}
		}()
		a := app.NewApp(&buf, cfg, hcl.NewLoader())
		result.App = a
		result.Err = a.Run(context.Background())
	}()
	result.Output = buf.String()
	return result
}
