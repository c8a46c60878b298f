package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/rockerbuild/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteBuildFile writes content as build.hcl in a fresh temporary project
// directory and returns the directory.
func WriteBuildFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "build.hcl"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write build file: %v", err)
	}
	return dir
}

// SetupAppTest creates a new app instance for system testing. Debug logs are
// captured and printed on failure when ROCKERBUILD_TEST_LOGS is "true".
func SetupAppTest(t *testing.T, cfg Config, loader config.Loader) (*App, *SafeBuffer, *SafeBuffer, error) {
	t.Helper()

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	cfg.LogLevel = "debug"
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	appConfig, err := NewConfig(cfg)
	if err != nil {
		return nil, out, logs, err
	}

	t.Cleanup(func() {
		if os.Getenv("ROCKERBUILD_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	a, err := NewApp(context.Background(), out, logs, appConfig, loader)
	return a, out, logs, err
}
