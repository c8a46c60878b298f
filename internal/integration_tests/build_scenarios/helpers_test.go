package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/rockerbuild/internal/app"
	"github.com/specialistvlad/rockerbuild/internal/executor"
	"github.com/specialistvlad/rockerbuild/internal/hcl_adapter"
)

// harnessResult is what a scenario leaves behind.
type harnessResult struct {
	App    *app.App
	Dir    string
	Report *executor.Report
	Err    error
	logs   *app.SafeBuffer
}

// Logs returns everything logged so far.
func (r *harnessResult) Logs() string { return r.logs.String() }

// configureScenario writes files into a fresh project directory and
// configures the app from it.
func configureScenario(t *testing.T, files map[string]string) *harnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	a, _, logs, err := app.SetupAppTest(t, app.Config{BuildPath: dir}, hcl_adapter.NewLoader())
	return &harnessResult{App: a, Dir: dir, Err: err, logs: logs}
}

// runScenario configures the scenario and runs tasks, or the default tasks
// when none are named.
func runScenario(t *testing.T, files map[string]string, tasks ...string) *harnessResult {
	t.Helper()
	res := configureScenario(t, files)
	if res.Err != nil {
		return res
	}
	res.Report, res.Err = res.App.Run(context.Background(), tasks...)
	return res
}
