// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FakeJava writes an executable shell script that stands in for the JVM and
// returns its path. The script records its arguments, one per line, in
// argsFile and then runs body. Tests are skipped where no POSIX shell exists.
func FakeJava(t *testing.T, body string) (java, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake java relies on a POSIX shell")
	}
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	java = filepath.Join(dir, "java")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + argsFile + "'\n" + body + "\n"
	if err := os.WriteFile(java, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake java: %v", err)
	}
	return java, argsFile
}
