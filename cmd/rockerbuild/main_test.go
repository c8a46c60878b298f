package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, &out, []string{"--help"}))
	assert.Contains(t, out.String(), "rockerbuild")
	assert.Contains(t, out.String(), "resolve")
}

func TestRun_Tasks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.hcl"), []byte(`unit "main" {}`), 0o644))

	var out, errOut bytes.Buffer
	require.NoError(t, run(context.Background(), &out, &errOut, []string{"tasks", "-f", filepath.Join(dir, "build.hcl")}))
	assert.Contains(t, out.String(), "rockerMain")
}
