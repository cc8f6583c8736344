package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := New()
	var out bytes.Buffer
	cli.SetOut(&out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modcache")
}

func TestDirCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "dir", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Base(dir))
}

func TestKeyCommand(t *testing.T) {
	dir := t.TempDir()
	modFile := filepath.Join(dir, "mod.bin")
	require.NoError(t, os.WriteFile(modFile, []byte("\x00asm\x01\x00\x00\x00"), 0o644))

	out, err := runCLI(t, "key", modFile, "--cache-dir", dir,
		"--compiler-name", "ref-compiler", "--compiler-version", "1.0.0")
	require.NoError(t, err)
	assert.Contains(t, out, "sha256:")
	assert.Contains(t, out, "ref-compiler-1.0.0")
	assert.Contains(t, out, "mod-")
}

func TestStatsCommandEmpty(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "stats", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "total")
}

func TestPurgeCommand(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "x86_64-unknown-linux-gnu", "cc-1.0.0")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "mod-abc"), []byte("x"), 0o644))

	out, err := runCLI(t, "purge", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "purged 1")

	children, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, children)
}
