package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "go_tail_mock/internal/domain/model/mock_rule"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tail"), []byte("GET\n/a\n200\n--\n404\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tail"), []byte("POST\n/b\n201\n"), 0o644))

	out, err := executeCmd(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "a.tail")
	assert.Contains(t, out, "POST")
	assert.Contains(t, out, "2 rules ok")
}

func TestValidateCmdInvalidRule(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.tail"), []byte("GET\n/a\nOK\n"), 0o644))

	_, err := executeCmd(t, "validate", dir)
	assert.ErrorIs(t, err, model.ErrInvalidRule)
}

func TestValidateCmdRequiresDir(t *testing.T) {
	_, err := executeCmd(t, "validate")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=dev")
}

func TestLoadServeConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadServeConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.MocksDir)

	other := t.TempDir()
	path := filepath.Join(t.TempDir(), "rule.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mocksDir: "+dir+"\nwatch: true\n"), 0o644))

	cfg, err = loadServeConfig(path, other)
	require.NoError(t, err)
	assert.Equal(t, other, cfg.MocksDir)
	assert.True(t, cfg.Watch)

	_, err = loadServeConfig("", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
