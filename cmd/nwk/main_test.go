package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAliasMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alias.map")
	content := "SEQ0000001\tApple\nSEQ0000002\tPear\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	names, err := readAliasMap(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SEQ0000001": "Apple",
		"SEQ0000002": "Pear",
	}, names)
}

func TestReadAliasMapMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alias.map")
	require.NoError(t, os.WriteFile(path, []byte("no-tab-here\n"), 0o644))

	_, err := readAliasMap(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestRootCmdHasAllSubcommands(t *testing.T) {
	root := newRootCmd()
	want := []string{
		"reorder", "unroot", "reroot", "midpoint",
		"dist", "compare", "alias", "unalias", "draw",
	}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestReorderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.nwk")
	require.NoError(t, os.WriteFile(path, []byte("(B,(A,D),C);\n"), 0o644))

	tree, err := readTree(path)
	require.NoError(t, err)
	assert.Equal(t, "((A,D),B,C);", tree.Reorder().String())
}
