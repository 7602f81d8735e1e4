package newick

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasScenario(t *testing.T) {
	tree := mustParse(t, "((Apple,Pear),Grape);")

	names, err := tree.Alias(false, nil)
	require.NoError(t, err)

	assert.Equal(t, "((SEQ0000001,SEQ0000002),SEQ0000003);", tree.String())
	assert.Equal(t, map[string]string{
		"SEQ0000001": "Apple",
		"SEQ0000002": "Pear",
		"SEQ0000003": "Grape",
	}, names)

	tree.UnAlias(names)
	assert.Equal(t, "((Apple,Pear),Grape);", tree.String())
}

func TestAliasSkipsBootstrapLabels(t *testing.T) {
	tree := mustParse(t, "((A:1,B:2)75:1,C:3);")

	names, err := tree.Alias(false, nil)
	require.NoError(t, err)

	assert.Equal(t, "((SEQ0000001:1,SEQ0000002:2)75:1,SEQ0000003:3);", tree.String())
	assert.Len(t, names, 3)
}

func TestAliasRenamesNamedInternals(t *testing.T) {
	tree := mustParse(t, "((A,B)anInternal,C);")

	_, err := tree.Alias(false, nil)
	require.NoError(t, err)

	// Preorder: the named internal node is renamed before its children.
	assert.Equal(t, "((SEQ0000002,SEQ0000003)SEQ0000001,SEQ0000004);", tree.String())
}

func TestAliasSink(t *testing.T) {
	tree := mustParse(t, "((Apple,Pear),Grape);")
	var sink bytes.Buffer

	_, err := tree.Alias(false, &sink)
	require.NoError(t, err)

	assert.Equal(t,
		"SEQ0000001\tApple\nSEQ0000002\tPear\nSEQ0000003\tGrape\n",
		sink.String())
}

// shortSink accepts a fixed number of writes, then fails.
type shortSink struct {
	writes int
}

func (w *shortSink) Write(p []byte) (int, error) {
	if w.writes == 0 {
		return 0, errors.New("sink full")
	}
	w.writes--
	return len(p), nil
}

func TestAliasSinkErrorKeepsMapConsistent(t *testing.T) {
	tree := mustParse(t, "((Apple,Pear),Grape);")

	names, err := tree.Alias(false, &shortSink{writes: 1})
	require.Error(t, err)

	// Only the rename whose line was written went through, and the
	// returned map covers exactly that rename.
	assert.Equal(t, "((SEQ0000001,Pear),Grape);", tree.String())
	assert.Equal(t, map[string]string{"SEQ0000001": "Apple"}, names)
}

func TestAliasLongMode(t *testing.T) {
	tree := mustParse(t, "(Brachiosaurus_altithorax,(B,C));")

	names, err := tree.Alias(true, nil)
	require.NoError(t, err)

	// Aliases are padded to the width of the longest taxon name.
	longest := "Brachiosaurus_altithorax"
	for alias := range names {
		assert.Len(t, alias, len(longest))
	}
	assert.Equal(t, longest, names[tree.Root.Children[0].Name])
}

func TestReAliasRestoresAliases(t *testing.T) {
	tree := mustParse(t, "((Apple,Pear),Grape);")
	names, err := tree.Alias(false, nil)
	require.NoError(t, err)

	tree.UnAlias(names)
	tree.ReAlias(names)
	assert.Equal(t, "((SEQ0000001,SEQ0000002),SEQ0000003);", tree.String())
}

func TestUnAliasLeavesUnmappedNames(t *testing.T) {
	tree := mustParse(t, "((A,B),C);")
	tree.UnAlias(map[string]string{"A": "Ant"})
	assert.Equal(t, "((Ant,B),C);", tree.String())
}

func TestPlainInt(t *testing.T) {
	assert.True(t, plainInt("75"))
	assert.True(t, plainInt("0"))
	assert.False(t, plainInt(""))
	assert.False(t, plainInt("7.5"))
	assert.False(t, plainInt("A7"))
	assert.False(t, plainInt("-7"))
}
