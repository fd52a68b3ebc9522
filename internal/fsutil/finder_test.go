package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGraphDocuments_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.hcl", "a.hcl", "nested/c.hcl", "ignore.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	docs, err := FindGraphDocuments(dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), docs[0])
	assert.Equal(t, filepath.Join(dir, "b.hcl"), docs[1])
	assert.Equal(t, filepath.Join(dir, "nested", "c.hcl"), docs[2])
}

func TestFindGraphDocuments_SingleDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.hcl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	docs, err := FindGraphDocuments(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, docs)
}

func TestFindGraphDocuments_WrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := FindGraphDocuments(path)
	assert.Error(t, err)
}

func TestFindGraphDocuments_MissingRoot(t *testing.T) {
	_, err := FindGraphDocuments(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
