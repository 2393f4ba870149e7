package app

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classeur/internal/logging"
)

func TestCollectServiceRenamesAndCopies(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "output")
	dest := filepath.Join(dir, "nouveau_resultats")

	leaves := []string{
		filepath.Join(root, "batch1", "item1"),
		filepath.Join(root, "batch1", "item2"),
		filepath.Join(root, "batch2", "item1"),
	}
	for _, leaf := range leaves {
		require.NoError(t, os.MkdirAll(leaf, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(leaf, "resultats.xlsx"), []byte(leaf), 0o644))
	}
	// A leaf without the target is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "batch2", "vide"), 0o755))

	svc := NewCollectService(logging.New(logging.LevelError))
	run, err := svc.Run(CollectConfig{
		RootDir:    root,
		TargetName: "resultats.xlsx",
		DestDir:    dest,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, run.FilesProcessed)
	assert.Empty(t, run.Failures)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"resultats(1).xlsx", "resultats(2).xlsx", "resultats(3).xlsx"}, names)

	// Originals were renamed in place, not removed.
	for _, leaf := range leaves {
		_, err := os.Stat(filepath.Join(leaf, "resultats.xlsx"))
		assert.True(t, os.IsNotExist(err), "original name should be gone in %s", leaf)
		matches, err := filepath.Glob(filepath.Join(leaf, "resultats(*).xlsx"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	}
}

func TestCollectServiceMissingRoot(t *testing.T) {
	svc := NewCollectService(logging.New(logging.LevelError))
	_, err := svc.Run(CollectConfig{
		RootDir:    filepath.Join(t.TempDir(), "absent"),
		TargetName: "resultats.xlsx",
		DestDir:    t.TempDir(),
	})
	require.Error(t, err)
}

func TestCollectServiceEmptyTree(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "output")
	require.NoError(t, os.MkdirAll(root, 0o755))

	svc := NewCollectService(logging.New(logging.LevelError))
	run, err := svc.Run(CollectConfig{
		RootDir:    root,
		TargetName: "resultats.xlsx",
		DestDir:    filepath.Join(dir, "dest"),
	})
	require.NoError(t, err)
	assert.Zero(t, run.FilesProcessed)
}
