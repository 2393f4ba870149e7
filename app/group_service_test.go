package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classeur/adapters/excel"
	"classeur/internal/logging"
)

func TestGroupServiceClustersAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "groupe.xlsx")

	writeWorkbook(t, filepath.Join(dir, "new_lines_only1.xlsx"),
		[]string{"Dossier", "Montant"},
		[]string{"X", "1"},
		[]string{"Y", "2"},
	)
	writeWorkbook(t, filepath.Join(dir, "new_lines_only2.xlsx"),
		[]string{"Dossier", "Montant"},
		[]string{"X", "3"},
	)

	svc := NewGroupService(logging.New(logging.LevelError))
	run, err := svc.Run(GroupConfig{
		InputDir:    dir,
		GroupColumn: "Dossier",
		OutputPath:  out,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, run.FilesProcessed)
	assert.Equal(t, 3, run.RowsOut)

	got, err := excel.NewDataReader(out).ReadDataset()
	require.NoError(t, err)
	assert.Equal(t, []string{"groupe", "Dossier", "Montant"}, got.Columns)
	require.Len(t, got.Rows, 3)

	// Group X (rows 1 and 3 of the combined input) comes first, intact.
	assert.Equal(t, "X", got.Rows[0].Get("groupe").Str)
	assert.Equal(t, float64(1), got.Rows[0].Get("Montant").Num)
	assert.Equal(t, "X", got.Rows[1].Get("groupe").Str)
	assert.Equal(t, float64(3), got.Rows[1].Get("Montant").Num)
	assert.Equal(t, "Y", got.Rows[2].Get("groupe").Str)
}

func TestGroupServiceExcludesNamedWorkbooks(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "groupe.xlsx")

	writeWorkbook(t, filepath.Join(dir, "Ventes1.xlsx"),
		[]string{"Dossier"}, []string{"SKIP"})
	writeWorkbook(t, filepath.Join(dir, "data.xlsx"),
		[]string{"Dossier"}, []string{"X"})

	svc := NewGroupService(logging.New(logging.LevelError))
	run, err := svc.Run(GroupConfig{
		InputDir:    dir,
		ExcludeFile: "Ventes1.xlsx",
		GroupColumn: "Dossier",
		OutputPath:  out,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, run.FilesProcessed)

	got, err := excel.NewDataReader(out).ReadDataset()
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "X", got.Rows[0].Get("Dossier").Str)
}

func TestGroupServiceRequiresGroupColumn(t *testing.T) {
	svc := NewGroupService(logging.New(logging.LevelError))
	_, err := svc.Run(GroupConfig{InputDir: t.TempDir(), OutputPath: "groupe.xlsx"})
	require.Error(t, err)
}
