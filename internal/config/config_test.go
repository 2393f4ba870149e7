package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Ventes1.xlsx", cfg.Paths.BaselineFile)
	assert.Equal(t, "groupe", cfg.Diff.MarkerColumn)
	assert.Equal(t, 4, cfg.Extract.Parallelism)
	assert.Nil(t, cfg.Diff.KeyColumns)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CLASSEUR_BASELINE", "Recette.xlsx")
	t.Setenv("CLASSEUR_KEY_COLUMNS", "date, hopital")
	t.Setenv("CLASSEUR_EXTRACT_PARALLELISM", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Recette.xlsx", cfg.Paths.BaselineFile)
	assert.Equal(t, []string{"date", "hopital"}, cfg.Diff.KeyColumns)
	assert.Equal(t, 2, cfg.Extract.Parallelism)
}

func TestLoadRejectsBadParallelism(t *testing.T) {
	t.Setenv("CLASSEUR_EXTRACT_PARALLELISM", "-1")

	_, err := Load()
	require.Error(t, err)
}
