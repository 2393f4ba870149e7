package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classeur/domain/tabular"
	"classeur/internal/errors"
)

func row(pairs ...interface{}) tabular.Row {
	r := make(tabular.Row)
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case string:
			r[name] = tabular.StringCell(v)
		case int:
			r[name] = tabular.NumberCell(float64(v))
		case float64:
			r[name] = tabular.NumberCell(v)
		case nil:
			r[name] = tabular.EmptyCell()
		}
	}
	return r
}

func dataset(columns []string, rows ...tabular.Row) tabular.Dataset {
	return tabular.Dataset{Columns: columns, Rows: rows}
}

func TestNewRowsFindsRowsAbsentFromBaseline(t *testing.T) {
	baseline := dataset([]string{"id", "name"},
		row("id", 1, "name", "A"),
		row("id", 2, "name", "B"),
	)
	candidate := dataset([]string{"id", "name"},
		row("id", 1, "name", "A"),
		row("id", 3, "name", "C"),
	)

	fresh, err := NewRows(baseline, candidate, []string{"id"})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.True(t, fresh[0].Get("id").Equal(tabular.NumberCell(3)))
	assert.Equal(t, "C", fresh[0].Get("name").Str)
}

func TestNewRowsAgainstItselfIsEmpty(t *testing.T) {
	ds := dataset([]string{"id"},
		row("id", 1),
		row("id", 2),
	)

	fresh, err := NewRows(ds, ds, []string{"id"})
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestNewRowsEmptyBaselineReturnsAllCandidates(t *testing.T) {
	candidate := dataset([]string{"id"},
		row("id", 1),
		row("id", 2),
	)

	fresh, err := NewRows(dataset([]string{"id"}), candidate, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, candidate.Rows, fresh)
}

func TestNewRowsEmptyCandidateReturnsNothing(t *testing.T) {
	baseline := dataset([]string{"id"}, row("id", 1))

	fresh, err := NewRows(baseline, dataset([]string{"id"}), []string{"id"})
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestNewRowsKeepsCandidateDuplicates(t *testing.T) {
	baseline := dataset([]string{"id"}, row("id", 1))
	candidate := dataset([]string{"id", "v"},
		row("id", 2, "v", "first"),
		row("id", 2, "v", "second"),
	)

	fresh, err := NewRows(baseline, candidate, []string{"id"})
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, "first", fresh[0].Get("v").Str)
	assert.Equal(t, "second", fresh[1].Get("v").Str)
}

func TestNewRowsPreservesCandidateOrder(t *testing.T) {
	baseline := dataset([]string{"id"}, row("id", 5))
	candidate := dataset([]string{"id"},
		row("id", 3),
		row("id", 1),
		row("id", 5),
		row("id", 2),
	)

	fresh, err := NewRows(baseline, candidate, []string{"id"})
	require.NoError(t, err)
	got := make([]float64, len(fresh))
	for i, r := range fresh {
		got[i] = r.Get("id").Num
	}
	assert.Equal(t, []float64{3, 1, 2}, got)
}

func TestNewRowsCompositeKey(t *testing.T) {
	baseline := dataset([]string{"date", "site"},
		row("date", "01/05/2025", "site", "CHU"),
	)
	candidate := dataset([]string{"date", "site"},
		row("date", "01/05/2025", "site", "CHU"),
		row("date", "01/05/2025", "site", "Clinique"),
		row("date", "02/05/2025", "site", "CHU"),
	)

	fresh, err := NewRows(baseline, candidate, []string{"date", "site"})
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestNewRowsIgnoresNonKeyColumns(t *testing.T) {
	baseline := dataset([]string{"id", "extra"},
		row("id", 1, "extra", "x"),
	)
	candidate := dataset([]string{"id", "other"},
		row("id", 1, "other", "y"),
		row("id", 2, "other", "z"),
	)

	fresh, err := NewRows(baseline, candidate, []string{"id"})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "z", fresh[0].Get("other").Str)
}

func TestNewRowsEmptyKeyFails(t *testing.T) {
	ds := dataset([]string{"id"}, row("id", 1))

	_, err := NewRows(ds, ds, nil)
	require.Error(t, err)
	assert.True(t, errors.IsEmptyKey(err))
}

func TestNewRowsMissingKeyColumnFails(t *testing.T) {
	baseline := dataset([]string{"id"}, row("id", 1))
	candidate := dataset([]string{"other"}, row("other", "x"))

	_, err := NewRows(baseline, candidate, []string{"id"})
	require.Error(t, err)
	assert.True(t, errors.IsSchemaMissing(err))
	assert.Contains(t, err.Error(), "id")

	_, err = NewRows(candidate, baseline, []string{"id"})
	require.Error(t, err)
	assert.True(t, errors.IsSchemaMissing(err))
}

func TestNewRowsDeterministic(t *testing.T) {
	baseline := dataset([]string{"id"}, row("id", 1), row("id", 4))
	candidate := dataset([]string{"id"},
		row("id", 2), row("id", 4), row("id", 3), row("id", 1), row("id", 9),
	)

	first, err := NewRows(baseline, candidate, []string{"id"})
	require.NoError(t, err)
	second, err := NewRows(baseline, candidate, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
