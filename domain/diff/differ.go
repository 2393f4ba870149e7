// Package diff computes the rows present in a candidate dataset but
// absent from a baseline, under a configurable identity key.
package diff

import (
	"strings"

	"classeur/domain/tabular"
	"classeur/internal/errors"
)

// NewRows returns the candidate rows whose identity key value does not
// appear anywhere in the baseline, preserving candidate order. The
// identity key is a non-empty subset of columns present in both datasets;
// comparison is value-exact. Candidate duplicates under the key are all
// included, deduplication is not the differ's concern. The returned rows
// are the candidate's own row values, untouched.
func NewRows(baseline, candidate tabular.Dataset, key []string) ([]tabular.Row, error) {
	if len(key) == 0 {
		return nil, errors.EmptyKey()
	}
	if missing := baseline.MissingColumns(key); len(missing) > 0 {
		return nil, errors.SchemaMissing(missing[0], "baseline")
	}
	if missing := candidate.MissingColumns(key); len(missing) > 0 {
		return nil, errors.SchemaMissing(missing[0], "candidate")
	}

	known := make(map[string]struct{}, len(baseline.Rows))
	for _, row := range baseline.Rows {
		known[identity(row, key)] = struct{}{}
	}

	var fresh []tabular.Row
	for _, row := range candidate.Rows {
		if _, seen := known[identity(row, key)]; !seen {
			fresh = append(fresh, row)
		}
	}
	return fresh, nil
}

// identity concatenates the canonical cell keys of the key columns. The
// unit separator keeps adjacent values from colliding.
func identity(row tabular.Row, key []string) string {
	parts := make([]string, len(key))
	for i, col := range key {
		parts[i] = row.Get(col).Key()
	}
	return strings.Join(parts, "\x1f")
}
