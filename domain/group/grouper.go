// Package group partitions flat row collections into ordered clusters
// sharing a common linking key.
package group

import (
	"classeur/domain/tabular"
	"classeur/internal/errors"
)

// KeyFunc derives a grouping key from a row. It must be total: an error
// aborts the whole partition.
type KeyFunc func(tabular.Row) (tabular.Cell, error)

// By selects the grouping key: either a column name or a derivation
// function. When both are set the function wins.
type By struct {
	Column string
	Derive KeyFunc
}

// ByColumn groups on the value of a named column.
func ByColumn(name string) By {
	return By{Column: name}
}

// ByFunc groups on a derived value.
func ByFunc(fn KeyFunc) By {
	return By{Derive: fn}
}

// Group is an ordered cluster of rows sharing one key value. Groups are
// emitted in order of first appearance of their key; within a group, rows
// keep their relative input order.
type Group struct {
	Key  tabular.Cell
	Rows []tabular.Row
}

// Partition splits rows into groups in a single linear pass. Every input
// row lands in exactly one group; rows whose key is null or empty are
// collected under the empty sentinel key rather than dropped. The input
// is not mutated and the result is deterministic for a deterministic
// input order.
func Partition(rows []tabular.Row, by By) ([]Group, error) {
	if by.Derive == nil && by.Column == "" {
		return nil, errors.InvalidInput("group key must name a column or supply a derivation")
	}

	var groups []Group
	index := make(map[string]int)

	for i, row := range rows {
		key, err := keyOf(row, by, i)
		if err != nil {
			return nil, err
		}
		bucket := key.Key()
		at, seen := index[bucket]
		if !seen {
			at = len(groups)
			index[bucket] = at
			groups = append(groups, Group{Key: key})
		}
		groups[at].Rows = append(groups[at].Rows, row)
	}
	return groups, nil
}

func keyOf(row tabular.Row, by By, rowIndex int) (tabular.Cell, error) {
	if by.Derive != nil {
		cell, err := by.Derive(row)
		if err != nil {
			return tabular.Cell{}, errors.Derivation(rowIndex, err)
		}
		return cell, nil
	}
	if _, ok := row[by.Column]; !ok {
		return tabular.Cell{}, errors.SchemaMissing(by.Column, "input rows")
	}
	return row.Get(by.Column), nil
}
