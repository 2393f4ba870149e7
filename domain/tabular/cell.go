package tabular

import (
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the semantic type a cell value was normalized to.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
	KindDate
)

// ShortDateLayout is the display format used when a date cell is rendered
// back to text (dd/mm/yyyy).
const ShortDateLayout = "02/01/2006"

// Cell is a single normalized spreadsheet value. Exactly one of the value
// fields is meaningful, selected by Kind. Comparison is value-exact: no
// trimming or case folding happens here, callers pre-normalize if they
// want looser matching.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Date time.Time
}

// EmptyCell returns the empty/null cell.
func EmptyCell() Cell {
	return Cell{Kind: KindEmpty}
}

// StringCell wraps a text value.
func StringCell(s string) Cell {
	return Cell{Kind: KindString, Str: s}
}

// NumberCell wraps a numeric value.
func NumberCell(n float64) Cell {
	return Cell{Kind: KindNumber, Num: n}
}

// DateCell wraps a date value.
func DateCell(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// IsEmpty reports whether the cell holds no value. A string cell holding
// "" counts as empty for grouping purposes.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind == KindString && c.Str == "")
}

// Key returns a canonical, kind-tagged representation suitable for use as
// a map key. Two cells are value-equal iff their keys are equal.
func (c Cell) Key() string {
	switch c.Kind {
	case KindString:
		return "s:" + c.Str
	case KindNumber:
		return "n:" + strconv.FormatFloat(c.Num, 'g', -1, 64)
	case KindDate:
		return "d:" + c.Date.UTC().Format(time.RFC3339)
	default:
		return "e:"
	}
}

// Equal reports value equality between two cells.
func (c Cell) Equal(other Cell) bool {
	return c.Key() == other.Key()
}

// Value returns the native Go value for spreadsheet writers: string,
// float64, time.Time, or nil for empty cells.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return c.Num
	case KindDate:
		return c.Date
	default:
		return nil
	}
}

// Display renders the cell as text, dates in short dd/mm/yyyy form.
func (c Cell) Display() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case KindDate:
		return c.Date.Format(ShortDateLayout)
	default:
		return ""
	}
}

// ParseCell normalizes a raw text value to one of the four cell kinds:
// empty, number, date, or string. Date detection tries dd/mm/yyyy,
// yyyy-mm-dd, then RFC3339.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyCell()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(n)
	}
	for _, layout := range []string{ShortDateLayout, "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return DateCell(t)
		}
	}
	return StringCell(trimmed)
}
