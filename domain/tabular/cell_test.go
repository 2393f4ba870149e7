package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCellKinds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Cell
	}{
		{"empty", "", EmptyCell()},
		{"blank", "   ", EmptyCell()},
		{"integer", "42", NumberCell(42)},
		{"float", "3.5", NumberCell(3.5)},
		{"negative", "-7", NumberCell(-7)},
		{"short date", "20/05/2025", DateCell(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))},
		{"iso date", "2025-05-20", DateCell(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))},
		{"text", "Hôpital Central", StringCell("Hôpital Central")},
		{"trimmed text", "  CHU  ", StringCell("CHU")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseCell(tt.raw).Equal(tt.want), "ParseCell(%q)", tt.raw)
		})
	}
}

func TestCellKeyDistinguishesKinds(t *testing.T) {
	// "12" as text and 12 as number must not collide under the key.
	assert.NotEqual(t, StringCell("12").Key(), NumberCell(12).Key())
	assert.NotEqual(t, EmptyCell().Key(), StringCell("").Key())
}

func TestCellComparisonIsValueExact(t *testing.T) {
	// No implicit trimming or case folding.
	assert.False(t, StringCell("CHU").Equal(StringCell("chu")))
	assert.False(t, StringCell("CHU").Equal(StringCell(" CHU")))
}

func TestCellDisplay(t *testing.T) {
	assert.Equal(t, "", EmptyCell().Display())
	assert.Equal(t, "12.5", NumberCell(12.5).Display())
	assert.Equal(t, "20/05/2025", DateCell(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)).Display())
}

func TestCellIsEmpty(t *testing.T) {
	assert.True(t, EmptyCell().IsEmpty())
	assert.True(t, StringCell("").IsEmpty())
	assert.False(t, NumberCell(0).IsEmpty())
	assert.False(t, StringCell("x").IsEmpty())
}
