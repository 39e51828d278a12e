package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{9500, "9.500"},
		{228500, "228.500"},
		{1234567, "1.234.567"},
		{-9500, "-9.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "long…", Truncate("longer text", 5))
	assert.Equal(t, "…", Truncate("ab", 1))
	assert.Equal(t, "", Truncate("anything", 0))

	// Rune-safe on multibyte input.
	assert.Equal(t, "Jalan Ga…", Truncate("Jalan Gajah Mada", 9))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", OrDash(""))
	assert.Equal(t, "value", OrDash("value"))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Amount"},
		[][]string{
			{"PT Maju", "228.500"},
			{"CV Abadi Sentosa", "9.500"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	// Second column starts at the same offset on every data row.
	first := strings.Index(lines[2], "228.500")
	second := strings.Index(lines[3], "9.500")
	assert.Equal(t, first, second)
	assert.Contains(t, lines[3], "CV Abadi Sentosa")
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
