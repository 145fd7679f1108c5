package sheets

import "strings"

// FindRow returns the index of the first row whose key columns, after
// trimming, equal the wanted values, or -1 when no row matches. Duplicate
// keys are possible in append-only tables; the first match wins.
func FindRow(rows [][]string, keyCols []int, want []string) int {
	for i, row := range rows {
		if rowMatches(row, keyCols, want) {
			return i
		}
	}
	return -1
}

func rowMatches(row []string, keyCols []int, want []string) bool {
	for j, col := range keyCols {
		if strings.TrimSpace(Cell(row, col)) != strings.TrimSpace(want[j]) {
			return false
		}
	}
	return true
}

// Cell returns the value at column i, or "" when the row is ragged short.
// The values API drops trailing empty cells, so short rows are routine.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
