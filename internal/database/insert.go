package database

import (
	"fmt"
	"strings"
)

// MaxRowsPerInsert bounds a multi-row INSERT so large imports stay under placeholder limits.
const MaxRowsPerInsert = 500

// BuildMultiRowInsert builds an INSERT statement with rowCount groups of ? placeholders.
func BuildMultiRowInsert(table string, columns []string, rowCount int) string {
	placeholder := "(" + strings.Repeat("?, ", len(columns)-1) + "?)"
	values := strings.Repeat(placeholder+", ", rowCount-1) + placeholder
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), values)
}

// Chunks splits n rows into [start, end) ranges of at most size rows.
func Chunks(n, size int) [][2]int {
	var chunks [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}
