package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table: прочитанная таблица: заголовки в исходном порядке + строки по заголовкам.
type Table struct {
	Header  []string
	Records []map[string]string
	// Rows: сколько строк данных было под шапкой (включая пустые).
	Rows int
}

// ReadAny выбирает парсер по расширению. headerRow: номер строки заголовков (1-based).
func ReadAny(r io.Reader, filename string, headerRow int) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv", ".txt":
		return readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

// ReadFile: то же самое для файла на диске.
func ReadFile(path string, headerRow int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAny(f, path, headerRow)
}

// pickHeader: берёт строку заголовков и подставляет Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		// дубли заголовков не должны затирать друг друга в map
		if n := seen[v]; n > 0 {
			seen[v] = n + 1
			v = fmt.Sprintf("%s (%d)", v, n+1)
		} else {
			seen[v] = 1
		}
		out[i] = v
	}
	return out
}

// toTable: AoA в Table по заголовкам, полностью пустые строки пропускаются.
func toTable(rows [][]string, headerRow int) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	headers := pickHeader(rows, headerRow)
	start := headerRow // первая строка после заголовков
	if start < 1 || start > len(rows) {
		start = 1
	}
	t := &Table{Header: headers}
	for r := start; r < len(rows); r++ {
		t.Rows++
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			m[headers[c]] = v
		}
		if !empty {
			t.Records = append(t.Records, m)
		}
	}
	return t
}

// normalizeCell: BOM, NBSP и крайние пробелы.
func normalizeCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
