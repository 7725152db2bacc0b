package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/utils"
)

// Sheet хранит лист как есть: заголовки в исходном порядке + записи map[header]value.
type Sheet struct {
	Name    string
	Header  []string
	Records []map[string]string
}

// Table: лист в виде таблицы для сопоставления (колонки с суффиксом листа).
func (s *Sheet) Table() *model.Table {
	return model.NewTable(s.Name, s.Header, s.Records)
}

// ReadAnyMaps — выберет парсер по расширению и вернёт первый лист.
// headerRow: номер строки заголовков (1-based). Имя листа = имя файла без расширения.
func ReadAnyMaps(r io.Reader, filename string, headerRow int) (*Sheet, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var (
		header  []string
		records []map[string]string
		err     error
	)
	switch ext {
	case ".xlsx":
		header, records, err = readXLSX(r, headerRow)
	case ".xls":
		header, records, err = readXLS(r, headerRow)
	case ".csv":
		header, records, err = readCSV(r, headerRow)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return nil, err
	}
	return &Sheet{Name: name, Header: header, Records: records}, nil
}

// pickHeader — берёт строку заголовков и подставляет Column N для пустых.
// Повторы получают суффикс: "Name", "Name.1", "Name.2".
func pickHeader(rows [][]string, headerRow int) []string {
	if len(rows) == 0 {
		return nil
	}
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
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if n, ok := seen[v]; ok {
			// суффикс берём первый свободный: "Name.1" может уже стоять в шапке
			base := v
			for {
				n++
				v = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[v]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[v] = 0
		out[i] = v
	}
	return out
}

// rowsToMaps — конвертирует AoA в []map по заголовкам, пропуская полностью пустые строки.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow // первая строка после заголовков
	if start < 1 {
		start = 1
	}
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = utils.Cell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[headers[c]] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

func normalizeCell(s string) string { return utils.Cell(s) }
