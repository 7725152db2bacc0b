package model

import (
	"fmt"
	"strings"

	"match-service/internal/utils"
)

const (
	ScoreColumn    = "Similarity Score" // последняя колонка объединённой строки
	DecisionColumn = "DECISION"         // первая колонка после self-decide
)

// Row: строка таблицы. ID это индекс в исходной таблице (0-based), переживает копирование и фильтрацию.
// В результате сопоставления ID = ID левой строки, у нескольких пар он общий.
type Row struct {
	ID     int               `json:"id"`
	Values map[string]string `json:"values"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable собирает таблицу из листа: колонки получают суффикс ".<лист>",
// чтобы левые и правые имена не пересекались при склейке.
func NewTable(sheet string, header []string, records []map[string]string) *Table {
	t := &Table{Name: sheet, Columns: make([]string, len(header))}
	for i, h := range header {
		t.Columns[i] = NamespacedColumn(h, sheet)
	}
	t.Rows = make([]Row, 0, len(records))
	for i, rec := range records {
		vals := make(map[string]string, len(header))
		for j, h := range header {
			vals[t.Columns[j]] = utils.Cell(rec[h])
		}
		t.Rows = append(t.Rows, Row{ID: i, Values: vals})
	}
	return t
}

func NamespacedColumn(col, sheet string) string { return col + "." + sheet }

func (t *Table) Has(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Value: отсутствующая ячейка == "".
func (t *Table) Value(r Row, col string) string {
	return utils.Cell(r.Values[col])
}

func (t *Table) Len() int { return len(t.Rows) }

// Clone — глубокая копия, исходник не трогаем.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		vals := make(map[string]string, len(r.Values))
		for k, v := range r.Values {
			vals[k] = v
		}
		out.Rows[i] = Row{ID: r.ID, Values: vals}
	}
	return out
}

// Matrix: строки в порядке Columns (для записи в лист).
func (t *Table) Matrix() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			line[i] = t.Value(r, c)
		}
		out = append(out, line)
	}
	return out
}

// Mode: способ сопоставления.
type Mode string

const (
	ModeSimilarity Mode = "similarity"
	ModeKeyword    Mode = "keyword"
)

// Prefix: префикс имени листа с результатом.
func (m Mode) Prefix() string {
	switch m {
	case ModeKeyword:
		return "KWS"
	default:
		return "FLU"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "similarity", "fuzzy", "flu":
		return ModeSimilarity, nil
	case "keyword", "kws":
		return ModeKeyword, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

const DecidedPrefix = "SD"

// Progress отдаётся после каждой левой строки.
type Progress struct {
	Matches   int `json:"matches"`
	Processed int `json:"processed"`
	Total     int `json:"total"`
}

type ProgressFunc func(Progress)
