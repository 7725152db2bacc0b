package service

import (
	"match-service/internal/match/model"
)

// tbl: таблица с колонками как есть (без суффикса листа).
func tbl(name string, cols []string, rows ...[]string) *model.Table {
	t := &model.Table{Name: name, Columns: cols}
	for i, r := range rows {
		vals := make(map[string]string, len(cols))
		for j, c := range cols {
			if j < len(r) {
				vals[c] = r[j]
			}
		}
		t.Rows = append(t.Rows, model.Row{ID: i, Values: vals})
	}
	return t
}

func column(t *model.Table, col string) []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, t.Value(r, col))
	}
	return out
}
