package service

import (
	"regexp"
	"strconv"
	"strings"

	"match-service/internal/match/model"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, ё→е, NBSP, служебные символы → пробел
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s)
	s = nonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumn ищет реальное имя колонки:
// 1) точное совпадение; 2) с суффиксом листа ("Name" → "Name.Sheet1");
// 3) нормализованное сравнение с тем и другим. Частичных совпадений не ищем:
// не найденная колонка это ошибка данных.
func resolveColumn(t *model.Table, want string) (string, error) {
	if want == "" {
		return "", configErr("column is not set for table %q", t.Name)
	}
	if t.Has(want) {
		return want, nil
	}
	if ns := model.NamespacedColumn(want, t.Name); t.Has(ns) {
		return ns, nil
	}
	nWant := normHeaderKey(want)
	nNs := normHeaderKey(model.NamespacedColumn(want, t.Name))
	for _, c := range t.Columns {
		if nc := normHeaderKey(c); nc == nWant || nc == nNs {
			return c, nil
		}
	}
	return "", missingColumn(t.Name, want)
}

func requireColumn(t *model.Table, col string) error {
	if !t.Has(col) {
		return missingColumn(t.Name, col)
	}
	return nil
}

// combinedColumns: левые ++ правые ++ Similarity Score
func combinedColumns(left, right *model.Table) []string {
	cols := make([]string, 0, len(left.Columns)+len(right.Columns)+1)
	cols = append(cols, left.Columns...)
	cols = append(cols, right.Columns...)
	return append(cols, model.ScoreColumn)
}

func combinedName(left, right *model.Table) string { return left.Name + "_" + right.Name }

// combine склеивает строки. rr == nil: заглушка, правая часть пустая.
// ID результата = ID левой строки.
func combine(left *model.Table, lr model.Row, right *model.Table, rr *model.Row, score int) model.Row {
	vals := make(map[string]string, len(left.Columns)+len(right.Columns)+1)
	for _, c := range left.Columns {
		vals[c] = left.Value(lr, c)
	}
	for _, c := range right.Columns {
		if rr != nil {
			vals[c] = right.Value(*rr, c)
		} else {
			vals[c] = ""
		}
	}
	vals[model.ScoreColumn] = strconv.Itoa(score)
	return model.Row{ID: lr.ID, Values: vals}
}
