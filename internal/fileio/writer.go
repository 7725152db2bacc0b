package fileio

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/match/model"
)

const (
	// MaxSheetName: Excel допускает 31, один символ оставляем под номер дубля
	MaxSheetName  = 30
	excelSheetMax = 31
)

func truncRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func sheetExists(list []string, name string) bool {
	for _, s := range list {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// SheetName подбирает имя нового листа: обрезка до 30 символов, при совпадении
// (без учёта регистра, как в Excel) дописываем 1, 2, ...
func SheetName(existing []string, name string) string {
	base := truncRunes(name, MaxSheetName)
	cand := base
	for n := 1; sheetExists(existing, cand); n++ {
		suffix := strconv.Itoa(n)
		cand = truncRunes(base, excelSheetMax-len(suffix)) + suffix
	}
	return cand
}

// AppendSheets дописывает таблицы новыми листами. Существующие листы не трогаем.
// Возвращает фактические имена листов.
func AppendSheets(f *excelize.File, tables []model.NamedTable) ([]string, error) {
	names := make([]string, 0, len(tables))
	for _, nt := range tables {
		name := SheetName(f.GetSheetList(), nt.Sheet)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %q: %w", name, err)
		}
		if err := writeTable(f, name, nt.Table); err != nil {
			return nil, fmt.Errorf("write sheet %q: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// NewWorkbook: книга только с результатами (для режима двух файлов).
func NewWorkbook(tables []model.NamedTable) (*excelize.File, []string, error) {
	f := excelize.NewFile()
	placeholder := f.GetSheetName(0)
	// имя заглушки не должно занять имя результата
	if err := f.SetSheetName(placeholder, "~tmp"); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	names, err := AppendSheets(f, tables)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if len(names) > 0 {
		if err := f.DeleteSheet("~tmp"); err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		f.SetActiveSheet(0)
	}
	return f, names, nil
}

// writeTable: заголовок в первой строке, Similarity Score числом.
func writeTable(f *excelize.File, sheet string, t *model.Table) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, line := range t.Matrix() {
		vals := make([]interface{}, len(line))
		for j, v := range line {
			vals[j] = v
			if t.Columns[j] == model.ScoreColumn {
				if n, err := strconv.Atoi(v); err == nil {
					vals[j] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, vals); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// AppendToFile открывает книгу на диске, дописывает листы и сохраняет (в out, если задан).
func AppendToFile(path, out string, tables []model.NamedTable) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := AppendSheets(f, tables)
	if err != nil {
		return nil, err
	}
	if out == "" || out == path {
		return names, f.Save()
	}
	return names, f.SaveAs(out)
}
