package fileio

import (
	"bytes"
	"io"

	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/match/model"
)

func readXLSX(r io.Reader, headerRow int) ([]string, []map[string]string, error) {
	f, err := OpenWorkbook(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	s, err := readSheet(f, f.GetSheetName(0), headerRow)
	if err != nil {
		return nil, nil, err
	}
	return s.Header, s.Records, nil
}

// OpenWorkbook читает .xlsx целиком в память.
func OpenWorkbook(r io.Reader) (*excelize.File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return excelize.OpenReader(bytes.NewReader(b))
}

func readSheet(f *excelize.File, name string, headerRow int) (*Sheet, error) {
	// GetRows отдаёт отформатированные значения: числа и даты уже строками
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	h := pickHeader(rows, headerRow)
	return &Sheet{Name: name, Header: h, Records: rowsToMaps(rows, h, headerRow)}, nil
}

// Workbook хранит все листы книги в порядке следования.
type Workbook struct {
	Sheets []*Sheet
}

// ReadWorkbook читает все листы открытой книги.
func ReadWorkbook(f *excelize.File, headerRow int) (*Workbook, error) {
	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		s, err := readSheet(f, name, headerRow)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, s)
	}
	return wb, nil
}

func (w *Workbook) Names() []string {
	out := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		out = append(out, s.Name)
	}
	return out
}

// Tables: листы как таблицы для сопоставления, по имени листа.
func (w *Workbook) Tables() map[string]*model.Table {
	out := make(map[string]*model.Table, len(w.Sheets))
	for _, s := range w.Sheets {
		out[s.Name] = s.Table()
	}
	return out
}
