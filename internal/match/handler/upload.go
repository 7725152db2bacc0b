package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/fileio"
	"match-service/internal/match/model"
)

// upload: прочитанные листы запроса.
// book != nil: режим одной книги, результаты дописываются в неё же.
type upload struct {
	tables   map[string]*model.Table
	names    []string
	book     *excelize.File
	filename string
}

func (u *upload) Close() {
	if u.book != nil {
		_ = u.book.Close()
	}
}

// loadUpload: либо file (.xlsx, все листы), либо fileA + fileB (.xlsx/.xls/.csv, первый лист).
func loadUpload(r *http.Request, headerRow int) (*upload, error) {
	file, h, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		return loadWorkbook(file, h, headerRow)
	case !errors.Is(err, http.ErrMissingFile):
		return nil, fmt.Errorf("%w: file: %v", errBadForm, err)
	}

	a, err := readPart(r, "fileA", headerRow)
	if err != nil {
		return nil, err
	}
	b, err := readPart(r, "fileB", headerRow)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(a.Name, b.Name) {
		a.Name += "_A"
		b.Name += "_B"
	}
	return &upload{
		tables: map[string]*model.Table{a.Name: a.Table(), b.Name: b.Table()},
		names:  []string{a.Name, b.Name},
	}, nil
}

func loadWorkbook(file multipart.File, h *multipart.FileHeader, headerRow int) (*upload, error) {
	if ext := strings.ToLower(filepath.Ext(h.Filename)); ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %s: only .xlsx workbooks are supported", errBadForm, h.Filename)
	}
	book, err := fileio.OpenWorkbook(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errBadForm, h.Filename, err)
	}
	wb, err := fileio.ReadWorkbook(book, headerRow)
	if err != nil {
		_ = book.Close()
		return nil, fmt.Errorf("%w: %s: %v", errBadForm, h.Filename, err)
	}
	return &upload{tables: wb.Tables(), names: wb.Names(), book: book, filename: h.Filename}, nil
}

func readPart(r *http.Request, field string, headerRow int) (*fileio.Sheet, error) {
	f, h, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %s: %v", errBadForm, field, err)
	}
	defer f.Close()
	s, err := fileio.ReadAnyMaps(f, h.Filename, headerRow)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errBadForm, h.Filename, err)
	}
	return s, nil
}

// resultBook собирает книгу для ответа: исходную с новыми листами либо новую только с результатами.
func (u *upload) resultBook(tables []model.NamedTable) (*excelize.File, []string, error) {
	if u.book != nil {
		names, err := fileio.AppendSheets(u.book, tables)
		return u.book, names, err
	}
	return fileio.NewWorkbook(tables)
}

func (u *upload) resultFilename(req model.Request) string {
	if u.filename != "" {
		return strings.TrimSuffix(filepath.Base(u.filename), filepath.Ext(u.filename)) + "_matched.xlsx"
	}
	return req.MatchedSheet() + ".xlsx"
}
