package fileio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/match/model"
)

func TestPickHeader(t *testing.T) {
	rows := [][]string{{"Name", "", " City ", "Name", "Name"}}
	require.Equal(t, []string{"Name", "Column 2", "City", "Name.1", "Name.2"}, pickHeader(rows, 1))
	require.Nil(t, pickHeader(nil, 1))

	// сгенерированный суффикс не должен совпасть с уже существующим заголовком
	require.Equal(t, []string{"Name", "Name.1", "Name.2"}, pickHeader([][]string{{"Name", "Name.1", "Name"}}, 1))
	require.Equal(t, []string{"Name", "Name.1", "Name.1.1"}, pickHeader([][]string{{"Name", "Name", "Name.1"}}, 1))
	require.Equal(t, []string{"Column 2", "Column 2.1"}, pickHeader([][]string{{"Column 2", ""}}, 1))
}

func TestReadAnyMaps_RepeatedHeaderKeepsValues(t *testing.T) {
	s, err := ReadAnyMaps(strings.NewReader("Name,Name.1,Name\nalice,bob,carol\n"), "x.csv", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Name.1", "Name.2"}, s.Header)
	require.Equal(t, []map[string]string{{"Name": "alice", "Name.1": "bob", "Name.2": "carol"}}, s.Records)
}

func TestReadAnyMaps_XLS(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("this is not an OLE2 file"), "legacy.XLS", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not an excel file")

	_, _, err = readXLS(strings.NewReader(""), 0)
	require.Error(t, err)
}

func TestRowsToMaps_SkipsEmpty(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{"1", "2"},
		{"", "  "},
		{"3"},
	}
	got := rowsToMaps(rows, []string{"A", "B"}, 1)
	require.Equal(t, []map[string]string{
		{"A": "1", "B": "2"},
		{"A": "3", "B": ""},
	}, got)
}

func TestReadAnyMaps_CSV(t *testing.T) {
	src := "\uFEFFName,City\nJon Smith,London\n,\nAcme,Leeds\n"
	s, err := ReadAnyMaps(strings.NewReader(src), "/tmp/customers.csv", 1)
	require.NoError(t, err)
	require.Equal(t, "customers", s.Name)
	require.Equal(t, []string{"Name", "City"}, s.Header)
	require.Len(t, s.Records, 2)
	require.Equal(t, "Leeds", s.Records[1]["City"])

	tb := s.Table()
	require.Equal(t, []string{"Name.customers", "City.customers"}, tb.Columns)
	require.Equal(t, 1, tb.Rows[1].ID)
}

func TestReadAnyMaps_Unsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("x"), "data.ods", 1)
	require.Error(t, err)
}

func TestSheetName(t *testing.T) {
	long := "FLU_AVeryLongLeftSheetName_AnotherLongRightSheet"
	require.Equal(t, long[:30], SheetName(nil, long))
	require.Equal(t, "FLU_a_b", SheetName([]string{"Sheet1"}, "FLU_a_b"))
	require.Equal(t, "FLU_a_b1", SheetName([]string{"FLU_a_b"}, "FLU_a_b"))
	require.Equal(t, "FLU_a_b2", SheetName([]string{"flu_a_b", "FLU_a_b1"}, "FLU_a_b"))
	require.Equal(t, long[:30]+"1", SheetName([]string{long[:30]}, long))

	full := []string{long[:30]}
	for i := 1; i <= 10; i++ {
		full = append(full, SheetName(full, long))
	}
	require.Equal(t, long[:29]+"10", full[10])
	for _, n := range full {
		require.LessOrEqual(t, len(n), 31)
	}
}

func sampleWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Left"))
	require.NoError(t, f.SetSheetRow("Left", "A1", &[]interface{}{"Name", "Qty"}))
	require.NoError(t, f.SetSheetRow("Left", "A2", &[]interface{}{"Jon Smith", 3}))
	_, err := f.NewSheet("Right")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Right", "A1", &[]interface{}{"Name"}))
	require.NoError(t, f.SetSheetRow("Right", "A2", &[]interface{}{"John Smyth"}))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := sampleWorkbook(t)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	wb, err := ReadWorkbook(f, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"Left", "Right"}, wb.Names())

	tables := wb.Tables()
	left := tables["Left"]
	require.Equal(t, []string{"Name.Left", "Qty.Left"}, left.Columns)
	require.Equal(t, "3", left.Value(left.Rows[0], "Qty.Left"))
	require.Equal(t, "John Smyth", tables["Right"].Rows[0].Values["Name.Right"])
}

func resultTable() *model.Table {
	return &model.Table{
		Name:    "FLU_Left_Right",
		Columns: []string{"Name.Left", "Name.Right", model.ScoreColumn},
		Rows: []model.Row{
			{ID: 0, Values: map[string]string{"Name.Left": "Jon Smith", "Name.Right": "John Smyth", model.ScoreColumn: "84"}},
			{ID: 1, Values: map[string]string{"Name.Left": "Zed", model.ScoreColumn: "0"}},
		},
	}
}

func TestAppendToFile(t *testing.T) {
	path := sampleWorkbook(t)
	tables := []model.NamedTable{{Sheet: "FLU_Left_Right", Table: resultTable()}}

	names, err := AppendToFile(path, "", tables)
	require.NoError(t, err)
	require.Equal(t, []string{"FLU_Left_Right"}, names)

	// второй прогон не затирает первый
	names, err = AppendToFile(path, "", tables)
	require.NoError(t, err)
	require.Equal(t, []string{"FLU_Left_Right1"}, names)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Left", "Right", "FLU_Left_Right", "FLU_Left_Right1"}, f.GetSheetList())

	rows, err := f.GetRows("FLU_Left_Right")
	require.NoError(t, err)
	require.Equal(t, []string{"Name.Left", "Name.Right", model.ScoreColumn}, rows[0])
	require.Equal(t, []string{"Jon Smith", "John Smyth", "84"}, rows[1])
	require.Equal(t, "Zed", rows[2][0])

	typ, err := f.GetCellType("FLU_Left_Right", "C2")
	require.NoError(t, err)
	require.NotEqual(t, excelize.CellTypeSharedString, typ)
	require.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestNewWorkbook(t *testing.T) {
	f, names, err := NewWorkbook([]model.NamedTable{{Sheet: "KWS_a_b", Table: resultTable()}})
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"KWS_a_b"}, names)
	require.Equal(t, []string{"KWS_a_b"}, f.GetSheetList())

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NotZero(t, buf.Len())
}
