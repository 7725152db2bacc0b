package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/config"
	"match-service/internal/match/model"
)

func createWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Customers"))
	require.NoError(t, f.SetSheetRow("Customers", "A1", &[]interface{}{"Name", "City"}))
	require.NoError(t, f.SetSheetRow("Customers", "A2", &[]interface{}{"Jon Smith", "London"}))
	require.NoError(t, f.SetSheetRow("Customers", "A3", &[]interface{}{"Zed", ""}))
	_, err := f.NewSheet("Vendors")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Vendors", "A1", &[]interface{}{"Name", "City"}))
	require.NoError(t, f.SetSheetRow("Vendors", "A2", &[]interface{}{"John Smyth", "London"}))

	p := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func sheetList(t *testing.T, path string) []string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	return f.GetSheetList()
}

func TestRun_Flags(t *testing.T) {
	book := createWorkbook(t)
	out, err := execCLI(t, "run",
		"--workbook", book,
		"--left", "Customers", "--right", "Vendors",
		"--left-col", "Name", "--right-col", "Name",
		"--sd", "90:City:City", "--sd", "95:Name:Name", "--sd", "90:City:City:skip",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Row Matches Found: 1")
	assert.Contains(t, out, "sheet: FLU_Customers_Vendors")
	assert.Contains(t, out, "sheet: SD_Customers_Vendors")
	assert.Equal(t, []string{"Customers", "Vendors", "FLU_Customers_Vendors", "SD_Customers_Vendors"}, sheetList(t, book))

	// повторный прогон не затирает прошлые листы
	_, err = execCLI(t, "run", "--workbook", book, "--left", "Customers", "--right", "Vendors",
		"--left-col", "Name", "--right-col", "Name")
	require.NoError(t, err)
	assert.Contains(t, sheetList(t, book), "FLU_Customers_Vendors1")
}

func TestRun_JobFileWithOut(t *testing.T) {
	book := createWorkbook(t)
	dir := t.TempDir()
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte(`
workbook: `+book+`
left: Customers
right: Vendors
left_col: Name
right_col: Name
mode: keyword
`), 0o644))
	out := filepath.Join(dir, "result.xlsx")

	_, err := execCLI(t, "run", "--job", job, "--out", out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Customers", "Vendors", "KWS_Customers_Vendors"}, sheetList(t, out))
	assert.Equal(t, []string{"Customers", "Vendors"}, sheetList(t, book))
}

func TestRun_Errors(t *testing.T) {
	book := createWorkbook(t)
	cases := map[string][]string{
		"no workbook":   {"run", "--left", "Customers"},
		"two criteria":  {"run", "--workbook", book, "--sd", "90:A:B", "--sd", "90:A:B"},
		"bad threshold": {"run", "--workbook", book, "--left", "Customers", "--right", "Vendors", "--left-col", "Name", "--right-col", "Name", "--threshold", "101"},
		"bad column":    {"run", "--workbook", book, "--left", "Customers", "--right", "Vendors", "--left-col", "Name", "--right-col", "Phone"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := execCLI(t, args...)
			require.Error(t, err)
		})
	}
	assert.Equal(t, []string{"Customers", "Vendors"}, sheetList(t, book))
}

func TestParseCriterion(t *testing.T) {
	c, err := parseCriterion("80:City:City:skip")
	require.NoError(t, err)
	assert.Equal(t, model.Criterion{Threshold: 80, LeftColumn: "City", RightColumn: "City", IgnoreIfBothBlank: true}, c)

	for _, bad := range []string{"80:City", "x:City:City", "80:A:B:maybe"} {
		_, err := parseCriterion(bad)
		assert.ErrorIs(t, err, config.ErrJob, bad)
	}
}

func TestSheets(t *testing.T) {
	out, err := execCLI(t, "sheets", createWorkbook(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Customers (2 rows)")
	assert.Contains(t, out, "  Name.Vendors")
}
