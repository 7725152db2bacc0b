package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tb := NewTable("Customers", []string{"Name", "City"}, []map[string]string{
		{"Name": "Jon", "City": "\u00A0 "},
		{"Name": "Ann"},
	})
	require.Equal(t, []string{"Name.Customers", "City.Customers"}, tb.Columns)
	require.Equal(t, 2, tb.Len())
	require.Equal(t, "", tb.Value(tb.Rows[0], "City.Customers"))
	require.Equal(t, "", tb.Value(tb.Rows[1], "City.Customers"))
	require.Equal(t, 1, tb.Rows[1].ID)
	require.True(t, tb.Has("Name.Customers"))
	require.False(t, tb.Has("Name"))
	require.Equal(t, [][]string{{"Jon", ""}, {"Ann", ""}}, tb.Matrix())
}

func TestClone(t *testing.T) {
	tb := NewTable("S", []string{"A"}, []map[string]string{{"A": "x"}})
	c := tb.Clone()
	c.Rows[0].Values["A.S"] = "y"
	c.Columns[0] = "B"
	require.Equal(t, "x", tb.Rows[0].Values["A.S"])
	require.Equal(t, "A.S", tb.Columns[0])
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeSimilarity, "Fuzzy": ModeSimilarity, " KWS ": ModeKeyword, "keyword": ModeKeyword} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseMode("regex")
	require.Error(t, err)
}

func TestRequestSheets(t *testing.T) {
	req := Request{LeftSheet: "L", RightSheet: "R", Mode: ModeKeyword}
	require.Equal(t, "KWS_L_R", req.MatchedSheet())
	require.Equal(t, "SD_L_R", req.DecidedSheet())
	req.Mode = ModeSimilarity
	require.Equal(t, "FLU_L_R", req.MatchedSheet())

	res := &Result{Matched: NamedTable{Sheet: "FLU_L_R"}}
	require.Len(t, res.Tables(), 1)
	res.Decided = &NamedTable{Sheet: "SD_L_R"}
	require.Equal(t, "SD_L_R", res.Tables()[1].Sheet)
}

func TestVerdictString(t *testing.T) {
	cases := []struct {
		v    Verdict
		want string
	}{
		{Verdict{Count: 0, Label: NotAMatch}, "0/3, Not a Match"},
		{Verdict{Count: 1, Label: PossibleMatch, Columns: []string{"City.A"}}, "1/3, Possible Match: City.A"},
		{Verdict{Count: 2, Label: LikelyMatch, Columns: []string{"City.A", "Name.A"}}, "2/3, Likely Match, confirm: City.A, Name.A"},
		{Verdict{Count: 3, Label: DefiniteMatch, Columns: []string{"a", "b", "c"}}, "3/3, Definite Match"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.v.String())
	}
}
