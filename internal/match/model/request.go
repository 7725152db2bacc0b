package model

import "fmt"

// Request описывает параметры одного прогона.
type Request struct {
	LeftSheet   string    `json:"leftSheet"`
	RightSheet  string    `json:"rightSheet"`
	LeftColumn  string    `json:"leftColumn"`
	RightColumn string    `json:"rightColumn"`
	Threshold   int       `json:"threshold"` // 0..100
	Limit       int       `json:"limit"`     // 1..10
	Mode        Mode      `json:"mode"`
	SelfDecide  *Criteria `json:"selfDecide,omitempty"` // nil: без self-decide
}

// MatchedSheet: FLU_<left>_<right> / KWS_<left>_<right>.
func (r Request) MatchedSheet() string {
	return fmt.Sprintf("%s_%s_%s", r.Mode.Prefix(), r.LeftSheet, r.RightSheet)
}

func (r Request) DecidedSheet() string {
	return fmt.Sprintf("%s_%s_%s", DecidedPrefix, r.LeftSheet, r.RightSheet)
}

type NamedTable struct {
	Sheet string `json:"sheet"`
	Table *Table `json:"table"`
}

type Result struct {
	Matched   NamedTable     `json:"matched"`
	Decided   *NamedTable    `json:"decided,omitempty"`
	Matches   int            `json:"matches"`
	Decisions map[string]int `json:"decisions,omitempty"` // строк по каждому вердикту self-decide
}

// Tables: всё, что надо записать, в порядке записи.
func (r *Result) Tables() []NamedTable {
	out := []NamedTable{r.Matched}
	if r.Decided != nil {
		out = append(out, *r.Decided)
	}
	return out
}
