package model

import (
	"fmt"
	"strings"
)

// Criterion: одно сравнение пары колонок для self-decide.
type Criterion struct {
	Threshold         int    `json:"threshold" yaml:"threshold"` // 0..100
	LeftColumn        string `json:"left" yaml:"left"`
	RightColumn       string `json:"right" yaml:"right"`
	IgnoreIfBothBlank bool   `json:"skipBlank" yaml:"skip_blank"` // оба пустые → критерий не учитывается
}

// Criteria: ровно три критерия, нумерация 1..3.
type Criteria [3]Criterion

// DefaultCriterionThreshold: порог критерия, если не задан явно.
const DefaultCriterionThreshold = 75

// Label: вердикт по числу совпавших критериев.
type Label int

const (
	NotAMatch Label = iota
	PossibleMatch
	LikelyMatch
	DefiniteMatch
)

func (l Label) String() string {
	switch l {
	case NotAMatch:
		return "Not a Match"
	case PossibleMatch:
		return "Possible Match"
	case LikelyMatch:
		return "Likely Match, confirm"
	case DefiniteMatch:
		return "Definite Match"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

type Verdict struct {
	Count   int      `json:"count"`
	Label   Label    `json:"label"`
	Columns []string `json:"columns,omitempty"`
}

// String: "{count}/3, {label}[: col1, col2]". Для 0 и 3 колонки не перечисляются.
func (v Verdict) String() string {
	s := fmt.Sprintf("%d/%d, %s", v.Count, len(Criteria{}), v.Label)
	if (v.Label == PossibleMatch || v.Label == LikelyMatch) && len(v.Columns) > 0 {
		s += ": " + strings.Join(v.Columns, ", ")
	}
	return s
}
