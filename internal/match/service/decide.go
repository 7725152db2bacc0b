package service

import (
	"fmt"
	"strings"

	"match-service/internal/match/model"
	"match-service/internal/match/scorer"
	"match-service/internal/utils"
)

// normalizeForPair: пусто → "", остальное в верхний регистр
func normalizeForPair(s string) string {
	return strings.ToUpper(utils.Cell(s))
}

// newVerdict: единственное место, где число совпавших критериев превращается в метку.
func newVerdict(count int, cols []string) (model.Verdict, error) {
	var label model.Label
	switch count {
	case 0:
		label = model.NotAMatch
	case 1:
		label = model.PossibleMatch
	case 2:
		label = model.LikelyMatch
	case 3:
		label = model.DefiniteMatch
	default:
		return model.Verdict{}, fmt.Errorf("%w: %d of %d criteria matched", ErrInvariant, count, len(model.Criteria{}))
	}
	v := model.Verdict{Count: count, Label: label}
	if label == model.PossibleMatch || label == model.LikelyMatch {
		v.Columns = cols
	}
	return v, nil
}

// evaluate считает вердикт для одной строки.
func evaluate(t *model.Table, r model.Row, cs model.Criteria, pair scorer.PairScorer) (model.Verdict, error) {
	count := 0
	var cols []string
	for _, c := range cs {
		l := normalizeForPair(t.Value(r, c.LeftColumn))
		rv := normalizeForPair(t.Value(r, c.RightColumn))
		if c.IgnoreIfBothBlank && l == "" && rv == "" {
			continue
		}
		if pair.Similarity(l, rv) >= float64(c.Threshold)/100 {
			count++
			cols = append(cols, c.LeftColumn)
		}
	}
	return newVerdict(count, cols)
}

// Decide оценивает каждую строку по трём критериям. Исходная таблица не меняется:
// возвращается копия с колонкой DECISION первой (существующая DECISION заменяется).
func Decide(t *model.Table, cs model.Criteria, opts Options) (*model.Table, []model.Verdict, error) {
	if err := ValidateCriteria(cs); err != nil {
		return nil, nil, err
	}
	for _, c := range cs {
		if err := requireColumn(t, c.LeftColumn); err != nil {
			return nil, nil, err
		}
		if err := requireColumn(t, c.RightColumn); err != nil {
			return nil, nil, err
		}
	}
	opts = opts.withDefaults()

	out := t.Clone()
	cols := make([]string, 0, len(out.Columns)+1)
	cols = append(cols, model.DecisionColumn)
	for _, c := range out.Columns {
		if c != model.DecisionColumn {
			cols = append(cols, c)
		}
	}
	out.Columns = cols

	verdicts := make([]model.Verdict, len(out.Rows))
	for i, r := range out.Rows {
		v, err := evaluate(t, t.Rows[i], cs, opts.Pair)
		if err != nil {
			return nil, nil, fmt.Errorf("left row %d: %w", r.ID, err)
		}
		r.Values[model.DecisionColumn] = v.String()
		verdicts[i] = v
	}
	opts.Logger.Debug().Int("rows", len(out.Rows)).Msg("self-decide done")
	return out, verdicts, nil
}
