package service

import (
	"context"
	"sort"

	"match-service/internal/match/model"
	"match-service/internal/match/scorer"
)

// кандидат из правой таблицы
type candidate struct {
	row   int // позиция в right.Rows
	score int
}

// rank: оценки против всех правых строк по убыванию; равные идут в порядке правой таблицы.
func rank(query string, right *model.Table, col string, limit int, sc scorer.Scorer) []candidate {
	cands := make([]candidate, len(right.Rows))
	for i, rr := range right.Rows {
		cands[i] = candidate{row: i, score: sc.Score(query, right.Value(rr, col))}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

// accept оставляет кандидатов с score >= threshold.
// Пустой результат означает заглушку: строка слева без пары, score 0.
func accept(top []candidate, threshold int) []candidate {
	out := make([]candidate, 0, len(top))
	for _, c := range top {
		if c.score >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// Fuzzy выполняет нечеткое сопоставление: для каждой левой строки до limit лучших правых.
// Каждая левая строка даёт минимум одну строку результата (заглушку, если пары нет).
// Возвращает таблицу и число реальных совпадений (заглушки не считаются).
func Fuzzy(ctx context.Context, left, right *model.Table, leftCol, rightCol string, threshold, limit int, opts Options) (*model.Table, int, error) {
	if err := checkThreshold("threshold", threshold); err != nil {
		return nil, 0, err
	}
	if err := checkLimit(limit); err != nil {
		return nil, 0, err
	}
	if err := requireColumn(left, leftCol); err != nil {
		return nil, 0, err
	}
	if err := requireColumn(right, rightCol); err != nil {
		return nil, 0, err
	}
	opts = opts.withDefaults()

	out := &model.Table{
		Name:    combinedName(left, right),
		Columns: combinedColumns(left, right),
		Rows:    make([]model.Row, 0, len(left.Rows)),
	}
	matches := 0
	total := len(left.Rows)

	for i, lr := range left.Rows {
		if err := ctx.Err(); err != nil {
			return nil, matches, err
		}
		top := rank(left.Value(lr, leftCol), right, rightCol, limit, opts.Scorer)
		hits := accept(top, threshold)

		if len(hits) == 0 {
			out.Rows = append(out.Rows, combine(left, lr, right, nil, 0))
		}
		for _, h := range hits {
			rr := right.Rows[h.row]
			out.Rows = append(out.Rows, combine(left, lr, right, &rr, h.score))
			matches++
		}

		if len(top) > 0 {
			opts.Logger.Trace().
				Int("left_id", lr.ID).
				Int("best_right_id", right.Rows[top[0].row].ID).
				Int("best_score", top[0].score).
				Int("accepted", len(hits)).
				Msg("fuzzy row")
		}
		opts.Progress(model.Progress{Matches: matches, Processed: i + 1, Total: total})
	}
	return out, matches, nil
}
