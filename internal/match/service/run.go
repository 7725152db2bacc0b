package service

import (
	"context"
	"time"

	"match-service/internal/match/model"
)

// Workbook отдаёт листы по имени; загрузка снаружи.
type Workbook interface {
	Sheet(name string) (*model.Table, bool)
}

// Sheets: простая реализация Workbook поверх map.
type Sheets map[string]*model.Table

func (s Sheets) Sheet(name string) (*model.Table, bool) {
	t, ok := s[name]
	return t, ok
}

// Run — один прогон: проверка параметров, Fuzzy или Keyword, затем (опционально) Decide.
// Все ошибки конфигурации и данных ловятся до начала прохода; частичного результата нет.
func Run(ctx context.Context, book Workbook, req model.Request, opts Options) (*model.Result, error) {
	start := time.Now()
	opts = opts.withDefaults()

	if err := Validate(req); err != nil {
		return nil, err
	}
	left, ok := book.Sheet(req.LeftSheet)
	if !ok {
		return nil, configErr("sheet %q not found", req.LeftSheet)
	}
	right, ok := book.Sheet(req.RightSheet)
	if !ok {
		return nil, configErr("sheet %q not found", req.RightSheet)
	}

	leftCol, err := resolveColumn(left, req.LeftColumn)
	if err != nil {
		return nil, err
	}
	rightCol, err := resolveColumn(right, req.RightColumn)
	if err != nil {
		return nil, err
	}

	// колонки self-decide проверяем заранее: слева из левого листа, справа из правого
	var criteria *model.Criteria
	if req.SelfDecide != nil {
		cs := *req.SelfDecide
		for i := range cs {
			if cs[i].LeftColumn, err = resolveColumn(left, cs[i].LeftColumn); err != nil {
				return nil, err
			}
			if cs[i].RightColumn, err = resolveColumn(right, cs[i].RightColumn); err != nil {
				return nil, err
			}
		}
		criteria = &cs
	}

	log := opts.Logger.With().
		Str("mode", string(req.Mode)).
		Str("left", req.LeftSheet).
		Str("right", req.RightSheet).
		Logger()
	log.Info().
		Int("left_rows", left.Len()).
		Int("right_rows", right.Len()).
		Int("threshold", req.Threshold).
		Int("limit", req.Limit).
		Bool("self_decide", criteria != nil).
		Msg("match started")

	var (
		matched *model.Table
		matches int
	)
	switch req.Mode {
	case model.ModeKeyword:
		matched, matches, err = Keyword(ctx, left, right, leftCol, rightCol, opts)
	default:
		matched, matches, err = Fuzzy(ctx, left, right, leftCol, rightCol, req.Threshold, req.Limit, opts)
	}
	if err != nil {
		return nil, err
	}
	matched.Name = req.MatchedSheet()

	res := &model.Result{
		Matched: model.NamedTable{Sheet: req.MatchedSheet(), Table: matched},
		Matches: matches,
	}
	if criteria != nil {
		decided, verdicts, err := Decide(matched, *criteria, opts)
		if err != nil {
			return nil, err
		}
		res.Decisions = make(map[string]int, 4)
		for _, v := range verdicts {
			res.Decisions[v.Label.String()]++
		}
		decided.Name = req.DecidedSheet()
		res.Decided = &model.NamedTable{Sheet: req.DecidedSheet(), Table: decided}
	}

	log.Info().
		Int("rows", matched.Len()).
		Int("matches", matches).
		Dur("elapsed", time.Since(start)).
		Msg("match done")
	return res, nil
}
