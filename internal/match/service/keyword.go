package service

import (
	"context"
	"fmt"

	"github.com/dlclark/regexp2"

	"match-service/internal/match/model"
)

// KeywordScore: фиксированная оценка для совпадения по ключевому слову.
const KeywordScore = 100

// wordPattern: значение целым словом, без учёта регистра.
// regexp2 понимает \b для любых букв (в т.ч. кириллицы), в отличие от RE2.
func wordPattern(val string) (*regexp2.Regexp, error) {
	return regexp2.Compile(`\b`+regexp2.Escape(val)+`\b`, regexp2.IgnoreCase)
}

// Keyword находит все правые строки, где значение левой колонки встречается целым словом.
// Левая строка без совпадений ничего не даёт (заглушек нет, в отличие от Fuzzy).
func Keyword(ctx context.Context, left, right *model.Table, leftCol, rightCol string, opts Options) (*model.Table, int, error) {
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
		Rows:    []model.Row{},
	}
	matches := 0
	total := len(left.Rows)

	for i, lr := range left.Rows {
		if err := ctx.Err(); err != nil {
			return nil, matches, err
		}
		val := left.Value(lr, leftCol)
		// пустое слово совпало бы с любой строкой
		if val != "" && len(right.Rows) > 0 {
			re, err := wordPattern(val)
			if err != nil {
				return nil, matches, fmt.Errorf("keyword %q (row %d): %w", val, lr.ID, err)
			}
			for j := range right.Rows {
				rr := right.Rows[j]
				ok, err := re.MatchString(right.Value(rr, rightCol))
				if err != nil {
					return nil, matches, fmt.Errorf("keyword %q (row %d): %w", val, lr.ID, err)
				}
				if !ok {
					continue
				}
				out.Rows = append(out.Rows, combine(left, lr, right, &rr, KeywordScore))
				matches++
			}
		}
		opts.Progress(model.Progress{Matches: matches, Processed: i + 1, Total: total})
	}
	return out, matches, nil
}
