// Package scorer: метрики схожести строк.
//
// Scorer даёт целую оценку 0..100 и не зависит от порядка слов (для поиска кандидатов).
// PairScorer даёт 0..1 и чувствителен к порядку символов (для self-decide).
package scorer

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
	"github.com/hbollon/go-edlib"
)

const (
	NameTokenSort            = "token_sort"
	NameTokenSortLevenshtein = "token_sort_levenshtein"
	NameJaroWinkler          = "jaro_winkler"
	NameJaro                 = "jaro"
)

type Scorer interface {
	Score(a, b string) int
}

type PairScorer interface {
	Similarity(a, b string) float64
}

// New возвращает Scorer по имени из конфига ("" → token_sort).
func New(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameTokenSort:
		return TokenSort{}, nil
	case NameTokenSortLevenshtein:
		return TokenSortLevenshtein{}, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}

// NewPair возвращает PairScorer по имени ("" → jaro_winkler).
func NewPair(name string) (PairScorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameJaroWinkler:
		return JaroWinkler{}, nil
	case NameJaro:
		return Jaro{}, nil
	default:
		return nil, fmt.Errorf("unknown pair scorer %q", name)
	}
}

// ===== token sort =====

// TokenSort считает token_sort_ratio: токены сортируются, сравнение по InDel (2*LCS / сумма длин).
type TokenSort struct{}

func (TokenSort) Score(a, b string) int {
	sa, sb := tokenSort(process(a)), tokenSort(process(b))
	if sa == "" || sb == "" {
		return 0
	}
	total := utf8.RuneCountInString(sa) + utf8.RuneCountInString(sb)
	lcs := edlib.LCS(sa, sb)
	return percent(2 * float64(lcs) / float64(total))
}

// TokenSortLevenshtein: та же подготовка, оценка по расстоянию Левенштейна.
type TokenSortLevenshtein struct{}

func (TokenSortLevenshtein) Score(a, b string) int {
	sa, sb := tokenSort(process(a)), tokenSort(process(b))
	if sa == "" || sb == "" {
		return 0
	}
	m := utf8.RuneCountInString(sa)
	if n := utf8.RuneCountInString(sb); n > m {
		m = n
	}
	d := levenshtein.ComputeDistance(sa, sb)
	return percent(1 - float64(d)/float64(m))
}

// process: нижний регистр, всё кроме букв/цифр/_ → пробел, схлопнуть пробелы.
func process(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// tokenSort: сортируем токены по алфавиту (устойчиво к порядку слов)
func tokenSort(s string) string {
	t := strings.Fields(s)
	sort.Strings(t)
	return strings.Join(t, " ")
}

// округление до ближайшего чётного, как в исходных оценках (84.5 → 84)
func percent(ratio float64) int {
	v := int(math.RoundToEven(ratio * 100))
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// ===== pair =====

// JaroWinkler: классический Winkler (префикс до 4 символов, вес 0.1) без таблицы
// похожих символов strcmp95 и без поправки на длинные строки.
type JaroWinkler struct{}

func (JaroWinkler) Similarity(a, b string) float64 {
	if s, ok := trivial(a, b); ok {
		return s
	}
	return matchr.JaroWinkler(a, b, false)
}

type Jaro struct{}

var jaroMetric = metrics.NewJaro()

func (Jaro) Similarity(a, b string) float64 {
	if s, ok := trivial(a, b); ok {
		return s
	}
	return strutil.Similarity(a, b, jaroMetric)
}

// равные строки (в т.ч. две пустые) → 1, одна пустая → 0
func trivial(a, b string) (float64, bool) {
	switch {
	case a == b:
		return 1, true
	case a == "" || b == "":
		return 0, true
	}
	return 0, false
}
