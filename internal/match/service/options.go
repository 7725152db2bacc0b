package service

import (
	"github.com/rs/zerolog"

	"match-service/internal/match/model"
	"match-service/internal/match/scorer"
)

// Options задаёт зависимости прогона. Нулевое значение рабочее:
// token_sort + jaro_winkler, без прогресса, без логов.
type Options struct {
	Scorer   scorer.Scorer
	Pair     scorer.PairScorer
	Progress model.ProgressFunc
	Logger   *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Scorer == nil {
		o.Scorer = scorer.TokenSort{}
	}
	if o.Pair == nil {
		o.Pair = scorer.JaroWinkler{}
	}
	if o.Progress == nil {
		o.Progress = func(model.Progress) {}
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// NewOptions собирает Options по именам скореров из конфигурации.
func NewOptions(scorerName, pairName string, logger *zerolog.Logger) (Options, error) {
	sc, err := scorer.New(scorerName)
	if err != nil {
		return Options{}, configErr("%v", err)
	}
	pair, err := scorer.NewPair(pairName)
	if err != nil {
		return Options{}, configErr("%v", err)
	}
	return Options{Scorer: sc, Pair: pair, Logger: logger}, nil
}
