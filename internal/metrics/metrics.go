package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"match-service/internal/match/model"
)

var (
	// runsTotal: status = ok | bad_request | error
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "runs_total",
		Help:      "Match runs by mode and outcome",
	}, []string{"mode", "status"})

	rowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "rows_processed_total",
		Help:      "Left rows scanned",
	}, []string{"mode"})

	matchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "matches_total",
		Help:      "Accepted matches (sentinel rows excluded)",
	}, []string{"mode"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "match",
		Name:      "run_duration_seconds",
		Help:      "Wall time of one match run",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 300},
	}, []string{"mode"})

	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match",
		Name:      "decisions_total",
		Help:      "Self-decide verdicts by label",
	}, []string{"label"})
)

const (
	StatusOK         = "ok"
	StatusBadRequest = "bad_request"
	StatusError      = "error"
)

// ObserveRun учитывает один прогон. rows: сколько левых строк прошло; res при ошибке nil.
func ObserveRun(mode model.Mode, status string, rows int, res *model.Result, elapsed time.Duration) {
	m := string(mode)
	if m == "" {
		m = string(model.ModeSimilarity)
	}
	runsTotal.WithLabelValues(m, status).Inc()
	runDuration.WithLabelValues(m).Observe(elapsed.Seconds())
	rowsProcessed.WithLabelValues(m).Add(float64(rows))
	if res == nil {
		return
	}
	matchesTotal.WithLabelValues(m).Add(float64(res.Matches))
	for label, n := range res.Decisions {
		decisionsTotal.WithLabelValues(label).Add(float64(n))
	}
}

// Progress запоминает последний Processed для ObserveRun и пробрасывает событие дальше.
type Progress struct {
	processed int
	next      model.ProgressFunc
}

func NewProgress(next model.ProgressFunc) *Progress { return &Progress{next: next} }

func (p *Progress) Func() model.ProgressFunc {
	return func(pr model.Progress) {
		p.processed = pr.Processed
		if p.next != nil {
			p.next(pr)
		}
	}
}

func (p *Progress) Processed() int { return p.processed }
