package nfh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts search and evaluator activity. A nil *Metrics records
// nothing.
type Metrics struct {
	searches       *prometheus.CounterVec
	keysExpanded   prometheus.Counter
	memoHits       prometheus.Counter
	searchDuration prometheus.Histogram
	branches       *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nfh_searches_total",
			Help: "Run searches by verdict",
		}, []string{"verdict"}),
		keysExpanded: f.NewCounter(prometheus.CounterOpts{
			Name: "nfh_search_keys_expanded_total",
			Help: "Distinct (state, cursor) keys expanded by run searches",
		}),
		memoHits: f.NewCounter(prometheus.CounterOpts{
			Name: "nfh_search_memo_hits_total",
			Help: "Child keys skipped because they were already resolved",
		}),
		searchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nfh_search_duration_seconds",
			Help:    "Wall-clock duration of a run search",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		}),
		branches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nfh_quantifier_branches_total",
			Help: "Hyperword words bound by the evaluator, by quantifier",
		}, []string{"quantifier"}),
	}
}

func (m *Metrics) observeSearch(res SearchResult) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(res.Verdict.String()).Inc()
	m.keysExpanded.Add(float64(res.Stats.Expanded))
	m.memoHits.Add(float64(res.Stats.MemoHits))
	m.searchDuration.Observe(res.Stats.Elapsed.Seconds())
}

func (m *Metrics) observeBranch(q Quantifier) {
	if m == nil {
		return
	}
	m.branches.WithLabelValues(q.String()).Inc()
}
