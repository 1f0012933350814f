package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"spamlab/internal/counter"
)

const namespace = "spamlab"

var (
	submissionsDesc = prometheus.NewDesc(
		namespace+"_contact_submissions",
		"Contact form submissions recorded by the submission counter",
		nil,
		nil,
	)

	predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Messages scored by the keyword heuristic, by verdict",
		},
		[]string{"verdict"},
	)

	keywordHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyword_hits_total",
			Help:      "Lexicon keywords found in scored messages",
		},
		[]string{"keyword"},
	)
)

// SubmissionCollector is a custom Prometheus collector that reads the
// submission counter on each scrape.
type SubmissionCollector struct {
	counter counter.Counter
	logger  *zap.Logger
	timeout time.Duration
}

// NewSubmissionCollector returns a collector over c.
func NewSubmissionCollector(c counter.Counter, logger *zap.Logger) *SubmissionCollector {
	return &SubmissionCollector{counter: c, logger: logger, timeout: 2 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *SubmissionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- submissionsDesc
}

// Collect reads the current count and emits it as a gauge.
func (c *SubmissionCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	n, err := c.counter.Get(ctx)
	if err != nil {
		c.logger.Error("Failed to collect submission count", zap.Error(err))
		return
	}
	ch <- prometheus.MustNewConstMetric(submissionsDesc, prometheus.GaugeValue, float64(n))
}

var initOnce sync.Once

// Init registers every collector with the default registry. spamCount feeds the
// "spam sent today" gauge. Must be called once at startup; later calls are no-ops.
func Init(c counter.Counter, spamCount func() int64, logger *zap.Logger) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			predictions,
			keywordHits,
			NewSubmissionCollector(c, logger),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "spam_ticker",
				Help:      "Simulated number of spam emails sent today",
			}, func() float64 { return float64(spamCount()) }),
		)
	})
}

// RecordPrediction counts one scored message and the keywords it matched.
func RecordPrediction(isSpam bool, keywords []string) {
	verdict := "ham"
	if isSpam {
		verdict = "spam"
	}
	predictions.WithLabelValues(verdict).Inc()
	for _, k := range keywords {
		keywordHits.WithLabelValues(k).Inc()
	}
}
