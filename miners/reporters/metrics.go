package reporters

import (
	"strconv"
)

import (
	"github.com/prometheus/client_golang/prometheus"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/lattice"
)

// Metrics records the reported patterns in a prometheus registry. On Close
// the registry is written in the text exposition format to the named file
// in the output directory.
type Metrics struct {
	config   *config.Config
	filename string
	Registry *prometheus.Registry
	Frequent *prometheus.CounterVec
	Supports *prometheus.HistogramVec
	Level    prometheus.Gauge
}

func NewMetrics(c *config.Config, filename string) (*Metrics, error) {
	m := &Metrics{
		config:   c,
		filename: filename,
		Registry: prometheus.NewRegistry(),
		Frequent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apriori",
				Name:      "frequent_itemsets_total",
				Help:      "Frequent itemsets reported, by level.",
			},
			[]string{"level"},
		),
		Supports: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "apriori",
				Name:      "itemset_support",
				Help:      "Support of the reported itemsets, by level.",
				Buckets:   prometheus.LinearBuckets(.1, .1, 10),
			},
			[]string{"level"},
		),
		Level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "apriori",
			Name:      "max_level",
			Help:      "Highest level with a reported itemset.",
		}),
	}
	for _, c := range []prometheus.Collector{m.Frequent, m.Supports, m.Level} {
		if err := m.Registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Report(level int, p lattice.Pattern, support float64) error {
	l := strconv.Itoa(level)
	m.Frequent.WithLabelValues(l).Inc()
	m.Supports.WithLabelValues(l).Observe(support)
	m.Level.Set(float64(level))
	return nil
}

func (m *Metrics) Close() error {
	if m.filename == "" {
		return nil
	}
	return prometheus.WriteToTextfile(m.config.OutputFile(m.filename), m.Registry)
}
