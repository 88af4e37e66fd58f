// package prometheuscollector allows to expose metrics for Prometheus.
//
// Using the provided collector, you can easily expose the metrics of a
// zoofile.FS in the Prometheus exposition format (https://prometheus.io/docs/instrumenting/exposition_formats/):
//
//	fs, err := zoofile.NewFS(…)
//	collector := prometheuscollector.New(fs.Metrics)
//	prometheus.MustRegister(collector)
package prometheuscollector

import (
	"sync/atomic"

	"github.com/zoofs/zoofs/pkg/zoofile"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	classificationsTotalDesc = prometheus.NewDesc(
		"zoofs_classifications_total",
		"Total number of file or directory decisions per deciding signal.",
		[]string{"source"}, nil)
	storeErrorsTotalDesc = prometheus.NewDesc(
		"zoofs_store_errors_total",
		"Total number of failed store calls per operation.",
		[]string{"operation"}, nil)
	oversizedReadsDesc = prometheus.NewDesc(
		"zoofs_oversized_reads_total",
		"Number of content reads which needed a second read at full size.",
		nil, nil)
	readRestartsDesc = prometheus.NewDesc(
		"zoofs_read_restarts_total",
		"Number of content reads which started over because the payload changed.",
		nil, nil)
)

type Collector struct {
	metrics zoofile.Metrics
}

// New creates a new collector which read froms the provided Metrics struct.
func New(metrics zoofile.Metrics) Collector {
	return Collector{
		metrics: metrics,
	}
}

func (_ Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- classificationsTotalDesc
	descs <- storeErrorsTotalDesc
	descs <- oversizedReadsDesc
	descs <- readRestartsDesc
}

func (c Collector) Collect(metrics chan<- prometheus.Metric) {
	for source, valuePtr := range c.metrics.ClassificationsTotal {
		metrics <- prometheus.MustNewConstMetric(
			classificationsTotalDesc,
			prometheus.CounterValue,
			float64(atomic.LoadUint64(valuePtr)),
			source,
		)
	}

	for op, valuePtr := range c.metrics.StoreErrorsTotal {
		metrics <- prometheus.MustNewConstMetric(
			storeErrorsTotalDesc,
			prometheus.CounterValue,
			float64(atomic.LoadUint64(valuePtr)),
			op,
		)
	}

	metrics <- prometheus.MustNewConstMetric(
		oversizedReadsDesc,
		prometheus.CounterValue,
		float64(atomic.LoadUint64(c.metrics.OversizedReads)),
	)

	metrics <- prometheus.MustNewConstMetric(
		readRestartsDesc,
		prometheus.CounterValue,
		float64(atomic.LoadUint64(c.metrics.ReadRestarts)),
	)
}
