package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecodeTotal counts decode calls by outcome: ok, or the error kind.
	DecodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribelog_decode_total",
			Help: "Tribe log decode attempts by result",
		},
		[]string{"result"},
	)

	DecodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tribelog_decode_duration_seconds",
			Help:    "Time spent reading and decoding the save file",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	SaveFileBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tribelog_save_file_bytes",
			Help: "Size of the most recently read save file",
		},
	)

	LogLines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tribelog_lines",
			Help: "Number of lines in the most recently decoded tribe log",
		},
	)

	CountMismatchTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tribelog_count_mismatch_total",
			Help: "Decodes where the declared entry count differed from the entries read",
		},
	)
)
