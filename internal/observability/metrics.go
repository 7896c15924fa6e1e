package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// flight log pipeline.
type Metrics struct {
	SheetsDiscovered prometheus.Counter
	SheetsRejected   prometheus.Counter

	LaunchesCollated    prometheus.Counter
	UtilizationCollated prometheus.Counter

	PipelineRunning prometheus.Gauge

	// Store synchronization metrics, labelled by collection.
	Backups         *prometheus.CounterVec   // labels: collection
	RecordsDeleted  *prometheus.CounterVec   // labels: collection
	RecordsInserted *prometheus.CounterVec   // labels: collection
	SyncDuration    *prometheus.HistogramVec // labels: collection
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SheetsDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "sheets_discovered_total",
			Help:      "Total candidate log sheet files found.",
		}),
		SheetsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "sheets_rejected_total",
			Help:      "Total log sheet files skipped due to parse or validation failure.",
		}),
		LaunchesCollated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "launches_collated_total",
			Help:      "Total launches in collated canonical batches.",
		}),
		UtilizationCollated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "utilization_collated_total",
			Help:      "Total aircraft utilization records in collated canonical batches.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flightlog_etl",
			Name:      "pipeline_running",
			Help:      "1 while a collate-and-sync run is active, 0 otherwise.",
		}),
		Backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "backups_total",
			Help:      "Pre-write collection snapshots taken, by collection.",
		}, []string{"collection"}),
		RecordsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "records_deleted_total",
			Help:      "Stored records removed by composite-key replacement, by collection.",
		}, []string{"collection"}),
		RecordsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flightlog_etl",
			Name:      "records_inserted_total",
			Help:      "Records inserted into the store, by collection.",
		}, []string{"collection"}),
		SyncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flightlog_etl",
			Name:      "sync_duration_seconds",
			Help:      "Duration of a complete backup-delete-insert cycle, by collection.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"collection"}),
	}

	prometheus.MustRegister(
		m.SheetsDiscovered,
		m.SheetsRejected,
		m.LaunchesCollated,
		m.UtilizationCollated,
		m.PipelineRunning,
		m.Backups,
		m.RecordsDeleted,
		m.RecordsInserted,
		m.SyncDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SheetsDiscovered:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "sheets_discovered_total"}),
		SheetsRejected:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "sheets_rejected_total"}),
		LaunchesCollated:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "launches_collated_total"}),
		UtilizationCollated: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "utilization_collated_total"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flightlog_etl", Name: "pipeline_running"}),
		Backups:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "backups_total"}, []string{"collection"}),
		RecordsDeleted:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "records_deleted_total"}, []string{"collection"}),
		RecordsInserted:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flightlog_etl", Name: "records_inserted_total"}, []string{"collection"}),
		SyncDuration:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "flightlog_etl", Name: "sync_duration_seconds"}, []string{"collection"}),
	}
}
