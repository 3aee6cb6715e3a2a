// Package metrics exposes the download counters and
// histograms the teacher's own HealthLogger wires up for node health but
// never connects to any outbound transfer path. Here they're given a real
// home against the one place mcpkg actually moves bytes: the downloader.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Downloads groups the counters and histograms exercised by
// internal/download's Fetch/run path.
type Downloads struct {
	Registry *prometheus.Registry

	FetchesStarted  prometheus.Counter
	FetchesSucceeded prometheus.Counter
	FetchesFailed   prometheus.Counter
	DigestMismatches prometheus.Counter
	FetchDuration   prometheus.Histogram
	BytesWritten    prometheus.Histogram
}

// NewDownloads builds a Downloads metric set registered against its own
// prometheus.Registry, so callers can expose it on a dedicated /metrics
// route without pulling in unrelated global collectors.
func NewDownloads() *Downloads {
	reg := prometheus.NewRegistry()

	d := &Downloads{
		Registry: reg,
		FetchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcpkg_fetches_started_total",
			Help: "Total number of downloader fetch jobs started",
		}),
		FetchesSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcpkg_fetches_succeeded_total",
			Help: "Total number of downloader fetch jobs completed successfully",
		}),
		FetchesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcpkg_fetches_failed_total",
			Help: "Total number of downloader fetch jobs that failed",
		}),
		DigestMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcpkg_digest_mismatches_total",
			Help: "Total number of fetches rejected for a digest mismatch",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mcpkg_fetch_duration_seconds",
			Help:    "Duration of a single downloader fetch job",
			Buckets: prometheus.DefBuckets,
		}),
		BytesWritten: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mcpkg_fetch_bytes_written",
			Help:    "Size in bytes of artifacts written by the downloader",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}

	reg.MustRegister(
		d.FetchesStarted,
		d.FetchesSucceeded,
		d.FetchesFailed,
		d.DigestMismatches,
		d.FetchDuration,
		d.BytesWritten,
	)
	return d
}
