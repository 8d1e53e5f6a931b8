// Package metric exports engine pass and run metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	collector := metric.NewPrometheusCollector(reg)
//	eng, _ := centroids.New(data, k, centroids.WithMetricsCollector(collector))
package metric
