package metrics

import "time"

// RecordStorageRequest records object storage call metrics
func (m *Metrics) RecordStorageRequest(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStorageRequest", func() {
		status := "ok"
		if err != nil {
			status = "error"
			m.StorageErrors.WithLabelValues(operation).Inc()
		}
		m.StorageRequestsTotal.WithLabelValues(operation, status).Inc()
		m.StorageRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	})
}
