package metrics

import (
	"sync"

	"pagesim/internal/router"
)

// Metrics はルーティング結果の件数を数える
type Metrics struct {
	mu sync.RWMutex

	served     int64
	fallback   int64
	redirected int64
	notFound   int64
	rejected   int64
}

// NewMetrics は新しいMetricsを作成する
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record はルーティング結果を1件記録する
func (m *Metrics) Record(d router.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch d.Kind {
	case router.KindServe:
		if d.Fallback {
			m.fallback++
		} else {
			m.served++
		}
	case router.KindRedirect:
		m.redirected++
	case router.KindNotFound:
		m.notFound++
	case router.KindMethodNotAllowed:
		m.rejected++
	}
}

// GetSnapshot は現在の件数のスナップショットを返す
func (m *Metrics) GetSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]int64{
		"served":     m.served,
		"fallback":   m.fallback,
		"redirected": m.redirected,
		"not_found":  m.notFound,
		"rejected":   m.rejected,
	}
}
