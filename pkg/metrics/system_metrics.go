package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// SystemMetrics tracks events handled by live sessions and gRPC calls.
type SystemMetrics struct {
	EventsProcessed atomic.Int64
	EventsFailed    atomic.Int64
	AverageLatency  atomic.Int64
	PeakLatency     atomic.Int64
	ErrorRate       atomic.Int64

	mu            sync.Mutex
	lastResetTime time.Time
}

var systemMetrics = &SystemMetrics{
	lastResetTime: time.Now(),
}

func RecordEventProcessed() {
	systemMetrics.EventsProcessed.Add(1)
}

func RecordEventFailed() {
	systemMetrics.EventsFailed.Add(1)
	total := systemMetrics.EventsProcessed.Load()
	failed := systemMetrics.EventsFailed.Load()
	if total > 0 {
		systemMetrics.ErrorRate.Store((failed * 100) / total)
	}
}

// RecordLatency folds one event's handling time in microseconds into the
// running average. Call after RecordEventProcessed.
func RecordLatency(latencyMicros int64) {
	current := systemMetrics.AverageLatency.Load()
	processed := systemMetrics.EventsProcessed.Load()

	if processed > 0 {
		newAvg := (current*(processed-1) + latencyMicros) / processed
		systemMetrics.AverageLatency.Store(newAvg)
	}

	for {
		peak := systemMetrics.PeakLatency.Load()
		if latencyMicros <= peak || systemMetrics.PeakLatency.CompareAndSwap(peak, latencyMicros) {
			break
		}
	}
}

func GetSystemMetrics() map[string]int64 {
	return map[string]int64{
		"events_processed":       systemMetrics.EventsProcessed.Load(),
		"events_failed":          systemMetrics.EventsFailed.Load(),
		"average_latency_micros": systemMetrics.AverageLatency.Load(),
		"peak_latency_micros":    systemMetrics.PeakLatency.Load(),
		"error_rate":             systemMetrics.ErrorRate.Load(),
	}
}

func ResetMetrics() {
	systemMetrics.EventsProcessed.Store(0)
	systemMetrics.EventsFailed.Store(0)
	systemMetrics.AverageLatency.Store(0)
	systemMetrics.PeakLatency.Store(0)
	systemMetrics.ErrorRate.Store(0)
	systemMetrics.mu.Lock()
	systemMetrics.lastResetTime = time.Now()
	systemMetrics.mu.Unlock()
}

func GetUptime() time.Duration {
	systemMetrics.mu.Lock()
	defer systemMetrics.mu.Unlock()
	return time.Since(systemMetrics.lastResetTime)
}
