package metrics

import (
	"sync/atomic"
)

type Metrics struct {
	filterEvaluations int64
	locationResolved  int64
	locationFallbacks int64
	snapshotsSent     int64
	snapshotFails     int64
	activeSessions    int64
}

var global = &Metrics{}

func IncrementFilterEvaluations() {
	atomic.AddInt64(&global.filterEvaluations, 1)
}

func IncrementLocationResolved() {
	atomic.AddInt64(&global.locationResolved, 1)
}

func IncrementLocationFallbacks() {
	atomic.AddInt64(&global.locationFallbacks, 1)
}

func IncrementSnapshots() {
	atomic.AddInt64(&global.snapshotsSent, 1)
}

func IncrementSnapshotFails() {
	atomic.AddInt64(&global.snapshotFails, 1)
}

func SetActiveSessions(count int64) {
	atomic.StoreInt64(&global.activeSessions, count)
}

func GetFilterEvaluations() int64 {
	return atomic.LoadInt64(&global.filterEvaluations)
}

func GetLocationResolved() int64 {
	return atomic.LoadInt64(&global.locationResolved)
}

func GetLocationFallbacks() int64 {
	return atomic.LoadInt64(&global.locationFallbacks)
}

func GetSnapshots() int64 {
	return atomic.LoadInt64(&global.snapshotsSent)
}

func GetSnapshotFails() int64 {
	return atomic.LoadInt64(&global.snapshotFails)
}

func GetActiveSessions() int64 {
	return atomic.LoadInt64(&global.activeSessions)
}

func Reset() {
	atomic.StoreInt64(&global.filterEvaluations, 0)
	atomic.StoreInt64(&global.locationResolved, 0)
	atomic.StoreInt64(&global.locationFallbacks, 0)
	atomic.StoreInt64(&global.snapshotsSent, 0)
	atomic.StoreInt64(&global.snapshotFails, 0)
	atomic.StoreInt64(&global.activeSessions, 0)
	ResetMetrics()
}
