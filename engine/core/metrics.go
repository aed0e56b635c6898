package core

import (
	"sync"
	"time"
)

const avgCount = 30

type MetricsState struct {
	mu               sync.Mutex
	durations        [avgCount]time.Duration
	durationCursor   int
	durationsSampled bool
	avg              time.Duration
	succeeded        uint64
	failed           uint64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return nil
}

// MetricsRecordJob folds one finished job into the rolling duration average
// and the success/failure counters.
func MetricsRecordJob(elapsed time.Duration, failed bool) {
	if metricsState == nil {
		return
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()

	metricsState.durations[metricsState.durationCursor] = elapsed
	if metricsState.durationCursor == avgCount-1 {
		var total time.Duration
		for i := 0; i < avgCount; i++ {
			total += metricsState.durations[i]
		}
		metricsState.avg = total / avgCount
		metricsState.durationsSampled = true
	}
	metricsState.durationCursor++
	metricsState.durationCursor %= avgCount

	if failed {
		metricsState.failed++
	} else {
		metricsState.succeeded++
	}
}

// MetricsJobAverage returns the rolling average job duration. Zero until a
// full window of samples has been collected.
func MetricsJobAverage() time.Duration {
	if metricsState == nil {
		return 0
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.avg
}

func MetricsJobCounts() (succeeded uint64, failed uint64) {
	if metricsState == nil {
		return 0, 0
	}
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.succeeded, metricsState.failed
}
