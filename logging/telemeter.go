// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netapp/xtremio-driver/config"
	"github.com/netapp/xtremio-driver/pkg/convert"
	"github.com/netapp/xtremio-driver/utils/errors"
)

const (
	statusSuccess          = "success"
	statusFailure          = "failure"
	statusCanceled         = "canceled"
	statusDeadlineExceeded = "deadline_exceeded"
)

type (
	// Recorder finishes a measurement started by a Telemeter. It is given the final error of the
	// measured operation; calling it more than once has no further effect on gauges and histograms.
	Recorder func(err *error)
	// Telemeter starts a measurement from the labels staged on a context.
	Telemeter func(context.Context) Recorder
)

var (
	durationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30}

	driverLabels = []string{"caller", "operation"}
	arrayLabels  = []string{"target", "address", "method"}

	driverOperationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: config.OrchestratorName,
		Subsystem: "driver",
		Name:      "operation_duration_seconds",
		Help:      "Duration of driver operations.",
		Buckets:   durationBuckets,
	}, append([]string{"status"}, driverLabels...))

	driverOperationsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: config.OrchestratorName,
		Subsystem: "driver",
		Name:      "operations_in_flight",
		Help:      "Driver operations currently running.",
	}, driverLabels)

	arrayRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: config.OrchestratorName,
		Subsystem: "array",
		Name:      "request_duration_seconds",
		Help:      "Duration of single XMS REST requests.",
		Buckets:   durationBuckets,
	}, append([]string{"status"}, arrayLabels...))

	arrayRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: config.OrchestratorName,
		Subsystem: "array",
		Name:      "requests_in_flight",
		Help:      "XMS REST requests currently waiting on a reply.",
	}, arrayLabels)

	arrayBusyRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.OrchestratorName,
		Subsystem: "array",
		Name:      "busy_retries_total",
		Help:      "XMS requests repeated because the array was busy or throttling.",
	}, arrayLabels)

	arrayThrottledSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: config.OrchestratorName,
		Subsystem: "array",
		Name:      "throttled_duration_seconds",
		Help:      "Time XMS requests spent waiting on the client rate limiter.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
	}, arrayLabels)

	_ Telemeter = DriverOperationDurationTelemeter
	_ Telemeter = DriverOperationInFlightTelemeter
	_ Telemeter = ArrayRequestDurationTelemeter
	_ Telemeter = ArrayRequestInFlightTelemeter
	_ Telemeter = ArrayBusyRetryTelemeter
	_ Telemeter = ArrayThrottleTelemeter
)

func driverLabelValues(ctx context.Context) []string {
	return []string{getContextClient(ctx), getContextMethod(ctx)}
}

func arrayLabelValues(ctx context.Context) []string {
	return []string{getContextTarget(ctx), getContextAddress(ctx), getContextMethod(ctx)}
}

// outcome labels a finished operation by its error and the state of its context.
func outcome(ctx context.Context, errPtr *error) string {
	switch ctx.Err() {
	case context.Canceled:
		return statusCanceled
	case context.DeadlineExceeded:
		return statusDeadlineExceeded
	}
	if convert.ToVal(errPtr) != nil {
		return statusFailure
	}
	return statusSuccess
}

// timeOnce observes the elapsed time of an operation, or the duration staged on the context, once.
func timeOnce(ctx context.Context, histogram *prometheus.HistogramVec, labels []string) Recorder {
	staged := getContextDuration(ctx)
	start := time.Now()
	var once sync.Once
	return func(errPtr *error) {
		once.Do(func() {
			elapsed := time.Since(start)
			if staged > 0 {
				elapsed = staged
			}
			histogram.WithLabelValues(append([]string{outcome(ctx, errPtr)}, labels...)...).
				Observe(elapsed.Seconds())
		})
	}
}

// countInFlight raises a gauge now and lowers it once when the operation finishes.
func countInFlight(gauge *prometheus.GaugeVec, labels []string) Recorder {
	gauge.WithLabelValues(labels...).Inc()
	var once sync.Once
	return func(_ *error) {
		once.Do(func() { gauge.WithLabelValues(labels...).Dec() })
	}
}

// DriverOperationDurationTelemeter times a driver operation.
func DriverOperationDurationTelemeter(ctx context.Context) Recorder {
	return timeOnce(ctx, driverOperationSeconds, driverLabelValues(ctx))
}

// DriverOperationInFlightTelemeter gauges running driver operations.
func DriverOperationInFlightTelemeter(ctx context.Context) Recorder {
	return countInFlight(driverOperationsInFlight, driverLabelValues(ctx))
}

// ArrayRequestDurationTelemeter times one HTTP exchange with the XMS.
func ArrayRequestDurationTelemeter(ctx context.Context) Recorder {
	return timeOnce(ctx, arrayRequestSeconds, arrayLabelValues(ctx))
}

// ArrayRequestInFlightTelemeter gauges HTTP exchanges with the XMS.
func ArrayRequestInFlightTelemeter(ctx context.Context) Recorder {
	return countInFlight(arrayRequestsInFlight, arrayLabelValues(ctx))
}

// ArrayBusyRetryTelemeter counts a failed attempt that will be repeated. Only busy and throttled
// replies are counted.
func ArrayBusyRetryTelemeter(ctx context.Context) Recorder {
	labels := arrayLabelValues(ctx)
	return func(errPtr *error) {
		err := convert.ToVal(errPtr)
		if errors.IsBackendBusyError(err) || errors.IsTooManyRequestsError(err) {
			arrayBusyRetries.WithLabelValues(labels...).Inc()
		}
	}
}

// ArrayThrottleTelemeter records how long a request waited on the rate limiter. It needs the wait
// staged on the context with WithDuration and a TooManyRequests error; anything else is ignored.
func ArrayThrottleTelemeter(ctx context.Context) Recorder {
	labels := arrayLabelValues(ctx)
	waited := getContextDuration(ctx)
	var once sync.Once
	return func(errPtr *error) {
		if waited <= 0 || !errors.IsTooManyRequestsError(convert.ToVal(errPtr)) {
			return
		}
		once.Do(func() { arrayThrottledSeconds.WithLabelValues(labels...).Observe(waited.Seconds()) })
	}
}
