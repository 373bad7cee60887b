// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"errors"
	"io"
	"net/http"

	utilsErrors "github.com/netapp/xtremio-driver/utils/errors"
)

// MetricsTransport wraps an HTTP transport and measures every exchange with the array.
type MetricsTransport struct {
	base       http.RoundTripper
	target     ContextRequestTarget
	telemeters []Telemeter
}

type MetricsTransportOption func(*MetricsTransport)

// WithMetricsTransportTarget labels the measurements with the kind of endpoint being called.
func WithMetricsTransportTarget(target ContextRequestTarget) MetricsTransportOption {
	return func(m *MetricsTransport) {
		if target != "" {
			m.target = target
		}
	}
}

// WithMetricsTransportTelemeters replaces the default array request telemeters.
func WithMetricsTransportTelemeters(telemeters ...Telemeter) MetricsTransportOption {
	return func(m *MetricsTransport) {
		if len(telemeters) > 0 {
			m.telemeters = telemeters
		}
	}
}

func NewMetricsTransport(base http.RoundTripper, options ...MetricsTransportOption) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	m := &MetricsTransport{
		base:       base,
		target:     ContextRequestTargetUnknown,
		telemeters: []Telemeter{ArrayRequestDurationTelemeter, ArrayRequestInFlightTelemeter},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MetricsTransport) RoundTrip(req *http.Request) (res *http.Response, err error) {
	ctx, rec := NewContextBuilder(req.Context()).
		WithTarget(m.target).
		WithAddress(req.URL.Host).
		WithMethod(req.Method).
		WithTelemetry(m.telemeters...).
		BuildContextAndTelemetry()
	defer rec(&err)

	res, err = m.base.RoundTrip(req.WithContext(ctx))
	if err != nil && m.target == ContextRequestTargetXtremIO && droppedByXMS(err) {
		err = utilsErrors.WrapWithTooManyRequestsError(err, "XMS closed the connection")
	}
	return res, err
}

// droppedByXMS reports a connection the XMS closed without replying, which it does while overloaded.
func droppedByXMS(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
