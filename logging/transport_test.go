// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"context"
	stdErrors "errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	utilsErrors "github.com/netapp/xtremio-driver/utils/errors"
)

const testClustersURL = "https://xms.local/api/json/types/clusters"

func newRequest(t *testing.T, method, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, nil)
	require.NoError(t, err)
	return req
}

func TestMetricsTransport_RecordsRequest(t *testing.T) {
	base := httpmock.NewMockTransport()
	base.RegisterResponder(http.MethodGet, testClustersURL, httpmock.NewStringResponder(http.StatusOK, `{}`))
	transport := NewMetricsTransport(base, WithMetricsTransportTarget(ContextRequestTargetXtremIO))

	seriesBefore := testutil.CollectAndCount(arrayRequestSeconds)

	res, err := transport.RoundTrip(newRequest(t, http.MethodGet, testClustersURL))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, base.GetTotalCallCount())
	assert.GreaterOrEqual(t, testutil.CollectAndCount(arrayRequestSeconds), seriesBefore)
	gauge := arrayRequestsInFlight.WithLabelValues(string(ContextRequestTargetXtremIO), "xms.local", http.MethodGet)
	assert.Zero(t, testutil.ToFloat64(gauge))
}

func TestMetricsTransport_DroppedConnection(t *testing.T) {
	for name, dropped := range map[string]error{"eof": io.EOF, "unexpected eof": io.ErrUnexpectedEOF} {
		t.Run(name, func(t *testing.T) {
			base := httpmock.NewMockTransport()
			base.RegisterResponder(http.MethodGet, testClustersURL, httpmock.NewErrorResponder(dropped))
			transport := NewMetricsTransport(base, WithMetricsTransportTarget(ContextRequestTargetXtremIO))

			_, err := transport.RoundTrip(newRequest(t, http.MethodGet, testClustersURL))

			require.Error(t, err)
			assert.True(t, utilsErrors.IsTooManyRequestsError(err))
		})
	}
}

func TestMetricsTransport_OtherTargetsPassThrough(t *testing.T) {
	base := httpmock.NewMockTransport()
	base.RegisterResponder(http.MethodDelete, "https://service.local/item", httpmock.NewErrorResponder(io.EOF))
	transport := NewMetricsTransport(base)

	_, err := transport.RoundTrip(newRequest(t, http.MethodDelete, "https://service.local/item"))

	require.Error(t, err)
	assert.False(t, utilsErrors.IsTooManyRequestsError(err))
	assert.True(t, stdErrors.Is(err, io.EOF))
}

func TestMetricsTransport_Options(t *testing.T) {
	var calls int
	counting := func(ctx context.Context) Recorder {
		return func(_ *error) { calls++ }
	}

	base := httpmock.NewMockTransport()
	base.RegisterNoResponder(httpmock.NewStringResponder(http.StatusNotFound, ""))
	transport := NewMetricsTransport(base,
		WithMetricsTransportTarget(""),
		WithMetricsTransportTelemeters(counting),
	).(*MetricsTransport)

	assert.Equal(t, ContextRequestTargetUnknown, transport.target)

	_, err := transport.RoundTrip(newRequest(t, http.MethodGet, testClustersURL))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
