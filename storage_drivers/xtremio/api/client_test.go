// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/storage_drivers/xtremio/api/fakexms"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/version"
)

const (
	testAddress   = "10.0.0.1"
	testVolumeURL = "https://" + testAddress + "/api/json/types/volumes"

	busyBody = `{"message": "system_is_busy", "error_code": 400}`
)

func TestMain(m *testing.M) {
	// Disable any standard log output
	logging.InitLogOutput(io.Discard)
	os.Exit(m.Run())
}

// instantTimer fires as soon as it is started and remembers the requested waits.
type instantTimer struct {
	mu    sync.Mutex
	c     chan time.Time
	waits []time.Duration
}

func (t *instantTimer) Start(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.waits = append(t.waits, d)
	t.c = make(chan time.Time, 1)
	t.c <- time.Now()
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c
}

func (t *instantTimer) Waits() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.waits...)
}

func newMockClient(t *testing.T, maxBusyRetries int) (*Client, *httpmock.MockTransport, *instantTimer) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	timer := &instantTimer{}
	client, err := NewClient(ClientConfig{
		SANIP:          testAddress,
		Username:       "admin",
		Password:       "secret",
		MaxBusyRetries: maxBusyRetries,
		Transport:      transport,
		Timer:          timer,
	})
	require.NoError(t, err)
	return client, transport, timer
}

func newFakeClient(t *testing.T, server *fakexms.Server) *Client {
	t.Helper()

	client, err := NewClient(ClientConfig{
		SANIP:     server.URL,
		Username:  "admin",
		Password:  "secret",
		Transport: server.Client().Transport,
		Timer:     &instantTimer{},
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.True(t, errors.IsInvalidInputError(err))

	client, err := NewClient(ClientConfig{SANIP: testAddress, APIRateLimit: 10})
	require.NoError(t, err)
	assert.Equal(t, "https://"+testAddress, client.baseURL.String())
	assert.Equal(t, 5, client.config.MaxBusyRetries)
	assert.Equal(t, time.Second, client.config.BusyRetryInitialInterval)
	assert.Equal(t, 10*time.Second, client.config.BusyRetryMaxInterval)
	assert.NotNil(t, client.limiter)
	assert.Equal(t, "v1", client.Dialect().Name())
	assert.False(t, client.SupportsConsistencyGroups())

	client, err = NewClient(ClientConfig{SANIP: "http://127.0.0.1:8080"})
	require.NoError(t, err)
	assert.Equal(t, "http", client.baseURL.Scheme)
	assert.Equal(t, "127.0.0.1:8080", client.baseURL.Host)
	assert.Nil(t, client.limiter)
}

func TestInvokeAPI_RetriesWhenBusy(t *testing.T) {
	client, transport, timer := newMockClient(t, 5)

	transport.RegisterResponder(http.MethodGet, testVolumeURL,
		httpmock.NewStringResponder(http.StatusBadRequest, busyBody).
			Then(httpmock.NewStringResponder(http.StatusOK, `{"volumes": []}`)))

	response, err := client.InvokeAPI(context.Background(), Request{Collection: CollectionVolumes})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, 2, transport.GetTotalCallCount())
	require.Len(t, timer.Waits(), 1, "expected exactly one backoff between attempts")
	assert.InDelta(t, time.Second, timer.Waits()[0], float64(200*time.Millisecond))
}

func TestInvokeAPI_BusyCeiling(t *testing.T) {
	client, transport, timer := newMockClient(t, 3)

	transport.RegisterResponder(http.MethodGet, testVolumeURL,
		httpmock.NewStringResponder(http.StatusBadRequest, busyBody))

	_, err := client.InvokeAPI(context.Background(), Request{Collection: CollectionVolumes})

	assert.True(t, errors.IsBackendBusyError(err), "expected busy error, got %v", err)
	assert.Equal(t, 3, transport.GetTotalCallCount())

	waits := timer.Waits()
	require.Len(t, waits, 2)
	assert.Greater(t, waits[1], waits[0], "backoff should grow between attempts")
}

func TestInvokeAPI_TooManyRequestsIsRetried(t *testing.T) {
	tests := map[string]struct {
		method string
		first  httpmock.Responder
	}{
		"read refused":       {http.MethodGet, httpmock.NewStringResponder(http.StatusServiceUnavailable, "")},
		"write refused":      {http.MethodPost, httpmock.NewStringResponder(http.StatusTooManyRequests, "")},
		"read dropped":       {http.MethodGet, httpmock.NewErrorResponder(io.EOF)},
		"read dropped early": {http.MethodGet, httpmock.NewErrorResponder(io.ErrUnexpectedEOF)},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client, transport, timer := newMockClient(t, 3)

			transport.RegisterResponder(test.method, testVolumeURL,
				test.first.Then(httpmock.NewStringResponder(http.StatusOK, `{"volumes": []}`)))

			_, err := client.InvokeAPI(context.Background(), Request{Collection: CollectionVolumes, Method: test.method})

			require.NoError(t, err)
			assert.Equal(t, 2, transport.GetTotalCallCount())
			assert.Len(t, timer.Waits(), 1)
		})
	}
}

func TestInvokeAPI_DroppedWriteIsNotResent(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			client, transport, timer := newMockClient(t, 5)

			committed := 0
			transport.RegisterResponder(method, testVolumeURL,
				httpmock.Responder(func(*http.Request) (*http.Response, error) {
					committed++
					return nil, io.EOF
				}).Then(httpmock.NewStringResponder(http.StatusBadRequest, `{"message": "vol_obj_name_not_unique"}`)))

			_, err := client.InvokeAPI(context.Background(), Request{
				Collection: CollectionVolumes,
				Method:     method,
				Payload:    map[string]any{"vol-name": "vol1", "vol-size": "1g"},
			})

			require.Error(t, err)
			assert.Equal(t, 1, committed)
			assert.Equal(t, 1, transport.GetTotalCallCount())
			assert.Empty(t, timer.Waits())
			assert.True(t, errors.IsTooManyRequestsError(err), "unexpected error %v", err)
			assert.False(t, errors.IsAlreadyExistsError(err))
			assert.False(t, errors.IsBackendBusyError(err))
		})
	}
}

func TestInvokeAPI_OtherErrorsAreNotRetried(t *testing.T) {
	client, transport, timer := newMockClient(t, 5)

	transport.RegisterResponder(http.MethodGet, testVolumeURL,
		httpmock.NewStringResponder(http.StatusBadRequest, `{"message": "vol_obj_not_found"}`))

	_, err := client.InvokeAPI(context.Background(), Request{Collection: CollectionVolumes, Name: "vol1"})

	assert.True(t, errors.IsVolumeNotFoundError(err))
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 1, transport.GetTotalCallCount())
	assert.Empty(t, timer.Waits())
}

func TestInvokeAPI_ConnectionError(t *testing.T) {
	client, transport, _ := newMockClient(t, 5)

	transport.RegisterResponder(http.MethodGet, testVolumeURL,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := client.InvokeAPI(context.Background(), Request{Collection: CollectionVolumes})

	assert.True(t, errors.IsConnectionError(err), "expected connection error, got %v", err)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestInvokeAPI_CancelledContext(t *testing.T) {
	client, transport, _ := newMockClient(t, 5)

	transport.RegisterResponder(http.MethodGet, testVolumeURL,
		httpmock.NewStringResponder(http.StatusBadRequest, busyBody))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.InvokeAPI(ctx, Request{Collection: CollectionVolumes})

	assert.Error(t, err)
	assert.False(t, errors.IsBackendBusyError(err))
}

func TestInvokeAPI_RejectsMalformedRequests(t *testing.T) {
	client, transport, _ := newMockClient(t, 5)

	_, err := client.InvokeAPI(context.Background(), Request{Collection: CollectionVolumes, Name: "a", Index: 1})
	assert.True(t, errors.IsInvalidInputError(err))

	_, err = client.InvokeAPI(context.Background(), Request{Collection: "bogus"})
	assert.True(t, errors.IsDriverError(err))

	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestInvokeAPI_RequestShape(t *testing.T) {
	client, transport, _ := newMockClient(t, 5)

	var (
		seenQuery    map[string][]string
		seenBody     map[string]any
		seenUser     string
		seenPassword string
	)
	transport.RegisterResponder(http.MethodGet, testVolumeURL,
		func(req *http.Request) (*http.Response, error) {
			seenQuery = req.URL.Query()
			seenUser, seenPassword, _ = req.BasicAuth()
			return httpmock.NewStringResponse(http.StatusOK, `{"volumes": []}`), nil
		})
	transport.RegisterResponder(http.MethodPut, testVolumeURL+"/7",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&seenBody))
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	_, err := client.Volumes().ListFull(context.Background(), Query{
		Filters: []string{FilterEq("vol-name", "a"), FilterEq("ig-name", "b")},
		Props:   []string{"lun"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, seenQuery["full"])
	assert.Equal(t, []string{"vol-name:eq:a", "ig-name:eq:b"}, seenQuery["filter"])
	assert.Equal(t, []string{"lun"}, seenQuery["prop"])
	assert.Equal(t, "admin", seenUser)
	assert.Equal(t, "secret", seenPassword)

	require.NoError(t, client.Volumes().UpdateByIndex(context.Background(), 7, map[string]any{"vol-name": "b"}))
	assert.Equal(t, map[string]any{"vol-name": "b"}, seenBody)
}

func TestInvokeAPI_V2ScopesRequestsToCluster(t *testing.T) {
	client, transport, _ := newMockClient(t, 5)
	client.SetDialect(V2Dialect())
	client.setClusterName("brick1")

	v2URL := "https://" + testAddress + "/api/json/v2/types/volumes"
	var getCluster string
	var postBody map[string]any
	transport.RegisterResponder(http.MethodGet, v2URL, func(req *http.Request) (*http.Response, error) {
		getCluster = req.URL.Query().Get("cluster-name")
		return httpmock.NewStringResponse(http.StatusOK, `{"volumes": []}`), nil
	})
	transport.RegisterResponder(http.MethodPost, v2URL, func(req *http.Request) (*http.Response, error) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&postBody))
		return httpmock.NewStringResponse(http.StatusCreated, `{"links": [{"href": "/volumes/3"}]}`), nil
	})

	_, err := client.Volumes().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "brick1", getCluster)

	ref, err := client.Volumes().Create(context.Background(), map[string]any{"vol-name": "v"})
	require.NoError(t, err)
	assert.Equal(t, "brick1", postBody["cluster-id"])
	idx, err := ref.Index()
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
}

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"ok", http.StatusOK, `{}`, func(err error) bool { return err == nil }},
		{"busy", http.StatusBadRequest, busyBody, errors.IsBackendBusyError},
		{"volume not found", http.StatusBadRequest, `{"message":"vol_obj_not_found"}`, errors.IsVolumeNotFoundError},
		{"object not found", http.StatusBadRequest, `{"message":"ig_obj_not_found"}`, errors.IsNotFoundError},
		{"volume exists", http.StatusBadRequest, `{"message":"vol_obj_name_not_unique"}`, errors.IsAlreadyExistsError},
		{"other exists", http.StatusBadRequest, `{"message":"obj_name_not_unique"}`, errors.IsAlreadyExistsError},
		{"mapped", http.StatusBadRequest, `{"message":"already_mapped"}`, errors.IsAlreadyMappedError},
		{"too many snapshots", http.StatusBadRequest, `{"message":"too_many_snapshots_per_vol"}`,
			errors.IsSnapshotsLimitExceededError},
		{"too many objects", http.StatusBadRequest, `{"message":"too_many_objs"}`, errors.IsSnapshotsLimitExceededError},
		{"plain 404", http.StatusNotFound, ``, errors.IsNotFoundError},
		{"throttled", http.StatusTooManyRequests, ``, errors.IsTooManyRequestsError},
		{"unavailable", http.StatusServiceUnavailable, ``, errors.IsTooManyRequestsError},
		{"anything else", http.StatusInternalServerError, `{"message":"boom"}`, errors.IsBackendAPIError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := classifyResponse(test.status, []byte(test.body))
			assert.True(t, test.check(err), "unexpected classification %v", err)
		})
	}

	err := classifyResponse(http.StatusInternalServerError, []byte(`{"message":"boom"}`))
	status, ok := errors.BackendAPIStatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, err.Error(), "bad response from XMS: boom")

	err = classifyResponse(http.StatusBadRequest, []byte(`{"message":"vol_100%_obj_not_found"}`))
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, "vol_100%_obj_not_found", err.Error())

	err = classifyResponse(http.StatusBadRequest, []byte(`{"message":"name %s_not_unique"}`))
	assert.True(t, errors.IsAlreadyExistsError(err))
	assert.Equal(t, "name %s_not_unique", err.Error())

	// A busy message on a non-400 status is an ordinary failure.
	assert.False(t, errors.IsBackendBusyError(classifyResponse(http.StatusInternalServerError, []byte(busyBody))))
}

func TestEncodeQuery(t *testing.T) {
	query := map[string][]string{}
	encodeQuery(query, map[string]any{
		"full":   1,
		"filter": []string{"a:eq:1", "b:eq:2"},
		"name":   "x",
		"skip":   nil,
	})

	assert.Equal(t, []string{"1"}, query["full"])
	assert.Equal(t, []string{"a:eq:1", "b:eq:2"}, query["filter"])
	assert.Equal(t, []string{"x"}, query["name"])
	assert.NotContains(t, query, "skip")
}

func TestRedactBody(t *testing.T) {
	client, _, _ := newMockClient(t, 1)
	assert.True(t, client.redactBody([]byte(`{"initiator-authentication-password": "x"}`)))
	assert.False(t, client.redactBody([]byte(`{"vol-name": "x"}`)))

	client.config.DebugTraceFlags = map[string]bool{"sensitive": true}
	assert.False(t, client.redactBody([]byte(`{"initiator-authentication-password": "x"}`)))
}

func TestLoadCertPool(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadCertPool(fs, "/missing.pem")
	assert.True(t, errors.IsDriverError(err))

	require.NoError(t, afero.WriteFile(fs, "/garbage.pem", []byte("not a certificate"), 0o600))
	_, err = LoadCertPool(fs, "/garbage.pem")
	assert.True(t, errors.IsDriverError(err))
}

func TestTLSVerification(t *testing.T) {
	server := fakexms.New(fakexms.WithTLS())
	defer server.Close()

	fs := afero.NewMemMapFs()
	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	require.NoError(t, afero.WriteFile(fs, "/etc/xms/ca.pem", caPEM, 0o600))

	newClient := func(verify bool, certPath string) *Client {
		client, err := NewClient(ClientConfig{
			SANIP:         server.URL,
			SSLCertVerify: verify,
			SSLCertPath:   certPath,
			Fs:            fs,
			Timer:         &instantTimer{},
		})
		require.NoError(t, err)
		return client
	}

	_, err := newClient(true, "/etc/xms/ca.pem").ClusterList(context.Background())
	assert.NoError(t, err, "the configured CA bundle should verify the array")

	_, err = newClient(true, "").ClusterList(context.Background())
	assert.True(t, errors.IsConnectionError(err), "an unknown CA should fail verification, got %v", err)

	_, err = newClient(false, "").ClusterList(context.Background())
	assert.NoError(t, err)

	_, err = NewClient(ClientConfig{SANIP: server.URL, SSLCertVerify: true, SSLCertPath: "/nope", Fs: fs})
	assert.True(t, errors.IsDriverError(err))
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name          string
		options       []fakexms.Option
		dialect       string
		expectedError func(error) bool
	}{
		{name: "v2", options: []fakexms.Option{fakexms.WithVersion("4.0.2-80")}, dialect: "v2"},
		{name: "v1", options: []fakexms.Option{fakexms.WithVersion("3.0.1-11")}, dialect: "v1"},
		{
			name:          "too old",
			options:       []fakexms.Option{fakexms.WithVersion("2.4.1-5")},
			expectedError: version.IsUnsupportedArrayVersionError,
		},
		{name: "no clusters", options: []fakexms.Option{fakexms.WithoutClusters()}, expectedError: errors.IsDriverError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := fakexms.New(test.options...)
			defer server.Close()
			client := newFakeClient(t, server)

			arrayVersion, err := client.Discover(context.Background())
			if test.expectedError != nil {
				assert.True(t, test.expectedError(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, arrayVersion)
			assert.Equal(t, test.dialect, client.Dialect().Name())
			assert.Equal(t, fakexms.DefaultClusterName, client.ClusterName())
		})
	}
}

func TestDiscover_ConfiguredCluster(t *testing.T) {
	server := fakexms.New(fakexms.WithClusterName("xbrick2"))
	defer server.Close()

	client, err := NewClient(ClientConfig{
		SANIP:       server.URL,
		ClusterName: "xbrick2",
		Transport:   server.Client().Transport,
	})
	require.NoError(t, err)

	_, err = client.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "xbrick2", client.ClusterName())

	client.config.ClusterName = "missing"
	_, err = client.Discover(context.Background())
	assert.True(t, errors.IsNotFoundError(err))
}
