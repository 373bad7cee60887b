// Copyright 2026 NetApp, Inc. All Rights Reserved.

// Package api provides a client for the XtremIO Management Server (XMS) REST API.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	driverconfig "github.com/netapp/xtremio-driver/config"
	. "github.com/netapp/xtremio-driver/logging"
	"github.com/netapp/xtremio-driver/utils"
	"github.com/netapp/xtremio-driver/utils/errors"
	"github.com/netapp/xtremio-driver/utils/version"
)

const (
	basePath = "/api/json"

	httpContentType = "application/json"
)

// MinimumXMSVersion is the oldest array software the driver can manage.
var MinimumXMSVersion = version.MustParseGeneric("3.0.0")

// ClientConfig holds configuration data for the API client.
type ClientConfig struct {
	// SANIP is the XMS management address. It may carry a scheme and port.
	SANIP       string
	Username    string
	Password    string
	ClusterName string

	SSLCertVerify bool
	SSLCertPath   string
	// Fs is where the CA bundle is read from; the OS filesystem is used when nil.
	Fs afero.Fs

	// MaxBusyRetries is the total number of attempts made while the array reports it is busy.
	MaxBusyRetries           int
	BusyRetryInitialInterval time.Duration
	BusyRetryMaxInterval     time.Duration
	// APIRateLimit caps outgoing requests per second; zero disables throttling.
	APIRateLimit float64

	DebugTraceFlags map[string]bool

	// Transport replaces the HTTP transport, and Timer replaces the clock used between busy retries.
	Transport http.RoundTripper
	Timer     backoff.Timer
}

// Request is one call against a collection. Name and Index address a single record and are mutually exclusive.
type Request struct {
	Collection string
	Method     string
	Payload    map[string]any
	Name       string
	Index      int
	Query      url.Values
}

// Response is a successful reply from the array.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client is used to send requests to an XMS.
type Client struct {
	config     ClientConfig
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter

	m           sync.RWMutex
	dialect     Dialect
	clusterName string
}

// NewClient is a factory method for creating a new instance. The client speaks the v1 dialect
// until Discover selects the one matching the array.
func NewClient(config ClientConfig) (*Client, error) {
	if config.SANIP == "" {
		return nil, errors.InvalidInputError("the XMS address is required")
	}

	address := config.SANIP
	if !strings.Contains(address, "://") {
		address = "https://" + address
	}
	baseURL, err := url.Parse(address)
	if err != nil {
		return nil, errors.InvalidInputError("invalid XMS address %s; %v", config.SANIP, err)
	}

	if config.MaxBusyRetries <= 0 {
		config.MaxBusyRetries = driverconfig.DefaultBusyRetries
	}
	if config.BusyRetryInitialInterval <= 0 {
		config.BusyRetryInitialInterval = driverconfig.DefaultBusyInitialInterval
	}
	if config.BusyRetryMaxInterval <= 0 {
		config.BusyRetryMaxInterval = driverconfig.DefaultBusyMaxInterval
	}
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}

	transport := config.Transport
	if transport == nil {
		tlsConfig, err := newTLSConfig(config)
		if err != nil {
			return nil, err
		}
		transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsConfig,
		}
	}

	client := &Client{
		config:  config,
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: NewMetricsTransport(transport, WithMetricsTransportTarget(ContextRequestTargetXtremIO)),
			Timeout:   driverconfig.StorageAPITimeoutSeconds * time.Second,
		},
		dialect:     v1Dialect{},
		clusterName: config.ClusterName,
	}

	if config.APIRateLimit > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(config.APIRateLimit), 1)
	}

	return client, nil
}

func newTLSConfig(config ClientConfig) (*tls.Config, error) {
	if !config.SSLCertVerify {
		return &tls.Config{InsecureSkipVerify: true}, nil
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if config.SSLCertPath != "" {
		pool, err := LoadCertPool(config.Fs, config.SSLCertPath)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}
	return tlsConfig, nil
}

// LoadCertPool reads a PEM bundle of CA certificates.
func LoadCertPool(fs afero.Fs, path string) (*x509.CertPool, error) {
	pemBytes, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WrapWithDriverError(err, "could not read CA bundle %s", path)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, errors.DriverError("no certificates found in CA bundle %s", path)
	}
	return pool, nil
}

// Dialect returns the API dialect currently in use.
func (c *Client) Dialect() Dialect {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.dialect
}

// SetDialect forces a dialect, bypassing discovery.
func (c *Client) SetDialect(dialect Dialect) {
	c.m.Lock()
	defer c.m.Unlock()
	c.dialect = dialect
}

// ClusterName returns the name of the cluster requests are scoped to, if known.
func (c *Client) ClusterName() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.clusterName
}

func (c *Client) setClusterName(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.clusterName = name
}

// SupportsConsistencyGroups reports whether the active dialect can manage consistency groups.
func (c *Client) SupportsConsistencyGroups() bool {
	return c.Dialect().SupportsConsistencyGroups()
}

// Discover reads the array software version through the v1 API and selects the matching dialect.
// It also settles the cluster name when none was configured.
func (c *Client) Discover(ctx context.Context) (*version.Version, error) {
	c.SetDialect(v1Dialect{})

	clusters, err := c.Clusters().List(ctx)
	if err != nil {
		return nil, err
	}
	if len(clusters) == 0 {
		return nil, errors.DriverError("XtremIO not initialized correctly, no clusters found")
	}

	name := c.config.ClusterName
	if name == "" {
		name = clusters[0].Name
	}

	cluster, err := c.Clusters().GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	arrayVersion, err := version.ParseGeneric(cluster.SysSWVersion)
	if err != nil {
		return nil, errors.WrapWithDriverError(err, "could not parse XMS version %q", cluster.SysSWVersion)
	}
	if arrayVersion.LessThan(MinimumXMSVersion) {
		return nil, errors.WrapWithDriverError(
			version.UnsupportedArrayVersionError(arrayVersion.String(), MinimumXMSVersion.String()),
			"unsupported XtremIO software")
	}

	dialect := Dialect(v1Dialect{})
	if arrayVersion.MajorVersion() >= 4 {
		dialect = v2Dialect{}
	}
	c.setClusterName(name)
	c.SetDialect(dialect)

	Logc(ctx).WithFields(LogFields{
		"cluster": name,
		"version": arrayVersion.String(),
		"dialect": dialect.Name(),
	}).Debug("Discovered XMS.")

	return arrayVersion, nil
}

// InvokeAPI sends a request to the array. Busy replies are retried with exponential backoff, up to
// the configured number of attempts; every other failure is returned at once.
func (c *Client) InvokeAPI(ctx context.Context, request Request) (*Response, error) {
	if request.Name != "" && request.Index > 0 {
		return nil, errors.InvalidInputError("request on %s may address a record by name or by index, not both",
			request.Collection)
	}
	if !IsKnownCollection(request.Collection) {
		return nil, errors.DriverError("unknown XMS resource type %q", request.Collection)
	}
	if request.Method == "" {
		request.Method = http.MethodGet
	}

	dialect := c.Dialect()
	attempts := 0

	var response *Response
	invoke := func() error {
		attempts++
		var err error
		if response, err = c.invoke(ctx, dialect, request); err == nil {
			return nil
		}
		if isRetryable(request.Method, err) {
			return err
		}
		return backoff.Permanent(err)
	}
	invokeNotify := func(err error, duration time.Duration) {
		Logc(ctx).WithFields(LogFields{
			"collection": request.Collection,
			"method":     request.Method,
			"attempt":    attempts,
			"increment":  duration,
		}).WithError(err).Debug("XMS is busy, retrying request.")
		c.recordRetry(ctx, request.Method, err)
	}

	err := backoff.RetryNotifyWithTimer(invoke, c.newBackOff(ctx), invokeNotify, c.config.Timer)
	if err != nil {
		if isRetryable(request.Method, err) {
			c.recordRetry(ctx, request.Method, err)
			return nil, errors.WrapWithBackendBusyError(err, "%s %s did not succeed after %d attempts",
				request.Method, request.Collection, attempts)
		}
		return nil, err
	}

	return response, nil
}

// isRetryable reports whether a failed attempt may be sent again. A busy or throttled reply means the
// array did not act on the request. A connection the XMS dropped may have committed a write, so only
// reads are resent after one.
func isRetryable(method string, err error) bool {
	switch {
	case errors.IsBackendBusyError(err):
		return true
	case !errors.IsTooManyRequestsError(err):
		return false
	case droppedConnection(err):
		return method == http.MethodGet
	default:
		return true
	}
}

func droppedConnection(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	invokeBackoff := backoff.NewExponentialBackOff()
	invokeBackoff.InitialInterval = c.config.BusyRetryInitialInterval
	invokeBackoff.MaxInterval = c.config.BusyRetryMaxInterval
	invokeBackoff.MaxElapsedTime = 0
	invokeBackoff.RandomizationFactor = 0.1

	return backoff.WithContext(backoff.WithMaxRetries(invokeBackoff, uint64(c.config.MaxBusyRetries-1)), ctx)
}

func (c *Client) recordRetry(ctx context.Context, method string, err error) {
	_, rec := NewContextBuilder(ctx).
		WithTarget(ContextRequestTargetXtremIO).
		WithAddress(c.baseURL.Host).
		WithMethod(method).
		WithTelemetry(ArrayBusyRetryTelemeter).
		BuildContextAndTelemetry()
	rec(&err)
}

// throttle blocks until the rate limiter admits another request.
func (c *Client) throttle(ctx context.Context, method string) error {
	if c.limiter == nil {
		return nil
	}

	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if waited := time.Since(start); waited > time.Millisecond {
		_, rec := NewContextBuilder(ctx).
			WithTarget(ContextRequestTargetXtremIO).
			WithAddress(c.baseURL.Host).
			WithMethod(method).
			WithDuration(waited).
			WithTelemetry(ArrayThrottleTelemeter).
			BuildContextAndTelemetry()
		limited := errors.TooManyRequestsError("request throttled for %v", waited)
		rec(&limited)
	}
	return nil
}

func (c *Client) resourceURL(dialect Dialect, request Request) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + basePath + dialect.BasePath() + "/" + request.Collection
	if request.Index > 0 {
		u.Path += "/" + strconv.Itoa(request.Index)
	}
	return &u
}

// invoke makes a single attempt.
func (c *Client) invoke(ctx context.Context, dialect Dialect, request Request) (*Response, error) {
	requestURL := c.resourceURL(dialect, request)

	query := url.Values{}
	for key, values := range request.Query {
		query[key] = append(query[key], values...)
	}

	payload := make(map[string]any, len(request.Payload)+1)
	for key, value := range request.Payload {
		payload[key] = value
	}
	dialect.InjectCluster(request.Method, query, payload, c.ClusterName())

	var requestBody []byte
	switch request.Method {
	case http.MethodGet, http.MethodDelete:
		encodeQuery(query, payload)
	default:
		var err error
		if requestBody, err = json.Marshal(payload); err != nil {
			return nil, errors.WrapWithDriverError(err, "could not encode %s request", request.Collection)
		}
	}
	if request.Name != "" {
		query.Set("name", request.Name)
	}
	requestURL.RawQuery = query.Encode()

	if err := c.throttle(ctx, request.Method); err != nil {
		return nil, err
	}

	var body io.Reader
	if requestBody != nil {
		body = bytes.NewReader(requestBody)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, requestURL.String(), body)
	if err != nil {
		return nil, errors.WrapWithDriverError(err, "could not build %s request", request.Collection)
	}
	httpRequest.Header.Set("Content-Type", httpContentType)
	httpRequest.Header.Set("Accept", httpContentType)
	httpRequest.SetBasicAuth(c.config.Username, c.config.Password)

	if c.config.DebugTraceFlags["api"] {
		utils.LogHTTPRequest(httpRequest, requestBody, c.redactBody(requestBody))
	}

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		if errors.IsTooManyRequestsError(err) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		Logc(ctx).WithError(err).Warn("Error communicating with XMS.")
		return nil, errors.WrapWithConnectionError(err, "could not reach XMS at %s", c.baseURL.Host)
	}
	defer func() { _ = httpResponse.Body.Close() }()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, errors.WrapWithConnectionError(err, "could not read reply from XMS")
	}

	if c.config.DebugTraceFlags["api"] {
		utils.LogHTTPResponse(ctx, httpResponse, responseBody, c.redactBody(responseBody))
	}

	if err = classifyResponse(httpResponse.StatusCode, responseBody); err != nil {
		Logc(ctx).WithFields(LogFields{
			"collection":   request.Collection,
			"method":       request.Method,
			"name":         request.Name,
			"index":        request.Index,
			"responseCode": httpResponse.StatusCode,
		}).WithError(err).Debug("XMS rejected request.")
		return nil, err
	}

	return &Response{
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Body:       responseBody,
	}, nil
}

// redactBody hides bodies that may carry CHAP secrets unless sensitive tracing is on.
func (c *Client) redactBody(body []byte) bool {
	if c.config.DebugTraceFlags["sensitive"] {
		return false
	}
	return bytes.Contains(body, []byte("password"))
}

// encodeQuery flattens a payload into query parameters. Slices become repeated parameters.
func encodeQuery(query url.Values, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := payload[key].(type) {
		case nil:
		case []string:
			for _, v := range value {
				query.Add(key, v)
			}
		case string:
			query.Add(key, value)
		default:
			query.Add(key, fmt.Sprintf("%v", value))
		}
	}
}

// classifyResponse maps a non-2xx reply to the error taxonomy.
func classifyResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiError ErrorResponse
	_ = json.Unmarshal(body, &apiError)
	message := apiError.Message

	switch {
	case statusCode == http.StatusBadRequest && message == MessageSystemIsBusy:
		return errors.BackendBusyError("XMS is busy")
	case statusCode == http.StatusTooManyRequests, statusCode == http.StatusServiceUnavailable:
		return errors.TooManyRequestsError("XMS refused the request with status %d", statusCode)
	case message == MessageVolumeNotFound:
		return errors.WrapWithVolumeNotFoundError(errors.NotFoundError("%s", message), "volume not found")
	case strings.HasSuffix(message, MessageObjectNotFound):
		return errors.NotFoundError("%s", message)
	case message == MessageVolumeNameNotUnique:
		return errors.AlreadyExistsError("volume by this name already exists")
	case strings.HasSuffix(message, "_not_unique"), strings.Contains(message, "already exists"):
		return errors.AlreadyExistsError("%s", message)
	case strings.Contains(message, MessageAlreadyMapped):
		return errors.AlreadyMappedError("%s", message)
	case message == MessageTooManySnapshotsPerVol, message == MessageTooManyObjects:
		return errors.SnapshotsLimitExceededError("%s", message)
	case statusCode == http.StatusNotFound:
		if message == "" {
			message = "not found"
		}
		return errors.NotFoundError("%s", message)
	}

	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return errors.BackendAPIErrorWithStatus(statusCode, "bad response from XMS: %s", message)
}
