// Copyright 2026 NetApp, Inc. All Rights Reserved.

package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	. "github.com/netapp/xtremio-driver/logging"
)

const REDACTED = "<REDACTED>"

var redactedHeaders = []string{"Authorization", "Api-Key", "Secret-Key"}

// LogHTTPRequest writes a debug trace of an outgoing request. Credentials in the URL and
// authentication headers are never logged.
func LogHTTPRequest(request *http.Request, requestBody []byte, redactBody bool) {
	header := ">>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>"
	footer := "--------------------------------------------------------------------------------"

	requestURL, _ := url.Parse(request.URL.String())
	requestURL.User = nil

	ctx := request.Context()

	headers := make(map[string][]string)
	for k, v := range request.Header {
		headers[k] = v
	}
	for _, h := range redactedHeaders {
		delete(headers, h)
	}

	var body string
	if requestBody == nil {
		body = "<nil>"
	} else if redactBody {
		body = REDACTED
	} else {
		body = string(requestBody)
	}

	Logc(ctx).Debugf("\n%s\n%s %s\nHeaders: %v\nBody: %s\n%s",
		header, request.Method, requestURL, headers, body, footer)
}

// LogHTTPResponse writes a debug trace of a response received from the array.
func LogHTTPResponse(ctx context.Context, response *http.Response, responseBody []byte, redactBody bool) {
	header := "<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<"
	footer := "================================================================================"

	headers := make(map[string][]string)
	for k, v := range response.Header {
		headers[k] = v
	}
	for _, h := range redactedHeaders {
		delete(headers, h)
	}

	var body string
	if responseBody == nil {
		body = "<nil>"
	} else if redactBody {
		body = REDACTED
	} else {
		body = string(responseBody)
	}
	Logc(ctx).Debugf("\n%s\nStatus: %s\nHeaders: %v\nBody: %s\n%s",
		header, response.Status, headers, body, footer)
}

type HTTPError struct {
	Status     string
	StatusCode int
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// NewHTTPError returns an HTTPError for a non-2xx response, or nil otherwise.
func NewHTTPError(response *http.Response) *HTTPError {
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &HTTPError{response.Status, response.StatusCode}
	}
	return nil
}

const randomStringChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a string of upper-case letters and digits drawn from crypto/rand.
func RandomString(strSize int) string {
	bytes := make([]byte, strSize)
	_, _ = rand.Read(bytes)
	for i, b := range bytes {
		bytes[i] = randomStringChars[int(b)%len(randomStringChars)]
	}
	return string(bytes)
}

// ConvertStrToWWNFormat converts a WWN from a bare hex string to the format xx:xx:xx:xx:xx:xx:xx:xx.
// Input that already contains colons is returned unchanged.
func ConvertStrToWWNFormat(wwnStr string) string {
	if strings.Contains(wwnStr, ":") {
		return wwnStr
	}
	wwn := ""
	for i := 0; i < len(wwnStr); i += 2 {
		end := i + 2
		if end > len(wwnStr) {
			end = len(wwnStr)
		}
		wwn += wwnStr[i:end]
		if end < len(wwnStr) {
			wwn += ":"
		}
	}
	return wwn
}

// StripWWNFormat removes the colons from a WWN.
func StripWWNFormat(wwn string) string {
	return strings.ReplaceAll(wwn, ":", "")
}

// SliceContainsString checks whether a string is in a list of strings.
func SliceContainsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
