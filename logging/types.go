// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	ContextKeyRequestID     ContextKey = "requestID"
	ContextKeyRequestSource ContextKey = "requestSource"
	ContextKeyWorkflow      ContextKey = "workflow"
	ContextKeyLogLayer      ContextKey = "logLayer"

	ContextSourceCLI      = "CLI"
	ContextSourceDriver   = "Driver"
	ContextSourceInternal = "Internal"
	ContextSourcePeriodic = "Periodic"

	LogSource = "logSource"
)

// ContextKey is used for context.Context value. The value requires a key that is not primitive type.
type ContextKey string

type WorkflowCategory string

func (w WorkflowCategory) String() string {
	return string(w)
}

type WorkflowOperation string

func (w WorkflowOperation) String() string {
	return string(w)
}

type Workflow struct {
	Category  WorkflowCategory
	Operation WorkflowOperation
}

func (w Workflow) String() string {
	return w.Category.String() + workflowCategorySeparator + w.Operation.String()
}

type LogLayer string

func (l LogLayer) String() string {
	return string(l)
}

type LogFields log.Fields

type LogEntry interface {
	WithField(key string, value interface{}) LogEntry
	WithFields(fields LogFields) LogEntry
	WithError(err error) LogEntry
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})
	Data(key string) (interface{}, bool)
}

// Context keys used by the metrics plumbing. They are unexported so only the builder can set them.
type contextKeyMetric string

const (
	contextKeyRequestTarget   contextKeyMetric = "requestTarget"
	contextKeyRequestAddress  contextKeyMetric = "requestAddress"
	contextKeyRequestMethod   contextKeyMetric = "requestMethod"
	contextKeyRequestClient   contextKeyMetric = "requestClient"
	contextKeyRequestDuration contextKeyMetric = "requestDuration"
)

type ContextRequestTarget string

const (
	ContextRequestTargetXtremIO ContextRequestTarget = "xtremio"
	ContextRequestTargetUnknown ContextRequestTarget = "unknown"
)

type ContextRequestClient string

const (
	ContextRequestClientDriver  ContextRequestClient = "driver"
	ContextRequestClientCLI     ContextRequestClient = "cli"
	ContextRequestClientUnknown ContextRequestClient = "unknown"
)

// requestMetadata carries the metric labels staged by a ContextBuilder.
type requestMetadata struct {
	target   ContextRequestTarget
	address  string
	method   string
	client   ContextRequestClient
	duration time.Duration
}
