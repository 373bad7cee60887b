// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// logEntry adapts a logrus entry to the LogEntry interface.
type logEntry struct {
	entry *log.Entry
}

func (e *logEntry) WithField(key string, value interface{}) LogEntry {
	return &logEntry{e.entry.WithField(key, value)}
}

func (e *logEntry) WithFields(fields LogFields) LogEntry {
	return &logEntry{e.entry.WithFields(log.Fields(fields))}
}

func (e *logEntry) WithError(err error) LogEntry {
	return &logEntry{e.entry.WithError(err)}
}

func (e *logEntry) Error(args ...interface{})                   { e.entry.Error(args...) }
func (e *logEntry) Errorf(format string, args ...interface{})   { e.entry.Errorf(format, args...) }
func (e *logEntry) Warn(args ...interface{})                    { e.entry.Warn(args...) }
func (e *logEntry) Warnf(format string, args ...interface{})    { e.entry.Warnf(format, args...) }
func (e *logEntry) Warning(args ...interface{})                 { e.entry.Warning(args...) }
func (e *logEntry) Warningf(format string, args ...interface{}) { e.entry.Warningf(format, args...) }
func (e *logEntry) Info(args ...interface{})                    { e.entry.Info(args...) }
func (e *logEntry) Infof(format string, args ...interface{})    { e.entry.Infof(format, args...) }
func (e *logEntry) Debug(args ...interface{})                   { e.entry.Debug(args...) }
func (e *logEntry) Debugf(format string, args ...interface{})   { e.entry.Debugf(format, args...) }
func (e *logEntry) Trace(args ...interface{})                   { e.entry.Trace(args...) }
func (e *logEntry) Tracef(format string, args ...interface{})   { e.entry.Tracef(format, args...) }

func (e *logEntry) Data(key string) (interface{}, bool) {
	v, ok := e.entry.Data[key]
	return v, ok
}

// Logc returns a log entry carrying the request identity, workflow and log layer stored in the context.
func Logc(ctx context.Context) LogEntry {
	if ctx == nil {
		ctx = context.Background()
	}

	fields := log.Fields{}
	if v := ctx.Value(ContextKeyRequestID); v != nil {
		fields[string(ContextKeyRequestID)] = v
	}
	if v := ctx.Value(ContextKeyRequestSource); v != nil {
		fields[string(ContextKeyRequestSource)] = v
	}
	if v, ok := ctx.Value(ContextKeyWorkflow).(Workflow); ok && v != WorkflowNone {
		fields[string(ContextKeyWorkflow)] = v
	}
	if v, ok := ctx.Value(ContextKeyLogLayer).(LogLayer); ok && v != LogLayerNone {
		fields[string(ContextKeyLogLayer)] = v
	}

	return &logEntry{log.WithFields(fields)}
}

// Logd returns a log entry for a driver's API trace output. When the trace flag is off the entry is
// still usable, but its debug output is suppressed by the caller checking the flag first.
func Logd(ctx context.Context, driverName string, logTrace bool) LogEntry {
	entry := Logc(ctx).WithField("driver", driverName)
	if logTrace {
		entry = entry.WithField("trace", true)
	}
	return entry
}

// GenerateRequestContext returns a context stamped with a request ID, source, workflow and log layer.
// Values already present in the parent context win over the arguments.
func GenerateRequestContext(
	ctx context.Context, requestID, requestSource string, workflow Workflow, logLayer LogLayer,
) context.Context {
	if ctx == nil {
		ctx = context.Background()
	} else {
		if v := ctx.Value(ContextKeyRequestID); v != nil {
			requestID = fmt.Sprint(v)
		}
		if v := ctx.Value(ContextKeyRequestSource); v != nil {
			requestSource = fmt.Sprint(v)
		}
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if requestSource == "" {
		requestSource = "Unknown"
	}
	ctx = context.WithValue(ctx, ContextKeyRequestID, requestID)
	ctx = context.WithValue(ctx, ContextKeyRequestSource, requestSource)
	ctx = context.WithValue(ctx, ContextKeyWorkflow, workflow)
	ctx = context.WithValue(ctx, ContextKeyLogLayer, logLayer)
	return ctx
}

// GenerateRequestContextForLayer adds a log layer to an existing context, keeping its workflow.
func GenerateRequestContextForLayer(ctx context.Context, logLayer LogLayer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ContextKeyLogLayer, logLayer)
}
