// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"context"
	"time"
)

// ContextBuilder stages metric labels on a context and produces the matching telemetry recorder.
type ContextBuilder struct {
	ctx        context.Context
	meta       requestMetadata
	telemeters []Telemeter
}

func NewContextBuilder(ctx context.Context) *ContextBuilder {
	if ctx == nil {
		ctx = context.Background()
	}
	meta := requestMetadata{
		target: ContextRequestTarget(getContextTarget(ctx)),
		client: ContextRequestClient(getContextClient(ctx)),
	}
	if v, ok := ctx.Value(contextKeyRequestAddress).(string); ok {
		meta.address = v
	}
	if v, ok := ctx.Value(contextKeyRequestMethod).(string); ok {
		meta.method = v
	}
	return &ContextBuilder{ctx: ctx, meta: meta}
}

func (b *ContextBuilder) WithTarget(target ContextRequestTarget) *ContextBuilder {
	b.meta.target = target
	return b
}

func (b *ContextBuilder) WithAddress(address string) *ContextBuilder {
	b.meta.address = address
	return b
}

func (b *ContextBuilder) WithMethod(method string) *ContextBuilder {
	b.meta.method = method
	return b
}

func (b *ContextBuilder) WithClient(client ContextRequestClient) *ContextBuilder {
	b.meta.client = client
	return b
}

func (b *ContextBuilder) WithDuration(duration time.Duration) *ContextBuilder {
	b.meta.duration = duration
	return b
}

func (b *ContextBuilder) WithTelemetry(telemeters ...Telemeter) *ContextBuilder {
	b.telemeters = append(b.telemeters, telemeters...)
	return b
}

func (b *ContextBuilder) BuildContext() context.Context {
	ctx := setContextTarget(b.ctx, b.meta.target)
	ctx = setContextAddress(ctx, b.meta.address)
	ctx = setContextMethod(ctx, b.meta.method)
	ctx = setContextClient(ctx, b.meta.client)
	if b.meta.duration != 0 {
		ctx = setContextDuration(ctx, b.meta.duration)
	}
	return ctx
}

// BuildContextAndTelemetry builds the context and starts every staged telemeter. The returned
// Recorder must be called exactly once with the operation's final error.
func (b *ContextBuilder) BuildContextAndTelemetry() (context.Context, Recorder) {
	ctx := b.BuildContext()
	recorders := make([]Recorder, 0, len(b.telemeters))
	for _, telemeter := range b.telemeters {
		recorders = append(recorders, telemeter(ctx))
	}
	return ctx, func(err *error) {
		for _, rec := range recorders {
			rec(err)
		}
	}
}

func setContextTarget(ctx context.Context, target ContextRequestTarget) context.Context {
	return context.WithValue(ctx, contextKeyRequestTarget, target)
}

func setContextAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, contextKeyRequestAddress, address)
}

func setContextMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, contextKeyRequestMethod, method)
}

func setContextClient(ctx context.Context, client ContextRequestClient) context.Context {
	return context.WithValue(ctx, contextKeyRequestClient, client)
}

func setContextDuration(ctx context.Context, duration time.Duration) context.Context {
	return context.WithValue(ctx, contextKeyRequestDuration, duration)
}

func getContextTarget(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestTarget).(ContextRequestTarget); ok && v != "" {
		return string(v)
	}
	return string(ContextRequestTargetUnknown)
}

func getContextAddress(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestAddress).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

func getContextMethod(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestMethod).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

func getContextClient(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestClient).(ContextRequestClient); ok && v != "" {
		return string(v)
	}
	return string(ContextRequestClientUnknown)
}

func getContextDuration(ctx context.Context) time.Duration {
	if v, ok := ctx.Value(contextKeyRequestDuration).(time.Duration); ok {
		return v
	}
	return 0
}
