package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestDataKey contextKey = "request_data"
	traceDataKey   contextKey = "trace_data"
)

// RequestData identifies the authenticated caller for the lifetime of
// one request.
type RequestData struct {
	UserID uuid.UUID
	Role   string
}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(requestDataKey).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, ok := ctx.Value(traceDataKey).(*TraceData)
	if !ok {
		return nil
	}
	return td
}
