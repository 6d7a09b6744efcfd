package utils

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID 返回携带请求 ID 的 ctx；id 为空时生成新的 UUID
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
