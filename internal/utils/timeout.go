package utils

import (
	"context"
	"time"
)

const DefaultStoreTimeout = 5 * time.Second

func WithStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultStoreTimeout)
}
