package instance

import (
	"context"

	"github.com/go-redis/redis/v8"
)

type Redis interface {
	Ping(ctx context.Context) error
	Publish(ctx context.Context, channel string, content string) error
	RawClient() *redis.Client
}
