package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/streammon/control/instance"
)

type RedisInst struct {
	client *redis.Client
}

type SetupOptions struct {
	Username   string
	Password   string
	MasterName string
	Database   int

	Addresses []string
	Sentinel  bool
}

func New(ctx context.Context, opts SetupOptions) (instance.Redis, error) {
	if len(opts.Addresses) == 0 {
		logrus.Fatal("you must provide at least one redis address")
	}

	var rc *redis.Client
	if opts.Sentinel {
		rc = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       opts.MasterName,
			SentinelAddrs:    opts.Addresses,
			SentinelUsername: opts.Username,
			SentinelPassword: opts.Password,
			Username:         opts.Username,
			Password:         opts.Password,
			DB:               opts.Database,
		})
	} else {
		rc = redis.NewClient(&redis.Options{
			Addr:     opts.Addresses[0],
			Username: opts.Username,
			Password: opts.Password,
			DB:       opts.Database,
		})
	}

	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logrus.Info("redis, ok")

	return &RedisInst{client: rc}, nil
}

func (r *RedisInst) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisInst) Publish(ctx context.Context, channel string, content string) error {
	return r.client.Publish(ctx, channel, content).Err()
}

func (r *RedisInst) RawClient() *redis.Client {
	return r.client
}
