package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streammon/control/auth"
	"github.com/streammon/control/coordinator"
	"github.com/streammon/control/registry"
	"github.com/streammon/control/store"
	svcmongo "github.com/streammon/control/svc/mongo"
	svcredis "github.com/streammon/control/svc/redis"
	"github.com/streammon/control/telemetry"
	"github.com/streammon/control/web"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoInst, err := svcmongo.New(ctx, svcmongo.SetupOptions{
		URI:      env("MONGO_URI", "mongodb://localhost:27017"),
		Database: env("MONGO_DATABASE", "streammon"),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to mongo")
	}

	if err := store.Migrate(ctx, mongoInst); err != nil {
		logrus.WithError(err).Fatal("schema migration failed")
	}

	stores := store.NewMongo(mongoInst)

	var pub coordinator.Publisher
	serverOpts := []web.Option{}

	if addrs := env("REDIS_ADDRESSES", ""); addrs != "" {
		redisInst, err := svcredis.New(ctx, svcredis.SetupOptions{
			Addresses: strings.Split(addrs, ","),
			Username:  env("REDIS_USERNAME", ""),
			Password:  env("REDIS_PASSWORD", ""),
		})
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to redis")
		}
		pub = redisInst
		serverOpts = append(serverOpts, web.WithPinger("redis", redisInst))
	}

	coord := coordinator.New(stores.Globals, pub)

	jwtKey := env("JWT_SECRET", "")
	if jwtKey == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	serverOpts = append(serverOpts,
		web.WithStreams(registry.NewStreams(stores.Streams, coord)),
		web.WithUsers(registry.NewUsers(stores.Users, coord)),
		web.WithReader(telemetry.NewReader(stores.Streams, stores.Reports, stores.Images, stores.Alerts)),
		web.WithVerifier(auth.NewVerifier(stores.Users)),
		web.WithPinger("mongo", mongoInst),
	)

	srv := &http.Server{
		Addr:    env("BIND", ":8080"),
		Handler: web.NewServer(jwtKey, serverOpts...),
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("http, listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
