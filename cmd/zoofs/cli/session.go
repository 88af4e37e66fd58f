package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"github.com/zoofs/zoofs/internal/sessionlog"
	"github.com/zoofs/zoofs/pkg/memstore"
	"github.com/zoofs/zoofs/pkg/prometheuscollector"
	"github.com/zoofs/zoofs/pkg/redisstore"
	"github.com/zoofs/zoofs/pkg/zkstore"
	"github.com/zoofs/zoofs/pkg/zoofile"
)

// sessionOpener connects to the configured store. The returned function
// releases the connection.
type sessionOpener func(ctx context.Context, v *viper.Viper, logger *slog.Logger) (zoofile.Session, func(), error)

func openSession(ctx context.Context, v *viper.Viper, logger *slog.Logger) (zoofile.Session, func(), error) {
	switch backend := v.GetString("store"); backend {
	case "zk":
		servers := v.GetStringSlice("zk.servers")
		logger.Debug("UsingZooKeeper", "servers", servers)
		store, err := zkstore.Connect(servers, v.GetDuration("zk.session_timeout"), logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "redis":
		logger.Debug("UsingRedis", "prefix", v.GetString("redis.prefix"))
		store, err := redisstore.New(ctx, v.GetString("redis.url"),
			redisstore.WithPrefix(v.GetString("redis.prefix")),
			redisstore.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		return store, func() { store.Close() }, nil
	case "memory":
		return memstore.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q, expected zk, redis or memory", backend)
	}
}

// metricsRegisterer is implemented by stores exposing their own metrics.
type metricsRegisterer interface {
	RegisterMetrics(registry prometheus.Registerer)
}

// openFS opens a session and wraps it in an FS configured from a.v. The
// returned function must be called once the FS is no longer used.
func (a *app) openFS(ctx context.Context) (*zoofile.FS, func(), error) {
	session, closeSession, err := a.openSession(ctx, a.v, a.logger)
	if err != nil {
		return nil, nil, err
	}

	if registerer, ok := session.(metricsRegisterer); ok {
		registerer.RegisterMetrics(a.registry)
	}
	if a.v.GetBool("verbose") {
		session = sessionlog.New(session, a.logger)
	}

	var options []zoofile.ClassifierOption
	if a.v.GetBool("hybrid") {
		options = append(options, zoofile.WithHybridMode())
	}

	fs, err := zoofile.NewFS(zoofile.Config{
		Session:         session,
		Classifier:      zoofile.NewClassifier(options...),
		MaxReadAttempts: a.v.GetInt("max_read_attempts"),
		Concurrency:     a.v.GetInt("concurrency"),
		Logger:          a.logger,
	})
	if err != nil {
		closeSession()
		return nil, nil, err
	}

	a.registry.MustRegister(prometheuscollector.New(fs.Metrics))
	return fs, closeSession, nil
}
