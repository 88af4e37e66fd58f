// Package cli implements the zoofs command line tool, which browses and
// edits a coordination store as if it was a file system.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v           *viper.Viper
	openSession sessionOpener
	registry    *prometheus.Registry
	logger      *slog.Logger
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(openSession).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand(opener sessionOpener) *cobra.Command {
	a := &app{
		v:           viper.New(),
		openSession: opener,
		registry:    prometheus.NewRegistry(),
	}

	rootCmd := &cobra.Command{
		Use:   "zoofs",
		Short: "File system view of a coordination store",
		Long: "Browse and edit the nodes of ZooKeeper or a Redis backed tree as files and directories.\n" +
			"Options can also be given as ZOOFS_* environment variables or in a YAML config file.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/zoofs/config.yaml)")
	flags.String("store", "zk", "Store to use: zk, redis or memory")
	flags.StringSlice("zk-servers", []string{"127.0.0.1:2181"}, "ZooKeeper servers to connect to")
	flags.Duration("zk-session-timeout", 10*time.Second, "ZooKeeper session timeout")
	flags.String("redis-url", "redis://127.0.0.1:6379/0", "Redis server to connect to")
	flags.String("redis-prefix", "zoofs:", "Prefix for all Redis keys")
	flags.Bool("hybrid", false, "Classify childless nodes with an empty payload as directories")
	flags.Int("max-read-attempts", zoofile.DefaultMaxReadAttempts, "Limit for restarting reads of changing large payloads, negative for no limit")
	flags.Int("concurrency", zoofile.DefaultConcurrency, "Number of nodes processed in parallel by ls, tree and rm -r")
	flags.String("log-format", "text", "Log format: text or json")
	flags.BoolP("verbose", "v", false, "Log every store call")

	a.v.BindPFlag("store", flags.Lookup("store"))
	a.v.BindPFlag("zk.servers", flags.Lookup("zk-servers"))
	a.v.BindPFlag("zk.session_timeout", flags.Lookup("zk-session-timeout"))
	a.v.BindPFlag("redis.url", flags.Lookup("redis-url"))
	a.v.BindPFlag("redis.prefix", flags.Lookup("redis-prefix"))
	a.v.BindPFlag("hybrid", flags.Lookup("hybrid"))
	a.v.BindPFlag("max_read_attempts", flags.Lookup("max-read-attempts"))
	a.v.BindPFlag("concurrency", flags.Lookup("concurrency"))
	a.v.BindPFlag("log_format", flags.Lookup("log-format"))
	a.v.BindPFlag("verbose", flags.Lookup("verbose"))

	rootCmd.AddCommand(
		newLsCommand(a),
		newCatCommand(a),
		newPutCommand(a),
		newMkdirCommand(a),
		newTouchCommand(a),
		newRmCommand(a),
		newStatCommand(a),
		newTreeCommand(a),
		newWatchCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	cfg, _ := cmd.Flags().GetString("config")
	if cfg != "" {
		a.v.SetConfigFile(cfg)
	} else {
		a.v.AddConfigPath(configDir())
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("ZOOFS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// A missing default config file is fine, an explicitly requested one
		// must be readable.
		var notFound viper.ConfigFileNotFoundError
		if cfg != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	a.logger = SetupStructuredLogger(cmd.ErrOrStderr(), a.v.GetString("log_format"), a.v.GetBool("verbose"))
	return nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zoofs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "zoofs")
	}
	return ".zoofs"
}
