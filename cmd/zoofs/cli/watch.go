package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

func newWatchCommand(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Print the content of a file every time it changes",
		Long: "Print the content of a file and wait for changes until the node is deleted or the command is interrupted.\n" +
			"Only the first 256 KiB of large payloads are shown.",
		Args: cobra.ExactArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			if metricsAddr := a.v.GetString("metrics_addr"); metricsAddr != "" {
				listener, err := net.Listen("tcp", metricsAddr)
				if err != nil {
					return fmt.Errorf("unable to listen for metrics: %w", err)
				}
				stop := a.serveMetrics(listener)
				defer stop()
			}

			return watchFile(ctx, fs.File(nodePath(args[0])), count, cmd.OutOrStdout())
		}),
	}
	cmd.Flags().IntVarP(&count, "count", "c", 0, "Stop after this many changes, 0 for no limit")
	cmd.Flags().String("metrics-addr", "", "Expose Prometheus metrics on this address while watching")
	a.v.BindPFlag("metrics_addr", cmd.Flags().Lookup("metrics-addr"))
	return cmd
}

// watchFile prints the file's content and re-arms the watch after every
// event. It returns once count events were seen, the node was deleted or ctx
// is done.
func watchFile(ctx context.Context, file *zoofile.File, count int, out io.Writer) error {
	for seen := 0; count <= 0 || seen < count; seen++ {
		content, events, err := file.ContentAndSetWatch(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", content)

		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return errors.New("watch closed without event")
			}
			fmt.Fprintf(out, "# %s %s\n", event.Type, event.Path)

			switch event.Type {
			case zoofile.EventNodeDeleted:
				return nil
			case zoofile.EventWatchLost:
				if ctx.Err() != nil {
					return nil
				}
				if event.Err == nil {
					return fmt.Errorf("lost watch on %s", event.Path)
				}
				return fmt.Errorf("lost watch on %s: %w", event.Path, event.Err)
			}
		}
	}
	return nil
}

// serveMetrics exposes a.registry on /metrics until the returned function is
// called.
func (a *app) serveMetrics(listener net.Listener) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("MetricsServerFailed", "error", err)
		}
	}()
	a.logger.Info("ServingMetrics", "address", listener.Addr().String())

	return func() {
		server.Close()
	}
}
