package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/pkg/observability"
	"github.com/matzehuels/featuremap/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noStore bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /v1/layout, /v1/crop, /v1/render   lay out or draw a posted record
  /v1/records/{name}                      named records (unless --no-store)
  GET  /metrics                           Prometheus metrics
  GET  /healthz                           liveness and build info

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noStore, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the record store routes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noStore, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observability.NewPrometheus(reg).Register()
	defer observability.Reset()

	cfg := server.Config{
		Addr:   addr,
		Runner: runner,
		Gather: reg,
		Logger: c.Logger,
	}
	if !noStore {
		st, err := c.openStore(ctx)
		if err != nil {
			return fmt.Errorf("open record store: %w", err)
		}
		defer st.Close()
		cfg.Store = st
	}

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	return server.New(cfg).ListenAndServe(ctx)
}

// displayAddr fills in localhost for addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
