package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/piechart/pkg/observability"
	"github.com/matzehuels/piechart/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Routes:
  GET  /healthz      liveness probe
  GET  /version      build information
  POST /v1/layout    dataset → layout JSON
  POST /v1/render    dataset → chart (?format=svg|png|pdf|json)

Request bodies are {"dataset": ..., "dataset_format": "json", "options": {...}}.
The cache backend and timeouts come from the [cache] and [server] sections of
the config file. Stop with Ctrl-C; in-flight requests are drained first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			srvCfg := cfg.Server.ServerConfig()
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if c.verbose {
				observability.LogHooks{Logger: c.Logger}.Register()
				defer observability.Reset()
			}

			printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(srvCfg.Addr)))
			if err := server.New(runner, c.Logger, srvCfg).ListenAndServe(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns a bare port like ":8080" into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
