package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/relayout/pkg/server"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve runs the HTTP API:

  GET  /healthz
  POST /v1/layouts                        solve a document
  GET  /v1/layouts/{key}                  fetch a solved layout
  GET  /v1/layouts/{key}/render/{format}  render a solved layout

The cache backend and listen address come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := []server.Option{server.WithLogger(c.Logger)}
			if cfg.Server.Timeout > 0 {
				opts = append(opts, server.WithTimeout(cfg.Server.Timeout))
			}
			printInfo("Serving on %s %s", StyleHighlight.Render(cfg.Server.Addr), StyleDim.Render("(cache: "+backendName(cfg, noCache)+")"))
			return server.New(runner, opts...).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
