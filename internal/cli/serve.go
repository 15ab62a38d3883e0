package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgen/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve level generation over HTTP",
		Long: `Serve the blueprints of a directory over HTTP.

  GET  /healthz
  GET  /v1/blueprints
  GET  /v1/blueprints/{name}/tree[?format=svg]
  POST /v1/levels   {"blueprint": "crypt.toml", "seed": 7, "formats": ["ascii"]}

Set redis.addr (or --redis) to share cached levels between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := c.settings()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg, err := server.NewRegistry(cfg.Blueprints, logger)
			if err != nil {
				return err
			}
			names := reg.Names()
			if len(names) == 0 {
				printWarning("No blueprints found in %s", cfg.Blueprints)
			}

			srv := server.New(server.Config{
				Runner:   runner,
				Registry: reg,
				Logger:   logger,
				HTTP:     cfg.Server,
				Watch:    watch,
			})
			printInfo("Serving %d blueprints from %s", len(names), cfg.Blueprints)
			printKeyValue("address", cfg.Server.Addr)
			if watch {
				printKeyValue("reload", "on change")
			}
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", `listen address (default ":8080")`)
	cmd.Flags().String("blueprints", "", "directory of blueprints to serve (default .)")
	cmd.Flags().String("redis", "", "cache levels in redis at this address")
	cmd.Flags().Bool("no-cache", false, "disable the level cache")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload blueprints when files change")

	return cmd
}
