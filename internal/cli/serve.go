package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tenji/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve starts an HTTP server with the following routes:

  POST /v1/convert          JSON {"text", "format", "raised", "flat"}
  GET  /v1/convert?text=... rendered output as plain text
  GET  /healthz             liveness probe

Format and glyphs default to the config file. Tokens the encoder rejects
yield 422 with a JSON {"code", "message"} body. The server shuts down
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			srv := server.New(runner, c.cfg, c.Logger)
			return srv.ListenAndServe(ctx, addr, func(a net.Addr) {
				printSuccess(c.Err, "Listening on %s", StyleHighlight.Render("http://"+a.String()))
				printKeyValue(c.Err, "format", c.cfg.Format)
				printKeyValue(c.Err, "cache", cacheBackend(c.cfg.Cache.Enabled && !noCache, c.cfg.Cache.RedisURL))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

func cacheBackend(enabled bool, redisURL string) string {
	switch {
	case !enabled:
		return "off"
	case redisURL != "":
		return "redis"
	}
	return "file"
}
