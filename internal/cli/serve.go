package cli

import (
	"github.com/spf13/cobra"

	"github.com/syampillai/sochart/internal/serve"
	"github.com/syampillai/sochart/pkg/board"
	"github.com/syampillai/sochart/pkg/cache"
	"github.com/syampillai/sochart/pkg/manifest"
)

// newServeCmd creates the 'serve' command for previewing a manifest over
// HTTP.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisDB   int
		useCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve <manifest.toml>",
		Short: "Serve a manifest as a live preview over HTTP",
		Long: `Serve a manifest over HTTP for live previews.

Endpoints:
  GET /healthz        liveness probe
  GET /option         re-render the board and return the option document
  GET /data/{serial}  return the content of one data provider

Each /option request re-reads nothing from disk: the board built at
startup is updated in place, and an unchanged schedule serves the same
document. Use --cache to persist rendered options across restarts, or
--redis to share them between instances.

Examples:
  sochart serve plan.toml
  sochart serve plan.toml --addr :9000 --cache
  sochart serve plan.toml --redis localhost:6379`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			var boardOpts []board.Option
			switch {
			case redisAddr != "":
				rc, err := cache.NewRedisCache(redisAddr, "", redisDB)
				if err != nil {
					return err
				}
				defer rc.Close()
				boardOpts = append(boardOpts, board.WithCache(rc, nil))
				logger.Debug("using redis cache", "addr", redisAddr, "db", redisDB)
			case useCache:
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				boardOpts = append(boardOpts, board.WithCache(fc, nil))
				logger.Debug("using file cache", "dir", dir)
			}

			s, err := serve.New(m,
				serve.WithLogger(logger),
				serve.WithBoardOptions(boardOpts...))
			if err != nil {
				return err
			}
			printInfo("serving %s on %s", args[0], addr)
			return s.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for shared option caching")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().BoolVar(&useCache, "cache", false, "persist rendered options in the local file cache")
	return cmd
}
