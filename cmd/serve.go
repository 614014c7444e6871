package cmd

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/server"
)

var noWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the hydrated site",
	Long: `serve hydrates the page on first request and caches it. When the data
comes from a local directory the cache is dropped whenever a data file or the
skeleton changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		src, err := newSource(cfg)
		if err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		opts := server.Options{
			Addr:      cfg.Addr,
			StaticDir: cfg.Site.StaticDir,
			Bounds:    cfg.Effects.PortraitBounds.Bounds(),
			Logger:    logger,
		}
		if cfg.Site.DataURL == "" {
			opts.DataDir = cfg.Site.DataDir
		}
		srv := server.New(newHydrator(cfg, src, st, logger), st, opts)

		if !noWatch && cfg.Site.DataURL == "" {
			go func() {
				if err := srv.Watch(ctx, cfg.Site.DataDir, cfg.Site.Skeleton); err != nil {
					logger.Warn("file watching disabled", "err", err)
				}
			}()
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not watch data files for changes")
	rootCmd.AddCommand(serveCmd)
}
