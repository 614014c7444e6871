package cmd

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/effects"
	"github.com/Zachkp/folio/internal/hydrate"
	"github.com/Zachkp/folio/internal/icon"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/store"
)

// newSource picks the data source: the HTTP base URL when configured,
// otherwise the local data directory.
func newSource(cfg *config.Config) (content.Source, error) {
	if cfg.Site.DataURL != "" {
		return content.NewHTTPSource(cfg.Site.DataURL, nil)
	}
	return content.NewDirSource(cfg.Site.DataDir), nil
}

// newHydrator wires the content pipeline from configuration.
func newHydrator(cfg *config.Config, src content.Source, st store.PositionStore, logger *log.Logger) *hydrate.Hydrator {
	return &hydrate.Hydrator{
		Skeleton:         hydrate.SkeletonFile(cfg.Site.Skeleton),
		Source:           src,
		ContentPath:      cfg.Site.ContentPath,
		PublicationsPath: cfg.Site.PublicationsPath,
		Renderer: &render.Renderer{
			Icons:     icon.NewResolver(src, cfg.Site.IconsDir, logger.WithPrefix("icons")),
			Overrides: cfg.Overrides(),
			Author:    cfg.Site.HighlightAuthor,
			FadeIn:    render.DefaultFadeIn(),
			Logger:    logger,
		},
		Decoration: effects.Decoration{
			Field:       effects.Field{Count: cfg.Effects.ParticleCount, Palette: cfg.Effects.Palette},
			Store:       st,
			SettleDelay: time.Duration(cfg.Effects.SettleMillis) * time.Millisecond,
			Logger:      logger,
		},
		Logger: logger,
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.PositionStore, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	logger.Debug("position store ready", "driver", cfg.Store.Driver)
	return st, nil
}
