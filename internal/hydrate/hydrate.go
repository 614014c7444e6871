// Package hydrate runs the content pipeline: it loads the site and
// publications documents, renders every section into the page skeleton and
// then prepares the decorative effects.
package hydrate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/effects"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/render"
)

// Hydrator renders the site page.
type Hydrator struct {
	// Skeleton loads the static page. It is read on every Hydrate.
	Skeleton         func() ([]byte, error)
	Locators         map[page.Region]page.Locator
	Source           content.Source
	ContentPath      string
	PublicationsPath string
	Renderer         *render.Renderer
	Decoration       effects.Decoration
	Logger           *log.Logger
}

// SkeletonFile reads the skeleton from path.
func SkeletonFile(path string) func() ([]byte, error) {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

// Hydrate returns the rendered page. Document and section failures are
// logged and leave the affected regions as the skeleton had them; only a
// skeleton that cannot be read or parsed is an error.
func (h *Hydrator) Hydrate(ctx context.Context) ([]byte, error) {
	start := time.Now()
	logger := h.logger()

	raw, err := h.Skeleton()
	if err != nil {
		return nil, fmt.Errorf("reading page skeleton: %w", err)
	}
	locators := h.Locators
	if locators == nil {
		locators = page.DefaultLocators
	}
	p, err := page.Parse(bytes.NewReader(raw), locators)
	if err != nil {
		return nil, err
	}

	// Both pipelines always finish; neither reports an error to the group.
	var g errgroup.Group
	g.Go(func() error {
		h.site(ctx, p)
		return nil
	})
	g.Go(func() error {
		h.publications(ctx, p)
		return nil
	})
	_ = g.Wait()

	if h.Renderer != nil {
		if err := h.Renderer.FadeIn.Attach(p); err != nil {
			logger.Error("attaching fade-in observer", "err", err)
		}
	}

	if err := h.Decoration.Apply(ctx, p); err != nil {
		logger.Error("preparing effects", "err", err)
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	logger.Debug("page hydrated", "bytes", buf.Len(), "elapsed", time.Since(start).Round(time.Millisecond))
	return buf.Bytes(), nil
}

func (h *Hydrator) site(ctx context.Context, p *page.Page) {
	logger := h.logger()
	doc, err := content.LoadDocument(ctx, h.Source, h.ContentPath)
	if err != nil {
		logger.Error("loading site data", "path", h.ContentPath, "err", err)
		return
	}

	r := h.Renderer
	r.SiteMeta(p, doc.Site)

	sections := []struct {
		name string
		run  func() error
	}{
		{"hero", func() error { return r.Hero(ctx, p, doc.Hero) }},
		{"about", func() error { return r.About(p, doc.About) }},
		{"research", func() error { return r.Research(ctx, p, doc.Research) }},
		{"contact", func() error { return r.Contact(ctx, p, doc.Contact) }},
	}
	var g errgroup.Group
	for _, s := range sections {
		g.Go(func() error {
			if err := s.run(); err != nil {
				logger.Error("rendering section", "section", s.name, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := r.Footer(p, doc.Footer); err != nil {
		logger.Error("rendering section", "section", "footer", "err", err)
	}
}

func (h *Hydrator) publications(ctx context.Context, p *page.Page) {
	logger := h.logger()
	pubs, err := content.LoadPublications(ctx, h.Source, h.PublicationsPath)
	if err == nil {
		err = h.Renderer.Publications(p, pubs)
	}
	if err != nil {
		logger.Error("loading publications", "path", h.PublicationsPath, "err", err)
		if err := h.Renderer.PublicationsError(p); err != nil {
			logger.Error("rendering publications error", "err", err)
		}
		return
	}
	logger.Debug("publications rendered", "count", len(pubs))
}

func (h *Hydrator) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}
