package effects

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/store"
)

// Decoration prepares the page for the client-side effects once content has
// been rendered.
type Decoration struct {
	Field Field
	Rand  *rand.Rand
	Store store.PositionStore
	// SettleDelay is published on the portrait for the drag handler.
	SettleDelay time.Duration
	Logger      *log.Logger
}

// Apply writes the particle field and places the portrait at its saved
// offset. The hero parallax and the progress indicator get their
// top-of-page state. Missing regions are skipped.
func (d Decoration) Apply(ctx context.Context, p *page.Page) error {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	if p.Has(page.Particles) {
		rng := d.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		if _, err := p.SetHTML(page.Particles, Markup(d.Field.Generate(rng))); err != nil {
			return fmt.Errorf("writing particles: %w", err)
		}
	}

	if n, ok := p.Node(page.Portrait); ok && d.SettleDelay > 0 {
		p.Update(func() {
			page.SetAttr(n, "data-settle-ms", strconv.FormatInt(d.SettleDelay.Milliseconds(), 10))
		})
	}

	if d.Store != nil && p.Has(page.Portrait) {
		pos, ok, err := d.Store.Load(ctx)
		switch {
		case err != nil:
			logger.Warn("portrait position unavailable", "err", err)
		case ok:
			n, _ := p.Node(page.Portrait)
			p.Update(func() {
				page.SetStyle(n, "transform", portraitTransform(pos))
			})
		}
	}

	if n, ok := p.Node(page.Hero); ok {
		if offset, opacity, ok := Parallax(0, 1); ok {
			p.Update(func() {
				page.SetStyle(n,
					"transform", "translateY("+px(offset)+")",
					"opacity", strconv.FormatFloat(opacity, 'f', -1, 64),
				)
			})
		}
	}

	if n, ok := p.Node(page.HeroText); ok {
		p.Update(func() { page.SetStyle(n, "animation", "fadeInUp 1s ease") })
	}

	d.progress(p)
	return nil
}

func portraitTransform(pos store.Position) string {
	return "translate(" + px(pos.X) + ", " + px(pos.Y) + ")"
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// progress marks the indicator for an unscrolled page and records each
// marker's scroll target.
func (d Decoration) progress(p *page.Page) {
	st := Progress(0, 1, 1, make([]*Span, len(Sections)))
	markers := p.All(".progress-section")
	p.Update(func() {
		if bar, ok := p.Node(page.ProgressBar); ok {
			page.SetStyle(bar, "height", "0%")
		}
		for i, n := range markers {
			if i >= len(st.Markers) {
				break
			}
			page.RemoveClass(n, Active.String())
			page.RemoveClass(n, Completed.String())
			if cls := st.Markers[i].String(); cls != "" {
				page.AddClass(n, cls)
			}
			page.SetAttr(n, "data-target", ScrollTarget(i))
		}
	})
}
