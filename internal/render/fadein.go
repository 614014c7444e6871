package render

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/Zachkp/folio/internal/page"
)

// FadeIn describes the one-shot reveal applied to cards. Elements start
// hidden and shifted down; the observer script reveals each one the first
// time it scrolls into view and then stops watching it.
type FadeIn struct {
	Threshold  float64
	RootMargin string
	OffsetPx   int
	Transition string
	// Script is the observer's URL. Without one nothing is hidden.
	Script string
}

// DefaultFadeInScript is served from the static directory.
const DefaultFadeInScript = "/static/fadein.js"

// DefaultFadeIn reveals an element once 10% of it is visible, 50px before
// its bottom edge reaches the viewport edge.
func DefaultFadeIn() FadeIn {
	return FadeIn{
		Threshold:  0.1,
		RootMargin: "0px 0px -50px 0px",
		OffsetPx:   30,
		Transition: "opacity 0.6s ease, transform 0.6s ease",
		Script:     DefaultFadeInScript,
	}
}

// Register sets the initial hidden styling on nodes and tags them for the
// observer. It does nothing when there is no observer script or the page has
// no head to load it from.
func (f FadeIn) Register(p *page.Page, nodes []*html.Node) {
	if len(nodes) == 0 || f.Script == "" || !p.Has(page.Head) {
		return
	}
	threshold := strconv.FormatFloat(f.Threshold, 'f', -1, 64)
	offset := "translateY(" + strconv.Itoa(f.OffsetPx) + "px)"
	p.Update(func() {
		for _, n := range nodes {
			page.SetStyle(n,
				"opacity", "0",
				"transform", offset,
				"transition", f.Transition,
			)
			page.SetAttr(n, "data-fade-in", "")
			page.SetAttr(n, "data-fade-threshold", threshold)
			page.SetAttr(n, "data-fade-margin", f.RootMargin)
		}
	})
}

// Attach adds the observer script to the page head unless the skeleton
// already loads it.
func (f FadeIn) Attach(p *page.Page) error {
	if f.Script == "" || !p.Has(page.Head) {
		return nil
	}
	for _, s := range p.All("script") {
		if page.Attr(s, "src") == f.Script {
			return nil
		}
	}
	_, err := p.AppendHTML(page.Head, `<script src="`+html.EscapeString(f.Script)+`" defer></script>`)
	return err
}
