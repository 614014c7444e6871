// Package render writes each section of the site content into its page
// regions.
//
// Every renderer is a no-op when its sub-document is nil, and each region it
// touches is skipped when the page does not bind it. Renderers never modify
// the documents they are given.
package render

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/icon"
	"github.com/Zachkp/folio/internal/markup"
	"github.com/Zachkp/folio/internal/page"
)

// PublicationsErrorMessage replaces the publications list when its document
// cannot be loaded.
const PublicationsErrorMessage = "Error loading publications. Please check the publications data file."

// PlaceholderImage is swapped in when a publication thumbnail fails to load.
const PlaceholderImage = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='200' height='150'%3E%3Crect fill='%236366f1' width='200' height='150'/%3E%3Ctext fill='white' font-family='Arial' font-size='20' x='50%25' y='50%25' text-anchor='middle' dominant-baseline='middle'%3EPaper%3C/text%3E%3C/svg%3E"

// Renderer holds what the section renderers share.
type Renderer struct {
	Icons     *icon.Resolver
	Overrides icon.Overrides
	// Author is emphasised wherever it appears in a publication's authors.
	Author string
	FadeIn FadeIn
	Logger *log.Logger
}

// inlineIcon is the template data for one inlined <svg>.
type inlineIcon struct {
	icon.Presentation
	Content template.HTML
}

func (r *Renderer) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Renderer) inline(name string, d icon.Descriptor) inlineIcon {
	return inlineIcon{Presentation: r.Overrides.For(name, d), Content: template.HTML(d.Content)}
}

func transform(s string) template.HTML {
	return template.HTML(markup.Transform(s))
}

// SiteMeta sets the document title and logo text.
func (r *Renderer) SiteMeta(p *page.Page, site *content.Site) {
	if site == nil {
		return
	}
	if site.Title != "" {
		p.SetText(page.Title, site.Title)
	}
	if site.Logo != "" {
		p.SetText(page.Logo, site.Logo)
	}
}

// Hero renders the name, description, biography, portrait and social links.
func (r *Renderer) Hero(ctx context.Context, p *page.Page, hero *content.Hero) error {
	if hero == nil {
		return nil
	}

	if hero.Name != "" {
		p.SetText(page.HeroName, hero.Name)
	}
	if hero.Description != "" {
		if _, err := p.SetHTML(page.HeroDescription, markup.Transform(markup.Lines(hero.Description))); err != nil {
			return err
		}
	}
	if len(hero.Bio) > 0 && p.Has(page.HeroInfo) {
		paras := make([]template.HTML, len(hero.Bio))
		for i, b := range hero.Bio {
			paras[i] = transform(b)
		}
		if err := r.fill(p, page.HeroInfo, "bio", paras); err != nil {
			return err
		}
	}
	if hero.Portrait != "" && p.Has(page.PortraitImage) {
		alt := hero.Name
		if alt == "" {
			alt = "Portrait"
		}
		p.SetAttr(page.PortraitImage, "src", hero.Portrait)
		p.SetAttr(page.PortraitImage, "alt", alt)
	}
	if len(hero.Social) > 0 && p.Has(page.HeroSocial) {
		links := r.links(ctx, hero.Social)
		if err := r.fill(p, page.HeroSocial, "social", links); err != nil {
			return err
		}
	}
	return nil
}

type linkView struct {
	Name string
	URL  string
	Mail bool
	Icon inlineIcon
}

// links resolves the icons of every link concurrently and returns the views
// in source order.
func (r *Renderer) links(ctx context.Context, links []content.Link) []linkView {
	names := make([]string, len(links))
	for i, l := range links {
		names[i] = l.Icon
	}
	set := r.Icons.NewSet()
	set.Load(ctx, names...)

	views := make([]linkView, len(links))
	for i, l := range links {
		views[i] = linkView{
			Name: l.Name,
			URL:  l.URL,
			Mail: strings.HasPrefix(l.URL, "mailto:"),
			Icon: r.inline(l.Icon, set.Get(l.Icon)),
		}
	}
	return views
}

// About renders the section title, paragraphs and research tags.
func (r *Renderer) About(p *page.Page, about *content.About) error {
	if about == nil {
		return nil
	}
	if about.Title != "" {
		p.SetText(page.AboutTitle, about.Title)
	}
	if !p.Has(page.AboutText) {
		return nil
	}

	data := struct {
		Paragraphs []template.HTML
		Tags       []string
	}{Tags: about.ResearchTags}
	for _, para := range about.Paragraphs {
		data.Paragraphs = append(data.Paragraphs, transform(para))
	}
	return r.fill(p, page.AboutText, "about", data)
}

// researchFill draws research icons as outlines whatever the file says.
var researchFill = icon.Override{Fill: "none"}

// Research renders the research cards. Each distinct icon is fetched once no
// matter how many cards use it.
func (r *Renderer) Research(ctx context.Context, p *page.Page, research *content.Research) error {
	if research == nil {
		return nil
	}
	if research.Title != "" {
		p.SetText(page.ResearchTitle, research.Title)
	}
	if !p.Has(page.ResearchGrid) || research.Cards == nil {
		return nil
	}

	names := make([]string, len(research.Cards))
	for i, c := range research.Cards {
		names[i] = c.Icon
	}
	set := r.Icons.NewSet()
	set.Load(ctx, names...)

	type cardView struct {
		Icon        inlineIcon
		Title       template.HTML
		Description template.HTML
	}
	cards := make([]cardView, len(research.Cards))
	for i, c := range research.Cards {
		ic := r.inline(c.Icon, set.Get(c.Icon))
		ic.Presentation = researchFill.Apply(ic.Presentation)
		cards[i] = cardView{Icon: ic, Title: transform(c.Title), Description: transform(c.Description)}
	}

	html, err := execute("research", cards)
	if err != nil {
		return fmt.Errorf("rendering research cards: %w", err)
	}
	nodes, err := p.SetHTML(page.ResearchGrid, html)
	if err != nil {
		return err
	}
	r.FadeIn.Register(p, nodes)
	return nil
}

// Contact renders the contact message and links. Mail links open in the
// same browsing context.
func (r *Renderer) Contact(ctx context.Context, p *page.Page, contact *content.Contact) error {
	if contact == nil {
		return nil
	}
	if contact.Title != "" {
		p.SetText(page.ContactTitle, contact.Title)
	}
	if !p.Has(page.ContactContent) {
		return nil
	}

	data := struct {
		Message template.HTML
		Links   []linkView
	}{Message: transform(contact.Message)}
	if len(contact.Links) > 0 {
		data.Links = r.links(ctx, contact.Links)
	}
	return r.fill(p, page.ContactContent, "contact", data)
}

// Footer renders the footer text.
func (r *Renderer) Footer(p *page.Page, footer *content.Footer) error {
	if footer == nil || footer.Text == "" {
		return nil
	}
	_, err := p.SetHTML(page.FooterText, markup.Transform(footer.Text))
	return err
}

// Publications replaces the publications list with one item per record, in
// order.
func (r *Renderer) Publications(p *page.Page, pubs []content.Publication) error {
	if !p.Has(page.PublicationsList) {
		return nil
	}
	p.Clear(page.PublicationsList)

	type pubView struct {
		Title, Authors, Venue, Bib template.HTML
		Image, Link                string
	}
	data := struct {
		Items    []pubView
		Fallback string
	}{Fallback: PlaceholderImage}
	for _, pub := range pubs {
		data.Items = append(data.Items, pubView{
			Title:   transform(pub.Title),
			Authors: transform(markup.Emphasize(pub.Authors, r.Author)),
			Venue:   transform(pub.Venue),
			Bib:     transform(pub.Bib),
			Image:   pub.Image,
			Link:    pub.Link,
		})
	}

	html, err := execute("publications", data)
	if err != nil {
		return fmt.Errorf("rendering publications: %w", err)
	}
	nodes, err := p.SetHTML(page.PublicationsList, html)
	if err != nil {
		return err
	}
	r.FadeIn.Register(p, nodes)
	return nil
}

// PublicationsError shows the fixed error message in place of the list.
func (r *Renderer) PublicationsError(p *page.Page) error {
	if !p.Has(page.PublicationsList) {
		return nil
	}
	html, err := execute("publications-error", PublicationsErrorMessage)
	if err != nil {
		return err
	}
	_, err = p.SetHTML(page.PublicationsList, html)
	return err
}

func (r *Renderer) fill(p *page.Page, region page.Region, tmpl string, data any) error {
	html, err := execute(tmpl, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", tmpl, err)
	}
	_, err = p.SetHTML(region, html)
	return err
}
