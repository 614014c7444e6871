// Package page holds the parsed page skeleton and the binding table that maps
// logical regions to the nodes renderers write into.
//
// The table is resolved once when the page is parsed. Renderers only touch
// the page through a Page, which serialises writes so sections can render
// concurrently.
package page

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Region names one writable part of the page.
type Region string

const (
	Head             Region = "head"
	Title            Region = "title"
	Logo             Region = "logo"
	Hero             Region = "hero"
	HeroText         Region = "hero-text"
	HeroName         Region = "hero-name"
	HeroDescription  Region = "hero-description"
	HeroInfo         Region = "hero-info"
	Portrait         Region = "portrait"
	PortraitImage    Region = "portrait-image"
	HeroSocial       Region = "hero-social"
	AboutTitle       Region = "about-title"
	AboutText        Region = "about-text"
	ResearchTitle    Region = "research-title"
	ResearchGrid     Region = "research-grid"
	ContactTitle     Region = "contact-title"
	ContactContent   Region = "contact-content"
	FooterText       Region = "footer-text"
	PublicationsList Region = "publications-list"
	Particles        Region = "particles"
	ProgressBar      Region = "progress-bar"
)

// Locator finds a region: the first Match inside the first Within element,
// or in the whole document when Within is empty.
type Locator struct {
	Within string
	Match  string
}

// DefaultLocators matches the classes and ids used by the site skeleton.
var DefaultLocators = map[Region]Locator{
	Head:             {Match: "head"},
	Title:            {Match: "title"},
	Logo:             {Match: ".logo-text"},
	Hero:             {Match: ".hero"},
	HeroText:         {Match: ".hero-text"},
	HeroName:         {Within: ".hero-title", Match: ".gradient-text"},
	HeroDescription:  {Match: ".hero-description"},
	HeroInfo:         {Match: ".hero-info"},
	Portrait:         {Match: "#portrait"},
	PortraitImage:    {Match: "#portraitImage"},
	HeroSocial:       {Match: ".hero-social"},
	AboutTitle:       {Within: "#about", Match: ".section-title"},
	AboutText:        {Match: ".about-text"},
	ResearchTitle:    {Within: "#research", Match: ".section-title"},
	ResearchGrid:     {Match: ".research-grid"},
	ContactTitle:     {Within: "#contact", Match: ".section-title"},
	ContactContent:   {Match: ".contact-content"},
	FooterText:       {Within: ".footer", Match: "p"},
	PublicationsList: {Match: "#publicationsList"},
	Particles:        {Match: "#particles"},
	ProgressBar:      {Match: "#progressBar"},
}

// Bindings is the resolved region table. Absent regions are simply missing.
type Bindings map[Region]*html.Node

// Resolve builds a binding table for doc.
func Resolve(doc *html.Node, locators map[Region]Locator) Bindings {
	b := make(Bindings, len(locators))
	for region, loc := range locators {
		scope := doc
		if loc.Within != "" {
			scope = Find(doc, loc.Within)
		}
		if n := Find(scope, loc.Match); n != nil {
			b[region] = n
		}
	}
	return b
}

// Page is a parsed document plus its binding table.
type Page struct {
	mu   sync.Mutex
	doc  *html.Node
	bind Bindings
}

// Parse reads a skeleton and resolves locators against it.
func Parse(r io.Reader, locators map[Region]Locator) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page skeleton: %w", err)
	}
	return New(doc, Resolve(doc, locators)), nil
}

// New wraps an existing document and binding table. doc may be nil when the
// page is only used through its bindings.
func New(doc *html.Node, b Bindings) *Page {
	if b == nil {
		b = Bindings{}
	}
	return &Page{doc: doc, bind: b}
}

// Has reports whether region is bound.
func (p *Page) Has(r Region) bool {
	_, ok := p.bind[r]
	return ok
}

// Node returns the node bound to region. Callers must mutate it only inside
// Update.
func (p *Page) Node(r Region) (*html.Node, bool) {
	n, ok := p.bind[r]
	return n, ok
}

// Update runs fn while holding the page's write lock.
func (p *Page) Update(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

// SetText replaces the children of region with a single text node. It
// reports false when the region is not bound.
func (p *Page) SetText(r Region, text string) bool {
	n, ok := p.bind[r]
	if !ok {
		return false
	}
	p.Update(func() {
		removeChildren(n)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	})
	return true
}

// Text returns the concatenated text content of region.
func (p *Page) Text(r Region) string {
	n, ok := p.bind[r]
	if !ok {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return TextContent(n)
}

// SetAttr sets an attribute on region.
func (p *Page) SetAttr(r Region, key, val string) bool {
	n, ok := p.bind[r]
	if !ok {
		return false
	}
	p.Update(func() { SetAttr(n, key, val) })
	return true
}

// SetHTML replaces the children of region with the parsed fragment and
// returns the new top-level element nodes.
func (p *Page) SetHTML(r Region, fragment string) ([]*html.Node, error) {
	return p.insert(r, fragment, true)
}

// AppendHTML appends the parsed fragment to region's children and returns
// the new top-level element nodes.
func (p *Page) AppendHTML(r Region, fragment string) ([]*html.Node, error) {
	return p.insert(r, fragment, false)
}

// Clear removes all children of region.
func (p *Page) Clear(r Region) {
	if n, ok := p.bind[r]; ok {
		p.Update(func() { removeChildren(n) })
	}
}

func (p *Page) insert(r Region, fragment string, replace bool) ([]*html.Node, error) {
	n, ok := p.bind[r]
	if !ok {
		return nil, nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), n)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment for %s: %w", r, err)
	}

	var elems []*html.Node
	p.Update(func() {
		if replace {
			removeChildren(n)
		}
		for _, c := range nodes {
			n.AppendChild(c)
			if c.Type == html.ElementNode {
				elems = append(elems, c)
			}
		}
	})
	return elems, nil
}

// All returns every element in the document matching sel.
func (p *Page) All(sel string) []*html.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FindAll(p.doc, sel)
}

// Render serialises the document.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return fmt.Errorf("page has no document")
	}
	return html.Render(w, p.doc)
}

// InnerHTML renders the children of region; used by tests and logging.
func (p *Page) InnerHTML(r Region) string {
	n, ok := p.bind[r]
	if !ok {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// TextContent concatenates every text node under n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
