// Package icon loads SVG icon files and normalises them into descriptors that
// can be inlined into the page.
//
// Resolution never fails: a missing file, an unreadable body or a document
// without an <svg> root all yield Default().
package icon

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/Zachkp/folio/internal/content"
)

// Fallback attribute values used when an icon file omits them.
const (
	DefaultViewBox     = "0 0 24 24"
	DefaultFill        = "currentColor"
	DefaultStroke      = "none"
	DefaultStrokeWidth = "0"
)

// Descriptor is the parsed form of one icon file. It is never modified once
// built.
type Descriptor struct {
	// Content is the markup of the root's direct child elements, verbatim.
	Content     string
	ViewBox     string
	Fill        string
	Stroke      string
	StrokeWidth string
}

// Default returns the descriptor used whenever an icon cannot be loaded.
func Default() Descriptor {
	return Descriptor{
		ViewBox:     DefaultViewBox,
		Fill:        DefaultFill,
		Stroke:      DefaultStroke,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// Parse extracts a descriptor from an SVG document. The boolean is false when
// the document has no <svg> element.
func Parse(data []byte) (Descriptor, bool) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return Default(), false
	}
	root := findSVG(doc)
	if root == nil {
		return Default(), false
	}

	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if err := html.Render(&buf, c); err != nil {
			return Default(), false
		}
	}

	return Descriptor{
		Content:     buf.String(),
		ViewBox:     attr(root, "viewBox", DefaultViewBox),
		Fill:        attr(root, "fill", DefaultFill),
		Stroke:      attr(root, "stroke", DefaultStroke),
		StrokeWidth: attr(root, "stroke-width", DefaultStrokeWidth),
	}, true
}

func findSVG(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "svg" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findSVG(c); found != nil {
			return found
		}
	}
	return nil
}

// attr returns the value of key on n, or def when the attribute is absent or
// empty.
func attr(n *html.Node, key, def string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) && a.Val != "" {
			return a.Val
		}
	}
	return def
}

// Resolver fetches icon files by logical name from a content source.
type Resolver struct {
	src    content.Source
	dir    string
	logger *log.Logger
}

// NewResolver returns a Resolver that reads <dir>/<name>.svg from src.
func NewResolver(src content.Source, dir string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{src: src, dir: dir, logger: logger}
}

// Path returns the source path for the icon called name.
func (r *Resolver) Path(name string) string {
	return path.Join(r.dir, name+".svg")
}

// Resolve loads and parses the icon called name.
func (r *Resolver) Resolve(ctx context.Context, name string) Descriptor {
	p := r.Path(name)
	data, err := r.src.Fetch(ctx, p)
	if err != nil {
		r.logger.Debug("icon unavailable, using default", "icon", name, "path", p, "err", err)
		return Default()
	}
	d, ok := Parse(data)
	if !ok {
		r.logger.Debug("icon has no svg root, using default", "icon", name, "path", p)
	}
	return d
}
