package page

import (
	"strings"

	"golang.org/x/net/html"
)

// Matches reports whether n satisfies a simple selector: "#id", ".class" or
// a bare tag name.
func Matches(n *html.Node, sel string) bool {
	if n == nil || n.Type != html.ElementNode || sel == "" {
		return false
	}
	switch sel[0] {
	case '#':
		return Attr(n, "id") == sel[1:]
	case '.':
		return HasClass(n, sel[1:])
	default:
		return n.Data == sel
	}
}

// Find returns the first descendant of root (root included) matching sel in
// document order.
func Find(root *html.Node, sel string) *html.Node {
	if root == nil {
		return nil
	}
	if Matches(root, sel) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, sel); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of root matching sel in document order.
func FindAll(root *html.Node, sel string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if Matches(n, sel) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Attr returns the value of key on n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries class in its class list.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class to n if it is not already present.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	classes := strings.Fields(Attr(n, "class"))
	SetAttr(n, "class", strings.Join(append(classes, class), " "))
}

// RemoveClass drops every occurrence of class from n.
func RemoveClass(n *html.Node, class string) {
	classes := strings.Fields(Attr(n, "class"))
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// SetStyle sets CSS properties on n's inline style, keeping unrelated
// declarations. Arguments are property/value pairs.
func SetStyle(n *html.Node, pairs ...string) {
	type decl struct{ prop, val string }
	var decls []decl
	for _, part := range strings.Split(Attr(n, "style"), ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decls = append(decls, decl{strings.TrimSpace(prop), strings.TrimSpace(val)})
	}

next:
	for i := 0; i+1 < len(pairs); i += 2 {
		for j := range decls {
			if decls[j].prop == pairs[i] {
				decls[j].val = pairs[i+1]
				continue next
			}
		}
		decls = append(decls, decl{pairs[i], pairs[i+1]})
	}

	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.val
	}
	SetAttr(n, "style", strings.Join(parts, "; "))
}

// Style returns the value of one inline CSS property on n.
func Style(n *html.Node, prop string) string {
	for _, part := range strings.Split(Attr(n, "style"), ";") {
		p, val, ok := strings.Cut(part, ":")
		if ok && strings.TrimSpace(p) == prop {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
