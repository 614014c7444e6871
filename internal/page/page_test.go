package page

import (
	"bytes"
	"strings"
	"testing"
)

const skeleton = `<!DOCTYPE html>
<html><head><title>Static</title></head>
<body>
<nav><span class="logo-text">XX</span></nav>
<section id="home" class="hero">
  <div class="hero-text">
    <h1 class="hero-title"><span class="gradient-text">Name</span></h1>
    <p class="hero-description">desc</p>
  </div>
</section>
<section id="about"><h2 class="section-title">About</h2><div class="about-text"></div></section>
<section id="research"><h2 class="section-title">Research</h2></section>
<footer class="footer"><p>footer</p></footer>
</body></html>`

func parseSkeleton(t *testing.T) *Page {
	t.Helper()
	p, err := Parse(strings.NewReader(skeleton), DefaultLocators)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

func TestResolveBindings(t *testing.T) {
	p := parseSkeleton(t)

	for _, r := range []Region{Title, Logo, HeroName, HeroDescription, AboutTitle, AboutText, ResearchTitle, FooterText} {
		if !p.Has(r) {
			t.Errorf("region %s not bound", r)
		}
	}
	for _, r := range []Region{ContactTitle, PublicationsList, Particles, ResearchGrid} {
		if p.Has(r) {
			t.Errorf("region %s should be absent", r)
		}
	}

	if got := p.Text(AboutTitle); got != "About" {
		t.Errorf("about title scoped lookup = %q", got)
	}
	if got := p.Text(ResearchTitle); got != "Research" {
		t.Errorf("research title scoped lookup = %q", got)
	}
}

func TestSetTextAndHTML(t *testing.T) {
	p := parseSkeleton(t)

	if !p.SetText(Title, "New <Title>") {
		t.Fatal("SetText(Title) reported unbound")
	}
	if p.SetText(ContactTitle, "x") {
		t.Error("SetText on an unbound region should report false")
	}

	nodes, err := p.SetHTML(AboutText, `<p>one</p>text<p>two</p>`)
	if err != nil {
		t.Fatalf("SetHTML: %v", err)
	}
	if len(nodes) != 2 {
		t.Errorf("SetHTML returned %d elements, want 2", len(nodes))
	}
	if got := p.InnerHTML(AboutText); got != "<p>one</p>text<p>two</p>" {
		t.Errorf("about inner = %q", got)
	}

	if _, err := p.AppendHTML(AboutText, `<p>three</p>`); err != nil {
		t.Fatalf("AppendHTML: %v", err)
	}
	if got := p.InnerHTML(AboutText); !strings.HasSuffix(got, "<p>three</p>") {
		t.Errorf("append missing: %q", got)
	}

	p.Clear(AboutText)
	if got := p.InnerHTML(AboutText); got != "" {
		t.Errorf("Clear left %q", got)
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<title>New &lt;Title&gt;</title>") {
		t.Errorf("title not rendered escaped: %s", buf.String())
	}
}

func TestStyleAndClasses(t *testing.T) {
	p := parseSkeleton(t)
	n, _ := p.Node(HeroText)

	SetStyle(n, "opacity", "0", "transform", "translateY(30px)")
	SetStyle(n, "opacity", "1")
	if Style(n, "opacity") != "1" || Style(n, "transform") != "translateY(30px)" {
		t.Errorf("style = %q", Attr(n, "style"))
	}

	AddClass(n, "active")
	AddClass(n, "active")
	if Attr(n, "class") != "hero-text active" {
		t.Errorf("class = %q", Attr(n, "class"))
	}
	RemoveClass(n, "hero-text")
	if Attr(n, "class") != "active" {
		t.Errorf("class after remove = %q", Attr(n, "class"))
	}
}

func TestFindAll(t *testing.T) {
	p := parseSkeleton(t)
	if got := len(p.All(".section-title")); got != 2 {
		t.Errorf("found %d section titles, want 2", got)
	}
	if got := len(p.All("section")); got != 3 {
		t.Errorf("found %d sections, want 3", got)
	}
}
