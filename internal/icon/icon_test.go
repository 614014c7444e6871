package icon

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

// mapSource serves fixed bodies and counts fetches per path.
type mapSource struct {
	mu     sync.Mutex
	files  map[string]string
	counts map[string]int
}

func newMapSource(files map[string]string) *mapSource {
	return &mapSource{files: files, counts: make(map[string]int)}
}

func (s *mapSource) Fetch(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name]++
	body, ok := s.files[name]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return []byte(body), nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

const squareSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32" fill="#123456" stroke="red" stroke-width="1.5">
  <rect x="1" y="1" width="30" height="30"/>
  <circle cx="16" cy="16" r="4"/>
</svg>`

func TestParseWellFormed(t *testing.T) {
	d, ok := Parse([]byte(squareSVG))
	if !ok {
		t.Fatal("Parse reported no svg root")
	}
	want := `<rect x="1" y="1" width="30" height="30"></rect><circle cx="16" cy="16" r="4"></circle>`
	if d.Content != want {
		t.Errorf("content = %q\nwant %q", d.Content, want)
	}
	if d.ViewBox != "0 0 32 32" {
		t.Errorf("viewBox = %q", d.ViewBox)
	}
	if d.Fill != "#123456" || d.Stroke != "red" || d.StrokeWidth != "1.5" {
		t.Errorf("attrs = %+v", d)
	}
}

func TestParseDefaultsMissingAttributes(t *testing.T) {
	d, ok := Parse([]byte(`<svg><path d="M0 0L1 1"/></svg>`))
	if !ok {
		t.Fatal("Parse reported no svg root")
	}
	if d.ViewBox != DefaultViewBox || d.Fill != DefaultFill || d.Stroke != DefaultStroke || d.StrokeWidth != DefaultStrokeWidth {
		t.Errorf("defaults not applied: %+v", d)
	}
	if d.Content != `<path d="M0 0L1 1"></path>` {
		t.Errorf("content = %q", d.Content)
	}
}

func TestParseNoRoot(t *testing.T) {
	for _, body := range []string{"", "<html><body>Not Found</body></html>", "plain text"} {
		d, ok := Parse([]byte(body))
		if ok {
			t.Errorf("Parse(%q) reported a root", body)
		}
		if d != Default() {
			t.Errorf("Parse(%q) = %+v, want default", body, d)
		}
	}
}

func TestResolveMissingFileReturnsDefault(t *testing.T) {
	r := NewResolver(newMapSource(nil), "data/icons", quietLogger())
	d := r.Resolve(context.Background(), "github")
	want := Descriptor{Content: "", ViewBox: "0 0 24 24", Fill: "currentColor", Stroke: "none", StrokeWidth: "0"}
	if d != want {
		t.Errorf("Resolve = %+v, want %+v", d, want)
	}
}

func TestResolvePath(t *testing.T) {
	src := newMapSource(map[string]string{"data/icons/square.svg": squareSVG})
	r := NewResolver(src, "data/icons", quietLogger())
	if got := r.Resolve(context.Background(), "square"); got.ViewBox != "0 0 32 32" {
		t.Errorf("Resolve viewBox = %q", got.ViewBox)
	}
	if src.counts["data/icons/square.svg"] != 1 {
		t.Errorf("fetch counts = %v", src.counts)
	}
}

func TestSetResolvesEachNameOnce(t *testing.T) {
	src := newMapSource(map[string]string{
		"icons/a.svg": `<svg viewBox="0 0 1 1"><g></g></svg>`,
		"icons/b.svg": `<svg viewBox="0 0 2 2"><g></g></svg>`,
	})
	set := NewResolver(src, "icons", quietLogger()).NewSet()

	set.Load(context.Background(), "a", "b", "a", "a", "missing", "b")
	set.Load(context.Background(), "a")

	for _, p := range []string{"icons/a.svg", "icons/b.svg", "icons/missing.svg"} {
		if src.counts[p] != 1 {
			t.Errorf("%s fetched %d times, want 1", p, src.counts[p])
		}
	}
	if set.Len() != 3 {
		t.Errorf("Len = %d, want 3", set.Len())
	}
	if set.Get("b").ViewBox != "0 0 2 2" {
		t.Errorf("Get(b) = %+v", set.Get("b"))
	}
	if set.Get("never-loaded") != Default() {
		t.Error("unknown names should yield the default descriptor")
	}
}

func TestOverrides(t *testing.T) {
	file := Descriptor{Content: "<path></path>", ViewBox: "0 0 16 16", Fill: "black", Stroke: "none", StrokeWidth: "0"}
	ov := DefaultOverrides()

	email := ov.For("email", file)
	if email.Fill != "none" || email.Stroke != ForegroundColor || email.StrokeWidth != "2" {
		t.Errorf("email presentation = %+v", email)
	}
	if email.ViewBox != "0 0 16 16" {
		t.Errorf("email viewBox should come from the file, got %q", email.ViewBox)
	}
	if !email.HasStroke() {
		t.Error("email should have a stroke")
	}

	other := ov.For("github", file)
	want := Presentation{ViewBox: "0 0 16 16", Fill: "black", Stroke: "none", StrokeWidth: "0"}
	if other != want {
		t.Errorf("github presentation = %+v, want %+v", other, want)
	}
	if other.HasStroke() {
		t.Error("stroke none should not be emitted")
	}
}
