package effects

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Zachkp/folio/internal/store"
)

func TestFieldGenerate(t *testing.T) {
	f := DefaultField()
	ps := f.Generate(rand.New(rand.NewPCG(1, 2)))
	if len(ps) != 50 {
		t.Fatalf("got %d particles, want 50", len(ps))
	}
	palette := map[string]bool{}
	for _, c := range DefaultPalette {
		palette[c] = true
	}
	for i, p := range ps {
		if p.LeftPct < 0 || p.LeftPct >= 100 || p.TopPct < 0 || p.TopPct >= 100 {
			t.Errorf("particle %d position out of range: %+v", i, p)
		}
		if p.Delay < 0 || p.Delay >= 20 || p.Duration < 15 || p.Duration >= 25 {
			t.Errorf("particle %d timing out of range: %+v", i, p)
		}
		if p.Size < 2 || p.Size >= 5 {
			t.Errorf("particle %d size out of range: %v", i, p.Size)
		}
		if !palette[p.Color] {
			t.Errorf("particle %d colour %q not in palette", i, p.Color)
		}
	}

	html := Markup(ps[:2])
	if strings.Count(html, `class="particle"`) != 2 {
		t.Errorf("markup = %q", html)
	}
}

func TestParallax(t *testing.T) {
	off, op, ok := Parallax(200, 800)
	if !ok || off != 100 || op != 0.875 {
		t.Errorf("Parallax(200, 800) = %v, %v, %v", off, op, ok)
	}
	if _, _, ok := Parallax(800, 800); ok {
		t.Error("no update once a full viewport has scrolled")
	}
	if _, _, ok := Parallax(0, 0); ok {
		t.Error("zero viewport should not update")
	}
}

func TestThrottleCoalesces(t *testing.T) {
	var sched ManualScheduler
	runs := 0
	th := NewThrottle(&sched, func() { runs++ })

	for range 10 {
		th.Request()
	}
	if n := sched.Flush(); n != 1 {
		t.Errorf("queued %d frames, want 1", n)
	}
	if runs != 1 {
		t.Errorf("ran %d times, want 1", runs)
	}

	th.Request()
	sched.Flush()
	if runs != 2 {
		t.Errorf("request after a frame should run again, runs = %d", runs)
	}
}

func stacked(heights ...float64) []*Span {
	spans := make([]*Span, len(heights))
	top := 0.0
	for i, h := range heights {
		spans[i] = &Span{Top: top, Height: h}
		top += h
	}
	return spans
}

func TestProgressMidpointInThirdRegion(t *testing.T) {
	spans := stacked(1000, 1000, 1000, 1000, 1000)
	// viewport 800 → midpoint = scrollTop + 400 = 2500, inside region 2.
	st := Progress(2100, 800, 5000, spans)

	if st.Active != 2 {
		t.Fatalf("active = %d, want 2", st.Active)
	}
	want := []Marker{Completed, Completed, Active, Pending, Pending}
	for i, m := range want {
		if st.Markers[i] != m {
			t.Errorf("marker %d = %v, want %v", i, st.Markers[i], m)
		}
	}
	if math.Abs(st.Percent-2100.0/4200*100) > 1e-9 {
		t.Errorf("percent = %v", st.Percent)
	}
}

func TestProgressDefaultsAndClamp(t *testing.T) {
	spans := []*Span{nil, {Top: 5000, Height: 10}}
	st := Progress(0, 800, 600, spans)
	if st.Active != 0 || st.Markers[0] != Active || st.Markers[1] != Pending {
		t.Errorf("no match should activate region 0: %+v", st)
	}
	if st.Percent != 0 {
		t.Errorf("unscrollable page percent = %v", st.Percent)
	}

	st = Progress(9000, 800, 1800, stacked(900, 900))
	if st.Percent != 100 {
		t.Errorf("percent should clamp to 100, got %v", st.Percent)
	}
}

func TestProgressFirstMatchWins(t *testing.T) {
	spans := []*Span{{Top: 0, Height: 2000}, {Top: 500, Height: 2000}}
	if st := Progress(400, 800, 3000, spans); st.Active != 0 {
		t.Errorf("overlapping regions should pick the first, got %d", st.Active)
	}
}

func TestScrollTarget(t *testing.T) {
	if ScrollTarget(2) != "publications" || ScrollTarget(5) != "" || ScrollTarget(-1) != "" {
		t.Error("ScrollTarget mapping wrong")
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Container: Size{W: 600, H: 400}, Element: Size{W: 200, H: 200}}
	got := b.Clamp(store.Position{X: 1000, Y: -1000})
	if got != (store.Position{X: 200, Y: -100}) {
		t.Errorf("Clamp = %+v, want exactly the half-spare boundary", got)
	}
	inside := store.Position{X: 10, Y: -20}
	if b.Clamp(inside) != inside {
		t.Error("positions inside bounds must pass through")
	}
}

// recorder collects applied transforms.
type recorder struct {
	mu   sync.Mutex
	last Transform
	n    int
}

func (r *recorder) Apply(tr Transform) {
	r.mu.Lock()
	r.last = tr
	r.n++
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

func (r *recorder) lastTransform() Transform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func TestPortraitDragClampsAndPersists(t *testing.T) {
	st := store.NewMemory()
	rec := &recorder{}
	p := NewPortrait(rec, PortraitOptions{
		Bounds:      Bounds{Container: Size{W: 500, H: 300}, Element: Size{W: 100, H: 100}},
		Store:       st,
		SettleDelay: time.Hour,
		Frame:       time.Millisecond,
	})
	ctx := context.Background()
	p.Start(ctx)
	defer p.Stop()

	p.PointerDown(Pointer{X: 50, Y: 50})
	if p.State() != Dragging {
		t.Fatalf("state = %v, want dragging", p.State())
	}
	n := rec.count()

	p.PointerMove(Pointer{X: 1050, Y: -950})
	if got := rec.lastTransform(); got != (Transform{X: 200, Y: -100}) {
		t.Errorf("drag transform = %+v, want clamped to (200,-100)", got)
	}
	if rec.count() != n+1 {
		t.Error("no float frames should be applied while dragging")
	}

	if err := p.PointerUp(ctx); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if p.State() != Floating {
		t.Errorf("state after release = %v", p.State())
	}
	saved, ok, _ := st.Load(ctx)
	if !ok || saved != (store.Position{X: 200, Y: -100}) {
		t.Errorf("saved = %+v (ok %v)", saved, ok)
	}
}

func TestPortraitRestoresAndResumesFloating(t *testing.T) {
	st := store.NewMemory()
	st.Save(context.Background(), store.Position{X: 30, Y: 40})
	rec := &recorder{}
	p := NewPortrait(rec, PortraitOptions{
		Bounds:      Bounds{Container: Size{W: 1000, H: 1000}, Element: Size{W: 100, H: 100}},
		Store:       st,
		SettleDelay: 5 * time.Millisecond,
		Frame:       time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	if p.Offset() != (store.Position{X: 30, Y: 40}) {
		t.Errorf("restored offset = %+v", p.Offset())
	}

	waitFor(t, func() bool { return rec.count() > 3 })

	p.PointerDown(Pointer{X: 0, Y: 0})
	p.PointerMove(Pointer{X: 10, Y: 10})
	if err := p.PointerUp(ctx); err != nil {
		t.Fatal(err)
	}
	after := rec.count()
	waitFor(t, func() bool { return rec.count() > after+3 })

	p.Stop()
	stopped := rec.count()
	time.Sleep(10 * time.Millisecond)
	if rec.count() != stopped {
		t.Error("frames applied after Stop")
	}
}

func TestPointerMoveIgnoredWhenFloating(t *testing.T) {
	rec := &recorder{}
	p := NewPortrait(rec, PortraitOptions{})
	p.PointerMove(Pointer{X: 99, Y: 99})
	if rec.count() != 0 || p.Offset() != (store.Position{}) {
		t.Error("move without a drag must be ignored")
	}
	if err := p.PointerUp(context.Background()); err != nil {
		t.Errorf("PointerUp without drag: %v", err)
	}
}

func TestFloatOffset(t *testing.T) {
	got := FloatOffset(0)
	if got.X != 5 || got.Y != 15 || got.Rotation != 0 {
		t.Errorf("FloatOffset(0) = %+v", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

// ManualScheduler queues callbacks until Flush.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []func()
}

func (m *ManualScheduler) NextFrame(fn func()) {
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
}

// Flush runs every queued callback and reports how many ran.
func (m *ManualScheduler) Flush() int {
	m.mu.Lock()
	q := m.queue
	m.queue = nil
	m.mu.Unlock()
	for _, fn := range q {
		fn()
	}
	return len(q)
}
