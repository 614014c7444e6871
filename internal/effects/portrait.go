package effects

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Zachkp/folio/internal/store"
)

// DragState is the portrait's position state.
type DragState int

const (
	Floating DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "floating"
}

// Size is a width/height pair in px.
type Size struct {
	W, H float64
}

// Bounds holds the sizes needed to keep the portrait inside its container.
type Bounds struct {
	Container Size
	Element   Size
}

// Clamp limits p so the element stays within the container: at most half
// the spare width and height either side of centre.
func (b Bounds) Clamp(p store.Position) store.Position {
	maxX := math.Max(0, (b.Container.W-b.Element.W)/2)
	maxY := math.Max(0, (b.Container.H-b.Element.H)/2)
	return store.Position{
		X: math.Max(-maxX, math.Min(maxX, p.X)),
		Y: math.Max(-maxY, math.Min(maxY, p.Y)),
	}
}

// Transform is one frame of portrait placement.
type Transform struct {
	X, Y     float64
	Rotation float64 // degrees
}

// Surface receives the portrait's placement.
type Surface interface {
	Apply(Transform)
}

// SurfaceFunc adapts a function to a Surface.
type SurfaceFunc func(Transform)

func (f SurfaceFunc) Apply(t Transform) { f(t) }

// FloatStep is how far the float clock advances each frame.
const FloatStep = 0.02

// FloatOffset is the idle drift at float time t.
func FloatOffset(t float64) Transform {
	return Transform{
		X:        math.Sin(t)*10 + math.Cos(t*0.7)*5,
		Y:        math.Cos(t*0.8)*15 + math.Sin(t*1.2)*5,
		Rotation: math.Sin(t*0.5) * 2,
	}
}

// Pointer is a mouse or touch position; both drive the portrait the same way.
type Pointer struct {
	X, Y float64
}

// PortraitOptions configures a Portrait.
type PortraitOptions struct {
	Bounds Bounds
	Store  store.PositionStore
	// SettleDelay is the pause between release and resuming the float.
	SettleDelay time.Duration
	// Frame is the float animation frame interval.
	Frame  time.Duration
	Logger *log.Logger
}

// Portrait is the draggable, idly floating portrait.
//
// It floats until a pointer goes down on it, follows the pointer while
// dragging, persists its resting offset on release and floats again after
// SettleDelay.
type Portrait struct {
	opts    PortraitOptions
	surface Surface

	mu     sync.Mutex
	state  DragState
	base   store.Position
	start  Pointer // pointer position minus base at drag start
	t      float64
	cancel context.CancelFunc
	done   chan struct{}
	settle *time.Timer
	ctx    context.Context
}

// NewPortrait returns a portrait drawing to surface.
func NewPortrait(surface Surface, opts PortraitOptions) *Portrait {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 100 * time.Millisecond
	}
	if opts.Frame <= 0 {
		opts.Frame = FrameInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Portrait{opts: opts, surface: surface}
}

// Start restores the persisted offset and begins floating. It returns once
// the float task is running; ctx bounds the portrait's lifetime.
func (p *Portrait) Start(ctx context.Context) {
	if p.opts.Store != nil {
		pos, ok, err := p.opts.Store.Load(ctx)
		if err != nil {
			p.opts.Logger.Warn("loading portrait position", "err", err)
		} else if ok {
			p.mu.Lock()
			p.base = pos
			p.mu.Unlock()
			p.surface.Apply(Transform{X: pos.X, Y: pos.Y})
		}
	}

	p.mu.Lock()
	p.ctx = ctx
	p.startFloatLocked()
	p.mu.Unlock()
}

// Stop cancels the float task and any pending settle timer and waits for the
// task to exit.
func (p *Portrait) Stop() {
	p.mu.Lock()
	if p.settle != nil {
		p.settle.Stop()
		p.settle = nil
	}
	done := p.stopFloatLocked()
	p.ctx = nil
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// State reports the current drag state.
func (p *Portrait) State() DragState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Offset reports the resting offset the float is composed with.
func (p *Portrait) Offset() store.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.base
}

// PointerDown starts a drag. The float stops immediately.
func (p *Portrait) PointerDown(ptr Pointer) {
	p.mu.Lock()
	if p.settle != nil {
		p.settle.Stop()
		p.settle = nil
	}
	p.start = Pointer{X: ptr.X - p.base.X, Y: ptr.Y - p.base.Y}
	p.state = Dragging
	done := p.stopFloatLocked()
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// PointerMove moves the portrait while dragging; otherwise it is ignored.
func (p *Portrait) PointerMove(ptr Pointer) {
	p.mu.Lock()
	if p.state != Dragging {
		p.mu.Unlock()
		return
	}
	p.base = p.opts.Bounds.Clamp(store.Position{X: ptr.X - p.start.X, Y: ptr.Y - p.start.Y})
	tr := Transform{X: p.base.X, Y: p.base.Y}
	p.mu.Unlock()
	p.surface.Apply(tr)
}

// PointerUp ends a drag, persists the offset and schedules the float to
// resume.
func (p *Portrait) PointerUp(ctx context.Context) error {
	p.mu.Lock()
	if p.state != Dragging {
		p.mu.Unlock()
		return nil
	}
	p.state = Floating
	pos := p.base
	p.settle = time.AfterFunc(p.opts.SettleDelay, p.resume)
	p.mu.Unlock()

	if p.opts.Store == nil {
		return nil
	}
	return p.opts.Store.Save(ctx, pos)
}

func (p *Portrait) resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settle = nil
	if p.state == Floating {
		p.startFloatLocked()
	}
}

func (p *Portrait) startFloatLocked() {
	if p.cancel != nil || p.ctx == nil {
		return
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.float(ctx, p.done)
}

// stopFloatLocked cancels the float task and returns its done channel, which
// must be waited on after releasing the lock.
func (p *Portrait) stopFloatLocked() chan struct{} {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	p.cancel = nil
	done := p.done
	p.done = nil
	return done
}

func (p *Portrait) float(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.opts.Frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if ctx.Err() != nil {
			p.mu.Unlock()
			return
		}
		p.t += FloatStep
		off := FloatOffset(p.t)
		tr := Transform{X: p.base.X + off.X, Y: p.base.Y + off.Y, Rotation: off.Rotation}
		p.mu.Unlock()

		p.surface.Apply(tr)
	}
}
