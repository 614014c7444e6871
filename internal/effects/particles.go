// Package effects holds the decorative page behaviours: the particle
// background, hero parallax, the scroll-progress indicator and the draggable
// floating portrait.
//
// None of them share state with the content pipeline. Each is an explicit
// value with its own state; anything that runs over time has Start and Stop.
package effects

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// DefaultPalette is the particle colour set.
var DefaultPalette = []string{"#6366f1", "#8b5cf6", "#ec4899"}

// Field configures the particle background.
type Field struct {
	Count   int
	Palette []string
}

// DefaultField returns the standard 50-particle field.
func DefaultField() Field {
	return Field{Count: 50, Palette: DefaultPalette}
}

// Particle is one decorative dot.
type Particle struct {
	LeftPct  float64
	TopPct   float64
	Delay    float64 // seconds
	Duration float64 // seconds
	Size     float64 // px
	Color    string
}

// Generate returns Count particles drawn from rng.
func (f Field) Generate(rng *rand.Rand) []Particle {
	palette := f.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	out := make([]Particle, f.Count)
	for i := range out {
		size := 2 + rng.Float64()*3
		out[i] = Particle{
			LeftPct:  rng.Float64() * 100,
			TopPct:   rng.Float64() * 100,
			Delay:    rng.Float64() * 20,
			Duration: 15 + rng.Float64()*10,
			Size:     size,
			Color:    palette[rng.IntN(len(palette))],
		}
	}
	return out
}

// Markup renders particles as positioned divs.
func Markup(particles []Particle) string {
	var sb strings.Builder
	for _, p := range particles {
		fmt.Fprintf(&sb,
			`<div class="particle" style="left: %.2f%%; top: %.2f%%; animation-delay: %.2fs; animation-duration: %.2fs; width: %.2fpx; height: %.2fpx; background: %s"></div>`,
			p.LeftPct, p.TopPct, p.Delay, p.Duration, p.Size, p.Size, p.Color)
	}
	return sb.String()
}
