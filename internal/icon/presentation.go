package icon

// ForegroundColor is the stroke colour outline icons inherit from the text.
const ForegroundColor = "currentColor"

// Presentation holds the attributes written onto an inlined <svg>.
type Presentation struct {
	ViewBox     string
	Fill        string
	Stroke      string
	StrokeWidth string
}

// HasStroke reports whether stroke attributes should be emitted at all.
func (p Presentation) HasStroke() bool {
	return p.Stroke != "" && p.Stroke != "none"
}

// Override replaces selected presentation attributes. Empty fields inherit
// the value from the icon file.
type Override struct {
	Fill        string `yaml:"fill,omitempty" koanf:"fill"`
	Stroke      string `yaml:"stroke,omitempty" koanf:"stroke"`
	StrokeWidth string `yaml:"stroke_width,omitempty" koanf:"stroke_width"`
}

// Apply returns p with the non-empty fields of o substituted.
func (o Override) Apply(p Presentation) Presentation {
	if o.Fill != "" {
		p.Fill = o.Fill
	}
	if o.Stroke != "" {
		p.Stroke = o.Stroke
	}
	if o.StrokeWidth != "" {
		p.StrokeWidth = o.StrokeWidth
	}
	return p
}

// Overrides maps icon names to presentation overrides.
type Overrides map[string]Override

// DefaultOverrides draws email icons as outlines in the text colour.
func DefaultOverrides() Overrides {
	return Overrides{
		"email": {Fill: "none", Stroke: ForegroundColor, StrokeWidth: "2"},
	}
}

// For returns the presentation for the icon called name. Names without an
// entry use the file's own attributes unchanged.
func (o Overrides) For(name string, d Descriptor) Presentation {
	p := Presentation{
		ViewBox:     d.ViewBox,
		Fill:        d.Fill,
		Stroke:      d.Stroke,
		StrokeWidth: d.StrokeWidth,
	}
	if ov, ok := o[name]; ok {
		p = ov.Apply(p)
	}
	return p
}
