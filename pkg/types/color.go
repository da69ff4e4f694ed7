package types

// Color is an RGBA color with channels in the range [0, 1].
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// NewColor creates a Color from its channels.
func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (Color) Kind() Kind { return KindColor }

func (c Color) String() string {
	return "rgba(" + formatFloat(c.R) + ", " + formatFloat(c.G) + ", " + formatFloat(c.B) + ", " + formatFloat(c.A) + ")"
}

func (Color) isValue() {}
