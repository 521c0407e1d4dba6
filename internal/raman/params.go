package raman

import "math"

// Peak is a single Lorentzian line
type Peak struct {
	Position float64 // cm-1
	Height   float64
	Width    float64 // half width at half maximum, cm-1
}

// At evaluates the line at x
func (p Peak) At(x float64) float64 {
	d := x - p.Position
	w2 := p.Width * p.Width
	return p.Height * w2 / (d*d + w2)
}

// Integral is the closed form area h w pi
func (p Peak) Integral() float64 {
	return p.Height * p.Width * math.Pi
}

// Background is a linear baseline
type Background struct {
	Offset float64
	Slope  float64
}

// At evaluates the baseline at x
func (b Background) At(x float64) float64 {
	return b.Offset + b.Slope*x
}

// Params is a sum of Lorentzians with an optional linear background.
type Params struct {
	Peaks      []Peak
	Background *Background
}

// HasBackground reports whether a baseline is part of the model
func (p *Params) HasBackground() bool {
	return p.Background != nil
}

// Eval returns the model value at x
func (p *Params) Eval(x float64) float64 {
	sum := 0.0
	for _, pk := range p.Peaks {
		sum += pk.At(x)
	}
	if p.Background != nil {
		sum += p.Background.At(x)
	}
	return sum
}

// EvalAll evaluates the model at every x
func (p *Params) EvalAll(x []float64) []float64 {
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = p.Eval(xi)
	}
	return y
}

// Vector flattens the parameters as position, height, width per peak,
// followed by offset and slope when a background is present.
func (p *Params) Vector() []float64 {
	v := make([]float64, 0, p.Len())
	for _, pk := range p.Peaks {
		v = append(v, pk.Position, pk.Height, pk.Width)
	}
	if p.Background != nil {
		v = append(v, p.Background.Offset, p.Background.Slope)
	}
	return v
}

// Len is the number of free parameters
func (p *Params) Len() int {
	n := 3 * len(p.Peaks)
	if p.Background != nil {
		n += 2
	}
	return n
}

// Clone returns a deep copy
func (p *Params) Clone() *Params {
	c := &Params{Peaks: append([]Peak(nil), p.Peaks...)}
	if p.Background != nil {
		bg := *p.Background
		c.Background = &bg
	}
	return c
}

// setVector is the inverse of Vector for the same layout
func (p *Params) setVector(v []float64) {
	for i := range p.Peaks {
		p.Peaks[i] = Peak{Position: v[3*i], Height: v[3*i+1], Width: v[3*i+2]}
	}
	if p.Background != nil {
		k := 3 * len(p.Peaks)
		p.Background.Offset, p.Background.Slope = v[k], v[k+1]
	}
}
