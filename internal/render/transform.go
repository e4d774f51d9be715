package render

import "math"

// Transform is a 2D affine transform [A C Tx; B D Ty; 0 0 1], applied as
// x' = A*x + C*y + Tx, y' = B*x + D*y + Ty.
type Transform struct {
	A, B, C, D, Tx, Ty float64
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Mul composes t followed by o: applying the result is equivalent to
// applying t then o.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		A:  o.A*t.A + o.C*t.B,
		B:  o.B*t.A + o.D*t.B,
		C:  o.A*t.C + o.C*t.D,
		D:  o.B*t.C + o.D*t.D,
		Tx: o.A*t.Tx + o.C*t.Ty + o.Tx,
		Ty: o.B*t.Tx + o.D*t.Ty + o.Ty,
	}
}

func (t Transform) Translate(dx, dy float64) Transform {
	return t.Mul(Transform{A: 1, D: 1, Tx: dx, Ty: dy})
}

func (t Transform) Scale(sx, sy float64) Transform {
	return t.Mul(Transform{A: sx, D: sy})
}

func (t Transform) RotateDegrees(deg float64) Transform {
	r := deg * math.Pi / 180
	return t.Mul(Transform{A: math.Cos(r), B: math.Sin(r), C: -math.Sin(r), D: math.Cos(r)})
}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.Tx, t.B*x + t.D*y + t.Ty
}

// Invert returns the inverse transform. Callers only ever invert transforms
// built from translate/scale/rotate, which are always invertible for
// non-zero scale.
func (t Transform) Invert() Transform {
	det := t.A*t.D - t.B*t.C
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	a := t.D * inv
	b := -t.B * inv
	c := -t.C * inv
	d := t.A * inv
	tx := -(a*t.Tx + c*t.Ty)
	ty := -(b*t.Tx + d*t.Ty)
	return Transform{A: a, B: b, C: c, D: d, Tx: tx, Ty: ty}
}
