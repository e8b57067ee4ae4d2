package raster

import (
	"math"

	"github.com/go-drift/clockface/pkg/graphics"
)

// matrix is a 2D affine transform in column form:
//
//	| a c e |
//	| b d f |
type matrix struct {
	a, b, c, d, e, f float64
}

var identity = matrix{a: 1, d: 1}

// mul returns m followed by n in local coordinates, so n applies first.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m matrix) apply(p graphics.Offset) graphics.Offset {
	return graphics.Offset{
		X: m.a*p.X + m.c*p.Y + m.e,
		Y: m.b*p.X + m.d*p.Y + m.f,
	}
}

// scale is the linear scale factor of the transform, exact for rotations
// and uniform scales.
func (m matrix) scale() float64 {
	return math.Sqrt(math.Abs(m.a*m.d - m.b*m.c))
}
