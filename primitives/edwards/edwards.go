// Package edwards implements the group law of Edwards curves
// x^2 + y^2 = 1 + d*x^2*y^2 over a prime field, with E-521 as the fixed curve.
//
// Arithmetic uses math/big throughout; no attempt is made at constant time.
package edwards

import (
	"math/big"
	"sync"

	kmacx "github.com/BackendStack21/kmacx-go"
	"github.com/BackendStack21/kmacx-go/core"
)

var (
	one = big.NewInt(1)

	initonce  sync.Once
	e521Curve *Curve
)

// Curve is an Edwards curve with a non-square d, for which the addition law is
// complete: it has no exceptional inputs among points on the curve.
type Curve struct {
	params kmacx.CurveParams
	sqrtE  *big.Int // (p+1)/4
}

// NewCurve returns a curve for params. The field prime must be 3 mod 4.
func NewCurve(params kmacx.CurveParams) (*Curve, error) {
	if err := core.ValidateParams(params); err != nil {
		return nil, err
	}
	e := new(big.Int).Add(params.P, one)
	return &Curve{params: params, sqrtE: e.Rsh(e, 2)}, nil
}

// E521 returns the E-521 curve.
func E521() *Curve {
	initonce.Do(func() {
		c, err := NewCurve(core.E521Params)
		if err != nil {
			panic("edwards: " + err.Error())
		}
		e521Curve = c
	})
	return e521Curve
}

// Params returns the curve parameters.
func (c *Curve) Params() kmacx.CurveParams {
	return c.params
}

// Order returns the prime order r of the base point.
func (c *Curve) Order() *big.Int {
	return new(big.Int).Set(c.params.R)
}

// Neutral returns the neutral element (0, 1).
func (c *Curve) Neutral() kmacx.Point {
	return kmacx.Point{X: new(big.Int), Y: big.NewInt(1)}
}

// Base returns the generator G.
func (c *Curve) Base() kmacx.Point {
	return kmacx.Point{X: new(big.Int).Set(c.params.Gx), Y: new(big.Int).Set(c.params.Gy)}
}

// IsOnCurve reports whether (x mod p, y mod p) satisfies the curve equation.
func (c *Curve) IsOnCurve(pt kmacx.Point) bool {
	if pt.X == nil || pt.Y == nil {
		return false
	}
	p := c.params.P
	x := c.reduce(pt.X)
	y := c.reduce(pt.Y)

	x2 := new(big.Int).Mul(x, x)
	x2.Mod(x2, p)
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, p)

	left := new(big.Int).Add(x2, y2)
	left.Mod(left, p)

	right := new(big.Int).Mul(x2, y2)
	right.Mul(right, c.params.D)
	right.Add(right, one)
	right.Mod(right, p)

	return left.Cmp(right) == 0
}

// Validate returns kmacx.ErrInvalidPoint unless pt is on the curve.
// Points decoded from untrusted input must pass Validate before use.
func (c *Curve) Validate(pt kmacx.Point) error {
	if !c.IsOnCurve(pt) {
		return kmacx.ErrInvalidPoint
	}
	return nil
}

// Equal reports whether two points are the same after reduction mod p.
func (c *Curve) Equal(a, b kmacx.Point) bool {
	return c.reduce(a.X).Cmp(c.reduce(b.X)) == 0 && c.reduce(a.Y).Cmp(c.reduce(b.Y)) == 0
}

// IsNeutral reports whether pt is (0, 1).
func (c *Curve) IsNeutral(pt kmacx.Point) bool {
	return c.Equal(pt, c.Neutral())
}

// Negate returns (-x mod p, y).
func (c *Curve) Negate(pt kmacx.Point) kmacx.Point {
	x := new(big.Int).Neg(pt.X)
	return kmacx.Point{X: x.Mod(x, c.params.P), Y: c.reduce(pt.Y)}
}

// Add returns a + b using the Edwards addition law
//
//	x3 = (x1*y2 + y1*x2) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 - x1*x2) / (1 - d*x1*x2*y1*y2)
//
// It also covers doubling and the neutral element.
func (c *Curve) Add(a, b kmacx.Point) kmacx.Point {
	p := c.params.P
	x1, y1 := c.reduce(a.X), c.reduce(a.Y)
	x2, y2 := c.reduce(b.X), c.reduce(b.Y)

	x1y2 := new(big.Int).Mul(x1, y2)
	y1x2 := new(big.Int).Mul(y1, x2)
	numX := x1y2.Add(x1y2, y1x2)

	y1y2 := new(big.Int).Mul(y1, y2)
	x1x2 := new(big.Int).Mul(x1, x2)

	t := new(big.Int).Mul(x1x2, y1y2)
	t.Mul(t, c.params.D)
	t.Mod(t, p)

	numY := y1y2.Sub(y1y2, x1x2)

	denX := new(big.Int).Add(one, t)
	denY := new(big.Int).Sub(one, t)
	denY.Mod(denY, p)

	x3 := numX.Mul(numX, c.inverse(denX))
	x3.Mod(x3, p)
	y3 := numY.Mul(numY, c.inverse(denY))
	y3.Mod(y3, p)

	return kmacx.Point{X: x3, Y: y3}
}

// Double returns pt + pt.
func (c *Curve) Double(pt kmacx.Point) kmacx.Point {
	return c.Add(pt, pt)
}

// ScalarMult returns k*pt by double-and-add over the bits of k, most significant
// first. A negative k multiplies the negated point.
func (c *Curve) ScalarMult(pt kmacx.Point, k *big.Int) kmacx.Point {
	if k.Sign() < 0 {
		return c.ScalarMult(c.Negate(pt), new(big.Int).Neg(k))
	}
	base := kmacx.Point{X: c.reduce(pt.X), Y: c.reduce(pt.Y)}
	acc := c.Neutral()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = c.Double(acc)
		if k.Bit(i) == 1 {
			acc = c.Add(acc, base)
		}
	}
	return acc
}

// ScalarBaseMult returns k*G.
func (c *Curve) ScalarBaseMult(k *big.Int) kmacx.Point {
	return c.ScalarMult(c.Base(), k)
}

// FromX recovers the point with the given x and the requested parity of y,
// solving y^2 = (1 - x^2) / (1 - d*x^2). It returns kmacx.ErrInvalidPoint when
// no such point exists.
func (c *Curve) FromX(x *big.Int, odd bool) (kmacx.Point, error) {
	p := c.params.P
	xr := c.reduce(x)

	x2 := new(big.Int).Mul(xr, xr)
	x2.Mod(x2, p)

	num := new(big.Int).Sub(one, x2)
	num.Mod(num, p)

	den := new(big.Int).Mul(c.params.D, x2)
	den.Sub(one, den)
	den.Mod(den, p)
	if den.Sign() == 0 {
		return kmacx.Point{}, kmacx.ErrInvalidPoint
	}

	v := num.Mul(num, c.inverse(den))
	v.Mod(v, p)

	y := new(big.Int).Exp(v, c.sqrtE, p)
	check := new(big.Int).Mul(y, y)
	if check.Mod(check, p).Cmp(v) != 0 {
		return kmacx.Point{}, kmacx.ErrInvalidPoint
	}
	if (y.Bit(0) == 1) != odd {
		y.Sub(p, y)
		y.Mod(y, p)
	}
	return kmacx.Point{X: xr, Y: y}, nil
}

func (c *Curve) reduce(v *big.Int) *big.Int {
	return new(big.Int).Mod(v, c.params.P)
}

// inverse returns v^-1 mod p. v must be non-zero mod p, which the complete
// addition law guarantees for points on the curve.
func (c *Curve) inverse(v *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(v, c.params.P)
	if inv == nil {
		panic("edwards: inverse of zero")
	}
	return inv
}
