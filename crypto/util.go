package crypto

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/bwesterb/go-ristretto"
)

func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var p ristretto.Point
	p.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		p.Add(&p, &t)
	}
	return &p
}

func uint64ToScalar(i uint64) *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

func scalarMul(p *ristretto.Point, s *ristretto.Scalar) *ristretto.Point {
	var r ristretto.Point
	return r.ScalarMult(p, s)
}

func scalarMulBase(s *ristretto.Scalar) *ristretto.Point {
	var r ristretto.Point
	return r.ScalarMultBase(s)
}

func pointAdd(p, q *ristretto.Point) *ristretto.Point {
	var r ristretto.Point
	return r.Add(p, q)
}

func pointSub(p, q *ristretto.Point) *ristretto.Point {
	var r ristretto.Point
	return r.Sub(p, q)
}

func pointNeg(p *ristretto.Point) *ristretto.Point {
	var r ristretto.Point
	return r.Neg(p)
}

func isIdentity(p *ristretto.Point) bool {
	var zero ristretto.Point
	zero.SetZero()
	return p.Equals(&zero)
}

func pointsEqual(p, q *ristretto.Point) bool {
	return subtle.ConstantTimeCompare(p.Bytes(), q.Bytes()) == 1
}

func zeroizeScalar(s *ristretto.Scalar) {
	if s != nil {
		s.SetZero()
	}
}

func term(scalar, point string) poksho.Term {
	return poksho.Term{Scalar: scalar, Point: point}
}
