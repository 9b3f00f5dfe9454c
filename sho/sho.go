// Package sho implements the synthetic hash object used to derive every
// piece of protocol randomness from a domain-separation label and a seed.
package sho

import (
	"github.com/bwesterb/go-ristretto"
)

// ShoAPI is a duplex-style stream: absorb input, ratchet to a fresh
// chaining value, squeeze output.
type ShoAPI interface {
	Absorb(data []byte)
	Ratchet()
	SqueezeAndRatchet(outLen int) []byte
	Clone() ShoAPI
}

// Sho wraps a ShoAPI flavour with the Ristretto helpers the protocol needs.
type Sho struct {
	ShoAPI
}

// New returns the default (SHAKE256) Sho keyed with label and seeded with data.
// Same (label, data) always produces the same output sequence.
func New(label, data []byte) *Sho {
	s := &Sho{NewShake256(label)}
	s.Absorb(data)
	s.Ratchet()
	return s
}

// NewBlake2b is New over the keyed BLAKE2b flavour.
func NewBlake2b(label, data []byte) *Sho {
	s := &Sho{NewBlake2bSho(label)}
	s.Absorb(data)
	s.Ratchet()
	return s
}

func Wrap(api ShoAPI) *Sho {
	return &Sho{api}
}

func (s *Sho) NextBytes(n int) []byte {
	return s.SqueezeAndRatchet(n)
}

// NextScalar reduces 64 bytes of output modulo the group order.
func (s *Sho) NextScalar() *ristretto.Scalar {
	var buf [64]byte
	copy(buf[:], s.SqueezeAndRatchet(64))
	var x ristretto.Scalar
	return x.SetReduced(&buf)
}

// NextPoint maps 64 bytes of output to a point with two Elligator calls.
func (s *Sho) NextPoint() *ristretto.Point {
	return PointFromUniformBytes(s.SqueezeAndRatchet(64))
}

// NextPointSingleElligator maps 32 bytes of output to a point.
func (s *Sho) NextPointSingleElligator() *ristretto.Point {
	var buf [32]byte
	copy(buf[:], s.SqueezeAndRatchet(32))
	var p ristretto.Point
	return p.SetElligator(&buf)
}

func (s *Sho) Clone() *Sho {
	return &Sho{s.ShoAPI.Clone()}
}

func PointFromUniformBytes(key []byte) *ristretto.Point {
	var r1Bytes, r2Bytes [32]byte
	copy(r1Bytes[:], key[:32])
	copy(r2Bytes[:], key[32:])
	var r, r1, r2 ristretto.Point
	return r.Add(r1.SetElligator(&r1Bytes), r2.SetElligator(&r2Bytes))
}
