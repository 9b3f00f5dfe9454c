// Package poksho proves knowledge of scalars satisfying a set of linear
// relations over Ristretto points, made non-interactive with a Sho transcript.
package poksho

import (
	"encoding/binary"

	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
	"github.com/pkg/errors"
)

// BasepointName is always registered as point 0 and filled in automatically.
const BasepointName = "G"

var (
	ErrVerificationFailure = errors.New("poksho: verification failure")
	ErrInvalidWitness      = errors.New("poksho: invalid witness")
	ErrMissingArgument     = errors.New("poksho: missing argument")
)

// Transcript builds the Sho a statement hashes into. sho.New and
// sho.NewBlake2b both satisfy it.
type Transcript func(label, data []byte) *sho.Sho

type ScalarArgs map[string]*ristretto.Scalar

type PointArgs map[string]*ristretto.Point

type Term struct {
	Scalar string
	Point  string
}

type equation struct {
	lhs   int
	terms []term
}

type term struct {
	scalar int
	point  int
}

// Statement is a list of equations lhs = Σ scalar·point. Names are resolved
// to indices in the order they first appear.
type Statement struct {
	label      []byte
	transcript Transcript
	equations  []equation
	scalarMap  map[string]int
	scalarVec  []string
	pointMap   map[string]int
	pointVec   []string
}

func NewStatement(label string, transcript Transcript) *Statement {
	st := &Statement{
		label:      []byte(label),
		transcript: transcript,
		scalarMap:  make(map[string]int),
		pointMap:   make(map[string]int),
	}
	st.pointIndex(BasepointName)
	return st
}

func (st *Statement) Add(lhs string, terms ...Term) {
	eq := equation{lhs: st.pointIndex(lhs)}
	for _, t := range terms {
		eq.terms = append(eq.terms, term{
			scalar: st.scalarIndex(t.Scalar),
			point:  st.pointIndex(t.Point),
		})
	}
	st.equations = append(st.equations, eq)
}

func (st *Statement) scalarIndex(name string) int {
	if i, found := st.scalarMap[name]; found {
		return i
	}
	st.scalarMap[name] = len(st.scalarVec)
	st.scalarVec = append(st.scalarVec, name)
	return len(st.scalarVec) - 1
}

func (st *Statement) pointIndex(name string) int {
	if i, found := st.pointMap[name]; found {
		return i
	}
	st.pointMap[name] = len(st.pointVec)
	st.pointVec = append(st.pointVec, name)
	return len(st.pointVec) - 1
}

// ProofLen is the size of a proof: the challenge and one response per scalar.
func (st *Statement) ProofLen() int {
	return 32 * (1 + len(st.scalarVec))
}

// description encodes the shape of the statement so two statements with the
// same points but different equations never share a challenge.
func (st *Statement) description() []byte {
	buf := []byte{byte(len(st.equations))}
	for _, eq := range st.equations {
		buf = append(buf, byte(eq.lhs), byte(len(eq.terms)))
		for _, t := range eq.terms {
			buf = append(buf, byte(t.scalar), byte(t.point))
		}
	}
	return buf
}

func (st *Statement) resolveScalars(args ScalarArgs) ([]*ristretto.Scalar, error) {
	scalars := make([]*ristretto.Scalar, len(st.scalarVec))
	for i, name := range st.scalarVec {
		s, found := args[name]
		if !found || s == nil {
			return nil, ErrMissingArgument
		}
		scalars[i] = s
	}
	return scalars, nil
}

func (st *Statement) resolvePoints(args PointArgs) ([]*ristretto.Point, error) {
	points := make([]*ristretto.Point, len(st.pointVec))
	for i, name := range st.pointVec {
		if name == BasepointName {
			var g ristretto.Point
			points[i] = g.SetBase()
			continue
		}
		p, found := args[name]
		if !found || p == nil {
			return nil, ErrMissingArgument
		}
		points[i] = p
	}
	return points, nil
}

func (st *Statement) newTranscript(points []*ristretto.Point, message []byte) *sho.Sho {
	t := st.transcript(st.label, st.description())
	for _, p := range points {
		t.Absorb(p.Bytes())
	}
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(message)))
	t.Absorb(size[:])
	t.Absorb(message)
	t.Ratchet()
	return t
}

func (st *Statement) sumTerms(eq equation, scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var sum ristretto.Point
	sum.SetZero()
	for _, t := range eq.terms {
		var p ristretto.Point
		p.ScalarMult(points[t.point], scalars[t.scalar])
		sum.Add(&sum, &p)
	}
	return &sum
}
