package poksho

import (
	"bytes"
	"crypto/subtle"

	"github.com/bwesterb/go-ristretto"
)

// Prove returns c ‖ s_1 … s_n. Nonces are synthetic: a clone of the public
// transcript keyed with randomness and the witness, so a repeated randomness
// never reuses a nonce for a different witness. The proof is verified before
// it is returned; a witness that does not satisfy the statement yields
// ErrInvalidWitness.
func (st *Statement) Prove(scalarArgs ScalarArgs, pointArgs PointArgs, message, randomness []byte) ([]byte, error) {
	scalars, err := st.resolveScalars(scalarArgs)
	if err != nil {
		return nil, err
	}
	points, err := st.resolvePoints(pointArgs)
	if err != nil {
		return nil, err
	}

	transcript := st.newTranscript(points, message)

	nonceSho := transcript.Clone()
	nonceSho.Absorb(randomness)
	for _, s := range scalars {
		nonceSho.Absorb(s.Bytes())
	}
	nonceSho.Ratchet()
	nonces := make([]*ristretto.Scalar, len(scalars))
	for i := range nonces {
		nonces[i] = nonceSho.NextScalar()
	}

	for _, eq := range st.equations {
		transcript.Absorb(st.sumTerms(eq, nonces, points).Bytes())
	}
	challenge := transcript.NextScalar()

	proof := make([]byte, 0, st.ProofLen())
	proof = append(proof, challenge.Bytes()...)
	for i := range scalars {
		var cx, response ristretto.Scalar
		cx.Mul(challenge, scalars[i])
		response.Add(nonces[i], &cx)
		proof = append(proof, response.Bytes()...)
	}

	if st.Verify(proof, pointArgs, message) != nil {
		return nil, ErrInvalidWitness
	}
	return proof, nil
}

// Verify only ever reports ErrVerificationFailure.
func (st *Statement) Verify(proof []byte, pointArgs PointArgs, message []byte) error {
	if len(proof) != st.ProofLen() {
		return ErrVerificationFailure
	}
	points, err := st.resolvePoints(pointArgs)
	if err != nil {
		return ErrVerificationFailure
	}

	challenge, ok := decodeScalar(proof[:32])
	if !ok {
		return ErrVerificationFailure
	}
	responses := make([]*ristretto.Scalar, len(st.scalarVec))
	for i := range responses {
		offset := 32 * (i + 1)
		responses[i], ok = decodeScalar(proof[offset : offset+32])
		if !ok {
			return ErrVerificationFailure
		}
	}

	transcript := st.newTranscript(points, message)
	for _, eq := range st.equations {
		var cl ristretto.Point
		cl.ScalarMult(points[eq.lhs], challenge)
		commitment := st.sumTerms(eq, responses, points)
		commitment.Sub(commitment, &cl)
		transcript.Absorb(commitment.Bytes())
	}
	expected := transcript.NextScalar()

	if subtle.ConstantTimeCompare(expected.Bytes(), proof[:32]) != 1 {
		return ErrVerificationFailure
	}
	return nil
}

func decodeScalar(b []byte) (*ristretto.Scalar, bool) {
	var buf [32]byte
	copy(buf[:], b)
	var s ristretto.Scalar
	s.SetBytes(&buf)
	if !bytes.Equal(s.Bytes(), b) {
		return nil, false
	}
	return &s, true
}
