package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/pkg/errors"
)

// ProfileKeyCredentialRequestProof shows the request ciphertext encrypts the
// profile key points behind a published commitment:
//
//	Y = y·G, D1 = r1·G, E1 = r2·G, J3 = j3·G_j3,
//	D2 − J1 = r1·Y − j3·G_j1, E2 − J2 = r2·Y − j3·G_j2.
type ProfileKeyCredentialRequestProof struct {
	Proof []byte
}

func requestStatement() *poksho.Statement {
	st := requestRelation.statement()
	st.Add("Y", term("y", "G"))
	st.Add("D1", term("r1", "G"))
	st.Add("E1", term("r2", "G"))
	st.Add("J3", term("j3", "G_j3"))
	st.Add("D2-J1", term("r1", "Y"), term("j3", "-G_j1"))
	st.Add("E2-J2", term("r2", "Y"), term("j3", "-G_j2"))
	return st
}

func requestPoints(pub RequestPublicKey, ct RequestCiphertext, c ProfileKeyCommitment) poksho.PointArgs {
	params := CommitmentSystemParams()
	return poksho.PointArgs{
		"Y":     pub.Y,
		"D1":    ct.D1,
		"E1":    ct.E1,
		"J3":    c.J3,
		"G_j3":  params.GJ3,
		"D2-J1": pointSub(ct.D2, c.J1),
		"-G_j1": pointNeg(params.GJ1),
		"E2-J2": pointSub(ct.E2, c.J2),
		"-G_j2": pointNeg(params.GJ2),
	}
}

func NewProfileKeyCredentialRequestProof(kp RequestKeyPair, ct RequestCiphertextWithSecretNonce, c CommitmentWithSecretNonce, s *sho.Sho) (*ProfileKeyCredentialRequestProof, error) {
	scalars := poksho.ScalarArgs{
		"y":  kp.y,
		"r1": ct.r1,
		"r2": ct.r2,
		"j3": c.j3,
	}
	points := requestPoints(kp.PublicKey(), ct.Ciphertext, c.Commitment)
	proof, err := proveWith(requestStatement(), scalars, points, nil, s)
	if err != nil {
		return nil, errors.Wrap(err, "request proof")
	}
	return &ProfileKeyCredentialRequestProof{Proof: proof}, nil
}

func (p *ProfileKeyCredentialRequestProof) Verify(pub RequestPublicKey, ct RequestCiphertext, c ProfileKeyCommitment) error {
	if isIdentity(pub.Y) || isIdentity(ct.D1) || isIdentity(ct.E1) {
		return ErrVerificationFailure
	}
	return verifyWith(requestStatement(), p.Proof, requestPoints(pub, ct, c), nil)
}
