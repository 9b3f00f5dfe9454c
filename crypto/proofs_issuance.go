package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
	"github.com/pkg/errors"
)

// Every issuance proof shows C_W = w·G_w + wprime·G_wprime and
// G_V − I = x0·G_x0 + x1·G_x1 + Σ yi·G_yi, then either
// V = w·G_w + x0·U + x1·tU + Σ yi·Mi for a clear credential, or for a
// blinded one
//
//	S1 = Σ yi·c1_i + rprime·G
//	S2 = Σ yi·c2_i + rprime·Y + w·G_w + x0·U + x1·tU + Σ yj·Mj
//
// where i runs over hidden attributes and j over attributes the issuer knows.

type AuthCredentialIssuanceProof struct {
	Proof []byte
}

type ProfileKeyCredentialIssuanceProof struct {
	Proof []byte
}

type ProfileKeyCredentialV3IssuanceProof struct {
	Proof []byte
}

type PniCredentialIssuanceProof struct {
	Proof []byte
}

type ReceiptCredentialIssuanceProof struct {
	Proof []byte
}

// ciphertextSlot names the request ciphertext a hidden attribute arrived in.
type ciphertextSlot struct {
	attr   int
	c1, c2 string
}

var (
	profileKeySlots = []ciphertextSlot{{attr: 2, c1: "D1", c2: "D2"}, {attr: 3, c1: "E1", c2: "E2"}}
	receiptSlots    = []ciphertextSlot{{attr: 1, c1: "D1", c2: "D2"}}
)

func issuanceStatement[K Kind](r relation, hidden []ciphertextSlot) *poksho.Statement {
	n := numAttrs[K]()
	st := r.statement()
	st.Add("C_W", term("w", "G_w"), term("wprime", "G_wprime"))

	terms := []poksho.Term{term("x0", "G_x0"), term("x1", "G_x1")}
	for i := 0; i < n; i++ {
		terms = append(terms, term(yName(i), yGenName(i)))
	}
	st.Add("G_V-I", terms...)

	isHidden := make(map[int]bool)
	for _, h := range hidden {
		isHidden[h.attr] = true
	}
	mac := []poksho.Term{term("w", "G_w"), term("x0", "U"), term("x1", "tU")}
	for i := 0; i < n; i++ {
		if !isHidden[i] {
			mac = append(mac, term(yName(i), mName(i)))
		}
	}
	if len(hidden) == 0 {
		st.Add("V", mac...)
		return st
	}

	var s1, s2 []poksho.Term
	for _, h := range hidden {
		s1 = append(s1, term(yName(h.attr), h.c1))
		s2 = append(s2, term(yName(h.attr), h.c2))
	}
	s1 = append(s1, term("rprime", "G"))
	s2 = append(s2, term("rprime", "Y"))
	st.Add("S1", s1...)
	st.Add("S2", append(s2, mac...)...)
	return st
}

func issuancePoints[K Kind](pk PublicKey[K], t *ristretto.Scalar, U *ristretto.Point, attrs []*ristretto.Point) poksho.PointArgs {
	points := poksho.PointArgs{"U": U, "tU": scalarMul(U, t)}
	pk.pointArgs(points)
	for i, M := range attrs {
		if M != nil {
			points[mName(i)] = M
		}
	}
	return points
}

func blindedIssuancePoints[K Kind](pk PublicKey[K], pub RequestPublicKey, ciphertexts poksho.PointArgs, b BlindedCredential[K], known []*ristretto.Point) poksho.PointArgs {
	points := issuancePoints(pk, b.t, b.U, known)
	for name, p := range ciphertexts {
		points[name] = p
	}
	points["Y"] = pub.Y
	points["S1"] = b.S1
	points["S2"] = b.S2
	return points
}

func proveBlindedIssuance[K Kind](r relation, hidden []ciphertextSlot, kp *KeyPair[K], pub RequestPublicKey, ciphertexts poksho.PointArgs, b *BlindedCredentialWithSecretNonce[K], known []*ristretto.Point, s *sho.Sho) ([]byte, error) {
	scalars := poksho.ScalarArgs{"rprime": b.rprime}
	kp.scalarArgs(scalars)
	points := blindedIssuancePoints(kp.PublicKey(), pub, ciphertexts, b.BlindedCredential, known)
	proof, err := proveWith(issuanceStatement[K](r, hidden), scalars, points, nil, s)
	if err != nil {
		return nil, errors.Wrap(err, "issuance proof")
	}
	return proof, nil
}

func verifyBlindedIssuance[K Kind](r relation, hidden []ciphertextSlot, proof []byte, pk PublicKey[K], pub RequestPublicKey, ciphertexts poksho.PointArgs, b BlindedCredential[K], known []*ristretto.Point) error {
	if isIdentity(b.U) {
		return ErrVerificationFailure
	}
	points := blindedIssuancePoints(pk, pub, ciphertexts, b, known)
	return verifyWith(issuanceStatement[K](r, hidden), proof, points, nil)
}

func requestCiphertextPoints(ct RequestCiphertext) poksho.PointArgs {
	return poksho.PointArgs{"D1": ct.D1, "D2": ct.D2, "E1": ct.E1, "E2": ct.E2}
}

func receiptCiphertextPoints(ct ReceiptRequestCiphertext) poksho.PointArgs {
	return poksho.PointArgs{"D1": ct.D1, "D2": ct.D2}
}

func NewAuthCredentialIssuanceProof(kp *KeyPair[Auth], cred *AuthCredential, uid UidStruct, redemptionTime uint32, s *sho.Sho) (*AuthCredentialIssuanceProof, error) {
	scalars := poksho.ScalarArgs{}
	kp.scalarArgs(scalars)
	points := issuancePoints(kp.PublicKey(), cred.t, cred.U, authAttributes(uid, redemptionTime))
	points["V"] = cred.V
	proof, err := proveWith(issuanceStatement[Auth](authIssuanceRelation, nil), scalars, points, nil, s)
	if err != nil {
		return nil, errors.Wrap(err, "auth issuance proof")
	}
	return &AuthCredentialIssuanceProof{Proof: proof}, nil
}

func (p *AuthCredentialIssuanceProof) Verify(pk PublicKey[Auth], cred *AuthCredential, uid UidStruct, redemptionTime uint32) error {
	if isIdentity(cred.U) {
		return ErrVerificationFailure
	}
	points := issuancePoints(pk, cred.t, cred.U, authAttributes(uid, redemptionTime))
	points["V"] = cred.V
	return verifyWith(issuanceStatement[Auth](authIssuanceRelation, nil), p.Proof, points, nil)
}

func profileKeyKnown(uid UidStruct) []*ristretto.Point {
	return []*ristretto.Point{uid.M1, uid.M2, nil, nil}
}

func pniKnown(aci, pni UidStruct) []*ristretto.Point {
	return []*ristretto.Point{aci.M1, aci.M2, nil, nil, pni.M1, pni.M2}
}

func receiptKnown(receipt ReceiptStruct) []*ristretto.Point {
	return []*ristretto.Point{receipt.M1(), nil}
}

func NewProfileKeyCredentialIssuanceProof(kp *KeyPair[ProfileKey], pub RequestPublicKey, ct RequestCiphertext, b *BlindedCredentialWithSecretNonce[ProfileKey], uid UidStruct, s *sho.Sho) (*ProfileKeyCredentialIssuanceProof, error) {
	proof, err := proveBlindedIssuance(profileKeyIssuanceRelation, profileKeySlots, kp, pub, requestCiphertextPoints(ct), b, profileKeyKnown(uid), s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialIssuanceProof{Proof: proof}, nil
}

func (p *ProfileKeyCredentialIssuanceProof) Verify(pk PublicKey[ProfileKey], pub RequestPublicKey, ct RequestCiphertext, b BlindedCredential[ProfileKey], uid UidStruct) error {
	return verifyBlindedIssuance(profileKeyIssuanceRelation, profileKeySlots, p.Proof, pk, pub, requestCiphertextPoints(ct), b, profileKeyKnown(uid))
}

func NewProfileKeyCredentialV3IssuanceProof(kp *KeyPair[ProfileKeyV3], pub RequestPublicKey, ct RequestCiphertext, b *BlindedCredentialWithSecretNonce[ProfileKeyV3], uid UidStruct, s *sho.Sho) (*ProfileKeyCredentialV3IssuanceProof, error) {
	proof, err := proveBlindedIssuance(profileKeyV3IssuanceRelation, profileKeySlots, kp, pub, requestCiphertextPoints(ct), b, profileKeyKnown(uid), s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialV3IssuanceProof{Proof: proof}, nil
}

func (p *ProfileKeyCredentialV3IssuanceProof) Verify(pk PublicKey[ProfileKeyV3], pub RequestPublicKey, ct RequestCiphertext, b BlindedCredential[ProfileKeyV3], uid UidStruct) error {
	return verifyBlindedIssuance(profileKeyV3IssuanceRelation, profileKeySlots, p.Proof, pk, pub, requestCiphertextPoints(ct), b, profileKeyKnown(uid))
}

func NewPniCredentialIssuanceProof(kp *KeyPair[Pni], pub RequestPublicKey, ct RequestCiphertext, b *BlindedCredentialWithSecretNonce[Pni], aci, pni UidStruct, s *sho.Sho) (*PniCredentialIssuanceProof, error) {
	proof, err := proveBlindedIssuance(pniIssuanceRelation, profileKeySlots, kp, pub, requestCiphertextPoints(ct), b, pniKnown(aci, pni), s)
	if err != nil {
		return nil, err
	}
	return &PniCredentialIssuanceProof{Proof: proof}, nil
}

func (p *PniCredentialIssuanceProof) Verify(pk PublicKey[Pni], pub RequestPublicKey, ct RequestCiphertext, b BlindedCredential[Pni], aci, pni UidStruct) error {
	return verifyBlindedIssuance(pniIssuanceRelation, profileKeySlots, p.Proof, pk, pub, requestCiphertextPoints(ct), b, pniKnown(aci, pni))
}

func NewReceiptCredentialIssuanceProof(kp *KeyPair[Receipt], pub RequestPublicKey, ct ReceiptRequestCiphertext, b *BlindedCredentialWithSecretNonce[Receipt], expiration, level uint64, s *sho.Sho) (*ReceiptCredentialIssuanceProof, error) {
	receipt := ReceiptStruct{ExpirationTime: expiration, Level: level}
	proof, err := proveBlindedIssuance(receiptIssuanceRelation, receiptSlots, kp, pub, receiptCiphertextPoints(ct), b, receiptKnown(receipt), s)
	if err != nil {
		return nil, err
	}
	return &ReceiptCredentialIssuanceProof{Proof: proof}, nil
}

func (p *ReceiptCredentialIssuanceProof) Verify(pk PublicKey[Receipt], pub RequestPublicKey, ct ReceiptRequestCiphertext, b BlindedCredential[Receipt], expiration, level uint64) error {
	receipt := ReceiptStruct{ExpirationTime: expiration, Level: level}
	return verifyBlindedIssuance(receiptIssuanceRelation, receiptSlots, p.Proof, pk, pub, receiptCiphertextPoints(ct), b, receiptKnown(receipt))
}
