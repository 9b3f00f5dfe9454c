package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
	"github.com/pkg/errors"
)

// A presentation commits to the credential with a fresh z:
//
//	C_x0 = z·G_x0 + U, C_x1 = z·G_x1 + t·U, C_V = z·G_V + V,
//	C_yi = z·G_yi + Mi, or z·G_yi when Mi is revealed.
//
// The verifier computes Z = C_V − W − x0·C_x0 − x1·C_x1 − Σ yi·(C_yi [+ Mi])
// and the proof shows Z = z·I, C_x1 = t·C_x0 + z0·G_x0 + z·G_x1 with
// z0 = −z·t, knowledge of the group keys and, for every encrypted attribute,
// C_yi − E2 = z·G_yi − key·E1. The profile key ciphertext carries M3 + M4,
// so its equation is C_y3 + C_y4 − E2 = z·G_y3 + z·G_y4 − b·E1.
type presentationProof struct {
	CX0   *ristretto.Point
	CX1   *ristretto.Point
	CV    *ristretto.Point
	CY    []*ristretto.Point
	Proof []byte
}

type encryptedAttr struct {
	attr int
	// with lists further attributes summed into the same plaintext.
	with []int
	key  string
	pub  string
	base string
	ct   string
}

type presentationShape struct {
	revealed  []int
	encrypted []encryptedAttr
}

var (
	uidEncrypted        = encryptedAttr{attr: 1, key: "a", pub: "A", base: "G_a", ct: "E_A"}
	profileKeyEncrypted = encryptedAttr{attr: 3, with: []int{2}, key: "b", pub: "B", base: "G_b", ct: "E_B"}
	pniEncrypted        = encryptedAttr{attr: 5, key: "a", pub: "A", base: "G_a", ct: "E_A_pni"}

	authShape       = presentationShape{revealed: []int{2}, encrypted: []encryptedAttr{uidEncrypted}}
	profileKeyShape = presentationShape{encrypted: []encryptedAttr{uidEncrypted, profileKeyEncrypted}}
	pniShape        = presentationShape{encrypted: []encryptedAttr{uidEncrypted, profileKeyEncrypted, pniEncrypted}}
	receiptShape    = presentationShape{revealed: []int{0, 1}}
)

func (shape presentationShape) isRevealed(i int) bool {
	for _, r := range shape.revealed {
		if r == i {
			return true
		}
	}
	return false
}

func (shape presentationShape) statement(r relation) *poksho.Statement {
	st := r.statement()
	st.Add("Z", term("z", "I"))
	st.Add("C_x1", term("t", "C_x0"), term("z0", "G_x0"), term("z", "G_x1"))
	for _, i := range shape.revealed {
		st.Add(cyName(i), term("z", yGenName(i)))
	}
	keys := make(map[string]bool)
	for _, e := range shape.encrypted {
		if !keys[e.key] {
			st.Add(e.pub, term(e.key, e.base))
			keys[e.key] = true
		}
	}
	for _, e := range shape.encrypted {
		terms := []poksho.Term{term("z", yGenName(e.attr))}
		for _, w := range e.with {
			terms = append(terms, term("z", yGenName(w)))
		}
		terms = append(terms, term(e.key, "-"+e.ct+"1"))
		st.Add(cyName(e.attr)+"-"+e.ct+"2", terms...)
	}
	return st
}

func (shape presentationShape) points(sp *SystemParams, I, Z *ristretto.Point, p *presentationProof, group GroupPublicKey, ciphertexts poksho.PointArgs) poksho.PointArgs {
	params := EncryptionSystemParams()
	points := poksho.PointArgs{
		"Z":    Z,
		"I":    I,
		"C_x0": p.CX0,
		"C_x1": p.CX1,
		"G_x0": sp.GX0,
		"G_x1": sp.GX1,
		"A":    group.A,
		"G_a":  params.GA,
		"B":    group.B,
		"G_b":  params.GB,
	}
	for i := range p.CY {
		points[yGenName(i)] = sp.GY[i]
	}
	for _, i := range shape.revealed {
		points[cyName(i)] = p.CY[i]
	}
	for _, e := range shape.encrypted {
		lhs := p.CY[e.attr]
		for _, w := range e.with {
			lhs = pointAdd(lhs, p.CY[w])
		}
		points[cyName(e.attr)+"-"+e.ct+"2"] = pointSub(lhs, ciphertexts[e.ct+"2"])
		points["-"+e.ct+"1"] = pointNeg(ciphertexts[e.ct+"1"])
	}
	return points
}

func newPresentationProof[K Kind](r relation, shape presentationShape, pk PublicKey[K], cred *Credential[K], attrs []*ristretto.Point, group GroupKeyPair, ciphertexts poksho.PointArgs, s *sho.Sho) (*presentationProof, error) {
	sp := systemParams[K]()
	n := numAttrs[K]()
	z := s.NextScalar()

	p := &presentationProof{
		CX0: pointAdd(scalarMul(sp.GX0, z), cred.U),
		CX1: pointAdd(scalarMul(sp.GX1, z), scalarMul(cred.U, cred.t)),
		CV:  pointAdd(scalarMul(sp.GV, z), cred.V),
		CY:  make([]*ristretto.Point, n),
	}
	for i := 0; i < n; i++ {
		p.CY[i] = scalarMul(sp.GY[i], z)
		if !shape.isRevealed(i) {
			p.CY[i] = pointAdd(p.CY[i], attrs[i])
		}
	}

	var z0 ristretto.Scalar
	z0.Mul(z, cred.t)
	z0.Neg(&z0)
	scalars := poksho.ScalarArgs{"z": z, "t": cred.t, "z0": &z0, "a": group.a, "b": group.b}

	points := shape.points(sp, pk.I, scalarMul(pk.I, z), p, group.PublicKey(), ciphertexts)
	proof, err := proveWith(shape.statement(r), scalars, points, r.message, s)
	if err != nil {
		return nil, errors.Wrap(err, "presentation proof")
	}
	p.Proof = proof
	return p, nil
}

// verify takes the revealed attribute points at their index and nil
// elsewhere.
func verifyPresentationProof[K Kind](r relation, shape presentationShape, kp *KeyPair[K], p *presentationProof, revealed []*ristretto.Point, group GroupPublicKey, ciphertexts poksho.PointArgs) error {
	n := numAttrs[K]()
	if len(p.CY) != n || isIdentity(p.CX0) {
		return ErrVerificationFailure
	}
	for _, e := range shape.encrypted {
		if isIdentity(ciphertexts[e.ct+"1"]) {
			return ErrVerificationFailure
		}
	}

	scalars := []*ristretto.Scalar{kp.x0, kp.x1}
	points := []*ristretto.Point{p.CX0, p.CX1}
	for i := 0; i < n; i++ {
		cy := p.CY[i]
		if shape.isRevealed(i) {
			cy = pointAdd(cy, revealed[i])
		}
		scalars = append(scalars, kp.y[i])
		points = append(points, cy)
	}
	Z := pointSub(pointSub(p.CV, kp.W), multiscalarMul(scalars, points))

	args := shape.points(systemParams[K](), kp.I, Z, p, group, ciphertexts)
	return verifyWith(shape.statement(r), p.Proof, args, r.message)
}

func uidCiphertextPoints(prefix string, ct UidCiphertext) poksho.PointArgs {
	return poksho.PointArgs{prefix + "1": ct.E1, prefix + "2": ct.E2}
}

func profileKeyCiphertextPoints(uidCt UidCiphertext, pkCt ProfileKeyCiphertext) poksho.PointArgs {
	points := uidCiphertextPoints("E_A", uidCt)
	points["E_B1"] = pkCt.E1
	points["E_B2"] = pkCt.E2
	return points
}

func pniCiphertextPoints(aciCt UidCiphertext, pkCt ProfileKeyCiphertext, pniCt UidCiphertext) poksho.PointArgs {
	points := profileKeyCiphertextPoints(aciCt, pkCt)
	points["E_A_pni1"] = pniCt.E1
	points["E_A_pni2"] = pniCt.E2
	return points
}

type AuthCredentialPresentationProofV1 struct{ presentationProof }

type AuthCredentialPresentationProofV2 struct{ presentationProof }

func newAuthPresentationProof(r relation, pk PublicKey[Auth], group GroupKeyPair, cred *AuthCredential, uid UidStruct, ct UidCiphertext, redemptionTime uint32, s *sho.Sho) (*presentationProof, error) {
	return newPresentationProof(r, authShape, pk, cred, authAttributes(uid, redemptionTime), group, uidCiphertextPoints("E_A", ct), s)
}

func verifyAuthPresentationProof(r relation, p *presentationProof, kp *KeyPair[Auth], group GroupPublicKey, ct UidCiphertext, redemptionTime uint32) error {
	revealed := []*ristretto.Point{nil, nil, redemptionTimePoint(redemptionTime)}
	return verifyPresentationProof(r, authShape, kp, p, revealed, group, uidCiphertextPoints("E_A", ct))
}

func NewAuthCredentialPresentationProofV1(pk PublicKey[Auth], group GroupKeyPair, cred *AuthCredential, uid UidStruct, ct UidCiphertext, redemptionTime uint32, s *sho.Sho) (*AuthCredentialPresentationProofV1, error) {
	p, err := newAuthPresentationProof(authPresentationV1Relation, pk, group, cred, uid, ct, redemptionTime, s)
	if err != nil {
		return nil, err
	}
	return &AuthCredentialPresentationProofV1{*p}, nil
}

func (p *AuthCredentialPresentationProofV1) Verify(kp *KeyPair[Auth], group GroupPublicKey, ct UidCiphertext, redemptionTime uint32) error {
	return verifyAuthPresentationProof(authPresentationV1Relation, &p.presentationProof, kp, group, ct, redemptionTime)
}

func NewAuthCredentialPresentationProofV2(pk PublicKey[Auth], group GroupKeyPair, cred *AuthCredential, uid UidStruct, ct UidCiphertext, redemptionTime uint32, s *sho.Sho) (*AuthCredentialPresentationProofV2, error) {
	p, err := newAuthPresentationProof(authPresentationV2Relation, pk, group, cred, uid, ct, redemptionTime, s)
	if err != nil {
		return nil, err
	}
	return &AuthCredentialPresentationProofV2{*p}, nil
}

func (p *AuthCredentialPresentationProofV2) Verify(kp *KeyPair[Auth], group GroupPublicKey, ct UidCiphertext, redemptionTime uint32) error {
	return verifyAuthPresentationProof(authPresentationV2Relation, &p.presentationProof, kp, group, ct, redemptionTime)
}

type ProfileKeyCredentialPresentationProofV1 struct{ presentationProof }

type ProfileKeyCredentialPresentationProofV2 struct{ presentationProof }

type ProfileKeyCredentialV3PresentationProof struct{ presentationProof }

func profileKeyAttributes(uid UidStruct, profileKey ProfileKeyStruct) []*ristretto.Point {
	return []*ristretto.Point{uid.M1, uid.M2, profileKey.M3, profileKey.M4}
}

func NewProfileKeyCredentialPresentationProofV1(pk PublicKey[ProfileKey], group GroupKeyPair, cred *ProfileKeyCredential, uid UidStruct, uidCt UidCiphertext, profileKey ProfileKeyStruct, pkCt ProfileKeyCiphertext, s *sho.Sho) (*ProfileKeyCredentialPresentationProofV1, error) {
	p, err := newPresentationProof(profileKeyPresentationV1Relation, profileKeyShape, pk, cred, profileKeyAttributes(uid, profileKey), group, profileKeyCiphertextPoints(uidCt, pkCt), s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialPresentationProofV1{*p}, nil
}

func (p *ProfileKeyCredentialPresentationProofV1) Verify(kp *KeyPair[ProfileKey], group GroupPublicKey, uidCt UidCiphertext, pkCt ProfileKeyCiphertext) error {
	return verifyPresentationProof(profileKeyPresentationV1Relation, profileKeyShape, kp, &p.presentationProof, nil, group, profileKeyCiphertextPoints(uidCt, pkCt))
}

func NewProfileKeyCredentialPresentationProofV2(pk PublicKey[ProfileKey], group GroupKeyPair, cred *ProfileKeyCredential, uid UidStruct, uidCt UidCiphertext, profileKey ProfileKeyStruct, pkCt ProfileKeyCiphertext, s *sho.Sho) (*ProfileKeyCredentialPresentationProofV2, error) {
	p, err := newPresentationProof(profileKeyPresentationV2Relation, profileKeyShape, pk, cred, profileKeyAttributes(uid, profileKey), group, profileKeyCiphertextPoints(uidCt, pkCt), s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialPresentationProofV2{*p}, nil
}

func (p *ProfileKeyCredentialPresentationProofV2) Verify(kp *KeyPair[ProfileKey], group GroupPublicKey, uidCt UidCiphertext, pkCt ProfileKeyCiphertext) error {
	return verifyPresentationProof(profileKeyPresentationV2Relation, profileKeyShape, kp, &p.presentationProof, nil, group, profileKeyCiphertextPoints(uidCt, pkCt))
}

func NewProfileKeyCredentialV3PresentationProof(pk PublicKey[ProfileKeyV3], group GroupKeyPair, cred *ProfileKeyCredentialV3, uid UidStruct, uidCt UidCiphertext, profileKey ProfileKeyStruct, pkCt ProfileKeyCiphertext, s *sho.Sho) (*ProfileKeyCredentialV3PresentationProof, error) {
	p, err := newPresentationProof(profileKeyV3PresentationRelation, profileKeyShape, pk, cred, profileKeyAttributes(uid, profileKey), group, profileKeyCiphertextPoints(uidCt, pkCt), s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialV3PresentationProof{*p}, nil
}

func (p *ProfileKeyCredentialV3PresentationProof) Verify(kp *KeyPair[ProfileKeyV3], group GroupPublicKey, uidCt UidCiphertext, pkCt ProfileKeyCiphertext) error {
	return verifyPresentationProof(profileKeyV3PresentationRelation, profileKeyShape, kp, &p.presentationProof, nil, group, profileKeyCiphertextPoints(uidCt, pkCt))
}

type PniCredentialPresentationProofV1 struct{ presentationProof }

type PniCredentialPresentationProofV2 struct{ presentationProof }

func pniAttributes(aci UidStruct, profileKey ProfileKeyStruct, pni UidStruct) []*ristretto.Point {
	return []*ristretto.Point{aci.M1, aci.M2, profileKey.M3, profileKey.M4, pni.M1, pni.M2}
}

func NewPniCredentialPresentationProofV1(pk PublicKey[Pni], group GroupKeyPair, cred *PniCredential, aci UidStruct, aciCt UidCiphertext, profileKey ProfileKeyStruct, pkCt ProfileKeyCiphertext, pni UidStruct, pniCt UidCiphertext, s *sho.Sho) (*PniCredentialPresentationProofV1, error) {
	p, err := newPresentationProof(pniPresentationV1Relation, pniShape, pk, cred, pniAttributes(aci, profileKey, pni), group, pniCiphertextPoints(aciCt, pkCt, pniCt), s)
	if err != nil {
		return nil, err
	}
	return &PniCredentialPresentationProofV1{*p}, nil
}

func (p *PniCredentialPresentationProofV1) Verify(kp *KeyPair[Pni], group GroupPublicKey, aciCt UidCiphertext, pkCt ProfileKeyCiphertext, pniCt UidCiphertext) error {
	return verifyPresentationProof(pniPresentationV1Relation, pniShape, kp, &p.presentationProof, nil, group, pniCiphertextPoints(aciCt, pkCt, pniCt))
}

func NewPniCredentialPresentationProofV2(pk PublicKey[Pni], group GroupKeyPair, cred *PniCredential, aci UidStruct, aciCt UidCiphertext, profileKey ProfileKeyStruct, pkCt ProfileKeyCiphertext, pni UidStruct, pniCt UidCiphertext, s *sho.Sho) (*PniCredentialPresentationProofV2, error) {
	p, err := newPresentationProof(pniPresentationV2Relation, pniShape, pk, cred, pniAttributes(aci, profileKey, pni), group, pniCiphertextPoints(aciCt, pkCt, pniCt), s)
	if err != nil {
		return nil, err
	}
	return &PniCredentialPresentationProofV2{*p}, nil
}

func (p *PniCredentialPresentationProofV2) Verify(kp *KeyPair[Pni], group GroupPublicKey, aciCt UidCiphertext, pkCt ProfileKeyCiphertext, pniCt UidCiphertext) error {
	return verifyPresentationProof(pniPresentationV2Relation, pniShape, kp, &p.presentationProof, nil, group, pniCiphertextPoints(aciCt, pkCt, pniCt))
}

type ReceiptCredentialPresentationProof struct{ presentationProof }

func receiptAttributes(receipt ReceiptStruct) []*ristretto.Point {
	return []*ristretto.Point{receipt.M1(), receipt.M2()}
}

// NewReceiptCredentialPresentationProof reveals every attribute, so no group
// key takes part.
func NewReceiptCredentialPresentationProof(pk PublicKey[Receipt], cred *ReceiptCredential, receipt ReceiptStruct, s *sho.Sho) (*ReceiptCredentialPresentationProof, error) {
	p, err := newPresentationProof(receiptPresentationRelation, receiptShape, pk, cred, receiptAttributes(receipt), GroupKeyPair{}, nil, s)
	if err != nil {
		return nil, err
	}
	return &ReceiptCredentialPresentationProof{*p}, nil
}

func (p *ReceiptCredentialPresentationProof) Verify(kp *KeyPair[Receipt], receipt ReceiptStruct) error {
	return verifyPresentationProof(receiptPresentationRelation, receiptShape, kp, &p.presentationProof, receiptAttributes(receipt), GroupPublicKey{}, nil)
}
