package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

// GroupKeyPair holds the per-group uid key a (A = a·G_a) and profile key
// key b (B = b·G_b).
type GroupKeyPair struct {
	a *ristretto.Scalar
	b *ristretto.Scalar
	A *ristretto.Point
	B *ristretto.Point
}

type GroupPublicKey struct {
	A *ristretto.Point
	B *ristretto.Point
}

// UidCiphertext is (r·G_a, r·A + M2). A fresh r per call keeps ciphertexts of
// the same uid unlinkable without the group key.
type UidCiphertext struct {
	E1 *ristretto.Point
	E2 *ristretto.Point
}

// ProfileKeyCiphertext is (r·G_b, r·B + M3 + M4).
type ProfileKeyCiphertext struct {
	E1 *ristretto.Point
	E2 *ristretto.Point
}

func DeriveGroupKeyPair(s *sho.Sho) GroupKeyPair {
	params := EncryptionSystemParams()
	a := s.NextScalar()
	b := s.NextScalar()
	return GroupKeyPair{
		a: a,
		b: b,
		A: scalarMul(params.GA, a),
		B: scalarMul(params.GB, b),
	}
}

func (k GroupKeyPair) PublicKey() GroupPublicKey {
	return GroupPublicKey{A: k.A, B: k.B}
}

func (k GroupPublicKey) EncryptUid(uid UidStruct, s *sho.Sho) UidCiphertext {
	r := s.NextScalar()
	return UidCiphertext{
		E1: scalarMul(EncryptionSystemParams().GA, r),
		E2: pointAdd(scalarMul(k.A, r), uid.M2),
	}
}

// EncryptProfileKey encrypts M3 + M4. M3 is derived from the profile key and
// the uid, so the ciphertext only opens for the uid it was made for.
func (k GroupPublicKey) EncryptProfileKey(pk ProfileKeyStruct, s *sho.Sho) ProfileKeyCiphertext {
	r := s.NextScalar()
	return ProfileKeyCiphertext{
		E1: scalarMul(EncryptionSystemParams().GB, r),
		E2: pointAdd(scalarMul(k.B, r), pk.plaintext()),
	}
}

func (k GroupKeyPair) DecryptUid(ct UidCiphertext) (UidBytes, error) {
	if isIdentity(ct.E1) {
		return UidBytes{}, ErrVerificationFailure
	}
	return UidFromM2(pointSub(ct.E2, scalarMul(ct.E1, k.a)))
}

// DecryptProfileKey checks a candidate profile key against the ciphertext.
// M3 and M4 are Elligator images and cannot be inverted, so the caller supplies
// the key it expects along with the uid it was encrypted for.
func (k GroupKeyPair) DecryptProfileKey(ct ProfileKeyCiphertext, candidate ProfileKeyBytes, uid UidBytes) (ProfileKeyBytes, error) {
	if isIdentity(ct.E1) {
		return ProfileKeyBytes{}, ErrVerificationFailure
	}
	m := pointSub(ct.E2, scalarMul(ct.E1, k.b))
	pk := NewProfileKeyStruct(candidate, uid)
	if !pointsEqual(m, pk.plaintext()) {
		return ProfileKeyBytes{}, ErrVerificationFailure
	}
	return candidate, nil
}

func (k *GroupKeyPair) Zeroize() {
	zeroizeScalar(k.a)
	zeroizeScalar(k.b)
}
