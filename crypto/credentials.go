package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

// KeyPair is an issuer key for one credential kind. Only the first
// numAttrs entries of y are in use.
type KeyPair[K Kind] struct {
	w      *ristretto.Scalar
	wprime *ristretto.Scalar
	W      *ristretto.Point
	x0     *ristretto.Scalar
	x1     *ristretto.Scalar
	y      [maxAttributes]*ristretto.Scalar

	CW *ristretto.Point
	I  *ristretto.Point
}

type PublicKey[K Kind] struct {
	CW *ristretto.Point
	I  *ristretto.Point
}

// Credential is the MAC (t, U, V) with V = W + (x0 + x1·t)·U + Σ yi·Mi.
type Credential[K Kind] struct {
	t *ristretto.Scalar
	U *ristretto.Point
	V *ristretto.Point
}

// BlindedCredential is what the issuer returns for hidden attributes; the
// holder recovers V = S2 − y·S1.
type BlindedCredential[K Kind] struct {
	t  *ristretto.Scalar
	U  *ristretto.Point
	S1 *ristretto.Point
	S2 *ristretto.Point
}

type BlindedCredentialWithSecretNonce[K Kind] struct {
	BlindedCredential[K]
	rprime *ristretto.Scalar
}

type (
	AuthCredential         = Credential[Auth]
	ProfileKeyCredential   = Credential[ProfileKey]
	ProfileKeyCredentialV3 = Credential[ProfileKeyV3]
	PniCredential          = Credential[Pni]
	ReceiptCredential      = Credential[Receipt]
)

func GenerateKeyPair[K Kind](s *sho.Sho) *KeyPair[K] {
	n := numAttrs[K]()
	kp := &KeyPair[K]{
		w:      s.NextScalar(),
		wprime: s.NextScalar(),
		x0:     s.NextScalar(),
		x1:     s.NextScalar(),
	}
	for i := 0; i < n; i++ {
		kp.y[i] = s.NextScalar()
	}
	kp.derive()
	return kp
}

// derive recomputes the public points from the secret scalars.
func (kp *KeyPair[K]) derive() {
	sp := systemParams[K]()
	n := numAttrs[K]()

	kp.W = scalarMul(sp.GW, kp.w)
	kp.CW = pointAdd(kp.W, scalarMul(sp.GWPrime, kp.wprime))

	scalars := []*ristretto.Scalar{kp.x0, kp.x1}
	points := []*ristretto.Point{sp.GX0, sp.GX1}
	for i := 0; i < n; i++ {
		scalars = append(scalars, kp.y[i])
		points = append(points, sp.GY[i])
	}
	kp.I = pointSub(sp.GV, multiscalarMul(scalars, points))
}

func (kp *KeyPair[K]) PublicKey() PublicKey[K] {
	return PublicKey[K]{CW: kp.CW, I: kp.I}
}

func (kp *KeyPair[K]) Zeroize() {
	zeroizeScalar(kp.w)
	zeroizeScalar(kp.wprime)
	zeroizeScalar(kp.x0)
	zeroizeScalar(kp.x1)
	for _, y := range kp.y {
		zeroizeScalar(y)
	}
}

// mac computes W + (x0 + x1·t)·U + Σ yi·Mi over the attributes that are not
// nil.
func (kp *KeyPair[K]) mac(t *ristretto.Scalar, U *ristretto.Point, attrs []*ristretto.Point) *ristretto.Point {
	var x ristretto.Scalar
	x.Mul(kp.x1, t)
	x.Add(&x, kp.x0)

	scalars := []*ristretto.Scalar{&x}
	points := []*ristretto.Point{U}
	for i, M := range attrs {
		if M == nil {
			continue
		}
		scalars = append(scalars, kp.y[i])
		points = append(points, M)
	}
	return pointAdd(kp.W, multiscalarMul(scalars, points))
}

func (kp *KeyPair[K]) newCredential(attrs []*ristretto.Point, s *sho.Sho) (*Credential[K], error) {
	t := s.NextScalar()
	U := s.NextPoint()
	if isIdentity(U) {
		return nil, ErrVerificationFailure
	}
	return &Credential[K]{t: t, U: U, V: kp.mac(t, U, attrs)}, nil
}

// blindSlot is a hidden attribute and the request ciphertext it arrived in.
type blindSlot struct {
	attr   int
	c1, c2 *ristretto.Point
}

func (kp *KeyPair[K]) newBlindedCredential(known []*ristretto.Point, Y *ristretto.Point, slots []blindSlot, s *sho.Sho) (*BlindedCredentialWithSecretNonce[K], error) {
	if isIdentity(Y) {
		return nil, ErrVerificationFailure
	}
	for _, slot := range slots {
		if isIdentity(slot.c1) {
			return nil, ErrVerificationFailure
		}
	}

	t := s.NextScalar()
	U := s.NextPoint()
	if isIdentity(U) {
		return nil, ErrVerificationFailure
	}
	vprime := kp.mac(t, U, known)
	rprime := s.NextScalar()

	scalars := []*ristretto.Scalar{rprime}
	s1Points := []*ristretto.Point{new(ristretto.Point).SetBase()}
	for _, slot := range slots {
		scalars = append(scalars, kp.y[slot.attr])
		s1Points = append(s1Points, slot.c1)
	}
	S1 := multiscalarMul(scalars, s1Points)

	s2Points := []*ristretto.Point{Y}
	for _, slot := range slots {
		s2Points = append(s2Points, slot.c2)
	}
	S2 := pointAdd(multiscalarMul(scalars, s2Points), vprime)

	return &BlindedCredentialWithSecretNonce[K]{
		BlindedCredential: BlindedCredential[K]{t: t, U: U, S1: S1, S2: S2},
		rprime:            rprime,
	}, nil
}

func (b *BlindedCredentialWithSecretNonce[K]) Blinded() BlindedCredential[K] {
	return b.BlindedCredential
}

func (b *BlindedCredentialWithSecretNonce[K]) Zeroize() {
	zeroizeScalar(b.rprime)
}

func CreateAuthCredential(kp *KeyPair[Auth], uid UidStruct, redemptionTime uint32, s *sho.Sho) (*AuthCredential, error) {
	return kp.newCredential(authAttributes(uid, redemptionTime), s)
}

func authAttributes(uid UidStruct, redemptionTime uint32) []*ristretto.Point {
	return []*ristretto.Point{uid.M1, uid.M2, redemptionTimePoint(redemptionTime)}
}

func redemptionTimePoint(redemptionTime uint32) *ristretto.Point {
	return scalarMul(CredentialsSystemParams().GM[0], uint64ToScalar(uint64(redemptionTime)))
}

func CreateBlindedProfileKeyCredential(kp *KeyPair[ProfileKey], uid UidStruct, pub RequestPublicKey, ct RequestCiphertext, s *sho.Sho) (*BlindedCredentialWithSecretNonce[ProfileKey], error) {
	return kp.newBlindedCredential(profileKeyKnown(uid), pub.Y, ct.slots(2), s)
}

func CreateBlindedProfileKeyCredentialV3(kp *KeyPair[ProfileKeyV3], uid UidStruct, pub RequestPublicKey, ct RequestCiphertext, s *sho.Sho) (*BlindedCredentialWithSecretNonce[ProfileKeyV3], error) {
	return kp.newBlindedCredential(profileKeyKnown(uid), pub.Y, ct.slots(2), s)
}

func CreateBlindedPniCredential(kp *KeyPair[Pni], aci, pni UidStruct, pub RequestPublicKey, ct RequestCiphertext, s *sho.Sho) (*BlindedCredentialWithSecretNonce[Pni], error) {
	return kp.newBlindedCredential(pniKnown(aci, pni), pub.Y, ct.slots(2), s)
}

func CreateBlindedReceiptCredential(kp *KeyPair[Receipt], pub RequestPublicKey, ct ReceiptRequestCiphertext, expiration, level uint64, s *sho.Sho) (*BlindedCredentialWithSecretNonce[Receipt], error) {
	receipt := ReceiptStruct{ExpirationTime: expiration, Level: level}
	return kp.newBlindedCredential(receiptKnown(receipt), pub.Y, ct.slots(), s)
}

// DecryptBlindedCredential unblinds with the holder's one-time key. It does
// not check the issuance proof; callers verify that first.
func DecryptBlindedCredential[K Kind](holder RequestKeyPair, b BlindedCredential[K]) *Credential[K] {
	V := pointSub(b.S2, scalarMul(b.S1, holder.y))
	return &Credential[K]{t: b.t, U: b.U, V: V}
}

func (kp *KeyPair[K]) scalarArgs(scalars poksho.ScalarArgs) {
	scalars["w"] = kp.w
	scalars["wprime"] = kp.wprime
	scalars["x0"] = kp.x0
	scalars["x1"] = kp.x1
	for i := 0; i < numAttrs[K](); i++ {
		scalars[yName(i)] = kp.y[i]
	}
}

func (pk PublicKey[K]) pointArgs(points poksho.PointArgs) {
	sp := systemParams[K]()
	sp.pointArgs(points, numAttrs[K]())
	points["C_W"] = pk.CW
	points["G_V-I"] = pointSub(sp.GV, pk.I)
}
