package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

// RequestKeyPair is the holder's one-time ElGamal key for blind issuance.
type RequestKeyPair struct {
	y *ristretto.Scalar
	Y *ristretto.Point
}

type RequestPublicKey struct {
	Y *ristretto.Point
}

// RequestCiphertext encrypts the profile key points M3 and M4:
// D = (r1·G, r1·Y + M3), E = (r2·G, r2·Y + M4).
type RequestCiphertext struct {
	D1 *ristretto.Point
	D2 *ristretto.Point
	E1 *ristretto.Point
	E2 *ristretto.Point
}

type RequestCiphertextWithSecretNonce struct {
	Ciphertext RequestCiphertext
	r1         *ristretto.Scalar
	r2         *ristretto.Scalar
}

// ReceiptRequestCiphertext encrypts the receipt serial point M2.
type ReceiptRequestCiphertext struct {
	D1 *ristretto.Point
	D2 *ristretto.Point
}

type ReceiptRequestCiphertextWithSecretNonce struct {
	Ciphertext ReceiptRequestCiphertext
	r1         *ristretto.Scalar
}

func GenerateRequestKeyPair(s *sho.Sho) RequestKeyPair {
	y := s.NextScalar()
	return RequestKeyPair{y: y, Y: scalarMulBase(y)}
}

func (kp RequestKeyPair) PublicKey() RequestPublicKey {
	return RequestPublicKey{Y: kp.Y}
}

func (kp RequestKeyPair) EncryptProfileKey(pk ProfileKeyStruct, s *sho.Sho) RequestCiphertextWithSecretNonce {
	r1 := s.NextScalar()
	r2 := s.NextScalar()
	return RequestCiphertextWithSecretNonce{
		Ciphertext: RequestCiphertext{
			D1: scalarMulBase(r1),
			D2: pointAdd(scalarMul(kp.Y, r1), pk.M3),
			E1: scalarMulBase(r2),
			E2: pointAdd(scalarMul(kp.Y, r2), pk.M4),
		},
		r1: r1,
		r2: r2,
	}
}

func (kp RequestKeyPair) EncryptReceiptSerial(serial ReceiptSerialBytes, s *sho.Sho) ReceiptRequestCiphertextWithSecretNonce {
	r1 := s.NextScalar()
	return ReceiptRequestCiphertextWithSecretNonce{
		Ciphertext: ReceiptRequestCiphertext{
			D1: scalarMulBase(r1),
			D2: pointAdd(scalarMul(kp.Y, r1), receiptSerialPoint(serial)),
		},
		r1: r1,
	}
}

func (kp *RequestKeyPair) Zeroize() {
	zeroizeScalar(kp.y)
}

func (c *RequestCiphertextWithSecretNonce) Zeroize() {
	zeroizeScalar(c.r1)
	zeroizeScalar(c.r2)
}

func (c *ReceiptRequestCiphertextWithSecretNonce) Zeroize() {
	zeroizeScalar(c.r1)
}

// slots places D and E at the attribute index of M3 and the one after it.
func (c RequestCiphertext) slots(first int) []blindSlot {
	return []blindSlot{
		{attr: first, c1: c.D1, c2: c.D2},
		{attr: first + 1, c1: c.E1, c2: c.E2},
	}
}

func (c ReceiptRequestCiphertext) slots() []blindSlot {
	return []blindSlot{{attr: 1, c1: c.D1, c2: c.D2}}
}
