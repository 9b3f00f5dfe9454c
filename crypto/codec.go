package crypto

import (
	"bytes"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/cryptobyte"
)

// Every type below writes fixed-size fields in declaration order. Points must
// decode to valid Ristretto encodings and scalars must be canonical.

func addPoint(b *cryptobyte.Builder, p *ristretto.Point) {
	b.AddBytes(p.Bytes())
}

func addScalar(b *cryptobyte.Builder, s *ristretto.Scalar) {
	b.AddBytes(s.Bytes())
}

func readPoint(s *cryptobyte.String, out **ristretto.Point) bool {
	var buf [32]byte
	if !s.CopyBytes(buf[:]) {
		return false
	}
	var p ristretto.Point
	if !p.SetBytes(&buf) {
		return false
	}
	*out = &p
	return true
}

func readScalar(s *cryptobyte.String, out **ristretto.Scalar) bool {
	var buf [32]byte
	if !s.CopyBytes(buf[:]) {
		return false
	}
	var x ristretto.Scalar
	x.SetBytes(&buf)
	if !bytes.Equal(x.Bytes(), buf[:]) {
		return false
	}
	*out = &x
	return true
}

func readProof(s *cryptobyte.String, out *[]byte) bool {
	var proof cryptobyte.String
	if !s.ReadUint16LengthPrefixed(&proof) {
		return false
	}
	*out = append([]byte(nil), proof...)
	return true
}

func addProof(b *cryptobyte.Builder, proof []byte) {
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(proof)
	})
}

func (kp *KeyPair[K]) Encode(b *cryptobyte.Builder) {
	addScalar(b, kp.w)
	addScalar(b, kp.wprime)
	addScalar(b, kp.x0)
	addScalar(b, kp.x1)
	for i := 0; i < numAttrs[K](); i++ {
		addScalar(b, kp.y[i])
	}
}

func (kp *KeyPair[K]) Decode(s *cryptobyte.String) bool {
	if !readScalar(s, &kp.w) || !readScalar(s, &kp.wprime) ||
		!readScalar(s, &kp.x0) || !readScalar(s, &kp.x1) {
		return false
	}
	for i := 0; i < numAttrs[K](); i++ {
		if !readScalar(s, &kp.y[i]) {
			return false
		}
	}
	kp.derive()
	return true
}

func (pk *PublicKey[K]) Encode(b *cryptobyte.Builder) {
	addPoint(b, pk.CW)
	addPoint(b, pk.I)
}

func (pk *PublicKey[K]) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &pk.CW) && readPoint(s, &pk.I)
}

func (c *Credential[K]) Encode(b *cryptobyte.Builder) {
	addScalar(b, c.t)
	addPoint(b, c.U)
	addPoint(b, c.V)
}

func (c *Credential[K]) Decode(s *cryptobyte.String) bool {
	return readScalar(s, &c.t) && readPoint(s, &c.U) && readPoint(s, &c.V)
}

func (c *BlindedCredential[K]) Encode(b *cryptobyte.Builder) {
	addScalar(b, c.t)
	addPoint(b, c.U)
	addPoint(b, c.S1)
	addPoint(b, c.S2)
}

func (c *BlindedCredential[K]) Decode(s *cryptobyte.String) bool {
	return readScalar(s, &c.t) && readPoint(s, &c.U) && readPoint(s, &c.S1) && readPoint(s, &c.S2)
}

func (kp *RequestKeyPair) Encode(b *cryptobyte.Builder) {
	addScalar(b, kp.y)
}

func (kp *RequestKeyPair) Decode(s *cryptobyte.String) bool {
	if !readScalar(s, &kp.y) {
		return false
	}
	kp.Y = scalarMulBase(kp.y)
	return true
}

func (pk *RequestPublicKey) Encode(b *cryptobyte.Builder) {
	addPoint(b, pk.Y)
}

func (pk *RequestPublicKey) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &pk.Y)
}

func (c *RequestCiphertext) Encode(b *cryptobyte.Builder) {
	addPoint(b, c.D1)
	addPoint(b, c.D2)
	addPoint(b, c.E1)
	addPoint(b, c.E2)
}

func (c *RequestCiphertext) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &c.D1) && readPoint(s, &c.D2) && readPoint(s, &c.E1) && readPoint(s, &c.E2)
}

func (c *RequestCiphertextWithSecretNonce) Encode(b *cryptobyte.Builder) {
	c.Ciphertext.Encode(b)
	addScalar(b, c.r1)
	addScalar(b, c.r2)
}

func (c *RequestCiphertextWithSecretNonce) Decode(s *cryptobyte.String) bool {
	return c.Ciphertext.Decode(s) && readScalar(s, &c.r1) && readScalar(s, &c.r2)
}

func (c *ReceiptRequestCiphertext) Encode(b *cryptobyte.Builder) {
	addPoint(b, c.D1)
	addPoint(b, c.D2)
}

func (c *ReceiptRequestCiphertext) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &c.D1) && readPoint(s, &c.D2)
}

func (c *ReceiptRequestCiphertextWithSecretNonce) Encode(b *cryptobyte.Builder) {
	c.Ciphertext.Encode(b)
	addScalar(b, c.r1)
}

func (c *ReceiptRequestCiphertextWithSecretNonce) Decode(s *cryptobyte.String) bool {
	return c.Ciphertext.Decode(s) && readScalar(s, &c.r1)
}

func (c *ProfileKeyCommitment) Encode(b *cryptobyte.Builder) {
	addPoint(b, c.J1)
	addPoint(b, c.J2)
	addPoint(b, c.J3)
}

func (c *ProfileKeyCommitment) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &c.J1) && readPoint(s, &c.J2) && readPoint(s, &c.J3)
}

func (c *UidCiphertext) Encode(b *cryptobyte.Builder) {
	addPoint(b, c.E1)
	addPoint(b, c.E2)
}

func (c *UidCiphertext) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &c.E1) && readPoint(s, &c.E2)
}

func (c *ProfileKeyCiphertext) Encode(b *cryptobyte.Builder) {
	addPoint(b, c.E1)
	addPoint(b, c.E2)
}

func (c *ProfileKeyCiphertext) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &c.E1) && readPoint(s, &c.E2)
}

func (k *GroupKeyPair) Encode(b *cryptobyte.Builder) {
	addScalar(b, k.a)
	addScalar(b, k.b)
}

func (k *GroupKeyPair) Decode(s *cryptobyte.String) bool {
	if !readScalar(s, &k.a) || !readScalar(s, &k.b) {
		return false
	}
	params := EncryptionSystemParams()
	k.A = scalarMul(params.GA, k.a)
	k.B = scalarMul(params.GB, k.b)
	return true
}

func (k *GroupPublicKey) Encode(b *cryptobyte.Builder) {
	addPoint(b, k.A)
	addPoint(b, k.B)
}

func (k *GroupPublicKey) Decode(s *cryptobyte.String) bool {
	return readPoint(s, &k.A) && readPoint(s, &k.B)
}

func (p *presentationProof) Encode(b *cryptobyte.Builder) {
	addPoint(b, p.CX0)
	addPoint(b, p.CX1)
	addPoint(b, p.CV)
	b.AddUint8(uint8(len(p.CY)))
	for _, cy := range p.CY {
		addPoint(b, cy)
	}
	addProof(b, p.Proof)
}

func (p *presentationProof) Decode(s *cryptobyte.String) bool {
	if !readPoint(s, &p.CX0) || !readPoint(s, &p.CX1) || !readPoint(s, &p.CV) {
		return false
	}
	var n uint8
	if !s.ReadUint8(&n) || n > maxAttributes {
		return false
	}
	p.CY = make([]*ristretto.Point, n)
	for i := range p.CY {
		if !readPoint(s, &p.CY[i]) {
			return false
		}
	}
	return readProof(s, &p.Proof)
}

func (p *ProfileKeyCredentialRequestProof) Encode(b *cryptobyte.Builder) { addProof(b, p.Proof) }

func (p *ProfileKeyCredentialRequestProof) Decode(s *cryptobyte.String) bool {
	return readProof(s, &p.Proof)
}

func (p *AuthCredentialIssuanceProof) Encode(b *cryptobyte.Builder) { addProof(b, p.Proof) }

func (p *AuthCredentialIssuanceProof) Decode(s *cryptobyte.String) bool {
	return readProof(s, &p.Proof)
}

func (p *ProfileKeyCredentialIssuanceProof) Encode(b *cryptobyte.Builder) { addProof(b, p.Proof) }

func (p *ProfileKeyCredentialIssuanceProof) Decode(s *cryptobyte.String) bool {
	return readProof(s, &p.Proof)
}

func (p *ProfileKeyCredentialV3IssuanceProof) Encode(b *cryptobyte.Builder) { addProof(b, p.Proof) }

func (p *ProfileKeyCredentialV3IssuanceProof) Decode(s *cryptobyte.String) bool {
	return readProof(s, &p.Proof)
}

func (p *PniCredentialIssuanceProof) Encode(b *cryptobyte.Builder) { addProof(b, p.Proof) }

func (p *PniCredentialIssuanceProof) Decode(s *cryptobyte.String) bool {
	return readProof(s, &p.Proof)
}

func (p *ReceiptCredentialIssuanceProof) Encode(b *cryptobyte.Builder) { addProof(b, p.Proof) }

func (p *ReceiptCredentialIssuanceProof) Decode(s *cryptobyte.String) bool {
	return readProof(s, &p.Proof)
}
