package crypto

import (
	"github.com/ChainSafe/go-schnorrkel"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/gtank/merlin"
	r255 "github.com/gtank/ristretto255"
)

const (
	SignatureLen       = 64
	SignaturePublicLen = 32
)

// SignatureKeyPair is an sr25519 key whose mini secret is drawn from a Sho,
// so the notary key is reproducible from the server params seed.
type SignatureKeyPair struct {
	seed   [32]byte
	secret *schnorrkel.SecretKey
	public *schnorrkel.PublicKey
}

type SignaturePublicKey struct {
	public *schnorrkel.PublicKey
}

func GenerateSignatureKeyPair(s *sho.Sho) (*SignatureKeyPair, error) {
	var seed [32]byte
	sub := sho.New([]byte(SIGNATURE_KEY_DOMAIN_TAG), s.NextBytes(32))
	copy(seed[:], sub.NextBytes(32))
	return NewSignatureKeyPairFromSeed(seed)
}

func NewSignatureKeyPairFromSeed(seed [32]byte) (*SignatureKeyPair, error) {
	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(seed)
	if err != nil {
		return nil, err
	}
	return &SignatureKeyPair{
		seed:   seed,
		secret: mini.ExpandEd25519(),
		public: mini.Public(),
	}, nil
}

func (kp *SignatureKeyPair) Seed() [32]byte {
	return kp.seed
}

func (kp *SignatureKeyPair) PublicKey() SignaturePublicKey {
	return SignaturePublicKey{public: kp.public}
}

func signingTranscript(message []byte) *merlin.Transcript {
	return schnorrkel.NewSigningContext([]byte(SIGNATURE_CONTEXT_DOMAIN_TAG), message)
}

// Sign is sr25519 signing with the nonce r drawn from randomness, the key
// seed and the message instead of the system RNG. The result verifies with
// schnorrkel, and one randomness always yields the same signature.
func (kp *SignatureKeyPair) Sign(randomness, message []byte) ([SignatureLen]byte, error) {
	if kp.secret == nil || kp.public == nil {
		return [SignatureLen]byte{}, ErrVerificationFailure
	}
	x, err := schnorrkel.ScalarFromBytes(kp.secret.Encode())
	if err != nil {
		return [SignatureLen]byte{}, err
	}

	witness := make([]byte, 0, len(randomness)+len(kp.seed)+len(message))
	witness = append(witness, randomness...)
	witness = append(witness, kp.seed[:]...)
	witness = append(witness, message...)
	nonce := sho.New([]byte(SIGNATURE_NONCE_DOMAIN_TAG), witness)
	r := r255.NewScalar().FromUniformBytes(nonce.NextBytes(64))
	R := r255.NewElement().ScalarBaseMult(r)

	t := signingTranscript(message)
	t.AppendMessage([]byte("proto-name"), []byte("Schnorr-sig"))
	pub := kp.public.Compress()
	t.AppendMessage([]byte("sign:pk"), pub[:])
	t.AppendMessage([]byte("sign:R"), R.Encode([]byte{}))
	k := r255.NewScalar().FromUniformBytes(t.ExtractBytes([]byte("sign:c"), 64))

	// s = k·x + r
	S := r255.NewScalar().Multiply(k, x)
	S.Add(S, r)
	sig := schnorrkel.Signature{R: R, S: S}
	return sig.Encode(), nil
}

func (kp *SignatureKeyPair) Zeroize() {
	for i := range kp.seed {
		kp.seed[i] = 0
	}
	kp.secret = nil
}

func NewSignaturePublicKey(b [SignaturePublicLen]byte) SignaturePublicKey {
	return SignaturePublicKey{public: schnorrkel.NewPublicKey(b)}
}

func (pk SignaturePublicKey) Bytes() [SignaturePublicLen]byte {
	return pk.public.Encode()
}

func (pk SignaturePublicKey) Verify(message []byte, signature [SignatureLen]byte) error {
	if pk.public == nil {
		return ErrVerificationFailure
	}
	var sig schnorrkel.Signature
	if err := sig.Decode(signature); err != nil {
		return ErrVerificationFailure
	}
	if !pk.public.Verify(&sig, signingTranscript(message)) {
		return ErrVerificationFailure
	}
	return nil
}
