package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
	"github.com/MixinNetwork/zkgroup-go/sho"
)

// ServerSecretParams holds one independent key pair per credential kind and
// the notary signing key. It is immutable once generated and safe to share
// between goroutines.
type ServerSecretParams struct {
	auth         *crypto.KeyPair[crypto.Auth]
	profileKey   *crypto.KeyPair[crypto.ProfileKey]
	signature    *crypto.SignatureKeyPair
	receipt      *crypto.KeyPair[crypto.Receipt]
	pni          *crypto.KeyPair[crypto.Pni]
	profileKeyV3 *crypto.KeyPair[crypto.ProfileKeyV3]
}

type ServerPublicParams struct {
	auth         crypto.PublicKey[crypto.Auth]
	profileKey   crypto.PublicKey[crypto.ProfileKey]
	signature    crypto.SignaturePublicKey
	receipt      crypto.PublicKey[crypto.Receipt]
	pni          crypto.PublicKey[crypto.Pni]
	profileKeyV3 crypto.PublicKey[crypto.ProfileKeyV3]
}

func newSho(label string, randomness RandomnessBytes) *sho.Sho {
	return sho.New([]byte(label), randomness[:])
}

// GenerateServerSecretParams draws every key from one Sho stream, in a fixed
// order, so the same randomness always yields the same params.
func GenerateServerSecretParams(randomness RandomnessBytes) (*ServerSecretParams, error) {
	s := newSho(SERVER_GENERATE_DOMAIN_TAG, randomness)

	auth := crypto.GenerateKeyPair[crypto.Auth](s)
	profileKey := crypto.GenerateKeyPair[crypto.ProfileKey](s)
	signature, err := crypto.GenerateSignatureKeyPair(s)
	if err != nil {
		return nil, err
	}
	receipt := crypto.GenerateKeyPair[crypto.Receipt](s)
	pni := crypto.GenerateKeyPair[crypto.Pni](s)
	profileKeyV3 := crypto.GenerateKeyPair[crypto.ProfileKeyV3](s)

	return &ServerSecretParams{
		auth:         auth,
		profileKey:   profileKey,
		signature:    signature,
		receipt:      receipt,
		pni:          pni,
		profileKeyV3: profileKeyV3,
	}, nil
}

func (p *ServerSecretParams) PublicParams() *ServerPublicParams {
	return &ServerPublicParams{
		auth:         p.auth.PublicKey(),
		profileKey:   p.profileKey.PublicKey(),
		signature:    p.signature.PublicKey(),
		receipt:      p.receipt.PublicKey(),
		pni:          p.pni.PublicKey(),
		profileKeyV3: p.profileKeyV3.PublicKey(),
	}
}

// Sign produces a notary signature over message with its nonce derived from
// randomness. It fails with ErrVerificationFailure after Zeroize.
func (p *ServerSecretParams) Sign(randomness RandomnessBytes, message []byte) (NotarySignatureBytes, error) {
	sig, err := p.signature.Sign(randomness[:], message)
	if err != nil {
		return NotarySignatureBytes{}, err
	}
	return NotarySignatureBytes(sig), nil
}

func (p *ServerSecretParams) Zeroize() {
	p.auth.Zeroize()
	p.profileKey.Zeroize()
	p.signature.Zeroize()
	p.receipt.Zeroize()
	p.pni.Zeroize()
	p.profileKeyV3.Zeroize()
}

func (p *ServerSecretParams) MarshalBinary() ([]byte, error) {
	seed := p.signature.Seed()
	return marshal(RESERVED_TAG,
		p.auth.Encode,
		p.profileKey.Encode,
		addBytes(seed[:]),
		p.receipt.Encode,
		p.pni.Encode,
		p.profileKeyV3.Encode,
	)
}

func (p *ServerSecretParams) UnmarshalBinary(data []byte) error {
	var seed [32]byte
	params := ServerSecretParams{
		auth:         new(crypto.KeyPair[crypto.Auth]),
		profileKey:   new(crypto.KeyPair[crypto.ProfileKey]),
		receipt:      new(crypto.KeyPair[crypto.Receipt]),
		pni:          new(crypto.KeyPair[crypto.Pni]),
		profileKeyV3: new(crypto.KeyPair[crypto.ProfileKeyV3]),
	}
	err := unmarshal(data, RESERVED_TAG, "server secret params",
		params.auth.Decode,
		params.profileKey.Decode,
		readBytes(seed[:]),
		params.receipt.Decode,
		params.pni.Decode,
		params.profileKeyV3.Decode,
	)
	if err != nil {
		return err
	}
	params.signature, err = crypto.NewSignatureKeyPairFromSeed(seed)
	if err != nil {
		return err
	}
	*p = params
	return nil
}

func (p *ServerPublicParams) VerifySignature(message []byte, signature NotarySignatureBytes) error {
	return p.signature.Verify(message, signature)
}

func (p *ServerPublicParams) MarshalBinary() ([]byte, error) {
	sig := p.signature.Bytes()
	return marshal(RESERVED_TAG,
		p.auth.Encode,
		p.profileKey.Encode,
		addBytes(sig[:]),
		p.receipt.Encode,
		p.pni.Encode,
		p.profileKeyV3.Encode,
	)
}

func (p *ServerPublicParams) UnmarshalBinary(data []byte) error {
	var sig [crypto.SignaturePublicLen]byte
	var params ServerPublicParams
	err := unmarshal(data, RESERVED_TAG, "server public params",
		params.auth.Decode,
		params.profileKey.Decode,
		readBytes(sig[:]),
		params.receipt.Decode,
		params.pni.Decode,
		params.profileKeyV3.Decode,
	)
	if err != nil {
		return err
	}
	params.signature = crypto.NewSignaturePublicKey(sig)
	*p = params
	return nil
}
