package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
)

type ReceiptCredentialRequestContext struct {
	serial     ReceiptSerialBytes
	keyPair    crypto.RequestKeyPair
	ciphertext crypto.ReceiptRequestCiphertextWithSecretNonce
}

type ReceiptCredentialRequest struct {
	public     crypto.RequestPublicKey
	ciphertext crypto.ReceiptRequestCiphertext
}

// ReceiptCredentialResponse echoes the expiration and level the issuer
// bound into the credential.
type ReceiptCredentialResponse struct {
	expirationTime ReceiptExpirationTime
	level          ReceiptLevel
	blinded        crypto.BlindedCredential[crypto.Receipt]
	proof          *crypto.ReceiptCredentialIssuanceProof
}

type ReceiptCredential struct {
	credential     *crypto.ReceiptCredential
	expirationTime ReceiptExpirationTime
	level          ReceiptLevel
	serial         ReceiptSerialBytes
}

// ReceiptCredentialPresentation reveals every attribute. Redeeming it spends
// the serial, which the verifier records to refuse a second redemption.
type ReceiptCredentialPresentation struct {
	proof          *crypto.ReceiptCredentialPresentationProof
	expirationTime ReceiptExpirationTime
	level          ReceiptLevel
	serial         ReceiptSerialBytes
}

func (c *ReceiptCredential) ExpirationTime() ReceiptExpirationTime { return c.expirationTime }
func (c *ReceiptCredential) Level() ReceiptLevel                   { return c.level }

func (pres *ReceiptCredentialPresentation) ExpirationTime() ReceiptExpirationTime {
	return pres.expirationTime
}

func (pres *ReceiptCredentialPresentation) Level() ReceiptLevel {
	return pres.level
}

func (pres *ReceiptCredentialPresentation) Serial() ReceiptSerialBytes {
	return pres.serial
}

func (pres *ReceiptCredentialPresentation) receipt() crypto.ReceiptStruct {
	return crypto.NewReceiptStruct(pres.serial, pres.expirationTime, pres.level)
}

func (p *ServerPublicParams) CreateReceiptCredentialRequestContext(randomness RandomnessBytes, serial ReceiptSerialBytes) *ReceiptCredentialRequestContext {
	s := newSho(RECEIPT_REQUEST_DOMAIN_TAG, randomness)
	keyPair := crypto.GenerateRequestKeyPair(s)
	return &ReceiptCredentialRequestContext{
		serial:     serial,
		keyPair:    keyPair,
		ciphertext: keyPair.EncryptReceiptSerial(serial, s),
	}
}

func (ctx *ReceiptCredentialRequestContext) Request() *ReceiptCredentialRequest {
	return &ReceiptCredentialRequest{public: ctx.keyPair.PublicKey(), ciphertext: ctx.ciphertext.Ciphertext}
}

func (ctx *ReceiptCredentialRequestContext) Zeroize() {
	ctx.keyPair.Zeroize()
	ctx.ciphertext.Zeroize()
}

// IssueReceiptCredential takes no request proof: the serial is committed
// nowhere else, so there is nothing to check it against.
func (p *ServerSecretParams) IssueReceiptCredential(randomness RandomnessBytes, request *ReceiptCredentialRequest, expirationTime ReceiptExpirationTime, level ReceiptLevel) (*ReceiptCredentialResponse, error) {
	s := newSho(ISSUE_RECEIPT_DOMAIN_TAG, randomness)
	blinded, err := crypto.CreateBlindedReceiptCredential(p.receipt, request.public, request.ciphertext, expirationTime, level, s)
	if err != nil {
		return nil, err
	}
	defer blinded.Zeroize()
	proof, err := crypto.NewReceiptCredentialIssuanceProof(p.receipt, request.public, request.ciphertext, blinded, expirationTime, level, s)
	if err != nil {
		return nil, err
	}
	return &ReceiptCredentialResponse{
		expirationTime: expirationTime,
		level:          level,
		blinded:        blinded.Blinded(),
		proof:          proof,
	}, nil
}

func (p *ServerPublicParams) ReceiveReceiptCredential(ctx *ReceiptCredentialRequestContext, response *ReceiptCredentialResponse) (*ReceiptCredential, error) {
	err := response.proof.Verify(p.receipt, ctx.keyPair.PublicKey(), ctx.ciphertext.Ciphertext, response.blinded, response.expirationTime, response.level)
	if err != nil {
		return nil, err
	}
	return &ReceiptCredential{
		credential:     crypto.DecryptBlindedCredential(ctx.keyPair, response.blinded),
		expirationTime: response.expirationTime,
		level:          response.level,
		serial:         ctx.serial,
	}, nil
}

func (p *ServerPublicParams) CreateReceiptCredentialPresentation(randomness RandomnessBytes, credential *ReceiptCredential) (*ReceiptCredentialPresentation, error) {
	s := newSho(RECEIPT_PRESENTATION_DOMAIN_TAG, randomness)
	receipt := crypto.NewReceiptStruct(credential.serial, credential.expirationTime, credential.level)
	proof, err := crypto.NewReceiptCredentialPresentationProof(p.receipt, credential.credential, receipt, s)
	if err != nil {
		return nil, err
	}
	return &ReceiptCredentialPresentation{
		proof:          proof,
		expirationTime: credential.expirationTime,
		level:          credential.level,
		serial:         credential.serial,
	}, nil
}

func (p *ServerSecretParams) VerifyReceiptCredentialPresentation(presentation *ReceiptCredentialPresentation) error {
	return presentation.proof.Verify(p.receipt, presentation.receipt())
}

func (ctx *ReceiptCredentialRequestContext) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, addBytes(ctx.serial[:]), ctx.keyPair.Encode, ctx.ciphertext.Encode)
}

func (ctx *ReceiptCredentialRequestContext) UnmarshalBinary(data []byte) error {
	var c ReceiptCredentialRequestContext
	err := unmarshal(data, RESERVED_TAG, "receipt credential request context",
		readBytes(c.serial[:]), c.keyPair.Decode, c.ciphertext.Decode)
	if err != nil {
		return err
	}
	*ctx = c
	return nil
}

func (r *ReceiptCredentialRequest) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, r.public.Encode, r.ciphertext.Encode)
}

func (r *ReceiptCredentialRequest) UnmarshalBinary(data []byte) error {
	var req ReceiptCredentialRequest
	if err := unmarshal(data, RESERVED_TAG, "receipt credential request", req.public.Decode, req.ciphertext.Decode); err != nil {
		return err
	}
	*r = req
	return nil
}

func (r *ReceiptCredentialResponse) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG,
		addUint64(r.expirationTime),
		addUint64(r.level),
		r.blinded.Encode,
		r.proof.Encode,
	)
}

func (r *ReceiptCredentialResponse) UnmarshalBinary(data []byte) error {
	var resp ReceiptCredentialResponse
	err := unmarshal(data, RESERVED_TAG, "receipt credential response",
		readUint64(&resp.expirationTime),
		readUint64(&resp.level),
		resp.blinded.Decode,
		decodeInto(&resp.proof),
	)
	if err != nil {
		return err
	}
	*r = resp
	return nil
}

func (c *ReceiptCredential) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG,
		c.credential.Encode,
		addUint64(c.expirationTime),
		addUint64(c.level),
		addBytes(c.serial[:]),
	)
}

func (c *ReceiptCredential) UnmarshalBinary(data []byte) error {
	var cred ReceiptCredential
	err := unmarshal(data, RESERVED_TAG, "receipt credential",
		decodeInto(&cred.credential),
		readUint64(&cred.expirationTime),
		readUint64(&cred.level),
		readBytes(cred.serial[:]),
	)
	if err != nil {
		return err
	}
	*c = cred
	return nil
}

func (pres *ReceiptCredentialPresentation) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG,
		pres.proof.Encode,
		addUint64(pres.expirationTime),
		addUint64(pres.level),
		addBytes(pres.serial[:]),
	)
}

func (pres *ReceiptCredentialPresentation) UnmarshalBinary(data []byte) error {
	var p ReceiptCredentialPresentation
	err := unmarshal(data, RESERVED_TAG, "receipt credential presentation",
		decodeInto(&p.proof),
		readUint64(&p.expirationTime),
		readUint64(&p.level),
		readBytes(p.serial[:]),
	)
	if err != nil {
		return err
	}
	*pres = p
	return nil
}
