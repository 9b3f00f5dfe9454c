package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/pkg/errors"
)

// PniCredentialRequestContext is a profile key request for the aci with the
// pni carried alongside. The request sent to the issuer is identical to a
// profile key request.
type PniCredentialRequestContext struct {
	profileKeyRequestContext
	pni UidBytes
}

type PniCredentialResponse struct {
	blinded crypto.BlindedCredential[crypto.Pni]
	proof   *crypto.PniCredentialIssuanceProof
}

type PniCredential struct {
	credential *crypto.PniCredential
	aci        UidBytes
	pni        UidBytes
	profileKey ProfileKeyBytes
}

type pniCiphertexts struct {
	aci        crypto.UidCiphertext
	pni        crypto.UidCiphertext
	profileKey crypto.ProfileKeyCiphertext
}

type PniCredentialPresentationV1 struct {
	proof *crypto.PniCredentialPresentationProofV1
	pniCiphertexts
}

type PniCredentialPresentationV2 struct {
	proof *crypto.PniCredentialPresentationProofV2
	pniCiphertexts
}

type AnyPniCredentialPresentation interface {
	MarshalBinary() ([]byte, error)
	AciCiphertext() *UuidCiphertext
	PniCiphertext() *UuidCiphertext
	ProfileKeyCiphertext() *ProfileKeyCiphertext
	pniCredentialPresentation()
}

func (*PniCredentialPresentationV1) pniCredentialPresentation() {}
func (*PniCredentialPresentationV2) pniCredentialPresentation() {}

func (c pniCiphertexts) AciCiphertext() *UuidCiphertext {
	return &UuidCiphertext{ciphertext: c.aci}
}

func (c pniCiphertexts) PniCiphertext() *UuidCiphertext {
	return &UuidCiphertext{ciphertext: c.pni}
}

func (c pniCiphertexts) ProfileKeyCiphertext() *ProfileKeyCiphertext {
	return &ProfileKeyCiphertext{ciphertext: c.profileKey}
}

func (p *ServerPublicParams) CreatePniCredentialRequestContext(randomness RandomnessBytes, aci, pni UidBytes, profileKey ProfileKey) (*PniCredentialRequestContext, error) {
	ctx, err := p.CreateProfileKeyCredentialRequestContext(randomness, aci, profileKey)
	if err != nil {
		return nil, err
	}
	return &PniCredentialRequestContext{profileKeyRequestContext: ctx.profileKeyRequestContext, pni: pni}, nil
}

func (p *ServerSecretParams) IssuePniCredential(randomness RandomnessBytes, request *ProfileKeyCredentialRequest, aci, pni UidBytes, commitment *ProfileKeyCommitment) (*PniCredentialResponse, error) {
	s := newSho(ISSUE_PNI_DOMAIN_TAG, randomness)
	if err := request.proof.Verify(request.public, request.ciphertext, commitment.commitment); err != nil {
		return nil, err
	}

	a, n := crypto.NewUidStruct(aci), crypto.NewUidStruct(pni)
	blinded, err := crypto.CreateBlindedPniCredential(p.pni, a, n, request.public, request.ciphertext, s)
	if err != nil {
		return nil, err
	}
	defer blinded.Zeroize()
	proof, err := crypto.NewPniCredentialIssuanceProof(p.pni, request.public, request.ciphertext, blinded, a, n, s)
	if err != nil {
		return nil, err
	}
	return &PniCredentialResponse{blinded: blinded.Blinded(), proof: proof}, nil
}

func (p *ServerPublicParams) ReceivePniCredential(ctx *PniCredentialRequestContext, response *PniCredentialResponse) (*PniCredential, error) {
	aci, pni := crypto.NewUidStruct(ctx.uid), crypto.NewUidStruct(ctx.pni)
	err := response.proof.Verify(p.pni, ctx.keyPair.PublicKey(), ctx.ciphertext.Ciphertext, response.blinded, aci, pni)
	if err != nil {
		return nil, err
	}
	return &PniCredential{
		credential: crypto.DecryptBlindedCredential(ctx.keyPair, response.blinded),
		aci:        ctx.uid,
		pni:        ctx.pni,
		profileKey: ctx.profileKey,
	}, nil
}

// encryptPniAttributes encrypts aci, profile key and pni under the group, in
// that order, with nonces drawn from s.
func (g *GroupSecretParams) encryptPniAttributes(s *sho.Sho, credential *PniCredential) (crypto.UidStruct, crypto.ProfileKeyStruct, crypto.UidStruct, pniCiphertexts) {
	aci, pk, cts := g.encryptProfileKeyAttributes(s, credential.aci, credential.profileKey)
	pni := crypto.NewUidStruct(credential.pni)
	return aci, pk, pni, pniCiphertexts{
		aci:        cts.uid,
		pni:        g.keys.PublicKey().EncryptUid(pni, s),
		profileKey: cts.profileKey,
	}
}

// CreatePniCredentialPresentation creates the latest version, V2.
func (p *ServerPublicParams) CreatePniCredentialPresentation(randomness RandomnessBytes, group *GroupSecretParams, credential *PniCredential) (AnyPniCredentialPresentation, error) {
	return p.CreatePniCredentialPresentationV2(randomness, group, credential)
}

func (p *ServerPublicParams) CreatePniCredentialPresentationV1(randomness RandomnessBytes, group *GroupSecretParams, credential *PniCredential) (*PniCredentialPresentationV1, error) {
	s := newSho(PNI_PRESENTATION_V1_DOMAIN_TAG, randomness)
	aci, pk, pni, cts := group.encryptPniAttributes(s, credential)
	proof, err := crypto.NewPniCredentialPresentationProofV1(p.pni, group.keys, credential.credential, aci, cts.aci, pk, cts.profileKey, pni, cts.pni, s)
	if err != nil {
		return nil, err
	}
	return &PniCredentialPresentationV1{proof: proof, pniCiphertexts: cts}, nil
}

func (p *ServerPublicParams) CreatePniCredentialPresentationV2(randomness RandomnessBytes, group *GroupSecretParams, credential *PniCredential) (*PniCredentialPresentationV2, error) {
	s := newSho(PNI_PRESENTATION_V2_DOMAIN_TAG, randomness)
	aci, pk, pni, cts := group.encryptPniAttributes(s, credential)
	proof, err := crypto.NewPniCredentialPresentationProofV2(p.pni, group.keys, credential.credential, aci, cts.aci, pk, cts.profileKey, pni, cts.pni, s)
	if err != nil {
		return nil, err
	}
	return &PniCredentialPresentationV2{proof: proof, pniCiphertexts: cts}, nil
}

func (p *ServerSecretParams) VerifyPniCredentialPresentation(group *GroupPublicParams, presentation AnyPniCredentialPresentation) error {
	switch v := presentation.(type) {
	case *PniCredentialPresentationV1:
		return p.VerifyPniCredentialPresentationV1(group, v)
	case *PniCredentialPresentationV2:
		return p.VerifyPniCredentialPresentationV2(group, v)
	default:
		return ErrVerificationFailure
	}
}

func (p *ServerSecretParams) VerifyPniCredentialPresentationV1(group *GroupPublicParams, presentation *PniCredentialPresentationV1) error {
	return presentation.proof.Verify(p.pni, group.keys, presentation.aci, presentation.profileKey, presentation.pni)
}

func (p *ServerSecretParams) VerifyPniCredentialPresentationV2(group *GroupPublicParams, presentation *PniCredentialPresentationV2) error {
	return presentation.proof.Verify(p.pni, group.keys, presentation.aci, presentation.profileKey, presentation.pni)
}

func ParseAnyPniCredentialPresentation(data []byte) (AnyPniCredentialPresentation, error) {
	switch versionTag(data) {
	case PRESENTATION_VERSION_1:
		presentation := new(PniCredentialPresentationV1)
		if err := presentation.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return presentation, nil
	case PRESENTATION_VERSION_2:
		presentation := new(PniCredentialPresentationV2)
		if err := presentation.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return presentation, nil
	default:
		return nil, errors.Wrap(ErrInvalidEncoding, "pni credential presentation: version")
	}
}

func (ctx *PniCredentialRequestContext) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, append(ctx.fields(), addBytes(ctx.pni[:]))...)
}

func (ctx *PniCredentialRequestContext) UnmarshalBinary(data []byte) error {
	var c PniCredentialRequestContext
	if err := unmarshal(data, RESERVED_TAG, "pni credential request context", append(c.decoders(), readBytes(c.pni[:]))...); err != nil {
		return err
	}
	*ctx = c
	return nil
}

func (r *PniCredentialResponse) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, r.blinded.Encode, r.proof.Encode)
}

func (r *PniCredentialResponse) UnmarshalBinary(data []byte) error {
	var resp PniCredentialResponse
	if err := unmarshal(data, RESERVED_TAG, "pni credential response", resp.blinded.Decode, decodeInto(&resp.proof)); err != nil {
		return err
	}
	*r = resp
	return nil
}

func (c *PniCredential) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.credential.Encode, addBytes(c.aci[:]), addBytes(c.pni[:]), addBytes(c.profileKey[:]))
}

func (c *PniCredential) UnmarshalBinary(data []byte) error {
	var cred PniCredential
	err := unmarshal(data, RESERVED_TAG, "pni credential",
		decodeInto(&cred.credential), readBytes(cred.aci[:]), readBytes(cred.pni[:]), readBytes(cred.profileKey[:]))
	if err != nil {
		return err
	}
	*c = cred
	return nil
}

func (c *pniCiphertexts) fields() []encodeFunc {
	return []encodeFunc{c.aci.Encode, c.pni.Encode, c.profileKey.Encode}
}

func (c *pniCiphertexts) decoders() []decodeFunc {
	return []decodeFunc{c.aci.Decode, c.pni.Decode, c.profileKey.Decode}
}

func (pres *PniCredentialPresentationV1) MarshalBinary() ([]byte, error) {
	return marshal(PRESENTATION_VERSION_1, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *PniCredentialPresentationV1) UnmarshalBinary(data []byte) error {
	var p PniCredentialPresentationV1
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PRESENTATION_VERSION_1, "pni credential presentation v1", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}

func (pres *PniCredentialPresentationV2) MarshalBinary() ([]byte, error) {
	return marshal(PRESENTATION_VERSION_2, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *PniCredentialPresentationV2) UnmarshalBinary(data []byte) error {
	var p PniCredentialPresentationV2
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PRESENTATION_VERSION_2, "pni credential presentation v2", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}
