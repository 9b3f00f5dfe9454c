package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/pkg/errors"
)

type ProfileKey struct {
	bytes ProfileKeyBytes
}

// ProfileKeyCommitment is published with the profile so the issuer can check
// credential requests against it without seeing the key.
type ProfileKeyCommitment struct {
	commitment crypto.ProfileKeyCommitment
}

func NewProfileKey(b ProfileKeyBytes) ProfileKey {
	return ProfileKey{bytes: b}
}

func GenerateProfileKey(randomness RandomnessBytes) ProfileKey {
	var b ProfileKeyBytes
	copy(b[:], newSho(PROFILE_KEY_GENERATE_DOMAIN_TAG, randomness).NextBytes(ProfileKeyLen))
	return ProfileKey{bytes: b}
}

func (p ProfileKey) Bytes() ProfileKeyBytes {
	return p.bytes
}

func (p ProfileKey) Commitment(uid UidBytes) *ProfileKeyCommitment {
	c := crypto.NewCommitmentWithSecretNonce(crypto.NewProfileKeyStruct(p.bytes, uid), uid)
	return &ProfileKeyCommitment{commitment: c.Commitment}
}

// Version is the 64 character hex tag that names this key in profile
// lookups without revealing it.
func (p ProfileKey) Version(uid UidBytes) string {
	return profileKeyVersion(p.bytes, uid)
}

func (c *ProfileKeyCommitment) Equals(o *ProfileKeyCommitment) bool {
	return c.commitment.Equals(o.commitment)
}

// profileKeyRequestContext is the holder state of a profile key request. The
// v3 and pni contexts embed it unchanged so the issuer checks one request
// proof for all three.
type profileKeyRequestContext struct {
	uid        UidBytes
	profileKey ProfileKeyBytes
	keyPair    crypto.RequestKeyPair
	ciphertext crypto.RequestCiphertextWithSecretNonce
	proof      *crypto.ProfileKeyCredentialRequestProof
}

type ProfileKeyCredentialRequestContext struct {
	profileKeyRequestContext
}

type ProfileKeyCredentialV3RequestContext struct {
	profileKeyRequestContext
}

type ProfileKeyCredentialRequest struct {
	public     crypto.RequestPublicKey
	ciphertext crypto.RequestCiphertext
	proof      *crypto.ProfileKeyCredentialRequestProof
}

type ProfileKeyCredentialResponse struct {
	blinded crypto.BlindedCredential[crypto.ProfileKey]
	proof   *crypto.ProfileKeyCredentialIssuanceProof
}

type ProfileKeyCredentialV3Response struct {
	blinded crypto.BlindedCredential[crypto.ProfileKeyV3]
	proof   *crypto.ProfileKeyCredentialV3IssuanceProof
}

type ProfileKeyCredential struct {
	credential *crypto.ProfileKeyCredential
	uid        UidBytes
	profileKey ProfileKeyBytes
}

type ProfileKeyCredentialV3 struct {
	credential *crypto.ProfileKeyCredentialV3
	uid        UidBytes
	profileKey ProfileKeyBytes
}

// profileKeyCiphertexts are the two group ciphertexts every profile key
// presentation carries.
type profileKeyCiphertexts struct {
	uid        crypto.UidCiphertext
	profileKey crypto.ProfileKeyCiphertext
}

type ProfileKeyCredentialPresentationV1 struct {
	proof *crypto.ProfileKeyCredentialPresentationProofV1
	profileKeyCiphertexts
}

type ProfileKeyCredentialPresentationV2 struct {
	proof *crypto.ProfileKeyCredentialPresentationProofV2
	profileKeyCiphertexts
}

type ProfileKeyCredentialV3Presentation struct {
	proof *crypto.ProfileKeyCredentialV3PresentationProof
	profileKeyCiphertexts
}

// AnyProfileKeyCredentialPresentation is sealed: V1 and V2 are its only
// implementations. V3 credentials present through their own type.
type AnyProfileKeyCredentialPresentation interface {
	MarshalBinary() ([]byte, error)
	UuidCiphertext() *UuidCiphertext
	ProfileKeyCiphertext() *ProfileKeyCiphertext
	profileKeyCredentialPresentation()
}

func (*ProfileKeyCredentialPresentationV1) profileKeyCredentialPresentation() {}
func (*ProfileKeyCredentialPresentationV2) profileKeyCredentialPresentation() {}

func (c profileKeyCiphertexts) UuidCiphertext() *UuidCiphertext {
	return &UuidCiphertext{ciphertext: c.uid}
}

func (c profileKeyCiphertexts) ProfileKeyCiphertext() *ProfileKeyCiphertext {
	return &ProfileKeyCiphertext{ciphertext: c.profileKey}
}

func newProfileKeyRequestContext(s *sho.Sho, uid UidBytes, profileKey ProfileKey) (profileKeyRequestContext, error) {
	pk := crypto.NewProfileKeyStruct(profileKey.bytes, uid)
	commitment := crypto.NewCommitmentWithSecretNonce(pk, uid)
	defer commitment.Zeroize()

	keyPair := crypto.GenerateRequestKeyPair(s)
	ciphertext := keyPair.EncryptProfileKey(pk, s)
	proof, err := crypto.NewProfileKeyCredentialRequestProof(keyPair, ciphertext, commitment, s)
	if err != nil {
		return profileKeyRequestContext{}, err
	}
	return profileKeyRequestContext{
		uid:        uid,
		profileKey: profileKey.bytes,
		keyPair:    keyPair,
		ciphertext: ciphertext,
		proof:      proof,
	}, nil
}

func (ctx *profileKeyRequestContext) Request() *ProfileKeyCredentialRequest {
	return &ProfileKeyCredentialRequest{
		public:     ctx.keyPair.PublicKey(),
		ciphertext: ctx.ciphertext.Ciphertext,
		proof:      ctx.proof,
	}
}

func (ctx *profileKeyRequestContext) Zeroize() {
	ctx.keyPair.Zeroize()
	ctx.ciphertext.Zeroize()
	for i := range ctx.profileKey {
		ctx.profileKey[i] = 0
	}
}

func (ctx *profileKeyRequestContext) fields() []encodeFunc {
	return []encodeFunc{
		addBytes(ctx.uid[:]),
		addBytes(ctx.profileKey[:]),
		ctx.keyPair.Encode,
		ctx.ciphertext.Encode,
		ctx.proof.Encode,
	}
}

func (ctx *profileKeyRequestContext) decoders() []decodeFunc {
	return []decodeFunc{
		readBytes(ctx.uid[:]),
		readBytes(ctx.profileKey[:]),
		ctx.keyPair.Decode,
		ctx.ciphertext.Decode,
		decodeInto(&ctx.proof),
	}
}

func (p *ServerPublicParams) CreateProfileKeyCredentialRequestContext(randomness RandomnessBytes, uid UidBytes, profileKey ProfileKey) (*ProfileKeyCredentialRequestContext, error) {
	ctx, err := newProfileKeyRequestContext(newSho(PROFILE_KEY_REQUEST_DOMAIN_TAG, randomness), uid, profileKey)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialRequestContext{ctx}, nil
}

func (p *ServerPublicParams) CreateProfileKeyCredentialV3RequestContext(randomness RandomnessBytes, uid UidBytes, profileKey ProfileKey) (*ProfileKeyCredentialV3RequestContext, error) {
	ctx, err := newProfileKeyRequestContext(newSho(PROFILE_KEY_V3_REQUEST_DOMAIN_TAG, randomness), uid, profileKey)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialV3RequestContext{ctx}, nil
}

// IssueProfileKeyCredential checks the request against commitment before it
// touches the issuer key.
func (p *ServerSecretParams) IssueProfileKeyCredential(randomness RandomnessBytes, request *ProfileKeyCredentialRequest, uid UidBytes, commitment *ProfileKeyCommitment) (*ProfileKeyCredentialResponse, error) {
	s := newSho(ISSUE_PROFILE_KEY_DOMAIN_TAG, randomness)
	if err := request.proof.Verify(request.public, request.ciphertext, commitment.commitment); err != nil {
		return nil, err
	}

	u := crypto.NewUidStruct(uid)
	blinded, err := crypto.CreateBlindedProfileKeyCredential(p.profileKey, u, request.public, request.ciphertext, s)
	if err != nil {
		return nil, err
	}
	defer blinded.Zeroize()
	proof, err := crypto.NewProfileKeyCredentialIssuanceProof(p.profileKey, request.public, request.ciphertext, blinded, u, s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialResponse{blinded: blinded.Blinded(), proof: proof}, nil
}

func (p *ServerSecretParams) IssueProfileKeyCredentialV3(randomness RandomnessBytes, request *ProfileKeyCredentialRequest, uid UidBytes, commitment *ProfileKeyCommitment) (*ProfileKeyCredentialV3Response, error) {
	s := newSho(ISSUE_PROFILE_KEY_V3_DOMAIN_TAG, randomness)
	if err := request.proof.Verify(request.public, request.ciphertext, commitment.commitment); err != nil {
		return nil, err
	}

	u := crypto.NewUidStruct(uid)
	blinded, err := crypto.CreateBlindedProfileKeyCredentialV3(p.profileKeyV3, u, request.public, request.ciphertext, s)
	if err != nil {
		return nil, err
	}
	defer blinded.Zeroize()
	proof, err := crypto.NewProfileKeyCredentialV3IssuanceProof(p.profileKeyV3, request.public, request.ciphertext, blinded, u, s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialV3Response{blinded: blinded.Blinded(), proof: proof}, nil
}

func (p *ServerPublicParams) ReceiveProfileKeyCredential(ctx *ProfileKeyCredentialRequestContext, response *ProfileKeyCredentialResponse) (*ProfileKeyCredential, error) {
	uid := crypto.NewUidStruct(ctx.uid)
	err := response.proof.Verify(p.profileKey, ctx.keyPair.PublicKey(), ctx.ciphertext.Ciphertext, response.blinded, uid)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredential{
		credential: crypto.DecryptBlindedCredential(ctx.keyPair, response.blinded),
		uid:        ctx.uid,
		profileKey: ctx.profileKey,
	}, nil
}

func (p *ServerPublicParams) ReceiveProfileKeyCredentialV3(ctx *ProfileKeyCredentialV3RequestContext, response *ProfileKeyCredentialV3Response) (*ProfileKeyCredentialV3, error) {
	uid := crypto.NewUidStruct(ctx.uid)
	err := response.proof.Verify(p.profileKeyV3, ctx.keyPair.PublicKey(), ctx.ciphertext.Ciphertext, response.blinded, uid)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialV3{
		credential: crypto.DecryptBlindedCredential(ctx.keyPair, response.blinded),
		uid:        ctx.uid,
		profileKey: ctx.profileKey,
	}, nil
}

// encryptProfileKeyAttributes encrypts uid and profile key under the group
// with nonces drawn from s, so each presentation carries fresh ciphertexts.
func (g *GroupSecretParams) encryptProfileKeyAttributes(s *sho.Sho, uid UidBytes, profileKey ProfileKeyBytes) (crypto.UidStruct, crypto.ProfileKeyStruct, profileKeyCiphertexts) {
	u := crypto.NewUidStruct(uid)
	pk := crypto.NewProfileKeyStruct(profileKey, uid)
	public := g.keys.PublicKey()
	cts := profileKeyCiphertexts{
		uid:        public.EncryptUid(u, s),
		profileKey: public.EncryptProfileKey(pk, s),
	}
	return u, pk, cts
}

// CreateProfileKeyCredentialPresentation creates the latest version, V2.
func (p *ServerPublicParams) CreateProfileKeyCredentialPresentation(randomness RandomnessBytes, group *GroupSecretParams, credential *ProfileKeyCredential) (AnyProfileKeyCredentialPresentation, error) {
	return p.CreateProfileKeyCredentialPresentationV2(randomness, group, credential)
}

func (p *ServerPublicParams) CreateProfileKeyCredentialPresentationV1(randomness RandomnessBytes, group *GroupSecretParams, credential *ProfileKeyCredential) (*ProfileKeyCredentialPresentationV1, error) {
	s := newSho(PROFILE_KEY_PRESENTATION_V1_DOMAIN_TAG, randomness)
	uid, pk, cts := group.encryptProfileKeyAttributes(s, credential.uid, credential.profileKey)
	proof, err := crypto.NewProfileKeyCredentialPresentationProofV1(p.profileKey, group.keys, credential.credential, uid, cts.uid, pk, cts.profileKey, s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialPresentationV1{proof: proof, profileKeyCiphertexts: cts}, nil
}

func (p *ServerPublicParams) CreateProfileKeyCredentialPresentationV2(randomness RandomnessBytes, group *GroupSecretParams, credential *ProfileKeyCredential) (*ProfileKeyCredentialPresentationV2, error) {
	s := newSho(PROFILE_KEY_PRESENTATION_V2_DOMAIN_TAG, randomness)
	uid, pk, cts := group.encryptProfileKeyAttributes(s, credential.uid, credential.profileKey)
	proof, err := crypto.NewProfileKeyCredentialPresentationProofV2(p.profileKey, group.keys, credential.credential, uid, cts.uid, pk, cts.profileKey, s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialPresentationV2{proof: proof, profileKeyCiphertexts: cts}, nil
}

// CreateProfileKeyCredentialV3Presentation proves against the v3 issuer key.
func (p *ServerPublicParams) CreateProfileKeyCredentialV3Presentation(randomness RandomnessBytes, group *GroupSecretParams, credential *ProfileKeyCredentialV3) (*ProfileKeyCredentialV3Presentation, error) {
	s := newSho(PROFILE_KEY_V3_PRESENTATION_DOMAIN_TAG, randomness)
	uid, pk, cts := group.encryptProfileKeyAttributes(s, credential.uid, credential.profileKey)
	proof, err := crypto.NewProfileKeyCredentialV3PresentationProof(p.profileKeyV3, group.keys, credential.credential, uid, cts.uid, pk, cts.profileKey, s)
	if err != nil {
		return nil, err
	}
	return &ProfileKeyCredentialV3Presentation{proof: proof, profileKeyCiphertexts: cts}, nil
}

func (p *ServerSecretParams) VerifyProfileKeyCredentialPresentation(group *GroupPublicParams, presentation AnyProfileKeyCredentialPresentation) error {
	switch v := presentation.(type) {
	case *ProfileKeyCredentialPresentationV1:
		return p.VerifyProfileKeyCredentialPresentationV1(group, v)
	case *ProfileKeyCredentialPresentationV2:
		return p.VerifyProfileKeyCredentialPresentationV2(group, v)
	default:
		return ErrVerificationFailure
	}
}

func (p *ServerSecretParams) VerifyProfileKeyCredentialPresentationV1(group *GroupPublicParams, presentation *ProfileKeyCredentialPresentationV1) error {
	return presentation.proof.Verify(p.profileKey, group.keys, presentation.uid, presentation.profileKey)
}

func (p *ServerSecretParams) VerifyProfileKeyCredentialPresentationV2(group *GroupPublicParams, presentation *ProfileKeyCredentialPresentationV2) error {
	return presentation.proof.Verify(p.profileKey, group.keys, presentation.uid, presentation.profileKey)
}

func (p *ServerSecretParams) VerifyProfileKeyCredentialV3Presentation(group *GroupPublicParams, presentation *ProfileKeyCredentialV3Presentation) error {
	return presentation.proof.Verify(p.profileKeyV3, group.keys, presentation.uid, presentation.profileKey)
}

// ParseAnyProfileKeyCredentialPresentation dispatches on the version tag.
func ParseAnyProfileKeyCredentialPresentation(data []byte) (AnyProfileKeyCredentialPresentation, error) {
	switch versionTag(data) {
	case PRESENTATION_VERSION_1:
		presentation := new(ProfileKeyCredentialPresentationV1)
		if err := presentation.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return presentation, nil
	case PRESENTATION_VERSION_2:
		presentation := new(ProfileKeyCredentialPresentationV2)
		if err := presentation.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return presentation, nil
	default:
		return nil, errors.Wrap(ErrInvalidEncoding, "profile key credential presentation: version")
	}
}

func (c *ProfileKeyCommitment) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.commitment.Encode)
}

func (c *ProfileKeyCommitment) UnmarshalBinary(data []byte) error {
	var commitment ProfileKeyCommitment
	if err := unmarshal(data, RESERVED_TAG, "profile key commitment", commitment.commitment.Decode); err != nil {
		return err
	}
	*c = commitment
	return nil
}

func (ctx *ProfileKeyCredentialRequestContext) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, ctx.fields()...)
}

func (ctx *ProfileKeyCredentialRequestContext) UnmarshalBinary(data []byte) error {
	var c ProfileKeyCredentialRequestContext
	if err := unmarshal(data, RESERVED_TAG, "profile key credential request context", c.decoders()...); err != nil {
		return err
	}
	*ctx = c
	return nil
}

func (ctx *ProfileKeyCredentialV3RequestContext) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, ctx.fields()...)
}

func (ctx *ProfileKeyCredentialV3RequestContext) UnmarshalBinary(data []byte) error {
	var c ProfileKeyCredentialV3RequestContext
	if err := unmarshal(data, RESERVED_TAG, "profile key credential v3 request context", c.decoders()...); err != nil {
		return err
	}
	*ctx = c
	return nil
}

func (r *ProfileKeyCredentialRequest) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, r.public.Encode, r.ciphertext.Encode, r.proof.Encode)
}

func (r *ProfileKeyCredentialRequest) UnmarshalBinary(data []byte) error {
	var req ProfileKeyCredentialRequest
	err := unmarshal(data, RESERVED_TAG, "profile key credential request",
		req.public.Decode, req.ciphertext.Decode, decodeInto(&req.proof))
	if err != nil {
		return err
	}
	*r = req
	return nil
}

func (r *ProfileKeyCredentialResponse) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, r.blinded.Encode, r.proof.Encode)
}

func (r *ProfileKeyCredentialResponse) UnmarshalBinary(data []byte) error {
	var resp ProfileKeyCredentialResponse
	if err := unmarshal(data, RESERVED_TAG, "profile key credential response", resp.blinded.Decode, decodeInto(&resp.proof)); err != nil {
		return err
	}
	*r = resp
	return nil
}

func (r *ProfileKeyCredentialV3Response) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, r.blinded.Encode, r.proof.Encode)
}

func (r *ProfileKeyCredentialV3Response) UnmarshalBinary(data []byte) error {
	var resp ProfileKeyCredentialV3Response
	if err := unmarshal(data, RESERVED_TAG, "profile key credential v3 response", resp.blinded.Decode, decodeInto(&resp.proof)); err != nil {
		return err
	}
	*r = resp
	return nil
}

func (c *ProfileKeyCredential) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.credential.Encode, addBytes(c.uid[:]), addBytes(c.profileKey[:]))
}

func (c *ProfileKeyCredential) UnmarshalBinary(data []byte) error {
	var cred ProfileKeyCredential
	err := unmarshal(data, RESERVED_TAG, "profile key credential",
		decodeInto(&cred.credential), readBytes(cred.uid[:]), readBytes(cred.profileKey[:]))
	if err != nil {
		return err
	}
	*c = cred
	return nil
}

func (c *ProfileKeyCredentialV3) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.credential.Encode, addBytes(c.uid[:]), addBytes(c.profileKey[:]))
}

func (c *ProfileKeyCredentialV3) UnmarshalBinary(data []byte) error {
	var cred ProfileKeyCredentialV3
	err := unmarshal(data, RESERVED_TAG, "profile key credential v3",
		decodeInto(&cred.credential), readBytes(cred.uid[:]), readBytes(cred.profileKey[:]))
	if err != nil {
		return err
	}
	*c = cred
	return nil
}

func (c *profileKeyCiphertexts) fields() []encodeFunc {
	return []encodeFunc{c.uid.Encode, c.profileKey.Encode}
}

func (c *profileKeyCiphertexts) decoders() []decodeFunc {
	return []decodeFunc{c.uid.Decode, c.profileKey.Decode}
}

func (pres *ProfileKeyCredentialPresentationV1) MarshalBinary() ([]byte, error) {
	return marshal(PRESENTATION_VERSION_1, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *ProfileKeyCredentialPresentationV1) UnmarshalBinary(data []byte) error {
	var p ProfileKeyCredentialPresentationV1
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PRESENTATION_VERSION_1, "profile key credential presentation v1", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}

func (pres *ProfileKeyCredentialPresentationV2) MarshalBinary() ([]byte, error) {
	return marshal(PRESENTATION_VERSION_2, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *ProfileKeyCredentialPresentationV2) UnmarshalBinary(data []byte) error {
	var p ProfileKeyCredentialPresentationV2
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PRESENTATION_VERSION_2, "profile key credential presentation v2", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}

func (pres *ProfileKeyCredentialV3Presentation) MarshalBinary() ([]byte, error) {
	return marshal(PROFILE_KEY_CREDENTIAL_VERSION_3, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *ProfileKeyCredentialV3Presentation) UnmarshalBinary(data []byte) error {
	var p ProfileKeyCredentialV3Presentation
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PROFILE_KEY_CREDENTIAL_VERSION_3, "profile key credential v3 presentation", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}
