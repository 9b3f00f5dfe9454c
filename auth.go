package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
	"github.com/pkg/errors"
)

// AuthCredentialResponse carries the credential in the clear; the issuer
// already knows every attribute.
type AuthCredentialResponse struct {
	credential *crypto.AuthCredential
	proof      *crypto.AuthCredentialIssuanceProof
}

type AuthCredential struct {
	credential     *crypto.AuthCredential
	uid            UidBytes
	redemptionTime RedemptionTime
}

type authPresentationFields struct {
	ciphertext     crypto.UidCiphertext
	redemptionTime RedemptionTime
}

type AuthCredentialPresentationV1 struct {
	proof *crypto.AuthCredentialPresentationProofV1
	authPresentationFields
}

type AuthCredentialPresentationV2 struct {
	proof *crypto.AuthCredentialPresentationProofV2
	authPresentationFields
}

type AnyAuthCredentialPresentation interface {
	MarshalBinary() ([]byte, error)
	UuidCiphertext() *UuidCiphertext
	RedemptionTime() RedemptionTime
	authCredentialPresentation()
}

func (*AuthCredentialPresentationV1) authCredentialPresentation() {}
func (*AuthCredentialPresentationV2) authCredentialPresentation() {}

func (f authPresentationFields) UuidCiphertext() *UuidCiphertext {
	return &UuidCiphertext{ciphertext: f.ciphertext}
}

func (f authPresentationFields) RedemptionTime() RedemptionTime {
	return f.redemptionTime
}

func (c *AuthCredential) RedemptionTime() RedemptionTime {
	return c.redemptionTime
}

func (p *ServerSecretParams) IssueAuthCredential(randomness RandomnessBytes, uid UidBytes, redemptionTime RedemptionTime) (*AuthCredentialResponse, error) {
	s := newSho(ISSUE_AUTH_DOMAIN_TAG, randomness)
	u := crypto.NewUidStruct(uid)
	credential, err := crypto.CreateAuthCredential(p.auth, u, redemptionTime, s)
	if err != nil {
		return nil, err
	}
	proof, err := crypto.NewAuthCredentialIssuanceProof(p.auth, credential, u, redemptionTime, s)
	if err != nil {
		return nil, err
	}
	return &AuthCredentialResponse{credential: credential, proof: proof}, nil
}

// ReceiveAuthCredential checks the response against the uid and redemption
// time the holder asked for.
func (p *ServerPublicParams) ReceiveAuthCredential(uid UidBytes, redemptionTime RedemptionTime, response *AuthCredentialResponse) (*AuthCredential, error) {
	err := response.proof.Verify(p.auth, response.credential, crypto.NewUidStruct(uid), redemptionTime)
	if err != nil {
		return nil, err
	}
	return &AuthCredential{credential: response.credential, uid: uid, redemptionTime: redemptionTime}, nil
}

// CreateAuthCredentialPresentation creates the latest version, V2.
func (p *ServerPublicParams) CreateAuthCredentialPresentation(randomness RandomnessBytes, group *GroupSecretParams, credential *AuthCredential) (AnyAuthCredentialPresentation, error) {
	return p.CreateAuthCredentialPresentationV2(randomness, group, credential)
}

func (p *ServerPublicParams) CreateAuthCredentialPresentationV1(randomness RandomnessBytes, group *GroupSecretParams, credential *AuthCredential) (*AuthCredentialPresentationV1, error) {
	s := newSho(AUTH_PRESENTATION_V1_DOMAIN_TAG, randomness)
	uid := crypto.NewUidStruct(credential.uid)
	ct := group.encryptUid(s, uid).ciphertext
	proof, err := crypto.NewAuthCredentialPresentationProofV1(p.auth, group.keys, credential.credential, uid, ct, credential.redemptionTime, s)
	if err != nil {
		return nil, err
	}
	return &AuthCredentialPresentationV1{
		proof:                  proof,
		authPresentationFields: authPresentationFields{ciphertext: ct, redemptionTime: credential.redemptionTime},
	}, nil
}

func (p *ServerPublicParams) CreateAuthCredentialPresentationV2(randomness RandomnessBytes, group *GroupSecretParams, credential *AuthCredential) (*AuthCredentialPresentationV2, error) {
	s := newSho(AUTH_PRESENTATION_V2_DOMAIN_TAG, randomness)
	uid := crypto.NewUidStruct(credential.uid)
	ct := group.encryptUid(s, uid).ciphertext
	proof, err := crypto.NewAuthCredentialPresentationProofV2(p.auth, group.keys, credential.credential, uid, ct, credential.redemptionTime, s)
	if err != nil {
		return nil, err
	}
	return &AuthCredentialPresentationV2{
		proof:                  proof,
		authPresentationFields: authPresentationFields{ciphertext: ct, redemptionTime: credential.redemptionTime},
	}, nil
}

// VerifyAuthCredentialPresentation checks the proof only. Whether the
// redemption time is acceptable today is the caller's policy.
func (p *ServerSecretParams) VerifyAuthCredentialPresentation(group *GroupPublicParams, presentation AnyAuthCredentialPresentation) error {
	switch v := presentation.(type) {
	case *AuthCredentialPresentationV1:
		return p.VerifyAuthCredentialPresentationV1(group, v)
	case *AuthCredentialPresentationV2:
		return p.VerifyAuthCredentialPresentationV2(group, v)
	default:
		return ErrVerificationFailure
	}
}

func (p *ServerSecretParams) VerifyAuthCredentialPresentationV1(group *GroupPublicParams, presentation *AuthCredentialPresentationV1) error {
	return presentation.proof.Verify(p.auth, group.keys, presentation.ciphertext, presentation.redemptionTime)
}

func (p *ServerSecretParams) VerifyAuthCredentialPresentationV2(group *GroupPublicParams, presentation *AuthCredentialPresentationV2) error {
	return presentation.proof.Verify(p.auth, group.keys, presentation.ciphertext, presentation.redemptionTime)
}

func ParseAnyAuthCredentialPresentation(data []byte) (AnyAuthCredentialPresentation, error) {
	switch versionTag(data) {
	case PRESENTATION_VERSION_1:
		presentation := new(AuthCredentialPresentationV1)
		if err := presentation.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return presentation, nil
	case PRESENTATION_VERSION_2:
		presentation := new(AuthCredentialPresentationV2)
		if err := presentation.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return presentation, nil
	default:
		return nil, errors.Wrap(ErrInvalidEncoding, "auth credential presentation: version")
	}
}

func (r *AuthCredentialResponse) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, r.credential.Encode, r.proof.Encode)
}

func (r *AuthCredentialResponse) UnmarshalBinary(data []byte) error {
	var resp AuthCredentialResponse
	if err := unmarshal(data, RESERVED_TAG, "auth credential response", decodeInto(&resp.credential), decodeInto(&resp.proof)); err != nil {
		return err
	}
	*r = resp
	return nil
}

func (c *AuthCredential) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.credential.Encode, addBytes(c.uid[:]), addUint32(c.redemptionTime))
}

func (c *AuthCredential) UnmarshalBinary(data []byte) error {
	var cred AuthCredential
	err := unmarshal(data, RESERVED_TAG, "auth credential",
		decodeInto(&cred.credential), readBytes(cred.uid[:]), readUint32(&cred.redemptionTime))
	if err != nil {
		return err
	}
	*c = cred
	return nil
}

func (f *authPresentationFields) fields() []encodeFunc {
	return []encodeFunc{f.ciphertext.Encode, addUint32(f.redemptionTime)}
}

func (f *authPresentationFields) decoders() []decodeFunc {
	return []decodeFunc{f.ciphertext.Decode, readUint32(&f.redemptionTime)}
}

func (pres *AuthCredentialPresentationV1) MarshalBinary() ([]byte, error) {
	return marshal(PRESENTATION_VERSION_1, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *AuthCredentialPresentationV1) UnmarshalBinary(data []byte) error {
	var p AuthCredentialPresentationV1
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PRESENTATION_VERSION_1, "auth credential presentation v1", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}

func (pres *AuthCredentialPresentationV2) MarshalBinary() ([]byte, error) {
	return marshal(PRESENTATION_VERSION_2, append([]encodeFunc{pres.proof.Encode}, pres.fields()...)...)
}

func (pres *AuthCredentialPresentationV2) UnmarshalBinary(data []byte) error {
	var p AuthCredentialPresentationV2
	decoders := append([]decodeFunc{decodeInto(&p.proof)}, p.decoders()...)
	if err := unmarshal(data, PRESENTATION_VERSION_2, "auth credential presentation v2", decoders...); err != nil {
		return err
	}
	*pres = p
	return nil
}
