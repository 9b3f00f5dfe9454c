package main

import (
	"encoding"
	"encoding/hex"

	"github.com/pkg/errors"
	"gopkg.in/op/go-logging.v1"

	api "github.com/MixinNetwork/zkgroup-go"
)

// Vector is one named encoding produced by a scenario.
type Vector struct {
	Name string
	Hex  string
}

type scenario struct {
	log     *logging.Logger
	v       *Vectors
	secret  *api.ServerSecretParams
	public  *api.ServerPublicParams
	group   *api.GroupSecretParams
	vectors []Vector
}

func (s *scenario) add(name string, m encoding.BinaryMarshaler) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, name)
	}
	s.vectors = append(s.vectors, Vector{Name: name, Hex: hex.EncodeToString(b)})
	s.log.Debugf("%s: %d bytes", name, len(b))
	return nil
}

// Run issues, presents and verifies one credential of every kind and
// returns the encodings in a fixed order.
func Run(v *Vectors, log *logging.Logger) ([]Vector, error) {
	secret, err := api.GenerateServerSecretParams(v.Server)
	if err != nil {
		return nil, err
	}
	defer secret.Zeroize()
	group := api.GenerateGroupSecretParams(v.Group)
	defer group.Zeroize()

	s := &scenario{
		log:    log,
		v:      v,
		secret: secret,
		public: secret.PublicParams(),
		group:  group,
	}
	if err := s.add("server_public_params", s.public); err != nil {
		return nil, err
	}
	if err := s.add("group_public_params", group.PublicParams()); err != nil {
		return nil, err
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"auth", s.auth},
		{"profile_key", s.profileKey},
		{"profile_key_v3", s.profileKeyV3},
		{"pni", s.pni},
		{"receipt", s.receipt},
		{"signature", s.signature},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return nil, errors.Wrap(err, step.name)
		}
		log.Noticef("%s verified", step.name)
	}
	return s.vectors, nil
}

func (s *scenario) auth() error {
	response, err := s.secret.IssueAuthCredential(s.v.Issue, s.v.Aci, s.v.RedemptionTime)
	if err != nil {
		return err
	}
	credential, err := s.public.ReceiveAuthCredential(s.v.Aci, s.v.RedemptionTime, response)
	if err != nil {
		return err
	}
	presentation, err := s.public.CreateAuthCredentialPresentation(s.v.Present, s.group, credential)
	if err != nil {
		return err
	}
	if err := s.secret.VerifyAuthCredentialPresentation(s.group.PublicParams(), presentation); err != nil {
		return err
	}
	if err := s.add("auth_credential_response", response); err != nil {
		return err
	}
	return s.add("auth_credential_presentation", presentation)
}

func (s *scenario) profileKey() error {
	ctx, err := s.public.CreateProfileKeyCredentialRequestContext(s.v.Request, s.v.Aci, s.v.ProfileKey)
	if err != nil {
		return err
	}
	defer ctx.Zeroize()
	commitment := s.v.ProfileKey.Commitment(s.v.Aci)
	response, err := s.secret.IssueProfileKeyCredential(s.v.Issue, ctx.Request(), s.v.Aci, commitment)
	if err != nil {
		return err
	}
	credential, err := s.public.ReceiveProfileKeyCredential(ctx, response)
	if err != nil {
		return err
	}
	presentation, err := s.public.CreateProfileKeyCredentialPresentation(s.v.Present, s.group, credential)
	if err != nil {
		return err
	}
	if err := s.secret.VerifyProfileKeyCredentialPresentation(s.group.PublicParams(), presentation); err != nil {
		return err
	}
	s.vectors = append(s.vectors, Vector{Name: "profile_key_version", Hex: s.v.ProfileKey.Version(s.v.Aci)})
	for _, m := range []struct {
		name string
		m    encoding.BinaryMarshaler
	}{
		{"profile_key_commitment", commitment},
		{"profile_key_credential_request", ctx.Request()},
		{"profile_key_credential_response", response},
		{"profile_key_credential_presentation", presentation},
	} {
		if err := s.add(m.name, m.m); err != nil {
			return err
		}
	}
	return nil
}

func (s *scenario) profileKeyV3() error {
	ctx, err := s.public.CreateProfileKeyCredentialV3RequestContext(s.v.Request, s.v.Aci, s.v.ProfileKey)
	if err != nil {
		return err
	}
	defer ctx.Zeroize()
	commitment := s.v.ProfileKey.Commitment(s.v.Aci)
	response, err := s.secret.IssueProfileKeyCredentialV3(s.v.Issue, ctx.Request(), s.v.Aci, commitment)
	if err != nil {
		return err
	}
	credential, err := s.public.ReceiveProfileKeyCredentialV3(ctx, response)
	if err != nil {
		return err
	}
	presentation, err := s.public.CreateProfileKeyCredentialV3Presentation(s.v.Present, s.group, credential)
	if err != nil {
		return err
	}
	if err := s.secret.VerifyProfileKeyCredentialV3Presentation(s.group.PublicParams(), presentation); err != nil {
		return err
	}
	if err := s.add("profile_key_credential_v3_response", response); err != nil {
		return err
	}
	return s.add("profile_key_credential_v3_presentation", presentation)
}

func (s *scenario) pni() error {
	ctx, err := s.public.CreatePniCredentialRequestContext(s.v.Request, s.v.Aci, s.v.Pni, s.v.ProfileKey)
	if err != nil {
		return err
	}
	defer ctx.Zeroize()
	commitment := s.v.ProfileKey.Commitment(s.v.Aci)
	response, err := s.secret.IssuePniCredential(s.v.Issue, ctx.Request(), s.v.Aci, s.v.Pni, commitment)
	if err != nil {
		return err
	}
	credential, err := s.public.ReceivePniCredential(ctx, response)
	if err != nil {
		return err
	}
	presentation, err := s.public.CreatePniCredentialPresentation(s.v.Present, s.group, credential)
	if err != nil {
		return err
	}
	if err := s.secret.VerifyPniCredentialPresentation(s.group.PublicParams(), presentation); err != nil {
		return err
	}
	if err := s.add("pni_credential_response", response); err != nil {
		return err
	}
	return s.add("pni_credential_presentation", presentation)
}

func (s *scenario) receipt() error {
	ctx := s.public.CreateReceiptCredentialRequestContext(s.v.Request, s.v.Serial)
	defer ctx.Zeroize()
	response, err := s.secret.IssueReceiptCredential(s.v.Issue, ctx.Request(), s.v.ExpirationTime, s.v.Level)
	if err != nil {
		return err
	}
	credential, err := s.public.ReceiveReceiptCredential(ctx, response)
	if err != nil {
		return err
	}
	presentation, err := s.public.CreateReceiptCredentialPresentation(s.v.Present, credential)
	if err != nil {
		return err
	}
	if err := s.secret.VerifyReceiptCredentialPresentation(presentation); err != nil {
		return err
	}
	if err := s.add("receipt_credential_request", ctx.Request()); err != nil {
		return err
	}
	if err := s.add("receipt_credential_response", response); err != nil {
		return err
	}
	return s.add("receipt_credential_presentation", presentation)
}

func (s *scenario) signature() error {
	message := []byte("zkgroup-vectors")
	sig, err := s.secret.Sign(s.v.Present, message)
	if err != nil {
		return err
	}
	if err := s.public.VerifySignature(message, sig); err != nil {
		return err
	}
	s.vectors = append(s.vectors, Vector{Name: "notary_signature", Hex: hex.EncodeToString(sig[:])})
	return nil
}
