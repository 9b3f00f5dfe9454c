package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPniCredential(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 1)
	group, groupPublic := testGroup(2)
	aci, pni, profileKey := testUid(3), testUid(4), testProfileKey(5)

	ctx, err := public.CreatePniCredentialRequestContext(testRandomness(6), aci, pni, profileKey)
	assert.Nil(err)
	plain, err := public.CreateProfileKeyCredentialRequestContext(testRandomness(6), aci, profileKey)
	assert.Nil(err)
	pniRequest, err := ctx.Request().MarshalBinary()
	assert.Nil(err)
	plainRequest, err := plain.Request().MarshalBinary()
	assert.Nil(err)
	assert.Equal(plainRequest, pniRequest)

	response, err := secret.IssuePniCredential(testRandomness(7), ctx.Request(), aci, pni, profileKey.Commitment(aci))
	assert.Nil(err)
	data, err := response.MarshalBinary()
	assert.Nil(err)
	var decodedResponse PniCredentialResponse
	assert.Nil(decodedResponse.UnmarshalBinary(data))

	data, err = ctx.MarshalBinary()
	assert.Nil(err)
	var decodedCtx PniCredentialRequestContext
	assert.Nil(decodedCtx.UnmarshalBinary(data))
	credential, err := public.ReceivePniCredential(&decodedCtx, &decodedResponse)
	assert.Nil(err)
	assert.Equal(aci, credential.aci)
	assert.Equal(pni, credential.pni)

	swapped, err := secret.IssuePniCredential(testRandomness(7), ctx.Request(), pni, aci, profileKey.Commitment(aci))
	assert.Nil(err)
	_, err = public.ReceivePniCredential(ctx, swapped)
	assert.ErrorIs(err, ErrVerificationFailure)
	wrongPni, err := secret.IssuePniCredential(testRandomness(7), ctx.Request(), aci, testUid(8), profileKey.Commitment(aci))
	assert.Nil(err)
	_, err = public.ReceivePniCredential(ctx, wrongPni)
	assert.ErrorIs(err, ErrVerificationFailure)

	data, err = credential.MarshalBinary()
	assert.Nil(err)
	var decodedCredential PniCredential
	assert.Nil(decodedCredential.UnmarshalBinary(data))

	v1, err := public.CreatePniCredentialPresentationV1(testRandomness(9), group, &decodedCredential)
	assert.Nil(err)
	assert.Nil(secret.VerifyPniCredentialPresentationV1(groupPublic, v1))
	assert.Nil(secret.VerifyPniCredentialPresentation(groupPublic, v1))
	v2, err := public.CreatePniCredentialPresentationV2(testRandomness(10), group, credential)
	assert.Nil(err)
	assert.Nil(secret.VerifyPniCredentialPresentationV2(groupPublic, v2))

	latest, err := public.CreatePniCredentialPresentation(testRandomness(11), group, credential)
	assert.Nil(err)
	assert.IsType(&PniCredentialPresentationV2{}, latest)
	assert.Nil(secret.VerifyPniCredentialPresentation(groupPublic, latest))

	decrypted, err := group.DecryptUUID(latest.AciCiphertext())
	assert.Nil(err)
	assert.Equal(aci, decrypted)
	decrypted, err = group.DecryptUUID(latest.PniCiphertext())
	assert.Nil(err)
	assert.Equal(pni, decrypted)
	pk, err := group.DecryptProfileKey(latest.ProfileKeyCiphertext(), profileKey, aci)
	assert.Nil(err)
	assert.Equal(profileKey, pk)

	otherSecret, _ := testServer(t, 12)
	assert.ErrorIs(otherSecret.VerifyPniCredentialPresentation(groupPublic, latest), ErrVerificationFailure)
	_, otherGroup := testGroup(13)
	assert.ErrorIs(secret.VerifyPniCredentialPresentation(otherGroup, latest), ErrVerificationFailure)
	assert.ErrorIs(secret.VerifyPniCredentialPresentation(groupPublic, nil), ErrVerificationFailure)

	data, err = latest.MarshalBinary()
	assert.Nil(err)
	flipEachByte(t, data, func(b []byte) error {
		p, err := ParseAnyPniCredentialPresentation(b)
		if err != nil {
			return err
		}
		return secret.VerifyPniCredentialPresentation(groupPublic, p)
	})

	tampered := append([]byte(nil), data...)
	tampered[0] = PRESENTATION_VERSION_1
	p, err := ParseAnyPniCredentialPresentation(tampered)
	assert.Nil(err)
	assert.ErrorIs(secret.VerifyPniCredentialPresentation(groupPublic, p), ErrVerificationFailure)
	tampered[0] = PROFILE_KEY_CREDENTIAL_VERSION_3
	_, err = ParseAnyPniCredentialPresentation(tampered)
	assert.ErrorIs(err, ErrInvalidEncoding)
}

func TestPniPresentationUnlinkable(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 21)
	group, groupPublic := testGroup(22)
	aci, pni, profileKey := testUid(23), testUid(24), testProfileKey(25)
	ctx, err := public.CreatePniCredentialRequestContext(testRandomness(26), aci, pni, profileKey)
	assert.Nil(err)
	response, err := secret.IssuePniCredential(testRandomness(27), ctx.Request(), aci, pni, profileKey.Commitment(aci))
	assert.Nil(err)
	credential, err := public.ReceivePniCredential(ctx, response)
	assert.Nil(err)

	a, err := public.CreatePniCredentialPresentation(testRandomness(28), group, credential)
	assert.Nil(err)
	b, err := public.CreatePniCredentialPresentation(testRandomness(29), group, credential)
	assert.Nil(err)
	assert.Nil(secret.VerifyPniCredentialPresentation(groupPublic, a))
	assert.Nil(secret.VerifyPniCredentialPresentation(groupPublic, b))

	pniA, _ := a.PniCiphertext().MarshalBinary()
	pniB, _ := b.PniCiphertext().MarshalBinary()
	assert.NotEqual(pniA, pniB)
}
