package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testReceiptSerial(seed byte) ReceiptSerialBytes {
	var serial ReceiptSerialBytes
	for i := range serial {
		serial[i] = seed + byte(i*11)
	}
	return serial
}

func TestReceiptCredential(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 1)
	serial := testReceiptSerial(2)
	expiration, level := ReceiptExpirationTime(1700000000), ReceiptLevel(3)

	ctx := public.CreateReceiptCredentialRequestContext(testRandomness(3), serial)
	data, err := ctx.Request().MarshalBinary()
	assert.Nil(err)
	var request ReceiptCredentialRequest
	assert.Nil(request.UnmarshalBinary(data))

	response, err := secret.IssueReceiptCredential(testRandomness(4), &request, expiration, level)
	assert.Nil(err)
	data, err = response.MarshalBinary()
	assert.Nil(err)
	var decodedResponse ReceiptCredentialResponse
	assert.Nil(decodedResponse.UnmarshalBinary(data))

	data, err = ctx.MarshalBinary()
	assert.Nil(err)
	var decodedCtx ReceiptCredentialRequestContext
	assert.Nil(decodedCtx.UnmarshalBinary(data))
	credential, err := public.ReceiveReceiptCredential(&decodedCtx, &decodedResponse)
	assert.Nil(err)
	assert.Equal(expiration, credential.ExpirationTime())
	assert.Equal(level, credential.Level())

	decodedResponse.level++
	_, err = public.ReceiveReceiptCredential(ctx, &decodedResponse)
	assert.ErrorIs(err, ErrVerificationFailure)
	_, otherPublic := testServer(t, 5)
	_, err = otherPublic.ReceiveReceiptCredential(ctx, response)
	assert.ErrorIs(err, ErrVerificationFailure)
	other := public.CreateReceiptCredentialRequestContext(testRandomness(6), serial)
	_, err = public.ReceiveReceiptCredential(other, response)
	assert.ErrorIs(err, ErrVerificationFailure)

	data, err = credential.MarshalBinary()
	assert.Nil(err)
	var decodedCredential ReceiptCredential
	assert.Nil(decodedCredential.UnmarshalBinary(data))

	presentation, err := public.CreateReceiptCredentialPresentation(testRandomness(7), &decodedCredential)
	assert.Nil(err)
	assert.Nil(secret.VerifyReceiptCredentialPresentation(presentation))
	assert.Equal(serial, presentation.Serial())
	assert.Equal(expiration, presentation.ExpirationTime())
	assert.Equal(level, presentation.Level())

	otherSecret, _ := testServer(t, 5)
	assert.ErrorIs(otherSecret.VerifyReceiptCredentialPresentation(presentation), ErrVerificationFailure)

	data, err = presentation.MarshalBinary()
	assert.Nil(err)
	var decoded ReceiptCredentialPresentation
	assert.Nil(decoded.UnmarshalBinary(data))
	assert.Nil(secret.VerifyReceiptCredentialPresentation(&decoded))

	decoded.expirationTime++
	assert.ErrorIs(secret.VerifyReceiptCredentialPresentation(&decoded), ErrVerificationFailure)
	decoded.expirationTime--
	decoded.serial[0] ^= 0x01
	assert.ErrorIs(secret.VerifyReceiptCredentialPresentation(&decoded), ErrVerificationFailure)

	flipEachByte(t, data, func(b []byte) error {
		var p ReceiptCredentialPresentation
		if err := p.UnmarshalBinary(b); err != nil {
			return err
		}
		return secret.VerifyReceiptCredentialPresentation(&p)
	})

	ctx.Zeroize()
}

func TestReceiptPresentationUnlinkable(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 11)
	ctx := public.CreateReceiptCredentialRequestContext(testRandomness(12), testReceiptSerial(13))
	response, err := secret.IssueReceiptCredential(testRandomness(14), ctx.Request(), 1700086400, 1)
	assert.Nil(err)
	credential, err := public.ReceiveReceiptCredential(ctx, response)
	assert.Nil(err)

	a, err := public.CreateReceiptCredentialPresentation(testRandomness(15), credential)
	assert.Nil(err)
	b, err := public.CreateReceiptCredentialPresentation(testRandomness(16), credential)
	assert.Nil(err)
	dataA, err := a.MarshalBinary()
	assert.Nil(err)
	dataB, err := b.MarshalBinary()
	assert.Nil(err)
	assert.NotEqual(dataA, dataB)
	assert.Nil(secret.VerifyReceiptCredentialPresentation(a))
	assert.Nil(secret.VerifyReceiptCredentialPresentation(b))
}
