package api

import (
	"encoding/hex"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRandomness(seed byte) RandomnessBytes {
	var r RandomnessBytes
	for i := range r {
		r[i] = seed + byte(i)
	}
	return r
}

func testUid(seed byte) UidBytes {
	var uid UidBytes
	for i := range uid {
		uid[i] = seed ^ byte(i*3)
	}
	return uid
}

func testServer(t *testing.T, seed byte) (*ServerSecretParams, *ServerPublicParams) {
	secret, err := GenerateServerSecretParams(testRandomness(seed))
	require.Nil(t, err)
	return secret, secret.PublicParams()
}

func testGroup(seed byte) (*GroupSecretParams, *GroupPublicParams) {
	group := GenerateGroupSecretParams(testRandomness(seed))
	return group, group.PublicParams()
}

// flipEachByte flips the low bit of every byte of data in turn and expects
// check to reject each copy.
func flipEachByte(t *testing.T, data []byte, check func([]byte) error) {
	for i := range data {
		tampered := append([]byte(nil), data...)
		tampered[i] ^= 0x01
		assert.NotNil(t, check(tampered), "byte %d", i)
	}
}

func TestServerParamsDeterministic(t *testing.T) {
	assert := assert.New(t)

	secret1, public1 := testServer(t, 1)
	secret2, public2 := testServer(t, 1)
	_, other := testServer(t, 2)

	s1, err := secret1.MarshalBinary()
	assert.Nil(err)
	s2, err := secret2.MarshalBinary()
	assert.Nil(err)
	assert.Equal(s1, s2)

	p1, err := public1.MarshalBinary()
	assert.Nil(err)
	p2, err := public2.MarshalBinary()
	assert.Nil(err)
	assert.Equal(p1, p2)
	p3, err := other.MarshalBinary()
	assert.Nil(err)
	assert.NotEqual(p1, p3)
	log.Println(hex.EncodeToString(p1))
}

func TestServerParamsCodec(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 3)
	data, err := secret.MarshalBinary()
	assert.Nil(err)
	pub, err := public.MarshalBinary()
	assert.Nil(err)

	var decoded ServerSecretParams
	assert.Nil(decoded.UnmarshalBinary(data))
	again, err := decoded.MarshalBinary()
	assert.Nil(err)
	assert.Equal(data, again)
	derived, err := decoded.PublicParams().MarshalBinary()
	assert.Nil(err)
	assert.Equal(pub, derived)

	var decodedPublic ServerPublicParams
	assert.Nil(decodedPublic.UnmarshalBinary(pub))
	again, err = decodedPublic.MarshalBinary()
	assert.Nil(err)
	assert.Equal(pub, again)

	assert.ErrorIs(decoded.UnmarshalBinary(data[:len(data)-1]), ErrInvalidEncoding)
	assert.ErrorIs(decoded.UnmarshalBinary(append(data, 0)), ErrInvalidEncoding)
	bad := append([]byte(nil), pub...)
	bad[0] = 1
	assert.ErrorIs(decodedPublic.UnmarshalBinary(bad), ErrInvalidEncoding)
	assert.ErrorIs(decodedPublic.UnmarshalBinary(nil), ErrInvalidEncoding)
}

func TestNotarySignature(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 4)
	message := []byte("server params attestation")
	sig, err := secret.Sign(testRandomness(5), message)
	assert.Nil(err)
	assert.Nil(public.VerifySignature(message, sig))
	assert.ErrorIs(public.VerifySignature([]byte("other message"), sig), ErrVerificationFailure)

	again, err := secret.Sign(testRandomness(6), message)
	assert.Nil(err)
	assert.NotEqual(sig, again)
	assert.Nil(public.VerifySignature(message, again))

	_, otherPublic := testServer(t, 7)
	assert.ErrorIs(otherPublic.VerifySignature(message, sig), ErrVerificationFailure)

	sig[10] ^= 0x01
	assert.ErrorIs(public.VerifySignature(message, sig), ErrVerificationFailure)

	var decoded ServerSecretParams
	data, err := secret.MarshalBinary()
	assert.Nil(err)
	assert.Nil(decoded.UnmarshalBinary(data))
	sig, err = decoded.Sign(testRandomness(8), message)
	assert.Nil(err)
	assert.Nil(public.VerifySignature(message, sig))
}

func TestNotarySignatureRandomness(t *testing.T) {
	assert := assert.New(t)

	secret, public := testServer(t, 9)
	message := []byte("server params attestation")
	sig, err := secret.Sign(testRandomness(10), message)
	assert.Nil(err)
	same, err := secret.Sign(testRandomness(10), message)
	assert.Nil(err)
	assert.Equal(sig, same)
	other, err := secret.Sign(testRandomness(11), message)
	assert.Nil(err)
	assert.NotEqual(sig, other)
	assert.Nil(public.VerifySignature(message, sig))
	assert.Nil(public.VerifySignature(message, other))

	secret.Zeroize()
	_, err = secret.Sign(testRandomness(12), message)
	assert.ErrorIs(err, ErrVerificationFailure)
	assert.Nil(public.VerifySignature(message, sig))

	var empty ServerPublicParams
	assert.ErrorIs(empty.VerifySignature(message, sig), ErrVerificationFailure)
}
