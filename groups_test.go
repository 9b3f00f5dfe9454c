package api

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupParams(t *testing.T) {
	assert := assert.New(t)

	group := GenerateGroupSecretParams(testRandomness(1))
	again := DeriveGroupSecretParams(group.MasterKey())
	assert.Equal(group.PublicParams().Identifier(), again.PublicParams().Identifier())
	other := GenerateGroupSecretParams(testRandomness(2))
	assert.NotEqual(group.PublicParams().Identifier(), other.PublicParams().Identifier())

	data, err := group.MarshalBinary()
	assert.Nil(err)
	var decoded GroupSecretParams
	assert.Nil(decoded.UnmarshalBinary(data))
	assert.Equal(group.MasterKey(), decoded.MasterKey())

	public := group.PublicParams()
	data, err = public.MarshalBinary()
	assert.Nil(err)
	var decodedPublic GroupPublicParams
	assert.Nil(decodedPublic.UnmarshalBinary(data))
	assert.Equal(public.Identifier(), decodedPublic.Identifier())

	data[1] ^= 0x01
	assert.ErrorIs(decodedPublic.UnmarshalBinary(data), ErrInvalidEncoding)
	assert.Equal(public.Identifier(), decodedPublic.Identifier())
}

func TestGroupEncryption(t *testing.T) {
	assert := assert.New(t)

	group := GenerateGroupSecretParams(testRandomness(11))
	uid := testUid(12)

	a := group.EncryptUUID(testRandomness(13), uid)
	b := group.EncryptUUID(testRandomness(14), uid)
	dataA, err := a.MarshalBinary()
	assert.Nil(err)
	dataB, err := b.MarshalBinary()
	assert.Nil(err)
	assert.NotEqual(dataA, dataB)

	var decoded UuidCiphertext
	assert.Nil(decoded.UnmarshalBinary(dataA))
	plain, err := group.DecryptUUID(&decoded)
	assert.Nil(err)
	assert.Equal(uid, plain)

	other := GenerateGroupSecretParams(testRandomness(15))
	plain, err = other.DecryptUUID(a)
	if err == nil {
		assert.NotEqual(uid, plain)
	}

	profileKey := testProfileKey(16)
	ct := group.EncryptProfileKey(testRandomness(17), profileKey, uid)
	data, err := ct.MarshalBinary()
	assert.Nil(err)
	var decodedKey ProfileKeyCiphertext
	assert.Nil(decodedKey.UnmarshalBinary(data))
	pk, err := group.DecryptProfileKey(&decodedKey, profileKey, uid)
	assert.Nil(err)
	assert.Equal(profileKey, pk)
	_, err = group.DecryptProfileKey(&decodedKey, profileKey, testUid(18))
	assert.ErrorIs(err, ErrVerificationFailure)
	_, err = other.DecryptProfileKey(&decodedKey, profileKey, uid)
	assert.ErrorIs(err, ErrVerificationFailure)

	assert.ErrorIs(decodedKey.UnmarshalBinary(append(data, 0)), ErrInvalidEncoding)
}

func TestGroupProfileKeyBoundToUid(t *testing.T) {
	assert := assert.New(t)

	group := GenerateGroupSecretParams(testRandomness(19))
	profileKey := testProfileKey(16)
	aci, pni := testUid(12), testUid(18)

	forAci := group.EncryptProfileKey(testRandomness(20), profileKey, aci)
	forPni := group.EncryptProfileKey(testRandomness(20), profileKey, pni)
	aciBytes, err := forAci.MarshalBinary()
	assert.Nil(err)
	pniBytes, err := forPni.MarshalBinary()
	assert.Nil(err)
	assert.False(bytes.Equal(aciBytes, pniBytes))

	pk, err := group.DecryptProfileKey(forAci, profileKey, aci)
	assert.Nil(err)
	assert.Equal(profileKey, pk)
	pk, err = group.DecryptProfileKey(forPni, profileKey, pni)
	assert.Nil(err)
	assert.Equal(profileKey, pk)

	_, err = group.DecryptProfileKey(forAci, profileKey, pni)
	assert.ErrorIs(err, ErrVerificationFailure)
	_, err = group.DecryptProfileKey(forPni, profileKey, aci)
	assert.ErrorIs(err, ErrVerificationFailure)
}

func TestGroupBlob(t *testing.T) {
	assert := assert.New(t)

	group := GenerateGroupSecretParams(testRandomness(21))
	plaintext := []byte("group title")

	blob, err := group.EncryptBlob(testRandomness(22), plaintext)
	assert.Nil(err)
	assert.Equal(RESERVED_TAG, blob[0])
	decrypted, err := group.DecryptBlob(blob)
	assert.Nil(err)
	assert.Equal(plaintext, decrypted)

	again, err := group.EncryptBlob(testRandomness(23), plaintext)
	assert.Nil(err)
	assert.NotEqual(blob, again)

	padded, err := group.EncryptBlobWithPadding(testRandomness(24), plaintext, 21)
	assert.Nil(err)
	assert.Equal(len(blob)+21, len(padded))
	decrypted, err = group.DecryptBlob(padded)
	assert.Nil(err)
	assert.True(bytes.Equal(plaintext, decrypted))

	empty, err := group.EncryptBlob(testRandomness(25), nil)
	assert.Nil(err)
	decrypted, err = group.DecryptBlob(empty)
	assert.Nil(err)
	assert.Len(decrypted, 0)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0x01
	_, err = group.DecryptBlob(tampered)
	assert.ErrorIs(err, ErrVerificationFailure)

	other := GenerateGroupSecretParams(testRandomness(26))
	_, err = other.DecryptBlob(blob)
	assert.ErrorIs(err, ErrVerificationFailure)

	_, err = group.DecryptBlob(blob[:5])
	assert.ErrorIs(err, ErrInvalidEncoding)
	tampered = append([]byte(nil), blob...)
	tampered[0] = 1
	_, err = group.DecryptBlob(tampered)
	assert.ErrorIs(err, ErrInvalidEncoding)
}
