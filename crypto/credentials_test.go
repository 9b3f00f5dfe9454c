package crypto

import (
	"bytes"
	"testing"

	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
)

func testSho(seed byte) *sho.Sho {
	return sho.New([]byte("ZKGroup_Test_Crypto"), bytes.Repeat([]byte{seed}, 32))
}

func testUid(seed byte) UidBytes {
	var uid UidBytes
	for i := range uid {
		uid[i] = seed + byte(i)
	}
	return uid
}

func testProfileKey(seed byte) ProfileKeyBytes {
	var pk ProfileKeyBytes
	for i := range pk {
		pk[i] = seed ^ byte(i*7)
	}
	return pk
}

func TestSystemParams(t *testing.T) {
	assert := assert.New(t)

	sp := CredentialsSystemParams()
	assert.Same(sp, CredentialsSystemParams())
	v3 := CredentialsV3SystemParams()
	assert.False(sp.GW.Equals(v3.GW))

	seen := make(map[string]bool)
	points := []*ristretto.Point{sp.GW, sp.GWPrime, sp.GX0, sp.GX1, sp.GV, sp.GM[0], sp.GM[1]}
	points = append(points, sp.GY[:]...)
	for _, p := range points {
		assert.False(isIdentity(p))
		key := string(p.Bytes())
		assert.False(seen[key])
		seen[key] = true
	}

	cp := CommitmentSystemParams()
	assert.False(cp.GJ1.Equals(cp.GJ2))
	ep := EncryptionSystemParams()
	assert.False(ep.GA.Equals(ep.GB))
}

func TestKeyPairDeterministic(t *testing.T) {
	assert := assert.New(t)

	a := GenerateKeyPair[Auth](testSho(1))
	b := GenerateKeyPair[Auth](testSho(1))
	assert.True(a.CW.Equals(b.CW))
	assert.True(a.I.Equals(b.I))

	c := GenerateKeyPair[Auth](testSho(2))
	assert.False(a.CW.Equals(c.CW))

	pk := GenerateKeyPair[ProfileKey](testSho(1))
	v3 := GenerateKeyPair[ProfileKeyV3](testSho(1))
	assert.True(pk.W.Equals(scalarMul(CredentialsSystemParams().GW, pk.w)))
	assert.False(pk.I.Equals(v3.I))
}

func TestBlindedProfileKeyCredential(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[ProfileKey](testSho(3))
	uid := NewUidStruct(testUid(1))
	profileKey := NewProfileKeyStruct(testProfileKey(2), uid.Bytes)

	holder := GenerateRequestKeyPair(testSho(4))
	ct := holder.EncryptProfileKey(profileKey, testSho(5))

	blinded, err := CreateBlindedProfileKeyCredential(kp, uid, holder.PublicKey(), ct.Ciphertext, testSho(6))
	assert.Nil(err)
	cred := DecryptBlindedCredential(holder, blinded.Blinded())

	expected := kp.mac(cred.t, cred.U, profileKeyAttributes(uid, profileKey))
	assert.True(expected.Equals(cred.V))

	other := GenerateRequestKeyPair(testSho(7))
	wrong := DecryptBlindedCredential(other, blinded.Blinded())
	assert.False(expected.Equals(wrong.V))
}

func TestBlindedPniAndReceiptCredential(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[Pni](testSho(8))
	aci := NewUidStruct(testUid(1))
	pni := NewUidStruct(testUid(100))
	profileKey := NewProfileKeyStruct(testProfileKey(3), aci.Bytes)
	holder := GenerateRequestKeyPair(testSho(9))
	ct := holder.EncryptProfileKey(profileKey, testSho(10))

	blinded, err := CreateBlindedPniCredential(kp, aci, pni, holder.PublicKey(), ct.Ciphertext, testSho(11))
	assert.Nil(err)
	cred := DecryptBlindedCredential(holder, blinded.Blinded())
	assert.True(kp.mac(cred.t, cred.U, pniAttributes(aci, profileKey, pni)).Equals(cred.V))

	rkp := GenerateKeyPair[Receipt](testSho(12))
	receipt := NewReceiptStruct(ReceiptSerialBytes(testUid(7)), 86400*30, 3)
	rct := holder.EncryptReceiptSerial(receipt.Serial, testSho(13))
	rblinded, err := CreateBlindedReceiptCredential(rkp, holder.PublicKey(), rct.Ciphertext, receipt.ExpirationTime, receipt.Level, testSho(14))
	assert.Nil(err)
	rcred := DecryptBlindedCredential(holder, rblinded.Blinded())
	assert.True(rkp.mac(rcred.t, rcred.U, receiptAttributes(receipt)).Equals(rcred.V))
}

func TestBlindedCredentialRejectsIdentity(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[ProfileKey](testSho(15))
	uid := NewUidStruct(testUid(1))
	holder := GenerateRequestKeyPair(testSho(16))
	ct := holder.EncryptProfileKey(NewProfileKeyStruct(testProfileKey(1), uid.Bytes), testSho(17))

	var zero ristretto.Point
	zero.SetZero()
	_, err := CreateBlindedProfileKeyCredential(kp, uid, RequestPublicKey{Y: &zero}, ct.Ciphertext, testSho(18))
	assert.Equal(ErrVerificationFailure, err)

	bad := ct.Ciphertext
	bad.D1 = &zero
	_, err = CreateBlindedProfileKeyCredential(kp, uid, holder.PublicKey(), bad, testSho(18))
	assert.Equal(ErrVerificationFailure, err)
}

func TestUidAndProfileKeyStructs(t *testing.T) {
	assert := assert.New(t)

	uid := NewUidStruct(testUid(9))
	decoded, err := UidFromM2(uid.M2)
	assert.Nil(err)
	assert.Equal(uid.Bytes, decoded)
	assert.True(uid.M1.Equals(NewUidStruct(testUid(9)).M1))

	a := NewProfileKeyStruct(testProfileKey(1), testUid(1))
	b := NewProfileKeyStruct(testProfileKey(1), testUid(2))
	assert.False(a.M3.Equals(b.M3))
	assert.True(a.M4.Equals(b.M4))

	c := NewCommitmentWithSecretNonce(a, testUid(1))
	d := NewCommitmentWithSecretNonce(a, testUid(1))
	assert.True(c.Commitment.Equals(d.Commitment))
	e := NewCommitmentWithSecretNonce(b, testUid(2))
	assert.False(c.Commitment.Equals(e.Commitment))
}

func TestGroupEncryption(t *testing.T) {
	assert := assert.New(t)

	group := DeriveGroupKeyPair(testSho(20))
	uid := NewUidStruct(testUid(3))
	first := group.PublicKey().EncryptUid(uid, testSho(21))
	second := group.PublicKey().EncryptUid(uid, testSho(22))
	assert.False(first.E2.Equals(second.E2))

	decrypted, err := group.DecryptUid(first)
	assert.Nil(err)
	assert.Equal(uid.Bytes, decrypted)
	decrypted, err = group.DecryptUid(second)
	assert.Nil(err)
	assert.Equal(uid.Bytes, decrypted)

	other := DeriveGroupKeyPair(testSho(23))
	decrypted, err = other.DecryptUid(first)
	if err == nil {
		assert.NotEqual(uid.Bytes, decrypted)
	}

	profileKey := NewProfileKeyStruct(testProfileKey(4), uid.Bytes)
	pkCt := group.PublicKey().EncryptProfileKey(profileKey, testSho(24))
	found, err := group.DecryptProfileKey(pkCt, profileKey.Bytes, uid.Bytes)
	assert.Nil(err)
	assert.Equal(profileKey.Bytes, found)
	_, err = group.DecryptProfileKey(pkCt, testProfileKey(5), uid.Bytes)
	assert.Equal(ErrVerificationFailure, err)
	_, err = group.DecryptProfileKey(pkCt, profileKey.Bytes, testUid(6))
	assert.Equal(ErrVerificationFailure, err)

	otherUid := NewProfileKeyStruct(profileKey.Bytes, testUid(6))
	otherCt := group.PublicKey().EncryptProfileKey(otherUid, testSho(24))
	assert.True(pkCt.E1.Equals(otherCt.E1))
	assert.False(pkCt.E2.Equals(otherCt.E2))
	found, err = group.DecryptProfileKey(otherCt, profileKey.Bytes, testUid(6))
	assert.Nil(err)
	assert.Equal(profileKey.Bytes, found)
}

func TestSignature(t *testing.T) {
	assert := assert.New(t)

	kp, err := GenerateSignatureKeyPair(testSho(30))
	assert.Nil(err)
	again, err := NewSignatureKeyPairFromSeed(kp.Seed())
	assert.Nil(err)
	assert.Equal(kp.PublicKey().Bytes(), again.PublicKey().Bytes())

	message := []byte("server public params")
	sig, err := kp.Sign(testSho(32).NextBytes(32), message)
	assert.Nil(err)
	pub := NewSignaturePublicKey(kp.PublicKey().Bytes())
	assert.Nil(pub.Verify(message, sig))
	same, err := again.Sign(testSho(32).NextBytes(32), message)
	assert.Nil(err)
	assert.Equal(sig, same)
	fresh, err := kp.Sign(testSho(33).NextBytes(32), message)
	assert.Nil(err)
	assert.NotEqual(sig, fresh)
	assert.Nil(pub.Verify(message, fresh))
	assert.Equal(ErrVerificationFailure, pub.Verify([]byte("other"), sig))

	sig[3] ^= 0x01
	assert.Equal(ErrVerificationFailure, pub.Verify(message, sig))

	other, err := GenerateSignatureKeyPair(testSho(31))
	assert.Nil(err)
	sig, err = other.Sign(testSho(34).NextBytes(32), message)
	assert.Nil(err)
	assert.Equal(ErrVerificationFailure, pub.Verify(message, sig))

	kp.Zeroize()
	_, err = kp.Sign(testSho(35).NextBytes(32), message)
	assert.Equal(ErrVerificationFailure, err)
	assert.Equal(ErrVerificationFailure, SignaturePublicKey{}.Verify(message, fresh))
}
