package crypto

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/cryptobyte"
)

type profileKeyFixture struct {
	uid        UidStruct
	profileKey ProfileKeyStruct
	commitment CommitmentWithSecretNonce
	holder     RequestKeyPair
	ciphertext RequestCiphertextWithSecretNonce
}

func newProfileKeyFixture(seed byte) profileKeyFixture {
	uid := NewUidStruct(testUid(seed))
	profileKey := NewProfileKeyStruct(testProfileKey(seed), uid.Bytes)
	holder := GenerateRequestKeyPair(testSho(seed + 1))
	return profileKeyFixture{
		uid:        uid,
		profileKey: profileKey,
		commitment: NewCommitmentWithSecretNonce(profileKey, uid.Bytes),
		holder:     holder,
		ciphertext: holder.EncryptProfileKey(profileKey, testSho(seed+2)),
	}
}

func TestProfileKeyCredentialRequestProof(t *testing.T) {
	assert := assert.New(t)

	f := newProfileKeyFixture(40)
	proof, err := NewProfileKeyCredentialRequestProof(f.holder, f.ciphertext, f.commitment, testSho(43))
	assert.Nil(err)
	assert.Nil(proof.Verify(f.holder.PublicKey(), f.ciphertext.Ciphertext, f.commitment.Commitment))

	other := newProfileKeyFixture(50)
	assert.Equal(ErrVerificationFailure, proof.Verify(f.holder.PublicKey(), f.ciphertext.Ciphertext, other.commitment.Commitment))
	assert.Equal(ErrVerificationFailure, proof.Verify(other.holder.PublicKey(), f.ciphertext.Ciphertext, f.commitment.Commitment))

	_, err = NewProfileKeyCredentialRequestProof(f.holder, f.ciphertext, other.commitment, testSho(43))
	assert.NotNil(err)
}

func TestAuthCredentialIssuanceAndPresentation(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[Auth](testSho(60))
	uid := NewUidStruct(testUid(60))
	redemptionTime := uint32(18000)

	cred, err := CreateAuthCredential(kp, uid, redemptionTime, testSho(61))
	assert.Nil(err)
	issuance, err := NewAuthCredentialIssuanceProof(kp, cred, uid, redemptionTime, testSho(62))
	assert.Nil(err)
	assert.Nil(issuance.Verify(kp.PublicKey(), cred, uid, redemptionTime))
	assert.Equal(ErrVerificationFailure, issuance.Verify(kp.PublicKey(), cred, uid, redemptionTime+1))
	assert.Equal(ErrVerificationFailure, issuance.Verify(kp.PublicKey(), cred, NewUidStruct(testUid(61)), redemptionTime))
	other := GenerateKeyPair[Auth](testSho(63))
	assert.Equal(ErrVerificationFailure, issuance.Verify(other.PublicKey(), cred, uid, redemptionTime))

	group := DeriveGroupKeyPair(testSho(64))
	ct := group.PublicKey().EncryptUid(uid, testSho(65))

	v1, err := NewAuthCredentialPresentationProofV1(kp.PublicKey(), group, cred, uid, ct, redemptionTime, testSho(66))
	assert.Nil(err)
	assert.Nil(v1.Verify(kp, group.PublicKey(), ct, redemptionTime))
	assert.Equal(ErrVerificationFailure, v1.Verify(kp, group.PublicKey(), ct, redemptionTime+1))
	assert.Equal(ErrVerificationFailure, v1.Verify(other, group.PublicKey(), ct, redemptionTime))

	v2, err := NewAuthCredentialPresentationProofV2(kp.PublicKey(), group, cred, uid, ct, redemptionTime, testSho(66))
	assert.Nil(err)
	assert.Nil(v2.Verify(kp, group.PublicKey(), ct, redemptionTime))
	assert.NotEqual(v1.Proof, v2.Proof)

	crossed := AuthCredentialPresentationProofV2{v1.presentationProof}
	assert.Equal(ErrVerificationFailure, crossed.Verify(kp, group.PublicKey(), ct, redemptionTime))

	otherGroup := DeriveGroupKeyPair(testSho(67))
	assert.Equal(ErrVerificationFailure, v2.Verify(kp, otherGroup.PublicKey(), ct, redemptionTime))
	otherCt := group.PublicKey().EncryptUid(NewUidStruct(testUid(61)), testSho(68))
	assert.Equal(ErrVerificationFailure, v2.Verify(kp, group.PublicKey(), otherCt, redemptionTime))
}

func TestProfileKeyCredentialIssuanceAndPresentation(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[ProfileKey](testSho(70))
	f := newProfileKeyFixture(71)
	pub := f.holder.PublicKey()
	ct := f.ciphertext.Ciphertext

	blinded, err := CreateBlindedProfileKeyCredential(kp, f.uid, pub, ct, testSho(74))
	assert.Nil(err)
	issuance, err := NewProfileKeyCredentialIssuanceProof(kp, pub, ct, blinded, f.uid, testSho(75))
	assert.Nil(err)
	assert.Nil(issuance.Verify(kp.PublicKey(), pub, ct, blinded.Blinded(), f.uid))
	assert.Equal(ErrVerificationFailure, issuance.Verify(kp.PublicKey(), pub, ct, blinded.Blinded(), NewUidStruct(testUid(1))))

	cred := DecryptBlindedCredential(f.holder, blinded.Blinded())
	group := DeriveGroupKeyPair(testSho(76))
	uidCt := group.PublicKey().EncryptUid(f.uid, testSho(77))
	pkCt := group.PublicKey().EncryptProfileKey(f.profileKey, testSho(78))

	v1, err := NewProfileKeyCredentialPresentationProofV1(kp.PublicKey(), group, cred, f.uid, uidCt, f.profileKey, pkCt, testSho(79))
	assert.Nil(err)
	assert.Nil(v1.Verify(kp, group.PublicKey(), uidCt, pkCt))
	v2, err := NewProfileKeyCredentialPresentationProofV2(kp.PublicKey(), group, cred, f.uid, uidCt, f.profileKey, pkCt, testSho(79))
	assert.Nil(err)
	assert.Nil(v2.Verify(kp, group.PublicKey(), uidCt, pkCt))

	otherPkCt := group.PublicKey().EncryptProfileKey(NewProfileKeyStruct(testProfileKey(9), f.uid.Bytes), testSho(80))
	assert.Equal(ErrVerificationFailure, v2.Verify(kp, group.PublicKey(), uidCt, otherPkCt))

	reencrypted := group.PublicKey().EncryptProfileKey(f.profileKey, testSho(81))
	assert.Equal(ErrVerificationFailure, v1.Verify(kp, group.PublicKey(), uidCt, reencrypted))

	otherUid := NewProfileKeyStruct(f.profileKey.Bytes, testUid(1))
	otherUidCt := group.PublicKey().EncryptProfileKey(otherUid, testSho(82))
	assert.Equal(ErrVerificationFailure, v2.Verify(kp, group.PublicKey(), uidCt, otherUidCt))
	_, err = NewProfileKeyCredentialPresentationProofV2(kp.PublicKey(), group, cred, f.uid, uidCt, f.profileKey, otherUidCt, testSho(83))
	assert.NotNil(err)
}

func TestProfileKeyCredentialV3(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[ProfileKeyV3](testSho(90))
	f := newProfileKeyFixture(91)
	pub := f.holder.PublicKey()
	ct := f.ciphertext.Ciphertext

	blinded, err := CreateBlindedProfileKeyCredentialV3(kp, f.uid, pub, ct, testSho(94))
	assert.Nil(err)
	issuance, err := NewProfileKeyCredentialV3IssuanceProof(kp, pub, ct, blinded, f.uid, testSho(95))
	assert.Nil(err)
	assert.Nil(issuance.Verify(kp.PublicKey(), pub, ct, blinded.Blinded(), f.uid))

	v1kp := GenerateKeyPair[ProfileKey](testSho(90))
	v1Proof := ProfileKeyCredentialIssuanceProof{Proof: issuance.Proof}
	v1Blinded := BlindedCredential[ProfileKey]{t: blinded.t, U: blinded.U, S1: blinded.S1, S2: blinded.S2}
	assert.Equal(ErrVerificationFailure, v1Proof.Verify(v1kp.PublicKey(), pub, ct, v1Blinded, f.uid))

	cred := DecryptBlindedCredential(f.holder, blinded.Blinded())
	group := DeriveGroupKeyPair(testSho(96))
	uidCt := group.PublicKey().EncryptUid(f.uid, testSho(97))
	pkCt := group.PublicKey().EncryptProfileKey(f.profileKey, testSho(98))

	p, err := NewProfileKeyCredentialV3PresentationProof(kp.PublicKey(), group, cred, f.uid, uidCt, f.profileKey, pkCt, testSho(99))
	assert.Nil(err)
	assert.Nil(p.Verify(kp, group.PublicKey(), uidCt, pkCt))

	crossed := ProfileKeyCredentialPresentationProofV2{p.presentationProof}
	assert.Equal(ErrVerificationFailure, crossed.Verify(v1kp, group.PublicKey(), uidCt, pkCt))
}

func TestPniCredential(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[Pni](testSho(100))
	f := newProfileKeyFixture(101)
	pni := NewUidStruct(testUid(200))
	pub := f.holder.PublicKey()
	ct := f.ciphertext.Ciphertext

	blinded, err := CreateBlindedPniCredential(kp, f.uid, pni, pub, ct, testSho(104))
	assert.Nil(err)
	issuance, err := NewPniCredentialIssuanceProof(kp, pub, ct, blinded, f.uid, pni, testSho(105))
	assert.Nil(err)
	assert.Nil(issuance.Verify(kp.PublicKey(), pub, ct, blinded.Blinded(), f.uid, pni))
	assert.Equal(ErrVerificationFailure, issuance.Verify(kp.PublicKey(), pub, ct, blinded.Blinded(), pni, f.uid))

	cred := DecryptBlindedCredential(f.holder, blinded.Blinded())
	group := DeriveGroupKeyPair(testSho(106))
	aciCt := group.PublicKey().EncryptUid(f.uid, testSho(107))
	pkCt := group.PublicKey().EncryptProfileKey(f.profileKey, testSho(108))
	pniCt := group.PublicKey().EncryptUid(pni, testSho(109))

	v1, err := NewPniCredentialPresentationProofV1(kp.PublicKey(), group, cred, f.uid, aciCt, f.profileKey, pkCt, pni, pniCt, testSho(110))
	assert.Nil(err)
	assert.Nil(v1.Verify(kp, group.PublicKey(), aciCt, pkCt, pniCt))
	assert.Equal(ErrVerificationFailure, v1.Verify(kp, group.PublicKey(), pniCt, pkCt, aciCt))

	v2, err := NewPniCredentialPresentationProofV2(kp.PublicKey(), group, cred, f.uid, aciCt, f.profileKey, pkCt, pni, pniCt, testSho(110))
	assert.Nil(err)
	assert.Nil(v2.Verify(kp, group.PublicKey(), aciCt, pkCt, pniCt))

	crossed := PniCredentialPresentationProofV1{v2.presentationProof}
	assert.Equal(ErrVerificationFailure, crossed.Verify(kp, group.PublicKey(), aciCt, pkCt, pniCt))
}

func TestReceiptCredential(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[Receipt](testSho(120))
	holder := GenerateRequestKeyPair(testSho(121))
	receipt := NewReceiptStruct(ReceiptSerialBytes(testUid(120)), 1700000000, 5)
	ct := holder.EncryptReceiptSerial(receipt.Serial, testSho(122))

	blinded, err := CreateBlindedReceiptCredential(kp, holder.PublicKey(), ct.Ciphertext, receipt.ExpirationTime, receipt.Level, testSho(123))
	assert.Nil(err)
	issuance, err := NewReceiptCredentialIssuanceProof(kp, holder.PublicKey(), ct.Ciphertext, blinded, receipt.ExpirationTime, receipt.Level, testSho(124))
	assert.Nil(err)
	assert.Nil(issuance.Verify(kp.PublicKey(), holder.PublicKey(), ct.Ciphertext, blinded.Blinded(), receipt.ExpirationTime, receipt.Level))
	assert.Equal(ErrVerificationFailure, issuance.Verify(kp.PublicKey(), holder.PublicKey(), ct.Ciphertext, blinded.Blinded(), receipt.ExpirationTime, receipt.Level+1))

	cred := DecryptBlindedCredential(holder, blinded.Blinded())
	p, err := NewReceiptCredentialPresentationProof(kp.PublicKey(), cred, receipt, testSho(125))
	assert.Nil(err)
	assert.Nil(p.Verify(kp, receipt))

	forged := receipt
	forged.Level = 6
	assert.Equal(ErrVerificationFailure, p.Verify(kp, forged))
	forged = receipt
	forged.Serial[0] ^= 0x01
	assert.Equal(ErrVerificationFailure, p.Verify(kp, forged))
}

func TestPresentationProofTampered(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[Auth](testSho(130))
	uid := NewUidStruct(testUid(130))
	cred, err := CreateAuthCredential(kp, uid, 100, testSho(131))
	assert.Nil(err)
	group := DeriveGroupKeyPair(testSho(132))
	ct := group.PublicKey().EncryptUid(uid, testSho(133))
	p, err := NewAuthCredentialPresentationProofV2(kp.PublicKey(), group, cred, uid, ct, 100, testSho(134))
	assert.Nil(err)

	for i := 0; i < len(p.Proof); i += 7 {
		tampered := *p
		tampered.Proof = append([]byte(nil), p.Proof...)
		tampered.Proof[i] ^= 0x80
		assert.Equal(ErrVerificationFailure, tampered.Verify(kp, group.PublicKey(), ct, 100))
	}

	swapped := *p
	swapped.CX0, swapped.CX1 = p.CX1, p.CX0
	assert.Equal(ErrVerificationFailure, swapped.Verify(kp, group.PublicKey(), ct, 100))

	short := *p
	short.CY = p.CY[:2]
	assert.Equal(ErrVerificationFailure, short.Verify(kp, group.PublicKey(), ct, 100))
}

func TestCodecRoundTrip(t *testing.T) {
	assert := assert.New(t)

	kp := GenerateKeyPair[Pni](testSho(140))
	var b cryptobyte.Builder
	kp.Encode(&b)
	encoded := b.BytesOrPanic()
	assert.Len(encoded, 32*(4+6))

	var decoded KeyPair[Pni]
	s := cryptobyte.String(encoded)
	assert.True(decoded.Decode(&s))
	assert.True(s.Empty())
	assert.True(decoded.CW.Equals(kp.CW))
	assert.True(decoded.I.Equals(kp.I))

	uid := NewUidStruct(testUid(140))
	cred, err := CreateAuthCredential(GenerateKeyPair[Auth](testSho(141)), uid, 1, testSho(142))
	assert.Nil(err)
	group := DeriveGroupKeyPair(testSho(143))
	ct := group.PublicKey().EncryptUid(uid, testSho(144))
	akp := GenerateKeyPair[Auth](testSho(141))
	p, err := NewAuthCredentialPresentationProofV1(akp.PublicKey(), group, cred, uid, ct, 1, testSho(145))
	assert.Nil(err)

	b = cryptobyte.Builder{}
	p.Encode(&b)
	encoded = b.BytesOrPanic()
	log.Println("auth presentation v1", len(encoded))

	var q AuthCredentialPresentationProofV1
	s = cryptobyte.String(encoded)
	assert.True(q.Decode(&s))
	assert.True(s.Empty())
	assert.Nil(q.Verify(akp, group.PublicKey(), ct, 1))

	s = cryptobyte.String(encoded[:len(encoded)-1])
	assert.False(new(AuthCredentialPresentationProofV1).Decode(&s))

	bad := append([]byte(nil), encoded...)
	bad[96] = maxAttributes + 1
	s = cryptobyte.String(bad)
	assert.False(new(AuthCredentialPresentationProofV1).Decode(&s))

	var noncanonical [32]byte
	for i := range noncanonical {
		noncanonical[i] = 0xff
	}
	s = cryptobyte.String(noncanonical[:])
	assert.False(new(RequestKeyPair).Decode(&s))
}
