package api

import (
	"crypto/subtle"

	"github.com/MixinNetwork/zkgroup-go/crypto"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/pkg/errors"
)

// GroupSecretParams are shared by every member of a group and derived from
// its master key. They encrypt member uids and profile keys for the server.
type GroupSecretParams struct {
	masterKey GroupMasterKey
	keys      crypto.GroupKeyPair
	blobKey   [32]byte
}

type GroupPublicParams struct {
	identifier GroupIdentifier
	keys       crypto.GroupPublicKey
}

type UuidCiphertext struct {
	ciphertext crypto.UidCiphertext
}

type ProfileKeyCiphertext struct {
	ciphertext crypto.ProfileKeyCiphertext
}

func GenerateGroupSecretParams(randomness RandomnessBytes) *GroupSecretParams {
	var masterKey GroupMasterKey
	copy(masterKey[:], newSho(GROUP_GENERATE_DOMAIN_TAG, randomness).NextBytes(GroupMasterKeyLen))
	return DeriveGroupSecretParams(masterKey)
}

func DeriveGroupSecretParams(masterKey GroupMasterKey) *GroupSecretParams {
	s := sho.New([]byte(crypto.GROUP_KEY_DERIVE_DOMAIN_TAG), masterKey[:])
	params := &GroupSecretParams{
		masterKey: masterKey,
		keys:      crypto.DeriveGroupKeyPair(s),
	}
	copy(params.blobKey[:], s.NextBytes(32))
	return params
}

func (g *GroupSecretParams) MasterKey() GroupMasterKey {
	return g.masterKey
}

func (g *GroupSecretParams) PublicParams() *GroupPublicParams {
	keys := g.keys.PublicKey()
	return &GroupPublicParams{identifier: groupIdentifier(keys), keys: keys}
}

func (g *GroupPublicParams) Identifier() GroupIdentifier {
	return g.identifier
}

// EncryptUUID is randomized: two encryptions of one uid are unlinkable
// without the group key.
func (g *GroupSecretParams) EncryptUUID(randomness RandomnessBytes, uid UidBytes) *UuidCiphertext {
	return g.EncryptUidStruct(randomness, crypto.NewUidStruct(uid))
}

func (g *GroupSecretParams) EncryptUidStruct(randomness RandomnessBytes, uid crypto.UidStruct) *UuidCiphertext {
	return g.encryptUid(newSho(GROUP_ENCRYPT_UUID_DOMAIN_TAG, randomness), uid)
}

func (g *GroupSecretParams) encryptUid(s *sho.Sho, uid crypto.UidStruct) *UuidCiphertext {
	return &UuidCiphertext{ciphertext: g.keys.PublicKey().EncryptUid(uid, s)}
}

func (g *GroupSecretParams) DecryptUUID(ct *UuidCiphertext) (UidBytes, error) {
	return g.keys.DecryptUid(ct.ciphertext)
}

func (g *GroupSecretParams) EncryptProfileKey(randomness RandomnessBytes, profileKey ProfileKey, uid UidBytes) *ProfileKeyCiphertext {
	return g.encryptProfileKey(newSho(GROUP_ENCRYPT_PROFILE_KEY_DOMAIN_TAG, randomness), profileKey.bytes, uid)
}

func (g *GroupSecretParams) encryptProfileKey(s *sho.Sho, profileKey ProfileKeyBytes, uid UidBytes) *ProfileKeyCiphertext {
	pk := crypto.NewProfileKeyStruct(profileKey, uid)
	return &ProfileKeyCiphertext{ciphertext: g.keys.PublicKey().EncryptProfileKey(pk, s)}
}

// DecryptProfileKey checks ct against the profile key the caller expects for
// uid, usually the one from the member's own profile.
func (g *GroupSecretParams) DecryptProfileKey(ct *ProfileKeyCiphertext, candidate ProfileKey, uid UidBytes) (ProfileKey, error) {
	pk, err := g.keys.DecryptProfileKey(ct.ciphertext, candidate.bytes, uid)
	if err != nil {
		return ProfileKey{}, err
	}
	return ProfileKey{bytes: pk}, nil
}

func (g *GroupSecretParams) Zeroize() {
	g.keys.Zeroize()
	for i := range g.masterKey {
		g.masterKey[i] = 0
	}
	for i := range g.blobKey {
		g.blobKey[i] = 0
	}
}

func (g *GroupSecretParams) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, addBytes(g.masterKey[:]))
}

func (g *GroupSecretParams) UnmarshalBinary(data []byte) error {
	var masterKey GroupMasterKey
	err := unmarshal(data, RESERVED_TAG, "group secret params", readBytes(masterKey[:]))
	if err != nil {
		return err
	}
	*g = *DeriveGroupSecretParams(masterKey)
	return nil
}

func (g *GroupPublicParams) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, addBytes(g.identifier[:]), g.keys.Encode)
}

// UnmarshalBinary rejects an identifier that does not match the keys.
func (g *GroupPublicParams) UnmarshalBinary(data []byte) error {
	var params GroupPublicParams
	err := unmarshal(data, RESERVED_TAG, "group public params", readBytes(params.identifier[:]), params.keys.Decode)
	if err != nil {
		return err
	}
	id := groupIdentifier(params.keys)
	if subtle.ConstantTimeCompare(id[:], params.identifier[:]) != 1 {
		return errors.Wrap(ErrInvalidEncoding, "group public params: identifier")
	}
	*g = params
	return nil
}

func (c *UuidCiphertext) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.ciphertext.Encode)
}

func (c *UuidCiphertext) UnmarshalBinary(data []byte) error {
	var ct UuidCiphertext
	if err := unmarshal(data, RESERVED_TAG, "uuid ciphertext", ct.ciphertext.Decode); err != nil {
		return err
	}
	*c = ct
	return nil
}

func (c *ProfileKeyCiphertext) MarshalBinary() ([]byte, error) {
	return marshal(RESERVED_TAG, c.ciphertext.Encode)
}

func (c *ProfileKeyCiphertext) UnmarshalBinary(data []byte) error {
	var ct ProfileKeyCiphertext
	if err := unmarshal(data, RESERVED_TAG, "profile key ciphertext", ct.ciphertext.Decode); err != nil {
		return err
	}
	*c = ct
	return nil
}
