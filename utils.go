package api

import (
	"encoding/hex"

	"github.com/MixinNetwork/zkgroup-go/crypto"
	"github.com/dchest/blake2b"
)

func groupIdentifier(keys crypto.GroupPublicKey) GroupIdentifier {
	hash := blake2b.New256()
	hash.Write([]byte(GROUP_IDENTIFIER_DOMAIN_TAG))
	hash.Write(keys.A.Bytes())
	hash.Write(keys.B.Bytes())
	var id GroupIdentifier
	copy(id[:], hash.Sum(nil))
	return id
}

func profileKeyVersion(profileKey ProfileKeyBytes, uid UidBytes) string {
	hash := blake2b.New256()
	hash.Write([]byte(PROFILE_KEY_VERSION_DOMAIN_TAG))
	hash.Write(profileKey[:])
	hash.Write(uid[:])
	return hex.EncodeToString(hash.Sum(nil))
}
