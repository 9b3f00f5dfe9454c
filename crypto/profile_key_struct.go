package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

type ProfileKeyBytes [32]byte

// ProfileKeyStruct carries the attribute points of a profile key bound to a
// uid: M3 hashes both, M4 is the Elligator image of the masked key.
type ProfileKeyStruct struct {
	Bytes ProfileKeyBytes
	M3    *ristretto.Point
	M4    *ristretto.Point
}

func NewProfileKeyStruct(profileKey ProfileKeyBytes, uid UidBytes) ProfileKeyStruct {
	input := make([]byte, 0, 48)
	input = append(input, profileKey[:]...)
	input = append(input, uid[:]...)
	m3 := sho.New([]byte(PROFILE_KEY_M3_DOMAIN_TAG), input).NextPointSingleElligator()

	masked := [32]byte(profileKey)
	masked[0] &= 254
	masked[31] &= 63
	var m4 ristretto.Point
	m4.SetElligator(&masked)

	return ProfileKeyStruct{Bytes: profileKey, M3: m3, M4: &m4}
}

// plaintext is the point a group encrypts for this key and uid.
func (pk ProfileKeyStruct) plaintext() *ristretto.Point {
	return pointAdd(pk.M3, pk.M4)
}
