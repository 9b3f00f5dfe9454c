package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

type UidBytes [16]byte

// UidStruct carries the two attribute points of a user id: M1 is a hash of
// the id, M2 its Lizard encoding, which the group uid key can decrypt.
type UidStruct struct {
	Bytes UidBytes
	M1    *ristretto.Point
	M2    *ristretto.Point
}

func NewUidStruct(uid UidBytes) UidStruct {
	var m2 ristretto.Point
	buf := [16]byte(uid)
	m2.SetLizard(&buf)
	return UidStruct{
		Bytes: uid,
		M1:    sho.New([]byte(UID_M1_DOMAIN_TAG), uid[:]).NextPoint(),
		M2:    &m2,
	}
}

// UidFromM2 inverts the Lizard encoding of M2.
func UidFromM2(m2 *ristretto.Point) (UidBytes, error) {
	var buf [16]byte
	if err := m2.LizardInto(&buf); err != nil {
		return UidBytes{}, ErrVerificationFailure
	}
	return UidBytes(buf), nil
}
