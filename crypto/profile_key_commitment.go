package crypto

import (
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

// ProfileKeyCommitment is J1 = j3·G_j1 + M3, J2 = j3·G_j2 + M4, J3 = j3·G_j3.
type ProfileKeyCommitment struct {
	J1 *ristretto.Point
	J2 *ristretto.Point
	J3 *ristretto.Point
}

type CommitmentWithSecretNonce struct {
	Commitment ProfileKeyCommitment
	j3         *ristretto.Scalar
}

// NewCommitmentWithSecretNonce is deterministic in (profile key, uid), so a
// commitment can be published once and recomputed by its owner.
func NewCommitmentWithSecretNonce(pk ProfileKeyStruct, uid UidBytes) CommitmentWithSecretNonce {
	params := CommitmentSystemParams()
	input := make([]byte, 0, 48)
	input = append(input, pk.Bytes[:]...)
	input = append(input, uid[:]...)
	j3 := sho.New([]byte(PROFILE_KEY_J3_DOMAIN_TAG), input).NextScalar()

	return CommitmentWithSecretNonce{
		Commitment: ProfileKeyCommitment{
			J1: pointAdd(scalarMul(params.GJ1, j3), pk.M3),
			J2: pointAdd(scalarMul(params.GJ2, j3), pk.M4),
			J3: scalarMul(params.GJ3, j3),
		},
		j3: j3,
	}
}

func (c ProfileKeyCommitment) Equals(o ProfileKeyCommitment) bool {
	return pointsEqual(c.J1, o.J1) && pointsEqual(c.J2, o.J2) && pointsEqual(c.J3, o.J3)
}

func (c *CommitmentWithSecretNonce) Zeroize() {
	zeroizeScalar(c.j3)
}
