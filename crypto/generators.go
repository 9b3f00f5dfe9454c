package crypto

import (
	"sync"

	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

const maxAttributes = 6

// SystemParams are the credential generators. They are computed once and
// shared; callers must never use them as a receiver.
type SystemParams struct {
	GW      *ristretto.Point
	GWPrime *ristretto.Point
	GX0     *ristretto.Point
	GX1     *ristretto.Point
	GY      [maxAttributes]*ristretto.Point
	GM      [2]*ristretto.Point
	GV      *ristretto.Point
}

type CommitmentParams struct {
	GJ1 *ristretto.Point
	GJ2 *ristretto.Point
	GJ3 *ristretto.Point
}

// EncryptionParams hold the bases of the group uid (GA) and profile key (GB)
// keys.
type EncryptionParams struct {
	GA *ristretto.Point
	GB *ristretto.Point
}

var (
	credentialsOnce     sync.Once
	credentialsParams   *SystemParams
	credentialsV3Once   sync.Once
	credentialsV3Params *SystemParams
	commitmentOnce      sync.Once
	commitmentParams    *CommitmentParams
	encryptionOnce      sync.Once
	encryptionParams    *EncryptionParams
)

func CredentialsSystemParams() *SystemParams {
	credentialsOnce.Do(func() {
		credentialsParams = newSystemParams(CREDENTIALS_SYSTEM_PARAMS_DOMAIN_TAG)
	})
	return credentialsParams
}

func CredentialsV3SystemParams() *SystemParams {
	credentialsV3Once.Do(func() {
		credentialsV3Params = newSystemParams(CREDENTIALS_V3_SYSTEM_PARAMS_DOMAIN_TAG)
	})
	return credentialsV3Params
}

func CommitmentSystemParams() *CommitmentParams {
	commitmentOnce.Do(func() {
		s := sho.New([]byte(COMMITMENT_SYSTEM_PARAMS_DOMAIN_TAG), nil)
		commitmentParams = &CommitmentParams{
			GJ1: s.NextPoint(),
			GJ2: s.NextPoint(),
			GJ3: s.NextPoint(),
		}
	})
	return commitmentParams
}

func EncryptionSystemParams() *EncryptionParams {
	encryptionOnce.Do(func() {
		encryptionParams = &EncryptionParams{
			GA: sho.New([]byte(UID_ENCRYPTION_PARAMS_DOMAIN_TAG), nil).NextPoint(),
			GB: sho.New([]byte(PROFILE_KEY_ENCRYPTION_PARAMS_DOMAIN_TAG), nil).NextPoint(),
		}
	})
	return encryptionParams
}

func newSystemParams(label string) *SystemParams {
	s := sho.New([]byte(label), nil)
	sp := &SystemParams{
		GW:      s.NextPoint(),
		GWPrime: s.NextPoint(),
		GX0:     s.NextPoint(),
		GX1:     s.NextPoint(),
	}
	for i := range sp.GY {
		sp.GY[i] = s.NextPoint()
	}
	for i := range sp.GM {
		sp.GM[i] = s.NextPoint()
	}
	sp.GV = s.NextPoint()
	return sp
}

// pointArgs names the generators the way every proof statement refers to
// them: G_w, G_wprime, G_x0, G_x1, G_V and G_y1 … G_yn.
func (sp *SystemParams) pointArgs(points poksho.PointArgs, n int) {
	points["G_w"] = sp.GW
	points["G_wprime"] = sp.GWPrime
	points["G_x0"] = sp.GX0
	points["G_x1"] = sp.GX1
	points["G_V"] = sp.GV
	for i := 0; i < n; i++ {
		points[yGenName(i)] = sp.GY[i]
	}
}
