package crypto

import (
	"strconv"

	"github.com/MixinNetwork/zkgroup-go/poksho"
	"github.com/MixinNetwork/zkgroup-go/sho"
)

// relation is one (kind, version) proof: its Fiat–Shamir label, the Sho
// flavour of its transcript and the message bound into the challenge.
type relation struct {
	label      string
	transcript poksho.Transcript
	message    []byte
}

var (
	requestRelation = relation{label: REQUEST_PROOF_DOMAIN_TAG, transcript: sho.New}

	authIssuanceRelation         = relation{label: AUTH_ISSUANCE_PROOF_DOMAIN_TAG, transcript: sho.New}
	profileKeyIssuanceRelation   = relation{label: PROFILE_KEY_ISSUANCE_PROOF_DOMAIN_TAG, transcript: sho.New}
	profileKeyV3IssuanceRelation = relation{label: PROFILE_KEY_V3_ISSUANCE_PROOF_DOMAIN_TAG, transcript: sho.NewBlake2b}
	pniIssuanceRelation          = relation{label: PNI_ISSUANCE_PROOF_DOMAIN_TAG, transcript: sho.New}
	receiptIssuanceRelation      = relation{label: RECEIPT_ISSUANCE_PROOF_DOMAIN_TAG, transcript: sho.New}

	authPresentationV1Relation = relation{label: AUTH_PRESENTATION_V1_DOMAIN_TAG, transcript: sho.New}
	authPresentationV2Relation = relation{
		label:      AUTH_PRESENTATION_V2_DOMAIN_TAG,
		transcript: sho.NewBlake2b,
		message:    []byte{PRESENTATION_VERSION_2},
	}
	profileKeyPresentationV1Relation = relation{label: PROFILE_KEY_PRESENTATION_V1_DOMAIN_TAG, transcript: sho.New}
	profileKeyPresentationV2Relation = relation{
		label:      PROFILE_KEY_PRESENTATION_V2_DOMAIN_TAG,
		transcript: sho.NewBlake2b,
		message:    []byte{PRESENTATION_VERSION_2},
	}
	profileKeyV3PresentationRelation = relation{
		label:      PROFILE_KEY_V3_PRESENTATION_DOMAIN_TAG,
		transcript: sho.NewBlake2b,
		message:    []byte{PROFILE_KEY_CREDENTIAL_VERSION_3},
	}
	pniPresentationV1Relation = relation{label: PNI_PRESENTATION_V1_DOMAIN_TAG, transcript: sho.New}
	pniPresentationV2Relation = relation{
		label:      PNI_PRESENTATION_V2_DOMAIN_TAG,
		transcript: sho.NewBlake2b,
		message:    []byte{PRESENTATION_VERSION_2},
	}
	receiptPresentationRelation = relation{label: RECEIPT_PRESENTATION_DOMAIN_TAG, transcript: sho.New}
)

func (r relation) statement() *poksho.Statement {
	return poksho.NewStatement(r.label, r.transcript)
}

func yName(i int) string    { return "y" + strconv.Itoa(i+1) }
func yGenName(i int) string { return "G_y" + strconv.Itoa(i+1) }
func mName(i int) string    { return "M" + strconv.Itoa(i+1) }
func cyName(i int) string   { return "C_y" + strconv.Itoa(i+1) }

// proveWith draws the prover randomness from s.
func proveWith(st *poksho.Statement, scalars poksho.ScalarArgs, points poksho.PointArgs, message []byte, s *sho.Sho) ([]byte, error) {
	return st.Prove(scalars, points, message, s.NextBytes(32))
}

func verifyWith(st *poksho.Statement, proof []byte, points poksho.PointArgs, message []byte) error {
	if st.Verify(proof, points, message) != nil {
		return ErrVerificationFailure
	}
	return nil
}
