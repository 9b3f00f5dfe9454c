package crypto

const (
	CREDENTIALS_SYSTEM_PARAMS_DOMAIN_TAG     = "Signal_ZKGroup_20200424_Constant_Credentials_SystemParams_Generate"
	CREDENTIALS_V3_SYSTEM_PARAMS_DOMAIN_TAG  = "Signal_ZKGroup_20220508_Constant_Credentials_SystemParams_Generate_V3"
	COMMITMENT_SYSTEM_PARAMS_DOMAIN_TAG      = "Signal_ZKGroup_20200424_Constant_ProfileKeyCommitment_SystemParams_Generate"
	UID_ENCRYPTION_PARAMS_DOMAIN_TAG         = "Signal_ZKGroup_20200424_Constant_UidEncryption_SystemParams_Generate"
	PROFILE_KEY_ENCRYPTION_PARAMS_DOMAIN_TAG = "Signal_ZKGroup_20200424_Constant_ProfileKeyEncryption_SystemParams_Generate"

	UID_M1_DOMAIN_TAG            = "Signal_ZKGroup_20200424_UID_CalcM1"
	PROFILE_KEY_M3_DOMAIN_TAG    = "Signal_ZKGroup_20200424_ProfileKeyStruct_CalcM3"
	PROFILE_KEY_J3_DOMAIN_TAG    = "Signal_ZKGroup_20200424_ProfileKeyCommitment_Calcj3"
	RECEIPT_SERIAL_DOMAIN_TAG    = "Signal_ZKGroup_20210919_ReceiptStruct_CalcM2"
	GROUP_KEY_DERIVE_DOMAIN_TAG  = "Signal_ZKGroup_20200424_GroupMasterKey_GroupSecretParams_DeriveFromMasterKey"
	SIGNATURE_KEY_DOMAIN_TAG     = "Signal_ZKGroup_20200424_Signature_KeyPair_Generate"
	SIGNATURE_CONTEXT_DOMAIN_TAG = "Signal_ZKGroup_20200424_NotarySignature"
	SIGNATURE_NONCE_DOMAIN_TAG   = "Signal_ZKGroup_20200424_NotarySignature_Nonce"

	REQUEST_PROOF_DOMAIN_TAG = "Signal_ZKGroup_20200424_POKSHO_ProfileKeyCredentialRequestProof"

	AUTH_ISSUANCE_PROOF_DOMAIN_TAG           = "Signal_ZKGroup_20200424_POKSHO_AuthCredentialIssuanceProof"
	PROFILE_KEY_ISSUANCE_PROOF_DOMAIN_TAG    = "Signal_ZKGroup_20200424_POKSHO_ProfileKeyCredentialIssuanceProof"
	PROFILE_KEY_V3_ISSUANCE_PROOF_DOMAIN_TAG = "Signal_ZKGroup_20220508_POKSHO_ProfileKeyCredentialV3IssuanceProof"
	PNI_ISSUANCE_PROOF_DOMAIN_TAG            = "Signal_ZKGroup_20211111_POKSHO_PniCredentialIssuanceProof"
	RECEIPT_ISSUANCE_PROOF_DOMAIN_TAG        = "Signal_ZKGroup_20210919_POKSHO_ReceiptCredentialIssuanceProof"

	AUTH_PRESENTATION_V1_DOMAIN_TAG        = "Signal_ZKGroup_20200424_POKSHO_AuthCredentialPresentationProofV1"
	AUTH_PRESENTATION_V2_DOMAIN_TAG        = "Signal_ZKGroup_20220120_POKSHO_AuthCredentialPresentationProofV2"
	PROFILE_KEY_PRESENTATION_V1_DOMAIN_TAG = "Signal_ZKGroup_20200424_POKSHO_ProfileKeyCredentialPresentationProofV1"
	PROFILE_KEY_PRESENTATION_V2_DOMAIN_TAG = "Signal_ZKGroup_20220120_POKSHO_ProfileKeyCredentialPresentationProofV2"
	PROFILE_KEY_V3_PRESENTATION_DOMAIN_TAG = "Signal_ZKGroup_20220508_POKSHO_ProfileKeyCredentialV3PresentationProof"
	PNI_PRESENTATION_V1_DOMAIN_TAG         = "Signal_ZKGroup_20211111_POKSHO_PniCredentialPresentationProofV1"
	PNI_PRESENTATION_V2_DOMAIN_TAG         = "Signal_ZKGroup_20220120_POKSHO_PniCredentialPresentationProofV2"
	RECEIPT_PRESENTATION_DOMAIN_TAG        = "Signal_ZKGroup_20210919_POKSHO_ReceiptCredentialPresentationProof"
)

// Presentation version tags, carried as the first byte of every presentation.
const (
	PRESENTATION_VERSION_1           byte = 0
	PRESENTATION_VERSION_2           byte = 1
	PROFILE_KEY_CREDENTIAL_VERSION_3 byte = 2
)
