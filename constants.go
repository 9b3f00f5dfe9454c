package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
)

const (
	RandomnessLen          = 32
	GroupMasterKeyLen      = 32
	GroupIdentifierLen     = 32
	UuidLen                = 16
	ProfileKeyLen          = 32
	ReceiptSerialLen       = 16
	NotarySignatureLen     = crypto.SignatureLen
	ProfileKeyVersionLen   = 64
	blobNonceLen           = 12
	blobPaddingLengthBytes = 4
)

// Sho labels for the randomness each operation draws from its caller seed.
const (
	SERVER_GENERATE_DOMAIN_TAG             = "Signal_ZKGroup_20200424_Random_ServerSecretParams_Generate"
	ISSUE_AUTH_DOMAIN_TAG                  = "Signal_ZKGroup_20200424_Random_ServerSecretParams_IssueAuthCredential"
	ISSUE_PROFILE_KEY_DOMAIN_TAG           = "Signal_ZKGroup_20200424_Random_ServerSecretParams_IssueProfileKeyCredential"
	ISSUE_PROFILE_KEY_V3_DOMAIN_TAG        = "Signal_ZKGroup_20220508_Random_ServerSecretParams_IssueProfileKeyCredentialV3"
	ISSUE_PNI_DOMAIN_TAG                   = "Signal_ZKGroup_20211111_Random_ServerSecretParams_IssuePniCredential"
	ISSUE_RECEIPT_DOMAIN_TAG               = "Signal_ZKGroup_20210919_Random_ServerSecretParams_IssueReceiptCredential"
	AUTH_PRESENTATION_V1_DOMAIN_TAG        = "Signal_ZKGroup_20200424_Random_ServerPublicParams_CreateAuthCredentialPresentation"
	AUTH_PRESENTATION_V2_DOMAIN_TAG        = "Signal_ZKGroup_20220120_Random_ServerPublicParams_CreateAuthCredentialPresentationV2"
	PROFILE_KEY_REQUEST_DOMAIN_TAG         = "Signal_ZKGroup_20200424_Random_ServerPublicParams_CreateProfileKeyCredentialRequestContext"
	PROFILE_KEY_V3_REQUEST_DOMAIN_TAG      = "Signal_ZKGroup_20220528_Random_ServerPublicParams_CreateProfileKeyCredentialV3RequestContext"
	PROFILE_KEY_PRESENTATION_V1_DOMAIN_TAG = "Signal_ZKGroup_20200424_Random_ServerPublicParams_CreateProfileKeyCredentialPresentation"
	PROFILE_KEY_PRESENTATION_V2_DOMAIN_TAG = "Signal_ZKGroup_20220120_Random_ServerPublicParams_CreateProfileKeyCredentialPresentationV2"
	PROFILE_KEY_V3_PRESENTATION_DOMAIN_TAG = "Signal_ZKGroup_20220508_Random_ServerPublicParams_CreateProfileKeyCredentialV3Presentation"
	PNI_PRESENTATION_V1_DOMAIN_TAG         = "Signal_ZKGroup_20211111_Random_ServerPublicParams_CreatePniCredentialPresentation"
	PNI_PRESENTATION_V2_DOMAIN_TAG         = "Signal_ZKGroup_20220120_Random_ServerPublicParams_CreatePniCredentialPresentationV2"
	RECEIPT_REQUEST_DOMAIN_TAG             = "Signal_ZKGroup_20210919_Random_ServerPublicParams_CreateReceiptCredentialRequestContext"
	RECEIPT_PRESENTATION_DOMAIN_TAG        = "Signal_ZKGroup_20210919_Random_ServerPublicParams_CreateReceiptCredentialPresentation"
	GROUP_GENERATE_DOMAIN_TAG              = "Signal_ZKGroup_20200424_Random_GroupSecretParams_Generate"
	GROUP_ENCRYPT_UUID_DOMAIN_TAG          = "Signal_ZKGroup_20220601_Random_GroupSecretParams_EncryptUuid"
	GROUP_ENCRYPT_PROFILE_KEY_DOMAIN_TAG   = "Signal_ZKGroup_20220601_Random_GroupSecretParams_EncryptProfileKey"
	GROUP_ENCRYPT_BLOB_DOMAIN_TAG          = "Signal_ZKGroup_20200424_Random_GroupSecretParams_EncryptBlob"
	GROUP_IDENTIFIER_DOMAIN_TAG            = "Signal_ZKGroup_20200424_GroupPublicParams_Identifier"
	GROUP_BLOB_KEY_DOMAIN_TAG              = "Signal_ZKGroup_20200424_GroupSecretParams_BlobKey"
	PROFILE_KEY_GENERATE_DOMAIN_TAG        = "Signal_ZKGroup_20200424_Random_ProfileKey_Generate"
	PROFILE_KEY_VERSION_DOMAIN_TAG         = "Signal_ZKGroup_20200424_ProfileKeyAndUid_ProfileKey_GetProfileKeyVersion"
)

// Leading tag of every encoded object. Presentations use the version tags,
// everything else is reserved and must be zero.
const RESERVED_TAG byte = 0

const (
	PRESENTATION_VERSION_1           = crypto.PRESENTATION_VERSION_1
	PRESENTATION_VERSION_2           = crypto.PRESENTATION_VERSION_2
	PROFILE_KEY_CREDENTIAL_VERSION_3 = crypto.PROFILE_KEY_CREDENTIAL_VERSION_3
)

type RandomnessBytes [RandomnessLen]byte

type NotarySignatureBytes [NotarySignatureLen]byte

type GroupMasterKey [GroupMasterKeyLen]byte

type GroupIdentifier [GroupIdentifierLen]byte

type (
	UidBytes           = crypto.UidBytes
	ProfileKeyBytes    = crypto.ProfileKeyBytes
	ReceiptSerialBytes = crypto.ReceiptSerialBytes
)

// RedemptionTime counts days since the Unix epoch.
type RedemptionTime = uint32

type ReceiptExpirationTime = uint64

type ReceiptLevel = uint64
