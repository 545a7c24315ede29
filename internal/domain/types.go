package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet || chain == ChainEthereumSepolia
}

// AssetStatus represents the lifecycle state of an IP asset
type AssetStatus string

const (
	// AssetStatusDraft is the initial state before approval
	AssetStatusDraft AssetStatus = "DRAFT"
	// AssetStatusPending means the asset passed approval and awaits minting
	AssetStatusPending AssetStatus = "PENDING"
	// AssetStatusMinting means a mint attempt is in flight
	AssetStatusMinting AssetStatus = "MINTING"
	// AssetStatusMinted means the asset is bound to an on-chain token
	AssetStatusMinted AssetStatus = "MINTED"
	// AssetStatusMintFailed means the last mint attempt failed
	AssetStatusMintFailed AssetStatus = "MINT_FAILED"
	// AssetStatusRejected means the approval workflow rejected the asset
	AssetStatusRejected AssetStatus = "REJECTED"
	// AssetStatusTransferred means ownership moved to another party
	AssetStatusTransferred AssetStatus = "TRANSFERRED"
	// AssetStatusLicensed means the token is licensed out
	AssetStatusLicensed AssetStatus = "LICENSED"
	// AssetStatusStaked means the token is staked
	AssetStatusStaked AssetStatus = "STAKED"
)

// MintStage represents the step an in-progress mint attempt is executing
type MintStage string

const (
	MintStagePreparing  MintStage = "PREPARING"
	MintStageSubmitting MintStage = "SUBMITTING"
	MintStageConfirming MintStage = "CONFIRMING"
	MintStageCompleted  MintStage = "COMPLETED"
	MintStageFailed     MintStage = "FAILED"
)

// MintOperation identifies what a mint audit row records
type MintOperation string

const (
	MintOperationRequest MintOperation = "REQUEST"
	MintOperationSubmit  MintOperation = "SUBMIT"
	MintOperationConfirm MintOperation = "CONFIRM"
	MintOperationRetry   MintOperation = "RETRY"
	MintOperationFail    MintOperation = "FAIL"
	MintOperationSuccess MintOperation = "SUCCESS"
)

// MintRecordStatus is the terminal disposition of a mint audit row
type MintRecordStatus string

const (
	MintRecordStatusPending MintRecordStatus = "PENDING"
	MintRecordStatusSuccess MintRecordStatus = "SUCCESS"
	MintRecordStatusFailed  MintRecordStatus = "FAILED"
)

// OwnershipStatus is the current disposition of a minted asset
type OwnershipStatus string

const (
	OwnershipStatusActive      OwnershipStatus = "ACTIVE"
	OwnershipStatusLicensed    OwnershipStatus = "LICENSED"
	OwnershipStatusStaked      OwnershipStatus = "STAKED"
	OwnershipStatusTransferred OwnershipStatus = "TRANSFERRED"
)

// TransferType classifies an ownership-changing event
type TransferType string

const (
	TransferTypeMint     TransferType = "MINT"
	TransferTypeTransfer TransferType = "TRANSFER"
	TransferTypeLicense  TransferType = "LICENSE"
	TransferTypeStake    TransferType = "STAKE"
	TransferTypeUnstake  TransferType = "UNSTAKE"
	TransferTypeBurn     TransferType = "BURN"
)

// TransferStatus is the state of a transfer ledger row
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusConfirmed TransferStatus = "CONFIRMED"
	TransferStatusFailed    TransferStatus = "FAILED"
	TransferStatusCancelled TransferStatus = "CANCELLED"
)

// MemberRole is the role a user holds within an enterprise
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// AssetEventType identifies events published to the message broker
type AssetEventType string

const (
	AssetEventTypeMinted           AssetEventType = "minted"
	AssetEventTypeTransferred      AssetEventType = "transferred"
	AssetEventTypeOwnershipChanged AssetEventType = "ownership_changed"
)

// AssetEvent is the normalized event published to NATS after a
// successful mint or ownership change
type AssetEvent struct {
	EventType       AssetEventType `json:"event_type"`
	AssetID         uuid.UUID      `json:"asset_id"`
	TokenID         uint64         `json:"token_id"`
	ContractAddress string         `json:"contract_address"`
	Chain           Chain          `json:"chain"`
	FromAddress     string         `json:"from_address,omitempty"`
	ToAddress       string         `json:"to_address,omitempty"`
	TxHash          string         `json:"tx_hash,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
}

// MintStatusSnapshot is the plain-data view of an asset's mint progress
// returned to callers polling mint state
type MintStatusSnapshot struct {
	AssetID           uuid.UUID   `json:"asset_id"`
	Status            AssetStatus `json:"status"`
	MintStage         *MintStage  `json:"mint_stage"`
	MintProgress      int         `json:"mint_progress"`
	MintAttemptCount  int         `json:"mint_attempt_count"`
	MaxMintAttempts   int         `json:"max_mint_attempts"`
	CanRetry          bool        `json:"can_retry"`
	TokenID           *uint64     `json:"token_id"`
	ContractAddress   *string     `json:"contract_address"`
	MetadataURI       *string     `json:"metadata_uri"`
	MintTxHash        *string     `json:"mint_tx_hash"`
	LastMintError     *string     `json:"last_mint_error"`
	LastMintErrorCode *string     `json:"last_mint_error_code"`
	MintRequestedAt   *time.Time  `json:"mint_requested_at"`
	MintCompletedAt   *time.Time  `json:"mint_completed_at"`
	LastMintAttemptAt *time.Time  `json:"last_mint_attempt_at"`
}
