package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

// Store defines the interface for ledger database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetAssetByID retrieves an asset by its identifier
	GetAssetByID(ctx context.Context, assetID uuid.UUID) (*schema.Asset, error)
	// GetAssetByTokenID retrieves the asset bound to an on-chain token
	GetAssetByTokenID(ctx context.Context, tokenID uint64) (*schema.Asset, error)
	// GetAttachments retrieves an asset's attachments ordered by upload time
	GetAttachments(ctx context.Context, assetID uuid.UUID) ([]schema.Attachment, error)
	// GetEnterpriseName retrieves an enterprise's display name
	GetEnterpriseName(ctx context.Context, enterpriseID uuid.UUID) (string, error)
	// HasEnterpriseRole checks whether the user holds one of the given roles
	// in the enterprise
	HasEnterpriseRole(ctx context.Context, enterpriseID, userID uuid.UUID, roles ...domain.MemberRole) (bool, error)

	// ClaimMintAttempt atomically transitions the asset into MINTING and
	// opens the attempt's audit row in one transaction. A concurrent claim
	// on the same asset loses the conditional update and receives
	// domain.ErrMintConflict.
	ClaimMintAttempt(ctx context.Context, input ClaimMintAttemptInput) (*MintClaim, error)
	// AdvanceMintStage durably records a stage/progress transition on the
	// asset and mirrors it onto the open audit row
	AdvanceMintStage(ctx context.Context, input AdvanceMintStageInput) error
	// CompleteMint finalizes a successful attempt: token identity, ownership
	// initialization, audit-row closure, and the MINT transfer-ledger row,
	// all in one transaction
	CompleteMint(ctx context.Context, input CompleteMintInput) error
	// FailMint records a failed attempt and closes the audit row
	FailMint(ctx context.Context, input FailMintInput) error
	// GetMintRecords retrieves an asset's mint audit rows, newest first
	GetMintRecords(ctx context.Context, assetID uuid.UUID, limit int, offset uint64) ([]schema.MintRecord, uint64, error)

	// TransferOwnership appends a confirmed transfer-ledger row and updates
	// the asset's ownership fields in one transaction
	TransferOwnership(ctx context.Context, input TransferOwnershipInput) (*schema.NFTTransferRecord, error)
	// ChangeOwnershipStatus appends an off-chain ownership event row and
	// updates the asset's ownership status in one transaction
	ChangeOwnershipStatus(ctx context.Context, input ChangeOwnershipStatusInput) (*schema.NFTTransferRecord, error)
	// GetTransferRecords retrieves a token's transfer history, newest first
	GetTransferRecords(ctx context.Context, tokenID uint64, limit int, offset uint64) ([]schema.NFTTransferRecord, uint64, error)
	// GetEnterpriseAssets retrieves minted assets currently owned by an
	// enterprise
	GetEnterpriseAssets(ctx context.Context, filter EnterpriseAssetFilter) ([]schema.Asset, uint64, error)
	// GetEnterpriseOwnershipStats counts an enterprise's minted assets per
	// ownership status
	GetEnterpriseOwnershipStats(ctx context.Context, enterpriseID uuid.UUID) (*EnterpriseOwnershipStats, error)
}

// ClaimMintAttemptInput carries the parameters for opening a mint attempt
type ClaimMintAttemptInput struct {
	AssetID          uuid.UUID
	Operation        domain.MintOperation // REQUEST for first attempts, RETRY afterwards
	OperatorID       uuid.UUID
	RecipientAddress string
	Now              time.Time
}

// MintClaim is the state handed back to the orchestrator after a
// successful claim
type MintClaim struct {
	Asset  *schema.Asset
	Record *schema.MintRecord
}

// AdvanceMintStageInput carries a durable stage transition
type AdvanceMintStageInput struct {
	AssetID  uuid.UUID
	RecordID uuid.UUID
	Stage    domain.MintStage
	Progress int

	// Optional fields persisted alongside the transition
	MetadataCID *string
	MetadataURI *string
	TxHash      *string
	SubmittedAt *time.Time
	ConfirmedAt *time.Time

	Now time.Time
}

// CompleteMintInput carries the terminal state of a successful attempt
type CompleteMintInput struct {
	AssetID  uuid.UUID
	RecordID uuid.UUID

	TokenID         uint64
	ContractAddress string
	ChainID         domain.Chain
	TxHash          string
	BlockNumber     uint64
	GasUsed         uint64

	OwnerAddress      string
	OwnerEnterpriseID uuid.UUID
	OperatorID        uuid.UUID

	Now time.Time
}

// FailMintInput carries the terminal state of a failed attempt
type FailMintInput struct {
	AssetID  uuid.UUID
	RecordID uuid.UUID

	ErrorCode    string
	ErrorMessage string
	// CanRetry is the retry-policy verdict for the asset after this failure
	CanRetry bool
	// TxHash preserves a hash obtained before the failure, if any
	TxHash *string

	Now time.Time
}

// TransferOwnershipInput carries an on-chain ownership transfer
type TransferOwnershipInput struct {
	AssetID         uuid.UUID
	TokenID         uint64
	ContractAddress string

	FromAddress        string
	FromEnterpriseID   *uuid.UUID
	FromEnterpriseName *string
	ToAddress          string
	ToEnterpriseID     *uuid.UUID
	ToEnterpriseName   *string

	OperatorUserID uuid.UUID
	TxHash         string
	BlockNumber    *uint64
	Remarks        *string

	// NewOwnershipStatus and NewAssetStatus are the asset's post-transfer
	// states
	NewOwnershipStatus domain.OwnershipStatus
	NewAssetStatus     domain.AssetStatus

	Now time.Time
}

// ChangeOwnershipStatusInput carries an off-chain ownership status change
type ChangeOwnershipStatusInput struct {
	AssetID         uuid.UUID
	TokenID         uint64
	ContractAddress string

	OwnerAddress   string
	EnterpriseID   *uuid.UUID
	EnterpriseName *string

	TransferType domain.TransferType
	NewStatus    domain.OwnershipStatus

	OperatorUserID uuid.UUID
	Remarks        *string

	Now time.Time
}

// EnterpriseAssetFilter narrows an enterprise asset listing
type EnterpriseAssetFilter struct {
	EnterpriseID    uuid.UUID
	Type            *schema.AssetType
	OwnershipStatus *domain.OwnershipStatus
	// Search matches against the asset name, case-insensitively
	Search *string
	Limit  int
	Offset uint64
}

// EnterpriseOwnershipStats counts minted assets per ownership status
type EnterpriseOwnershipStats struct {
	Total       uint64 `gorm:"column:total"`
	Active      uint64 `gorm:"column:active"`
	Licensed    uint64 `gorm:"column:licensed"`
	Staked      uint64 `gorm:"column:staked"`
	Transferred uint64 `gorm:"column:transferred"`
}
