package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// AssetType represents the category of intellectual property
type AssetType string

const (
	AssetTypePatent      AssetType = "PATENT"
	AssetTypeTrademark   AssetType = "TRADEMARK"
	AssetTypeCopyright   AssetType = "COPYRIGHT"
	AssetTypeTradeSecret AssetType = "TRADE_SECRET"
	AssetTypeDigitalWork AssetType = "DIGITAL_WORK"
)

// LegalStatus represents the legal disposition of an IP asset
type LegalStatus string

const (
	LegalStatusPending LegalStatus = "PENDING"
	LegalStatusGranted LegalStatus = "GRANTED"
	LegalStatusExpired LegalStatus = "EXPIRED"
)

// Asset represents the assets table - an intellectual-property record owned
// by an enterprise and eligible for minting into an on-chain token
type Asset struct {
	// ID is the asset's unique identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// EnterpriseID is the enterprise that registered the asset
	EnterpriseID uuid.UUID `gorm:"column:enterprise_id;not null;type:uuid;index:idx_assets_enterprise_status,priority:1"`
	// CreatorUserID is the user who created the asset record
	CreatorUserID *uuid.UUID `gorm:"column:creator_user_id;type:uuid;index"`

	// Name is the asset's display name
	Name string `gorm:"column:name;not null;type:text;index"`
	// Type is the IP category (patent, trademark, ...)
	Type AssetType `gorm:"column:type;not null;type:text"`
	// Description is the asset's free-form description
	Description string `gorm:"column:description;not null;type:text"`
	// CreatorName is the name of the original creator
	CreatorName string `gorm:"column:creator_name;not null;type:text"`
	// CreationDate is the date the work was created
	CreationDate time.Time `gorm:"column:creation_date;not null;type:date"`
	// LegalStatus is the asset's legal disposition
	LegalStatus LegalStatus `gorm:"column:legal_status;not null;type:text"`
	// ApplicationNumber is the registration/application number, if any
	ApplicationNumber *string `gorm:"column:application_number;type:text;index"`
	// Metadata holds extensible asset properties as JSON
	Metadata datatypes.JSON `gorm:"column:asset_metadata;type:jsonb"`

	// Status is the asset lifecycle state
	Status domain.AssetStatus `gorm:"column:status;not null;default:DRAFT;type:text;index:idx_assets_enterprise_status,priority:2"`

	// Mint lifecycle bookkeeping
	MintStage         *domain.MintStage `gorm:"column:mint_stage;type:text"`
	MintProgress      int               `gorm:"column:mint_progress;not null;default:0"`
	MintAttemptCount  int               `gorm:"column:mint_attempt_count;not null;default:0"`
	MaxMintAttempts   int               `gorm:"column:max_mint_attempts;not null;default:3"`
	CanRetry          bool              `gorm:"column:can_retry;not null;default:true"`
	LastMintError     *string           `gorm:"column:last_mint_error;type:text"`
	LastMintErrorCode *string           `gorm:"column:last_mint_error_code;type:text"`

	// Token identity, populated only once minted
	TokenID          *uint64       `gorm:"column:token_id;type:bigint;uniqueIndex"`
	ContractAddress  *string       `gorm:"column:contract_address;type:text"`
	ChainID          *domain.Chain `gorm:"column:chain_id;type:text"`
	MetadataCID      *string       `gorm:"column:metadata_cid;type:text"`
	MetadataURI      *string       `gorm:"column:metadata_uri;type:text"`
	MintTxHash       *string       `gorm:"column:mint_tx_hash;type:text"`
	MintBlockNumber  *uint64       `gorm:"column:mint_block_number;type:bigint"`
	MintGasUsed      *uint64       `gorm:"column:mint_gas_used;type:bigint"`
	RecipientAddress *string       `gorm:"column:recipient_address;type:text"`

	// Ownership
	OwnerAddress             *string                 `gorm:"column:owner_address;type:text"`
	OwnershipStatus          *domain.OwnershipStatus `gorm:"column:ownership_status;type:text"`
	CurrentOwnerEnterpriseID *uuid.UUID              `gorm:"column:current_owner_enterprise_id;type:uuid;index"`

	// Mint timestamps
	MintRequestedAt   *time.Time `gorm:"column:mint_requested_at;type:timestamptz"`
	MintSubmittedAt   *time.Time `gorm:"column:mint_submitted_at;type:timestamptz"`
	MintConfirmedAt   *time.Time `gorm:"column:mint_confirmed_at;type:timestamptz"`
	MintCompletedAt   *time.Time `gorm:"column:mint_completed_at;type:timestamptz"`
	LastMintAttemptAt *time.Time `gorm:"column:last_mint_attempt_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Attachments []Attachment `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	MintRecords []MintRecord `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
