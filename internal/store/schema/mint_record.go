package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// MintRecord represents the mint_records table - an append-only audit row
// for one mint attempt. A row is created open (status PENDING) when the
// attempt claims the asset and is updated in place only until completed_at
// is set; closed rows are never mutated.
type MintRecord struct {
	// ID is the record's unique identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// AssetID references the asset being minted
	AssetID uuid.UUID `gorm:"column:asset_id;not null;type:uuid;index:idx_mint_records_asset_created,priority:1"`
	// Operation identifies what this row records (REQUEST, RETRY, ...)
	Operation domain.MintOperation `gorm:"column:operation;not null;type:text"`
	// Stage is the attempt's stage at the last update
	Stage *domain.MintStage `gorm:"column:stage;type:text"`
	// OperatorID is the user who initiated the attempt
	OperatorID *uuid.UUID `gorm:"column:operator_id;type:uuid"`
	// OperatorAddress is the recipient wallet address of the attempt
	OperatorAddress *string `gorm:"column:operator_address;type:text"`
	// TokenID is the minted token id, once known
	TokenID *uint64 `gorm:"column:token_id;type:bigint"`
	// TxHash is the mint transaction hash, once known
	TxHash *string `gorm:"column:tx_hash;type:text;index"`
	// BlockNumber is the block the transaction was mined in
	BlockNumber *uint64 `gorm:"column:block_number;type:bigint"`
	// GasUsed is the gas consumed by the transaction
	GasUsed *uint64 `gorm:"column:gas_used;type:bigint"`
	// Status is the attempt disposition
	Status domain.MintRecordStatus `gorm:"column:status;not null;default:PENDING;type:text;index"`
	// ErrorCode is the classified failure code, if the attempt failed
	ErrorCode *string `gorm:"column:error_code;type:text"`
	// ErrorMessage is the failure detail, if the attempt failed
	ErrorMessage *string `gorm:"column:error_message;type:text"`
	// MetadataURI is the published metadata location
	MetadataURI *string `gorm:"column:metadata_uri;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_mint_records_asset_created,priority:2"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
	// CompletedAt is set exactly once when the attempt reaches a terminal
	// status; the row is immutable afterwards
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
}

// TableName specifies the table name for the MintRecord model
func (MintRecord) TableName() string {
	return "mint_records"
}
