package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// NFTTransferRecord represents the nft_transfer_records table - an
// append-only audit row for one ownership-changing event (mint, transfer,
// license, stake, unstake, burn). Enterprise names are copied into the row
// at event time so the history survives enterprise renaming or deletion.
// Rows are immutable once status reaches CONFIRMED or FAILED.
type NFTTransferRecord struct {
	// ID is the record's unique identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// TokenID is the on-chain token the event concerns
	TokenID uint64 `gorm:"column:token_id;not null;type:bigint;index:idx_transfers_token_status,priority:1;index:idx_transfers_token_created,priority:1"`
	// ContractAddress is the token's contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// TransferType classifies the event
	TransferType domain.TransferType `gorm:"column:transfer_type;not null;type:text"`

	// FromAddress is the sending wallet (zero address for mints)
	FromAddress string `gorm:"column:from_address;not null;type:text"`
	// FromEnterpriseID is the sending enterprise, if any
	FromEnterpriseID *uuid.UUID `gorm:"column:from_enterprise_id;type:uuid;index"`
	// FromEnterpriseName is the sending enterprise's name frozen at event time
	FromEnterpriseName *string `gorm:"column:from_enterprise_name;type:text"`

	// ToAddress is the receiving wallet
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// ToEnterpriseID is the receiving enterprise, if any
	ToEnterpriseID *uuid.UUID `gorm:"column:to_enterprise_id;type:uuid;index"`
	// ToEnterpriseName is the receiving enterprise's name frozen at event time
	ToEnterpriseName *string `gorm:"column:to_enterprise_name;type:text"`

	// OperatorUserID is the user who initiated the event
	OperatorUserID *uuid.UUID `gorm:"column:operator_user_id;type:uuid"`

	// TxHash is the on-chain transaction hash (nil for off-chain events)
	TxHash *string `gorm:"column:tx_hash;type:text;uniqueIndex"`
	// BlockNumber is the block the transaction was mined in
	BlockNumber *uint64 `gorm:"column:block_number;type:bigint"`
	// BlockTimestamp is the blockchain timestamp of the event
	BlockTimestamp *time.Time `gorm:"column:block_timestamp;type:timestamptz"`

	// Status is the event disposition
	Status domain.TransferStatus `gorm:"column:status;not null;default:PENDING;type:text;index:idx_transfers_token_status,priority:2"`
	// Remarks is an operator-supplied note
	Remarks *string `gorm:"column:remarks;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_transfers_token_created,priority:2,sort:desc"`
	// ConfirmedAt is the on-chain confirmation time
	ConfirmedAt *time.Time `gorm:"column:confirmed_at;type:timestamptz"`
}

// TableName specifies the table name for the NFTTransferRecord model
func (NFTTransferRecord) TableName() string {
	return "nft_transfer_records"
}
