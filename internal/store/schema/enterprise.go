package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// Enterprise represents the enterprises table - a tenant that owns assets
type Enterprise struct {
	// ID is the enterprise's unique identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Name is the enterprise display name
	Name string `gorm:"column:name;not null;type:text"`
	// Description is a free-form description
	Description *string `gorm:"column:description;type:text"`
	// WalletAddress is the enterprise's on-chain address
	WalletAddress *string `gorm:"column:wallet_address;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Enterprise model
func (Enterprise) TableName() string {
	return "enterprises"
}

// EnterpriseMember represents the enterprise_members table - a user's
// membership and role within an enterprise
type EnterpriseMember struct {
	// ID is the membership row identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// EnterpriseID references the enterprise
	EnterpriseID uuid.UUID `gorm:"column:enterprise_id;not null;type:uuid;uniqueIndex:idx_members_enterprise_user,priority:1"`
	// UserID references the member
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid;uniqueIndex:idx_members_enterprise_user,priority:2"`
	// Role is the member's role within the enterprise
	Role domain.MemberRole `gorm:"column:role;not null;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the EnterpriseMember model
func (EnterpriseMember) TableName() string {
	return "enterprise_members"
}
