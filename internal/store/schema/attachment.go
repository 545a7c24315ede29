package schema

import (
	"time"

	"github.com/google/uuid"
)

// Attachment represents the attachments table - files backing an asset,
// stored on IPFS and addressed by CID
type Attachment struct {
	// ID is the attachment's unique identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// AssetID references the owning asset
	AssetID uuid.UUID `gorm:"column:asset_id;not null;type:uuid;index:idx_attachments_asset_uploaded,priority:1"`
	// FileName is the original file name
	FileName string `gorm:"column:file_name;not null;type:text"`
	// FileType is the MIME type
	FileType string `gorm:"column:file_type;not null;type:text"`
	// FileSize is the size in bytes
	FileSize int64 `gorm:"column:file_size;not null;type:bigint"`
	// IPFSCID is the content identifier of the uploaded file
	IPFSCID string `gorm:"column:ipfs_cid;not null;uniqueIndex;type:text"`
	// UploadedAt is when the file was pinned
	UploadedAt time.Time `gorm:"column:uploaded_at;not null;default:now();type:timestamptz;index:idx_attachments_asset_uploaded,priority:2"`
}

// TableName specifies the table name for the Attachment model
func (Attachment) TableName() string {
	return "attachments"
}
