package metadata

import (
	"fmt"
	"time"

	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

// TokenMetadata is the ERC-721 token metadata document pinned to IPFS.
// Field layout follows the OpenSea metadata standard.
type TokenMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image,omitempty"`
	ExternalURL string          `json:"external_url,omitempty"`
	Attributes  []Attribute     `json:"attributes"`
	Properties  TokenProperties `json:"properties"`
	Attachments []AttachmentRef `json:"attachments,omitempty"`
}

// Attribute is a display attribute in the standard trait format
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenProperties carries machine-readable identifiers linking the token
// back to the asset registry
type TokenProperties struct {
	AssetID           string  `json:"asset_id"`
	EnterpriseID      string  `json:"enterprise_id"`
	ApplicationNumber *string `json:"application_number,omitempty"`
}

// AttachmentRef points to a supporting document pinned to IPFS
type AttachmentRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URI  string `json:"uri"`
}

// ExternalURLBase is the public asset page prefix embedded in token
// metadata. Override per deployment if the frontend moves.
var ExternalURLBase = "https://app.ipasset.example.com/assets"

// BuildTokenMetadata assembles the metadata document for an asset. The first
// attachment becomes the token image; the rest are listed as supporting
// documents. Attachments must already be pinned (each carries its IPFS CID).
func BuildTokenMetadata(asset *schema.Asset, attachments []schema.Attachment) (*TokenMetadata, error) {
	if asset == nil {
		return nil, fmt.Errorf("asset is nil")
	}
	if len(attachments) == 0 {
		return nil, domain.ErrNoAttachments
	}

	meta := &TokenMetadata{
		Name:        asset.Name,
		Description: asset.Description,
		Image:       IPFSURI(attachments[0].IPFSCID),
		ExternalURL: fmt.Sprintf("%s/%s", ExternalURLBase, asset.ID),
		Attributes: []Attribute{
			{TraitType: "Asset Type", Value: string(asset.Type)},
			{TraitType: "Creator", Value: asset.CreatorName},
			{TraitType: "Creation Date", Value: asset.CreationDate.Format(time.DateOnly)},
			{TraitType: "Legal Status", Value: string(asset.LegalStatus)},
		},
		Properties: TokenProperties{
			AssetID:           asset.ID.String(),
			EnterpriseID:      asset.EnterpriseID.String(),
			ApplicationNumber: asset.ApplicationNumber,
		},
	}

	for _, att := range attachments[1:] {
		meta.Attachments = append(meta.Attachments, AttachmentRef{
			Name: att.FileName,
			Type: att.FileType,
			Size: att.FileSize,
			URI:  IPFSURI(att.IPFSCID),
		})
	}

	return meta, nil
}

// IPFSURI renders a CID as an ipfs:// URI
func IPFSURI(cid string) string {
	return domain.IPFS_URI_SCHEME + cid
}
