package metadata

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

func testAsset() *schema.Asset {
	appNumber := "CN202410001234"
	return &schema.Asset{
		ID:                uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		EnterpriseID:      uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:              "Industrial Valve Patent",
		Type:              schema.AssetTypePatent,
		Description:       "A pressure-balanced valve design",
		CreatorName:       "Acme R&D",
		CreationDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		LegalStatus:       schema.LegalStatusGranted,
		ApplicationNumber: &appNumber,
	}
}

func testAttachments() []schema.Attachment {
	return []schema.Attachment{
		{FileName: "diagram.png", FileType: "image/png", FileSize: 1024, IPFSCID: "QmImageCID"},
		{FileName: "filing.pdf", FileType: "application/pdf", FileSize: 4096, IPFSCID: "QmDocCID"},
	}
}

func TestBuildTokenMetadata(t *testing.T) {
	asset := testAsset()
	meta, err := BuildTokenMetadata(asset, testAttachments())
	require.NoError(t, err)

	assert.Equal(t, "Industrial Valve Patent", meta.Name)
	assert.Equal(t, "A pressure-balanced valve design", meta.Description)
	assert.Equal(t, "ipfs://QmImageCID", meta.Image)
	assert.Equal(t, "https://app.ipasset.example.com/assets/11111111-1111-1111-1111-111111111111", meta.ExternalURL)

	require.Len(t, meta.Attributes, 4)
	assert.Equal(t, Attribute{TraitType: "Asset Type", Value: "PATENT"}, meta.Attributes[0])
	assert.Equal(t, Attribute{TraitType: "Creator", Value: "Acme R&D"}, meta.Attributes[1])
	assert.Equal(t, Attribute{TraitType: "Creation Date", Value: "2024-03-15"}, meta.Attributes[2])
	assert.Equal(t, Attribute{TraitType: "Legal Status", Value: "GRANTED"}, meta.Attributes[3])

	assert.Equal(t, asset.ID.String(), meta.Properties.AssetID)
	assert.Equal(t, asset.EnterpriseID.String(), meta.Properties.EnterpriseID)
	require.NotNil(t, meta.Properties.ApplicationNumber)
	assert.Equal(t, "CN202410001234", *meta.Properties.ApplicationNumber)

	// First attachment is the image, the rest become supporting documents
	require.Len(t, meta.Attachments, 1)
	assert.Equal(t, AttachmentRef{
		Name: "filing.pdf",
		Type: "application/pdf",
		Size: 4096,
		URI:  "ipfs://QmDocCID",
	}, meta.Attachments[0])
}

func TestBuildTokenMetadata_SingleAttachment(t *testing.T) {
	meta, err := BuildTokenMetadata(testAsset(), testAttachments()[:1])
	require.NoError(t, err)

	assert.Equal(t, "ipfs://QmImageCID", meta.Image)
	assert.Empty(t, meta.Attachments)
}

func TestBuildTokenMetadata_NoAttachments(t *testing.T) {
	_, err := BuildTokenMetadata(testAsset(), nil)
	assert.ErrorIs(t, err, domain.ErrNoAttachments)
}

func TestIPFSURI(t *testing.T) {
	assert.Equal(t, "ipfs://QmFoo", IPFSURI("QmFoo"))
}
