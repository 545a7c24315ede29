package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

const (
	testOwnerAddr = "0x1111111111111111111111111111111111111111"
	testToAddr    = "0x3333333333333333333333333333333333333333"
	testContract  = "0x2222222222222222222222222222222222222222"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func seedEnterprise(t *testing.T, db *gorm.DB, name string) *schema.Enterprise {
	enterprise := &schema.Enterprise{
		ID:   uuid.New(),
		Name: name,
	}
	require.NoError(t, db.Create(enterprise).Error)
	return enterprise
}

func seedMember(t *testing.T, db *gorm.DB, enterpriseID, userID uuid.UUID, role domain.MemberRole) {
	require.NoError(t, db.Create(&schema.EnterpriseMember{
		ID:           uuid.New(),
		EnterpriseID: enterpriseID,
		UserID:       userID,
		Role:         role,
	}).Error)
}

func seedAsset(t *testing.T, db *gorm.DB, enterpriseID uuid.UUID, status domain.AssetStatus) *schema.Asset {
	asset := &schema.Asset{
		ID:              uuid.New(),
		EnterpriseID:    enterpriseID,
		Name:            "Patent US-123",
		Type:            schema.AssetTypePatent,
		Description:     "A patented mechanism",
		CreatorName:     "Dana Reyes",
		CreationDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		LegalStatus:     schema.LegalStatusGranted,
		Status:          status,
		MaxMintAttempts: 3,
		CanRetry:        true,
	}
	require.NoError(t, db.Create(asset).Error)
	return asset
}

// seedMintedAsset creates an asset already holding a token and ownership state
func seedMintedAsset(t *testing.T, db *gorm.DB, enterpriseID uuid.UUID, tokenID uint64) *schema.Asset {
	asset := seedAsset(t, db, enterpriseID, domain.AssetStatusMinted)
	owner := testOwnerAddr
	contract := testContract
	chainID := domain.ChainEthereumSepolia
	ownership := domain.OwnershipStatusActive
	require.NoError(t, db.Model(&schema.Asset{}).Where("id = ?", asset.ID).
		Updates(map[string]interface{}{
			"token_id":                    tokenID,
			"contract_address":            contract,
			"chain_id":                    chainID,
			"owner_address":               owner,
			"ownership_status":            ownership,
			"current_owner_enterprise_id": enterpriseID,
		}).Error)
	asset.TokenID = &tokenID
	asset.ContractAddress = &contract
	asset.ChainID = &chainID
	asset.OwnerAddress = &owner
	asset.OwnershipStatus = &ownership
	asset.CurrentOwnerEnterpriseID = &enterpriseID
	return asset
}

func seedAttachment(t *testing.T, db *gorm.DB, assetID uuid.UUID, cid string, uploadedAt time.Time) *schema.Attachment {
	attachment := &schema.Attachment{
		ID:         uuid.New(),
		AssetID:    assetID,
		FileName:   cid + ".pdf",
		FileType:   "application/pdf",
		FileSize:   1024,
		IPFSCID:    cid,
		UploadedAt: uploadedAt,
	}
	require.NoError(t, db.Create(attachment).Error)
	return attachment
}

func claimForTest(t *testing.T, s Store, assetID uuid.UUID) *MintClaim {
	claim, err := s.ClaimMintAttempt(context.Background(), ClaimMintAttemptInput{
		AssetID:          assetID,
		Operation:        domain.MintOperationRequest,
		OperatorID:       uuid.New(),
		RecipientAddress: testOwnerAddr,
		Now:              time.Now().UTC(),
	})
	require.NoError(t, err)
	return claim
}

// =============================================================================
// Test: Lookups
// =============================================================================

func testGetAssetByID(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()

	t.Run("existing asset", func(t *testing.T) {
		enterprise := seedEnterprise(t, db, "Holder Corp")
		asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)

		got, err := s.GetAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, asset.ID, got.ID)
		assert.Equal(t, domain.AssetStatusDraft, got.Status)
	})

	t.Run("missing asset", func(t *testing.T) {
		_, err := s.GetAssetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	})
}

func testGetAssetByTokenID(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedMintedAsset(t, db, enterprise.ID, 42)

	got, err := s.GetAssetByTokenID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, got.ID)

	_, err = s.GetAssetByTokenID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func testGetAttachments(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)

	base := time.Now().UTC().Truncate(time.Microsecond)
	seedAttachment(t, db, asset.ID, "QmSecond", base.Add(time.Minute))
	seedAttachment(t, db, asset.ID, "QmFirst", base)

	attachments, err := s.GetAttachments(ctx, asset.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	// Ordered by upload time ascending
	assert.Equal(t, "QmFirst", attachments[0].IPFSCID)
	assert.Equal(t, "QmSecond", attachments[1].IPFSCID)

	empty, err := s.GetAttachments(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testGetEnterpriseName(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")

	name, err := s.GetEnterpriseName(ctx, enterprise.ID)
	require.NoError(t, err)
	assert.Equal(t, "Holder Corp", name)

	// A missing enterprise resolves to the empty name, not an error
	name, err = s.GetEnterpriseName(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, name)
}

func testHasEnterpriseRole(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	ownerID := uuid.New()
	memberID := uuid.New()
	seedMember(t, db, enterprise.ID, ownerID, domain.MemberRoleOwner)
	seedMember(t, db, enterprise.ID, memberID, domain.MemberRoleMember)

	allowed, err := s.HasEnterpriseRole(ctx, enterprise.ID, ownerID, domain.MemberRoleOwner, domain.MemberRoleAdmin)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = s.HasEnterpriseRole(ctx, enterprise.ID, memberID, domain.MemberRoleOwner, domain.MemberRoleAdmin)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = s.HasEnterpriseRole(ctx, enterprise.ID, uuid.New(), domain.MemberRoleOwner, domain.MemberRoleAdmin)
	require.NoError(t, err)
	assert.False(t, allowed)
}

// =============================================================================
// Test: ClaimMintAttempt
// =============================================================================

func testClaimMintAttempt(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()

	t.Run("claim from draft", func(t *testing.T) {
		enterprise := seedEnterprise(t, db, "Holder Corp")
		asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)

		claim := claimForTest(t, s, asset.ID)
		assert.Equal(t, domain.AssetStatusMinting, claim.Asset.Status)
		require.NotNil(t, claim.Asset.MintStage)
		assert.Equal(t, domain.MintStagePreparing, *claim.Asset.MintStage)
		assert.Equal(t, 10, claim.Asset.MintProgress)
		assert.Equal(t, 1, claim.Asset.MintAttemptCount)
		require.NotNil(t, claim.Asset.RecipientAddress)
		assert.Equal(t, testOwnerAddr, *claim.Asset.RecipientAddress)
		assert.NotNil(t, claim.Asset.MintRequestedAt)
		assert.NotNil(t, claim.Asset.LastMintAttemptAt)

		assert.Equal(t, domain.MintRecordStatusPending, claim.Record.Status)
		assert.Equal(t, domain.MintOperationRequest, claim.Record.Operation)
		assert.Nil(t, claim.Record.CompletedAt)
	})

	t.Run("concurrent claim loses", func(t *testing.T) {
		enterprise := seedEnterprise(t, db, "Holder Corp")
		asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)

		claimForTest(t, s, asset.ID)

		_, err := s.ClaimMintAttempt(ctx, ClaimMintAttemptInput{
			AssetID:          asset.ID,
			Operation:        domain.MintOperationRequest,
			OperatorID:       uuid.New(),
			RecipientAddress: testOwnerAddr,
			Now:              time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrMintConflict)
	})

	t.Run("missing asset", func(t *testing.T) {
		_, err := s.ClaimMintAttempt(ctx, ClaimMintAttemptInput{
			AssetID:          uuid.New(),
			Operation:        domain.MintOperationRequest,
			OperatorID:       uuid.New(),
			RecipientAddress: testOwnerAddr,
			Now:              time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	})

	t.Run("attempt ceiling enforced", func(t *testing.T) {
		enterprise := seedEnterprise(t, db, "Holder Corp")
		asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusMintFailed)
		require.NoError(t, db.Model(&schema.Asset{}).Where("id = ?", asset.ID).
			Update("mint_attempt_count", 3).Error)

		_, err := s.ClaimMintAttempt(ctx, ClaimMintAttemptInput{
			AssetID:          asset.ID,
			Operation:        domain.MintOperationRetry,
			OperatorID:       uuid.New(),
			RecipientAddress: testOwnerAddr,
			Now:              time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrMintConflict)
	})

	t.Run("reclaim after failure clears previous error", func(t *testing.T) {
		enterprise := seedEnterprise(t, db, "Holder Corp")
		asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusMintFailed)
		require.NoError(t, db.Model(&schema.Asset{}).Where("id = ?", asset.ID).
			Updates(map[string]interface{}{
				"mint_attempt_count":   1,
				"last_mint_error":      "boom",
				"last_mint_error_code": domain.ErrorCodeChainSubmitFailed,
			}).Error)

		claim, err := s.ClaimMintAttempt(ctx, ClaimMintAttemptInput{
			AssetID:          asset.ID,
			Operation:        domain.MintOperationRetry,
			OperatorID:       uuid.New(),
			RecipientAddress: testOwnerAddr,
			Now:              time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, claim.Asset.MintAttemptCount)
		assert.Nil(t, claim.Asset.LastMintError)
		assert.Nil(t, claim.Asset.LastMintErrorCode)
		assert.Equal(t, domain.MintOperationRetry, claim.Record.Operation)
	})
}

// =============================================================================
// Test: AdvanceMintStage
// =============================================================================

func testAdvanceMintStage(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)
	claim := claimForTest(t, s, asset.ID)

	cid := "QmMetaCID"
	uri := "ipfs://QmMetaCID"
	now := time.Now().UTC().Truncate(time.Microsecond)

	err := s.AdvanceMintStage(ctx, AdvanceMintStageInput{
		AssetID:     asset.ID,
		RecordID:    claim.Record.ID,
		Stage:       domain.MintStageSubmitting,
		Progress:    50,
		MetadataCID: &cid,
		MetadataURI: &uri,
		Now:         now,
	})
	require.NoError(t, err)

	got, err := s.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MintStage)
	assert.Equal(t, domain.MintStageSubmitting, *got.MintStage)
	assert.Equal(t, 50, got.MintProgress)
	require.NotNil(t, got.MetadataCID)
	assert.Equal(t, cid, *got.MetadataCID)
	require.NotNil(t, got.MetadataURI)
	assert.Equal(t, uri, *got.MetadataURI)

	var record schema.MintRecord
	require.NoError(t, db.First(&record, "id = ?", claim.Record.ID).Error)
	require.NotNil(t, record.Stage)
	assert.Equal(t, domain.MintStageSubmitting, *record.Stage)
	require.NotNil(t, record.MetadataURI)
	assert.Equal(t, uri, *record.MetadataURI)

	t.Run("asset not minting", func(t *testing.T) {
		idle := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)
		err := s.AdvanceMintStage(ctx, AdvanceMintStageInput{
			AssetID:  idle.ID,
			RecordID: uuid.New(),
			Stage:    domain.MintStageSubmitting,
			Progress: 30,
			Now:      now,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAssetState)
	})
}

// =============================================================================
// Test: CompleteMint
// =============================================================================

func testCompleteMint(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)
	claim := claimForTest(t, s, asset.ID)

	operatorID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	err := s.CompleteMint(ctx, CompleteMintInput{
		AssetID:           asset.ID,
		RecordID:          claim.Record.ID,
		TokenID:           42,
		ContractAddress:   testContract,
		ChainID:           domain.ChainEthereumSepolia,
		TxHash:            "0xabc",
		BlockNumber:       1234,
		GasUsed:           21000,
		OwnerAddress:      testOwnerAddr,
		OwnerEnterpriseID: enterprise.ID,
		OperatorID:        operatorID,
		Now:               now,
	})
	require.NoError(t, err)

	got, err := s.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusMinted, got.Status)
	require.NotNil(t, got.MintStage)
	assert.Equal(t, domain.MintStageCompleted, *got.MintStage)
	assert.Equal(t, 100, got.MintProgress)
	assert.False(t, got.CanRetry)
	require.NotNil(t, got.TokenID)
	assert.Equal(t, uint64(42), *got.TokenID)
	require.NotNil(t, got.OwnerAddress)
	assert.Equal(t, testOwnerAddr, *got.OwnerAddress)
	require.NotNil(t, got.OwnershipStatus)
	assert.Equal(t, domain.OwnershipStatusActive, *got.OwnershipStatus)
	require.NotNil(t, got.CurrentOwnerEnterpriseID)
	assert.Equal(t, enterprise.ID, *got.CurrentOwnerEnterpriseID)
	assert.NotNil(t, got.MintCompletedAt)

	var record schema.MintRecord
	require.NoError(t, db.First(&record, "id = ?", claim.Record.ID).Error)
	assert.Equal(t, domain.MintRecordStatusSuccess, record.Status)
	require.NotNil(t, record.TokenID)
	assert.Equal(t, uint64(42), *record.TokenID)
	assert.NotNil(t, record.CompletedAt)

	// The MINT ledger row is written in the same transaction, from the zero
	// address, with the owner enterprise name frozen in.
	transfers, total, err := s.GetTransferRecords(ctx, 42, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, transfers, 1)
	assert.Equal(t, domain.TransferTypeMint, transfers[0].TransferType)
	assert.Equal(t, domain.ETHEREUM_ZERO_ADDRESS, transfers[0].FromAddress)
	assert.Equal(t, testOwnerAddr, transfers[0].ToAddress)
	assert.Equal(t, domain.TransferStatusConfirmed, transfers[0].Status)
	require.NotNil(t, transfers[0].ToEnterpriseName)
	assert.Equal(t, "Holder Corp", *transfers[0].ToEnterpriseName)

	t.Run("closed attempt is immutable", func(t *testing.T) {
		err := s.AdvanceMintStage(ctx, AdvanceMintStageInput{
			AssetID:  asset.ID,
			RecordID: claim.Record.ID,
			Stage:    domain.MintStageSubmitting,
			Progress: 30,
			Now:      time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAssetState)

		var after schema.MintRecord
		require.NoError(t, db.First(&after, "id = ?", claim.Record.ID).Error)
		assert.Equal(t, domain.MintRecordStatusSuccess, after.Status)
		require.NotNil(t, after.Stage)
		assert.Equal(t, domain.MintStageCompleted, *after.Stage)
	})
}

// =============================================================================
// Test: FailMint
// =============================================================================

func testFailMint(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)
	claim := claimForTest(t, s, asset.ID)

	now := time.Now().UTC().Truncate(time.Microsecond)
	txHash := "0xdead"
	err := s.FailMint(ctx, FailMintInput{
		AssetID:      asset.ID,
		RecordID:     claim.Record.ID,
		ErrorCode:    domain.ErrorCodeChainSubmitFailed,
		ErrorMessage: "insufficient funds for gas",
		CanRetry:     true,
		TxHash:       &txHash,
		Now:          now,
	})
	require.NoError(t, err)

	got, err := s.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusMintFailed, got.Status)
	require.NotNil(t, got.MintStage)
	assert.Equal(t, domain.MintStageFailed, *got.MintStage)
	assert.Equal(t, 0, got.MintProgress)
	assert.True(t, got.CanRetry)
	require.NotNil(t, got.LastMintErrorCode)
	assert.Equal(t, domain.ErrorCodeChainSubmitFailed, *got.LastMintErrorCode)
	require.NotNil(t, got.LastMintError)
	assert.Equal(t, "insufficient funds for gas", *got.LastMintError)

	var record schema.MintRecord
	require.NoError(t, db.First(&record, "id = ?", claim.Record.ID).Error)
	assert.Equal(t, domain.MintRecordStatusFailed, record.Status)
	require.NotNil(t, record.ErrorCode)
	assert.Equal(t, domain.ErrorCodeChainSubmitFailed, *record.ErrorCode)
	require.NotNil(t, record.TxHash)
	assert.Equal(t, "0xdead", *record.TxHash)
	assert.NotNil(t, record.CompletedAt)

	// The failed asset is claimable again; the next attempt opens a fresh
	// audit row instead of reusing the closed one.
	reclaim := claimForTest(t, s, asset.ID)
	assert.Equal(t, 2, reclaim.Asset.MintAttemptCount)
	assert.NotEqual(t, claim.Record.ID, reclaim.Record.ID)
}

// =============================================================================
// Test: GetMintRecords
// =============================================================================

func testGetMintRecords(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		stage := domain.MintStageFailed
		require.NoError(t, db.Create(&schema.MintRecord{
			ID:        uuid.New(),
			AssetID:   asset.ID,
			Operation: domain.MintOperationRequest,
			Stage:     &stage,
			Status:    domain.MintRecordStatusFailed,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	records, total, err := s.GetMintRecords(ctx, asset.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, records, 2)
	// Newest first
	assert.True(t, records[0].CreatedAt.After(records[1].CreatedAt))

	records, total, err = s.GetMintRecords(ctx, asset.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, records, 1)
}

// =============================================================================
// Test: TransferOwnership
// =============================================================================

func testTransferOwnership(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	fromEnterprise := seedEnterprise(t, db, "Holder Corp")
	toEnterprise := seedEnterprise(t, db, "Acquirer Inc")
	asset := seedMintedAsset(t, db, fromEnterprise.ID, 42)

	fromName := "Holder Corp"
	toName := "Acquirer Inc"
	operatorID := uuid.New()
	blockNumber := uint64(900)
	now := time.Now().UTC().Truncate(time.Microsecond)

	record, err := s.TransferOwnership(ctx, TransferOwnershipInput{
		AssetID:            asset.ID,
		TokenID:            42,
		ContractAddress:    testContract,
		FromAddress:        testOwnerAddr,
		FromEnterpriseID:   &fromEnterprise.ID,
		FromEnterpriseName: &fromName,
		ToAddress:          testToAddr,
		ToEnterpriseID:     &toEnterprise.ID,
		ToEnterpriseName:   &toName,
		OperatorUserID:     operatorID,
		TxHash:             "0xfeed",
		BlockNumber:        &blockNumber,
		NewOwnershipStatus: domain.OwnershipStatusActive,
		NewAssetStatus:     domain.AssetStatusTransferred,
		Now:                now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferTypeTransfer, record.TransferType)
	assert.Equal(t, domain.TransferStatusConfirmed, record.Status)
	require.NotNil(t, record.TxHash)
	assert.Equal(t, "0xfeed", *record.TxHash)
	require.NotNil(t, record.FromEnterpriseName)
	assert.Equal(t, "Holder Corp", *record.FromEnterpriseName)

	got, err := s.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusTransferred, got.Status)
	require.NotNil(t, got.OwnerAddress)
	assert.Equal(t, testToAddr, *got.OwnerAddress)
	require.NotNil(t, got.CurrentOwnerEnterpriseID)
	assert.Equal(t, toEnterprise.ID, *got.CurrentOwnerEnterpriseID)

	t.Run("token mismatch rolls back", func(t *testing.T) {
		_, err := s.TransferOwnership(ctx, TransferOwnershipInput{
			AssetID:            asset.ID,
			TokenID:            99, // not this asset's token
			ContractAddress:    testContract,
			FromAddress:        testToAddr,
			ToAddress:          testOwnerAddr,
			OperatorUserID:     operatorID,
			TxHash:             "0xbeef",
			NewOwnershipStatus: domain.OwnershipStatusActive,
			NewAssetStatus:     domain.AssetStatusTransferred,
			Now:                time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)

		// The ledger row from the failed transaction must not survive
		var count int64
		require.NoError(t, db.Model(&schema.NFTTransferRecord{}).
			Where("tx_hash = ?", "0xbeef").Count(&count).Error)
		assert.Zero(t, count)
	})
}

// =============================================================================
// Test: ChangeOwnershipStatus
// =============================================================================

func testChangeOwnershipStatus(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")
	asset := seedMintedAsset(t, db, enterprise.ID, 42)

	name := "Holder Corp"
	operatorID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	record, err := s.ChangeOwnershipStatus(ctx, ChangeOwnershipStatusInput{
		AssetID:         asset.ID,
		TokenID:         42,
		ContractAddress: testContract,
		OwnerAddress:    testOwnerAddr,
		EnterpriseID:    &enterprise.ID,
		EnterpriseName:  &name,
		TransferType:    domain.TransferTypeLicense,
		NewStatus:       domain.OwnershipStatusLicensed,
		OperatorUserID:  operatorID,
		Now:             now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferTypeLicense, record.TransferType)
	// Off-chain event: owner on both sides, no transaction hash
	assert.Equal(t, testOwnerAddr, record.FromAddress)
	assert.Equal(t, testOwnerAddr, record.ToAddress)
	assert.Nil(t, record.TxHash)

	got, err := s.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OwnershipStatus)
	assert.Equal(t, domain.OwnershipStatusLicensed, *got.OwnershipStatus)
	// The asset lifecycle status is untouched by off-chain changes
	assert.Equal(t, domain.AssetStatusMinted, got.Status)
}

// =============================================================================
// Test: GetTransferRecords
// =============================================================================

func testGetTransferRecords(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		txHash := fmt.Sprintf("0xhistory%d", i)
		require.NoError(t, db.Create(&schema.NFTTransferRecord{
			ID:              uuid.New(),
			TokenID:         42,
			ContractAddress: testContract,
			TransferType:    domain.TransferTypeTransfer,
			FromAddress:     testOwnerAddr,
			ToAddress:       testToAddr,
			TxHash:          &txHash,
			Status:          domain.TransferStatusConfirmed,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	records, total, err := s.GetTransferRecords(ctx, 42, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].TxHash)
	assert.Equal(t, "0xhistory2", *records[0].TxHash)

	records, total, err = s.GetTransferRecords(ctx, 7, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
}

// =============================================================================
// Test: GetEnterpriseAssets
// =============================================================================

func testGetEnterpriseAssets(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")

	minted := seedMintedAsset(t, db, enterprise.ID, 42)
	licensed := seedMintedAsset(t, db, enterprise.ID, 43)
	status := domain.OwnershipStatusLicensed
	require.NoError(t, db.Model(&schema.Asset{}).Where("id = ?", licensed.ID).
		Updates(map[string]interface{}{
			"ownership_status": status,
			"type":             schema.AssetTypeTrademark,
			"name":             "Trademark ACME",
		}).Error)
	// Unminted assets never show up in ownership listings
	seedAsset(t, db, enterprise.ID, domain.AssetStatusDraft)

	assets, total, err := s.GetEnterpriseAssets(ctx, EnterpriseAssetFilter{
		EnterpriseID: enterprise.ID,
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, assets, 2)

	assetType := schema.AssetTypePatent
	assets, total, err = s.GetEnterpriseAssets(ctx, EnterpriseAssetFilter{
		EnterpriseID: enterprise.ID,
		Type:         &assetType,
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, assets, 1)
	assert.Equal(t, minted.ID, assets[0].ID)

	assets, total, err = s.GetEnterpriseAssets(ctx, EnterpriseAssetFilter{
		EnterpriseID:    enterprise.ID,
		OwnershipStatus: &status,
		Limit:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, assets, 1)
	assert.Equal(t, licensed.ID, assets[0].ID)

	search := "acme"
	assets, total, err = s.GetEnterpriseAssets(ctx, EnterpriseAssetFilter{
		EnterpriseID: enterprise.ID,
		Search:       &search,
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, assets, 1)
	assert.Equal(t, licensed.ID, assets[0].ID)
}

// =============================================================================
// Test: GetEnterpriseOwnershipStats
// =============================================================================

func testGetEnterpriseOwnershipStats(t *testing.T, s Store, db *gorm.DB) {
	ctx := context.Background()
	enterprise := seedEnterprise(t, db, "Holder Corp")

	seedMintedAsset(t, db, enterprise.ID, 42)
	staked := seedMintedAsset(t, db, enterprise.ID, 43)
	require.NoError(t, db.Model(&schema.Asset{}).Where("id = ?", staked.ID).
		Update("ownership_status", domain.OwnershipStatusStaked).Error)

	stats, err := s.GetEnterpriseOwnershipStats(ctx, enterprise.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Total)
	assert.Equal(t, uint64(1), stats.Active)
	assert.Equal(t, uint64(1), stats.Staked)
	assert.Zero(t, stats.Licensed)
	assert.Zero(t, stats.Transferred)

	empty, err := s.GetEnterpriseOwnershipStats(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}

// =============================================================================
// Test Suite Runner
// =============================================================================

// RunStoreTests runs all store tests against a Store over its backing
// database handle. initDB must hand back a fresh, isolated state per test.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store, *gorm.DB)
	}{
		{"GetAssetByID", testGetAssetByID},
		{"GetAssetByTokenID", testGetAssetByTokenID},
		{"GetAttachments", testGetAttachments},
		{"GetEnterpriseName", testGetEnterpriseName},
		{"HasEnterpriseRole", testHasEnterpriseRole},
		{"ClaimMintAttempt", testClaimMintAttempt},
		{"AdvanceMintStage", testAdvanceMintStage},
		{"CompleteMint", testCompleteMint},
		{"FailMint", testFailMint},
		{"GetMintRecords", testGetMintRecords},
		{"TransferOwnership", testTransferOwnership},
		{"ChangeOwnershipStatus", testChangeOwnershipStatus},
		{"GetTransferRecords", testGetTransferRecords},
		{"GetEnterpriseAssets", testGetEnterpriseAssets},
		{"GetEnterpriseOwnershipStats", testGetEnterpriseOwnershipStats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, db := initDB(t)
			tt.fn(t, store, db)
		})
	}
}
