package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

// claimableStatuses are the asset states from which a mint attempt may be
// opened. The conditional update against this set is what enforces the
// single-flight-per-asset invariant: once one caller flips the status to
// MINTING, a concurrent claim matches zero rows.
var claimableStatuses = []domain.AssetStatus{
	domain.AssetStatusDraft,
	domain.AssetStatusPending,
	domain.AssetStatusMintFailed,
}

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetAssetByID retrieves an asset by its identifier
func (s *pgStore) GetAssetByID(ctx context.Context, assetID uuid.UUID) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.db.WithContext(ctx).First(&asset, "id = ?", assetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// GetAssetByTokenID retrieves the asset bound to an on-chain token
func (s *pgStore) GetAssetByTokenID(ctx context.Context, tokenID uint64) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.db.WithContext(ctx).First(&asset, "token_id = ?", tokenID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get asset by token id: %w", err)
	}
	return &asset, nil
}

// GetAttachments retrieves an asset's attachments ordered by upload time
func (s *pgStore) GetAttachments(ctx context.Context, assetID uuid.UUID) ([]schema.Attachment, error) {
	var attachments []schema.Attachment
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("uploaded_at ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}
	return attachments, nil
}

// GetEnterpriseName retrieves an enterprise's display name
func (s *pgStore) GetEnterpriseName(ctx context.Context, enterpriseID uuid.UUID) (string, error) {
	var enterprise schema.Enterprise
	err := s.db.WithContext(ctx).
		Select("name").
		First(&enterprise, "id = ?", enterpriseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get enterprise name: %w", err)
	}
	return enterprise.Name, nil
}

// HasEnterpriseRole checks whether the user holds one of the given roles in
// the enterprise
func (s *pgStore) HasEnterpriseRole(ctx context.Context, enterpriseID, userID uuid.UUID, roles ...domain.MemberRole) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.EnterpriseMember{}).
		Where("enterprise_id = ? AND user_id = ? AND role IN ?", enterpriseID, userID, roles).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enterprise role: %w", err)
	}
	return count > 0, nil
}

// ClaimMintAttempt atomically transitions the asset into MINTING and opens
// the attempt's audit row in one transaction
func (s *pgStore) ClaimMintAttempt(ctx context.Context, input ClaimMintAttemptInput) (*MintClaim, error) {
	var claim MintClaim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stage := domain.MintStagePreparing

		res := tx.Model(&schema.Asset{}).
			Where("id = ? AND status IN ? AND mint_attempt_count < max_mint_attempts",
				input.AssetID, claimableStatuses).
			Updates(map[string]interface{}{
				"status":               domain.AssetStatusMinting,
				"mint_stage":           stage,
				"mint_progress":        10,
				"mint_attempt_count":   gorm.Expr("mint_attempt_count + 1"),
				"recipient_address":    input.RecipientAddress,
				"last_mint_attempt_at": input.Now,
				"mint_requested_at":    gorm.Expr("COALESCE(mint_requested_at, ?)", input.Now),
				"last_mint_error":      nil,
				"last_mint_error_code": nil,
				"updated_at":           input.Now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to claim mint attempt: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&schema.Asset{}).Where("id = ?", input.AssetID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check asset existence: %w", err)
			}
			if count == 0 {
				return domain.ErrAssetNotFound
			}
			return domain.ErrMintConflict
		}

		record := schema.MintRecord{
			ID:              uuid.New(),
			AssetID:         input.AssetID,
			Operation:       input.Operation,
			Stage:           &stage,
			OperatorID:      &input.OperatorID,
			OperatorAddress: &input.RecipientAddress,
			Status:          domain.MintRecordStatusPending,
			CreatedAt:       input.Now,
			UpdatedAt:       input.Now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create mint record: %w", err)
		}

		var asset schema.Asset
		if err := tx.First(&asset, "id = ?", input.AssetID).Error; err != nil {
			return fmt.Errorf("failed to reload claimed asset: %w", err)
		}

		claim = MintClaim{Asset: &asset, Record: &record}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// AdvanceMintStage durably records a stage/progress transition on the asset
// and mirrors it onto the open audit row
func (s *pgStore) AdvanceMintStage(ctx context.Context, input AdvanceMintStageInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assetUpdates := map[string]interface{}{
			"mint_stage":    input.Stage,
			"mint_progress": input.Progress,
			"updated_at":    input.Now,
		}
		if input.MetadataCID != nil {
			assetUpdates["metadata_cid"] = *input.MetadataCID
		}
		if input.MetadataURI != nil {
			assetUpdates["metadata_uri"] = *input.MetadataURI
		}
		if input.TxHash != nil {
			assetUpdates["mint_tx_hash"] = *input.TxHash
		}
		if input.SubmittedAt != nil {
			assetUpdates["mint_submitted_at"] = *input.SubmittedAt
		}
		if input.ConfirmedAt != nil {
			assetUpdates["mint_confirmed_at"] = *input.ConfirmedAt
		}

		res := tx.Model(&schema.Asset{}).
			Where("id = ? AND status = ?", input.AssetID, domain.AssetStatusMinting).
			Updates(assetUpdates)
		if res.Error != nil {
			return fmt.Errorf("failed to advance mint stage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidAssetState
		}

		recordUpdates := map[string]interface{}{
			"stage":      input.Stage,
			"updated_at": input.Now,
		}
		if input.MetadataURI != nil {
			recordUpdates["metadata_uri"] = *input.MetadataURI
		}
		if input.TxHash != nil {
			recordUpdates["tx_hash"] = *input.TxHash
		}

		// Open rows only; closed audit rows are immutable.
		if err := tx.Model(&schema.MintRecord{}).
			Where("id = ? AND completed_at IS NULL", input.RecordID).
			Updates(recordUpdates).Error; err != nil {
			return fmt.Errorf("failed to update mint record: %w", err)
		}
		return nil
	})
}

// CompleteMint finalizes a successful attempt in one transaction
func (s *pgStore) CompleteMint(ctx context.Context, input CompleteMintInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&schema.Asset{}).
			Where("id = ? AND status = ?", input.AssetID, domain.AssetStatusMinting).
			Updates(map[string]interface{}{
				"status":                      domain.AssetStatusMinted,
				"mint_stage":                  domain.MintStageCompleted,
				"mint_progress":               100,
				"can_retry":                   false,
				"token_id":                    input.TokenID,
				"contract_address":            input.ContractAddress,
				"chain_id":                    input.ChainID,
				"mint_tx_hash":                input.TxHash,
				"mint_block_number":           input.BlockNumber,
				"mint_gas_used":               input.GasUsed,
				"owner_address":               input.OwnerAddress,
				"ownership_status":            domain.OwnershipStatusActive,
				"current_owner_enterprise_id": input.OwnerEnterpriseID,
				"mint_completed_at":           input.Now,
				"updated_at":                  input.Now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to finalize asset: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidAssetState
		}

		stage := domain.MintStageCompleted
		if err := tx.Model(&schema.MintRecord{}).
			Where("id = ? AND completed_at IS NULL", input.RecordID).
			Updates(map[string]interface{}{
				"status":       domain.MintRecordStatusSuccess,
				"stage":        stage,
				"token_id":     input.TokenID,
				"tx_hash":      input.TxHash,
				"block_number": input.BlockNumber,
				"gas_used":     input.GasUsed,
				"completed_at": input.Now,
				"updated_at":   input.Now,
			}).Error; err != nil {
			return fmt.Errorf("failed to close mint record: %w", err)
		}

		// Enterprise name is denormalized into the ledger row so the mint
		// history survives enterprise renaming or deletion.
		var enterprise schema.Enterprise
		var enterpriseName *string
		if err := tx.Select("name").First(&enterprise, "id = ?", input.OwnerEnterpriseID).Error; err == nil {
			enterpriseName = &enterprise.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to resolve enterprise name: %w", err)
		}

		txHash := input.TxHash
		blockNumber := input.BlockNumber
		transferRecord := schema.NFTTransferRecord{
			ID:               uuid.New(),
			TokenID:          input.TokenID,
			ContractAddress:  input.ContractAddress,
			TransferType:     domain.TransferTypeMint,
			FromAddress:      domain.ETHEREUM_ZERO_ADDRESS,
			ToAddress:        input.OwnerAddress,
			ToEnterpriseID:   &input.OwnerEnterpriseID,
			ToEnterpriseName: enterpriseName,
			OperatorUserID:   &input.OperatorID,
			TxHash:           &txHash,
			BlockNumber:      &blockNumber,
			Status:           domain.TransferStatusConfirmed,
			CreatedAt:        input.Now,
			ConfirmedAt:      &input.Now,
		}
		if err := tx.Create(&transferRecord).Error; err != nil {
			return fmt.Errorf("failed to create mint transfer record: %w", err)
		}

		return nil
	})
}

// FailMint records a failed attempt and closes the audit row
func (s *pgStore) FailMint(ctx context.Context, input FailMintInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&schema.Asset{}).
			Where("id = ? AND status = ?", input.AssetID, domain.AssetStatusMinting).
			Updates(map[string]interface{}{
				"status":               domain.AssetStatusMintFailed,
				"mint_stage":           domain.MintStageFailed,
				"mint_progress":        0,
				"can_retry":            input.CanRetry,
				"last_mint_error":      input.ErrorMessage,
				"last_mint_error_code": input.ErrorCode,
				"updated_at":           input.Now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to record mint failure: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidAssetState
		}

		recordUpdates := map[string]interface{}{
			"status":        domain.MintRecordStatusFailed,
			"stage":         domain.MintStageFailed,
			"error_code":    input.ErrorCode,
			"error_message": input.ErrorMessage,
			"completed_at":  input.Now,
			"updated_at":    input.Now,
		}
		if input.TxHash != nil {
			recordUpdates["tx_hash"] = *input.TxHash
		}
		if err := tx.Model(&schema.MintRecord{}).
			Where("id = ? AND completed_at IS NULL", input.RecordID).
			Updates(recordUpdates).Error; err != nil {
			return fmt.Errorf("failed to close mint record: %w", err)
		}
		return nil
	})
}

// GetMintRecords retrieves an asset's mint audit rows, newest first
func (s *pgStore) GetMintRecords(ctx context.Context, assetID uuid.UUID, limit int, offset uint64) ([]schema.MintRecord, uint64, error) {
	var total int64
	if err := s.db.WithContext(ctx).
		Model(&schema.MintRecord{}).
		Where("asset_id = ?", assetID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count mint records: %w", err)
	}

	var records []schema.MintRecord
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		Limit(limit).
		Offset(int(offset)). //nolint:gosec,G115
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get mint records: %w", err)
	}
	return records, uint64(total), nil //nolint:gosec,G115
}

// TransferOwnership appends a confirmed transfer-ledger row and updates the
// asset's ownership fields in one transaction
func (s *pgStore) TransferOwnership(ctx context.Context, input TransferOwnershipInput) (*schema.NFTTransferRecord, error) {
	record := schema.NFTTransferRecord{
		ID:                 uuid.New(),
		TokenID:            input.TokenID,
		ContractAddress:    input.ContractAddress,
		TransferType:       domain.TransferTypeTransfer,
		FromAddress:        input.FromAddress,
		FromEnterpriseID:   input.FromEnterpriseID,
		FromEnterpriseName: input.FromEnterpriseName,
		ToAddress:          input.ToAddress,
		ToEnterpriseID:     input.ToEnterpriseID,
		ToEnterpriseName:   input.ToEnterpriseName,
		OperatorUserID:     &input.OperatorUserID,
		TxHash:             &input.TxHash,
		BlockNumber:        input.BlockNumber,
		Status:             domain.TransferStatusConfirmed,
		Remarks:            input.Remarks,
		CreatedAt:          input.Now,
		ConfirmedAt:        &input.Now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create transfer record: %w", err)
		}

		res := tx.Model(&schema.Asset{}).
			Where("id = ? AND token_id = ?", input.AssetID, input.TokenID).
			Updates(map[string]interface{}{
				"owner_address":               input.ToAddress,
				"current_owner_enterprise_id": input.ToEnterpriseID,
				"ownership_status":            input.NewOwnershipStatus,
				"status":                      input.NewAssetStatus,
				"updated_at":                  input.Now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update asset ownership: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTokenNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ChangeOwnershipStatus appends an off-chain ownership event row and updates
// the asset's ownership status in one transaction
func (s *pgStore) ChangeOwnershipStatus(ctx context.Context, input ChangeOwnershipStatusInput) (*schema.NFTTransferRecord, error) {
	record := schema.NFTTransferRecord{
		ID:                 uuid.New(),
		TokenID:            input.TokenID,
		ContractAddress:    input.ContractAddress,
		TransferType:       input.TransferType,
		FromAddress:        input.OwnerAddress,
		FromEnterpriseID:   input.EnterpriseID,
		FromEnterpriseName: input.EnterpriseName,
		ToAddress:          input.OwnerAddress,
		ToEnterpriseID:     input.EnterpriseID,
		ToEnterpriseName:   input.EnterpriseName,
		OperatorUserID:     &input.OperatorUserID,
		Status:             domain.TransferStatusConfirmed,
		Remarks:            input.Remarks,
		CreatedAt:          input.Now,
		ConfirmedAt:        &input.Now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create ownership status record: %w", err)
		}

		res := tx.Model(&schema.Asset{}).
			Where("id = ? AND token_id = ?", input.AssetID, input.TokenID).
			Updates(map[string]interface{}{
				"ownership_status": input.NewStatus,
				"updated_at":       input.Now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update ownership status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrTokenNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetTransferRecords retrieves a token's transfer history, newest first
func (s *pgStore) GetTransferRecords(ctx context.Context, tokenID uint64, limit int, offset uint64) ([]schema.NFTTransferRecord, uint64, error) {
	var total int64
	if err := s.db.WithContext(ctx).
		Model(&schema.NFTTransferRecord{}).
		Where("token_id = ?", tokenID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfer records: %w", err)
	}

	var records []schema.NFTTransferRecord
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("created_at DESC").
		Limit(limit).
		Offset(int(offset)). //nolint:gosec,G115
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transfer records: %w", err)
	}
	return records, uint64(total), nil //nolint:gosec,G115
}

// GetEnterpriseAssets retrieves minted assets currently owned by an
// enterprise
func (s *pgStore) GetEnterpriseAssets(ctx context.Context, filter EnterpriseAssetFilter) ([]schema.Asset, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Asset{}).
		Where("current_owner_enterprise_id = ? AND token_id IS NOT NULL", filter.EnterpriseID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.OwnershipStatus != nil {
		query = query.Where("ownership_status = ?", *filter.OwnershipStatus)
	}
	if filter.Search != nil && *filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+*filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count enterprise assets: %w", err)
	}

	var assets []schema.Asset
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&assets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get enterprise assets: %w", err)
	}
	return assets, uint64(total), nil //nolint:gosec,G115
}

// GetEnterpriseOwnershipStats counts an enterprise's minted assets per
// ownership status
func (s *pgStore) GetEnterpriseOwnershipStats(ctx context.Context, enterpriseID uuid.UUID) (*EnterpriseOwnershipStats, error) {
	var stats EnterpriseOwnershipStats
	err := s.db.WithContext(ctx).Model(&schema.Asset{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE ownership_status = 'ACTIVE') AS active,
			COUNT(*) FILTER (WHERE ownership_status = 'LICENSED') AS licensed,
			COUNT(*) FILTER (WHERE ownership_status = 'STAKED') AS staked,
			COUNT(*) FILTER (WHERE ownership_status = 'TRANSFERRED') AS transferred`).
		Where("current_owner_enterprise_id = ? AND token_id IS NOT NULL", enterpriseID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership stats: %w", err)
	}
	return &stats, nil
}
