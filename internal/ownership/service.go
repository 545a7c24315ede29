package ownership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ipasset-labs/nft-minter/internal/adapter"
	"github.com/ipasset-labs/nft-minter/internal/chain"
	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/logger"
	"github.com/ipasset-labs/nft-minter/internal/messaging"
	"github.com/ipasset-labs/nft-minter/internal/store"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

// TransferInput is the caller-facing request for an on-chain ownership
// transfer
type TransferInput struct {
	TokenID        uint64
	ToAddress      string
	ToEnterpriseID *uuid.UUID
	OperatorUserID uuid.UUID
	Remarks        *string
}

// TransferOutcome is returned after a confirmed transfer
type TransferOutcome struct {
	TxHash           string
	TransferRecordID uuid.UUID
}

// StatusChangeInput is the caller-facing request for an off-chain ownership
// status change (license, stake, unstake)
type StatusChangeInput struct {
	TokenID        uint64
	NewStatus      domain.OwnershipStatus
	OperatorUserID uuid.UUID
	Remarks        *string
}

// Service performs permission-gated ownership operations on minted assets.
// On-chain transfers are all-or-nothing from the caller's perspective: a
// failed chain call writes no ledger row.
type Service struct {
	store       store.Store
	gateway     chain.Gateway
	publisher   messaging.Publisher
	clock       adapter.Clock
	callTimeout time.Duration
}

// NewService creates an ownership transfer service. The publisher may be
// nil; event publishing is best-effort.
func NewService(st store.Store, gateway chain.Gateway, publisher messaging.Publisher, clock adapter.Clock, callTimeout time.Duration) *Service {
	return &Service{
		store:       st,
		gateway:     gateway,
		publisher:   publisher,
		clock:       clock,
		callTimeout: callTimeout,
	}
}

// Transfer moves a minted token to a new owner: chain transfer first, then
// the ledger row and asset update in one transaction
func (s *Service) Transfer(ctx context.Context, input TransferInput) (*TransferOutcome, error) {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	asset, err := s.loadTransferableAsset(ctx, input.TokenID)
	if err != nil {
		return nil, err
	}

	if err := s.requireRole(ctx, asset, input.OperatorUserID); err != nil {
		return nil, err
	}

	// Enterprise names are resolved before the chain call and frozen into
	// the ledger row.
	fromName, err := s.enterpriseName(ctx, asset.CurrentOwnerEnterpriseID)
	if err != nil {
		return nil, err
	}
	toName, err := s.enterpriseName(ctx, input.ToEnterpriseID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.gateway.Transfer(ctx, *asset.OwnerAddress, input.ToAddress, input.TokenID)
	if err != nil {
		var chainErr *domain.ChainError
		if !errors.As(err, &chainErr) {
			chainErr = &domain.ChainError{Err: err}
		}
		return nil, chainErr
	}

	// Moving to an address with no enterprise attached marks the asset as
	// having left the platform's ownership tracking.
	newOwnershipStatus := domain.OwnershipStatusActive
	if input.ToEnterpriseID == nil {
		newOwnershipStatus = domain.OwnershipStatusTransferred
	}

	record, err := s.store.TransferOwnership(ctx, store.TransferOwnershipInput{
		AssetID:            asset.ID,
		TokenID:            input.TokenID,
		ContractAddress:    contractAddress(asset),
		FromAddress:        *asset.OwnerAddress,
		FromEnterpriseID:   asset.CurrentOwnerEnterpriseID,
		FromEnterpriseName: fromName,
		ToAddress:          input.ToAddress,
		ToEnterpriseID:     input.ToEnterpriseID,
		ToEnterpriseName:   toName,
		OperatorUserID:     input.OperatorUserID,
		TxHash:             receipt.TxHash,
		BlockNumber:        &receipt.BlockNumber,
		Remarks:            input.Remarks,
		NewOwnershipStatus: newOwnershipStatus,
		NewAssetStatus:     domain.AssetStatusTransferred,
		Now:                s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership transferred",
		zap.Uint64("tokenID", input.TokenID),
		zap.String("to", input.ToAddress),
		zap.String("txHash", receipt.TxHash))

	s.publishEvent(ctx, &domain.AssetEvent{
		EventType:       domain.AssetEventTypeTransferred,
		AssetID:         asset.ID,
		TokenID:         input.TokenID,
		ContractAddress: contractAddress(asset),
		Chain:           chainID(asset),
		FromAddress:     *asset.OwnerAddress,
		ToAddress:       input.ToAddress,
		TxHash:          receipt.TxHash,
		Timestamp:       s.clock.Now(),
	})

	return &TransferOutcome{
		TxHash:           receipt.TxHash,
		TransferRecordID: record.ID,
	}, nil
}

// statusTransferTypes maps an off-chain status change to the ledger row
// type it produces
var statusTransferTypes = map[domain.OwnershipStatus]domain.TransferType{
	domain.OwnershipStatusLicensed: domain.TransferTypeLicense,
	domain.OwnershipStatusStaked:   domain.TransferTypeStake,
	domain.OwnershipStatusActive:   domain.TransferTypeUnstake,
}

// UpdateOwnershipStatus performs an off-chain ownership state change with
// the same permission gate as Transfer but no chain call
func (s *Service) UpdateOwnershipStatus(ctx context.Context, input StatusChangeInput) (*schema.NFTTransferRecord, error) {
	transferType, ok := statusTransferTypes[input.NewStatus]
	if !ok {
		return nil, domain.ErrInvalidAssetState
	}

	asset, err := s.loadTransferableAsset(ctx, input.TokenID)
	if err != nil {
		return nil, err
	}

	if err := s.requireRole(ctx, asset, input.OperatorUserID); err != nil {
		return nil, err
	}

	name, err := s.enterpriseName(ctx, asset.CurrentOwnerEnterpriseID)
	if err != nil {
		return nil, err
	}

	record, err := s.store.ChangeOwnershipStatus(ctx, store.ChangeOwnershipStatusInput{
		AssetID:         asset.ID,
		TokenID:         input.TokenID,
		ContractAddress: contractAddress(asset),
		OwnerAddress:    *asset.OwnerAddress,
		EnterpriseID:    asset.CurrentOwnerEnterpriseID,
		EnterpriseName:  name,
		TransferType:    transferType,
		NewStatus:       input.NewStatus,
		OperatorUserID:  input.OperatorUserID,
		Remarks:         input.Remarks,
		Now:             s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership status changed",
		zap.Uint64("tokenID", input.TokenID),
		zap.String("newStatus", string(input.NewStatus)))

	s.publishEvent(ctx, &domain.AssetEvent{
		EventType:       domain.AssetEventTypeOwnershipChanged,
		AssetID:         asset.ID,
		TokenID:         input.TokenID,
		ContractAddress: contractAddress(asset),
		Chain:           chainID(asset),
		FromAddress:     *asset.OwnerAddress,
		Timestamp:       s.clock.Now(),
	})

	return record, nil
}

// TransferHistory returns a token's transfer ledger, newest first
func (s *Service) TransferHistory(ctx context.Context, tokenID uint64, limit int, offset uint64) ([]schema.NFTTransferRecord, uint64, error) {
	if _, err := s.store.GetAssetByTokenID(ctx, tokenID); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.GetTransferRecords(ctx, tokenID, limit, offset)
}

// EnterpriseAssets returns minted assets currently owned by an enterprise
func (s *Service) EnterpriseAssets(ctx context.Context, filter store.EnterpriseAssetFilter) ([]schema.Asset, uint64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.store.GetEnterpriseAssets(ctx, filter)
}

// EnterpriseStats returns per-status counts of an enterprise's minted assets
func (s *Service) EnterpriseStats(ctx context.Context, enterpriseID uuid.UUID) (*store.EnterpriseOwnershipStats, error) {
	return s.store.GetEnterpriseOwnershipStats(ctx, enterpriseID)
}

// loadTransferableAsset loads the asset for a token and checks it is in a
// state ownership operations may act on
func (s *Service) loadTransferableAsset(ctx context.Context, tokenID uint64) (*schema.Asset, error) {
	asset, err := s.store.GetAssetByTokenID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetStatusMinted && asset.Status != domain.AssetStatusTransferred {
		return nil, domain.ErrInvalidAssetState
	}
	if asset.OwnerAddress == nil || *asset.OwnerAddress == "" {
		return nil, domain.ErrMissingOwner
	}
	return asset, nil
}

// requireRole checks the operator holds OWNER or ADMIN in the asset's
// current owner enterprise
func (s *Service) requireRole(ctx context.Context, asset *schema.Asset, operatorUserID uuid.UUID) error {
	if asset.CurrentOwnerEnterpriseID == nil {
		return domain.ErrForbidden
	}
	allowed, err := s.store.HasEnterpriseRole(ctx, *asset.CurrentOwnerEnterpriseID, operatorUserID,
		domain.MemberRoleOwner, domain.MemberRoleAdmin)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrForbidden
	}
	return nil
}

// enterpriseName resolves a display name for the ledger row, tolerating a
// missing enterprise
func (s *Service) enterpriseName(ctx context.Context, enterpriseID *uuid.UUID) (*string, error) {
	if enterpriseID == nil {
		return nil, nil
	}
	name, err := s.store.GetEnterpriseName(ctx, *enterpriseID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	return &name, nil
}

func (s *Service) publishEvent(ctx context.Context, event *domain.AssetEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAssetEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish asset event",
			zap.String("assetID", event.AssetID.String()),
			zap.Error(err))
	}
}

func contractAddress(asset *schema.Asset) string {
	if asset.ContractAddress == nil {
		return ""
	}
	return *asset.ContractAddress
}

func chainID(asset *schema.Asset) domain.Chain {
	if asset.ChainID == nil {
		return ""
	}
	return *asset.ChainID
}
