package mint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ipasset-labs/nft-minter/internal/adapter"
	"github.com/ipasset-labs/nft-minter/internal/chain"
	"github.com/ipasset-labs/nft-minter/internal/content"
	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/logger"
	"github.com/ipasset-labs/nft-minter/internal/messaging"
	"github.com/ipasset-labs/nft-minter/internal/metadata"
	"github.com/ipasset-labs/nft-minter/internal/store"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

// Result is returned to the caller after a successful mint
type Result struct {
	AssetID     uuid.UUID
	TokenID     uint64
	TxHash      string
	MetadataURI string
}

// Orchestrator drives a single asset through the mint stage sequence,
// durably recording each transition before the next external call. One
// Orchestrator serves many assets concurrently; per-asset exclusivity is
// enforced by the store's conditional claim.
type Orchestrator struct {
	store       store.Store
	content     content.Store
	gateway     chain.Gateway
	publisher   messaging.Publisher
	policy      RetryPolicy
	clock       adapter.Clock
	callTimeout time.Duration
}

// NewOrchestrator creates a mint orchestrator. The publisher may be nil;
// event publishing is best-effort and never fails a mint.
func NewOrchestrator(
	st store.Store,
	contentStore content.Store,
	gateway chain.Gateway,
	publisher messaging.Publisher,
	policy RetryPolicy,
	clock adapter.Clock,
	callTimeout time.Duration,
) *Orchestrator {
	return &Orchestrator{
		store:       st,
		content:     contentStore,
		gateway:     gateway,
		publisher:   publisher,
		policy:      policy,
		clock:       clock,
		callTimeout: callTimeout,
	}
}

// Mint runs one mint attempt for the asset and blocks until the token is
// confirmed on chain or the attempt fails
func (o *Orchestrator) Mint(ctx context.Context, assetID uuid.UUID, recipientAddress string, operatorID uuid.UUID) (*Result, error) {
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}

	asset, err := o.store.GetAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	operation := domain.MintOperationRequest
	switch asset.Status {
	case domain.AssetStatusDraft, domain.AssetStatusPending:
	case domain.AssetStatusMintFailed:
		if !asset.CanRetry || asset.MintAttemptCount >= asset.MaxMintAttempts {
			return nil, domain.ErrRetryExhausted
		}
		operation = domain.MintOperationRetry
	default:
		return nil, domain.ErrInvalidAssetState
	}

	// Checked before the claim so a no-attachment mint leaves the asset
	// untouched.
	attachments, err := o.store.GetAttachments(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if len(attachments) == 0 {
		return nil, domain.ErrNoAttachments
	}

	return o.mint(ctx, assetID, recipientAddress, operatorID, operation, attachments)
}

// RetryMint re-runs a failed mint. The asset must be MINT_FAILED and still
// within its attempt budget.
func (o *Orchestrator) RetryMint(ctx context.Context, assetID uuid.UUID, recipientAddress string, operatorID uuid.UUID) (*Result, error) {
	asset, err := o.store.GetAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetStatusMintFailed {
		return nil, domain.ErrInvalidAssetState
	}
	if !asset.CanRetry || asset.MintAttemptCount >= asset.MaxMintAttempts {
		return nil, domain.ErrRetryExhausted
	}
	if recipientAddress == "" && asset.RecipientAddress != nil {
		recipientAddress = *asset.RecipientAddress
	}

	return o.Mint(ctx, assetID, recipientAddress, operatorID)
}

// mint performs one attempt. The claim is the exclusivity commit point;
// every later stage write is guarded by the transition table.
func (o *Orchestrator) mint(ctx context.Context, assetID uuid.UUID, recipientAddress string, operatorID uuid.UUID, operation domain.MintOperation, attachments []schema.Attachment) (*Result, error) {
	claim, err := o.store.ClaimMintAttempt(ctx, store.ClaimMintAttemptInput{
		AssetID:          assetID,
		Operation:        operation,
		OperatorID:       operatorID,
		RecipientAddress: recipientAddress,
		Now:              o.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	asset, record := claim.Asset, claim.Record

	logger.InfoCtx(ctx, "mint attempt claimed",
		zap.String("assetID", assetID.String()),
		zap.Int("attempt", asset.MintAttemptCount),
		zap.String("operation", string(operation)))

	doc, err := metadata.BuildTokenMetadata(asset, attachments)
	if err != nil {
		o.failAttempt(ctx, asset, record, domain.ErrorCodeContentPublishFailed, err, nil)
		return nil, &domain.PublishError{Err: err}
	}

	// Stage: SUBMITTING, metadata publish
	stage, err := Transition(domain.MintStagePreparing, EventPublish)
	if err != nil {
		return nil, err
	}
	if err := o.store.AdvanceMintStage(ctx, store.AdvanceMintStageInput{
		AssetID:  assetID,
		RecordID: record.ID,
		Stage:    stage,
		Progress: ProgressPublishing,
		Now:      o.clock.Now(),
	}); err != nil {
		return nil, err
	}

	cid, err := o.content.Publish(ctx, fmt.Sprintf("asset-%s", assetID), doc)
	if err != nil {
		o.failAttempt(ctx, asset, record, domain.ErrorCodeContentPublishFailed, err, nil)
		return nil, &domain.PublishError{Err: err}
	}
	uri := metadata.IPFSURI(cid)

	// Same stage, chain submission checkpoint
	if err := o.store.AdvanceMintStage(ctx, store.AdvanceMintStageInput{
		AssetID:     assetID,
		RecordID:    record.ID,
		Stage:       stage,
		Progress:    ProgressSubmitting,
		MetadataCID: &cid,
		MetadataURI: &uri,
		Now:         o.clock.Now(),
	}); err != nil {
		return nil, err
	}

	submittedAt := o.clock.Now()
	receipt, err := o.gateway.Mint(ctx, recipientAddress, uri)
	if err != nil {
		// Keep the submitted hash when the gateway got the transaction out
		// before failing, so the attempt can be traced on chain.
		var chainErr *domain.ChainError
		if !errors.As(err, &chainErr) {
			chainErr = &domain.ChainError{Err: err}
		}
		var txHash *string
		if chainErr.TxHash != "" {
			txHash = &chainErr.TxHash
		}
		o.failAttempt(ctx, asset, record, domain.ErrorCodeChainSubmitFailed, err, txHash)
		return nil, chainErr
	}

	// Stage: CONFIRMING
	confirmedAt := o.clock.Now()
	stage, err = Transition(stage, EventConfirm)
	if err != nil {
		return nil, err
	}
	if err := o.store.AdvanceMintStage(ctx, store.AdvanceMintStageInput{
		AssetID:     assetID,
		RecordID:    record.ID,
		Stage:       stage,
		Progress:    ProgressConfirming,
		TxHash:      &receipt.TxHash,
		SubmittedAt: &submittedAt,
		ConfirmedAt: &confirmedAt,
		Now:         confirmedAt,
	}); err != nil {
		return nil, err
	}

	// Stage: COMPLETED
	if _, err = Transition(stage, EventSuccess); err != nil {
		return nil, err
	}
	if err := o.store.CompleteMint(ctx, store.CompleteMintInput{
		AssetID:           assetID,
		RecordID:          record.ID,
		TokenID:           receipt.TokenID,
		ContractAddress:   receipt.ContractAddress,
		ChainID:           receipt.ChainID,
		TxHash:            receipt.TxHash,
		BlockNumber:       receipt.BlockNumber,
		GasUsed:           receipt.GasUsed,
		OwnerAddress:      recipientAddress,
		OwnerEnterpriseID: asset.EnterpriseID,
		OperatorID:        operatorID,
		Now:               o.clock.Now(),
	}); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "mint completed",
		zap.String("assetID", assetID.String()),
		zap.Uint64("tokenID", receipt.TokenID),
		zap.String("txHash", receipt.TxHash))

	o.publishEvent(ctx, &domain.AssetEvent{
		EventType:       domain.AssetEventTypeMinted,
		AssetID:         assetID,
		TokenID:         receipt.TokenID,
		ContractAddress: receipt.ContractAddress,
		Chain:           receipt.ChainID,
		ToAddress:       recipientAddress,
		TxHash:          receipt.TxHash,
		Timestamp:       confirmedAt,
	})

	return &Result{
		AssetID:     assetID,
		TokenID:     receipt.TokenID,
		TxHash:      receipt.TxHash,
		MetadataURI: uri,
	}, nil
}

// failAttempt records the failure on the asset and closes the audit row.
// Store errors here are logged, not returned; the original failure is what
// the caller needs to see.
func (o *Orchestrator) failAttempt(ctx context.Context, asset *schema.Asset, record *schema.MintRecord, errorCode string, cause error, txHash *string) {
	canRetry := o.policy.ShouldAllowRetry(asset.MintAttemptCount, asset.MaxMintAttempts, errorCode)

	if err := o.store.FailMint(ctx, store.FailMintInput{
		AssetID:      asset.ID,
		RecordID:     record.ID,
		ErrorCode:    errorCode,
		ErrorMessage: cause.Error(),
		CanRetry:     canRetry,
		TxHash:       txHash,
		Now:          o.clock.Now(),
	}); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("assetID", asset.ID.String()),
			zap.String("message", "failed to record mint failure"))
	}

	logger.WarnCtx(ctx, "mint attempt failed",
		zap.String("assetID", asset.ID.String()),
		zap.String("errorCode", errorCode),
		zap.Int("attempt", asset.MintAttemptCount),
		zap.Bool("canRetry", canRetry),
		zap.Error(cause))
}

// publishEvent emits an asset event to the broker, best-effort
func (o *Orchestrator) publishEvent(ctx context.Context, event *domain.AssetEvent) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishAssetEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish asset event",
			zap.String("assetID", event.AssetID.String()),
			zap.Error(err))
	}
}

// MintStatus returns the asset's current mint progress snapshot
func (o *Orchestrator) MintStatus(ctx context.Context, assetID uuid.UUID) (*domain.MintStatusSnapshot, error) {
	asset, err := o.store.GetAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	return &domain.MintStatusSnapshot{
		AssetID:           asset.ID,
		Status:            asset.Status,
		MintStage:         asset.MintStage,
		MintProgress:      asset.MintProgress,
		MintAttemptCount:  asset.MintAttemptCount,
		MaxMintAttempts:   asset.MaxMintAttempts,
		CanRetry:          asset.CanRetry,
		TokenID:           asset.TokenID,
		ContractAddress:   asset.ContractAddress,
		MetadataURI:       asset.MetadataURI,
		MintTxHash:        asset.MintTxHash,
		LastMintError:     asset.LastMintError,
		LastMintErrorCode: asset.LastMintErrorCode,
		MintRequestedAt:   asset.MintRequestedAt,
		MintCompletedAt:   asset.MintCompletedAt,
		LastMintAttemptAt: asset.LastMintAttemptAt,
	}, nil
}

// MintHistory returns the asset's mint audit rows, newest first
func (o *Orchestrator) MintHistory(ctx context.Context, assetID uuid.UUID, limit int, offset uint64) ([]schema.MintRecord, uint64, error) {
	if _, err := o.store.GetAssetByID(ctx, assetID); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return o.store.GetMintRecords(ctx, assetID, limit, offset)
}
