package mint

import (
	"context"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/logger"
)

// ItemResult is the per-asset outcome of a batch mint
type ItemResult struct {
	AssetID uuid.UUID `json:"asset_id"`
	TokenID uint64    `json:"token_id,omitempty"`
	TxHash  string    `json:"tx_hash,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Succeeded reports whether the item minted
func (r ItemResult) Succeeded() bool {
	return r.Error == ""
}

// BatchResult summarizes a batch mint. Partial success is the expected
// steady state, not an error.
type BatchResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// BatchCoordinator fans a batch of assets out over a bounded worker pool.
// Each asset mints independently; one asset's failure never aborts its
// siblings.
type BatchCoordinator struct {
	orchestrator *Orchestrator
	pool         pond.Pool
}

// NewBatchCoordinator creates a batch coordinator over a shared worker pool
func NewBatchCoordinator(orchestrator *Orchestrator, poolSize, queueSize int) *BatchCoordinator {
	return &BatchCoordinator{
		orchestrator: orchestrator,
		pool: pond.NewPool(
			poolSize,
			pond.WithQueueSize(queueSize),
		),
	}
}

// BatchMint mints every asset in the batch to the same recipient. The size
// bounds are validated before any asset is touched.
func (b *BatchCoordinator) BatchMint(ctx context.Context, assetIDs []uuid.UUID, recipientAddress string, operatorID uuid.UUID) (*BatchResult, error) {
	if len(assetIDs) < domain.MIN_BATCH_SIZE {
		return nil, domain.ErrEmptyBatch
	}
	if len(assetIDs) > domain.MAX_BATCH_SIZE {
		return nil, domain.ErrBatchTooLarge
	}

	items := make([]ItemResult, len(assetIDs))
	group := b.pool.NewGroup()

	for i, assetID := range assetIDs {
		group.SubmitErr(func() error {
			result, err := b.orchestrator.Mint(ctx, assetID, recipientAddress, operatorID)
			if err != nil {
				items[i] = ItemResult{AssetID: assetID, Error: err.Error()}
				return nil // per-asset errors are isolated, never abort the group
			}
			items[i] = ItemResult{
				AssetID: assetID,
				TokenID: result.TokenID,
				TxHash:  result.TxHash,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &BatchResult{Total: len(assetIDs), Items: items}
	for _, item := range items {
		if item.Succeeded() {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	logger.InfoCtx(ctx, "batch mint finished",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))

	return result, nil
}

// Close drains the worker pool
func (b *BatchCoordinator) Close() {
	b.pool.StopAndWait()
}
