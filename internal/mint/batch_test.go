package mint

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipasset-labs/nft-minter/internal/chain"
	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/store"
	"github.com/ipasset-labs/nft-minter/internal/store/schema"
)

func TestBatchMint_SizeBounds(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	b := NewBatchCoordinator(o, 2, 8)
	defer b.Close()

	_, err := b.BatchMint(context.Background(), nil, testRecipient, uuid.New())
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	oversized := make([]uuid.UUID, domain.MAX_BATCH_SIZE+1)
	for i := range oversized {
		oversized[i] = uuid.New()
	}
	_, err = b.BatchMint(context.Background(), oversized, testRecipient, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
}

func TestBatchMint_PartialSuccess(t *testing.T) {
	o, m := newTestOrchestrator(t)
	b := NewBatchCoordinator(o, 2, 8)
	defer b.Close()

	goodID := uuid.New()
	badID := uuid.New()
	operatorID := uuid.New()
	recordID := uuid.New()

	asset := draftAsset(goodID)
	claimed := *asset
	claimed.Status = domain.AssetStatusMinting
	claimed.MintAttemptCount = 1

	receipt := &chain.MintReceipt{
		TokenID:         9,
		ContractAddress: "0x2222222222222222222222222222222222222222",
		ChainID:         domain.ChainEthereumSepolia,
		TxHash:          "0x9",
	}

	m.store.EXPECT().GetAssetByID(gomock.Any(), goodID).Return(asset, nil)
	m.store.EXPECT().GetAttachments(gomock.Any(), goodID).Return(testAttachments(goodID), nil)
	m.store.EXPECT().
		ClaimMintAttempt(gomock.Any(), gomock.Any()).
		Return(&store.MintClaim{Asset: &claimed, Record: &schema.MintRecord{ID: recordID, AssetID: goodID}}, nil)
	m.store.EXPECT().AdvanceMintStage(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	m.content.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("QmMetaCID", nil)
	m.gateway.EXPECT().Mint(gomock.Any(), testRecipient, "ipfs://QmMetaCID").Return(receipt, nil)
	m.store.EXPECT().CompleteMint(gomock.Any(), gomock.Any()).Return(nil)
	m.publisher.EXPECT().PublishAssetEvent(gomock.Any(), gomock.Any()).Return(nil)

	m.store.EXPECT().GetAssetByID(gomock.Any(), badID).Return(nil, domain.ErrAssetNotFound)

	result, err := b.BatchMint(context.Background(), []uuid.UUID{goodID, badID}, testRecipient, operatorID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Items, 2)
	// Item order follows the input order regardless of completion order.
	assert.Equal(t, goodID, result.Items[0].AssetID)
	assert.True(t, result.Items[0].Succeeded())
	assert.Equal(t, uint64(9), result.Items[0].TokenID)
	assert.Equal(t, badID, result.Items[1].AssetID)
	assert.False(t, result.Items[1].Succeeded())
	assert.Contains(t, result.Items[1].Error, "asset not found")
}

func TestBatchMint_SingleAsset(t *testing.T) {
	o, m := newTestOrchestrator(t)
	b := NewBatchCoordinator(o, 1, 4)
	defer b.Close()

	assetID := uuid.New()
	m.store.EXPECT().GetAssetByID(gomock.Any(), assetID).Return(nil, domain.ErrAssetNotFound)

	result, err := b.BatchMint(context.Background(), []uuid.UUID{assetID}, testRecipient, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
}
