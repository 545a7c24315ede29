package chain

import (
	"context"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// MintReceipt is the result of a confirmed on-chain mint
type MintReceipt struct {
	TokenID         uint64
	ContractAddress string
	ChainID         domain.Chain
	TxHash          string
	BlockNumber     uint64
	GasUsed         uint64
}

// TransferReceipt is the result of a confirmed on-chain transfer
type TransferReceipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}

// Gateway defines the interface for NFT contract operations. Failures that
// happen after a transaction was accepted by the node are returned as a
// *domain.ChainError carrying the submitted transaction hash.
//
//go:generate mockgen -source=gateway.go -destination=../mocks/chain.go -package=mocks -mock_names=Gateway=MockChainGateway
type Gateway interface {
	// Mint submits a mint transaction for the recipient and waits for it to
	// be mined
	Mint(ctx context.Context, to string, metadataURI string) (*MintReceipt, error)

	// Transfer submits a transferFrom transaction and waits for it to be
	// mined
	Transfer(ctx context.Context, from, to string, tokenID uint64) (*TransferReceipt, error)
}
