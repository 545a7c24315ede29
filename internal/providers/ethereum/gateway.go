package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/ipasset-labs/nft-minter/internal/chain"
	"github.com/ipasset-labs/nft-minter/internal/config"
	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/logger"
)

// ipnftABI covers the contract surface the minter drives: the mint and
// transferFrom functions plus the events needed to read results back out of
// transaction receipts.
const ipnftABI = `[
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"metadataURI","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true}]},
	{"type":"event","name":"NFTMinted","inputs":[{"name":"tokenId","type":"uint256","indexed":false},{"name":"to","type":"address","indexed":false},{"name":"metadataURI","type":"string","indexed":false}]}
]`

// Backend is the subset of an Ethereum node client the gateway needs.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type gateway struct {
	backend         Backend
	contract        *bind.BoundContract
	contractABI     abi.ABI
	contractAddress common.Address
	signer          *bind.TransactOpts
	chainID         domain.Chain
	cfg             config.EthereumConfig
}

// NewGateway creates an Ethereum-backed NFT contract gateway signing with the
// platform minting wallet
func NewGateway(cfg config.EthereumConfig, backend Backend) (chain.Gateway, error) {
	parsedABI, err := abi.JSON(strings.NewReader(ipnftABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	numericChainID, err := numericChainID(cfg.ChainID)
	if err != nil {
		return nil, err
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SignerKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer key: %w", err)
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, numericChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	contractAddress := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(contractAddress, parsedABI, backend, backend, backend)

	return &gateway{
		backend:         backend,
		contract:        contract,
		contractABI:     parsedABI,
		contractAddress: contractAddress,
		signer:          signer,
		chainID:         cfg.ChainID,
		cfg:             cfg,
	}, nil
}

// numericChainID extracts the numeric chain id from a CAIP-2 identifier
func numericChainID(chainID domain.Chain) (*big.Int, error) {
	raw, ok := strings.CutPrefix(string(chainID), "eip155:")
	if !ok {
		return nil, fmt.Errorf("unsupported chain: %s", chainID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chain id %q: %w", raw, err)
	}
	return big.NewInt(id), nil
}

// Mint submits a mint transaction and waits for it to be mined
func (g *gateway) Mint(ctx context.Context, to string, metadataURI string) (*chain.MintReceipt, error) {
	tx, err := g.transact(ctx, "mint", common.HexToAddress(to), metadataURI)
	if err != nil {
		return nil, fmt.Errorf("failed to submit mint transaction: %w", err)
	}

	logger.InfoCtx(ctx, "mint transaction submitted",
		zap.String("txHash", tx.Hash().Hex()),
		zap.String("to", to))

	receipt, err := g.waitMined(ctx, tx)
	if err != nil {
		return nil, &domain.ChainError{TxHash: tx.Hash().Hex(), Err: err}
	}

	tokenID, err := tokenIDFromReceipt(g.contractABI, g.contractAddress, receipt)
	if err != nil {
		return nil, &domain.ChainError{TxHash: tx.Hash().Hex(), Err: err}
	}

	return &chain.MintReceipt{
		TokenID:         tokenID,
		ContractAddress: g.contractAddress.Hex(),
		ChainID:         g.chainID,
		TxHash:          tx.Hash().Hex(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
	}, nil
}

// Transfer submits a transferFrom transaction and waits for it to be mined
func (g *gateway) Transfer(ctx context.Context, from, to string, tokenID uint64) (*chain.TransferReceipt, error) {
	tx, err := g.transact(ctx, "transferFrom",
		common.HexToAddress(from), common.HexToAddress(to), new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to submit transfer transaction: %w", err)
	}

	logger.InfoCtx(ctx, "transfer transaction submitted",
		zap.String("txHash", tx.Hash().Hex()),
		zap.Uint64("tokenID", tokenID))

	receipt, err := g.waitMined(ctx, tx)
	if err != nil {
		return nil, &domain.ChainError{TxHash: tx.Hash().Hex(), Err: err}
	}

	return &chain.TransferReceipt{
		TxHash:      tx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// transact invokes a state-changing contract method within the call timeout
func (g *gateway) transact(ctx context.Context, method string, args ...interface{}) (*types.Transaction, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
	defer cancel()

	opts := *g.signer
	opts.Context = callCtx

	return g.contract.Transact(&opts, method, args...)
}

// waitMined blocks until the transaction is mined and checks its status
func (g *gateway) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	confirmCtx, cancel := context.WithTimeout(ctx, g.cfg.ConfirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(confirmCtx, g.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// tokenIDFromReceipt extracts the minted token id from the Transfer event
// emitted by the contract. A mint is a Transfer from the zero address.
func tokenIDFromReceipt(contractABI abi.ABI, contractAddress common.Address, receipt *types.Receipt) (uint64, error) {
	transferTopic := contractABI.Events["Transfer"].ID
	zeroAddress := common.HexToAddress(domain.ETHEREUM_ZERO_ADDRESS)

	for _, log := range receipt.Logs {
		if log.Address != contractAddress {
			continue
		}
		if len(log.Topics) != 4 || log.Topics[0] != transferTopic {
			continue
		}
		if common.BytesToAddress(log.Topics[1].Bytes()) != zeroAddress {
			continue
		}
		return log.Topics[3].Big().Uint64(), nil
	}

	return 0, fmt.Errorf("no mint Transfer event found in transaction %s", receipt.TxHash.Hex())
}
