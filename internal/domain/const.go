package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// IPFS_URI_SCHEME is the scheme prefix for content published to IPFS
	IPFS_URI_SCHEME = "ipfs://"

	// Batch minting bounds
	MIN_BATCH_SIZE = 1
	MAX_BATCH_SIZE = 50

	// DEFAULT_MAX_MINT_ATTEMPTS is the per-asset attempt ceiling unless
	// an operator raises it
	DEFAULT_MAX_MINT_ATTEMPTS = 3
)
