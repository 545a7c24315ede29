package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAssetNotFound is returned when an asset does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTokenNotFound is returned when no asset carries the given token id
	ErrTokenNotFound = errors.New("token not found")

	// ErrInvalidAssetState is returned when the asset status disallows the
	// requested operation
	ErrInvalidAssetState = errors.New("invalid asset state")

	// ErrNoAttachments is returned when minting an asset without attachments
	ErrNoAttachments = errors.New("asset has no attachments")

	// ErrForbidden is returned when the operator lacks the required role
	ErrForbidden = errors.New("operation not permitted")

	// ErrMissingOwner is returned when a minted asset has no owner address
	ErrMissingOwner = errors.New("asset has no owner address")

	// ErrRetryExhausted is returned when the attempt ceiling is reached
	ErrRetryExhausted = errors.New("mint retry attempts exhausted")

	// ErrMintConflict is returned when another mint attempt already claimed
	// the asset (single-flight guard)
	ErrMintConflict = errors.New("mint already in progress")

	// ErrEmptyBatch is returned when a batch mint receives no asset ids
	ErrEmptyBatch = errors.New("batch contains no assets")

	// ErrBatchTooLarge is returned when a batch exceeds the size limit
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)

// Mint error codes recorded on the asset and its audit rows
const (
	ErrorCodeContentPublishFailed = "CONTENT_PUBLISH_FAILED"
	ErrorCodeChainSubmitFailed    = "CHAIN_SUBMIT_FAILED"
)

// PublishError wraps a content-store failure. It is retryable up to the
// asset's attempt ceiling.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("metadata publish failed: %v", e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// ChainError wraps a blockchain gateway failure. It is retryable up to the
// asset's attempt ceiling. TxHash is set when the transaction was accepted
// by the node before the failure, so a timed-out or reverted submission can
// still be located on chain.
type ChainError struct {
	TxHash string
	Err    error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("chain transaction failed: %v", e.Err)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether an error is an external-system failure that
// may succeed on a later attempt
func IsRetryable(err error) bool {
	var publishErr *PublishError
	var chainErr *ChainError
	return errors.As(err, &publishErr) || errors.As(err, &chainErr)
}
