package messaging

import (
	"context"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// Publisher defines the interface for publishing asset events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishAssetEvent publishes an asset lifecycle event
	PublishAssetEvent(ctx context.Context, event *domain.AssetEvent) error
	// Close closes the connection
	Close()
}
