package content

import "context"

// Store defines the interface for publishing content to durable storage
//
//go:generate mockgen -source=store.go -destination=../mocks/content.go -package=mocks -mock_names=Store=MockContentStore
type Store interface {
	// Publish pins a JSON document and returns its content identifier
	Publish(ctx context.Context, name string, doc interface{}) (string, error)
}
