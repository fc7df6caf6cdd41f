package infrastructure

import (
	"context"
)

// MessagePublisher sends domain events keyed for partitioning.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
