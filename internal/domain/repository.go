package domain

import "context"

// CardRepository defines the durable storage contract for card snapshots.
type CardRepository interface {
	// GetAll returns the persisted collection sorted by cid. An empty slice
	// and nil error means no snapshot has been saved yet.
	GetAll(ctx context.Context) ([]Card, error)
	// Replace swaps the persisted collection in one transaction. A failed
	// replace leaves the previous snapshot intact.
	Replace(ctx context.Context, cards []Card) error
	// Clear removes the persisted collection.
	Clear(ctx context.Context) error
	// Count reports how many cards are persisted.
	Count(ctx context.Context) (int, error)
}
