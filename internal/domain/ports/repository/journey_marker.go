package repository

import "context"

// JourneyMarkerRepository persists shown markers keyed by (user_id, day).
// Presence means the message for that day was already presented; markers are
// write-once and never cleared.
type JourneyMarkerRepository interface {
	// MarkShown records the marker. Returns true if this call created it,
	// false if it already existed. The write relies on the store's unique
	// constraint, so concurrent callers see exactly one true.
	MarkShown(ctx context.Context, tx Tx, userID string, day int) (bool, error)
	// Seen reports whether the marker exists.
	Seen(ctx context.Context, tx Tx, userID string, day int) (bool, error)
}
