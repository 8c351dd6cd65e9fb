package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SchemaVersion is stamped into every persisted snapshot; snapshots
// carrying a different version are discarded on load.
const SchemaVersion = 1

// Snapshot is the persisted form of a cart
type Snapshot struct {
	SchemaVersion int   `json:"schema_version"`
	Cart          *Cart `json:"cart"`
}

// Store persists cart snapshots keyed by user.
// Load returns (nil, nil) when no snapshot exists.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ErrSnapshotVersion indicates a snapshot written by an incompatible
// schema version. Callers treat it as "no snapshot".
var ErrSnapshotVersion = fmt.Errorf("cart snapshot schema version mismatch")

// MarshalSnapshot serializes a cart into its persisted snapshot form
func MarshalSnapshot(c *Cart) ([]byte, error) {
	return json.Marshal(Snapshot{
		SchemaVersion: SchemaVersion,
		Cart:          c,
	})
}

// UnmarshalSnapshot parses a persisted snapshot back into a cart.
// Returns ErrSnapshotVersion when the schema version does not match.
func UnmarshalSnapshot(data []byte) (*Cart, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse cart snapshot: %w", err)
	}
	if snap.SchemaVersion != SchemaVersion {
		return nil, ErrSnapshotVersion
	}
	if snap.Cart == nil {
		return nil, fmt.Errorf("cart snapshot missing payload")
	}
	if snap.Cart.Items == nil {
		snap.Cart.Items = make([]Item, 0)
	}
	return snap.Cart, nil
}
