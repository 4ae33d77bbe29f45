package types

import (
	"encoding/json"
	"math"
)

// EntityID is the unique identifier for an entity. IDs are allocated
// monotonically by a World, starting at 1, and are never reused for the
// lifetime of that World.
type EntityID uint64

// BadID is returned by operations that failed to produce a valid entity.
// It is never allocated by a World.
const BadID EntityID = math.MaxUint64

// EntityStateElement is the JSON-ready snapshot of a single entity: its ID
// and the encoded value of every component currently attached to it, keyed
// by component name.
type EntityStateElement struct {
	ID         EntityID                   `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
}

// EntityStateResponse is the full dump of a world's alive entities, ordered
// by ascending entity ID.
type EntityStateResponse []EntityStateElement
