// Package repository persists the latest slate in a single named slot.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/dfsviz/internal/domain/model"
)

// DefaultSlot is the slot name used when none is configured.
const DefaultSlot = "nflDfsUploadedData"

// Store provides read/write access to the persisted slate.
type Store interface {
	// Save replaces the slot contents with c.
	Save(ctx context.Context, c model.Collections) error

	// Load returns the slot contents.
	// Returns ErrNotFound if nothing has been saved.
	Load(ctx context.Context) (model.Collections, error)

	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error

	// Count returns the number of players in the aggregate collection, 0 when empty.
	Count(ctx context.Context) int

	// Close releases the underlying resources.
	Close() error
}

// encode serializes the six collections as-is. The payload carries no version.
func encode(c model.Collections) ([]byte, error) {
	if c == nil {
		c = model.NewCollections()
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return b, nil
}

// decode reads a payload back, filling in any collection key it lacks.
func decode(b []byte) (model.Collections, error) {
	var c model.Collections
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if c == nil {
		c = model.NewCollections()
	}
	for _, k := range model.Keys {
		if c[k] == nil {
			c[k] = []model.Player{}
		}
	}
	return c, nil
}
