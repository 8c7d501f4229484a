// Package entities provides the stored data structures of simui-api.
package entities

import (
	"time"

	"github.com/KirkDiggler/simui-api/internal/player"
)

// Build is a saved player build. Revision counts the updates it went through.
type Build struct {
	ID        string           `json:"id"`
	Revision  int64            `json:"revision"`
	Snapshot  *player.Snapshot `json:"snapshot"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
