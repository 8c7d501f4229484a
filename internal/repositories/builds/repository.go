// Package builds provides the interface for saved build persistence
package builds

//go:generate mockgen -destination=mock/mock_repository.go -package=buildsmock github.com/KirkDiggler/simui-api/internal/repositories/builds Repository

import (
	"context"

	"github.com/KirkDiggler/simui-api/internal/entities"
	"github.com/KirkDiggler/simui-api/internal/player"
)

// Repository defines the interface for build persistence
type Repository interface {
	// Create stores a new build and assigns its ID and timestamps
	// Returns errors.InvalidArgument when the snapshot is missing
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a build by ID
	// Returns errors.NotFound if the build does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces the snapshot of an existing build when it is still at
	// the given revision
	// Returns errors.NotFound if the build does not exist
	// Returns errors.Aborted if the build was changed or deleted concurrently
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a build
	// Returns errors.NotFound if the build does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a build
type CreateInput struct {
	Snapshot *player.Snapshot
}

// CreateOutput defines the output for creating a build
type CreateOutput struct {
	Build *entities.Build
}

// GetInput defines the input for getting a build
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a build
type GetOutput struct {
	Build *entities.Build
}

// UpdateInput defines the input for updating a build
type UpdateInput struct {
	ID string
	// Revision is the revision the snapshot was derived from
	Revision int64
	Snapshot *player.Snapshot
}

// UpdateOutput defines the output for updating a build
type UpdateOutput struct {
	Build *entities.Build
}

// DeleteInput defines the input for deleting a build
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a build
type DeleteOutput struct{}
