// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/tracker/internal/application/ingest"
	"github.com/finance-tracker/tracker/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create appends a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// Delete removes a goal (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// FindSnapshotByUser loads every goal of a user as stored, ordered by
	// creation time ascending.
	FindSnapshotByUser(ctx context.Context, userID uuid.UUID) ([]ingest.RawGoal, error)
}
