package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup, including
	// records that exist but belong to a different owner.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("repository: duplicate record")
)

// TaskRepository defines the interface for task data access.
// Every method is scoped by owner ID.
type TaskRepository interface {
	// Create persists a new task and fills in its ID and timestamps
	Create(ctx context.Context, task *models.Task) error

	// ListByOwner returns all tasks of the owner, oldest first
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)

	// FindByIDAndOwner finds a task matching both ID and owner
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error)

	// ToggleCompleted flips the completion flag in a single statement and returns the updated task
	ToggleCompleted(ctx context.Context, id, ownerID string) (*models.Task, error)

	// DeleteByIDAndOwner permanently removes a task matching both ID and owner
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
