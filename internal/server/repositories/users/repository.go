// Package users stores account records. Implementations translate their
// driver-specific not-found and duplicate-key conditions into
// common.ErrorNotFound and common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in the store-assigned ID and timestamps.
	// A second record with the same email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// Update overwrites the mutable attributes of the record with user.ID.
	// Role and password are left untouched.
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
