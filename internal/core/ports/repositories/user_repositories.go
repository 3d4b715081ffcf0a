package repositories

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// GetUser retrieves a user by ID. Returns apperrors.ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
