package ports

import (
	"context"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByEmail performs an exact, case-sensitive match.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateProfile sets annual income and credit score only and returns the
	// number of modified documents. An unknown id yields 0 and no error.
	UpdateProfile(ctx context.Context, id string, annualIncome, creditScore int) (int64, error)
}
