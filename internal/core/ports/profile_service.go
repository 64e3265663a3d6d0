package ports

import (
	"context"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

// ProfileUpdateInput holds the only two user fields that may change after signup.
type ProfileUpdateInput struct {
	UserID       string
	AnnualIncome int
	CreditScore  int
}

type ProfileService interface {
	// UpdateProfile reports whether a document was modified.
	UpdateProfile(ctx context.Context, input ProfileUpdateInput) (bool, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}
