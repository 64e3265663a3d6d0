package ports

import (
	"context"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	DateOfBirth  string
	AnnualIncome int
	CreditScore  int
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
