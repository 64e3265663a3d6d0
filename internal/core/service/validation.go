package service

import (
	"fmt"

	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

const (
	minPasswordLength = 6
	// bcrypt rejects longer inputs.
	maxPasswordBytes = 72
)

func validateSignup(in ports.SignupInput) error {
	switch {
	case in.Email == "":
		return domain.NewValidationError("email is required")
	case in.Password == "":
		return domain.NewValidationError("password is required")
	case len(in.Password) < minPasswordLength:
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	case len(in.Password) > maxPasswordBytes:
		return domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	case in.FirstName == "":
		return domain.NewValidationError("firstName is required")
	case in.LastName == "":
		return domain.NewValidationError("lastName is required")
	}
	return validateFinancials(in.AnnualIncome, in.CreditScore)
}

// validateFinancials checks the two fields shared by signup and profile update.
func validateFinancials(annualIncome, creditScore int) error {
	if annualIncome < 0 {
		return domain.NewValidationError("annualIncome must be greater than or equal to 0")
	}
	if creditScore < domain.MinCreditScore || creditScore > domain.MaxCreditScore {
		return domain.NewValidationError(fmt.Sprintf("creditScore must be between %d and %d",
			domain.MinCreditScore, domain.MaxCreditScore))
	}
	return nil
}
