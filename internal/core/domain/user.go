package domain

import "time"

const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// User is a registered applicant. PasswordHash is never rendered to clients.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	DateOfBirth  string // optional, stored as provided
	AnnualIncome int
	CreditScore  int
	CreatedAt    time.Time
}
