package handler

type signupRequest struct {
	Email        string   `json:"email"        validate:"required,email"`
	Password     string   `json:"password"     validate:"required,min=6"`
	FirstName    string   `json:"firstName"    validate:"required"`
	LastName     string   `json:"lastName"     validate:"required"`
	DateOfBirth  string   `json:"dateOfBirth"`
	AnnualIncome *flexInt `json:"annualIncome" validate:"required"`
	CreditScore  *flexInt `json:"creditScore"  validate:"required"`
}

// loginRequest is checked by the service so that a missing field produces
// "Email and password required".
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profileResponse is the public view of a user; it never carries the password hash.
type profileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	AnnualIncome int    `json:"annualIncome"`
	CreditScore  int    `json:"creditScore"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
