package handler

type updateProfileRequest struct {
	UserID       string   `json:"userId"       validate:"required"`
	AnnualIncome *flexInt `json:"annualIncome" validate:"required"`
	CreditScore  *flexInt `json:"creditScore"  validate:"required"`
}

type updateProfileResponse struct {
	Success bool `json:"success"`
}
