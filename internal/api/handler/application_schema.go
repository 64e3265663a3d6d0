package handler

type applyRequest struct {
	UserID       string    `json:"userId"       validate:"required"`
	CardID       string    `json:"cardId"       validate:"required"`
	ApprovalOdds flexFloat `json:"approvalOdds" validate:"gte=0"`
	Status       string    `json:"status"       validate:"required"`
}

type applicationResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	CardID       string  `json:"cardId"`
	ApprovalOdds float64 `json:"approvalOdds"`
	Status       string  `json:"status"`
	Date         string  `json:"date"`
}
