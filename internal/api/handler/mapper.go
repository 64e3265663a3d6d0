package handler

import (
	"time"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoMillis)
}

// --- Domain → HTTP response ---

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DateOfBirth:  u.DateOfBirth,
		AnnualIncome: u.AnnualIncome,
		CreditScore:  u.CreditScore,
		CreatedAt:    formatTime(u.CreatedAt),
	}
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		CardID:       a.CardID,
		ApprovalOdds: a.ApprovalOdds,
		Status:       a.Status,
		Date:         formatTime(a.Date),
	}
}

func toApplicationResponses(apps []*domain.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out
}
