package ports

import (
	"context"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

// ApplyInput carries a new card application.
type ApplyInput struct {
	UserID         string
	CardID         string
	ApprovalOdds   float64
	Status         string
	IdempotencyKey string
}

// ApplyResult is returned by Apply.
type ApplyResult struct {
	Application *domain.Application
	// AlreadyExisted is true when the Idempotency-Key matched an earlier application.
	AlreadyExisted bool
}

// ApplicationService defines use-case operations for card applications.
type ApplicationService interface {
	Apply(ctx context.Context, input ApplyInput) (*ApplyResult, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Application, error)
}
