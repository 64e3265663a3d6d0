package ports

import (
	"context"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

// ApplicationRepository is the application store. There is no update or
// delete: applications are immutable.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// ListByUser returns an empty slice, not an error, when nothing matches.
	ListByUser(ctx context.Context, userID string) ([]*domain.Application, error)
}
