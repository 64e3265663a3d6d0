package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

type ApplicationService struct {
	repo        ports.ApplicationRepository
	idempotency ports.IdempotencyStore // nil disables Idempotency-Key handling
	logger      zerolog.Logger
	now         func() time.Time
}

func NewApplicationService(repo ports.ApplicationRepository, idempotency ports.IdempotencyStore, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		repo:        repo,
		idempotency: idempotency,
		logger:      logger,
		now:         time.Now,
	}
}

// Apply stores a new application. Referenced user and card ids are not
// checked. If an idempotency key is provided and already seen, the previously
// created application is returned without side effects.
func (s *ApplicationService) Apply(ctx context.Context, in ports.ApplyInput) (*ports.ApplyResult, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.CardID = strings.TrimSpace(in.CardID)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	switch {
	case in.UserID == "":
		return nil, domain.NewValidationError("userId is required")
	case in.CardID == "":
		return nil, domain.NewValidationError("cardId is required")
	case in.Status == "":
		return nil, domain.NewValidationError("status is required")
	case in.ApprovalOdds < 0:
		return nil, domain.NewValidationError("approvalOdds must be greater than or equal to 0")
	}

	if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
		s.logger.Info().
			Str("idempotency_key", in.IdempotencyKey).
			Str("application_id", existing.ID).
			Msg("idempotent replay")
		return &ports.ApplyResult{Application: existing, AlreadyExisted: true}, nil
	}

	app := &domain.Application{
		UserID:       in.UserID,
		CardID:       in.CardID,
		ApprovalOdds: in.ApprovalOdds,
		Status:       in.Status,
		Date:         s.now().UTC().Truncate(time.Millisecond),
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create application")
		return nil, fmt.Errorf("apply: %w", err)
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().
		Str("application_id", created.ID).
		Str("user_id", created.UserID).
		Str("card_id", created.CardID).
		Msg("application created")

	return &ports.ApplyResult{Application: created}, nil
}

// replay returns the application an idempotency key already produced, or nil.
// Lookup failures are logged and treated as a miss.
func (s *ApplicationService) replay(ctx context.Context, key string) *domain.Application {
	if key == "" || s.idempotency == nil {
		return nil
	}

	id, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Str("application_id", id).Msg("stale idempotency key")
		return nil
	}
	return existing
}

func (s *ApplicationService) ListByUser(ctx context.Context, userID string) ([]*domain.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewValidationError("userId required")
	}

	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []*domain.Application{}
	}
	return apps, nil
}
