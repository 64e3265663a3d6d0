package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

// ProfileService reads profiles and updates the mutable financial fields.
type ProfileService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// UpdateProfile is last-write-wins. An unknown user id reports false, not an error.
func (s *ProfileService) UpdateProfile(ctx context.Context, in ports.ProfileUpdateInput) (bool, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return false, domain.NewValidationError("userId is required")
	}
	if err := validateFinancials(in.AnnualIncome, in.CreditScore); err != nil {
		return false, err
	}

	modified, err := s.repo.UpdateProfile(ctx, in.UserID, in.AnnualIncome, in.CreditScore)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to update profile")
		return false, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().
		Str("user_id", in.UserID).
		Int64("modified", modified).
		Msg("profile update")

	return modified > 0, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewValidationError("userId is required")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}
