package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

// timingPassword is hashed once and verified against when the email is
// unknown, so both failed-login paths pay for one hash comparison.
const timingPassword = "credential-timing-placeholder"

// AuthService implements signup and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, logger: logger}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validateSignup(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  strings.TrimSpace(in.DateOfBirth),
		AnnualIncome: in.AnnualIncome,
		CreditScore:  in.CreditScore,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent signup; the unique index caught it.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

// Login returns domain.ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Email and password required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.timingHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Debug().Str("user_id", user.ID).Msg("user logged in")
	return user, nil
}

func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(timingPassword)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to prepare timing hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
