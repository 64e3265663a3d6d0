package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
	"github.com/cardwise/credit-card-api/internal/infrastructure/security"
)

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by id
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, annualIncome, creditScore int) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	if u.AnnualIncome == annualIncome && u.CreditScore == creditScore {
		return 0, nil
	}
	u.AnnualIncome = annualIncome
	u.CreditScore = creditScore
	return 1, nil
}

func (r *stubUserRepo) countByEmail(email string) int {
	n := 0
	for _, u := range r.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// countingHasher records Verify calls around a real bcrypt hasher.
type countingHasher struct {
	ports.PasswordHasher
	verifies int
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.verifies++
	return h.PasswordHasher.Verify(password, hash)
}

func newTestAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, security.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
}

func validSignup() ports.SignupInput {
	return ports.SignupInput{
		Email:        "a@b.com",
		Password:     "secret1",
		FirstName:    "A",
		LastName:     "B",
		AnnualIncome: 50000,
		CreditScore:  700,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected server-generated id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreditScore != 700 || user.AnnualIncome != 50000 {
		t.Fatalf("unexpected financials: %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestAuthService_Signup_TrimsFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	in := validSignup()
	in.Email = "  a@b.com "
	in.FirstName = " A "
	user, err := svc.Signup(context.Background(), in)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "a@b.com" || user.FirstName != "A" {
		t.Fatalf("expected trimmed fields, got %q %q", user.Email, user.FirstName)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	cases := map[string]func(*ports.SignupInput){
		"missing email":      func(in *ports.SignupInput) { in.Email = "" },
		"missing password":   func(in *ports.SignupInput) { in.Password = "" },
		"short password":     func(in *ports.SignupInput) { in.Password = "12345" },
		"long password":      func(in *ports.SignupInput) { in.Password = string(make([]byte, 73)) },
		"missing first name": func(in *ports.SignupInput) { in.FirstName = "  " },
		"missing last name":  func(in *ports.SignupInput) { in.LastName = "" },
		"negative income":    func(in *ports.SignupInput) { in.AnnualIncome = -1 },
		"score too low":      func(in *ports.SignupInput) { in.CreditScore = 299 },
		"score too high":     func(in *ports.SignupInput) { in.CreditScore = 851 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newStubUserRepo()
			svc := newTestAuthService(repo)

			in := validSignup()
			mutate(&in)
			_, err := svc.Signup(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.users) != 0 {
				t.Fatalf("expected no user to be stored")
			}
		})
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	second := validSignup()
	second.Password = "another"
	if _, err := svc.Signup(context.Background(), second); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if n := repo.countByEmail("a@b.com"); n != 1 {
		t.Fatalf("expected exactly one stored user, got %d", n)
	}
}

func TestAuthService_Signup_EmailIsCaseSensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	upper := validSignup()
	upper.Email = "A@B.com"
	if _, err := svc.Signup(context.Background(), upper); err != nil {
		t.Fatalf("expected differently cased email to be accepted, got %v", err)
	}
}

func TestAuthService_Signup_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), validSignup())
	if err == nil || !errors.Is(err, repo.findErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID || user.FirstName != "A" || user.LastName != "B" ||
		user.AnnualIncome != 50000 || user.CreditScore != 700 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Signup(context.Background(), validSignup())
	if _, err := svc.Login(context.Background(), "a@b.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailMatchesWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	hasher := &countingHasher{PasswordHasher: security.NewBcryptHasher(bcrypt.MinCost)}
	svc := NewAuthService(repo, hasher, zerolog.Nop())

	_, _ = svc.Signup(context.Background(), validSignup())

	_, wrongPassword := svc.Login(context.Background(), "a@b.com", "wrong")
	_, unknownEmail := svc.Login(context.Background(), "ghost@b.com", "wrong")

	if wrongPassword != unknownEmail {
		t.Fatalf("expected identical errors, got %v and %v", wrongPassword, unknownEmail)
	}
	if hasher.verifies != 2 {
		t.Fatalf("expected both paths to verify a hash, got %d verifications", hasher.verifies)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "", "pass"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.com", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("timeout")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "a@b.com", "secret1")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}
