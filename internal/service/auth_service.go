package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/food-delivery-platform/internal/auth"
	"github.com/spec-kit/food-delivery-platform/internal/config"
	"github.com/spec-kit/food-delivery-platform/internal/domain"
	"github.com/spec-kit/food-delivery-platform/internal/events"
	"github.com/spec-kit/food-delivery-platform/internal/repository"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

// AuthService coordinates registration, login and account management. It is
// the only component that reads the credential store; token verification
// stays inside internal/auth and never reaches it.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth *time.Time
	Role        string
	Password    string
}

// Register creates a new account and issues its first token. A requested
// admin role is downgraded to customer: administrators are promoted via the
// role-update operation, never self-registered.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("User already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	role := domain.DefaultRole
	if input.Role != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, "", time.Time{}, apperrors.NewValidationError("Invalid role", nil)
		}
		if parsed == domain.RoleAdmin {
			parsed = domain.DefaultRole
		}
		role = parsed
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		DateOfBirth:  input.DateOfBirth,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookup above; the
		// unique index on email decides the race.
		if isUniqueViolation(err) {
			return nil, "", time.Time{}, apperrors.NewValidationError("User already exists", nil)
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		EntityID:  user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Email: user.Email, Role: user.Role},
	})

	return user, token, exp, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// bad password collapse into one answer so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Profile loads the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries optional self-service profile changes.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth *time.Time
	Password    string
}

// UpdateProfile applies the provided fields to the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Email != "" && input.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
			return nil, apperrors.NewValidationError("Email is already in use", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = input.Email
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewValidationError("Email is already in use", nil)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns every account. Admin only; the allow-set is declared at
// the route.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateRole changes an account's role. The change affects tokens issued
// from now on; already-issued tokens carry the old role until they expire.
func (s *AuthService) UpdateRole(ctx context.Context, userID, rawRole string) (*domain.User, error) {
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid role", nil)
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRoleChanged,
		EntityID:  user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRoleChangedPayload{OldRole: oldRole, NewRole: role},
	})

	return user, nil
}

// DeleteUser removes an account.
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User", nil)
		}
		return err
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
