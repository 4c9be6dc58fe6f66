package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/session-booking/internal/auth"
	"github.com/spec-kit/session-booking/internal/config"
	"github.com/spec-kit/session-booking/internal/domain"
	"github.com/spec-kit/session-booking/internal/events"
	"github.com/spec-kit/session-booking/internal/repository"
	"github.com/spec-kit/session-booking/pkg/util"
)

// AuthService coordinates registration and login flows. Every method
// returns either a result or a taxonomy error; storage errors never cross
// this boundary unmapped.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLSeconds),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: deps.Dispatcher,
	}
}

// LoginResult carries the issued token with the identity attributes the
// client needs without a follow-up request.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// Login verifies credentials and issues a bearer token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewInvalidCredentials()
		}
		return nil, util.NewInternalError(err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, util.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	// Refetch so the response reflects the current record. The account
	// vanishing between the credential check and here is a server fault,
	// not a client error.
	current, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    current.ID,
		Email:     current.Email,
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Admin:     current.Admin,
	}, nil
}

// Register creates a new non-admin account. No token is issued; the
// caller logs in separately. The existence check runs first, and the
// unique index on users.email is the final authority under concurrent
// registrations with the same address.
func (s *AuthService) Register(ctx context.Context, email, firstName, lastName, password string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return util.NewInternalError(err)
	}
	if exists {
		return util.NewEmailTaken()
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return util.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Admin:        false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return util.NewEmailTaken()
		}
		return util.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Email: user.Email},
	})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
