package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursemarket/course-api/internal/core/domain"
	"github.com/coursemarket/course-api/internal/core/ports"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// AuthService implements signup and credential verification for both roles.
type AuthService struct {
	stores ports.CredentialStores
	tokens ports.TokenService
	cost   int
	logger zerolog.Logger
}

func NewAuthService(stores ports.CredentialStores, tokens ports.TokenService, cost int, logger zerolog.Logger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &AuthService{stores: stores, tokens: tokens, cost: cost, logger: logger}
}

func (s *AuthService) store(role domain.Role) (ports.CredentialRepository, error) {
	repo, ok := s.stores[role]
	if !ok || repo == nil {
		return nil, domain.ErrInvalidRole
	}
	return repo, nil
}

// Signup enrolls a new account in role's store and returns a token for it.
// Nothing is persisted when hashing fails.
func (s *AuthService) Signup(ctx context.Context, role domain.Role, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	repo, err := s.store(role)
	if err != nil {
		return "", err
	}

	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return "", domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.logger.Error().Err(err).Str("role", role.String()).Msg("password hashing failed")
		return "", fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}

	if _, err := repo.Create(ctx, &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(username, role)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Str("role", role.String()).Msg("account created")
	return token, nil
}

// Authenticate verifies username/password against role's store.
func (s *AuthService) Authenticate(ctx context.Context, role domain.Role, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	repo, err := s.store(role)
	if err != nil {
		return err
	}

	account, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnknownUser
		}
		return fmt.Errorf("login lookup: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrWrongPassword
	default:
		s.logger.Error().Err(err).Str("username", username).Str("role", role.String()).Msg("password compare failed")
		return fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}
}
