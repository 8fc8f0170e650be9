package ports

import (
	"context"

	"github.com/coursemarket/course-api/internal/core/domain"
)

// CredentialRepository is one role's credential store. Implementations must
// enforce username uniqueness and report a collision as domain.ErrAlreadyExists.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// CredentialStores resolves the store that backs a role.
type CredentialStores map[domain.Role]CredentialRepository
