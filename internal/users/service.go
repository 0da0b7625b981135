package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes profile operations for the authenticated user.
type Service interface {
	UpsertFromIdentity(ctx context.Context, input UpsertUserDTO) (*UserDTO, error)
	GetByID(ctx context.Context, id string) (*UserDTO, error)
}

type userStore interface {
	Upsert(ctx context.Context, dto UpsertUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type service struct {
	repo userStore
}

// NewService constructs a users service instance.
func NewService(repo userStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

// UpsertFromIdentity persists the token profile on every authenticated fetch
// so the local row tracks the identity provider.
func (s *service) UpsertFromIdentity(ctx context.Context, input UpsertUserDTO) (*UserDTO, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	user, err := s.repo.Upsert(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert user")
	}
	return FromModel(user), nil
}

// GetByID loads a stored profile.
func (s *service) GetByID(ctx context.Context, id string) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return FromModel(user), nil
}
