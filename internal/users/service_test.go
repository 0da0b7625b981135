package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketloop-backend/pkg/errors"
)

type fakeUserStore struct {
	upsertFn   func(ctx context.Context, dto UpsertUserDTO) (*models.User, error)
	findByIDFn func(ctx context.Context, id string) (*models.User, error)
}

func (s *fakeUserStore) Upsert(ctx context.Context, dto UpsertUserDTO) (*models.User, error) {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, dto)
	}
	return &models.User{ID: dto.ID}, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func TestUpsertFromIdentityRequiresSubject(t *testing.T) {
	svc, err := NewService(&fakeUserStore{})
	require.NoError(t, err)

	_, err = svc.UpsertFromIdentity(context.Background(), UpsertUserDTO{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpsertFromIdentityReturnsStoredRow(t *testing.T) {
	email := "jordan@example.com"
	svc, err := NewService(&fakeUserStore{
		upsertFn: func(ctx context.Context, dto UpsertUserDTO) (*models.User, error) {
			return &models.User{ID: dto.ID, Email: dto.Email}, nil
		},
	})
	require.NoError(t, err)

	user, err := svc.UpsertFromIdentity(context.Background(), UpsertUserDTO{ID: "user_1", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "user_1", user.ID)
	require.NotNil(t, user.Email)
	assert.Equal(t, email, *user.Email)
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc, err := NewService(&fakeUserStore{
		findByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
