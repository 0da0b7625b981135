package users

import (
	"context"

	"github.com/angelmondragon/marketloop-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the user or refreshes the profile columns when the
// provider subject already exists.
func (r *Repository) Upsert(ctx context.Context, dto UpsertUserDTO) (*models.User, error) {
	user := dto.ToModel()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
		}).
		Create(user).
		Error
	if err != nil {
		return nil, err
	}

	var persisted models.User
	if err := r.db.WithContext(ctx).First(&persisted, "id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}

// FindByID retrieves the user matching the provider subject.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads the users for the provided subjects, missing IDs are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	if len(ids) == 0 {
		return map[string]models.User{}, nil
	}
	var rows []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	return byID, nil
}
