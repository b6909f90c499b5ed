package settings

import (
	"context"
	"errors"

	settingsdomain "budgeteer-go/internal/domain/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetSettings(ctx context.Context, userID string) (*settingsdomain.UserSettings, error) {
	var settings settingsdomain.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settingsdomain.ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *PostgresRepository) UpsertSettings(ctx context.Context, settings *settingsdomain.UserSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"currency", "updated_at"}),
	}).Create(settings).Error
}
