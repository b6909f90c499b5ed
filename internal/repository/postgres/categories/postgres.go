package categories

import (
	"context"
	"errors"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCategories(ctx context.Context, userID string, categoryType categoriesdomain.Type) ([]categoriesdomain.Category, error) {
	var items []categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, categoryType).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, userID, name string, categoryType categoriesdomain.Type) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, userID, name string, categoryType categoriesdomain.Type) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateCategory relies on the (user_id, name, type) key for races the
// service's pre-check cannot see.
func (r *PostgresRepository) CreateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return categoriesdomain.ErrCategoryAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, userID, name string, categoryType categoriesdomain.Type) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoriesdomain.Category{}, "user_id = ? AND name = ? AND type = ?", userID, name, categoryType)
	return result.RowsAffected > 0, result.Error
}
