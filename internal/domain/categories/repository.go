package categories

import "context"

type Repository interface {
	ListCategories(ctx context.Context, userID string, categoryType Type) ([]Category, error)
	GetCategory(ctx context.Context, userID, name string, categoryType Type) (*Category, error)
	CountCategoriesByName(ctx context.Context, userID, name string, categoryType Type) (int64, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, userID, name string, categoryType Type) (bool, error)
}
