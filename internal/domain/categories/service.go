package categories

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"budgeteer-go/internal/domain/validation"
)

const (
	maxNameLength = 50
	maxIconLength = 16
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

func (s *Service) List(ctx context.Context, userID string, categoryType Type) ([]Category, error) {
	if !categoryType.Valid() {
		return nil, validation.Errors{"type": "must be income or expense"}
	}

	if cached, ok := s.cache.Get(userID, categoryType); ok {
		return cached, nil
	}
	generation := s.cache.Generation(userID, categoryType)

	items, err := s.repo.ListCategories(ctx, userID, categoryType)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Category{}
	}

	s.cache.Set(userID, categoryType, items, s.cacheTTL, generation)
	return items, nil
}

// Find resolves the category a new transaction refers to.
func (s *Service) Find(ctx context.Context, userID, name string, categoryType Type) (*Category, error) {
	return s.repo.GetCategory(ctx, userID, strings.TrimSpace(name), categoryType)
}

func (s *Service) Create(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	icon := strings.TrimSpace(input.Icon)

	errs := validation.Errors{}
	switch {
	case name == "":
		errs.Add("name", "is required")
	case utf8.RuneCountInString(name) > maxNameLength:
		errs.Add("name", "must be at most 50 characters")
	}
	switch {
	case icon == "":
		errs.Add("icon", "is required")
	case utf8.RuneCountInString(icon) > maxIconLength:
		errs.Add("icon", "must be at most 16 characters")
	}
	if !input.Type.Valid() {
		errs.Add("type", "must be income or expense")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, input.Type)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryAlreadyExists
	}

	category := Category{
		UserID: input.UserID,
		Name:   name,
		Icon:   icon,
		Type:   input.Type,
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	s.cache.Delete(input.UserID, input.Type)
	return &category, nil
}

// Delete removes the category only. Transactions keep their own copy of the
// name and icon.
func (s *Service) Delete(ctx context.Context, userID, name string, categoryType Type) error {
	if !categoryType.Valid() {
		return validation.Errors{"type": "must be income or expense"}
	}

	deleted, err := s.repo.DeleteCategory(ctx, userID, strings.TrimSpace(name), categoryType)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.cache.Delete(userID, categoryType)
	return nil
}
