package categories

import (
	"context"
	"testing"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	"budgeteer-go/internal/testutil/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryTranslatesDuplicateKey(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateCategory(ctx, &categoriesdomain.Category{UserID: "user-1", Name: "Food", Icon: "🍔", Type: categoriesdomain.TypeExpense}))

	err := repo.CreateCategory(ctx, &categoriesdomain.Category{UserID: "user-1", Name: "Food", Icon: "🥗", Type: categoriesdomain.TypeExpense})
	assert.ErrorIs(t, err, categoriesdomain.ErrCategoryAlreadyExists)

	require.NoError(t, repo.CreateCategory(ctx, &categoriesdomain.Category{UserID: "user-2", Name: "Food", Icon: "🍔", Type: categoriesdomain.TypeExpense}))
	require.NoError(t, repo.CreateCategory(ctx, &categoriesdomain.Category{UserID: "user-1", Name: "Food", Icon: "🍔", Type: categoriesdomain.TypeIncome}))
}

func TestListAndDeleteCategories(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	ctx := context.Background()

	for _, name := range []string{"Rent", "Food", "Travel"} {
		require.NoError(t, repo.CreateCategory(ctx, &categoriesdomain.Category{UserID: "user-1", Name: name, Icon: "🏷", Type: categoriesdomain.TypeExpense}))
	}
	require.NoError(t, repo.CreateCategory(ctx, &categoriesdomain.Category{UserID: "user-1", Name: "Salary", Icon: "💰", Type: categoriesdomain.TypeIncome}))

	items, err := repo.ListCategories(ctx, "user-1", categoriesdomain.TypeExpense)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Food", "Rent", "Travel"}, []string{items[0].Name, items[1].Name, items[2].Name})

	category, err := repo.GetCategory(ctx, "user-1", "Salary", categoriesdomain.TypeIncome)
	require.NoError(t, err)
	assert.Equal(t, "💰", category.Icon)

	_, err = repo.GetCategory(ctx, "user-1", "Salary", categoriesdomain.TypeExpense)
	assert.ErrorIs(t, err, categoriesdomain.ErrCategoryNotFound)

	deleted, err := repo.DeleteCategory(ctx, "user-1", "Rent", categoriesdomain.TypeExpense)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteCategory(ctx, "user-1", "Rent", categoriesdomain.TypeExpense)
	require.NoError(t, err)
	assert.False(t, deleted)

	count, err := repo.CountCategoriesByName(ctx, "user-1", "Food", categoriesdomain.TypeExpense)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
