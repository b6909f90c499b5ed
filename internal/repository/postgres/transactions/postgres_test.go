package transactions

import (
	"context"
	"testing"
	"time"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	historydomain "budgeteer-go/internal/domain/history"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	categoriesrepo "budgeteer-go/internal/repository/postgres/categories"
	historyrepo "budgeteer-go/internal/repository/postgres/history"
	"budgeteer-go/internal/testutil/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	transactions *transactionsdomain.Service
	history      *historydomain.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn := testdb.Open(t)
	ctx := context.Background()

	categoriesService := categoriesdomain.NewService(categoriesrepo.NewPostgres(conn))
	for _, input := range []categoriesdomain.CreateCategoryInput{
		{UserID: "user-1", Name: "Salary", Icon: "💰", Type: categoriesdomain.TypeIncome},
		{UserID: "user-1", Name: "Food", Icon: "🍔", Type: categoriesdomain.TypeExpense},
		{UserID: "user-1", Name: "Rent", Icon: "🏠", Type: categoriesdomain.TypeExpense},
	} {
		_, err := categoriesService.Create(ctx, input)
		require.NoError(t, err)
	}

	historyService := historydomain.NewService(historyrepo.NewPostgres(conn))
	return fixture{
		db:           conn,
		transactions: transactionsdomain.NewService(NewPostgres(conn), categoriesService, historyService),
		history:      historyService,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) create(t *testing.T, amount string, typ categoriesdomain.Type, category string, date time.Time) *transactionsdomain.Transaction {
	t.Helper()
	created, err := f.transactions.Create(context.Background(), transactionsdomain.CreateTransactionInput{
		UserID:   "user-1",
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
		Type:     typ,
		Category: category,
	})
	require.NoError(t, err)
	return created
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestCreateThenDeleteRestoresBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	from, to := day(2024, time.March, 1), day(2024, time.March, 31)

	created := f.create(t, "100", categoriesdomain.TypeIncome, "Salary", day(2024, time.March, 15))

	balance, err := f.history.Balance(ctx, "user-1", from, to)
	require.NoError(t, err)
	assertDecimal(t, "100", balance.Income)
	assertDecimal(t, "0", balance.Expense)

	_, err = f.transactions.Delete(ctx, "user-1", created.ID)
	require.NoError(t, err)

	balance, err = f.history.Balance(ctx, "user-1", from, to)
	require.NoError(t, err)
	assertDecimal(t, "0", balance.Income)
	assertDecimal(t, "0", balance.Expense)
}

func TestRollupsAccumulatePerBucket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "100", categoriesdomain.TypeIncome, "Salary", day(2024, time.March, 15))
	f.create(t, "50.5", categoriesdomain.TypeIncome, "Salary", day(2024, time.March, 15))
	f.create(t, "25.25", categoriesdomain.TypeExpense, "Food", day(2024, time.March, 15))
	f.create(t, "12", categoriesdomain.TypeExpense, "Rent", day(2024, time.March, 2))

	days, err := f.history.MonthHistory(ctx, "user-1", 2024, 2)
	require.NoError(t, err)
	require.Len(t, days, 31)
	assertDecimal(t, "150.5", days[14].Income)
	assertDecimal(t, "25.25", days[14].Expense)
	assertDecimal(t, "12", days[1].Expense)
	assertDecimal(t, "0", days[0].Income)

	months, err := f.history.YearHistory(ctx, "user-1", 2024)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assertDecimal(t, "150.5", months[2].Income)
	assertDecimal(t, "37.25", months[2].Expense)

	var rows int64
	require.NoError(t, f.db.Model(&historydomain.MonthHistory{}).Count(&rows).Error)
	assert.EqualValues(t, 2, rows)
}

func TestDeleteTwiceDoesNotTouchRollups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "10", categoriesdomain.TypeExpense, "Food", day(2024, time.April, 3))
	created := f.create(t, "20", categoriesdomain.TypeExpense, "Food", day(2024, time.April, 3))

	_, err := f.transactions.Delete(ctx, "user-1", created.ID)
	require.NoError(t, err)
	_, err = f.transactions.Delete(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, transactionsdomain.ErrTransactionNotFound)

	months, err := f.history.YearHistory(ctx, "user-1", 2024)
	require.NoError(t, err)
	assertDecimal(t, "10", months[3].Expense)
}

func TestDeleteOtherUsersTransaction(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "10", categoriesdomain.TypeExpense, "Food", day(2024, time.April, 3))

	_, err := f.transactions.Delete(context.Background(), "user-2", created.ID)
	assert.ErrorIs(t, err, transactionsdomain.ErrTransactionNotFound)

	var count int64
	require.NoError(t, f.db.Model(&transactionsdomain.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListTransactionsFiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "10", categoriesdomain.TypeExpense, "Food", day(2024, time.April, 1))
	f.create(t, "20", categoriesdomain.TypeExpense, "Rent", day(2024, time.April, 5))
	f.create(t, "30", categoriesdomain.TypeIncome, "Salary", day(2024, time.April, 3))
	f.create(t, "40", categoriesdomain.TypeIncome, "Salary", day(2024, time.May, 3))

	items, err := f.transactions.List(ctx, "user-1", transactionsdomain.ListFilter{From: day(2024, time.April, 1), To: day(2024, time.April, 30)})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, day(2024, time.April, 5), items[0].Date.UTC())
	assert.Equal(t, day(2024, time.April, 1), items[2].Date.UTC())
	assert.Equal(t, "🏠", items[0].CategoryIcon)

	items, err = f.transactions.List(ctx, "user-1", transactionsdomain.ListFilter{
		From:     day(2024, time.April, 1),
		To:       day(2024, time.April, 30),
		Type:     categoriesdomain.TypeExpense,
		Category: "Food",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assertDecimal(t, "10", items[0].Amount)
}

func TestCategoryStatsAndYears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "10", categoriesdomain.TypeExpense, "Food", day(2023, time.December, 30))
	f.create(t, "5", categoriesdomain.TypeExpense, "Food", day(2024, time.January, 2))
	f.create(t, "7.5", categoriesdomain.TypeExpense, "Food", day(2024, time.January, 3))
	f.create(t, "100", categoriesdomain.TypeIncome, "Salary", day(2024, time.January, 3))

	stats, err := f.history.CategoryStats(ctx, "user-1", day(2024, time.January, 1), day(2024, time.January, 31))
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Salary", stats[0].Category)
	assert.Equal(t, "Food", stats[1].Category)
	assert.Equal(t, "🍔", stats[1].CategoryIcon)
	assertDecimal(t, "12.5", stats[1].Total)

	years, err := f.history.Years(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)
}

func TestIncomeOnlyRangeHasZeroExpense(t *testing.T) {
	f := newFixture(t)

	f.create(t, "100", categoriesdomain.TypeIncome, "Salary", day(2024, time.June, 10))
	f.create(t, "30", categoriesdomain.TypeExpense, "Food", day(2024, time.July, 10))

	balance, err := f.history.Balance(context.Background(), "user-1", day(2024, time.June, 1), day(2024, time.June, 30))
	require.NoError(t, err)
	assertDecimal(t, "100", balance.Income)
	assertDecimal(t, "0", balance.Expense)
}
