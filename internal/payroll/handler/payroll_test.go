package handler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workforce-system/internal/database"
	"workforce-system/internal/database/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func seedEmployee(t *testing.T, db *gorm.DB, firstName, salary string) models.Employee {
	t.Helper()
	employee := models.Employee{
		FirstName:   firstName,
		LastName:    "Rao",
		JoiningDate: "2024-01-15",
		Salary:      salary,
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func TestGenerateComputesDeductions(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))
	seedEmployee(t, db, "Asha", "60000.00")
	seedEmployee(t, db, "Meera", "40000.00")

	payrolls, err := h.Generate(context.Background(), "March", 2025)
	require.NoError(t, err)
	require.Len(t, payrolls, 2)

	byBase := map[string]models.Payroll{}
	for _, p := range payrolls {
		byBase[p.BaseSalary] = p
		assert.Equal(t, models.PayrollStatusPending, p.Status)
		assert.Equal(t, "March", p.Month)
		assert.Equal(t, 2025, p.Year)
		assert.Equal(t, 30, p.TotalDays)
		assert.Equal(t, 28, p.PresentDays)
		assert.Nil(t, p.PaymentDate)
	}

	require.Contains(t, byBase, "60000.00")
	assert.Equal(t, "9000.00", byBase["60000.00"].Deductions)
	assert.Equal(t, "51000.00", byBase["60000.00"].NetSalary)

	require.Contains(t, byBase, "40000.00")
	assert.Equal(t, "6000.00", byBase["40000.00"].Deductions)
	assert.Equal(t, "34000.00", byBase["40000.00"].NetSalary)
}

func TestGenerateDuplicatePeriod(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))
	seedEmployee(t, db, "Asha", "60000.00")
	ctx := context.Background()

	_, err := h.Generate(ctx, "March", 2025)
	require.NoError(t, err)

	_, err = h.Generate(ctx, "March", 2025)
	var periodErr *PeriodExistsError
	require.ErrorAs(t, err, &periodErr)
	assert.Equal(t, "March", periodErr.Month)
	assert.Equal(t, 2025, periodErr.Year)
	assert.Equal(t, "Payroll for March 2025 already exists", periodErr.Error())

	// A different period is unaffected.
	_, err = h.Generate(ctx, "April", 2025)
	require.NoError(t, err)
}

func TestGenerateWithNoEmployees(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))

	payrolls, err := h.Generate(context.Background(), "March", 2025)
	require.NoError(t, err)
	assert.Empty(t, payrolls)
}

func TestMarkAsPaidRestamps(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))
	seedEmployee(t, db, "Asha", "60000.00")
	ctx := context.Background()

	payrolls, err := h.Generate(ctx, "March", 2025)
	require.NoError(t, err)
	require.Len(t, payrolls, 1)
	id := payrolls[0].ID

	h.SetNowFunc(func() time.Time {
		return time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	})
	paid, err := h.MarkAsPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PayrollStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2025-04-01", *paid.PaymentDate)
	require.NotNil(t, paid.Employee)

	// A repeat call re-stamps the payment date.
	h.SetNowFunc(func() time.Time {
		return time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC)
	})
	paid, err = h.MarkAsPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PayrollStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2025-04-03", *paid.PaymentDate)
}

func TestMarkAsPaidMissingRecord(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))

	_, err := h.MarkAsPaid(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPayrollNotFound)
}

func TestFindOneCachesAfterMiss(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))
	seedEmployee(t, db, "Asha", "60000.00")
	ctx := context.Background()

	payrolls, err := h.Generate(ctx, "March", 2025)
	require.NoError(t, err)
	id := payrolls[0].ID

	first, err := h.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PayrollStatusPending, first.Status)

	// The cached copy is served until invalidation; MarkAsPaid invalidates.
	_, err = h.MarkAsPaid(ctx, id)
	require.NoError(t, err)

	reloaded, err := h.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.PayrollStatusPaid, reloaded.Status)
}

func TestFindOneMissingRecord(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))

	_, err := h.FindOne(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPayrollNotFound)
}

func TestFindAllFiltersByPeriod(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))
	seedEmployee(t, db, "Asha", "60000.00")
	ctx := context.Background()

	for _, period := range []struct {
		month string
		year  int
	}{{"March", 2025}, {"April", 2025}, {"March", 2024}} {
		_, err := h.Generate(ctx, period.month, period.year)
		require.NoError(t, err)
	}

	year := 2025
	byYear, err := h.FindAll(ctx, &year, nil)
	require.NoError(t, err)
	assert.Len(t, byYear, 2)

	month := "March"
	byBoth, err := h.FindAll(ctx, &year, &month)
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, 2025, byBoth[0].Year)

	all, err := h.FindAll(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindMySlipsOrdersByYearThenMonthLabel(t *testing.T) {
	db := newTestDB(t)
	h := NewPayrollHandler(db, newTestRedis(t))
	employee := seedEmployee(t, db, "Asha", "60000.00")
	ctx := context.Background()

	for _, period := range []struct {
		month string
		year  int
	}{{"September", 2024}, {"February", 2025}, {"January", 2025}} {
		_, err := h.Generate(ctx, period.month, period.year)
		require.NoError(t, err)
	}

	slips, err := h.FindMySlips(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, slips, 3)

	// Month is a label, so within a year the ordering is lexical descending:
	// "January" sorts above "February".
	assert.Equal(t, 2025, slips[0].Year)
	assert.Equal(t, "January", slips[0].Month)
	assert.Equal(t, "February", slips[1].Month)
	assert.Equal(t, 2024, slips[2].Year)
}
