package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"workforce-system/internal/database/models"
)

const (
	PAYROLL_CACHE_PREFIX = "payroll:"

	CACHE_TTL_LONG = 2 * time.Hour
)

const dateLayout = "2006-01-02"

var ErrPayrollNotFound = errors.New("Payroll record not found")

// Flat stand-in for tax plus provident fund.
var deductionRate = decimal.RequireFromString("0.15")

// PeriodExistsError rejects a second generation run for a pay period.
type PeriodExistsError struct {
	Month string
	Year  int
}

func (e *PeriodExistsError) Error() string {
	return fmt.Sprintf("Payroll for %s %d already exists", e.Month, e.Year)
}

type PayrollHandler struct {
	db    *gorm.DB
	redis *redis.Client
	now   func() time.Time
}

func NewPayrollHandler(db *gorm.DB, redisClient *redis.Client) *PayrollHandler {
	return &PayrollHandler{
		db:    db,
		redis: redisClient,
		now:   time.Now,
	}
}

func (h *PayrollHandler) SetNowFunc(now func() time.Time) {
	h.now = now
}

func (h *PayrollHandler) InvalidatePayrollCaches(ctx context.Context, ids ...int64) {
	for _, id := range ids {
		cacheKey := fmt.Sprintf("%s%d", PAYROLL_CACHE_PREFIX, id)
		_ = h.redis.Del(ctx, cacheKey)
	}
}

// Generate produces one payroll record per employee for the given pay period
// in a single batch insert. The base salary is snapshotted at generation time;
// later salary changes do not touch generated records. Day counts are fixed
// placeholders, not derived from attendance.
func (h *PayrollHandler) Generate(ctx context.Context, month string, year int) ([]models.Payroll, error) {
	var count int64
	err := h.db.WithContext(ctx).Model(&models.Payroll{}).
		Where("month = ? AND year = ?", month, year).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if count > 0 {
		return nil, &PeriodExistsError{Month: month, Year: year}
	}

	var employees []models.Employee
	if err := h.db.WithContext(ctx).Preload("User").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	payrolls := make([]models.Payroll, 0, len(employees))
	for _, emp := range employees {
		baseSalary, _ := decimal.NewFromString(emp.Salary)
		deductions := baseSalary.Mul(deductionRate)
		netSalary := baseSalary.Sub(deductions)

		payrolls = append(payrolls, models.Payroll{
			EmployeeID:  emp.ID,
			Month:       month,
			Year:        year,
			Status:      models.PayrollStatusPending,
			TotalDays:   30,
			PresentDays: 28,
			BaseSalary:  baseSalary.StringFixed(2),
			Deductions:  deductions.StringFixed(2),
			NetSalary:   netSalary.StringFixed(2),
		})
	}

	// Zero employees is an empty, successful batch.
	if len(payrolls) == 0 {
		return payrolls, nil
	}

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&payrolls).Error
	})
	if err != nil {
		// The unique index on (employee_id, month, year) closes the race
		// between the existence check and the batch insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &PeriodExistsError{Month: month, Year: year}
		}
		return nil, fmt.Errorf("failed to save payroll batch: %w", err)
	}

	return payrolls, nil
}

func (h *PayrollHandler) FindAll(ctx context.Context, year *int, month *string) ([]models.Payroll, error) {
	query := h.db.WithContext(ctx).Model(&models.Payroll{}).Preload("Employee")
	if year != nil {
		query = query.Where("year = ?", *year)
	}
	if month != nil {
		query = query.Where("month = ?", *month)
	}

	var payrolls []models.Payroll
	if err := query.Find(&payrolls).Error; err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return payrolls, nil
}

func (h *PayrollHandler) FindOne(ctx context.Context, id int64) (*models.Payroll, error) {
	cacheKey := fmt.Sprintf("%s%d", PAYROLL_CACHE_PREFIX, id)

	val, err := h.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var cached models.Payroll
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	var payroll models.Payroll
	err = h.db.WithContext(ctx).Preload("Employee").First(&payroll, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to find payroll record: %w", err)
	}

	if jsonData, err := json.Marshal(&payroll); err == nil {
		h.redis.Set(ctx, cacheKey, jsonData, CACHE_TTL_LONG)
	}

	return &payroll, nil
}

// FindMySlips orders by year then month label descending. Month is a label
// ("January"), so the month ordering is lexical, kept for compatibility with
// the data already served to clients.
func (h *PayrollHandler) FindMySlips(ctx context.Context, employeeID int64) ([]models.Payroll, error) {
	var payrolls []models.Payroll
	err := h.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Preload("Employee").
		Order("year desc, month desc").
		Find(&payrolls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return payrolls, nil
}

// MarkAsPaid stamps the record PAID with the current date. Calling it on an
// already-paid record is allowed and re-stamps the payment date.
func (h *PayrollHandler) MarkAsPaid(ctx context.Context, id int64) (*models.Payroll, error) {
	var payroll models.Payroll
	err := h.db.WithContext(ctx).First(&payroll, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to find payroll record: %w", err)
	}

	paymentDate := h.now().Format(dateLayout)
	payroll.Status = models.PayrollStatusPaid
	payroll.PaymentDate = &paymentDate
	if err := h.db.WithContext(ctx).Save(&payroll).Error; err != nil {
		return nil, fmt.Errorf("failed to mark payroll as paid: %w", err)
	}

	h.InvalidatePayrollCaches(ctx, id)

	if err := h.db.WithContext(ctx).Preload("Employee").First(&payroll, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload payroll record: %w", err)
	}

	return &payroll, nil
}
