package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"workforce-system/internal/database/models"
)

const (
	ATTENDANCE_TODAY_CACHE_PREFIX = "attendance:today:"

	CACHE_TTL_SHORT = 5 * time.Minute
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

var (
	ErrAlreadyClockedIn = errors.New("You have already clocked in for today.")
	ErrNoActiveCheckIn  = errors.New("No active check-in record found to check out from.")
)

type AttendanceHandler struct {
	db    *gorm.DB
	redis *redis.Client
	now   func() time.Time
}

func NewAttendanceHandler(db *gorm.DB, redisClient *redis.Client) *AttendanceHandler {
	return &AttendanceHandler{
		db:    db,
		redis: redisClient,
		now:   time.Now,
	}
}

// SetNowFunc overrides the wall clock, used by tests to pin the day boundary.
func (h *AttendanceHandler) SetNowFunc(now func() time.Time) {
	h.now = now
}

func (h *AttendanceHandler) InvalidateAttendanceCaches(ctx context.Context, dates ...string) {
	for _, d := range dates {
		cacheKey := fmt.Sprintf("%s%s", ATTENDANCE_TODAY_CACHE_PREFIX, d)
		_ = h.redis.Del(ctx, cacheKey)
	}
}

// ClockIn opens the day's attendance record for an employee. The day boundary
// is server-local midnight. A record for (employee, today) already existing,
// open or closed, is a conflict.
func (h *AttendanceHandler) ClockIn(ctx context.Context, employeeID int64) (*models.Attendance, error) {
	now := h.now()
	today := now.Format(dateLayout)

	var existing models.Attendance
	err := h.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, today).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	record := models.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		ClockIn:    now.Format(clockLayout),
		Status:     models.AttendancePresent,
	}
	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		// The unique index on (employee_id, date) closes the race between the
		// existence check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	h.InvalidateAttendanceCaches(ctx, today)

	return &record, nil
}

// ClockOut closes the newest open record for the employee. The lookup is not
// scoped to today: a stale open record from a prior day is the one closed.
func (h *AttendanceHandler) ClockOut(ctx context.Context, employeeID int64) (*models.Attendance, error) {
	var record models.Attendance
	err := h.db.WithContext(ctx).
		Where("employee_id = ? AND clock_out IS NULL", employeeID).
		Order("date desc, clock_in desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveCheckIn
		}
		return nil, fmt.Errorf("failed to find open attendance record: %w", err)
	}

	clockOut := h.now().Format(clockLayout)
	record.ClockOut = &clockOut
	if err := h.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save clock-out: %w", err)
	}

	h.InvalidateAttendanceCaches(ctx, record.Date)

	return &record, nil
}

func (h *AttendanceHandler) FindByEmployee(ctx context.Context, employeeID int64) ([]models.Attendance, error) {
	var records []models.Attendance
	err := h.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (h *AttendanceHandler) FindToday(ctx context.Context) ([]models.Attendance, error) {
	today := h.now().Format(dateLayout)
	cacheKey := fmt.Sprintf("%s%s", ATTENDANCE_TODAY_CACHE_PREFIX, today)

	val, err := h.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var cached []models.Attendance
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	}

	var records []models.Attendance
	err = h.db.WithContext(ctx).
		Where("date = ?", today).
		Preload("Employee").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}

	if jsonData, err := json.Marshal(records); err == nil {
		h.redis.Set(ctx, cacheKey, jsonData, CACHE_TTL_SHORT)
	}

	return records, nil
}

func (h *AttendanceHandler) FindAll(ctx context.Context) ([]models.Attendance, error) {
	var records []models.Attendance
	err := h.db.WithContext(ctx).
		Preload("Employee").
		Order("date desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
