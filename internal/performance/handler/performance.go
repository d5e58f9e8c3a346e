package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"workforce-system/internal/database/models"
)

const dateLayout = "2006-01-02"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrReviewerNotFound = errors.New("Reviewer not found")
	ErrGoalNotFound     = errors.New("Goal not found")
)

type PerformanceHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPerformanceHandler(db *gorm.DB) *PerformanceHandler {
	return &PerformanceHandler{db: db, now: time.Now}
}

func (h *PerformanceHandler) SetNowFunc(now func() time.Time) {
	h.now = now
}

func (h *PerformanceHandler) AddReview(ctx context.Context, employeeID, reviewerID int64, rating int, comments string) (*models.PerformanceReview, error) {
	var employee models.Employee
	if err := h.db.WithContext(ctx).First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	var reviewer models.Employee
	if err := h.db.WithContext(ctx).First(&reviewer, reviewerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewerNotFound
		}
		return nil, fmt.Errorf("failed to find reviewer: %w", err)
	}

	review := models.PerformanceReview{
		EmployeeID: employeeID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comments:   comments,
		ReviewDate: h.now().Format(dateLayout),
	}
	if err := h.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (h *PerformanceHandler) GetReviews(ctx context.Context, employeeID int64) ([]models.PerformanceReview, error) {
	var reviews []models.PerformanceReview
	err := h.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Preload("Reviewer").
		Preload("Reviewer.User").
		Order("review_date desc").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (h *PerformanceHandler) GetAllReviews(ctx context.Context) ([]models.PerformanceReview, error) {
	var reviews []models.PerformanceReview
	err := h.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.User").
		Preload("Reviewer").
		Preload("Reviewer.User").
		Order("review_date desc").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (h *PerformanceHandler) AddGoal(ctx context.Context, employeeID int64, title, description string, deadline *string) (*models.Goal, error) {
	var employee models.Employee
	if err := h.db.WithContext(ctx).First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	goal := models.Goal{
		EmployeeID:  employeeID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Status:      models.GoalStatusPending,
	}
	if err := h.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

func (h *PerformanceHandler) GetGoals(ctx context.Context, employeeID int64) ([]models.Goal, error) {
	var goals []models.Goal
	err := h.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at desc").
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (h *PerformanceHandler) UpdateGoal(ctx context.Context, id int64, status string) (*models.Goal, error) {
	var goal models.Goal
	if err := h.db.WithContext(ctx).First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	goal.Status = status
	if err := h.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return &goal, nil
}
