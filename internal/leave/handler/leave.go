package handler

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"workforce-system/internal/database/models"
)

var ErrLeaveNotFound = errors.New("Leave request not found")

type CreateLeaveInput struct {
	EmployeeID int64
	LeaveType  string
	Session    *string
	StartDate  string
	EndDate    string
	Reason     string
	// Status is accepted from callers but never honored; every new request
	// starts PENDING.
	Status string
}

type LeaveHandler struct {
	db *gorm.DB
}

func NewLeaveHandler(db *gorm.DB) *LeaveHandler {
	return &LeaveHandler{db: db}
}

func (h *LeaveHandler) Create(ctx context.Context, input CreateLeaveInput) (*models.LeaveRequest, error) {
	leave := models.LeaveRequest{
		EmployeeID: input.EmployeeID,
		LeaveType:  input.LeaveType,
		Session:    input.Session,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Reason:     input.Reason,
		Status:     models.LeaveStatusPending,
	}
	if err := h.db.WithContext(ctx).Create(&leave).Error; err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	return &leave, nil
}

func (h *LeaveHandler) FindByEmployee(ctx context.Context, employeeID int64) ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := h.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Preload("Approver").
		Order("id desc").
		Find(&leaves).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

func (h *LeaveHandler) FindPending(ctx context.Context) ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := h.db.WithContext(ctx).
		Where("status = ?", models.LeaveStatusPending).
		Preload("Employee").
		Order("id desc").
		Find(&leaves).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return leaves, nil
}

func (h *LeaveHandler) FindAll(ctx context.Context) ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := h.db.WithContext(ctx).
		Preload("Employee").
		Preload("Approver").
		Order("id desc").
		Find(&leaves).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

func (h *LeaveHandler) Approve(ctx context.Context, id, approverID int64, adminComments *string) (*models.LeaveRequest, error) {
	return h.transition(ctx, id, models.LeaveStatusApproved, approverID, adminComments)
}

func (h *LeaveHandler) Reject(ctx context.Context, id, approverID int64, adminComments *string) (*models.LeaveRequest, error) {
	return h.transition(ctx, id, models.LeaveStatusRejected, approverID, adminComments)
}

// transition stamps the decision onto the request. There is deliberately no
// guard on the current status: an already-decided request can be decided
// again and the later decision wins.
func (h *LeaveHandler) transition(ctx context.Context, id int64, status string, approverID int64, adminComments *string) (*models.LeaveRequest, error) {
	var leave models.LeaveRequest
	if err := h.db.WithContext(ctx).First(&leave, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, fmt.Errorf("failed to find leave request: %w", err)
	}

	leave.Status = status
	leave.ApprovedBy = &approverID
	leave.AdminComments = adminComments
	if err := h.db.WithContext(ctx).Save(&leave).Error; err != nil {
		return nil, fmt.Errorf("failed to save leave decision: %w", err)
	}
	return &leave, nil
}
