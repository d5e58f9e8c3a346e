package handler

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"workforce-system/internal/database/models"
)

var ErrDepartmentNotFound = errors.New("Department not found")

// DepartmentInUseError rejects deleting a department that still has employees.
type DepartmentInUseError struct {
	EmployeeCount int64
}

func (e *DepartmentInUseError) Error() string {
	return fmt.Sprintf("Cannot delete department. There are %d employees assigned to it.", e.EmployeeCount)
}

type DepartmentHandler struct {
	db *gorm.DB
}

func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{db: db}
}

func (h *DepartmentHandler) Create(ctx context.Context, name, description string) (*models.Department, error) {
	department := models.Department{
		Name:        name,
		Description: description,
	}
	if err := h.db.WithContext(ctx).Create(&department).Error; err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return &department, nil
}

func (h *DepartmentHandler) FindAll(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := h.db.WithContext(ctx).Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (h *DepartmentHandler) FindOne(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	if err := h.db.WithContext(ctx).First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return &department, nil
}

func (h *DepartmentHandler) Update(ctx context.Context, id int64, name, description *string) (*models.Department, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}

	if len(updates) > 0 {
		result := h.db.WithContext(ctx).Model(&models.Department{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update department: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrDepartmentNotFound
		}
	}

	return h.FindOne(ctx, id)
}

func (h *DepartmentHandler) Delete(ctx context.Context, id int64) error {
	var employeeCount int64
	err := h.db.WithContext(ctx).Model(&models.Employee{}).
		Where("department_id = ?", id).
		Count(&employeeCount).Error
	if err != nil {
		return fmt.Errorf("failed to count assigned employees: %w", err)
	}
	if employeeCount > 0 {
		return &DepartmentInUseError{EmployeeCount: employeeCount}
	}

	result := h.db.WithContext(ctx).Delete(&models.Department{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete department: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
