package handler

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workforce-system/internal/database/models"
)

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrEmailTaken       = errors.New("User already exists")
)

type CreateEmployeeInput struct {
	FirstName    string
	LastName     string
	Phone        string
	DepartmentID *int64
	Designation  string
	JoiningDate  string
	Salary       string
	ManagerID    *int64
	// Email and Password provision a linked user account when both are set.
	Email    string
	Password string
	Role     string
}

type UpdateEmployeeInput struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	DepartmentID *int64
	Designation  *string
	JoiningDate  *string
	Salary       *string
	ManagerID    *int64
}

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// Create persists the employee, provisioning a linked user account first when
// credentials are supplied. Both writes share one transaction so a failed
// employee insert rolls the user back.
func (h *EmployeeHandler) Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	employee := models.Employee{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		DepartmentID: input.DepartmentID,
		Designation:  input.Designation,
		JoiningDate:  input.JoiningDate,
		Salary:       input.Salary,
		ManagerID:    input.ManagerID,
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Email != "" && input.Password != "" {
			var existing models.User
			if err := tx.Where("email = ?", input.Email).First(&existing).Error; err == nil {
				return ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check existing user: %w", err)
			}

			pwHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			role := input.Role
			if role == "" {
				role = models.RoleEmployee
			}
			user := models.User{
				Email:    input.Email,
				Password: string(pwHash),
				Role:     role,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			employee.UserID = &user.ID
		}

		if err := tx.Create(&employee).Error; err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &employee, nil
}

// FindAll lists employees with their relations hydrated, leaving out rows
// linked to administrator accounts.
func (h *EmployeeHandler) FindAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := h.db.WithContext(ctx).
		Joins("LEFT JOIN users ON users.id = employees.user_id").
		Where("users.role IS NULL OR users.role <> ?", models.RoleAdmin).
		Preload("User").
		Preload("Department").
		Preload("Manager").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (h *EmployeeHandler) FindOne(ctx context.Context, id int64) (*models.Employee, error) {
	var employee models.Employee
	err := h.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Preload("Manager").
		First(&employee, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &employee, nil
}

// FindByUserID resolves the employee linked to a user account, the lookup the
// sub-engines use to map an authenticated caller onto the registry.
func (h *EmployeeHandler) FindByUserID(ctx context.Context, userID int64) (*models.Employee, error) {
	var employee models.Employee
	err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Department").
		Preload("Manager").
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee by user: %w", err)
	}
	return &employee, nil
}

func (h *EmployeeHandler) Update(ctx context.Context, id int64, input UpdateEmployeeInput) (*models.Employee, error) {
	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.DepartmentID != nil {
		updates["department_id"] = *input.DepartmentID
	}
	if input.Designation != nil {
		updates["designation"] = *input.Designation
	}
	if input.JoiningDate != nil {
		updates["joining_date"] = *input.JoiningDate
	}
	if input.Salary != nil {
		updates["salary"] = *input.Salary
	}
	if input.ManagerID != nil {
		updates["manager_id"] = *input.ManagerID
	}

	if len(updates) > 0 {
		result := h.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update employee: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrEmployeeNotFound
		}
	}

	return h.FindOne(ctx, id)
}

// Delete removes the employee together with its attendance, leave and payroll
// rows. Subordinates keep their rows; only their manager reference is cleared.
// The linked user account, if any, is left in place.
func (h *EmployeeHandler) Delete(ctx context.Context, id int64) error {
	return h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to find employee: %w", err)
		}

		if err := tx.Model(&models.Employee{}).
			Where("manager_id = ?", id).
			Update("manager_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear manager references: %w", err)
		}

		if err := tx.Where("employee_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return fmt.Errorf("failed to delete attendance records: %w", err)
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.LeaveRequest{}).Error; err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.Payroll{}).Error; err != nil {
			return fmt.Errorf("failed to delete payroll records: %w", err)
		}

		if err := tx.Delete(&models.Employee{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return nil
	})
}
