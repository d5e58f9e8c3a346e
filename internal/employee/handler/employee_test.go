package handler

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

func TestCreateProvisionsLinkedUser(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)

	employee, err := h.Create(context.Background(), CreateEmployeeInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		Phone:       "9876543210",
		Designation: "Engineer",
		JoiningDate: "2024-01-15",
		Salary:      "50000.00",
		Email:       "asha@example.com",
		Password:    "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, employee.UserID)

	var user models.User
	require.NoError(t, db.First(&user, *employee.UserID).Error)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleEmployee, user.Role)
	assert.False(t, user.IsVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestCreateWithoutCredentials(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)

	employee, err := h.Create(context.Background(), CreateEmployeeInput{
		FirstName:   "Meera",
		LastName:    "Rao",
		JoiningDate: "2024-02-01",
		Salary:      "45000.00",
	})
	require.NoError(t, err)
	assert.Nil(t, employee.UserID)

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Zero(t, userCount)
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)
	ctx := context.Background()

	_, err := h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		JoiningDate: "2024-01-15",
		Salary:      "50000.00",
		Email:       "asha@example.com",
		Password:    "secret123",
	})
	require.NoError(t, err)

	_, err = h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Impostor",
		LastName:    "Verma",
		JoiningDate: "2024-03-01",
		Salary:      "50000.00",
		Email:       "asha@example.com",
		Password:    "other456",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The failed attempt leaves no partial rows behind.
	var employeeCount int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&employeeCount).Error)
	assert.EqualValues(t, 1, employeeCount)
}

func TestFindAllExcludesAdminAccounts(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)
	ctx := context.Background()

	_, err := h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Root",
		LastName:    "Admin",
		JoiningDate: "2024-01-01",
		Salary:      "0.00",
		Email:       "admin@example.com",
		Password:    "secret123",
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		JoiningDate: "2024-01-15",
		Salary:      "50000.00",
		Email:       "asha@example.com",
		Password:    "secret123",
	})
	require.NoError(t, err)
	// No linked account at all still lists.
	_, err = h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Meera",
		LastName:    "Rao",
		JoiningDate: "2024-02-01",
		Salary:      "45000.00",
	})
	require.NoError(t, err)

	employees, err := h.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	for _, e := range employees {
		assert.NotEqual(t, "Root", e.FirstName)
	}
}

func TestFindByUserID(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)
	ctx := context.Background()

	created, err := h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		JoiningDate: "2024-01-15",
		Salary:      "50000.00",
		Email:       "asha@example.com",
		Password:    "secret123",
	})
	require.NoError(t, err)

	found, err := h.FindByUserID(ctx, *created.UserID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.User)
	assert.Equal(t, "asha@example.com", found.User.Email)

	_, err = h.FindByUserID(ctx, 9999)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)
	ctx := context.Background()

	created, err := h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		Designation: "Engineer",
		JoiningDate: "2024-01-15",
		Salary:      "50000.00",
	})
	require.NoError(t, err)

	designation := "Senior Engineer"
	salary := "65000.00"
	updated, err := h.Update(ctx, created.ID, UpdateEmployeeInput{
		Designation: &designation,
		Salary:      &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", updated.Designation)
	assert.Equal(t, "65000.00", updated.Salary)
	assert.Equal(t, "Asha", updated.FirstName)

	_, err = h.Update(ctx, 9999, UpdateEmployeeInput{Designation: &designation})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDeleteCascadesAndClearsManagerRefs(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)
	ctx := context.Background()

	manager, err := h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Meera",
		LastName:    "Rao",
		JoiningDate: "2023-06-01",
		Salary:      "80000.00",
		Email:       "meera@example.com",
		Password:    "secret123",
		Role:        models.RoleManager,
	})
	require.NoError(t, err)

	subordinate, err := h.Create(ctx, CreateEmployeeInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		JoiningDate: "2024-01-15",
		Salary:      "50000.00",
		ManagerID:   &manager.ID,
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Attendance{
		EmployeeID: manager.ID, Date: "2025-03-10", ClockIn: "09:00:00", Status: models.AttendancePresent,
	}).Error)
	require.NoError(t, db.Create(&models.LeaveRequest{
		EmployeeID: manager.ID, LeaveType: models.LeaveTypeCasual,
		StartDate: "2025-04-01", EndDate: "2025-04-01", Status: models.LeaveStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Payroll{
		EmployeeID: manager.ID, Month: "March", Year: 2025,
		Status: models.PayrollStatusPending, BaseSalary: "80000.00", Deductions: "12000.00", NetSalary: "68000.00",
	}).Error)

	require.NoError(t, h.Delete(ctx, manager.ID))

	_, err = h.FindOne(ctx, manager.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	var attendanceCount, leaveCount, payrollCount int64
	require.NoError(t, db.Model(&models.Attendance{}).Where("employee_id = ?", manager.ID).Count(&attendanceCount).Error)
	require.NoError(t, db.Model(&models.LeaveRequest{}).Where("employee_id = ?", manager.ID).Count(&leaveCount).Error)
	require.NoError(t, db.Model(&models.Payroll{}).Where("employee_id = ?", manager.ID).Count(&payrollCount).Error)
	assert.Zero(t, attendanceCount)
	assert.Zero(t, leaveCount)
	assert.Zero(t, payrollCount)

	reloaded, err := h.FindOne(ctx, subordinate.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ManagerID)

	// The linked user account survives the employee deletion.
	var user models.User
	assert.NoError(t, db.Where("email = ?", "meera@example.com").First(&user).Error)
}

func TestDeleteMissingEmployee(t *testing.T) {
	db := newTestDB(t)
	h := NewEmployeeHandler(db)

	err := h.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
