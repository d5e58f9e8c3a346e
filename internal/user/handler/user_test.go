package handler

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workforce-system/internal/database"
	"workforce-system/internal/database/models"
	employeehandler "workforce-system/internal/employee/handler"
	"workforce-system/internal/utils"
)

func newTestHandler(t *testing.T) (*UserHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewUserHandler(db, employeehandler.NewEmployeeHandler(db), time.Hour), db
}

func register(t *testing.T, h *UserHandler) {
	t.Helper()
	_, err := h.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
}

func TestRegisterProvisionsEmployee(t *testing.T) {
	h, db := newTestHandler(t)
	h.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	signal, err := h.Register(context.Background(), RegisterInput{
		FirstName:   "Asha",
		LastName:    "Verma",
		Email:       "asha@example.com",
		Password:    "secret123",
		Designation: "Engineer",
	})
	require.NoError(t, err)
	assert.True(t, signal.RequireOTP)
	assert.Equal(t, "asha@example.com", signal.Email)

	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.Equal(t, models.RoleEmployee, user.Role)

	var employee models.Employee
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&employee).Error)
	assert.Equal(t, "0.00", employee.Salary)
	assert.Equal(t, "2025-03-10", employee.JoiningDate)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)
	register(t, h)

	_, err := h.Register(context.Background(), RegisterInput{
		FirstName: "Impostor",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Password:  "other456",
	})
	assert.ErrorIs(t, err, employeehandler.ErrEmailTaken)
}

func TestLoginSignalsOTPStep(t *testing.T) {
	h, _ := newTestHandler(t)
	register(t, h)

	signal, err := h.Login(context.Background(), "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.True(t, signal.RequireOTP)
	assert.Equal(t, "Credentials valid. Please verify OTP to continue.", signal.Message)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, _ := newTestHandler(t)
	register(t, h)

	_, err := h.Login(context.Background(), "asha@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = h.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyOTPIssuesToken(t *testing.T) {
	h, db := newTestHandler(t)
	register(t, h)

	result, err := h.VerifyOTP(context.Background(), "asha@example.com", "123456")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.True(t, result.User.IsVerified)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := utils.ParseToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserId)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, models.RoleEmployee, claims.Role)

	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.True(t, user.IsVerified)
}

func TestVerifyOTPRejectsBadCode(t *testing.T) {
	h, _ := newTestHandler(t)
	register(t, h)

	_, err := h.VerifyOTP(context.Background(), "asha@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	_, err = h.VerifyOTP(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
