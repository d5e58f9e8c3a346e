package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workforce-system/internal/database/models"
	employeehandler "workforce-system/internal/employee/handler"
	"workforce-system/internal/utils"
)

// Development passcode for the second login step.
const verificationOTP = "123456"

const dateLayout = "2006-01-02"

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidOTP         = errors.New("Invalid OTP")
	ErrUserNotFound       = errors.New("User not found")
)

type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Phone        string
	Designation  string
	DepartmentID *int64
}

// AuthSignal is the first-step login result: credentials are valid but no
// token is issued until the passcode is verified.
type AuthSignal struct {
	Message    string `json:"message"`
	Email      string `json:"email"`
	RequireOTP bool   `json:"require_otp"`
}

type AuthResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type UserHandler struct {
	db        *gorm.DB
	employees *employeehandler.EmployeeHandler
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewUserHandler(db *gorm.DB, employees *employeehandler.EmployeeHandler, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{
		db:        db,
		employees: employees,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register provisions a user account plus its employee record. Self-registered
// employees join with a zero salary until an administrator sets one.
func (h *UserHandler) Register(ctx context.Context, input RegisterInput) (*AuthSignal, error) {
	_, err := h.employees.Create(ctx, employeehandler.CreateEmployeeInput{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		DepartmentID: input.DepartmentID,
		Designation:  input.Designation,
		JoiningDate:  h.now().Format(dateLayout),
		Salary:       "0.00",
		Email:        input.Email,
		Password:     input.Password,
		Role:         models.RoleEmployee,
	})
	if err != nil {
		return nil, err
	}

	return &AuthSignal{
		Message:    "Registration successful. Please verify OTP.",
		Email:      input.Email,
		RequireOTP: true,
	}, nil
}

func (h *UserHandler) Login(ctx context.Context, email, password string) (*AuthSignal, error) {
	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthSignal{
		Message:    "Credentials valid. Please verify OTP to continue.",
		Email:      user.Email,
		RequireOTP: true,
	}, nil
}

// VerifyOTP completes the two-step login, marks the user verified on first
// success and issues the JWT.
func (h *UserHandler) VerifyOTP(ctx context.Context, email, otp string) (*AuthResult, error) {
	if otp != verificationOTP {
		return nil, ErrInvalidOTP
	}

	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsVerified {
		if err := h.db.WithContext(ctx).Model(&user).Update("is_verified", true).Error; err != nil {
			return nil, fmt.Errorf("failed to verify user: %w", err)
		}
		user.IsVerified = true
	}

	token, exp, err := utils.GenerateToken(user.ID, user.Email, user.Role, h.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{
		AccessToken: token,
		ExpiresAt:   exp,
		User:        &user,
	}, nil
}
