package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	employeehandler "workforce-system/internal/employee/handler"
	userhandler "workforce-system/internal/user/handler"
)

type UserHTTPHandler struct {
	users *userhandler.UserHandler
}

func NewUserHTTPHandler(users *userhandler.UserHandler) *UserHTTPHandler {
	return &UserHTTPHandler{users: users}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation"`
	DepartmentID *int64 `json:"department_id"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

func (h *UserHTTPHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	signal, err := h.users.Register(c.Request.Context(), userhandler.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Designation:  req.Designation,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmailTaken) {
			c.JSON(http.StatusConflict, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Registration failed"))
		return
	}

	c.JSON(http.StatusCreated, successResponse(signal.Message, signal))
}

func (h *UserHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	signal, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userhandler.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Login failed"))
		return
	}

	c.JSON(http.StatusOK, successResponse(signal.Message, signal))
}

func (h *UserHTTPHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	result, err := h.users.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, userhandler.ErrInvalidOTP):
			c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
		case errors.Is(err, userhandler.ErrUserNotFound):
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("OTP verification failed"))
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Login successful", result))
}
