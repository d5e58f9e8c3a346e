package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	employeehandler "workforce-system/internal/employee/handler"
)

type EmployeeHTTPHandler struct {
	employees *employeehandler.EmployeeHandler
}

func NewEmployeeHTTPHandler(employees *employeehandler.EmployeeHandler) *EmployeeHTTPHandler {
	return &EmployeeHTTPHandler{employees: employees}
}

type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Phone        string `json:"phone"`
	DepartmentID *int64 `json:"department_id"`
	Designation  string `json:"designation"`
	JoiningDate  string `json:"joining_date" binding:"required"`
	Salary       string `json:"salary" binding:"required"`
	ManagerID    *int64 `json:"manager_id"`
	Email        string `json:"email" binding:"omitempty,email"`
	Password     string `json:"password" binding:"omitempty,min=6"`
	Role         string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
}

type UpdateEmployeeRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	JoiningDate  *string `json:"joining_date,omitempty"`
	Salary       *string `json:"salary,omitempty"`
	ManagerID    *int64  `json:"manager_id,omitempty"`
}

func (h *EmployeeHTTPHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employee, err := h.employees.Create(c.Request.Context(), employeehandler.CreateEmployeeInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		Designation:  req.Designation,
		JoiningDate:  req.JoiningDate,
		Salary:       req.Salary,
		ManagerID:    req.ManagerID,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmailTaken) {
			c.JSON(http.StatusConflict, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create employee"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Employee created", employee))
}

func (h *EmployeeHTTPHandler) List(c *gin.Context) {
	employees, err := h.employees.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load employees"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employees", employees))
}

func (h *EmployeeHTTPHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid employee id"))
		return
	}

	employee, err := h.employees.FindOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load employee"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employee", employee))
}

// Me returns the employee record linked to the authenticated account.
func (h *EmployeeHTTPHandler) Me(c *gin.Context) {
	employee, err := h.employees.FindByUserID(c.Request.Context(), callerUserID(c))
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load employee"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employee", employee))
}

func (h *EmployeeHTTPHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid employee id"))
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employee, err := h.employees.Update(c.Request.Context(), id, employeehandler.UpdateEmployeeInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		Designation:  req.Designation,
		JoiningDate:  req.JoiningDate,
		Salary:       req.Salary,
		ManagerID:    req.ManagerID,
	})
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update employee"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employee updated", employee))
}

func (h *EmployeeHTTPHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid employee id"))
		return
	}

	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, employeehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete employee"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Employee deleted", nil))
}
