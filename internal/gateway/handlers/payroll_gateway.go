package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	employeehandler "workforce-system/internal/employee/handler"
	payrollhandler "workforce-system/internal/payroll/handler"
)

type PayrollHTTPHandler struct {
	payroll   *payrollhandler.PayrollHandler
	employees *employeehandler.EmployeeHandler
}

func NewPayrollHTTPHandler(payroll *payrollhandler.PayrollHandler, employees *employeehandler.EmployeeHandler) *PayrollHTTPHandler {
	return &PayrollHTTPHandler{payroll: payroll, employees: employees}
}

type GeneratePayrollRequest struct {
	Month string `json:"month" binding:"required"`
	Year  int    `json:"year" binding:"required"`
}

type ListPayrollQuery struct {
	Year  *int    `form:"year"`
	Month *string `form:"month"`
}

func (h *PayrollHTTPHandler) Generate(c *gin.Context) {
	var req GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	payrolls, err := h.payroll.Generate(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		var periodExists *payrollhandler.PeriodExistsError
		if errors.As(err, &periodExists) {
			c.JSON(http.StatusConflict, errorResponse(periodExists.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Payroll generation failed"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Payroll generated", payrolls))
}

func (h *PayrollHTTPHandler) List(c *gin.Context) {
	var query ListPayrollQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	payrolls, err := h.payroll.FindAll(c.Request.Context(), query.Year, query.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load payroll records"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payroll records", payrolls))
}

func (h *PayrollHTTPHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid payroll id"))
		return
	}

	payroll, err := h.payroll.FindOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, payrollhandler.ErrPayrollNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load payroll record"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payroll record", payroll))
}

func (h *PayrollHTTPHandler) MySlips(c *gin.Context) {
	employee, err := h.employees.FindByUserID(c.Request.Context(), callerUserID(c))
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusForbidden, errorResponse("No employee record linked to this account"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to resolve employee record"))
		return
	}

	payrolls, err := h.payroll.FindMySlips(c.Request.Context(), employee.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load payslips"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payslips", payrolls))
}

func (h *PayrollHTTPHandler) MarkAsPaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid payroll id"))
		return
	}

	payroll, err := h.payroll.MarkAsPaid(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, payrollhandler.ErrPayrollNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to mark payroll as paid"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Payroll marked as paid", payroll))
}
