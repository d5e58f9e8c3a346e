package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workforce-system/internal/database/models"
	employeehandler "workforce-system/internal/employee/handler"
	leavehandler "workforce-system/internal/leave/handler"
)

type LeaveHTTPHandler struct {
	leaves    *leavehandler.LeaveHandler
	employees *employeehandler.EmployeeHandler
}

func NewLeaveHTTPHandler(leaves *leavehandler.LeaveHandler, employees *employeehandler.EmployeeHandler) *LeaveHTTPHandler {
	return &LeaveHTTPHandler{leaves: leaves, employees: employees}
}

type CreateLeaveRequest struct {
	LeaveType string  `json:"leave_type" binding:"required,oneof=CASUAL SICK PAID SHORT"`
	Session   *string `json:"session" binding:"omitempty,oneof=FIRST_HALF SECOND_HALF"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Reason    string  `json:"reason"`
	// Ignored on create; requests always start PENDING.
	Status string `json:"status"`
}

type LeaveDecisionRequest struct {
	AdminComments *string `json:"admin_comments"`
}

func (h *LeaveHTTPHandler) resolveCaller(c *gin.Context) (int64, bool) {
	employee, err := h.employees.FindByUserID(c.Request.Context(), callerUserID(c))
	if err != nil {
		if errors.Is(err, employeehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusForbidden, errorResponse("No employee record linked to this account"))
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to resolve employee record"))
		return 0, false
	}
	return employee.ID, true
}

func (h *LeaveHTTPHandler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	leave, err := h.leaves.Create(c.Request.Context(), leavehandler.CreateLeaveInput{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		Session:    req.Session,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create leave request"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Leave request submitted", leave))
}

func (h *LeaveHTTPHandler) My(c *gin.Context) {
	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	leaves, err := h.leaves.FindByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load leave requests"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Leave requests", leaves))
}

func (h *LeaveHTTPHandler) Pending(c *gin.Context) {
	leaves, err := h.leaves.FindPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load leave requests"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Pending leave requests", leaves))
}

func (h *LeaveHTTPHandler) List(c *gin.Context) {
	leaves, err := h.leaves.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load leave requests"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Leave requests", leaves))
}

func (h *LeaveHTTPHandler) Approve(c *gin.Context) {
	h.decide(c, h.leaves.Approve, "Leave request approved")
}

func (h *LeaveHTTPHandler) Reject(c *gin.Context) {
	h.decide(c, h.leaves.Reject, "Leave request rejected")
}

type leaveDecisionFunc func(ctx context.Context, id, approverID int64, adminComments *string) (*models.LeaveRequest, error)

func (h *LeaveHTTPHandler) decide(c *gin.Context, decision leaveDecisionFunc, message string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid leave request id"))
		return
	}

	var req LeaveDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	approverID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	leave, err := decision(c.Request.Context(), id, approverID, req.AdminComments)
	if err != nil {
		if errors.Is(err, leavehandler.ErrLeaveNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update leave request"))
		return
	}

	c.JSON(http.StatusOK, successResponse(message, leave))
}
