package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	employeehandler "workforce-system/internal/employee/handler"
	performancehandler "workforce-system/internal/performance/handler"
)

type PerformanceHTTPHandler struct {
	performance *performancehandler.PerformanceHandler
	employees   *employeehandler.EmployeeHandler
}

func NewPerformanceHTTPHandler(performance *performancehandler.PerformanceHandler, employees *employeehandler.EmployeeHandler) *PerformanceHTTPHandler {
	return &PerformanceHTTPHandler{performance: performance, employees: employees}
}

type CreateReviewRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comments   string `json:"comments"`
}

type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
}

type UpdateGoalRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

func (h *PerformanceHTTPHandler) resolveCaller(c *gin.Context) (int64, bool) {
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

func (h *PerformanceHTTPHandler) AddReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	reviewerID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	review, err := h.performance.AddReview(c.Request.Context(), req.EmployeeID, reviewerID, req.Rating, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, performancehandler.ErrEmployeeNotFound),
			errors.Is(err, performancehandler.ErrReviewerNotFound):
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to create review"))
		}
		return
	}

	c.JSON(http.StatusCreated, successResponse("Review added", review))
}

func (h *PerformanceHTTPHandler) ListReviews(c *gin.Context) {
	reviews, err := h.performance.GetAllReviews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load reviews"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Reviews", reviews))
}

func (h *PerformanceHTTPHandler) EmployeeReviews(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid employee id"))
		return
	}

	reviews, err := h.performance.GetReviews(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load reviews"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Reviews", reviews))
}

func (h *PerformanceHTTPHandler) AddGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	goal, err := h.performance.AddGoal(c.Request.Context(), employeeID, req.Title, req.Description, req.Deadline)
	if err != nil {
		if errors.Is(err, performancehandler.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create goal"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Goal added", goal))
}

func (h *PerformanceHTTPHandler) MyGoals(c *gin.Context) {
	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	goals, err := h.performance.GetGoals(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load goals"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Goals", goals))
}

func (h *PerformanceHTTPHandler) UpdateGoal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid goal id"))
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	goal, err := h.performance.UpdateGoal(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, performancehandler.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update goal"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Goal updated", goal))
}
