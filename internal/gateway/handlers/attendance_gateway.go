package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	attendancehandler "workforce-system/internal/attendance/handler"
	employeehandler "workforce-system/internal/employee/handler"
)

type AttendanceHTTPHandler struct {
	attendance *attendancehandler.AttendanceHandler
	employees  *employeehandler.EmployeeHandler
}

func NewAttendanceHTTPHandler(attendance *attendancehandler.AttendanceHandler, employees *employeehandler.EmployeeHandler) *AttendanceHTTPHandler {
	return &AttendanceHTTPHandler{attendance: attendance, employees: employees}
}

// resolveCaller maps the authenticated user onto their employee record.
func (h *AttendanceHTTPHandler) resolveCaller(c *gin.Context) (int64, bool) {
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

func (h *AttendanceHTTPHandler) ClockIn(c *gin.Context) {
	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	record, err := h.attendance.ClockIn(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, attendancehandler.ErrAlreadyClockedIn) {
			c.JSON(http.StatusConflict, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Clock-in failed"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Clocked in", record))
}

func (h *AttendanceHTTPHandler) ClockOut(c *gin.Context) {
	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	record, err := h.attendance.ClockOut(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, attendancehandler.ErrNoActiveCheckIn) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Clock-out failed"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Clocked out", record))
}

func (h *AttendanceHTTPHandler) My(c *gin.Context) {
	employeeID, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	records, err := h.attendance.FindByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load attendance"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Attendance records", records))
}

func (h *AttendanceHTTPHandler) Today(c *gin.Context) {
	records, err := h.attendance.FindToday(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load attendance"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Today's attendance", records))
}

func (h *AttendanceHTTPHandler) List(c *gin.Context) {
	records, err := h.attendance.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load attendance"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Attendance records", records))
}
