package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	departmenthandler "workforce-system/internal/department/handler"
)

type DepartmentHTTPHandler struct {
	departments *departmenthandler.DepartmentHandler
}

func NewDepartmentHTTPHandler(departments *departmenthandler.DepartmentHandler) *DepartmentHTTPHandler {
	return &DepartmentHTTPHandler{departments: departments}
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *DepartmentHTTPHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	department, err := h.departments.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to create department"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Department created", department))
}

func (h *DepartmentHTTPHandler) List(c *gin.Context) {
	departments, err := h.departments.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load departments"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Departments", departments))
}

func (h *DepartmentHTTPHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid department id"))
		return
	}

	department, err := h.departments.FindOne(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, departmenthandler.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load department"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Department", department))
}

func (h *DepartmentHTTPHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid department id"))
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	department, err := h.departments.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, departmenthandler.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update department"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Department updated", department))
}

func (h *DepartmentHTTPHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid department id"))
		return
	}

	if err := h.departments.Delete(c.Request.Context(), id); err != nil {
		var inUse *departmenthandler.DepartmentInUseError
		switch {
		case errors.As(err, &inUse):
			c.JSON(http.StatusBadRequest, errorResponse(inUse.Error()))
		case errors.Is(err, departmenthandler.ErrDepartmentNotFound):
			c.JSON(http.StatusNotFound, errorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete department"))
		}
		return
	}

	c.JSON(http.StatusOK, successResponse("Department deleted", nil))
}
