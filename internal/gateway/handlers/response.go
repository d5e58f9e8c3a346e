package handlers

import (
	"github.com/gin-gonic/gin"

	"workforce-system/internal/gateway/middleware"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func callerUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.ContextUserID)
}
