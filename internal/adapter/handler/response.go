package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"Success"`
	Message string      `json:"Message"`
	Object  interface{} `json:"Object"`
	Errors  []string    `json:"Errors"`
}

// PaginatedResponse extends the envelope for listing endpoints. PageSize
// is the number of items actually returned, not the requested limit.
type PaginatedResponse struct {
	Response
	PageNumber int `json:"PageNumber"`
	PageSize   int `json:"PageSize"`
	TotalSize  int `json:"TotalSize"`
}

func respondSuccess(c *gin.Context, status int, message string, object interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Object:  object,
	})
}

func respondPaginated(c *gin.Context, message string, object interface{}, pageNumber, pageSize, totalSize int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Response: Response{
			Success: true,
			Message: message,
			Object:  object,
		},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalSize:  totalSize,
	})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, Response{
		Success: false,
		Message: message,
		Errors:  []string{message},
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Errors:  []string{message},
	})
}
