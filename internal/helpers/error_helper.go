package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

func RespondWithError(c *gin.Context, statusCode int, description string) {
	c.JSON(statusCode, ErrorResponse{
		Error:       http.StatusText(statusCode),
		Description: description,
	})
}
