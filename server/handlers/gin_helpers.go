package handlers

import (
	"github.com/gin-gonic/gin"
)

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}
