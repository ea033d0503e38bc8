// Package middleware — сквозные обработчики HTTP: CORS, идентификатор
// запроса и журнал доступа.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS отвечает разрешающими заголовками на все запросы; preflight
// OPTIONS закрывается сразу.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
