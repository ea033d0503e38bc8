package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler — проверка живости и краткая сводка конфигурации без
// секретов.
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"env": gin.H{
			"megaplanAccount": h.cfg.MegaplanAccount,
			"hasBearerToken":  h.cfg.BearerToken != "",
			"hasLogin":        h.cfg.Login != "",
			"hasPassword":     h.cfg.Password != "",
		},
	})
}
