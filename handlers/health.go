package handlers

import (
	"net/http"

	"gochinamed/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency check. It answers 503 once a dependency
// has been seen down.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "dependencies": status})
}
