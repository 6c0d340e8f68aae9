package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/api/dto"
)

// Health handles GET /health
//
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200 {object} dto.HealthResponse
// @Router   /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Time:   time.Now().Format(time.RFC3339),
	})
}
