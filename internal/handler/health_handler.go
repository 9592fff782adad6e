package handler

import (
	"github.com/gin-gonic/gin"
)

// HealthHandler 存活检查
type HealthHandler struct{}

// NewHealthHandler 创建存活检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	HandleSuccess(c, gin.H{"status": "ok"})
}
