package handler

import (
	"github.com/gin-gonic/gin"
)

// Stats handles GET /admin/dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "dashboard stats", err)
		return
	}
	respondOK(c, "Dashboard stats retrieved successfully", stats)
}
