package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stayhub/maintenance-be/internal/api/dto"
	"github.com/stayhub/maintenance-be/internal/api/middleware"
)

// AcceptJob handles POST /staff/jobs/:id/accept
func (h *StaffHandler) AcceptJob(c *gin.Context) {
	jobID := c.Param("id")
	userID := middleware.UserID(c)

	job, err := h.service.AcceptJob(c.Request.Context(), jobID, userID)
	if err != nil {
		respondError(c, h.logger, "accept job", err)
		return
	}

	respondOK(c, "Job accepted and started", dto.JobFromDomain(job))
}

// SubmitJob handles POST /staff/jobs/:id/submit
func (h *StaffHandler) SubmitJob(c *gin.Context) {
	var req dto.SubmitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	jobID := c.Param("id")
	userID := middleware.UserID(c)

	job, err := h.service.SubmitJob(c.Request.Context(), jobID, userID, req.BeforeImage, req.AfterImage)
	if err != nil {
		respondError(c, h.logger, "submit job", err)
		return
	}

	respondOK(c, "Job submitted for review", dto.JobFromDomain(job))
}

// RejectJob handles POST /staff/jobs/:id/reject
func (h *StaffHandler) RejectJob(c *gin.Context) {
	jobID := c.Param("id")
	userID := middleware.UserID(c)

	if _, err := h.service.RejectJob(c.Request.Context(), jobID, userID); err != nil {
		respondError(c, h.logger, "reject job", err)
		return
	}

	respondOK(c, "Job rejected and returned to queue", nil)
}

// MyJobs handles GET /staff/jobs
func (h *StaffHandler) MyJobs(c *gin.Context) {
	userID := middleware.UserID(c)

	jobs, err := h.service.MyAssignedJobs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "list assigned jobs", err)
		return
	}

	respondOK(c, "Assigned jobs retrieved successfully", dto.JobsFromDomain(jobs))
}

// MyEarnings handles GET /staff/earnings
func (h *StaffHandler) MyEarnings(c *gin.Context) {
	userID := middleware.UserID(c)

	earnings, err := h.service.MyEarnings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "calculate earnings", err)
		return
	}

	respondOK(c, "Earnings retrieved successfully", dto.EarningsDTO{
		TotalEarnings: earnings.TotalEarnings,
		JobsCount:     earnings.JobsCount,
		CompletedJobs: dto.JobsFromDomain(earnings.Jobs),
	})
}
