package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/dto"
	"github.com/stayhub/maintenance-be/internal/api/middleware"
	"github.com/stayhub/maintenance-be/internal/api/service"
	"github.com/stayhub/maintenance-be/internal/api/storage"
)

// CreateJob handles POST /admin/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	ownerID := middleware.UserID(c)
	job, err := h.service.CreateJob(c.Request.Context(), ownerID, service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Urgency:     domain.JobUrgency(req.Urgency),
		Budget:      req.Budget,
		PropertyID:  req.PropertyID,
		HotelID:     req.HotelID,
	})
	if err != nil {
		respondError(c, h.logger, "create job", err)
		return
	}

	respondOK(c, "Job created successfully", dto.JobFromDomain(job))
}

// ApplyToJob handles POST /admin/jobs/:id/apply
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	jobID := c.Param("id")
	userID := middleware.UserID(c)

	application, err := h.service.ApplyToJob(c.Request.Context(), userID, jobID)
	if err != nil {
		respondError(c, h.logger, "apply to job", err)
		return
	}

	respondOK(c, "Applied to job successfully", dto.AssignmentFromDomain(application))
}

// AssignJob handles POST /admin/jobs/:id/assign
func (h *JobHandler) AssignJob(c *gin.Context) {
	var req dto.AssignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "applierId is required")
		return
	}

	jobID := c.Param("id")
	ownerID := middleware.UserID(c)

	job, assignment, err := h.service.AssignJob(c.Request.Context(), jobID, req.ApplierID, ownerID)
	if err != nil {
		respondError(c, h.logger, "assign job", err)
		return
	}

	respondOK(c, "Job assigned successfully", gin.H{
		"assignmentId": assignment.ID,
		"jobStatus":    string(job.Status),
	})
}

// AutoAssignJob handles POST /admin/jobs/:id/auto-assign
func (h *JobHandler) AutoAssignJob(c *gin.Context) {
	jobID := c.Param("id")
	ownerID := middleware.UserID(c)

	job, assignment, err := h.service.AutoAssignJob(c.Request.Context(), jobID, ownerID)
	if err != nil {
		respondError(c, h.logger, "auto-assign job", err)
		return
	}

	respondOK(c, "Job auto-assigned successfully", gin.H{
		"assignmentId": assignment.ID,
		"applierId":    assignment.ApplierID,
		"jobStatus":    string(job.Status),
	})
}

// ReviewJob handles POST /admin/jobs/:id/review
func (h *JobHandler) ReviewJob(c *gin.Context) {
	var req dto.ReviewJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status must be APPROVED or REJECTED")
		return
	}

	jobID := c.Param("id")
	ownerID := middleware.UserID(c)

	job, err := h.service.ReviewJob(c.Request.Context(), jobID, ownerID, domain.JobStatus(req.Status), req.Reason)
	if err != nil {
		respondError(c, h.logger, "review job", err)
		return
	}

	respondOK(c, "Job reviewed successfully", dto.JobFromDomain(job))
}

// ApproveJob handles POST /admin/jobs/:id/approve
func (h *JobHandler) ApproveJob(c *gin.Context) {
	jobID := c.Param("id")
	ownerID := middleware.UserID(c)

	job, err := h.service.ApproveJob(c.Request.Context(), jobID, ownerID)
	if err != nil {
		respondError(c, h.logger, "approve job", err)
		return
	}

	respondOK(c, "Job approved successfully", gin.H{
		"jobId":     job.ID,
		"jobStatus": string(job.Status),
	})
}

// SubmitJobLegacy handles POST /admin/jobs/:id/submit. Only registered
// when the legacy submit flow is enabled.
func (h *JobHandler) SubmitJobLegacy(c *gin.Context) {
	jobID := c.Param("id")
	userID := middleware.UserID(c)

	job, err := h.service.SubmitJobLegacy(c.Request.Context(), jobID, userID)
	if err != nil {
		respondError(c, h.logger, "submit job (legacy)", err)
		return
	}

	respondOK(c, "Job submitted successfully", gin.H{
		"jobId":     job.ID,
		"jobStatus": string(job.Status),
	})
}

// DeleteJob handles DELETE /admin/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")
	ownerID := middleware.UserID(c)

	if err := h.service.DeleteJob(c.Request.Context(), jobID, ownerID); err != nil {
		respondError(c, h.logger, "delete job", err)
		return
	}

	respondOK(c, "Job deleted successfully", nil)
}

// ListJobs handles GET /admin/jobs/all with cursor pagination and an
// optional status filter.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	var status domain.JobStatus
	if req.Status != "" {
		parsed, err := domain.ParseJobStatus(req.Status)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		status = parsed
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		respondBadRequest(c, "Invalid cursor")
		return
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), storage.JobFilter{
		Status:   status,
		PageSize: req.PageSize,
		Cursor:   cursor,
	})
	if err != nil {
		respondError(c, h.logger, "list jobs", err)
		return
	}

	hasMore := len(jobs) > req.PageSize
	if hasMore {
		jobs = jobs[:req.PageSize]
	}

	var nextCursor string
	if hasMore {
		last := jobs[len(jobs)-1]
		nextCursor = EncodeJobCursor(&storage.JobCursor{
			CreatedAt: last.CreatedAt,
			JobID:     last.ID,
		})
	}

	respondOK(c, "Jobs retrieved successfully", dto.ListJobsResponse{
		Jobs:       dto.JobsFromDomain(jobs),
		NextCursor: nextCursor,
	})
}

// JobsByStatus handles GET /admin/jobs/status/:status
func (h *JobHandler) JobsByStatus(c *gin.Context) {
	status, err := domain.ParseJobStatus(c.Param("status"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	jobs, err := h.service.ListJobsByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.logger, "list jobs by status", err)
		return
	}

	respondOK(c, "Jobs retrieved successfully", dto.JobsFromDomain(jobs))
}

// JobApplications handles GET /admin/jobs/:id/applications
func (h *JobHandler) JobApplications(c *gin.Context) {
	jobID := c.Param("id")

	applications, err := h.service.ViewApplications(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, h.logger, "view applications", err)
		return
	}

	out := make([]dto.AssignmentDTO, len(applications))
	for i := range applications {
		out[i] = dto.AssignmentFromDomain(&applications[i])
	}

	h.logger.Debug("Applications retrieved",
		slog.String("job_id", jobID),
		slog.Int("count", len(out)),
	)
	respondOK(c, "Applications retrieved successfully", out)
}
