package dto

import (
	"time"

	"github.com/stayhub/maintenance-be/internal/api/domain"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Urgency     string   `json:"urgency" binding:"omitempty,oneof=URGENT NORMAL"`
	Budget      *float64 `json:"budget" binding:"omitempty,gt=0"`
	PropertyID  *string  `json:"property_id"`
	HotelID     *string  `json:"hotel_id"`
}

type AssignJobRequest struct {
	ApplierID string `json:"applierId" binding:"required"`
}

type SubmitJobRequest struct {
	BeforeImage *string `json:"beforeImage"`
	AfterImage  *string `json:"afterImage"`
}

type ReviewJobRequest struct {
	Status string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Reason *string `json:"reason"`
}

type ListJobsRequest struct {
	Status   string `form:"status"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type JobDTO struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Budget          *float64 `json:"budget,omitempty"`
	Urgency         string   `json:"urgency"`
	Status          string   `json:"status"`
	OwnerID         string   `json:"owner_id"`
	BeforeImage     *string  `json:"before_image,omitempty"`
	AfterImage      *string  `json:"after_image,omitempty"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	PropertyID      *string  `json:"property_id,omitempty"`
	HotelID         *string  `json:"hotel_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// JobFromDomain converts a domain job to its API representation.
func JobFromDomain(job *domain.Job) JobDTO {
	return JobDTO{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		Budget:          job.Budget,
		Urgency:         string(job.Urgency),
		Status:          string(job.Status),
		OwnerID:         job.OwnerID,
		BeforeImage:     job.BeforeImage,
		AfterImage:      job.AfterImage,
		RejectionReason: job.RejectionReason,
		PropertyID:      job.PropertyID,
		HotelID:         job.HotelID,
		CreatedAt:       job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       job.UpdatedAt.Format(time.RFC3339),
	}
}

// JobsFromDomain converts a slice of domain jobs.
func JobsFromDomain(jobs []domain.Job) []JobDTO {
	out := make([]JobDTO, len(jobs))
	for i := range jobs {
		out[i] = JobFromDomain(&jobs[i])
	}
	return out
}

type AssignmentDTO struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	ApplierID string `json:"applier_id"`
	CreatedAt string `json:"created_at"`
}

// AssignmentFromDomain converts a domain assignment to its API representation.
func AssignmentFromDomain(a *domain.JobAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:        a.ID,
		JobID:     a.JobID,
		ApplierID: a.ApplierID,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

type EarningsDTO struct {
	TotalEarnings float64  `json:"total_earnings"`
	JobsCount     int      `json:"jobs_count"`
	CompletedJobs []JobDTO `json:"completed_jobs"`
}

type NotificationDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Type        string  `json:"type"`
	RelatedID   *string `json:"related_id,omitempty"`
	RelatedType *string `json:"related_type,omitempty"`
	IsRead      bool    `json:"is_read"`
	CreatedAt   string  `json:"created_at"`
}
