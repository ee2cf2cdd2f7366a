package model

import (
	"database/sql"
	"time"

	"github.com/stayhub/maintenance-be/internal/api/domain"
)

// Job mirrors a row of the jobs table.
type Job struct {
	ID              string          `db:"id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Budget          sql.NullFloat64 `db:"budget"`
	Urgency         string          `db:"urgency"`
	Status          string          `db:"status"`
	OwnerID         string          `db:"owner_id"`
	BeforeImage     sql.NullString  `db:"before_image"`
	AfterImage      sql.NullString  `db:"after_image"`
	RejectionReason sql.NullString  `db:"rejection_reason"`
	PropertyID      sql.NullString  `db:"property_id"`
	HotelID         sql.NullString  `db:"hotel_id"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ToDomain converts the row to the domain representation.
func (j *Job) ToDomain() *domain.Job {
	return &domain.Job{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Budget:          nullFloat(j.Budget),
		Urgency:         domain.JobUrgency(j.Urgency),
		Status:          domain.JobStatus(j.Status),
		OwnerID:         j.OwnerID,
		BeforeImage:     nullString(j.BeforeImage),
		AfterImage:      nullString(j.AfterImage),
		RejectionReason: nullString(j.RejectionReason),
		PropertyID:      nullString(j.PropertyID),
		HotelID:         nullString(j.HotelID),
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

// JobAssignment mirrors a row of the job_assignments table.
type JobAssignment struct {
	ID        string    `db:"id"`
	JobID     string    `db:"job_id"`
	ApplierID string    `db:"applier_id"`
	CreatedAt time.Time `db:"created_at"`
}

// ToDomain converts the row to the domain representation.
func (a *JobAssignment) ToDomain() *domain.JobAssignment {
	return &domain.JobAssignment{
		ID:        a.ID,
		JobID:     a.JobID,
		ApplierID: a.ApplierID,
		CreatedAt: a.CreatedAt,
	}
}

// User mirrors a row of the users table.
type User struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

// ToDomain converts the row to the domain representation.
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		FullName:  u.FullName,
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// Notification mirrors a row of the notifications table.
type Notification struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Message     string         `db:"message"`
	Type        string         `db:"type"`
	RelatedID   sql.NullString `db:"related_id"`
	RelatedType sql.NullString `db:"related_type"`
	IsRead      bool           `db:"is_read"`
	CreatedAt   time.Time      `db:"created_at"`
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// NullString wraps an optional string for insertion.
func NullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// NullFloat wraps an optional float for insertion.
func NullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
