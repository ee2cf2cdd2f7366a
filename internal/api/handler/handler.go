package handler

import (
	"log/slog"

	"github.com/stayhub/maintenance-be/internal/api/service"
	"github.com/stayhub/maintenance-be/internal/api/storage"
)

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Logger    *slog.Logger
	Service   *service.Service
	Dashboard *service.Dashboard
	Storage   *storage.Storage
}

// JobHandler serves the owner/admin job endpoints.
type JobHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{logger: deps.Logger, service: deps.Service}
}

// StaffHandler serves the assigned-staff endpoints.
type StaffHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewStaffHandler creates a StaffHandler.
func NewStaffHandler(deps *Dependencies) *StaffHandler {
	return &StaffHandler{logger: deps.Logger, service: deps.Service}
}

// DashboardHandler serves the dashboard read model.
type DashboardHandler struct {
	logger    *slog.Logger
	dashboard *service.Dashboard
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(deps *Dependencies) *DashboardHandler {
	return &DashboardHandler{logger: deps.Logger, dashboard: deps.Dashboard}
}

// NotificationHandler serves notification reads for the admin UI.
type NotificationHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(deps *Dependencies) *NotificationHandler {
	return &NotificationHandler{logger: deps.Logger, storage: deps.Storage}
}
