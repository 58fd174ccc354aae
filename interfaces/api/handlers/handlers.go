package handlers

import (
	"context"

	"rental-crm/domain/services"
	"rental-crm/interfaces/api/middleware"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService        services.UserService
	LeadService        services.LeadService
	AppointmentService services.AppointmentService
	TaskService        services.TaskService

	// Ping ตรวจ database สำหรับ /health
	Ping func(ctx context.Context) error

	SessionCookieSecure bool
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Authenticator      middleware.Authenticator
	UserHandler        *UserHandler
	AuthHandler        *AuthHandler
	LeadHandler        *LeadHandler
	AppointmentHandler *AppointmentHandler
	TaskHandler        *TaskHandler
	HealthHandler      *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		Authenticator:      services.UserService,
		UserHandler:        NewUserHandler(services.UserService),
		AuthHandler:        NewAuthHandler(services.UserService, services.SessionCookieSecure),
		LeadHandler:        NewLeadHandler(services.LeadService),
		AppointmentHandler: NewAppointmentHandler(services.AppointmentService),
		TaskHandler:        NewTaskHandler(services.TaskService),
		HealthHandler:      NewHealthHandler(services.Ping),
	}
}
