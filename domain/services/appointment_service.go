package services

import (
	"context"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/pkg/pagination"
)

type AppointmentService interface {
	ListAppointments(ctx context.Context, userID uuid.UUID, filter dto.AppointmentFilter, page pagination.Params) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, userID uuid.UUID, id uint) (*models.AppointmentWithLead, error)
	CreateAppointment(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*models.AppointmentWithLead, error)
	UpdateAppointment(ctx context.Context, userID uuid.UUID, req *dto.UpdateAppointmentRequest) (*models.AppointmentWithLead, error)
	DeleteAppointment(ctx context.Context, userID uuid.UUID, id uint) (*models.Appointment, error)
}
