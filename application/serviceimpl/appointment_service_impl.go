package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/pagination"
	"rental-crm/pkg/query"
	"rental-crm/pkg/utils"
)

// column ของ leads ถูก LEFT JOIN เข้ามาใน list
var appointmentSearchColumns = []string{
	"appointments.tipo",
	"appointments.luogo",
	"appointments.note",
	"leads.nome",
	"leads.localita",
}

type AppointmentServiceImpl struct {
	appointmentRepo repositories.AppointmentRepository
	leadRepo        repositories.LeadRepository
	events          ports.EventPublisher
}

func NewAppointmentService(appointmentRepo repositories.AppointmentRepository, leadRepo repositories.LeadRepository, events ports.EventPublisher) services.AppointmentService {
	return &AppointmentServiceImpl{
		appointmentRepo: appointmentRepo,
		leadRepo:        leadRepo,
		events:          events,
	}
}

func appointmentFilter(filter dto.AppointmentFilter) (query.Predicate, error) {
	completato, err := query.ParseBoolFilter(filter.Completato, "", "")
	if err != nil {
		return query.Predicate{}, services.InvalidInput("completato: %v", err)
	}

	return query.Compose(
		query.Search(filter.Search, appointmentSearchColumns...),
		query.BoolEqual("appointments.completato", completato),
		query.Equal("appointments.tipo", filter.Tipo),
	)
}

func parseAppointmentDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, services.InvalidInput("data is required")
	}
	t, err := utils.ParseDateTime(value)
	if err != nil {
		return time.Time{}, services.InvalidInput("data is not a valid date")
	}
	return t, nil
}

func (s *AppointmentServiceImpl) ListAppointments(ctx context.Context, userID uuid.UUID, filter dto.AppointmentFilter, page pagination.Params) (*dto.AppointmentListResponse, error) {
	pred, err := appointmentFilter(filter)
	if err != nil {
		return nil, err
	}

	total, err := s.appointmentRepo.Count(ctx, pred)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count appointments", "error", err)
		return nil, err
	}

	rows, err := s.appointmentRepo.List(ctx, pred, page.Offset(), page.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list appointments", "error", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: rows,
		Pagination:   pagination.Summarize(page, len(rows), total),
	}, nil
}

func (s *AppointmentServiceImpl) GetAppointment(ctx context.Context, userID uuid.UUID, id uint) (*models.AppointmentWithLead, error) {
	if id == 0 {
		return nil, services.InvalidInput("id is required")
	}
	row, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, services.ErrAppointmentNotFound)
	}
	return row, nil
}

// CreateAppointment ตรวจ input ก่อน แล้วเช็คว่า lead มีอยู่จริงก่อน insert
func (s *AppointmentServiceImpl) CreateAppointment(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*models.AppointmentWithLead, error) {
	if !req.LeadID.Valid() {
		return nil, services.InvalidInput("leadId must be a positive integer")
	}
	when, err := parseAppointmentDate(req.Data)
	if err != nil {
		return nil, err
	}

	exists, err := s.leadRepo.Exists(ctx, req.LeadID.Value)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to check lead", "lead_id", req.LeadID.Value, "error", err)
		return nil, err
	}
	if !exists {
		logger.WarnContext(ctx, "Appointment for missing lead", "lead_id", req.LeadID.Value)
		return nil, services.ErrLeadNotFound
	}

	appointment := dto.CreateAppointmentRequestToAppointment(req)
	appointment.Data = when

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		// lead ถูกลบระหว่างเช็คกับ insert
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, services.ErrLeadNotFound
		}
		logger.ErrorContext(ctx, "Failed to create appointment", "lead_id", appointment.LeadID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Appointment created", "appointment_id", appointment.ID, "lead_id", appointment.LeadID)
	publishEvent(ctx, s.events, entityAppointment, ports.ActionCreated, appointment.ID, userID, appointment)

	row, err := s.appointmentRepo.GetByID(ctx, appointment.ID)
	if err != nil {
		return nil, notFoundAs(err, services.ErrAppointmentNotFound)
	}
	return row, nil
}

// UpdateAppointment ไม่เช็ค leadId ซ้ำ; FK ของ database เป็นตัวกัน
func (s *AppointmentServiceImpl) UpdateAppointment(ctx context.Context, userID uuid.UUID, req *dto.UpdateAppointmentRequest) (*models.AppointmentWithLead, error) {
	if req.ID == 0 {
		return nil, services.InvalidInput("id is required")
	}
	if req.LeadID != nil && *req.LeadID == 0 {
		return nil, services.InvalidInput("leadId must be a positive integer")
	}

	fields := req.Fields()
	if req.Data != nil {
		when, err := parseAppointmentDate(*req.Data)
		if err != nil {
			return nil, err
		}
		fields["data"] = when
	}

	row, err := s.appointmentRepo.Update(ctx, req.ID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, services.ErrAppointmentNotFound
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return nil, services.ErrLeadNotFound
		}
		logger.ErrorContext(ctx, "Failed to update appointment", "appointment_id", req.ID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Appointment updated", "appointment_id", row.ID)
	publishEvent(ctx, s.events, entityAppointment, ports.ActionUpdated, row.ID, userID, row)
	return row, nil
}

func (s *AppointmentServiceImpl) DeleteAppointment(ctx context.Context, userID uuid.UUID, id uint) (*models.Appointment, error) {
	if id == 0 {
		return nil, services.InvalidInput("id is required")
	}

	appointment, err := s.appointmentRepo.Delete(ctx, id)
	if err != nil {
		err = notFoundAs(err, services.ErrAppointmentNotFound)
		if err != services.ErrAppointmentNotFound {
			logger.ErrorContext(ctx, "Failed to delete appointment", "appointment_id", id, "error", err)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "Appointment deleted", "appointment_id", appointment.ID)
	publishEvent(ctx, s.events, entityAppointment, ports.ActionDeleted, appointment.ID, userID, appointment)
	return appointment, nil
}
