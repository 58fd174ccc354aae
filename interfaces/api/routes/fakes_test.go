package routes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/domain/services"
	"rental-crm/pkg/pagination"
	"rental-crm/pkg/utils"
)

const (
	goodToken  = "good-token"
	adminToken = "admin-token"
)

type fakeUsers struct {
	user      *utils.UserContext
	admin     *utils.UserContext
	loggedOut bool
	authCalls int
	created   []dto.CreateUserRequest
}

func (f *fakeUsers) CreateUser(_ context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if req.Email == "taken@example.com" {
		return nil, services.ErrUserExists
	}
	f.created = append(f.created, *req)
	return dto.CreateUserRequestToUser(req), nil
}

func (f *fakeUsers) Register(_ context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if req.Email == "taken@example.com" {
		return nil, services.ErrUserExists
	}
	return &models.User{ID: uuid.New(), Email: req.Email, Username: req.Username, Role: "user", IsActive: true}, nil
}

func (f *fakeUsers) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Password != "password123" {
		return nil, services.ErrInvalidCredentials
	}
	return &dto.LoginResponse{
		Token:     goodToken,
		ExpiresAt: time.Now().Add(time.Hour),
		User:      dto.UserResponse{ID: f.user.ID, Email: req.Email},
	}, nil
}

func (f *fakeUsers) Logout(context.Context, *utils.UserContext) error {
	f.loggedOut = true
	return nil
}

func (f *fakeUsers) GetProfile(_ context.Context, id uuid.UUID) (*models.User, error) {
	return &models.User{ID: id, Email: f.user.Email, Username: f.user.Username}, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, token string) (*utils.UserContext, error) {
	f.authCalls++
	switch token {
	case goodToken:
		return f.user, nil
	case adminToken:
		return f.admin, nil
	}
	return nil, utils.ErrInvalidToken
}

type leadCall struct {
	method string
	userID uuid.UUID
	id     uint
	filter dto.LeadFilter
	page   pagination.Params
	update *dto.UpdateLeadRequest
}

type fakeLeads struct {
	calls []leadCall
	err   error
}

func (f *fakeLeads) record(c leadCall) error {
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeLeads) ListLeads(_ context.Context, userID uuid.UUID, filter dto.LeadFilter, page pagination.Params) (*dto.LeadListResponse, error) {
	if err := f.record(leadCall{method: "list", userID: userID, filter: filter, page: page}); err != nil {
		return nil, err
	}
	leads := []*models.Lead{{ID: 1, Nome: "Mario Rossi", Status: models.LeadStatusLead}}
	return &dto.LeadListResponse{Leads: leads, Pagination: pagination.Summarize(page, len(leads), 1)}, nil
}

func (f *fakeLeads) GetLead(_ context.Context, userID uuid.UUID, id uint) (*models.Lead, error) {
	if err := f.record(leadCall{method: "get", userID: userID, id: id}); err != nil {
		return nil, err
	}
	return &models.Lead{ID: id, Nome: "Mario Rossi"}, nil
}

func (f *fakeLeads) CreateLead(_ context.Context, userID uuid.UUID, req *dto.CreateLeadRequest) (*models.Lead, error) {
	if err := f.record(leadCall{method: "create", userID: userID}); err != nil {
		return nil, err
	}
	return &models.Lead{ID: 7, Nome: req.Nome, Localita: req.Localita, Camere: *req.Camere, Status: models.LeadStatusLead}, nil
}

func (f *fakeLeads) UpdateLead(_ context.Context, userID uuid.UUID, req *dto.UpdateLeadRequest) (*models.Lead, error) {
	if err := f.record(leadCall{method: "update", userID: userID, id: req.ID, update: req}); err != nil {
		return nil, err
	}
	return &models.Lead{ID: req.ID}, nil
}

func (f *fakeLeads) DeleteLead(_ context.Context, userID uuid.UUID, id uint) (*models.Lead, error) {
	if err := f.record(leadCall{method: "delete", userID: userID, id: id}); err != nil {
		return nil, err
	}
	return &models.Lead{ID: id}, nil
}

type fakeAppointments struct {
	created *dto.CreateAppointmentRequest
	filter  dto.AppointmentFilter
}

func (f *fakeAppointments) ListAppointments(_ context.Context, _ uuid.UUID, filter dto.AppointmentFilter, page pagination.Params) (*dto.AppointmentListResponse, error) {
	f.filter = filter
	return &dto.AppointmentListResponse{Appointments: []*models.AppointmentWithLead{}, Pagination: pagination.Summarize(page, 0, 0)}, nil
}

func (f *fakeAppointments) GetAppointment(_ context.Context, _ uuid.UUID, id uint) (*models.AppointmentWithLead, error) {
	return nil, services.ErrAppointmentNotFound
}

func (f *fakeAppointments) CreateAppointment(_ context.Context, _ uuid.UUID, req *dto.CreateAppointmentRequest) (*models.AppointmentWithLead, error) {
	f.created = req
	if !req.LeadID.Valid() {
		return nil, services.InvalidInput("leadId must be a positive integer")
	}
	return &models.AppointmentWithLead{Appointment: models.Appointment{ID: 3, LeadID: req.LeadID.Value}}, nil
}

func (f *fakeAppointments) UpdateAppointment(_ context.Context, _ uuid.UUID, req *dto.UpdateAppointmentRequest) (*models.AppointmentWithLead, error) {
	return &models.AppointmentWithLead{Appointment: models.Appointment{ID: req.ID}}, nil
}

func (f *fakeAppointments) DeleteAppointment(_ context.Context, _ uuid.UUID, id uint) (*models.Appointment, error) {
	return &models.Appointment{ID: id}, nil
}

type fakeTasks struct {
	owner   uuid.UUID
	created *dto.CreateTaskRequest
}

func (f *fakeTasks) ListTasks(_ context.Context, userID uuid.UUID) ([]*models.TaskWithLead, error) {
	f.owner = userID
	return []*models.TaskWithLead{}, nil
}

func (f *fakeTasks) GetTask(_ context.Context, userID uuid.UUID, id uint) (*models.TaskWithLead, error) {
	f.owner = userID
	return nil, services.ErrTaskNotFound
}

func (f *fakeTasks) CreateTask(_ context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.TaskWithLead, error) {
	f.owner = userID
	f.created = req
	return &models.TaskWithLead{Task: models.Task{ID: 9, UserID: userID, Titolo: req.Titolo, Tipo: req.Tipo}}, nil
}

func (f *fakeTasks) UpdateTask(_ context.Context, userID uuid.UUID, req *dto.UpdateTaskRequest) (*models.TaskWithLead, error) {
	f.owner = userID
	return &models.TaskWithLead{Task: models.Task{ID: req.ID, UserID: userID}}, nil
}

func (f *fakeTasks) DeleteTask(_ context.Context, userID uuid.UUID, id uint) (*models.Task, error) {
	f.owner = userID
	return &models.Task{ID: id, UserID: userID}, nil
}
