package services

import (
	"context"

	"github.com/google/uuid"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/pkg/utils"
)

type UserService interface {
	// CreateUser ใช้โดย CLI และ admin API: ไม่สน AllowRegistration และกำหนด role ได้
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	// Register ใช้โดย API: role เป็น user เสมอ
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, user *utils.UserContext) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// Authenticate ตรวจ token และ session; ใช้โดย middleware และ websocket
	Authenticate(ctx context.Context, token string) (*utils.UserContext, error)
}
