package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/domain/services"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/utils"
)

type UserServiceImpl struct {
	userRepo          repositories.UserRepository
	sessions          ports.SessionStore // nil = stateless JWT
	jwtSecret         string
	sessionTTL        time.Duration
	allowRegistration bool
}

type UserServiceConfig struct {
	JWTSecret         string
	SessionTTL        time.Duration
	AllowRegistration bool
}

func NewUserService(userRepo repositories.UserRepository, sessions ports.SessionStore, cfg UserServiceConfig) services.UserService {
	return &UserServiceImpl{
		userRepo:          userRepo,
		sessions:          sessions,
		jwtSecret:         cfg.JWTSecret,
		sessionTTL:        cfg.SessionTTL,
		allowRegistration: cfg.AllowRegistration,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := s.ensureAvailable(ctx, req.Email, req.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, err
	}

	user := dto.CreateUserRequestToUser(req)
	user.ID = uuid.New()
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, services.ErrUserExists
		}
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User created successfully", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return user, nil
}

func (s *UserServiceImpl) ensureAvailable(ctx context.Context, email, username string) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Email already exists", "email", email)
		return services.ErrUserExists
	}

	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if existing != nil {
		logger.WarnContext(ctx, "Username already exists", "username", username)
		return services.ErrUserExists
	}
	return nil
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if !s.allowRegistration {
		return nil, services.ErrRegistrationClosed
	}
	return s.CreateUser(ctx, dto.RegisterRequestToCreateUser(req))
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		logger.WarnContext(ctx, "Login failed - email not found", "email", email)
		return nil, services.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed - account disabled", "user_id", user.ID)
		return nil, services.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return nil, services.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if s.sessions != nil {
		if err := s.sessions.Create(ctx, sessionID, user.ID, s.sessionTTL); err != nil {
			logger.ErrorContext(ctx, "Failed to store session", "user_id", user.ID, "error", err)
			return nil, err
		}
	}

	token, expiresAt, err := utils.GenerateToken(utils.UserContext{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, sessionID, s.jwtSecret, s.sessionTTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User logged in successfully", "user_id", user.ID)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *dto.UserToUserResponse(user),
	}, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, user *utils.UserContext) error {
	if s.sessions == nil || user == nil || user.SessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, user.SessionID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete session", "user_id", user.ID, "error", err)
		return err
	}
	logger.InfoContext(ctx, "User logged out", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, services.ErrUserNotFound)
	}
	return user, nil
}

// Authenticate - session store error ถือว่าไม่ผ่าน
func (s *UserServiceImpl) Authenticate(ctx context.Context, token string) (*utils.UserContext, error) {
	user, err := utils.ValidateTokenStringToUUID(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	if s.sessions == nil {
		return user, nil
	}
	if user.SessionID == "" {
		return nil, services.ErrSessionRevoked
	}

	ok, err := s.sessions.Exists(ctx, user.SessionID)
	if err != nil {
		logger.ErrorContext(ctx, "Session lookup failed", "user_id", user.ID, "error", err)
		return nil, err
	}
	if !ok {
		return nil, services.ErrSessionRevoked
	}
	return user, nil
}
