package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rental-crm/application/serviceimpl"
	"rental-crm/domain/dto"
	"rental-crm/domain/models"
	"rental-crm/infrastructure/postgres"
	"rental-crm/pkg/config"
	"rental-crm/pkg/logger"
)

type userCreator interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
}

// backend สิ่งที่ command ต้องใช้ แยกไว้ให้ test แทนด้วย fake ได้
type backend interface {
	Migrate() error
	Users() userCreator
	Close() error
}

type backendFactory func() (backend, error)

type dbBackend struct {
	db    *gorm.DB
	users userCreator
}

// openBackend อ่าน config เดียวกับ API server
func openBackend() (backend, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = "text"
	if err := logger.Init(logCfg); err != nil {
		return nil, err
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		User:          cfg.Database.User,
		Password:      cfg.Database.Password,
		DBName:        cfg.Database.DBName,
		SSLMode:       cfg.Database.SSLMode,
		SlowThreshold: cfg.Database.SlowThreshold,
	})
	if err != nil {
		return nil, err
	}

	// ไม่ต้องใช้ session store; CLI ไม่ login
	users := serviceimpl.NewUserService(postgres.NewUserRepository(db), nil, serviceimpl.UserServiceConfig{
		JWTSecret:  cfg.JWT.Secret,
		SessionTTL: cfg.Auth.SessionTTL,
	})

	return &dbBackend{db: db, users: users}, nil
}

func (b *dbBackend) Migrate() error {
	return postgres.Migrate(b.db)
}

func (b *dbBackend) Users() userCreator {
	return b.users
}

func (b *dbBackend) Close() error {
	return postgres.Close(b.db)
}
