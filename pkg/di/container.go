package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rental-crm/application/serviceimpl"
	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/domain/services"
	natspkg "rental-crm/infrastructure/nats"
	"rental-crm/infrastructure/postgres"
	redispkg "rental-crm/infrastructure/redis"
	"rental-crm/infrastructure/websocket"
	"rental-crm/interfaces/api/handlers"
	wsHandler "rental-crm/interfaces/api/websocket"
	"rental-crm/pkg/config"
	"rental-crm/pkg/logger"
	"rental-crm/pkg/metrics"
	"rental-crm/pkg/scheduler"
)

// poolStatsCron ทุกนาที
const poolStatsCron = "* * * * *"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client   // session store (optional)
	NATSClient     *natspkg.Client    // CRM events ข้าม instance (optional)
	NATSSubscriber *natspkg.Subscriber // crm.> → Hub
	Hub            *websocket.Hub
	EventScheduler scheduler.EventScheduler

	// Ports
	Sessions ports.SessionStore   // nil = stateless JWT
	Events   ports.EventPublisher // NATS ถ้ามี ไม่งั้นส่งเข้า Hub ตรง

	// Repositories
	UserRepository        repositories.UserRepository
	LeadRepository        repositories.LeadRepository
	AppointmentRepository repositories.AppointmentRepository
	TaskRepository        repositories.TaskRepository

	// Services
	UserService        services.UserService
	LeadService        services.LeadService
	AppointmentService services.AppointmentService
	TaskService        services.TaskService

	stopHub context.CancelFunc
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Database
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:          c.Config.Database.Host,
		Port:          c.Config.Database.Port,
		User:          c.Config.Database.User,
		Password:      c.Config.Database.Password,
		DBName:        c.Config.Database.DBName,
		SSLMode:       c.Config.Database.SSLMode,
		MaxOpenConns:  c.Config.Database.MaxOpenConns,
		MaxIdleConns:  c.Config.Database.MaxIdleConns,
		SlowThreshold: c.Config.Database.SlowThreshold,
		Debug:         c.Config.Log.Level == "debug",
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migrated")

	// Redis (optional - ไม่มีก็ใช้ JWT แบบ stateless)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (sessions are stateless)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.Sessions = redispkg.NewSessionStore(redisClient)
			logger.Info("Redis session store initialized", "url", c.Config.Redis.URL)
		}
	}

	// WebSocket hub
	hubCtx, cancel := context.WithCancel(context.Background())
	c.stopHub = cancel
	c.Hub = websocket.NewHub()
	go c.Hub.Run(hubCtx)
	c.Events = c.Hub

	// NATS (optional)
	if c.Config.NATS.URL != "" {
		c.initNATS()
	}

	return nil
}

// initNATS เปลี่ยน publisher เป็น JetStream และ relay crm.> กลับเข้า Hub
func (c *Container) initNATS() {
	natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
		URL:  c.Config.NATS.URL,
		Name: c.Config.App.Name,
	})
	if err != nil {
		logger.Warn("NATS client initialization failed (events stay local)", "error", err)
		return
	}

	subscriber := natspkg.NewSubscriber(natsClient.Conn(), func(event ports.CRMEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Hub.Publish(ctx, event); err != nil {
			logger.Warn("Failed to relay event to hub", "subject", event.Subject(), "error", err)
		}
	})
	if err := subscriber.Start(); err != nil {
		logger.Warn("NATS subscriber failed to start (events stay local)", "error", err)
		natsClient.Close()
		return
	}

	c.NATSClient = natsClient
	c.NATSSubscriber = subscriber
	c.Events = natspkg.NewPublisher(natsClient)
	logger.Info("NATS event publisher initialized", "url", c.Config.NATS.URL)
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.LeadRepository = postgres.NewLeadRepository(c.DB)
	c.AppointmentRepository = postgres.NewAppointmentRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Sessions, serviceimpl.UserServiceConfig{
		JWTSecret:         c.Config.JWT.Secret,
		SessionTTL:        c.Config.Auth.SessionTTL,
		AllowRegistration: c.Config.Auth.AllowRegistration,
	})
	c.LeadService = serviceimpl.NewLeadService(c.LeadRepository, c.Events)
	c.AppointmentService = serviceimpl.NewAppointmentService(c.AppointmentRepository, c.LeadRepository, c.Events)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.LeadRepository, c.Events)

	logger.Info("Services initialized",
		"sessions", c.Sessions != nil,
		"nats", c.NATSClient != nil,
		"registration", c.Config.Auth.AllowRegistration,
	)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if err := c.EventScheduler.AddJob("pool-stats", poolStatsCron, c.samplePoolStats); err != nil {
		return fmt.Errorf("failed to register pool stats job: %w", err)
	}
	c.samplePoolStats()

	c.EventScheduler.Start()
	return nil
}

// samplePoolStats อัปเดต gauge ของ DB pool และจำนวน websocket client
func (c *Container) samplePoolStats() {
	if sqlDB, err := c.DB.DB(); err == nil {
		metrics.SetDBPoolStats(sqlDB.Stats())
	}
	metrics.SetWebSocketClients(c.Hub.ClientCount())
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Stop scheduler
	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
	}

	// Stop NATS subscriber
	if c.NATSSubscriber != nil {
		if err := c.NATSSubscriber.Stop(); err != nil {
			logger.Warn("Failed to stop NATS subscriber", "error", err)
		} else {
			logger.Info("NATS subscriber stopped")
		}
	}

	// Stop hub (ปิด websocket ทั้งหมด)
	if c.stopHub != nil {
		c.stopHub()
		logger.Info("WebSocket hub stopped")
	}

	// Close NATS connection
	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := postgres.Close(c.DB); err != nil {
			logger.Warn("Failed to close database connection", "error", err)
		} else {
			logger.Info("Database connection closed")
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:        c.UserService,
		LeadService:        c.LeadService,
		AppointmentService: c.AppointmentService,
		TaskService:        c.TaskService,
		Ping: func(ctx context.Context) error {
			return postgres.Ping(ctx, c.DB)
		},
		SessionCookieSecure: c.Config.IsProduction(),
	}
}

// GetWebSocketHandler ใช้ UserService ตรวจ token ตอน upgrade
func (c *Container) GetWebSocketHandler() *wsHandler.WebSocketHandler {
	return wsHandler.NewWebSocketHandler(c.Hub, c.UserService)
}
