package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"talento_backend/internal/auth"
	"talento_backend/internal/config"
	"talento_backend/internal/email"
	"talento_backend/internal/handlers"
	"talento_backend/internal/logger"
	"talento_backend/internal/middleware"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/routes"
	"talento_backend/internal/services"
	"talento_backend/internal/storage"
	"talento_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает все слои приложения поверх подключенной базы
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	repos := services.Repositories{
		Users:    repositories.NewUserRepository(gormDB),
		Talents:  repositories.NewTalentRepository(gormDB),
		Media:    repositories.NewMediaRepository(gormDB),
		Bookings: repositories.NewBookingRepository(gormDB),
	}

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	var emailProvider email.Provider
	smtpCfg := email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
	if smtpCfg.Configured() {
		emailProvider = email.NewSMTPProvider(smtpCfg)
		logger.Info("SMTP provider configured", "host", smtpCfg.Host)
	} else {
		logger.Warn("SMTP not configured, password reset tokens will be returned in responses")
	}

	serviceContainer := services.NewServiceContainer(repos, services.Options{
		TokenManager:   tokenManager,
		EmailProvider:  emailProvider,
		Storage:        storageInstance,
		FrontendURL:    cfg.FrontendURL,
		UploadFolder:   cfg.Storage.Folder,
		MaxUploadSize:  cfg.Upload.MaxSize,
		MaxUploadFiles: cfg.Upload.MaxFiles,
	})

	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, tokenManager)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.MaxMultipartMemory = cfg.Upload.MaxSize

	// локальное хранилище отдает бинарники напрямую
	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.BasePath)
	}

	return router
}

// migrate накатывает схему и частичный уникальный индекс,
// закрывающий гонку "две активных заявки одного владельца"
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.TalentApplication{},
		&models.MediaUpload{},
		&models.Booking{},
	); err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_talent_applications_active_owner
		 ON talent_applications (user_id)
		 WHERE status IN ('pending', 'verified')`,
	).Error
}

// seedFirstAdmin создает первого администратора, если его еще нет.
// Без FIRST_ADMIN_EMAIL/FIRST_ADMIN_PASSWORD шаг пропускается
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("First admin credentials not configured, skipping seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.FirstAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:         cfg.FirstAdminEmail,
		Name:          "Admin",
		PasswordHash:  &hash,
		Role:          models.UserRoleAdmin,
		EmailVerified: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("First admin user created", "email", cfg.FirstAdminEmail)
	return nil
}
