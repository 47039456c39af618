package bootstrap

import (
	"notes-be/internal/config"
	"notes-be/internal/controller"
	"notes-be/internal/pkg/logger"
	"notes-be/internal/repository/unitofwork"
	"notes-be/internal/service"

	"gorm.io/gorm"
)

type Container struct {
	HealthController controller.IHealthController
	NoteController   controller.INoteController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Services
	noteService := service.NewNoteService(uowFactory, sysLogger, service.ListLimits{
		Default: cfg.List.DefaultLimit,
		Max:     cfg.List.MaxLimit,
	})

	// Controllers
	return &Container{
		HealthController: controller.NewHealthController(),
		NoteController:   controller.NewNoteController(noteService),
		Logger:           sysLogger,
	}
}
