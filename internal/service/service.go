package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"portail-rh/internal/config"
	"portail-rh/internal/repository"
	"portail-rh/internal/service/appcontrol"
	"portail-rh/internal/service/attachment"
	"portail-rh/internal/service/audit"
	"portail-rh/internal/service/auth"
	"portail-rh/internal/service/calendar"
	"portail-rh/internal/service/dashboard"
	"portail-rh/internal/service/department"
	"portail-rh/internal/service/email"
	"portail-rh/internal/service/notification"
	"portail-rh/internal/service/request"
	"portail-rh/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Department   department.Service
	Request      request.Service
	Attachment   attachment.Service
	Notification notification.Service
	Email        email.Service
	Calendar     calendar.Service
	AppControl   appcontrol.Service
	Dashboard    dashboard.Service
	Audit        audit.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	userService := user.NewService(repos.User, repos.Department)
	departmentService := department.NewService(repos.Department)
	auditService := audit.NewService(repos.AuditLog)

	requestService := request.NewService(repos.Request, repos.User, repos.AuditLog)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)
	requestService.SetNotificationService(notificationService)

	attachmentService := attachment.NewService(repos.Attachment, requestService, minioClient, cfg.MinIOBucket)
	calendarService := calendar.NewService(repos.Request)
	appControlService := appcontrol.NewService(redis)
	dashboardService := dashboard.NewService(repos.Request, repos.User, redis)

	return &Services{
		Auth:         authService,
		User:         userService,
		Department:   departmentService,
		Request:      requestService,
		Attachment:   attachmentService,
		Notification: notificationService,
		Email:        emailService,
		Calendar:     calendarService,
		AppControl:   appControlService,
		Dashboard:    dashboardService,
		Audit:        auditService,
	}
}
