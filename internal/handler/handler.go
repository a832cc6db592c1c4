package handler

import "portail-rh/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Department   *DepartmentHandler
	Request      *RequestHandler
	Attachment   *AttachmentHandler
	Notification *NotificationHandler
	Calendar     *CalendarHandler
	AppControl   *AppControlHandler
	Dashboard    *DashboardHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Department:   NewDepartmentHandler(services.Department),
		Request:      NewRequestHandler(services.Request),
		Attachment:   NewAttachmentHandler(services.Attachment),
		Notification: NewNotificationHandler(services.Notification),
		Calendar:     NewCalendarHandler(services.Calendar),
		AppControl:   NewAppControlHandler(services.AppControl),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Audit:        NewAuditHandler(services.Audit),
	}
}
