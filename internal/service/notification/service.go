package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
	"portail-rh/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// NotifyStatusChanged writes exactly one notification for the request
	// owner describing the new status. When the actor is a chef it also
	// sends best-effort informational copies to admins.
	NotifyStatusChanged(ctx context.Context, req *domain.Request, actor *domain.User, observation *string) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) NotifyStatusChanged(ctx context.Context, req *domain.Request, actor *domain.User, observation *string) error {
	notifType, title, message := statusNotification(req)
	if observation != nil && *observation != "" {
		message += " : " + *observation
	}

	data, _ := json.Marshal(map[string]string{
		"request_id": req.ID.String(),
		"type":       string(req.Type),
		"status":     string(req.Status),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  req.UserID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Link:    "/requests/" + req.ID.String(),
		Data:    data,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.emailSvc != nil {
		if owner, err := s.userRepo.GetByID(ctx, req.UserID); err == nil && owner != nil && owner.Email != "" {
			go func(toEmail, name, reqType, status, msg string) {
				ctx := context.Background()
				if err := s.emailSvc.SendStatusChangeEmail(ctx, toEmail, name, reqType, status, msg); err != nil {
					log.Printf("Failed to send status email to %s: %v", toEmail, err)
				}
			}(owner.Email, owner.FullName, string(req.Type), string(req.Status), message)
		}
	}

	if domain.UserRole(actor.Role) == domain.RoleChef {
		s.notifyAdminsOfChefDecision(ctx, req, actor, data)
	}

	return nil
}

// notifyAdminsOfChefDecision is informational only; failures are logged
// and ignored.
func (s *service) notifyAdminsOfChefDecision(ctx context.Context, req *domain.Request, chef *domain.User, data json.RawMessage) {
	admins, err := s.userRepo.ListByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return
	}

	for _, admin := range admins {
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  admin.ID,
			Type:    domain.NotifChefDecision,
			Title:   "Décision du chef",
			Message: fmt.Sprintf("%s a traité une demande « %s » : %s", chef.FullName, req.Type, req.Status),
			Link:    "/requests/" + req.ID.String(),
			Data:    data,
		}

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Printf("Failed to create admin notification for %s: %v", admin.ID, err)
		}
	}
}

func statusNotification(req *domain.Request) (domain.NotificationType, string, string) {
	switch req.Status {
	case domain.StatusChefApprouve:
		return domain.NotifChefApproved, "Demande approuvée par votre chef",
			fmt.Sprintf("Votre demande « %s » a été approuvée par votre chef", req.Type)
	case domain.StatusChefRejete:
		return domain.NotifChefRejected, "Demande rejetée par votre chef",
			fmt.Sprintf("Votre demande « %s » a été rejetée par votre chef", req.Type)
	case domain.StatusApprouvee:
		return domain.NotifAdminApproved, "Demande approuvée",
			fmt.Sprintf("Votre demande « %s » a été approuvée", req.Type)
	case domain.StatusRejetee:
		return domain.NotifAdminRejected, "Demande rejetée",
			fmt.Sprintf("Votre demande « %s » a été rejetée", req.Type)
	default:
		return domain.NotifChefDecision, "Demande mise à jour",
			fmt.Sprintf("Votre demande « %s » est passée à l'état %s", req.Type, req.Status)
	}
}
