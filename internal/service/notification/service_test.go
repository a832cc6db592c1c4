package notification_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portail-rh/internal/domain"
	"portail-rh/internal/mocks"
	"portail-rh/internal/service/notification"
)

func TestNotificationService_NotifyStatusChanged(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	req := &domain.Request{
		ID:     uuid.New(),
		UserID: ownerID,
		Type:   domain.TypeCongeAnnuel,
		Status: domain.StatusApprouvee,
	}

	t.Run("admin decision notifies the owner once", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)

		svc := notification.NewService(notifRepo, userRepo, nil)

		admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == ownerID &&
				n.Type == domain.NotifAdminApproved &&
				n.Link == "/requests/"+req.ID.String()
		})).Return(nil).Once()

		err := svc.NotifyStatusChanged(ctx, req, admin, nil)

		assert.NoError(t, err)
		notifRepo.AssertNumberOfCalls(t, "Create", 1)
		notifRepo.AssertExpectations(t)
	})

	t.Run("observation appended to message", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)

		svc := notification.NewService(notifRepo, userRepo, nil)

		admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}
		obs := "Bon rétablissement"

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == ownerID && strings.HasSuffix(n.Message, " : "+obs)
		})).Return(nil).Once()

		err := svc.NotifyStatusChanged(ctx, req, admin, &obs)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})

	t.Run("chef decision also informs admins", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)

		svc := notification.NewService(notifRepo, userRepo, nil)

		chef := &domain.User{ID: uuid.New(), Role: string(domain.RoleChef), FullName: "Chef Dupont"}
		chefReq := &domain.Request{
			ID:     uuid.New(),
			UserID: ownerID,
			Type:   domain.TypeCongeAnnuel,
			Status: domain.StatusChefApprouve,
		}

		adminA := domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}
		adminB := domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

		// Owner notification.
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == ownerID && n.Type == domain.NotifChefApproved
		})).Return(nil).Once()

		userRepo.On("ListByRole", ctx, string(domain.RoleAdmin)).Return([]domain.User{adminA, adminB}, nil).Once()

		// One informational copy per admin.
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotifChefDecision && (n.UserID == adminA.ID || n.UserID == adminB.ID)
		})).Return(nil).Twice()

		err := svc.NotifyStatusChanged(ctx, chefReq, chef, nil)

		assert.NoError(t, err)
		notifRepo.AssertNumberOfCalls(t, "Create", 3)
		notifRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("owner notification failure surfaces", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)

		svc := notification.NewService(notifRepo, userRepo, nil)

		admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}
		notifRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		err := svc.NotifyStatusChanged(ctx, req, admin, nil)
		assert.Error(t, err)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	notifRepo := new(mocks.NotificationRepository)
	userRepo := new(mocks.UserRepository)

	svc := notification.NewService(notifRepo, userRepo, nil)

	notifID := uuid.New()
	userID := uuid.New()

	notifRepo.On("MarkAsRead", ctx, notifID, userID).Return(nil).Once()

	assert.NoError(t, svc.MarkAsRead(ctx, notifID, userID))
	notifRepo.AssertExpectations(t)
}
