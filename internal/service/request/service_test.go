package request_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portail-rh/internal/domain"
	"portail-rh/internal/mocks"
	"portail-rh/internal/service/request"
)

func stringPtr(s string) *string { return &s }

func newTestService() (request.Service, *mocks.RequestRepository, *mocks.UserRepository, *mocks.AuditLogRepository, *mocks.NotificationService) {
	reqRepo := new(mocks.RequestRepository)
	userRepo := new(mocks.UserRepository)
	auditRepo := new(mocks.AuditLogRepository)
	notifSvc := new(mocks.NotificationService)

	svc := request.NewService(reqRepo, userRepo, auditRepo)
	svc.SetNotificationService(notifSvc)

	return svc, reqRepo, userRepo, auditRepo, notifSvc
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("leave request computes working days", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.UserID == userID &&
				r.Status == domain.StatusEnAttente &&
				r.WorkingDays != nil && *r.WorkingDays == 7
		})).Return(nil).Once()

		req, err := svc.Create(ctx, userID, domain.CreateRequestInput{
			Type:      domain.TypeCongeAnnuel,
			StartDate: stringPtr("2025-05-01"),
			EndDate:   stringPtr("2025-05-10"),
		})

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, domain.StatusEnAttente, req.Status)
		reqRepo.AssertExpectations(t)
	})

	t.Run("leave request without dates fails", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		req, err := svc.Create(ctx, userID, domain.CreateRequestInput{
			Type: domain.TypeCongeAnnuel,
		})

		assert.ErrorIs(t, err, request.ErrDatesRequired)
		assert.Nil(t, req)
	})

	t.Run("end before start fails", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		req, err := svc.Create(ctx, userID, domain.CreateRequestInput{
			Type:      domain.TypeCongeAnnuel,
			StartDate: stringPtr("2025-05-10"),
			EndDate:   stringPtr("2025-05-01"),
		})

		assert.ErrorIs(t, err, request.ErrInvalidDates)
		assert.Nil(t, req)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		req, err := svc.Create(ctx, userID, domain.CreateRequestInput{
			Type: domain.RequestType("Inconnu"),
		})

		assert.ErrorIs(t, err, request.ErrInvalidType)
		assert.Nil(t, req)
	})

	t.Run("details payload kept untouched", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		raw := json.RawMessage(`{"purpose":"banque",  "copies": 2}`)
		reqRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return string(r.Details) == string(raw) && r.StartDate == nil
		})).Return(nil).Once()

		req, err := svc.Create(ctx, userID, domain.CreateRequestInput{
			Type:    domain.TypeAttestation,
			Details: raw,
		})

		assert.NoError(t, err)
		assert.Equal(t, raw, req.Details)
		reqRepo.AssertExpectations(t)
	})

	t.Run("invalid details rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		req, err := svc.Create(ctx, userID, domain.CreateRequestInput{
			Type:    domain.TypeAttestation,
			Details: json.RawMessage(`{"copies":2}`),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidDetails)
		assert.Nil(t, req)
	})
}

func TestRequestService_UpdateStatus_TwoTierFlow(t *testing.T) {
	ctx := context.Background()

	chefID := uuid.New()
	ownerID := uuid.New()

	chef := &domain.User{ID: chefID, Role: string(domain.RoleChef), FullName: "Chef Dupont"}
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin), FullName: "Admin Martin"}
	owner := &domain.User{ID: ownerID, Role: string(domain.RoleUser), ChefID: &chefID}

	t.Run("chef approves then admin finalizes", func(t *testing.T) {
		svc, reqRepo, userRepo, auditRepo, notifSvc := newTestService()

		reqID := uuid.New()
		pending := &domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeCongeAnnuel,
			Status: domain.StatusEnAttente,
		}

		// Chef tier.
		reqRepo.On("GetByID", ctx, reqID).Return(pending, nil).Once()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()
		reqRepo.On("UpdateStatus", ctx, reqID, domain.StatusChefApprouve, domain.RoleChef, mock.Anything).Return(nil).Once()
		notifSvc.On("NotifyStatusChanged", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.Status == domain.StatusChefApprouve
		}), chef, mock.Anything).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == "UPDATE_REQUEST_STATUS" && l.UserID == chefID
		})).Return(nil).Once()

		err := svc.UpdateStatus(ctx, reqID, chef, domain.UpdateStatusInput{
			Status:      domain.StatusChefApprouve,
			Observation: stringPtr("OK pour moi"),
		}, nil)
		assert.NoError(t, err)

		// Admin tier.
		chefApproved := &domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeCongeAnnuel,
			Status: domain.StatusChefApprouve,
		}
		reqRepo.On("GetByID", ctx, reqID).Return(chefApproved, nil).Once()
		reqRepo.On("UpdateStatus", ctx, reqID, domain.StatusApprouvee, domain.RoleAdmin, mock.Anything).Return(nil).Once()
		notifSvc.On("NotifyStatusChanged", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.Status == domain.StatusApprouvee
		}), admin, mock.Anything).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.UserID == admin.ID
		})).Return(nil).Once()

		err = svc.UpdateStatus(ctx, reqID, admin, domain.UpdateStatusInput{
			Status: domain.StatusApprouvee,
		}, nil)
		assert.NoError(t, err)

		// Exactly one notification per transition.
		notifSvc.AssertNumberOfCalls(t, "NotifyStatusChanged", 2)
		reqRepo.AssertExpectations(t)
		notifSvc.AssertExpectations(t)
	})

	t.Run("admin cannot decide pending leave directly", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeCongeAnnuel,
			Status: domain.StatusEnAttente,
		}, nil).Once()

		err := svc.UpdateStatus(ctx, reqID, admin, domain.UpdateStatusInput{
			Status: domain.StatusApprouvee,
		}, nil)

		assert.ErrorIs(t, err, request.ErrInvalidTransition)
	})

	t.Run("chef cannot act on certificate request", func(t *testing.T) {
		svc, reqRepo, userRepo, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeAttestation,
			Status: domain.StatusEnAttente,
		}, nil).Once()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()

		err := svc.UpdateStatus(ctx, reqID, chef, domain.UpdateStatusInput{
			Status: domain.StatusChefApprouve,
		}, nil)

		assert.ErrorIs(t, err, request.ErrInvalidTransition)
	})

	t.Run("chef cannot review someone else's report", func(t *testing.T) {
		svc, reqRepo, userRepo, _, _ := newTestService()

		otherChefID := uuid.New()
		stranger := &domain.User{ID: ownerID, Role: string(domain.RoleUser), ChefID: &otherChefID}

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeCongeAnnuel,
			Status: domain.StatusEnAttente,
		}, nil).Once()
		userRepo.On("GetByID", ctx, ownerID).Return(stranger, nil).Once()

		err := svc.UpdateStatus(ctx, reqID, chef, domain.UpdateStatusInput{
			Status: domain.StatusChefApprouve,
		}, nil)

		assert.ErrorIs(t, err, request.ErrForbidden)
	})

	t.Run("terminal status stays terminal", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeCongeAnnuel,
			Status: domain.StatusApprouvee,
		}, nil).Once()

		err := svc.UpdateStatus(ctx, reqID, admin, domain.UpdateStatusInput{
			Status: domain.StatusRejetee,
		}, nil)

		assert.ErrorIs(t, err, request.ErrInvalidTransition)
	})

	t.Run("regular user cannot transition", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		err := svc.UpdateStatus(ctx, uuid.New(), owner, domain.UpdateStatusInput{
			Status: domain.StatusApprouvee,
		}, nil)

		assert.ErrorIs(t, err, request.ErrForbidden)
	})

	t.Run("unknown status label rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()

		err := svc.UpdateStatus(ctx, uuid.New(), admin, domain.UpdateStatusInput{
			Status: domain.RequestStatus("validée"),
		}, nil)

		assert.ErrorIs(t, err, request.ErrInvalidStatus)
	})

	t.Run("notification failure does not fail the transition", func(t *testing.T) {
		svc, reqRepo, _, auditRepo, notifSvc := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Type:   domain.TypeAttestation,
			Status: domain.StatusEnAttente,
		}, nil).Once()
		reqRepo.On("UpdateStatus", ctx, reqID, domain.StatusApprouvee, domain.RoleAdmin, mock.Anything).Return(nil).Once()
		notifSvc.On("NotifyStatusChanged", ctx, mock.Anything, admin, mock.Anything).Return(assert.AnError).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		err := svc.UpdateStatus(ctx, reqID, admin, domain.UpdateStatusInput{
			Status: domain.StatusApprouvee,
		}, nil)

		assert.NoError(t, err)
	})
}

func TestRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("owner deletes pending request", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Status: domain.StatusEnAttente,
		}, nil).Once()
		reqRepo.On("Delete", ctx, reqID).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, reqID, ownerID))
		reqRepo.AssertExpectations(t)
	})

	t.Run("cannot delete once reviewed", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: ownerID,
			Status: domain.StatusChefApprouve,
		}, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, reqID, ownerID), request.ErrNotDeletable)
	})

	t.Run("cannot delete someone else's request", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.Request{
			ID:     reqID,
			UserID: uuid.New(),
			Status: domain.StatusEnAttente,
		}, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, reqID, ownerID), request.ErrForbidden)
	})

	t.Run("missing request", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()

		reqID := uuid.New()
		reqRepo.On("GetByID", ctx, reqID).Return(nil, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, reqID, ownerID), request.ErrNotFound)
	})
}

func TestRequestService_GetByID_Scoping(t *testing.T) {
	ctx := context.Background()

	chefID := uuid.New()
	ownerID := uuid.New()
	owner := &domain.User{ID: ownerID, Role: string(domain.RoleUser), ChefID: &chefID}
	chef := &domain.User{ID: chefID, Role: string(domain.RoleChef)}
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	leave := &domain.Request{ID: uuid.New(), UserID: ownerID, Type: domain.TypeCongeAnnuel, Status: domain.StatusEnAttente}
	loan := &domain.Request{ID: uuid.New(), UserID: ownerID, Type: domain.TypePretBancaire, Status: domain.StatusEnAttente}

	t.Run("owner sees own request", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()
		reqRepo.On("GetByID", ctx, leave.ID).Return(leave, nil).Once()

		got, err := svc.GetByID(ctx, leave.ID, owner)
		assert.NoError(t, err)
		assert.Equal(t, leave.ID, got.ID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()
		reqRepo.On("GetByID", ctx, loan.ID).Return(loan, nil).Once()

		_, err := svc.GetByID(ctx, loan.ID, admin)
		assert.NoError(t, err)
	})

	t.Run("chef sees reviewable request of direct report", func(t *testing.T) {
		svc, reqRepo, userRepo, _, _ := newTestService()
		reqRepo.On("GetByID", ctx, leave.ID).Return(leave, nil).Once()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()

		_, err := svc.GetByID(ctx, leave.ID, chef)
		assert.NoError(t, err)
	})

	t.Run("chef cannot see non-reviewable request", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()
		reqRepo.On("GetByID", ctx, loan.ID).Return(loan, nil).Once()

		_, err := svc.GetByID(ctx, loan.ID, chef)
		assert.ErrorIs(t, err, request.ErrForbidden)
	})

	t.Run("unrelated user denied", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()
		stranger := &domain.User{ID: uuid.New(), Role: string(domain.RoleUser)}
		reqRepo.On("GetByID", ctx, leave.ID).Return(leave, nil).Once()

		_, err := svc.GetByID(ctx, leave.ID, stranger)
		assert.ErrorIs(t, err, request.ErrForbidden)
	})
}

func TestRequestService_ListForChef(t *testing.T) {
	ctx := context.Background()

	t.Run("forbidden for plain users", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		employee := &domain.User{ID: uuid.New(), Role: string(domain.RoleUser)}

		_, err := svc.ListForChef(ctx, employee, domain.RequestFilter{}, domain.DefaultPagination())
		assert.ErrorIs(t, err, request.ErrForbidden)
	})

	t.Run("queue is queried under the chef's own ID with the filter intact", func(t *testing.T) {
		svc, reqRepo, userRepo, _, _ := newTestService()
		chef := &domain.User{ID: uuid.New(), Role: string(domain.RoleChef)}

		status := domain.StatusEnAttente
		reqType := domain.TypeFormation
		filter := domain.RequestFilter{Status: &status, Type: &reqType}
		params := domain.DefaultPagination()

		ownerID := uuid.New()
		rows := []domain.Request{
			{ID: uuid.New(), UserID: ownerID, Type: domain.TypeFormation, Status: domain.StatusEnAttente},
		}

		reqRepo.On("ListForChef", ctx, chef.ID, filter, params).Return(rows, int64(1), nil).Once()
		userRepo.On("GetByID", ctx, ownerID).Return(&domain.User{ID: ownerID, FullName: "Karim Z."}, nil).Once()

		result, err := svc.ListForChef(ctx, chef, filter, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.NotNil(t, result.Data[0].Owner)
		assert.Equal(t, int64(1), result.TotalItems)
		reqRepo.AssertExpectations(t)
	})

	t.Run("admin may also pull a team queue", func(t *testing.T) {
		svc, reqRepo, _, _, _ := newTestService()
		admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}
		params := domain.DefaultPagination()

		reqRepo.On("ListForChef", ctx, admin.ID, domain.RequestFilter{}, params).
			Return([]domain.Request{}, int64(0), nil).Once()

		_, err := svc.ListForChef(ctx, admin, domain.RequestFilter{}, params)
		assert.NoError(t, err)
	})
}
