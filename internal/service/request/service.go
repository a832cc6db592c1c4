package request

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
	"portail-rh/internal/service/notification"
)

var (
	ErrNotFound          = errors.New("request not found")
	ErrInvalidType       = errors.New("unknown request type")
	ErrInvalidStatus     = errors.New("unknown request status")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrInvalidDates      = errors.New("invalid date range")
	ErrDatesRequired     = errors.New("start_date and end_date are required for this type")
	ErrForbidden         = errors.New("not allowed to act on this request")
	ErrNotDeletable      = errors.New("only pending requests can be deleted")
)

// RequestMeta carries caller context for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error)
	GetByID(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Request, error)
	ListOwn(ctx context.Context, userID uuid.UUID, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error)
	ListForChef(ctx context.Context, chef *domain.User, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error)
	ListAll(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateStatusInput, meta *RequestMeta) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	reqRepo   repository.RequestRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	notifSvc  notification.Service
}

func NewService(
	reqRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
) Service {
	return &service{
		reqRepo:   reqRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if err := domain.ValidateDetails(input.Type, input.Details); err != nil {
		return nil, err
	}

	req := &domain.Request{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        input.Type,
		Status:      domain.StatusEnAttente,
		Details:     input.Details,
		Description: input.Description,
	}

	if input.Type.RequiresDates() {
		start, end, err := parseDateRange(input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
		days := domain.WorkingDays(start, end)
		req.StartDate = &start
		req.EndDate = &end
		req.WorkingDays = &days
	}

	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func parseDateRange(startStr, endStr *string) (time.Time, time.Time, error) {
	if startStr == nil || endStr == nil {
		return time.Time{}, time.Time{}, ErrDatesRequired
	}
	start, err := time.Parse(time.DateOnly, *startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	end, err := time.Parse(time.DateOnly, *endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return start, end, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Request, error) {
	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	if err := s.authorizeView(ctx, req, actor); err != nil {
		return nil, err
	}
	return req, nil
}

// authorizeView enforces server-side read scoping: owners see their own
// requests, chefs see reviewable requests of their direct reports, admins
// see everything.
func (s *service) authorizeView(ctx context.Context, req *domain.Request, actor *domain.User) error {
	if req.UserID == actor.ID {
		return nil
	}
	role := domain.UserRole(actor.Role)
	if domain.Allowed(role, domain.ActionRequestListAll) {
		return nil
	}
	if domain.Allowed(role, domain.ActionRequestListTeam) && req.Type.ChefReviewable() {
		owner, err := s.userRepo.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if owner != nil && owner.ChefID != nil && *owner.ChefID == actor.ID {
			return nil
		}
	}
	return ErrForbidden
}

func (s *service) ListOwn(ctx context.Context, userID uuid.UUID, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error) {
	requests, total, err := s.reqRepo.ListByUser(ctx, userID, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Request]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListForChef(ctx context.Context, chef *domain.User, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error) {
	if !domain.Allowed(domain.UserRole(chef.Role), domain.ActionRequestListTeam) {
		return domain.PaginatedResponse[domain.Request]{}, ErrForbidden
	}

	requests, total, err := s.reqRepo.ListForChef(ctx, chef.ID, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Request]{}, err
	}

	s.attachOwners(ctx, requests)
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListAll(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error) {
	requests, total, err := s.reqRepo.ListAll(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Request]{}, err
	}

	s.attachOwners(ctx, requests)
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) attachOwners(ctx context.Context, requests []domain.Request) {
	for i := range requests {
		if owner, err := s.userRepo.GetByID(ctx, requests[i].UserID); err == nil {
			requests[i].Owner = owner
		}
	}
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateStatusInput, meta *RequestMeta) error {
	if !input.Status.IsValid() {
		return ErrInvalidStatus
	}

	actorRole := domain.UserRole(actor.Role)
	switch actorRole {
	case domain.RoleChef:
		if !domain.Allowed(actorRole, domain.ActionRequestReview) {
			return ErrForbidden
		}
	case domain.RoleAdmin:
		if !domain.Allowed(actorRole, domain.ActionRequestFinalize) {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}

	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrNotFound
	}

	// A chef only reviews their own direct reports.
	if actorRole == domain.RoleChef {
		owner, err := s.userRepo.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if owner == nil || owner.ChefID == nil || *owner.ChefID != actor.ID {
			return ErrForbidden
		}
	}

	if !domain.CanTransition(req.Type, req.Status, input.Status, actorRole) {
		return ErrInvalidTransition
	}

	oldStatus := req.Status
	if err := s.reqRepo.UpdateStatus(ctx, id, input.Status, actorRole, input.Observation); err != nil {
		return err
	}

	req.Status = input.Status
	if actorRole == domain.RoleChef {
		req.ChefObservation = input.Observation
	} else {
		req.AdminResponse = input.Observation
	}

	// Notification and audit are best-effort: a failed insert must never
	// roll back a committed transition.
	if s.notifSvc != nil {
		_ = s.notifSvc.NotifyStatusChanged(ctx, req, actor, input.Observation)
	}
	s.logAudit(ctx, actor, req, oldStatus, meta)

	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrNotFound
	}
	if req.UserID != ownerID {
		return ErrForbidden
	}
	if req.Status != domain.StatusEnAttente {
		return ErrNotDeletable
	}

	return s.reqRepo.Delete(ctx, id)
}

func (s *service) logAudit(ctx context.Context, actor *domain.User, req *domain.Request, oldStatus domain.RequestStatus, meta *RequestMeta) {
	oldValue, _ := json.Marshal(map[string]string{"status": string(oldStatus)})
	newValue, _ := json.Marshal(map[string]string{"status": string(req.Status)})

	audit := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     actor.ID,
		Action:     "UPDATE_REQUEST_STATUS",
		EntityType: "REQUEST",
		EntityID:   req.ID,
		OldValue:   oldValue,
		NewValue:   newValue,
	}

	if meta != nil {
		if meta.IPAddress != "" {
			audit.IPAddress = &meta.IPAddress
		}
		if meta.UserAgent != "" {
			audit.UserAgent = &meta.UserAgent
		}
	}

	_ = s.auditRepo.Create(ctx, audit)
}
