package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portail-rh/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error)
	ListForChef(ctx context.Context, chefID uuid.UUID, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error)
	ListAll(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, actor domain.UserRole, observation *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]domain.CalendarEntry, error)
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

// chefScopeClause limits rows to the first-tier review set: requests of
// chef-reviewable types submitted by the chef's direct reports.
const chefScopeClause = `
	r.user_id IN (SELECT id FROM users WHERE chef_id = $1 AND deleted_at IS NULL)
	AND (r.type LIKE 'Congé%' OR r.type = 'Formation')`

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (id, user_id, type, status, details, start_date, end_date, working_days, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.Type, req.Status, req.Details,
		req.StartDate, req.EndDate, req.WorkingDays, req.Description,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `SELECT * FROM requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error) {
	params.Validate()

	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	where, args = appendFilter(where, args, filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM requests `+where, args...); err != nil {
		return nil, 0, err
	}

	var requests []domain.Request
	query := `SELECT * FROM requests ` + where + ` ORDER BY created_at DESC LIMIT ` +
		placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

func (r *requestRepository) ListForChef(ctx context.Context, chefID uuid.UUID, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error) {
	params.Validate()

	where := `WHERE ` + chefScopeClause
	args := []interface{}{chefID}
	if filter.Status != nil {
		where += ` AND r.status = ` + placeholder(len(args)+1)
		args = append(args, *filter.Status)
	}
	if filter.Type != nil {
		where += ` AND r.type = ` + placeholder(len(args)+1)
		args = append(args, *filter.Type)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM requests r `+where, args...); err != nil {
		return nil, 0, err
	}

	var requests []domain.Request
	query := `SELECT r.* FROM requests r ` + where + ` ORDER BY r.created_at DESC LIMIT ` +
		placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

func (r *requestRepository) ListAll(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error) {
	params.Validate()

	where := ``
	var args []interface{}
	where, args = appendFilter(where, args, filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM requests `+where, args...); err != nil {
		return nil, 0, err
	}

	var requests []domain.Request
	query := `SELECT * FROM requests ` + where + ` ORDER BY created_at DESC LIMIT ` +
		placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, actor domain.UserRole, observation *string) error {
	column := "admin_response"
	if actor == domain.RoleChef {
		column = "chef_observation"
	}

	query := `
		UPDATE requests
		SET status = $2, ` + column + ` = $3, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status, observation)
	return err
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *requestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM requests WHERE status = $1`
	err := r.db.GetContext(ctx, &count, query, status)
	return count, err
}

func (r *requestRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM requests`)
	return count, err
}

func (r *requestRepository) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]domain.CalendarEntry, error) {
	var entries []domain.CalendarEntry
	query := `
		SELECT r.id AS request_id, r.user_id, u.full_name AS user_name, r.type,
		       r.start_date, r.end_date, r.working_days
		FROM requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.status = 'Approuvée'
		  AND r.start_date IS NOT NULL AND r.end_date IS NOT NULL
		  AND r.start_date <= $2 AND r.end_date >= $1
		ORDER BY r.start_date`

	err := r.db.SelectContext(ctx, &entries, query, from, to)
	return entries, err
}

func appendFilter(where string, args []interface{}, filter domain.RequestFilter) (string, []interface{}) {
	if filter.Status != nil {
		where = andClause(where, `status = `+placeholder(len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Type != nil {
		where = andClause(where, `type = `+placeholder(len(args)+1))
		args = append(args, *filter.Type)
	}
	return where, args
}

func andClause(where, clause string) string {
	if where == "" {
		return `WHERE ` + clause
	}
	return where + ` AND ` + clause
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
