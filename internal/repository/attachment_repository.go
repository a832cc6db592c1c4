package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portail-rh/internal/domain"
)

type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.RequestAttachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RequestAttachment, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.RequestAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, att *domain.RequestAttachment) error {
	query := `
		INSERT INTO request_attachments (id, request_id, uploaded_by, file_name, object_key, content_type, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		att.ID, att.RequestID, att.UploadedBy, att.FileName, att.ObjectKey, att.ContentType, att.Size,
	).Scan(&att.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RequestAttachment, error) {
	var att domain.RequestAttachment
	query := `SELECT * FROM request_attachments WHERE id = $1`

	err := r.db.GetContext(ctx, &att, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.RequestAttachment, error) {
	var atts []domain.RequestAttachment
	query := `SELECT * FROM request_attachments WHERE request_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &atts, query, requestID)
	return atts, err
}

func (r *attachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM request_attachments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
