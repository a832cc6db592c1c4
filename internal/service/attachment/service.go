package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
	"portail-rh/internal/service/request"
)

var (
	ErrNotFound        = errors.New("attachment not found")
	ErrForbidden       = errors.New("not allowed to access this attachment")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrInvalidFileType = errors.New("file type not allowed")
)

const (
	maxFileSize  = 10 << 20 // 10 MiB
	urlExpiry    = 15 * time.Minute
	keyTimestamp = "20060102150405"
)

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// UploadInput describes a file being attached to a request.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Service interface {
	Upload(ctx context.Context, requestID uuid.UUID, actor *domain.User, input UploadInput) (*domain.RequestAttachment, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID, actor *domain.User) ([]domain.RequestAttachment, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID, actor *domain.User) (string, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
}

type service struct {
	attRepo     repository.AttachmentRepository
	requestSvc  request.Service
	minioClient *minio.Client
	bucket      string
}

func NewService(
	attRepo repository.AttachmentRepository,
	requestSvc request.Service,
	minioClient *minio.Client,
	bucket string,
) Service {
	return &service{
		attRepo:     attRepo,
		requestSvc:  requestSvc,
		minioClient: minioClient,
		bucket:      bucket,
	}
}

func (s *service) Upload(ctx context.Context, requestID uuid.UUID, actor *domain.User, input UploadInput) (*domain.RequestAttachment, error) {
	// Viewing the request is the access check; GetByID scopes by actor.
	req, err := s.requestSvc.GetByID(ctx, requestID, actor)
	if err != nil {
		return nil, err
	}
	if req.UserID != actor.ID {
		return nil, ErrForbidden
	}

	if input.Size > maxFileSize {
		return nil, ErrFileTooLarge
	}
	if !allowedContentTypes[input.ContentType] {
		return nil, ErrInvalidFileType
	}

	att := &domain.RequestAttachment{
		ID:          uuid.New(),
		RequestID:   requestID,
		UploadedBy:  actor.ID,
		FileName:    input.FileName,
		ObjectKey:   buildObjectKey(requestID, input.FileName),
		ContentType: input.ContentType,
		Size:        input.Size,
	}

	_, err = s.minioClient.PutObject(ctx, s.bucket, att.ObjectKey, input.Reader, input.Size,
		minio.PutObjectOptions{ContentType: input.ContentType})
	if err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	if err := s.attRepo.Create(ctx, att); err != nil {
		// Orphaned objects are cleaned up so storage matches the database.
		_ = s.minioClient.RemoveObject(ctx, s.bucket, att.ObjectKey, minio.RemoveObjectOptions{})
		return nil, err
	}

	return att, nil
}

func buildObjectKey(requestID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("requests/%s/%s_%s%s", requestID, time.Now().UTC().Format(keyTimestamp), uuid.NewString()[:8], ext)
}

func (s *service) ListByRequest(ctx context.Context, requestID uuid.UUID, actor *domain.User) ([]domain.RequestAttachment, error) {
	if _, err := s.requestSvc.GetByID(ctx, requestID, actor); err != nil {
		return nil, err
	}
	return s.attRepo.ListByRequest(ctx, requestID)
}

func (s *service) GetDownloadURL(ctx context.Context, id uuid.UUID, actor *domain.User) (string, error) {
	att, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if att == nil {
		return "", ErrNotFound
	}

	if _, err := s.requestSvc.GetByID(ctx, att.RequestID, actor); err != nil {
		return "", err
	}

	url, err := s.minioClient.PresignedGetObject(ctx, s.bucket, att.ObjectKey, urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return url.String(), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	att, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if att == nil {
		return ErrNotFound
	}

	if att.UploadedBy != actor.ID && !domain.Allowed(domain.UserRole(actor.Role), domain.ActionRequestListAll) {
		return ErrForbidden
	}

	if err := s.attRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.bucket, att.ObjectKey, minio.RemoveObjectOptions{})
	return nil
}
