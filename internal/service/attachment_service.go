package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

const (
	// tempAttachmentTTL bounds how long an unconfirmed upload survives
	tempAttachmentTTL = 24 * time.Hour
	// presignedURLExpiry bounds download link lifetime
	presignedURLExpiry = 15 * time.Minute
	// maxAttachmentSize bounds a single upload
	maxAttachmentSize = 25 << 20
)

// AttachmentService defines the interface for attachment business logic
type AttachmentService interface {
	Upload(ctx context.Context, entityType domain.EntityType, fileName, contentType string, size int64, file io.Reader) (*dto.UploadAttachmentResponse, error)
	GetDownloadURL(ctx context.Context, attachmentID uuid.UUID) (*dto.AttachmentURLResponse, error)
	Delete(ctx context.Context, attachmentID uuid.UUID) error
}

// attachmentServiceImpl is the implementation of AttachmentService
type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		metrics:        m,
		logger:         logger,
	}
}

// Upload stores the file and records TEMP metadata. The attachment becomes
// CONFIRMED when a card or comment claims it; unclaimed uploads expire.
func (s *attachmentServiceImpl) Upload(ctx context.Context, entityType domain.EntityType, fileName, contentType string, size int64, file io.Reader) (*dto.UploadAttachmentResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if entityType != domain.EntityTypeCard && entityType != domain.EntityTypeComment {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid entity type", string(entityType))
	}
	if fileName == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "File name is required", "")
	}
	if size <= 0 || size > maxAttachmentSize {
		return nil, response.NewAppError(response.ErrCodeValidation, "File size out of range", "")
	}

	fileKey := s.s3Client.GenerateFileKey(string(entityType), fileName)

	start := time.Now()
	err = s.s3Client.UploadFile(ctx, fileKey, file, contentType)
	s.metrics.RecordStorageRequest("upload", time.Since(start), err)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store file", err.Error())
	}

	expiresAt := time.Now().Add(tempAttachmentTTL)
	attachment := &domain.Attachment{
		EntityType:  entityType,
		Status:      domain.AttachmentStatusTemp,
		FileName:    fileName,
		FileKey:     fileKey,
		FileSize:    size,
		ContentType: contentType,
		UploadedBy:  userID,
		ExpiresAt:   &expiresAt,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Roll back the stored object so no orphan outlives the failed row
		if delErr := s.s3Client.DeleteFile(ctx, fileKey); delErr != nil {
			s.logger.Warn("Failed to remove object after metadata failure",
				zap.String("file_key", fileKey),
				zap.Error(delErr),
			)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record attachment", err.Error())
	}

	return &dto.UploadAttachmentResponse{
		AttachmentID: attachment.ID,
		FileName:     fileName,
		FileSize:     size,
		ContentType:  contentType,
		ExpiresAt:    expiresAt,
	}, nil
}

// GetDownloadURL returns a presigned download URL for an attachment
func (s *attachmentServiceImpl) GetDownloadURL(ctx context.Context, attachmentID uuid.UUID) (*dto.AttachmentURLResponse, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	attachment, err := s.loadAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	url, err := s.s3Client.GeneratePresignedGetURL(ctx, attachment.FileKey, presignedURLExpiry)
	s.metrics.RecordStorageRequest("presign", time.Since(start), err)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate download URL", err.Error())
	}

	return &dto.AttachmentURLResponse{
		AttachmentID: attachment.ID,
		URL:          url,
		ExpiresIn:    int(presignedURLExpiry.Seconds()),
	}, nil
}

// Delete removes an attachment's object and metadata. Uploader only.
func (s *attachmentServiceImpl) Delete(ctx context.Context, attachmentID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	attachment, err := s.loadAttachment(ctx, attachmentID)
	if err != nil {
		return err
	}
	if attachment.UploadedBy != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the uploader can delete an attachment", "")
	}

	start := time.Now()
	err = s.s3Client.DeleteFile(ctx, attachment.FileKey)
	s.metrics.RecordStorageRequest("delete", time.Since(start), err)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete file", err.Error())
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}
	return nil
}

// loadAttachment fetches an attachment or returns a 404 error
func (s *attachmentServiceImpl) loadAttachment(ctx context.Context, attachmentID uuid.UUID) (*domain.Attachment, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Attachment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load attachment", err.Error())
	}
	return attachment, nil
}
