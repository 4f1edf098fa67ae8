package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/repository"
)

// Used invitations are kept around briefly for audit, then purged.
const usedInvitationRetention = 30 * 24 * time.Hour

// CleanupJob removes expired temporary attachments and stale invitations
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	invitationRepo repository.InvitationRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	invitationRepo repository.InvitationRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		invitationRepo: invitationRepo,
		s3Client:       s3Client,
		logger:         logger,
	}
}

// Run executes the cleanup job. Attachment rows are only removed after the
// backing object is gone, so a failed S3 delete leaves the row for the next run.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.cleanupExpiredAttachments(ctx)
	j.cleanupUsedInvitations(ctx)
}

func (j *CleanupJob) cleanupExpiredAttachments(ctx context.Context) {
	expired, err := j.attachmentRepo.FindExpiredTempAttachments(ctx)
	if err != nil {
		j.logger.Error("Failed to find expired temporary attachments", zap.Error(err))
		return
	}

	if len(expired) == 0 {
		return
	}

	j.logger.Info("Found expired temporary attachments", zap.Int("count", len(expired)))

	var deletedIDs []uuid.UUID
	failCount := 0

	for _, attachment := range expired {
		if j.s3Client != nil {
			if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
				j.logger.Error("Failed to delete file from storage",
					zap.String("attachment_id", attachment.ID.String()),
					zap.String("file_key", attachment.FileKey),
					zap.Error(err),
				)
				failCount++
				continue
			}
		}
		deletedIDs = append(deletedIDs, attachment.ID)
	}

	if len(deletedIDs) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, deletedIDs); err != nil {
			j.logger.Error("Failed to delete attachment records",
				zap.Int("count", len(deletedIDs)),
				zap.Error(err),
			)
			return
		}
	}

	j.logger.Info("Attachment cleanup completed",
		zap.Int("total_expired", len(expired)),
		zap.Int("deleted", len(deletedIDs)),
		zap.Int("failed", failCount),
	)
}

func (j *CleanupJob) cleanupUsedInvitations(ctx context.Context) {
	cutoff := time.Now().Add(-usedInvitationRetention)

	purged, err := j.invitationRepo.DeleteUsedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge used invitations", zap.Error(err))
		return
	}

	if purged > 0 {
		j.logger.Info("Purged used invitations", zap.Int64("count", purged))
	}
}
