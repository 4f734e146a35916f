package jobs

import (
	"context"
	"time"

	"communityhub-backend/internal/logger"
)

const jobTimeout = 5 * time.Minute

// PurgeExpiredInvites removes unused invitation codes that are past their
// expiry; they can never be redeemed again.
func (jr *JobRunner) PurgeExpiredInvites() {
	jr.runWithRecovery("PurgeExpiredInvites", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		deleted, err := jr.store.InviteRepository.DeleteExpiredUnused(ctx)
		if err != nil {
			logger.Error("Failed to purge expired invites", "error", err)
			return
		}
		logger.Info("Purged expired invites", "deleted", deleted)
	})
}

// PurgeDeletedContent hard-deletes posts and comments that were soft-deleted
// longer than the configured retention window ago.
func (jr *JobRunner) PurgeDeletedContent() {
	jr.runWithRecovery("PurgeDeletedContent", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		days := jr.config.Scheduler.DeletedRetentionDays

		comments, err := jr.store.CommentRepository.PurgeDeletedBefore(ctx, days)
		if err != nil {
			logger.Error("Failed to purge deleted comments", "error", err)
			return
		}
		posts, err := jr.store.PostRepository.PurgeDeletedBefore(ctx, days)
		if err != nil {
			logger.Error("Failed to purge deleted posts", "error", err)
			return
		}
		logger.Info("Purged soft-deleted content", "posts", posts, "comments", comments, "retention_days", days)
	})
}
