package service

import (
	"context"

	"github.com/rwalia/estatehub-server/internal/models"
	"go.uber.org/zap"
)

// Audit action types.
const (
	ActionListingCreated = "LISTING_CREATED"
	ActionListingEdited  = "LISTING_EDITED"
	ActionListingDeleted = "LISTING_DELETED"
	ActionProfileEdited  = "PROFILE_EDITED"
	ActionMediaUploaded  = "MEDIA_UPLOADED"
	ActionUpdateProfile  = "UPDATE_PROFILE"
	ActionChangePassword = "CHANGE_PASSWORD"
)

// logAction appends a coarse-grained audit entry. Failures are reported but
// never abort the operation that triggered them.
func (s *DefaultService) logAction(ctx context.Context, actionType, userID, details string) {
	entry := &models.ActionLogEntry{
		ActionType: actionType,
		UserID:     userID,
		Details:    details,
	}
	if err := s.repo.AppendActionLog(ctx, entry); err != nil {
		s.log.Warn("failed to append action log entry",
			zap.String("actionType", actionType),
			zap.String("userId", userID),
			zap.Error(err))
	}
}

// logProfileChange appends one field-level change record. Like logAction it is
// best-effort only.
func (s *DefaultService) logProfileChange(ctx context.Context, listingTimestamp, section, fieldName, oldValue, newValue, editor string) {
	entry := &models.ProfileChangeLogEntry{
		ListingTimestamp: listingTimestamp,
		Section:          section,
		FieldName:        fieldName,
		OldValue:         oldValue,
		NewValue:         newValue,
		EditorUsername:   editor,
	}
	if err := s.repo.AppendProfileChangeLog(ctx, entry); err != nil {
		s.log.Warn("failed to append profile change log entry",
			zap.String("listingTimestamp", listingTimestamp),
			zap.String("field", fieldName),
			zap.Error(err))
	}
}
