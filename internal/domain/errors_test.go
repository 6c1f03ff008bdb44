package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers_Unwrap(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNotFound("file", "f1"), IsNotFound},
		{"permission", NewPermissionError(ActionDeleteWorkspace, "ws-1"), IsPermissionDenied},
		{"validation", NewValidationError("bad"), IsValidation},
		{"expired", &ErrInvitationExpired{InvitationID: "i1"}, IsExpired},
		{"already member", &ErrAlreadyMember{WorkspaceID: "ws-1", Email: "bob@x.com"}, IsAlreadyMember},
		{"duplicate", &ErrDuplicateInvitation{WorkspaceID: "ws-1", Email: "bob@x.com"}, IsDuplicateInvitation},
		{"conflict", &ErrConflict{Entity: "file_version", Message: "taken"}, IsConflict},
		{"dependency", &ErrDependencyUnavailable{Dependency: "database", Err: errors.New("down")}, IsDependencyUnavailable},
		{"rate limited", &ErrRateLimited{Action: "invitation", RetryAfter: 3}, IsRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}

func TestDeletionStepError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &DeletionStepError{WorkspaceID: "ws-1", Step: StepFiles, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "files")
}

func TestDeletionOrder(t *testing.T) {
	assert.Equal(t, StepFileVersions, DeletionOrder[0])
	assert.Equal(t, StepWorkspace, DeletionOrder[len(DeletionOrder)-1])
	assert.Len(t, DeletionOrder, 8)
}
